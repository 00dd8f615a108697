package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/waypoint/internal/config"
	"github.com/matzehuels/waypoint/internal/metrics"
	"github.com/matzehuels/waypoint/internal/server"
	"github.com/matzehuels/waypoint/internal/tracing"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// serveOptions holds flag overrides for the serve command.
type serveOptions struct {
	configPath string
	graph      string
	port       int
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph and shortest-path API over HTTP",
		Long: `Serve loads the configured graph once and answers:

  GET /api/graph                      the graph document as loaded
  GET /api/shortest?from=<id>&to=<id> {"distance": ..., "path": [...]}
  GET /healthz                        load status and graph size
  GET /metrics                        Prometheus metrics (when enabled)

If the graph cannot be loaded the server keeps running with an empty graph
and reports "degraded" on /healthz.

Configuration is read from --config (TOML), then the environment (PORT,
WAYPOINT_GRAPH, LOG_LEVEL, LOG_FORMAT, WAYPOINT_METRICS, WAYPOINT_TRACING),
then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("graph") {
				cfg.Graph.Source = opts.graph
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := applyLogConfig(c.Logger, cfg.Log); err != nil {
				return err
			}
			return c.runServe(withLogger(cmd.Context(), c.Logger), cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "graph source, file path or http(s) URL (overrides config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides config and PORT)")

	return cmd
}

// runServe loads the graph, registers instrumentation and serves until ctx
// is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	var (
		m  *metrics.Metrics
		tp trace.TracerProvider
	)
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Setup(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("flush traces", "err", err)
			}
		}()
		tp = otel.GetTracerProvider()
	}
	registerHooks(m, tp)
	defer observability.Reset()

	g, loadErr := newLoader().LoadOrEmpty(ctx, cfg.Graph.Source)
	if loadErr != nil {
		logger.Error("graph load failed, serving empty graph", "source", cfg.Graph.Source, "err", loadErr)
	} else {
		logger.Info("graph loaded", "source", cfg.Graph.Source, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	}

	handler := server.NewRouter(logger, server.RouterDependencies{
		State:          server.NewState(g, loadErr),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PublicDir:      cfg.Server.PublicDir,
		Metrics:        m,
		Tracer:         tp,
	})
	return server.New(logger, cfg.Server, handler).Run(ctx)
}

// registerHooks installs the enabled observability backends globally.
func registerHooks(m *metrics.Metrics, tp trace.TracerProvider) {
	var (
		graphHooks []observability.GraphHooks
		queryHooks []observability.QueryHooks
	)
	if m != nil {
		graphHooks = append(graphHooks, m)
		queryHooks = append(queryHooks, m)
		observability.SetHTTPHooks(m)
	}
	if tp != nil {
		th := tracing.NewHooks(tp)
		graphHooks = append(graphHooks, th)
		queryHooks = append(queryHooks, th)
	}
	if len(graphHooks) > 0 {
		observability.SetGraphHooks(observability.MultiGraph(graphHooks...))
		observability.SetQueryHooks(observability.MultiQuery(queryHooks...))
	}
}
