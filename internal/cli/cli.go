package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/buildinfo"
	"github.com/matzehuels/waypoint/pkg/graph"
	pkgio "github.com/matzehuels/waypoint/pkg/io"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = buildinfo.Name

	// fetchTimeout bounds a single HTTP request when loading remote graphs.
	fetchTimeout = 30 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// out receives command results; logs go to the logger's writer.
	out io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
// Command output goes to standard output.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command results, e.g. for tests.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Waypoint serves shortest paths over a weighted graph",
		Long:         `Waypoint loads a weighted undirected graph from a JSON document and answers shortest-path queries over HTTP or from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Graph Loading
// =============================================================================

// newLoader creates a graph loader for CLI use.
func newLoader() pkgio.Loader {
	return pkgio.Loader{Client: &http.Client{Timeout: fetchTimeout}}
}

// loadGraph loads source, failing on any error. Offline commands have no
// degraded mode.
func (c *CLI) loadGraph(ctx context.Context, source string) (graph.Graph, error) {
	c.Logger.Debug("loading graph", "source", source)
	g, err := newLoader().Load(ctx, source)
	if err != nil {
		return graph.Graph{}, err
	}
	c.Logger.Debug("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}
