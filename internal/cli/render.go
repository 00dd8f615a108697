package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/render/dot"
	"github.com/matzehuels/waypoint/pkg/route"
)

// Supported render output formats, selected by file extension.
const (
	formatSVG = ".svg"
	formatDOT = ".dot"
	formatGV  = ".gv"
)

// renderOptions holds flags for the render command.
type renderOptions struct {
	output    string
	from, to  string
	noWeights bool
}

// renderCommand creates the render command for Graphviz diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <graph>",
		Short: "Render a graph as an SVG or DOT diagram",
		Long: `Render draws the graph as a node-link diagram with edge weights as labels.

The output format follows the file extension: .svg is rendered in-process
with Graphviz, .dot/.gv writes the DOT source. With --from and --to the
shortest path between the two nodes is highlighted.`,
		Example: `  waypoint render data/graph.json -o graph.svg
  waypoint render data/graph.json -o route.svg --from A --to B`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "graph.svg", "output file (.svg, .dot or .gv)")
	cmd.Flags().StringVar(&opts.from, "from", "", "highlight the shortest path starting here")
	cmd.Flags().StringVar(&opts.to, "to", "", "highlight the shortest path ending here")
	cmd.Flags().BoolVar(&opts.noWeights, "no-weights", false, "omit edge weight labels")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, source string, opts renderOptions) error {
	ext := strings.ToLower(filepath.Ext(opts.output))
	if ext != formatSVG && ext != formatDOT && ext != formatGV {
		return errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (use .svg, .dot or .gv)", ext)
	}
	if (opts.from == "") != (opts.to == "") {
		return errors.New(errors.ErrCodeMissingParam, "--from and --to must be given together")
	}

	g, err := c.loadGraph(cmd.Context(), source)
	if err != nil {
		return err
	}

	dotOpts := dot.Options{Weights: !opts.noWeights}
	if opts.from != "" {
		res := route.NewFinder(graph.Build(g)).Find(cmd.Context(), opts.from, opts.to)
		if res.Reachable() {
			dotOpts.Path = res.Path
		} else {
			printWarning(c.out, "No path from %s to %s, rendering without highlight", opts.from, opts.to)
		}
	}
	src := dot.ToDOT(g, dotOpts)

	data := []byte(src)
	if ext == formatSVG {
		spinner := newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), "Rendering with Graphviz...")
		spinner.Start()
		data, err = dot.RenderSVG(cmd.Context(), src)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess(c.out, "Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(c.out, opts.output)
	return nil
}
