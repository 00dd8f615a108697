package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/graph"
)

// maxListedIsolated caps how many isolated node ids check prints.
const maxListedIsolated = 10

// checkCommand creates the check command for validating graph documents.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <graph>",
		Short: "Validate a graph document and summarize it",
		Long: `Check loads a graph file or URL with the same validation the server applies
and reports its size, connected components and isolated nodes.

The command exits non-zero if the document is malformed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			idx := graph.Build(g)
			prog.done("Validated " + args[0])

			c.printCheck(args[0], g, idx)
			return nil
		},
	}
}

func (c *CLI) printCheck(source string, g graph.Graph, idx *graph.Index) {
	components := idx.Components()

	printSuccess(c.out, "%s is a valid graph", source)
	printStats(c.out, g.NodeCount(), g.EdgeCount(), len(components))

	if isolated := idx.Isolated(); len(isolated) > 0 {
		printWarning(c.out, "%d isolated node(s)", len(isolated))
		shown := isolated
		if len(shown) > maxListedIsolated {
			shown = shown[:maxListedIsolated]
		}
		printDetail(c.out, "%s", strings.Join(shown, ", "))
		if rest := len(isolated) - len(shown); rest > 0 {
			printDetail(c.out, "... and %d more", rest)
		}
	}
	if len(components) > 1 {
		printInfo(c.out, "Nodes in different components are unreachable from each other")
	}

	if g.NodeCount() > 0 {
		printNextStep(c.out, "Query a route", fmt.Sprintf("%s path %s <from> <to>", appName, source))
	}
}
