package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/route"
)

// pathCommand creates the path command for offline shortest-path queries.
func (c *CLI) pathCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "path <graph> <from> <to>",
		Short: "Print the shortest path between two nodes",
		Long: `Path loads a graph file or URL and prints the minimum-weight route between
two node ids. Unknown or disconnected nodes are reported as unreachable.

With --json the result is printed exactly as the HTTP API returns it.`,
		Example: `  waypoint path data/graph.json A B
  waypoint path https://example.com/graph.json A B --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			from, to := args[1], args[2]
			res := route.NewFinder(graph.Build(g)).Find(cmd.Context(), from, to)

			if asJSON {
				return json.NewEncoder(c.out).Encode(res)
			}
			c.printResult(from, to, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) printResult(from, to string, res route.Result) {
	if !res.Reachable() {
		printWarning(c.out, "No path from %s to %s", from, to)
		return
	}
	printSuccess(c.out, "Shortest path from %s to %s", StyleHighlight.Render(from), StyleHighlight.Render(to))
	printKeyValue(c.out, "distance", StyleNumber.Render(strconv.FormatFloat(res.Distance, 'g', -1, 64)))
	printKeyValue(c.out, "hops", StyleNumber.Render(strconv.Itoa(res.Hops())))
	printKeyValue(c.out, "route", formatRoute(res.Path))
}
