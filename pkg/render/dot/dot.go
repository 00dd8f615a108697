package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/waypoint/pkg/graph"
)

// Highlight colors for the path overlay.
const (
	pathColor = "#d9480f"
	pathFill  = "#fff4e6"
)

// Options configures diagram generation.
type Options struct {
	// Weights labels every edge with its weight.
	Weights bool

	// Path highlights the given node sequence, typically a shortest-path
	// result. Consecutive nodes mark the edges to emphasize.
	Path []string
}

// ToDOT converts g to Graphviz DOT source.
//
// Nodes are emitted in input order, followed by edges in input order, so the
// output is stable for a given graph. Parallel edges are all drawn; when a
// path is highlighted only the lightest edge between each consecutive pair
// is emphasized.
func ToDOT(g graph.Graph, opts Options) string {
	onPath := make(map[string]bool, len(opts.Path))
	for _, id := range opts.Path {
		onPath[id] = true
	}
	hot := pathEdges(g, opts.Path)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#868e96\", fontsize=11];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.ID)}
		if onPath[n.ID] {
			attrs = append(attrs, fmt.Sprintf("color=%q", pathColor), fmt.Sprintf("fillcolor=%q", pathFill), "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, e := range g.Edges {
		var attrs []string
		if opts.Weights {
			attrs = append(attrs, fmt.Sprintf("label=%q", formatWeight(e.Weight)))
		}
		if hot[i] {
			attrs = append(attrs, fmt.Sprintf("color=%q", pathColor), "penwidth=3")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pathEdges returns the indices of the edges that realize each step of path.
func pathEdges(g graph.Graph, path []string) map[int]bool {
	hot := make(map[int]bool)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		best := -1
		for j, e := range g.Edges {
			if !(e.Source == a && e.Target == b) && !(e.Source == b && e.Target == a) {
				continue
			}
			if best < 0 || e.Weight < g.Edges[best].Weight {
				best = j
			}
		}
		if best >= 0 {
			hot[best] = true
		}
	}
	return hot
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one
// whose width and height match the viewBox, so browsers scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
