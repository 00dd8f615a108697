// Package dot renders waypoint graphs as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT source, then render it to SVG:
//
//	src := dot.ToDOT(g, dot.Options{Weights: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// A shortest path can be highlighted by passing its node sequence:
//
//	res := route.ShortestPath(idx, "A", "B")
//	src := dot.ToDOT(g, dot.Options{Path: res.Path})
//
// # DOT Format
//
// The output is an undirected graph ("graph G { ... }") using "--" edges,
// left-to-right layout and rounded box nodes. Edge labels carry the weight
// when [Options.Weights] is set. The DOT text is deterministic, so it can be
// saved and processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package dot
