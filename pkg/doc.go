// Package pkg provides the core libraries for waypoint.
//
// # Overview
//
// Waypoint serves a static weighted undirected graph and answers
// point-to-point shortest-path queries over it. The pkg directory is
// organized by concern:
//
//  1. [graph] - Graph document types, validation and the adjacency index
//  2. [route] - Shortest-path search over an index
//  3. [io] - Loading graph documents from files and URLs
//  4. [render/dot] - Graphviz diagrams with optional route highlighting
//  5. [errors], [httputil], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through waypoint:
//
//	graph.json (file or URL)
//	         ↓
//	    [io] package (fetch, decode, validate)
//	         ↓
//	    [graph] package (Graph → Index, built once)
//	         ↓
//	    [route] package (one Dijkstra search per query)
//	         ↓
//	    {"distance": ..., "path": [...]}
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/waypoint/pkg/graph"
//	    "github.com/matzehuels/waypoint/pkg/io"
//	    "github.com/matzehuels/waypoint/pkg/route"
//	)
//
//	g, err := io.Load(ctx, "data/graph.json")
//	if err != nil {
//	    return err
//	}
//	idx := graph.Build(g)
//	res := route.ShortestPath(idx, "PAR", "NCE")
//	fmt.Println(res.Distance, res.Path)
//
// The index is immutable once built, so a single index can serve any number
// of concurrent queries.
//
// # Observability
//
// Libraries report graph loads, queries and outgoing HTTP requests through
// [observability] hooks. Binaries register Prometheus or OpenTelemetry
// backends at startup; libraries never import them directly.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/graph
// [route]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/route
// [io]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/io
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/waypoint/pkg/buildinfo
package pkg
