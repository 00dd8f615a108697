// Package graph provides the weighted undirected graph model served by waypoint
// and the adjacency index that shortest-path queries run against.
//
// # Architecture
//
// The package has two layers:
//
//   - [Graph], [Node], [Edge]: the wire model, decoded from and encoded to the
//     node-link JSON document that describes the map
//   - [Index]: the adjacency index derived from a Graph once at startup and
//     shared, read-only, by every query
//
// # Graph Serialization
//
// Graphs use a node-link JSON format with undirected weighted edges:
//
//	{
//	  "nodes": [{"id": "paris", "name": "Paris", "x": 120, "y": 80}],
//	  "edges": [{"source": "paris", "target": "lyon", "weight": 465}]
//	}
//
// Nodes must have a string "id". Every other node attribute is opaque
// payload: [Parse] keeps the original JSON object and [Node.MarshalJSON]
// writes it back unchanged, so /api/graph returns the document exactly as
// loaded. Edges must have string "source" and "target" fields and a finite,
// non-negative numeric "weight".
//
// # Validation
//
// [Parse] and [Graph.Validate] reject:
//
//   - nodes without an id, or with a duplicate or invalid id
//   - edges missing source, target or weight
//   - negative weights
//   - edges whose endpoints are not declared nodes
//
// Every violation is reported as a MALFORMED_GRAPH error from pkg/errors
// naming the offending node or edge position.
//
// # Adjacency Index
//
// [Build] turns a Graph into an [Index] mapping each node id to its
// neighbors and edge weights. Each edge contributes to both endpoints' lists.
// Nodes without edges are present with an empty list, and parallel edges are
// kept as separate entries.
//
//	idx := graph.Build(g)
//	for _, nb := range idx.Neighbors("paris") {
//	    fmt.Println(nb.ID, nb.Weight)
//	}
//
// # Concurrency
//
// An Index is never modified after Build returns and is safe for concurrent
// reads without locking. Graph values are not safe for concurrent writes.
package graph
