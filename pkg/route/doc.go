// Package route answers point-to-point shortest-path queries over a
// [graph.Index].
//
// # Algorithm
//
// [ShortestPath] runs Dijkstra's single-source search from the start node
// with a binary min-heap keyed by tentative distance. Entries are pushed on
// every strict improvement and stale entries are skipped when popped, so the
// search costs O((V + E) log V). The search stops as soon as the goal is
// popped, since its distance is final at that point.
//
// Edge weights must be non-negative; graphs loaded through pkg/graph are
// validated to guarantee this.
//
// # Results
//
// A [Result] holds the total distance and the node ids from start to goal
// inclusive. Queries for unknown nodes or disconnected pairs are not errors:
// they return the unreachable sentinel, an infinite distance with an empty
// path. Its JSON form is
//
//	{"distance": null, "path": []}
//
// because JSON has no literal for infinity.
//
// # Ties
//
// When several minimum-weight paths exist, any one of them may be returned;
// the distance is always the unique minimum. Only strict improvements update
// a predecessor, so equal-distance candidates never cause re-expansion.
//
// # Concurrency
//
// Each call allocates its own distance map, predecessor map and heap, and only
// reads the index. Any number of queries may run in parallel against the
// same index without synchronization.
package route
