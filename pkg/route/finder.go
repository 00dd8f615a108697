package route

import (
	"context"
	"time"

	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// Finder answers queries against one index and reports each of them to the
// registered observability query hooks.
//
// A Finder holds no mutable state and is safe for concurrent use.
type Finder struct {
	idx *graph.Index
}

// NewFinder returns a Finder over idx. A nil idx behaves as an empty graph.
func NewFinder(idx *graph.Index) *Finder {
	return &Finder{idx: idx}
}

// Index returns the index the Finder queries.
func (f *Finder) Index() *graph.Index { return f.idx }

// Find computes the shortest path between from and to.
// See [ShortestPath] for the result semantics.
func (f *Finder) Find(ctx context.Context, from, to string) Result {
	start := time.Now()
	res := ShortestPath(f.idx, from, to)
	observability.Query().OnShortestPath(ctx, from, to, res.Hops(), res.Distance, time.Since(start))
	return res
}
