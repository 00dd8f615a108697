package server

import (
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/route"
)

// State is the immutable data served by the API: the graph as loaded, the
// finder over its adjacency index, and the load error if the server is
// running in degraded mode.
type State struct {
	graph   graph.Graph
	finder  *route.Finder
	loadErr error
}

// NewState indexes g for querying. loadErr records why g is empty, if the
// configured source failed to load; pass nil for a healthy graph.
func NewState(g graph.Graph, loadErr error) *State {
	return &State{
		graph:   g,
		finder:  route.NewFinder(graph.Build(g)),
		loadErr: loadErr,
	}
}

// Graph returns the served graph.
func (s *State) Graph() graph.Graph { return s.graph }

// Finder returns the shortest-path finder.
func (s *State) Finder() *route.Finder { return s.finder }

// Degraded reports the load error, or nil if the graph loaded.
func (s *State) Degraded() error { return s.loadErr }
