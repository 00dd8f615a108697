package graph

import (
	"slices"
)

// Neighbor is one entry of a node's adjacency list: the node reachable over
// a single edge and that edge's weight.
type Neighbor struct {
	ID     string
	Weight float64
}

// Index is the adjacency index of an undirected graph. It maps every node id
// to the ordered list of its neighbors.
//
// The zero value is an empty index. An Index is immutable once [Build]
// returns it and may be shared across goroutines.
type Index struct {
	adj   map[string][]Neighbor
	edges int
}

// Build derives the adjacency index of g.
//
// Every node of g becomes a key, even without edges. Each edge appends
// (target, weight) to the source's list and (source, weight) to the target's
// list, in edge order. Parallel edges are kept as separate entries and a
// self-loop contributes two entries to its node.
//
// Edges whose endpoints are not declared nodes are skipped, so the index
// always contains exactly the node ids of g. Graphs produced by [Parse]
// never contain such edges. Build does not modify g.
func Build(g Graph) *Index {
	idx := &Index{adj: make(map[string][]Neighbor, len(g.Nodes))}
	for _, n := range g.Nodes {
		if _, ok := idx.adj[n.ID]; !ok {
			idx.adj[n.ID] = []Neighbor{}
		}
	}
	for _, e := range g.Edges {
		if !idx.Has(e.Source) || !idx.Has(e.Target) {
			continue
		}
		idx.adj[e.Source] = append(idx.adj[e.Source], Neighbor{ID: e.Target, Weight: e.Weight})
		idx.adj[e.Target] = append(idx.adj[e.Target], Neighbor{ID: e.Source, Weight: e.Weight})
		idx.edges++
	}
	return idx
}

// Has reports whether id is a node of the index.
func (x *Index) Has(id string) bool {
	if x == nil {
		return false
	}
	_, ok := x.adj[id]
	return ok
}

// Neighbors returns the adjacency list of id, or nil if id is unknown.
// The returned slice is shared; callers must not modify it.
func (x *Index) Neighbors(id string) []Neighbor {
	if x == nil {
		return nil
	}
	return x.adj[id]
}

// Len returns the number of nodes in the index.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.adj)
}

// EdgeCount returns the number of undirected edges indexed.
func (x *Index) EdgeCount() int {
	if x == nil {
		return 0
	}
	return x.edges
}

// IDs returns all node ids in sorted order.
func (x *Index) IDs() []string {
	if x == nil {
		return nil
	}
	ids := make([]string, 0, len(x.adj))
	for id := range x.adj {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Isolated returns the sorted ids of nodes without any edge.
func (x *Index) Isolated() []string {
	var out []string
	for _, id := range x.IDs() {
		if len(x.adj[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Components partitions the nodes into connected components.
// Components are ordered by their smallest id and their members are sorted.
func (x *Index) Components() [][]string {
	seen := make(map[string]bool, x.Len())
	var out [][]string
	for _, id := range x.IDs() {
		if seen[id] {
			continue
		}
		seen[id] = true
		comp := []string{id}
		stack := []string{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range x.adj[cur] {
				if !seen[nb.ID] {
					seen[nb.ID] = true
					comp = append(comp, nb.ID)
					stack = append(stack, nb.ID)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}
