package graph

import (
	"reflect"
	"testing"
)

func nodes(ids ...string) []Node {
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{ID: id}
	}
	return out
}

func TestBuild(t *testing.T) {
	g := Graph{
		Nodes: nodes("A", "B", "C"),
		Edges: []Edge{
			{Source: "A", Target: "B", Weight: 1},
			{Source: "B", Target: "C", Weight: 2},
		},
	}

	idx := Build(g)

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
	if idx.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", idx.EdgeCount())
	}

	tests := []struct {
		id   string
		want []Neighbor
	}{
		{"A", []Neighbor{{ID: "B", Weight: 1}}},
		{"B", []Neighbor{{ID: "A", Weight: 1}, {ID: "C", Weight: 2}}},
		{"C", []Neighbor{{ID: "B", Weight: 2}}},
	}
	for _, tt := range tests {
		if got := idx.Neighbors(tt.id); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Neighbors(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestBuildKeyCount(t *testing.T) {
	tests := []struct {
		name  string
		g     Graph
		want  int
		edges int
	}{
		{"empty", Graph{}, 0, 0},
		{"no edges", Graph{Nodes: nodes("a", "b", "c", "d")}, 4, 0},
		{
			"dense",
			Graph{
				Nodes: nodes("a", "b", "c"),
				Edges: []Edge{
					{Source: "a", Target: "b", Weight: 1},
					{Source: "b", Target: "c", Weight: 1},
					{Source: "a", Target: "c", Weight: 1},
					{Source: "a", Target: "b", Weight: 7},
				},
			},
			3, 4,
		},
		{
			"dangling edge skipped",
			Graph{
				Nodes: nodes("a"),
				Edges: []Edge{{Source: "a", Target: "ghost", Weight: 1}},
			},
			1, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := Build(tt.g)
			if idx.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", idx.Len(), tt.want)
			}
			if idx.EdgeCount() != tt.edges {
				t.Errorf("EdgeCount() = %d, want %d", idx.EdgeCount(), tt.edges)
			}
			for _, n := range tt.g.Nodes {
				if !idx.Has(n.ID) {
					t.Errorf("Has(%q) = false, want true", n.ID)
				}
			}
			if idx.Has("ghost") {
				t.Error("Has(ghost) = true, want false")
			}
		})
	}
}

func TestBuildIsolatedNodeHasEmptyList(t *testing.T) {
	idx := Build(Graph{Nodes: nodes("lonely")})

	if !idx.Has("lonely") {
		t.Fatal("Has(lonely) = false, want true")
	}
	got := idx.Neighbors("lonely")
	if got == nil || len(got) != 0 {
		t.Errorf("Neighbors(lonely) = %#v, want empty non-nil slice", got)
	}
}

func TestBuildParallelEdgesAndSelfLoop(t *testing.T) {
	idx := Build(Graph{
		Nodes: nodes("a", "b"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 5},
			{Source: "b", Target: "a", Weight: 2},
			{Source: "a", Target: "a", Weight: 1},
		},
	})

	want := []Neighbor{{ID: "b", Weight: 5}, {ID: "b", Weight: 2}, {ID: "a", Weight: 1}, {ID: "a", Weight: 1}}
	if got := idx.Neighbors("a"); !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(a) = %v, want %v", got, want)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	g := Graph{
		Nodes: nodes("a", "b"),
		Edges: []Edge{{Source: "a", Target: "b", Weight: 3}},
	}
	before := len(g.Nodes) + len(g.Edges)
	Build(g)
	if len(g.Nodes)+len(g.Edges) != before {
		t.Error("Build() modified its input")
	}
}

func TestIDsAndIsolated(t *testing.T) {
	idx := Build(Graph{
		Nodes: nodes("c", "a", "b", "d"),
		Edges: []Edge{{Source: "a", Target: "b", Weight: 1}},
	})

	if got, want := idx.IDs(), []string{"a", "b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got, want := idx.Isolated(), []string{"c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Isolated() = %v, want %v", got, want)
	}
}

func TestComponents(t *testing.T) {
	idx := Build(Graph{
		Nodes: nodes("e", "d", "c", "b", "a"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "c", Target: "b", Weight: 1},
			{Source: "d", Target: "e", Weight: 1},
		},
	})

	want := [][]string{{"a", "b", "c"}, {"d", "e"}}
	if got := idx.Components(); !reflect.DeepEqual(got, want) {
		t.Errorf("Components() = %v, want %v", got, want)
	}
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	if idx.Has("a") || idx.Len() != 0 || idx.EdgeCount() != 0 || idx.Neighbors("a") != nil || idx.IDs() != nil {
		t.Error("nil Index should behave as empty")
	}
}
