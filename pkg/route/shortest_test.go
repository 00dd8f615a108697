package route

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/matzehuels/waypoint/pkg/graph"
)

func buildIndex(ids []string, edges ...graph.Edge) *graph.Index {
	g := graph.Graph{Edges: edges}
	for _, id := range ids {
		g.Nodes = append(g.Nodes, graph.Node{ID: id})
	}
	return graph.Build(g)
}

func edge(a, b string, w float64) graph.Edge {
	return graph.Edge{Source: a, Target: b, Weight: w}
}

func TestShortestPathScenarios(t *testing.T) {
	tests := []struct {
		name     string
		idx      *graph.Index
		from, to string
		wantDist float64
		wantPath []string
	}{
		{
			name:     "chain",
			idx:      buildIndex([]string{"A", "B", "C"}, edge("A", "B", 1), edge("B", "C", 2)),
			from:     "A",
			to:       "C",
			wantDist: 3,
			wantPath: []string{"A", "B", "C"},
		},
		{
			name:     "detour beats direct edge",
			idx:      buildIndex([]string{"A", "B", "C"}, edge("A", "B", 5), edge("A", "C", 1), edge("C", "B", 1)),
			from:     "A",
			to:       "B",
			wantDist: 2,
			wantPath: []string{"A", "C", "B"},
		},
		{
			name:     "traverses edge backwards",
			idx:      buildIndex([]string{"A", "B", "C"}, edge("A", "B", 1), edge("B", "C", 2)),
			from:     "C",
			to:       "A",
			wantDist: 3,
			wantPath: []string{"C", "B", "A"},
		},
		{
			name:     "parallel edges use the lighter one",
			idx:      buildIndex([]string{"A", "B"}, edge("A", "B", 9), edge("B", "A", 4)),
			from:     "A",
			to:       "B",
			wantDist: 4,
			wantPath: []string{"A", "B"},
		},
		{
			name:     "zero weight edges",
			idx:      buildIndex([]string{"A", "B", "C"}, edge("A", "B", 0), edge("B", "C", 0)),
			from:     "A",
			to:       "C",
			wantDist: 0,
			wantPath: []string{"A", "B", "C"},
		},
		{
			name:     "fractional weights",
			idx:      buildIndex([]string{"A", "B", "C"}, edge("A", "B", 0.5), edge("B", "C", 0.25), edge("A", "C", 1)),
			from:     "A",
			to:       "C",
			wantDist: 0.75,
			wantPath: []string{"A", "B", "C"},
		},
		{
			name:     "same node",
			idx:      buildIndex([]string{"A", "B"}, edge("A", "B", 1)),
			from:     "A",
			to:       "A",
			wantDist: 0,
			wantPath: []string{"A"},
		},
		{
			name:     "same isolated node",
			idx:      buildIndex([]string{"A"}),
			from:     "A",
			to:       "A",
			wantDist: 0,
			wantPath: []string{"A"},
		},
		{
			name:     "self loop is ignored",
			idx:      buildIndex([]string{"A", "B"}, edge("A", "A", 1), edge("A", "B", 2)),
			from:     "A",
			to:       "B",
			wantDist: 2,
			wantPath: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortestPath(tt.idx, tt.from, tt.to)
			if got.Distance != tt.wantDist {
				t.Errorf("Distance = %v, want %v", got.Distance, tt.wantDist)
			}
			if !reflect.DeepEqual(got.Path, tt.wantPath) {
				t.Errorf("Path = %v, want %v", got.Path, tt.wantPath)
			}
		})
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	idx := buildIndex([]string{"A", "B", "C", "D"}, edge("A", "B", 1), edge("C", "D", 1))

	tests := []struct {
		name     string
		idx      *graph.Index
		from, to string
	}{
		{"unknown goal", idx, "A", "X"},
		{"unknown start", idx, "X", "A"},
		{"both unknown", idx, "X", "Y"},
		{"unknown same node", idx, "X", "X"},
		{"disconnected", idx, "A", "D"},
		{"empty graph", graph.Build(graph.Empty()), "A", "B"},
		{"nil index", nil, "A", "B"},
		{
			"distance overflows",
			buildIndex([]string{"A", "B", "C"}, edge("A", "B", 1e308), edge("B", "C", 1e308)),
			"A", "C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortestPath(tt.idx, tt.from, tt.to)
			if !math.IsInf(got.Distance, 1) {
				t.Errorf("Distance = %v, want +Inf", got.Distance)
			}
			if got.Path == nil || len(got.Path) != 0 {
				t.Errorf("Path = %#v, want empty non-nil slice", got.Path)
			}
			if got.Reachable() {
				t.Error("Reachable() = true, want false")
			}
			if got.Hops() != -1 {
				t.Errorf("Hops() = %d, want -1", got.Hops())
			}
		})
	}
}

// TestShortestPathProperties checks optimality, path consistency and
// symmetry on random graphs against a Floyd-Warshall reference.
func TestShortestPathProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 40; trial++ {
		n := 2 + rng.Intn(9)
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("n%d", i)
		}

		var edges []graph.Edge
		weights := make(map[[2]string][]float64)
		m := rng.Intn(n * 2)
		for i := 0; i < m; i++ {
			a, b := ids[rng.Intn(n)], ids[rng.Intn(n)]
			w := float64(rng.Intn(10))
			edges = append(edges, edge(a, b, w))
			weights[[2]string{a, b}] = append(weights[[2]string{a, b}], w)
			weights[[2]string{b, a}] = append(weights[[2]string{b, a}], w)
		}
		idx := buildIndex(ids, edges...)
		ref := floydWarshall(ids, edges)

		for _, a := range ids {
			for _, b := range ids {
				got := ShortestPath(idx, a, b)
				want := ref[a][b]

				if got.Distance != want {
					t.Fatalf("trial %d: %s->%s distance = %v, want %v", trial, a, b, got.Distance, want)
				}
				if math.IsInf(want, 1) {
					if len(got.Path) != 0 {
						t.Fatalf("trial %d: %s->%s path = %v, want empty", trial, a, b, got.Path)
					}
					continue
				}

				if got.Path[0] != a || got.Path[len(got.Path)-1] != b {
					t.Fatalf("trial %d: path %v does not run %s->%s", trial, got.Path, a, b)
				}
				if sum := pathWeight(t, weights, got.Path); sum != got.Distance {
					t.Fatalf("trial %d: path %v weighs %v, distance says %v", trial, got.Path, sum, got.Distance)
				}

				back := ShortestPath(idx, b, a)
				if back.Distance != got.Distance {
					t.Fatalf("trial %d: asymmetric distance %s<->%s: %v vs %v", trial, a, b, got.Distance, back.Distance)
				}
			}
		}
	}
}

// pathWeight sums the lightest edge between consecutive path nodes.
func pathWeight(t *testing.T, weights map[[2]string][]float64, path []string) float64 {
	t.Helper()
	var sum float64
	for i := 1; i < len(path); i++ {
		ws := weights[[2]string{path[i-1], path[i]}]
		if len(ws) == 0 {
			t.Fatalf("path %v uses missing edge %s-%s", path, path[i-1], path[i])
		}
		best := ws[0]
		for _, w := range ws[1:] {
			best = min(best, w)
		}
		sum += best
	}
	return sum
}

func floydWarshall(ids []string, edges []graph.Edge) map[string]map[string]float64 {
	d := make(map[string]map[string]float64, len(ids))
	for _, a := range ids {
		d[a] = make(map[string]float64, len(ids))
		for _, b := range ids {
			d[a][b] = math.Inf(1)
		}
		d[a][a] = 0
	}
	for _, e := range edges {
		d[e.Source][e.Target] = min(d[e.Source][e.Target], e.Weight)
		d[e.Target][e.Source] = min(d[e.Target][e.Source], e.Weight)
	}
	for _, k := range ids {
		for _, i := range ids {
			for _, j := range ids {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	return d
}

func TestShortestPathConcurrent(t *testing.T) {
	idx := buildIndex([]string{"A", "B", "C", "D"},
		edge("A", "B", 1), edge("B", "C", 1), edge("C", "D", 1), edge("A", "D", 5))

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ShortestPath(idx, "A", "D")
			if got.Distance != 3 {
				errs <- fmt.Sprintf("Distance = %v, want 3", got.Distance)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestResultJSON(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"reachable", Result{Distance: 3, Path: []string{"A", "B", "C"}}, `{"distance":3,"path":["A","B","C"]}`},
		{"fractional", Result{Distance: 0.5, Path: []string{"A", "B"}}, `{"distance":0.5,"path":["A","B"]}`},
		{"same node", Result{Distance: 0, Path: []string{"A"}}, `{"distance":0,"path":["A"]}`},
		{"unreachable", Unreachable(), `{"distance":null,"path":[]}`},
		{"nil path", Result{Distance: math.Inf(1)}, `{"distance":null,"path":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.res)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestResultUnmarshalJSON(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"distance":null,"path":[]}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !math.IsInf(r.Distance, 1) || r.Reachable() {
		t.Errorf("got %+v, want unreachable sentinel", r)
	}

	if err := json.Unmarshal([]byte(`{"distance":2,"path":["A","C","B"]}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if r.Distance != 2 || r.Hops() != 2 {
		t.Errorf("got %+v, want distance 2 over 2 hops", r)
	}
}
