package route

import (
	"container/heap"
	"encoding/json"
	"math"
	"slices"

	"github.com/matzehuels/waypoint/pkg/graph"
)

// Result is the answer to a shortest-path query.
type Result struct {
	// Distance is the total weight of Path, or +Inf when the goal is
	// unreachable.
	Distance float64
	// Path lists node ids from start to goal inclusive. Empty when
	// unreachable.
	Path []string
}

// Unreachable returns the sentinel result for a pair with no connecting path.
func Unreachable() Result {
	return Result{Distance: math.Inf(1), Path: []string{}}
}

// Reachable reports whether the result describes an actual path.
func (r Result) Reachable() bool {
	return !math.IsInf(r.Distance, 1) && len(r.Path) > 0
}

// Hops returns the number of edges along the path, or -1 if unreachable.
func (r Result) Hops() int {
	if !r.Reachable() {
		return -1
	}
	return len(r.Path) - 1
}

type resultJSON struct {
	Distance *float64 `json:"distance"`
	Path     []string `json:"path"`
}

// MarshalJSON encodes the unreachable distance as null and the path as an
// array, never null.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Path: r.Path}
	if out.Path == nil {
		out.Path = []string{}
	}
	if !math.IsInf(r.Distance, 1) {
		d := r.Distance
		out.Distance = &d
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a result written by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Distance = math.Inf(1)
	if in.Distance != nil {
		r.Distance = *in.Distance
	}
	r.Path = in.Path
	if r.Path == nil {
		r.Path = []string{}
	}
	return nil
}

// ShortestPath returns a minimum-weight path from start to goal.
//
// If either id is absent from idx, or no path connects them, it returns
// [Unreachable]. If start == goal and the node exists, the distance is 0 and
// the path is [start].
func ShortestPath(idx *graph.Index, start, goal string) Result {
	if !idx.Has(start) || !idx.Has(goal) {
		return Unreachable()
	}

	dist := map[string]float64{start: 0}
	prev := make(map[string]string)
	settled := make(map[string]bool)

	q := &minQueue{{id: start, dist: 0}}
	for q.Len() > 0 {
		cur := heap.Pop(q).(item)
		if settled[cur.id] {
			continue
		}
		settled[cur.id] = true
		if cur.id == goal {
			break
		}

		for _, nb := range idx.Neighbors(cur.id) {
			alt := cur.dist + nb.Weight
			if math.IsInf(alt, 1) {
				continue
			}
			if best, ok := dist[nb.ID]; ok && alt >= best {
				continue
			}
			dist[nb.ID] = alt
			prev[nb.ID] = cur.id
			heap.Push(q, item{id: nb.ID, dist: alt})
		}
	}

	return reconstruct(dist, prev, start, goal)
}

// reconstruct walks predecessors back from goal. A goal other than start
// without a predecessor was never reached.
func reconstruct(dist map[string]float64, prev map[string]string, start, goal string) Result {
	if _, ok := prev[goal]; !ok && goal != start {
		return Unreachable()
	}

	path := []string{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)

	return Result{Distance: dist[goal], Path: path}
}
