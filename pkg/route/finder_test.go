package route

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/waypoint/pkg/observability"
)

type recordingQueryHooks struct {
	mu     sync.Mutex
	events []queryEvent
}

type queryEvent struct {
	from, to string
	hops     int
	distance float64
}

func (h *recordingQueryHooks) OnShortestPath(_ context.Context, from, to string, hops int, distance float64, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, queryEvent{from, to, hops, distance})
}

func TestFinderReportsQueries(t *testing.T) {
	hooks := &recordingQueryHooks{}
	observability.SetQueryHooks(hooks)
	t.Cleanup(observability.Reset)

	f := NewFinder(buildIndex([]string{"A", "B", "C", "X"}, edge("A", "B", 1), edge("B", "C", 2)))

	got := f.Find(context.Background(), "A", "C")
	if got.Distance != 3 {
		t.Errorf("Distance = %v, want 3", got.Distance)
	}
	f.Find(context.Background(), "A", "X")

	if len(hooks.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(hooks.events))
	}
	if e := hooks.events[0]; e.from != "A" || e.to != "C" || e.hops != 2 || e.distance != 3 {
		t.Errorf("events[0] = %+v, want A->C 2 hops distance 3", e)
	}
	if e := hooks.events[1]; e.hops != -1 || !math.IsInf(e.distance, 1) {
		t.Errorf("events[1] = %+v, want unreachable", e)
	}
}

func TestFinderIndex(t *testing.T) {
	idx := buildIndex([]string{"A"})
	if NewFinder(idx).Index() != idx {
		t.Error("Index() should return the wrapped index")
	}

	got := NewFinder(nil).Find(context.Background(), "A", "A")
	if got.Reachable() {
		t.Error("nil index should make every query unreachable")
	}
}
