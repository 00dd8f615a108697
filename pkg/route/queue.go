package route

// item is a heap entry: a node and the tentative distance it was pushed with.
type item struct {
	id   string
	dist float64
}

// minQueue implements heap.Interface as a min-heap on dist.
// Entries may be stale; the search skips nodes already settled.
type minQueue []item

func (q minQueue) Len() int { return len(q) }

func (q minQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }

func (q minQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *minQueue) Push(x any) {
	*q = append(*q, x.(item))
}

func (q *minQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
