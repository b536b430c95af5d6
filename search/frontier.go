package search

import (
	"container/heap"
)

// entry is one cell waiting in the frontier
type entry struct {
	cell     int     // id of the cell in the graph
	priority float64 // distance from source (Dijkstra) or g + h (A*)
	index    int     // index in the heap, -1 once popped
}

// queue implements heap.Interface ordered by priority, then by lower cell id
type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].cell < q[j].cell
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x interface{}) {
	n := len(*q)
	e := x.(*entry)
	e.index = n
	*q = append(*q, e)
}

func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[0 : n-1]
	return e
}

// frontier is a min-priority queue holding at most one entry per cell.
// Lowering the priority of a queued cell fixes its entry in place.
type frontier struct {
	q      queue
	queued []*entry // by cell id, nil when the cell is not queued
}

func newFrontier(size int) *frontier {
	return &frontier{
		q:      make(queue, 0, 16),
		queued: make([]*entry, size),
	}
}

func (f *frontier) Len() int { return f.q.Len() }

// Upsert inserts the cell, or moves its existing entry to the new priority.
func (f *frontier) Upsert(cell int, priority float64) {
	if e := f.queued[cell]; e != nil {
		e.priority = priority
		heap.Fix(&f.q, e.index)
		return
	}
	e := &entry{cell: cell, priority: priority}
	heap.Push(&f.q, e)
	f.queued[cell] = e
}

// Pop removes and returns the cell with the lowest priority.
func (f *frontier) Pop() (int, float64) {
	e := heap.Pop(&f.q).(*entry)
	f.queued[e.cell] = nil
	return e.cell, e.priority
}
