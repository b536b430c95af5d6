package search

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// queuedPriority reports the priority of a queued cell
func queuedPriority(f *frontier, cell int) (float64, bool) {
	e := f.queued[cell]
	if e == nil {
		return 0, false
	}
	return e.priority, true
}

func drain(f *frontier) []int {
	var out []int
	for f.Len() > 0 {
		id, _ := f.Pop()
		out = append(out, id)
	}
	return out
}

func TestFrontierPopsAscending(t *testing.T) {
	f := newFrontier(10)
	f.Upsert(3, 2.5)
	f.Upsert(7, 0.5)
	f.Upsert(1, 4)
	f.Upsert(9, 1)

	assert.Equal(t, []int{7, 9, 3, 1}, drain(f))
}

func TestFrontierTiesByLowerID(t *testing.T) {
	f := newFrontier(10)
	for _, id := range []int{8, 2, 5, 0} {
		f.Upsert(id, 1)
	}
	assert.Equal(t, []int{0, 2, 5, 8}, drain(f))
}

func TestFrontierDecreaseKey(t *testing.T) {
	f := newFrontier(5)
	f.Upsert(1, 3)
	f.Upsert(2, 2)
	f.Upsert(3, 1)

	f.Upsert(1, 0.5)
	assert.Equal(t, 3, f.Len())

	p, ok := queuedPriority(f, 1)
	assert.True(t, ok)
	assert.Equal(t, 0.5, p)

	id, priority := f.Pop()
	assert.Equal(t, 1, id)
	assert.Equal(t, 0.5, priority)

	_, ok = queuedPriority(f, 1)
	assert.False(t, ok)

	assert.Equal(t, []int{3, 2}, drain(f))
}

func TestFrontierReinsertAfterPop(t *testing.T) {
	f := newFrontier(3)
	f.Upsert(0, 1)
	id, _ := f.Pop()
	assert.Equal(t, 0, id)

	f.Upsert(0, 5)
	f.Upsert(2, 4)
	assert.Equal(t, []int{2, 0}, drain(f))
}
