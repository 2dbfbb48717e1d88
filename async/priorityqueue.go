package async

import "sort"

type lesser[E any] interface {
	less(v E) bool
}

// priorityqueue keeps its elements sorted. Elements that compare equal
// keep their insertion order.
type priorityqueue[E lesser[E]] struct {
	items []E
	start int
}

func (q *priorityqueue[E]) Empty() bool {
	return q.start == len(q.items)
}

func (q *priorityqueue[E]) Len() int {
	return len(q.items) - q.start
}

func (q *priorityqueue[E]) Push(v E) {
	if q.start != 0 && len(q.items) == cap(q.items) {
		// Reclaim the popped prefix before growing.
		n := copy(q.items, q.items[q.start:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.start = 0
	}

	s := q.items[q.start:]

	i := sort.Search(len(s), func(i int) bool {
		return v.less(s[i])
	})

	var zero E

	q.items = append(q.items, zero)
	s = q.items[q.start:]
	copy(s[i+1:], s[i:])
	s[i] = v
}

func (q *priorityqueue[E]) Pop() (v E) {
	q.items[q.start], v = v, q.items[q.start]
	q.start++

	if q.start == len(q.items) {
		q.items = q.items[:0]
		q.start = 0
	}

	return v
}
