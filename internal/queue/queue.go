// Package queue implements generic double-ended queue on a ring buffer.
package queue

const minCapacity = 4

// Queue is a double-ended queue. Zero value is not usable, use New.
type Queue[T any] struct {
	items      []T
	head, size int
}

// New creates a queue containing items, first item is the head.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, capacityFor(len(items)))}
	q.size = copy(q.items, items)
	return q
}

func capacityFor(n int) int {
	c := minCapacity
	for c < n {
		c <<= 1
	}
	return c
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) index(i int) int {
	return (q.head + i) & (len(q.items) - 1)
}

// Items returns queued items from head to tail.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.size)
	for i := range result {
		result[i] = q.items[q.index(i)]
	}
	return result
}

// Append adds item to the tail.
func (q *Queue[T]) Append(item T) *Queue[T] {
	q.grow()
	q.items[q.index(q.size)] = item
	q.size++
	return q
}

// Prepend adds item to the head.
func (q *Queue[T]) Prepend(item T) *Queue[T] {
	q.grow()
	q.head = (q.head - 1) & (len(q.items) - 1)
	q.items[q.head] = item
	q.size++
	return q
}

// First removes and returns head item, returns false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head = q.index(1)
	q.size--
	q.shrink()
	return result, true
}

// Last removes and returns tail item, returns false if the queue is empty.
func (q *Queue[T]) Last() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	q.size--
	i := q.index(q.size)
	result := q.items[i]
	q.items[i] = zero
	q.shrink()
	return result, true
}

func (q *Queue[T]) grow() {
	if q.size < len(q.items) {
		return
	}
	q.resize(len(q.items) << 1)
}

func (q *Queue[T]) shrink() {
	if len(q.items) > minCapacity && q.size<<2 <= len(q.items) {
		q.resize(len(q.items) >> 1)
	}
}

func (q *Queue[T]) resize(capacity int) {
	items := make([]T, capacity)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[q.index(i)]
	}
	q.items = items
	q.head = 0
}
