// Package fifo provides the ring buffer that remembers the order in which
// cache slots were filled.
package fifo

import "log"

const empty = -1

// A Queue is a fixed-capacity circular FIFO of slot indices.
type Queue struct {
	slots []int
	head  int
	tail  int
	size  int
}

// NewQueue creates a queue that holds up to capacity entries.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		log.Panicf("queue capacity must be positive, got %d", capacity)
	}

	q := &Queue{slots: make([]int, capacity)}
	q.Reset()

	return q
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.head = empty
	q.tail = empty
	q.size = 0
}

// Capacity returns the maximum number of entries.
func (q *Queue) Capacity() int {
	return len(q.slots)
}

// Size returns the number of entries in the queue.
func (q *Queue) Size() int {
	return q.size
}

// Enqueue appends a slot index at the tail.
func (q *Queue) Enqueue(slot int) {
	if q.size == len(q.slots) {
		log.Panicf("enqueue slot %d into a full queue of %d",
			slot, len(q.slots))
	}

	if q.head == empty {
		q.head = 0
	}

	q.tail = (q.tail + 1) % len(q.slots)
	q.slots[q.tail] = slot
	q.size++
}

// Dequeue removes and returns the oldest slot index.
func (q *Queue) Dequeue() int {
	if q.size == 0 {
		log.Panic("dequeue from an empty queue")
	}

	slot := q.slots[q.head]
	q.head = (q.head + 1) % len(q.slots)
	q.size--

	return slot
}

// Peek returns the oldest slot index without removing it.
func (q *Queue) Peek() (int, bool) {
	if q.size == 0 {
		return 0, false
	}

	return q.slots[q.head], true
}

// Entries lists the slot indices from the oldest to the newest.
func (q *Queue) Entries() []int {
	entries := make([]int, 0, q.size)
	for i := 0; i < q.size; i++ {
		entries = append(entries, q.slots[(q.head+i)%len(q.slots)])
	}

	return entries
}
