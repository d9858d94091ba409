package core

import "sync/atomic"

// EventQueue is a circular buffer of events for exactly one producer (the
// poll goroutine) and one consumer (the engine loop). Each side only ever
// stores its own index, so no lock is needed.
type EventQueue struct {
	buf   []Event
	size  uint32
	read  atomic.Uint32
	write atomic.Uint32
}

// NewEventQueue creates a queue holding up to capacity-1 events
func NewEventQueue(capacity int) *EventQueue {
	if capacity < 2 {
		capacity = 2
	}
	return &EventQueue{
		buf:  make([]Event, capacity),
		size: uint32(capacity),
	}
}

// Post appends one event. Producer side only.
func (q *EventQueue) Post(ev Event) error {
	w := q.write.Load()
	next := (w + 1) % q.size
	if next == q.read.Load() {
		// Buffer full
		return ErrQueueFull
	}
	q.buf[w] = ev
	q.write.Store(next)
	return nil
}

// Pop removes the oldest event. Consumer side only.
func (q *EventQueue) Pop() (Event, bool) {
	r := q.read.Load()
	if r == q.write.Load() {
		// Buffer empty
		return Event{}, false
	}
	ev := q.buf[r]
	q.read.Store((r + 1) % q.size)
	return ev, true
}

// Drain pops every queued event into fn and returns how many were handled
func (q *EventQueue) Drain(fn func(Event)) int {
	n := 0
	for {
		ev, ok := q.Pop()
		if !ok {
			return n
		}
		fn(ev)
		n++
	}
}

// Available returns the number of events waiting
func (q *EventQueue) Available() int {
	r, w := q.read.Load(), q.write.Load()
	if w >= r {
		return int(w - r)
	}
	return int(q.size - r + w)
}

// Free returns the number of events that can still be posted
func (q *EventQueue) Free() int {
	return int(q.size) - q.Available() - 1
}
