// pkg/schedule/queue.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package schedule

import "container/heap"

// ScheduledEvent is one entry in the global event queue: the time it fires,
// a monotonic sequence number breaking ties deterministically (§4.2), and
// enough to identify which aircraft event it refers to. AircraftVersion is
// snapshotted at push time; at pop time the scheduler compares it against
// the aircraft's current Version to detect a superseded plan (§4.2, §5) —
// the event itself is never mutated or removed once pushed.
type ScheduledEvent struct {
	Time            float64
	Sequence        uint64
	AircraftID      int
	AircraftVersion int
}

// Less orders by (Time, Sequence): earlier time first, and among equal
// times, earlier sequence (i.e. earlier insertion) first, giving
// deterministic FIFO among simultaneous events.
func (e ScheduledEvent) Less(o ScheduledEvent) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	return e.Sequence < o.Sequence
}

type eventHeap []ScheduledEvent

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(ScheduledEvent)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// EventQueue is the global min-heap of ScheduledEvents keyed on
// (time, sequence_id), per SPEC_FULL.md §4.2. No operation removes an
// already-pushed event; replanning pushes a fresh head event carrying a
// newer AircraftVersion, and the stale one is discarded when it is popped.
type EventQueue struct {
	h          eventHeap
	nextSeq    uint64
}

// NewEventQueue returns an empty queue ready to use.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.h)
	return q
}

// Push enqueues an event for the given aircraft at the given time, tagged
// with the aircraft's current version so later supersession can be
// detected at pop time.
func (q *EventQueue) Push(time float64, aircraftID, aircraftVersion int) {
	heap.Push(&q.h, ScheduledEvent{
		Time: time, Sequence: q.nextSeq, AircraftID: aircraftID, AircraftVersion: aircraftVersion,
	})
	q.nextSeq++
}

// PopMin removes and returns the earliest-scheduled event. ok is false if
// the queue is empty.
func (q *EventQueue) PopMin() (ScheduledEvent, bool) {
	if q.h.Len() == 0 {
		return ScheduledEvent{}, false
	}
	return heap.Pop(&q.h).(ScheduledEvent), true
}

// PeekMin returns the earliest-scheduled event without removing it.
func (q *EventQueue) PeekMin() (ScheduledEvent, bool) {
	if q.h.Len() == 0 {
		return ScheduledEvent{}, false
	}
	return q.h[0], true
}

// Len reports how many events remain queued.
func (q *EventQueue) Len() int { return q.h.Len() }

// Empty reports whether the queue has no more events.
func (q *EventQueue) Empty() bool { return q.h.Len() == 0 }
