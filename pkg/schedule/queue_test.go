// pkg/schedule/queue_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package schedule

import "testing"

func TestEventQueueOrdersByTime(t *testing.T) {
	q := NewEventQueue()
	q.Push(5, 1, 0)
	q.Push(1, 2, 0)
	q.Push(3, 3, 0)

	var order []int
	for !q.Empty() {
		e, _ := q.PopMin()
		order = append(order, e.AircraftID)
	}
	want := []int{2, 3, 1}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("at %d: got aircraft %d, want %d", i, order[i], id)
		}
	}
}

func TestEventQueueTiesBreakByInsertionOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(10, 100, 0)
	q.Push(10, 200, 0)
	q.Push(10, 300, 0)

	for _, want := range []int{100, 200, 300} {
		e, ok := q.PopMin()
		if !ok || e.AircraftID != want {
			t.Errorf("expected aircraft %d next, got %d (ok=%v)", want, e.AircraftID, ok)
		}
	}
}

func TestPeekMinDoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Push(1, 1, 0)
	if _, ok := q.PeekMin(); !ok {
		t.Fatal("expected a peekable event")
	}
	if q.Len() != 1 {
		t.Errorf("expected PeekMin to leave the queue untouched, len=%d", q.Len())
	}
}

func TestVersionSupersessionDetectedAtPop(t *testing.T) {
	q := NewEventQueue()
	// A stale plan for aircraft 1 at version 0...
	q.Push(5, 1, 0)
	// ...superseded by a fresh plan at version 1, pushed later but for an
	// earlier time, as a replan would do.
	q.Push(2, 1, 1)

	e, _ := q.PopMin()
	if e.Time != 2 || e.AircraftVersion != 1 {
		t.Fatalf("expected the fresh replan first, got %+v", e)
	}
	stale, _ := q.PopMin()
	if stale.AircraftVersion != 0 {
		t.Fatalf("expected the stale event to still be poppable (caller discards by version check), got %+v", stale)
	}
}

func TestClockAdvanceBackwardsPanics(t *testing.T) {
	var c Clock
	c.Advance(5)
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic advancing clock backwards")
		}
	}()
	c.Advance(4)
}

func TestEmptyQueuePopReturnsNotOK(t *testing.T) {
	q := NewEventQueue()
	if _, ok := q.PopMin(); ok {
		t.Errorf("expected PopMin on empty queue to report ok=false")
	}
}
