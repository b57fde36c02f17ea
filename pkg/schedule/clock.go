// pkg/schedule/clock.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package schedule implements the simulation's discrete-event core: a
// monotonic clock and a min-heap event queue with stable tie-breaking and
// version-based supersession (SPEC_FULL.md §4.2). It is deliberately the
// only place simulated time is represented; everything else learns "now"
// by asking the Clock.
package schedule

// Clock holds the simulation's current time, in minutes. It only ever
// advances forward, driven by the event queue: the simulation reads Now()
// between event pops, never mutates it directly.
type Clock struct {
	now float64
}

func (c *Clock) Now() float64 { return c.now }

// Advance moves the clock forward to t. It is an invariant violation for
// simulated time to move backwards (I5: event log times per aircraft are
// non-decreasing, and the queue discipline guarantees the same globally).
func (c *Clock) Advance(t float64) {
	if t < c.now {
		panic("simulated clock moved backwards")
	}
	c.now = t
}
