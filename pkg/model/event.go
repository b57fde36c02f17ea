// pkg/model/event.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import "firewatch/pkg/geo"

// Event is one entry in an aircraft's task queue: a discriminated record
// among {GoTo, Inspect, Suppress, RefuelAt, RefillWaterAt, Hover} (§3).
// Only the fields relevant to Kind are meaningful; this mirrors the
// tagged-variant-over-interface-hierarchy guidance of SPEC_FULL.md §9.
type Event struct {
	Kind EventKind

	// Target is the location the aircraft must reach before the event's
	// service (if any) begins. For Inspect/Suppress it is the strike's
	// location; for RefuelAt/RefillWaterAt it is the base/tank location;
	// for GoTo it is the destination itself; for Hover it is the aircraft's
	// current location (no travel).
	Target geo.Point
	Reason string // human-readable reason for a bare GoTo, used in the event log

	StrikeID int // valid for Inspect/Suppress
	BaseID   int // valid for RefuelAt
	TankID   int // valid for RefillWaterAt

	HoverUntil float64 // valid for Hover

	// ScheduledStart/ScheduledEnd are computed once the event is placed in
	// a queue: ScheduledStart is when the aircraft arrives at Target (after
	// travel), ScheduledEnd is ScheduledStart plus the event's service
	// duration (zero for GoTo and Hover is scheduled directly as an
	// interval).
	ScheduledStart float64
	ScheduledEnd   float64
}

// GoToEvent constructs a bare travel event with no service at its end.
func GoToEvent(target geo.Point, reason string) Event {
	return Event{Kind: GoTo, Target: target, Reason: reason}
}

// InspectEvent constructs a service event visiting the given strike.
func InspectEvent(strike *Strike) Event {
	return Event{Kind: Inspect, Target: strike.Location, StrikeID: strike.ID}
}

// SuppressEvent constructs a service event suppressing the given strike.
func SuppressEvent(strike *Strike) Event {
	return Event{Kind: Suppress, Target: strike.Location, StrikeID: strike.ID}
}

// RefuelEvent constructs a refuel stop at the given base.
func RefuelEvent(base Base) Event {
	return Event{Kind: RefuelAt, Target: base.Location, BaseID: base.ID}
}

// RefillWaterEvent constructs a water refill stop at the given tank.
func RefillWaterEvent(tank WaterTank) Event {
	return Event{Kind: RefillWaterAt, Target: tank.Location, TankID: tank.ID}
}

// HoverEvent constructs a stationary hold at the aircraft's current
// location until the given simulated time.
func HoverEvent(at geo.Point, until float64) Event {
	return Event{Kind: Hover, Target: at, HoverUntil: until}
}
