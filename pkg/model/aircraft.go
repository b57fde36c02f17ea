// pkg/model/aircraft.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import "firewatch/pkg/geo"

// UAVAttributes holds the kind-specific parameters of an inspection UAV (§3).
type UAVAttributes struct {
	RangeAtFull     float64 // km per full tank
	InspectionTime  float64 // minutes
	Prioritisation  PrioritisationFunction
}

// WaterBomberAttributes holds the kind-specific parameters of a water
// bomber. A WB's effective range depends on whether it is carrying water.
type WaterBomberAttributes struct {
	KindName          string // e.g. "heavy", "light" — used for base-admission tags
	RangeEmpty        float64
	RangeUnderLoad    float64
	SuppressionTime   float64
	WaterRefillTime   float64
	WaterPerSuppression float64
	WaterCapacity     float64
}

// Aircraft is the tagged-variant type shared by UAVs and water bombers: the
// queue and state-machine mechanics below are common; UAV and WB fields are
// mutually exclusive and selected by Kind (SPEC_FULL.md §9).
type Aircraft struct {
	ID            int
	Kind          AircraftKind
	SpawnLocation geo.Point

	FlightSpeed    float64 // km/h, common to both kinds
	FuelRefillTime float64 // minutes
	PctFuelCutoff  float64 // minimum fuel-fraction reserve, in [0,1]

	UAV *UAVAttributes
	WB  *WaterBomberAttributes

	// Dynamic state.
	Location     geo.Point
	FuelFraction float64 // in [0,1]
	WaterLevel   float64 // WB only; ignored for UAVs
	Queue        []Event
	IdleSince    float64
	EventLog     []EventLogRecord

	// Version increments every time the queue is rebuilt by a coordinator
	// replan; the scheduler uses it to discard events popped from the
	// global queue that were superseded by a later plan (§4.2) instead of
	// ever mutating or removing an already-enqueued event.
	Version int
}

// NewUAV constructs a UAV in the Idle state at its spawn location with full
// fuel, ready to be placed in the fleet arena.
func NewUAV(id int, spawn geo.Point, flightSpeed, fuelRefillTime, pctFuelCutoff float64, attrs UAVAttributes) Aircraft {
	return Aircraft{
		ID: id, Kind: UAV, SpawnLocation: spawn,
		FlightSpeed: flightSpeed, FuelRefillTime: fuelRefillTime, PctFuelCutoff: pctFuelCutoff,
		UAV: &attrs, Location: spawn, FuelFraction: 1,
	}
}

// NewWaterBomber constructs a WB in the Idle state at its spawn location
// with full fuel and a full water tank.
func NewWaterBomber(id int, spawn geo.Point, flightSpeed, fuelRefillTime, pctFuelCutoff float64, attrs WaterBomberAttributes) Aircraft {
	return Aircraft{
		ID: id, Kind: WaterBomber, SpawnLocation: spawn,
		FlightSpeed: flightSpeed, FuelRefillTime: fuelRefillTime, PctFuelCutoff: pctFuelCutoff,
		WB: &attrs, Location: spawn, FuelFraction: 1, WaterLevel: attrs.WaterCapacity,
	}
}

// CarryingWater reports whether a WB currently has enough water onboard to
// matter for its effective range; UAVs never carry water.
func (a *Aircraft) CarryingWater() bool {
	return a.Kind == WaterBomber && a.WaterLevel > 0
}

// RangeAtFullKm returns the aircraft's range in km on a full tank, given its
// current load state (for a WB, whether it is carrying water).
func (a *Aircraft) RangeAtFullKm() float64 {
	if a.Kind == UAV {
		return a.UAV.RangeAtFull
	}
	if a.CarryingWater() {
		return a.WB.RangeUnderLoad
	}
	return a.WB.RangeEmpty
}

// CurrentRangeKm returns how much farther the aircraft can fly before
// hitting its fuel cutoff reserve, at its current fuel fraction.
func (a *Aircraft) CurrentRangeKm() float64 {
	usable := a.FuelFraction - a.PctFuelCutoff
	if usable < 0 {
		usable = 0
	}
	return usable * a.RangeAtFullKm()
}

// FuelFractionAfter returns the fuel fraction remaining after flying the
// given distance at the aircraft's current load state.
func (a *Aircraft) FuelFractionAfter(distanceKm float64) float64 {
	r := a.RangeAtFullKm()
	if r <= 0 {
		return a.FuelFraction
	}
	f := a.FuelFraction - distanceKm/r
	if f < 0 {
		f = 0
	}
	return f
}

// FlightMinutes returns how long, in minutes, it takes to fly distanceKm at
// the aircraft's flight speed (km/h).
func (a *Aircraft) FlightMinutes(distanceKm float64) float64 {
	if a.FlightSpeed <= 0 {
		return 0
	}
	return distanceKm / a.FlightSpeed * 60
}

// ApplyTravel moves the aircraft to loc, consuming fuel for the great-circle
// distance travelled. It is an invariant violation (I1, §7 kind 4) for the
// resulting fuel fraction to fall outside [0,1]; FuelFractionAfter already
// clamps the lower bound, so only an upstream planning bug could trip this.
func (a *Aircraft) ApplyTravel(loc geo.Point) float64 {
	d := geo.Distance(a.Location, loc)
	a.FuelFraction = a.FuelFractionAfter(d)
	if a.FuelFraction < 0 || a.FuelFraction > 1 {
		panic("fuel fraction left [0,1] after travel")
	}
	a.Location = loc
	return d
}

// Refuel restores fuel to full; it is called once FuelRefillTime minutes
// have elapsed at a base.
func (a *Aircraft) Refuel() {
	a.FuelFraction = 1
}

// RefillWater restores the WB's water to capacity and debits tank by the
// same amount; called once WaterRefillTime minutes have elapsed at a tank.
func (a *Aircraft) RefillWater(tank *WaterTank) {
	need := a.WB.WaterCapacity - a.WaterLevel
	tank.Debit(need)
	a.WaterLevel = a.WB.WaterCapacity
}

// Suppress debits the onboard water for one suppression. It is an
// invariant violation (I2) to call this with insufficient water onboard.
func (a *Aircraft) Suppress() {
	if a.WaterLevel < a.WB.WaterPerSuppression {
		panic("suppression attempted without sufficient onboard water")
	}
	a.WaterLevel -= a.WB.WaterPerSuppression
}

// ServiceTime returns the minutes the aircraft spends performing its
// service event (inspection or suppression) once on-station.
func (a *Aircraft) ServiceTime() float64 {
	if a.Kind == UAV {
		return a.UAV.InspectionTime
	}
	return a.WB.SuppressionTime
}

// State returns the aircraft's observable state, driven only by the kind of
// event (if any) at the head of its queue (§4.3).
func (a *Aircraft) State() AircraftState {
	if len(a.Queue) == 0 {
		return Idle
	}
	return StateForEvent(a.Queue[0].Kind)
}

// EventLogRecord is one append-only entry in an aircraft's observable
// history, matching the *_event_updates.csv row shape (SPEC_FULL.md §6.3).
type EventLogRecord struct {
	AircraftID           int
	Location             geo.Point
	TimeMinutes          float64
	DistanceTravelledKm  float64
	DistanceHoveredKm    float64
	FuelPct              float64
	CurrentRangeKm       float64
	Status               AircraftState
	NextUpdates          string
	WaterCapacityL       float64 // WB rows only
	HasWaterCapacity     bool
}

// Log appends a record to the aircraft's observable event log.
func (a *Aircraft) Log(rec EventLogRecord) {
	a.EventLog = append(a.EventLog, rec)
}
