// pkg/dispatch/route.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dispatch implements the coordinator policy layer (SPEC_FULL.md
// §4.5): the four closed-set strategies that assign strikes to aircraft,
// insert refuel/rearm stops as needed, and check feasibility against fuel
// range and water logistics.
package dispatch

import (
	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

// routeStep is one concrete, scheduled leg of a candidate plan: either a
// service event (Inspect/Suppress) or a housekeeping stop (RefuelAt,
// RefillWaterAt) inserted just-in-time by planStrikes.
type routeStep struct {
	Event               model.Event
	ArriveTime, DepartTime float64
	FuelAtArrive, FuelAtDepart float64
}

// flightState is the mutable cursor planStrikes and its helpers thread
// through a candidate route: where the aircraft is, what time it is, and
// how much fuel/water it is carrying at that point in the hypothetical plan.
type flightState struct {
	loc   geo.Point
	time  float64
	fuel  float64
	water float64
}

// ensureFuel inserts a RefuelAt stop ahead of flying to target if the
// aircraft's current fuel cannot cover the distance while preserving
// pct_fuel_cutoff. Only the nearest admitting base is considered, and
// only if it is reachable on current fuel; farther bases are not tried.
// Returns false if that base is out of reach, or if the target remains
// out of range even after refuelling there.
func (c *Coordinator) ensureFuel(a *model.Aircraft, st *flightState, target geo.Point) ([]routeStep, bool) {
	usable := (st.fuel - a.PctFuelCutoff) * rangeForState(a, st)
	if geo.Distance(st.loc, target) <= usable {
		return nil, true
	}

	base, ok := c.nearestReachableBase(a, st.loc, usable)
	if !ok {
		return nil, false
	}
	d := geo.Distance(st.loc, base.Location)
	flightMin := a.FlightMinutes(d)
	arrive := st.time + flightMin
	fuelAtArrive := st.fuel - d/rangeForState(a, st)

	depart := arrive + a.FuelRefillTime
	step := routeStep{
		Event:        model.RefuelEvent(base),
		ArriveTime:   arrive,
		DepartTime:   depart,
		FuelAtArrive: fuelAtArrive,
		FuelAtDepart: 1,
	}
	st.loc, st.time, st.fuel = base.Location, depart, 1

	// Re-check: even with a full tank, the target must now be reachable.
	usable = (st.fuel - a.PctFuelCutoff) * rangeForState(a, st)
	if geo.Distance(st.loc, target) > usable {
		return nil, false
	}
	return []routeStep{step}, true
}

// ensureWater inserts a RefillWaterAt stop if the WB's onboard water is
// below needed, trying tanks nearest-first and skipping any that are
// empty or unreachable, per §4.5's re-route-on-exhaustion behaviour.
func (c *Coordinator) ensureWater(a *model.Aircraft, st *flightState, needed float64) ([]routeStep, bool) {
	if st.water >= needed {
		return nil, true
	}

	tanks := c.tanksByDistance(st.loc, needed)
	for _, tank := range tanks {
		trial := *st
		fuelSteps, ok := c.ensureFuel(a, &trial, tank.Location)
		if !ok {
			continue
		}
		d := geo.Distance(trial.loc, tank.Location)
		flightMin := a.FlightMinutes(d)
		arrive := trial.time + flightMin
		fuelAtArrive := trial.fuel - d/rangeForState(a, &trial)
		depart := arrive + a.WB.WaterRefillTime

		step := routeStep{
			Event:        model.RefillWaterEvent(*tank),
			ArriveTime:   arrive,
			DepartTime:   depart,
			FuelAtArrive: fuelAtArrive,
			FuelAtDepart: fuelAtArrive,
		}
		*st = trial
		st.loc, st.time, st.fuel, st.water = tank.Location, depart, fuelAtArrive, a.WB.WaterCapacity
		return append(fuelSteps, step), true
	}
	return nil, false
}

// rangeForState returns the aircraft's per-fuel-fraction range in km given
// whether the hypothetical state is carrying water (WBs only).
func rangeForState(a *model.Aircraft, st *flightState) float64 {
	if a.Kind == model.UAV {
		return a.UAV.RangeAtFull
	}
	if st.water > 0 {
		return a.WB.RangeUnderLoad
	}
	return a.WB.RangeEmpty
}

// planStrikes simulates flying the aircraft, starting from the given
// state, through an ordered list of strike ids, auto-inserting
// RefuelAt/RefillWaterAt stops just-in-time. It returns the concrete step
// sequence (service events interleaved with any inserted housekeeping
// stops) and whether every strike in the list was feasibly reached.
func (c *Coordinator) planStrikes(a *model.Aircraft, start flightState, strikeIDs []int) ([]routeStep, bool) {
	st := start
	var steps []routeStep

	for _, id := range strikeIDs {
		strike := c.Strikes.Get(id)

		if a.Kind == model.WaterBomber {
			waterSteps, ok := c.ensureWater(a, &st, a.WB.WaterPerSuppression)
			if !ok {
				return nil, false
			}
			steps = append(steps, waterSteps...)
		}

		fuelSteps, ok := c.ensureFuel(a, &st, strike.Location)
		if !ok {
			return nil, false
		}
		steps = append(steps, fuelSteps...)

		d := geo.Distance(st.loc, strike.Location)
		flightMin := a.FlightMinutes(d)
		arrive := st.time + flightMin
		fuelAtArrive := st.fuel - d/rangeForState(a, &st)

		depart := arrive + a.ServiceTime()

		ev := model.InspectEvent(strike)
		if a.Kind == model.WaterBomber {
			ev = model.SuppressEvent(strike)
		}
		ev.ScheduledStart, ev.ScheduledEnd = arrive, depart
		steps = append(steps, routeStep{
			Event: ev, ArriveTime: arrive, DepartTime: depart,
			FuelAtArrive: fuelAtArrive, FuelAtDepart: fuelAtArrive,
		})

		st.loc, st.time, st.fuel = strike.Location, depart, fuelAtArrive
		if a.Kind == model.WaterBomber {
			st.water -= a.WB.WaterPerSuppression
		}
	}

	// The final resting state must be within reach of a refuel base (queue
	// invariant 4, §3): verify one exists, without committing to flying
	// there (the aircraft may go idle and be re-tasked before it matters).
	usable := (st.fuel - a.PctFuelCutoff) * rangeForState(a, &st)
	if _, ok := c.nearestReachableBase(a, st.loc, usable); !ok {
		return nil, false
	}
	return steps, true
}
