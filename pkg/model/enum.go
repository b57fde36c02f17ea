// pkg/model/enum.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import "fmt"

// AircraftKind distinguishes the two fleets. Both share queue and
// state-machine mechanics; only their attributes and service event differ.
type AircraftKind int

const (
	UAV AircraftKind = iota
	WaterBomber
)

func (k AircraftKind) String() string {
	switch k {
	case UAV:
		return "uav"
	case WaterBomber:
		return "water_bomber"
	default:
		return fmt.Sprintf("AircraftKind(%d)", int(k))
	}
}

// CoordinatorPolicy is the closed set of dispatch strategies a fleet may be
// configured with. Replacing a free-form config string with this enumeration
// at load time turns "unrecognised coordinator name" into a schema error
// instead of a runtime surprise.
type CoordinatorPolicy int

const (
	Simple CoordinatorPolicy = iota
	Insertion
	MinimiseMeanTime
	ReprocessMaxTime
)

func (p CoordinatorPolicy) String() string {
	switch p {
	case Simple:
		return "Simple"
	case Insertion:
		return "Insertion"
	case MinimiseMeanTime:
		return "MinimiseMeanTime"
	case ReprocessMaxTime:
		return "ReprocessMaxTime"
	default:
		return fmt.Sprintf("CoordinatorPolicy(%d)", int(p))
	}
}

// ParseCoordinatorPolicy parses the canonical policy names. An unrecognised
// name is a schema error (§7 kind 1), not something callers should guess at.
func ParseCoordinatorPolicy(s string) (CoordinatorPolicy, error) {
	switch s {
	case "Simple":
		return Simple, nil
	case "Insertion":
		return Insertion, nil
	case "MinimiseMeanTime":
		return MinimiseMeanTime, nil
	case "ReprocessMaxTime":
		return ReprocessMaxTime, nil
	default:
		return 0, fmt.Errorf("%q: unrecognised coordinator policy", s)
	}
}

// PrioritisationFunction computes the scalar weight a strike's cost is
// multiplied by when priority weighting is enabled.
type PrioritisationFunction int

const (
	// PriorityNone treats every strike with weight 1, regardless of risk rating.
	PriorityNone PrioritisationFunction = iota
	PriorityProduct
	PrioritySum
	PriorityRiskOnly
)

func ParsePrioritisationFunction(s string) (PrioritisationFunction, error) {
	switch s {
	case "", "none":
		return PriorityNone, nil
	case "product":
		return PriorityProduct, nil
	case "sum":
		return PrioritySum, nil
	case "risk_only":
		return PriorityRiskOnly, nil
	default:
		return 0, fmt.Errorf("%q: unrecognised prioritisation_function", s)
	}
}

// Weight returns w(strike) per SPEC_FULL.md §4.5: unrisked strikes always
// weigh 1; otherwise the configured function combines the base cost and the
// strike's risk rating.
func (f PrioritisationFunction) Weight(cost float64, risk *float64) float64 {
	if risk == nil {
		return 1
	}
	switch f {
	case PriorityProduct:
		return cost * *risk
	case PrioritySum:
		return cost + *risk
	case PriorityRiskOnly:
		return *risk
	default:
		return 1
	}
}

// EventKind discriminates the per-aircraft task queue entries (§3 Event).
type EventKind int

const (
	GoTo EventKind = iota
	Inspect
	Suppress
	RefuelAt
	RefillWaterAt
	Hover
)

func (k EventKind) String() string {
	switch k {
	case GoTo:
		return "GoTo"
	case Inspect:
		return "Inspect"
	case Suppress:
		return "Suppress"
	case RefuelAt:
		return "RefuelAt"
	case RefillWaterAt:
		return "RefillWaterAt"
	case Hover:
		return "Hover"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// AircraftState is the externally-observable state an aircraft is in,
// driven solely by the kind of the event at the head of its queue (§4.3).
type AircraftState int

const (
	Idle AircraftState = iota
	Travelling
	Servicing
	Refuelling
	RefillingWater
	Hovering
)

func (s AircraftState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Travelling:
		return "Travelling"
	case Servicing:
		return "Servicing"
	case Refuelling:
		return "Refuelling"
	case RefillingWater:
		return "RefillingWater"
	case Hovering:
		return "Hovering"
	default:
		return fmt.Sprintf("AircraftState(%d)", int(s))
	}
}

// StateForEvent returns the observable state an aircraft is in while it is
// travelling to, and then performing, the given event kind.
func StateForEvent(k EventKind) AircraftState {
	switch k {
	case Inspect, Suppress:
		return Servicing
	case RefuelAt:
		return Refuelling
	case RefillWaterAt:
		return RefillingWater
	case Hover:
		return Hovering
	default:
		return Travelling
	}
}
