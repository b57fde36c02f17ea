// pkg/model/strike.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import "firewatch/pkg/geo"

// Strike is a lightning strike: created at load time and mutated exactly
// twice over its life (inspection time set; if ignited, suppression time
// set), never destroyed (§3).
type Strike struct {
	ID       int
	Location geo.Point
	SpawnTime float64

	// IgnitionProbabilityOverride, when non-nil, is used in place of the
	// scenario-global ignition_probability when drawing whether this strike
	// ignites (§4.4). RiskRating, when non-nil, is in [0,1] and feeds the
	// prioritisation function (§4.5).
	IgnitionProbabilityOverride *float64
	RiskRating                  *float64

	// Ignited is the derived outcome: either taken directly from the input
	// (if the tabular row provided an explicit boolean) or drawn from a
	// Bernoulli trial when the strike spawns. IgnitedExplicit distinguishes
	// "input said false" from "input said nothing, draw one" — both leave
	// Ignited false until resolved.
	Ignited         bool
	IgnitedExplicit bool

	// InspectionTime and SuppressionTime are nil until set; SuppressionTime
	// is only ever set when Ignited is true. Invariant: SpawnTime <=
	// *InspectionTime <= *SuppressionTime whenever present (I4).
	InspectionTime   *float64
	SuppressionTime  *float64

	// InspectedBy/SuppressedBy record which aircraft performed the service,
	// for the event-update output and for diagnostics; zero value (no
	// aircraft) is distinguished by Inspected/Suppressed below.
	InspectedBy  int
	Inspected    bool
	SuppressedBy int
	Suppressed   bool
}

// ResponseTime returns the UAV response time (inspection_time - spawn_time)
// if the strike has been inspected, else ok is false.
func (s *Strike) ResponseTime() (t float64, ok bool) {
	if s.InspectionTime == nil {
		return 0, false
	}
	return *s.InspectionTime - s.SpawnTime, true
}

// SuppressionResponseTime returns suppression_time - inspection_time (§
// GLOSSARY "Response time" for WBs) if the strike has been suppressed.
func (s *Strike) SuppressionResponseTime() (t float64, ok bool) {
	if s.SuppressionTime == nil || s.InspectionTime == nil {
		return 0, false
	}
	return *s.SuppressionTime - *s.InspectionTime, true
}

// SetInspected records the inspection outcome; it is an invariant violation
// (§7 kind 4) to call this more than once or before SpawnTime.
func (s *Strike) SetInspected(aircraftID int, t float64) {
	if s.InspectionTime != nil {
		panic("strike inspected twice")
	}
	if t < s.SpawnTime {
		panic("inspection_time before spawn_time")
	}
	s.InspectionTime = &t
	s.InspectedBy = aircraftID
	s.Inspected = true
}

// SetSuppressed records the suppression outcome. Only valid for an ignited,
// already-inspected strike.
func (s *Strike) SetSuppressed(aircraftID int, t float64) {
	if !s.Ignited {
		panic("suppression recorded for an unignited strike")
	}
	if s.InspectionTime == nil {
		panic("suppression recorded before inspection")
	}
	if s.SuppressionTime != nil {
		panic("strike suppressed twice")
	}
	if t < *s.InspectionTime {
		panic("suppression_time before inspection_time")
	}
	s.SuppressionTime = &t
	s.SuppressedBy = aircraftID
	s.Suppressed = true
}

// CheckJSON reports whether the decoded JSON value has the right shape to
// be a Strike, per the teacher's reflection-based schema-checking idiom
// (pkg/util.CheckJSON).
func (s Strike) CheckJSON(j interface{}) bool {
	m, ok := j.(map[string]interface{})
	if !ok {
		return false
	}
	_, hasLat := m["latitude"]
	_, hasLon := m["longitude"]
	_, hasTime := m["time"]
	return hasLat && hasLon && hasTime
}
