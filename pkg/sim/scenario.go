// pkg/sim/scenario.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sim wires the pieces built elsewhere in this module — fleets,
// coordinators, the event scheduler, and the idle-UAV force controller —
// into one runnable scenario (SPEC_FULL.md §2, §4.3, §4.4). It owns the
// one loop that advances simulated time: everything else only reacts
// when this package calls it.
package sim

import (
	"fmt"
	"math"
	"sort"

	"firewatch/pkg/dispatch"
	"firewatch/pkg/force"
	"firewatch/pkg/geo"
	"firewatch/pkg/log"
	"firewatch/pkg/model"
	rnd "firewatch/pkg/rand"
	"firewatch/pkg/schedule"
)

// wbIDOffset distinguishes water-bomber aircraft ids from UAV aircraft
// ids in the single global event queue: the two fleets are separate
// model.Fleet arenas, each with its own zero-based id space, so a
// ScheduledEvent's bare AircraftID is ambiguous on its own (§4.2 assumes
// one combined id space; this is how that combined space is realised
// without changing pkg/schedule's general-purpose queue).
const wbIDOffset = 1 << 20

func encodeID(kind model.AircraftKind, id int) int {
	if kind == model.WaterBomber {
		return id + wbIDOffset
	}
	return id
}

func decodeID(global int) (model.AircraftKind, int) {
	if global >= wbIDOffset {
		return model.WaterBomber, global - wbIDOffset
	}
	return model.UAV, global
}

// Scenario is one fully-wired, ready-to-run simulation instance (§2's
// "flow" paragraph, §9 "global state as per-simulation context values").
type Scenario struct {
	Name string

	UAVFleet *model.Fleet
	WBFleet  *model.Fleet
	Strikes  *model.StrikeArena
	Tanks    []*model.WaterTank

	UAVCoordinator *dispatch.Coordinator
	WBCoordinator  *dispatch.Coordinator

	Force          *force.Controller
	ForceDtMinutes float64
	ForceTargets   []geo.Point
	Forecast       *force.ForecastConfig
	ForecastOrigin geo.Point

	IgnitionProbability float64
	Rand                rnd.Rand

	lg *log.Logger

	clock  schedule.Clock
	events *schedule.EventQueue

	strikeOrder   []int
	nextStrike    int
	nextForceTime float64
	history       []force.HistoricalStrike
}

// NewScenario assembles a Scenario from its already-constructed parts.
// Build (in build.go) is the convenience path from config.Parameters and
// tabular inputs to this constructor.
func NewScenario(name string, uavFleet, wbFleet *model.Fleet, strikes *model.StrikeArena, tanks []*model.WaterTank,
	uavCoord, wbCoord *dispatch.Coordinator, ignitionProbability float64, seed uint64, lg *log.Logger) *Scenario {

	order := make([]int, strikes.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return strikes.Get(order[i]).SpawnTime < strikes.Get(order[j]).SpawnTime
	})

	return &Scenario{
		Name: name,

		UAVFleet: uavFleet, WBFleet: wbFleet, Strikes: strikes, Tanks: tanks,
		UAVCoordinator: uavCoord, WBCoordinator: wbCoord,

		IgnitionProbability: ignitionProbability,
		Rand:                rnd.New(seed),

		lg: lg,

		events:      schedule.NewEventQueue(),
		strikeOrder: order,
	}
}

// WithForce enables the idle-UAV force controller (§4.6). dtMinutes is
// the controller's replan interval, already converted from the config's
// seconds; targets is the static target set (may be empty); forecast,
// if non-nil, additionally enriches the target set from strikes already
// observed at the time of each replan.
func (s *Scenario) WithForce(c *force.Controller, dtMinutes float64, targets []geo.Point, forecast *force.ForecastConfig, forecastOrigin geo.Point) {
	s.Force = c
	s.ForceDtMinutes = dtMinutes
	s.ForceTargets = targets
	s.Forecast = forecast
	s.ForecastOrigin = forecastOrigin
}

// Now returns the scenario's current simulated time, in minutes.
func (s *Scenario) Now() float64 { return s.clock.Now() }

func (s *Scenario) fleetFor(kind model.AircraftKind) *model.Fleet {
	if kind == model.WaterBomber {
		return s.WBFleet
	}
	return s.UAVFleet
}

func (s *Scenario) strikesExhausted() bool { return s.nextStrike >= len(s.strikeOrder) }

// Run drains the strike stream and the event queue until the simulation
// ends: the strike stream is exhausted and both fleets are Idle (§2).
// The termination check runs before anything else is popped each
// iteration, so a force controller never gets to queue one more replan
// once that condition is already true (§4.6's dt-driven replanning would
// otherwise keep Idle UAVs perpetually busy).
func (s *Scenario) Run() {
	for {
		if s.strikesExhausted() && s.UAVFleet.AllIdle() && s.WBFleet.AllIdle() {
			return
		}

		nextStrikeTime := math.Inf(1)
		if !s.strikesExhausted() {
			nextStrikeTime = s.Strikes.Get(s.strikeOrder[s.nextStrike]).SpawnTime
		}
		nextEventTime := math.Inf(1)
		if ev, ok := s.events.PeekMin(); ok {
			nextEventTime = ev.Time
		}
		nextForceTime := math.Inf(1)
		if s.Force != nil {
			nextForceTime = s.nextForceTime
		}

		switch {
		case nextStrikeTime <= nextEventTime && nextStrikeTime <= nextForceTime:
			s.processStrikeSpawn()
		case nextEventTime <= nextForceTime:
			s.processEvent()
		default:
			s.processForceStep()
		}
	}
}

func (s *Scenario) resolveIgnition(strike *model.Strike) {
	if strike.IgnitedExplicit {
		return
	}
	p := s.IgnitionProbability
	if strike.IgnitionProbabilityOverride != nil {
		p = *strike.IgnitionProbabilityOverride
	}
	strike.Ignited = s.Rand.Bool(p)
}

func (s *Scenario) processStrikeSpawn() {
	id := s.strikeOrder[s.nextStrike]
	strike := s.Strikes.Get(id)
	s.clock.Advance(strike.SpawnTime)
	s.resolveIgnition(strike)
	s.history = append(s.history, force.HistoricalStrike{Location: strike.Location, Time: strike.SpawnTime})
	s.nextStrike++

	if aircraftID, ok := s.UAVCoordinator.ProcessNewStrike(id, s.Now()); ok {
		s.pushHead(model.UAV, aircraftID)
	} else {
		s.lg.Warnf("strike %d: no feasible UAV assignment at spawn (t=%.1f)", id, s.Now())
	}
}

// pushHead enqueues the aircraft's current head event, keyed on its
// completion time (ScheduledEnd): that is the instant the aircraft is
// next free to act, which is what advances the simulation (§4.3's
// advancement rule collapses travel-then-service into one transition).
func (s *Scenario) pushHead(kind model.AircraftKind, id int) {
	a := s.fleetFor(kind).Get(id)
	if len(a.Queue) == 0 {
		return
	}
	s.events.Push(a.Queue[0].ScheduledEnd, encodeID(kind, id), a.Version)
}

func (s *Scenario) processEvent() {
	ev, ok := s.events.PopMin()
	if !ok {
		return
	}
	kind, id := decodeID(ev.AircraftID)
	a := s.fleetFor(kind).Get(id)
	if ev.AircraftVersion != a.Version {
		return // superseded by a later replan (§4.2); silently discarded
	}

	s.clock.Advance(ev.Time)
	s.executeHead(kind, a)
}

// executeHead advances a to the head of its queue: it flies to the
// event's target (consuming fuel for the whole leg), performs the
// event's service effect, logs one record, and either queues the next
// event or goes Idle (§4.3).
func (s *Scenario) executeHead(kind model.AircraftKind, a *model.Aircraft) {
	e := a.Queue[0]
	dist := a.ApplyTravel(e.Target)

	switch e.Kind {
	case model.RefuelAt:
		a.Refuel()
	case model.RefillWaterAt:
		ok, reroute := s.refillWater(a, e)
		if !ok {
			return // no tank had water; aircraft abandoned at the dry tank
		}
		dist += reroute
	case model.Inspect:
		strike := s.Strikes.Get(e.StrikeID)
		strike.SetInspected(a.ID, s.Now())
		if strike.Ignited {
			if wbID, ok := s.WBCoordinator.ProcessNewStrike(strike.ID, s.Now()); ok {
				s.pushHead(model.WaterBomber, wbID)
			} else {
				s.lg.Warnf("strike %d: no feasible WB assignment at inspection (t=%.1f)", strike.ID, s.Now())
			}
		}
	case model.Suppress:
		a.Suppress()
		s.Strikes.Get(e.StrikeID).SetSuppressed(a.ID, s.Now())
	case model.GoTo, model.Hover:
		// no service effect beyond the travel already applied.
	}

	rec := model.EventLogRecord{
		AircraftID:          a.ID,
		Location:            a.Location,
		TimeMinutes:         s.Now(),
		DistanceTravelledKm: dist,
		FuelPct:             a.FuelFraction,
		CurrentRangeKm:      a.CurrentRangeKm(),
		Status:              model.StateForEvent(e.Kind),
		NextUpdates:         nextUpdatesDescription(a),
		HasWaterCapacity:    kind == model.WaterBomber,
	}
	if e.Kind == model.Hover {
		rec.DistanceHoveredKm = dist
	}
	if kind == model.WaterBomber {
		rec.WaterCapacityL = a.WaterLevel
	}
	a.Log(rec)

	a.Queue = a.Queue[1:]
	if len(a.Queue) > 0 {
		s.pushHead(kind, a.ID)
	} else {
		a.IdleSince = s.Now()
	}
}

func nextUpdatesDescription(a *model.Aircraft) string {
	if len(a.Queue) == 0 {
		return "idle"
	}
	return a.Queue[0].Kind.String()
}

// refillWater applies a RefillWaterAt event, handling the tank-runs-dry
// race (§4.5, §7 kind 3): water is only ever debited here, at execution
// time, never at planning time, so a tank another aircraft emptied in
// the interim is discovered right now. When that happens this WB
// diverts to the next-nearest tank with water, and the extra flight and
// refill time is added to every event still queued behind this one so
// the queue's times stay non-decreasing (I5) without a full replan.
// Returns ok=false if no alternate tank has water, in which case the
// aircraft is left idle at the dry tank and its remaining queue (and the
// strikes on it) are abandoned unsuppressed, per §7 kind 3. On success,
// rerouteDist is the extra distance flown to the alternate tank, for the
// caller to fold into its own event-log distance figure.
func (s *Scenario) refillWater(a *model.Aircraft, e model.Event) (ok bool, rerouteDist float64) {
	tank := s.tankByID(e.TankID)
	needed := a.WB.WaterCapacity - a.WaterLevel

	if tank.Available(needed) {
		a.RefillWater(tank)
		return true, 0
	}

	s.lg.Warnf("tank %d empty on arrival for aircraft %d (t=%.1f): rerouting", tank.ID, a.ID, s.Now())

	var best *model.WaterTank
	bestDist := math.Inf(1)
	for _, t := range s.Tanks {
		if t.ID == tank.ID || !t.Available(needed) {
			continue
		}
		if d := geo.Distance(a.Location, t.Location); d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == nil {
		s.lg.Warnf("no tank with water reachable for aircraft %d (t=%.1f): abandoning remaining queue", a.ID, s.Now())
		a.Queue = nil
		a.IdleSince = s.Now()
		return false, 0
	}

	flightMin := a.FlightMinutes(bestDist)
	arrive := s.Now() + flightMin
	d := a.ApplyTravel(best.Location)
	depart := arrive + a.WB.WaterRefillTime
	a.RefillWater(best)

	delay := depart - e.ScheduledEnd
	for i := range a.Queue[1:] {
		a.Queue[1+i].ScheduledStart += delay
		a.Queue[1+i].ScheduledEnd += delay
	}

	s.clock.Advance(depart)
	return true, d
}

func (s *Scenario) tankByID(id int) *model.WaterTank {
	for _, t := range s.Tanks {
		if t.ID == id {
			return t
		}
	}
	panic(fmt.Sprintf("unknown tank id %d", id))
}

func (s *Scenario) processForceStep() {
	s.clock.Advance(s.nextForceTime)
	s.nextForceTime += s.ForceDtMinutes

	idle := make([]int, 0, s.UAVFleet.Len())
	for id, a := range s.UAVFleet.All() {
		if a.State() == model.Idle {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return
	}

	targets := s.ForceTargets
	if s.Forecast != nil {
		forecastTargets := force.Forecast(*s.Forecast, s.ForecastOrigin, s.history, s.Now())
		targets = append(append([]geo.Point{}, targets...), forecastTargets...)
	}

	s.Force.Step(s.UAVFleet, targets, s.Now())
	for _, id := range idle {
		s.pushHead(model.UAV, id)
	}
}
