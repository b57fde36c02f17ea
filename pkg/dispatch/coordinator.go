// pkg/dispatch/coordinator.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dispatch

import (
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"firewatch/pkg/geo"
	"firewatch/pkg/log"
	"firewatch/pkg/model"
)

// Coordinator assigns strikes to one fleet (all UAVs, or all water
// bombers) under a single selected policy (SPEC_FULL.md §4.5). It is a
// per-simulation value: it holds no ambient state, only references handed
// to it at construction (§9 "Global state").
type Coordinator struct {
	Policy CoordinatorPolicy
	Kind   model.AircraftKind
	Fleet  *model.Fleet
	Strikes *model.StrikeArena
	Bases  []model.Base
	Tanks  []*model.WaterTank // nil for a UAV coordinator

	MeanTimePower   float64 // the `p` exponent in Σ Δt(s)^p
	TargetMaxMinutes float64 // math.Inf(1) if the config said "inf"
	Priority        PrioritisationFunction

	lg *log.Logger

	// assigned is the ordered list of strike ids currently queued on
	// each aircraft, kept in sync with Fleet so insertion-index policies
	// can reason about "position k in the current queue" abstractly,
	// without re-deriving it from concrete Event slices each time.
	assigned map[int][]int
	// plannedArrival mirrors assigned: the scheduled arrival time last
	// computed for each queued strike, used by ReprocessMaxTime to find
	// the worst current response time without re-simulating every route.
	plannedArrival map[int]float64

	baseCache *lru.Cache[string, int]
}

// CoordinatorPolicy and PrioritisationFunction are re-exported from
// pkg/model so callers configuring a Coordinator don't need a second
// import for just these two enums.
type CoordinatorPolicy = model.CoordinatorPolicy
type PrioritisationFunction = model.PrioritisationFunction

const (
	Simple           = model.Simple
	Insertion        = model.Insertion
	MinimiseMeanTime = model.MinimiseMeanTime
	ReprocessMaxTime = model.ReprocessMaxTime
)

// New constructs a coordinator for one fleet. meanTimePower and
// targetMaxMinutes are only consulted by the MinimiseMeanTime family of
// policies; pass 1 and math.Inf(1) respectively when irrelevant.
func New(policy CoordinatorPolicy, kind model.AircraftKind, fleet *model.Fleet, strikes *model.StrikeArena, bases []model.Base, tanks []*model.WaterTank, meanTimePower, targetMaxMinutes float64, priority PrioritisationFunction, lg *log.Logger) *Coordinator {
	cache, err := lru.New[string, int](4096)
	if err != nil {
		// Only returns an error for a non-positive size, which is a
		// programmer error, not a runtime condition.
		panic(err)
	}
	return &Coordinator{
		Policy: policy, Kind: kind, Fleet: fleet, Strikes: strikes, Bases: bases, Tanks: tanks,
		MeanTimePower: meanTimePower, TargetMaxMinutes: targetMaxMinutes, Priority: priority,
		lg: lg, assigned: map[int][]int{}, plannedArrival: map[int]float64{}, baseCache: cache,
	}
}

// baseTimeFor returns the reference instant a strike's response time is
// measured from: spawn_time for a UAV coordinator, inspection_time for a
// WB coordinator (§4.5, GLOSSARY "Response time").
func (c *Coordinator) baseTimeFor(s *model.Strike) float64 {
	if c.Kind == model.UAV {
		return s.SpawnTime
	}
	return *s.InspectionTime
}

// ProcessNewStrike is the coordinator's one operation (§4.5): it is
// invoked at strike.spawn_time for a UAV coordinator, and at
// strike.inspection_time (only when ignited) for a WB coordinator. It
// returns the id of the aircraft the strike was assigned to, or ok=false
// if no feasible assignment exists anywhere in the fleet (§4.3 failure
// semantics: recorded as uninspected/unsuppressed, no aircraft-side fault).
func (c *Coordinator) ProcessNewStrike(strikeID int, now float64) (aircraftID int, ok bool) {
	switch c.Policy {
	case Simple:
		return c.processSimple(strikeID, now)
	case Insertion:
		return c.processInsertion(strikeID, now)
	case MinimiseMeanTime:
		return c.processMinimiseMeanTime(strikeID, now)
	case ReprocessMaxTime:
		return c.processReprocessMaxTime(strikeID, now)
	default:
		panic(fmt.Sprintf("unhandled coordinator policy %v", c.Policy))
	}
}

// startStateFor returns the state planning should begin from for the
// given aircraft: its current physical location/fuel/water, and the
// earliest time it is free to act (now, or later if it is still mid-queue).
func (c *Coordinator) startStateFor(a *model.Aircraft, now float64) flightState {
	t := now
	if len(a.Queue) > 0 {
		if last := a.Queue[len(a.Queue)-1].ScheduledEnd; last > t {
			t = last
		}
	}
	return flightState{loc: a.Location, time: t, fuel: a.FuelFraction, water: a.WaterLevel}
}

// commitQueue installs a freshly-planned step sequence as the aircraft's
// queue, bumping its version so any stale events already pushed to the
// global event queue are discarded at pop time (§4.2) instead of mutated.
func (c *Coordinator) commitQueue(a *model.Aircraft, strikeIDs []int, steps []routeStep) {
	events := make([]model.Event, len(steps))
	for i, s := range steps {
		events[i] = s.Event
		events[i].ScheduledStart, events[i].ScheduledEnd = s.ArriveTime, s.DepartTime
	}
	a.Queue = events
	a.Version++
	c.assigned[a.ID] = strikeIDs
	for _, s := range steps {
		if s.Event.Kind == model.Inspect || s.Event.Kind == model.Suppress {
			c.plannedArrival[s.Event.StrikeID] = s.ArriveTime
		}
	}
}

// nearestReachableBase returns the admitting base nearest to loc, if its
// distance is within maxUsableRangeKm. Because the nearest admitting base
// overall is also the nearest one within any smaller range it happens to
// satisfy, the "nearest regardless of range" lookup (which is what gets
// cached) already answers the reachability question: compare its distance
// to maxUsableRangeKm.
func (c *Coordinator) nearestReachableBase(a *model.Aircraft, loc geo.Point, maxUsableRangeKm float64) (model.Base, bool) {
	idx, ok := c.nearestBaseIndex(a, loc)
	if !ok {
		return model.Base{}, false
	}
	base := c.Bases[idx]
	if geo.Distance(loc, base.Location) > maxUsableRangeKm {
		return model.Base{}, false
	}
	return base, true
}

func (c *Coordinator) nearestBaseIndex(a *model.Aircraft, loc geo.Point) (int, bool) {
	kind := ""
	if a.Kind == model.WaterBomber {
		kind = a.WB.KindName
	}
	key := fmt.Sprintf("%s|%.3f|%.3f", kind, loc.Latitude, loc.Longitude)
	if idx, ok := c.baseCache.Get(key); ok {
		return idx, true
	}

	best, bestDist := -1, math.Inf(1)
	for i, b := range c.Bases {
		if a.Kind == model.WaterBomber && !b.Admits(a.WB.KindName) {
			continue
		}
		if d := geo.Distance(loc, b.Location); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return 0, false
	}
	c.baseCache.Add(key, best)
	return best, true
}

// tanksByDistance returns the tanks with at least `needed` water
// available, sorted nearest-first from loc. Used by ensureWater to try
// tanks in order until one is both non-empty and fuel-reachable.
func (c *Coordinator) tanksByDistance(loc geo.Point, needed float64) []*model.WaterTank {
	candidates := make([]*model.WaterTank, 0, len(c.Tanks))
	for _, t := range c.Tanks {
		if t.Available(needed) {
			candidates = append(candidates, t)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return geo.Distance(loc, candidates[i].Location) < geo.Distance(loc, candidates[j].Location)
	})
	return candidates
}
