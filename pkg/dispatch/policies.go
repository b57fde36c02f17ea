// pkg/dispatch/policies.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dispatch

import (
	"math"

	"firewatch/pkg/model"
)

// arrivalOf returns the scheduled arrival (start) time of the service
// event for strikeID within a planned step sequence.
func arrivalOf(steps []routeStep, strikeID int) (float64, bool) {
	for _, s := range steps {
		if (s.Event.Kind == model.Inspect || s.Event.Kind == model.Suppress) && s.Event.StrikeID == strikeID {
			return s.ArriveTime, true
		}
	}
	return 0, false
}

// insertAt returns a copy of queue with id inserted at position k.
func insertAt(queue []int, k, id int) []int {
	out := make([]int, 0, len(queue)+1)
	out = append(out, queue[:k]...)
	out = append(out, id)
	out = append(out, queue[k:]...)
	return out
}

// removeID returns a copy of queue with the first occurrence of id removed.
func removeID(queue []int, id int) []int {
	out := make([]int, 0, len(queue))
	for _, q := range queue {
		if q != id {
			out = append(out, q)
		}
	}
	return out
}

// processSimple implements Simple (§4.5): append to the tail of every
// aircraft's queue (with any required refuel/rearm inserted just in
// time), pick the aircraft with minimum arrival time for the new strike,
// tie-break on lowest aircraft id.
func (c *Coordinator) processSimple(strikeID int, now float64) (int, bool) {
	bestAircraft := -1
	bestArrival := math.Inf(1)
	var bestSteps []routeStep
	var bestQueue []int

	for id, a := range c.Fleet.All() {
		start := c.startStateFor(a, now)
		candidate := append(append([]int{}, c.assigned[id]...), strikeID)
		steps, ok := c.planStrikes(a, start, candidate)
		if !ok {
			continue
		}
		arrival, _ := arrivalOf(steps, strikeID)
		if arrival < bestArrival {
			bestArrival, bestAircraft, bestSteps, bestQueue = arrival, id, steps, candidate
		}
	}
	if bestAircraft < 0 {
		return 0, false
	}
	c.commitQueue(c.Fleet.Get(bestAircraft), bestQueue, bestSteps)
	return bestAircraft, true
}

// aggregateDelay sums, over every already-scheduled strike in candidate
// (i.e. every id except strikeID), the increase in its arrival time under
// the new plan relative to the last plan committed for it.
func (c *Coordinator) aggregateDelay(steps []routeStep, candidate []int, strikeID int) float64 {
	var total float64
	for _, id := range candidate {
		if id == strikeID {
			continue
		}
		newArrival, ok := arrivalOf(steps, id)
		if !ok {
			continue
		}
		total += newArrival - c.plannedArrival[id]
	}
	return total
}

// processInsertion implements Insertion (§4.5): consider every position k
// in each aircraft's current queue, requiring feasibility; pick the
// (aircraft, k) minimising the new strike's own arrival time, tie-break on
// lowest aggregate delay to already-scheduled strikes, then lowest
// aircraft id.
func (c *Coordinator) processInsertion(strikeID int, now float64) (int, bool) {
	bestAircraft := -1
	bestArrival := math.Inf(1)
	bestDelay := math.Inf(1)
	var bestSteps []routeStep
	var bestQueue []int

	for id, a := range c.Fleet.All() {
		start := c.startStateFor(a, now)
		queue := c.assigned[id]
		for k := 0; k <= len(queue); k++ {
			candidate := insertAt(queue, k, strikeID)
			steps, ok := c.planStrikes(a, start, candidate)
			if !ok {
				continue
			}
			arrival, _ := arrivalOf(steps, strikeID)
			delay := c.aggregateDelay(steps, candidate, strikeID)

			better := arrival < bestArrival ||
				(arrival == bestArrival && delay < bestDelay) ||
				(arrival == bestArrival && delay == bestDelay && id < bestAircraft)
			if better {
				bestArrival, bestDelay, bestAircraft = arrival, delay, id
				bestSteps, bestQueue = steps, candidate
			}
		}
	}
	if bestAircraft < 0 {
		return 0, false
	}
	c.commitQueue(c.Fleet.Get(bestAircraft), bestQueue, bestSteps)
	return bestAircraft, true
}

// meanTimeCost computes Σ_s w(s)·Δt(s)^p for a candidate plan: the new
// strike's own response time, plus the increase in response time for
// every already-scheduled strike relative to the last committed plan.
// It also returns the worst response time anywhere in the candidate
// queue, used for the soft target-maximum dominance ordering.
func (c *Coordinator) meanTimeCost(steps []routeStep, candidate []int, newStrikeID int) (cost, worst float64) {
	for _, id := range candidate {
		strike := c.Strikes.Get(id)
		arrival, ok := arrivalOf(steps, id)
		if !ok {
			continue
		}
		response := arrival - c.baseTimeFor(strike)
		if response > worst {
			worst = response
		}

		var dt float64
		if id == newStrikeID {
			dt = response
		} else {
			dt = arrival - c.plannedArrival[id]
		}
		if dt < 0 {
			dt = 0
		}
		w := c.Priority.Weight(dt, strike.RiskRating)
		cost += w * math.Pow(dt, c.MeanTimePower)
	}
	return cost, worst
}

// insertByMinimiseMeanTime is the shared core of MinimiseMeanTime and
// ReprocessMaxTime (§4.5): among all feasible (aircraft, k) insertions of
// strikeID, choose the one minimising Σ(Δt)^p, with candidates whose worst
// resulting response time is within TargetMaxMinutes dominating those that
// exceed it.
func (c *Coordinator) insertByMinimiseMeanTime(strikeID int, now float64) (int, bool) {
	bestAircraft := -1
	bestDominant := false
	bestCost := math.Inf(1)
	var bestSteps []routeStep
	var bestQueue []int

	for id, a := range c.Fleet.All() {
		start := c.startStateFor(a, now)
		queue := c.assigned[id]
		for k := 0; k <= len(queue); k++ {
			candidate := insertAt(queue, k, strikeID)
			steps, ok := c.planStrikes(a, start, candidate)
			if !ok {
				continue
			}
			cost, worst := c.meanTimeCost(steps, candidate, strikeID)
			dominant := worst <= c.TargetMaxMinutes

			better := bestAircraft < 0 ||
				(dominant && !bestDominant) ||
				(dominant == bestDominant && cost < bestCost)
			if better {
				bestDominant, bestCost, bestAircraft = dominant, cost, id
				bestSteps, bestQueue = steps, candidate
			}
		}
	}
	if bestAircraft < 0 {
		return 0, false
	}
	c.commitQueue(c.Fleet.Get(bestAircraft), bestQueue, bestSteps)
	return bestAircraft, true
}

func (c *Coordinator) processMinimiseMeanTime(strikeID int, now float64) (int, bool) {
	return c.insertByMinimiseMeanTime(strikeID, now)
}

// ownerOf returns the aircraft id currently holding strikeID in its
// assigned queue, if any.
func (c *Coordinator) ownerOf(strikeID int) (int, bool) {
	for aid, ids := range c.assigned {
		for _, id := range ids {
			if id == strikeID {
				return aid, true
			}
		}
	}
	return 0, false
}

// dropFromQueue removes strikeID from owner's assigned queue and
// re-plans and re-commits the remainder, so the aircraft's concrete
// Queue and Version are rebuilt to match (§4.2, §4.5): unlike the
// assigned/plannedArrival bookkeeping, Queue is what the scheduler
// actually dispatches from, and leaving it untouched would keep a stale
// event for strikeID live, inspecting or suppressing it a second time
// once it is re-inserted elsewhere.
func (c *Coordinator) dropFromQueue(owner, strikeID int, now float64) {
	remaining := removeID(c.assigned[owner], strikeID)
	a := c.Fleet.Get(owner)
	start := c.startStateFor(a, now)
	if steps, ok := c.planStrikes(a, start, remaining); ok {
		c.commitQueue(a, remaining, steps)
		return
	}
	// Removing a strike can only relax feasibility, so this should not
	// happen; fall back to the bookkeeping-only update rather than
	// leaving a stale, now-unplanned entry in c.assigned.
	c.assigned[owner] = remaining
}

// processReprocessMaxTime implements ReprocessMaxTime (§4.5): apply
// MinimiseMeanTime to the new strike, then locate the currently scheduled
// strike with the largest response time, unqueue it, and re-insert it by
// the same rule. Repeated at most once per new strike to guarantee
// termination.
func (c *Coordinator) processReprocessMaxTime(strikeID int, now float64) (int, bool) {
	assignedAircraft, ok := c.insertByMinimiseMeanTime(strikeID, now)
	if !ok {
		return 0, false
	}

	worstID := -1
	worstResponse := math.Inf(-1)
	for _, ids := range c.assigned {
		for _, id := range ids {
			strike := c.Strikes.Get(id)
			arrival := c.plannedArrival[id]
			if r := arrival - c.baseTimeFor(strike); r > worstResponse {
				worstResponse, worstID = r, id
			}
		}
	}
	if worstID < 0 {
		return assignedAircraft, true
	}

	if owner, ok := c.ownerOf(worstID); ok {
		c.dropFromQueue(owner, worstID, now)
	}
	delete(c.plannedArrival, worstID)

	if newOwner, ok := c.insertByMinimiseMeanTime(worstID, now); ok {
		return newOwner, true
	}
	// The worst strike could not be feasibly re-inserted anywhere; it is
	// left unassigned, with a warning rather than silently.
	c.lg.Warnf("strike %d: no feasible re-insertion after unqueueing (t=%.1f); left unassigned", worstID, now)
	return assignedAircraft, true
}
