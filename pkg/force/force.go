// pkg/force/force.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package force implements the optional idle-UAV force-field controller
// (SPEC_FULL.md §4.6): every dt of simulated time, each Idle UAV is
// re-planned toward a point attracted by strike-forecast targets and
// repelled by other UAVs and the operating-area boundary.
package force

import (
	"math"

	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

// Config holds the tunable constants of the force field. The UAV- and
// boundary-repulsion constants come verbatim from the unassigned_uavs
// config block (§6.1); the target-attraction constants are set by the
// caller, and DtMinutes is that block's dt converted to minutes.
type Config struct {
	TargetAttractionConst  float64
	TargetAttractionPower  float64
	UAVRepulsionConst      float64
	UAVRepulsionPower      float64
	BoundaryRepulsionConst float64
	BoundaryRepulsionPower float64

	DtMinutes float64 // converted once from the config's dt-in-seconds at load time
	Centre    geo.Point
	Polygon   []geo.Point
}

// Controller holds everything needed to re-plan idle UAVs: the
// configuration and the polygon pre-projected into the controller's
// local plane.
type Controller struct {
	cfg     Config
	polyVec []geo.Vec2
}

// NewController precomputes the polygon's local-plane projection once;
// Step is called every dt and must not redo that work each time.
func NewController(cfg Config) *Controller {
	poly := make([]geo.Vec2, len(cfg.Polygon))
	for i, p := range cfg.Polygon {
		poly[i] = geo.ToVec2(p, cfg.Centre)
	}
	return &Controller{cfg: cfg, polyVec: poly}
}

// Step re-plans every Idle UAV in the fleet against the given target set,
// queuing exactly one GoTo or Hover event that runs for DtMinutes (§4.6).
// It is the caller's job (pkg/sim) to invoke Step every DtMinutes of
// simulated time and only while the UAVs are Idle; Step itself does not
// track when it was last called.
func (c *Controller) Step(fleet *model.Fleet, targets []geo.Point, now float64) {
	targetVecs := make([]geo.Vec2, len(targets))
	for i, t := range targets {
		targetVecs[i] = geo.ToVec2(t, c.cfg.Centre)
	}

	idleIDs := make([]int, 0, fleet.Len())
	idlePos := make([]geo.Vec2, 0, fleet.Len())
	for id, a := range fleet.All() {
		if a.State() == model.Idle {
			idleIDs = append(idleIDs, id)
			idlePos = append(idlePos, geo.ToVec2(a.Location, c.cfg.Centre))
		}
	}

	for i, id := range idleIDs {
		others := make([]geo.Vec2, 0, len(idlePos)-1)
		for j, p := range idlePos {
			if j != i {
				others = append(others, p)
			}
		}
		c.replan(fleet.Get(id), idlePos[i], others, targetVecs, now)
	}
}

func (c *Controller) replan(a *model.Aircraft, pos geo.Vec2, otherIdle, targetVecs []geo.Vec2, now float64) {
	if !geo.PointInPolygon(pos, c.polyVec) {
		c.queueSingle(a, model.GoToEvent(c.cfg.Centre, "outside operating boundary"), now)
		return
	}

	f := c.fieldAt(pos, otherIdle, targetVecs)
	next := geo.Add2f(pos, geo.Scale2f(f, c.cfg.DtMinutes))

	var ev model.Event
	if geo.PointInPolygon(next, c.polyVec) {
		ev = model.GoToEvent(geo.FromVec2(next, c.cfg.Centre), "force-field step")
	} else {
		ev = model.HoverEvent(a.Location, now+c.cfg.DtMinutes)
	}
	c.queueSingle(a, ev, now)
}

func (c *Controller) queueSingle(a *model.Aircraft, ev model.Event, now float64) {
	ev.ScheduledStart, ev.ScheduledEnd = now, now+c.cfg.DtMinutes
	a.Queue = []model.Event{ev}
	a.Version++
}

// fieldAt sums the three force terms at pos (§4.6): attraction toward
// every target, repulsion from every other idle UAV's local-plane
// position, and repulsion from the nearest polygon edge.
func (c *Controller) fieldAt(pos geo.Vec2, otherIdle, targetVecs []geo.Vec2) geo.Vec2 {
	var f geo.Vec2

	for _, t := range targetVecs {
		d := geo.Sub2f(t, pos)
		r := geo.Length2f(d)
		if r < 1e-9 {
			continue
		}
		u := geo.Scale2f(d, 1/r)
		f = geo.Add2f(f, geo.Scale2f(u, c.cfg.TargetAttractionConst*math.Pow(r, c.cfg.TargetAttractionPower)))
	}

	for _, o := range otherIdle {
		d := geo.Sub2f(pos, o)
		r := geo.Length2f(d)
		if r < 1e-9 {
			continue
		}
		u := geo.Scale2f(d, 1/r)
		f = geo.Add2f(f, geo.Scale2f(u, c.cfg.UAVRepulsionConst*math.Pow(r, c.cfg.UAVRepulsionPower)))
	}

	d, outward := geo.NearestPolygonEdgeDistance(pos, c.polyVec)
	f = geo.Add2f(f, geo.Scale2f(outward, c.cfg.BoundaryRepulsionConst*math.Pow(d, c.cfg.BoundaryRepulsionPower)))

	return f
}
