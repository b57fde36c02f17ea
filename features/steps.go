// features/steps.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"firewatch/pkg/dispatch"
	"firewatch/pkg/force"
	"firewatch/pkg/geo"
	"firewatch/pkg/model"
	"firewatch/pkg/sim"
)

// scenarioContext accumulates Given-clause state for one godog scenario
// and is thrown away once it finishes; a fresh one is wired up per
// scenario by InitializeScenario.
type scenarioContext struct {
	uavFleet model.Fleet
	wbFleet  model.Fleet
	strikes  model.StrikeArena
	tanks    []*model.WaterTank
	uavBases []model.Base
	wbBases  []model.Base

	scenario *sim.Scenario

	polygon    []geo.Point
	centre     geo.Point
	controller *force.Controller
	targets    []geo.Point
	uavID      int
}

func (c *scenarioContext) register(sc *godog.ScenarioContext) {
	sc.Step(`^a UAV at ([\-\d.]+),([\-\d.]+) with flight_speed (\d+(?:\.\d+)?), range (\d+(?:\.\d+)?), fuel_refill_time (\d+(?:\.\d+)?), inspection_time (\d+(?:\.\d+)?), pct_fuel_cutoff (\d+(?:\.\d+)?)$`, c.aUAVAt)
	sc.Step(`^a UAV base at ([\-\d.]+),([\-\d.]+)$`, c.aUAVBaseAt)
	sc.Step(`^a water bomber at ([\-\d.]+),([\-\d.]+) with flight_speed (\d+(?:\.\d+)?), range_empty (\d+(?:\.\d+)?), range_under_load (\d+(?:\.\d+)?), suppression_time (\d+(?:\.\d+)?), water_refill_time (\d+(?:\.\d+)?), fuel_refill_time (\d+(?:\.\d+)?), water_per_suppression (\d+(?:\.\d+)?), water_capacity (\d+(?:\.\d+)?), pct_fuel_cutoff (\d+(?:\.\d+)?)$`, c.aWaterBomberAt)
	sc.Step(`^a water bomber base at ([\-\d.]+),([\-\d.]+)$`, c.aWaterBomberBaseAt)
	sc.Step(`^a water tank at ([\-\d.]+),([\-\d.]+) with capacity (\d+(?:\.\d+)?)$`, c.aWaterTankAt)
	sc.Step(`^a lightning strike at ([\-\d.]+),([\-\d.]+) spawning at time (\d+(?:\.\d+)?) that does not ignite$`, c.aLightningStrikeThatDoesNotIgnite)
	sc.Step(`^(\d+) ignited lightning strikes at ([\-\d.]+),([\-\d.]+) spawning at times (.+)$`, c.ignitedLightningStrikes)
	sc.Step(`^the scenario runs to completion$`, c.theScenarioRunsToCompletion)
	sc.Step(`^strike (\d+) is inspected at time (\d+(?:\.\d+)?)$`, c.strikeIsInspectedAtTime)
	sc.Step(`^strike (\d+) is inspected$`, c.strikeIsInspected)
	sc.Step(`^strike (\d+) is not inspected$`, c.strikeIsNotInspected)
	sc.Step(`^strike (\d+) has no suppression time$`, c.strikeHasNoSuppressionTime)
	sc.Step(`^the UAV's event log contains a RefuelAt event$`, c.uavEventLogContainsRefuelAt)
	sc.Step(`^the first water tank's level is (\d+(?:\.\d+)?)$`, c.nthWaterTankLevelIs(0))
	sc.Step(`^the second water tank's level is (\d+(?:\.\d+)?)$`, c.nthWaterTankLevelIs(1))
	sc.Step(`^every strike is suppressed$`, c.everyStrikeIsSuppressed)

	sc.Step(`^a square operating boundary from (\-?\d+(?:\.\d+)?),(\-?\d+(?:\.\d+)?) to (\-?\d+(?:\.\d+)?),(\-?\d+(?:\.\d+)?) centred at (\-?\d+(?:\.\d+)?),(\-?\d+(?:\.\d+)?)$`, c.aSquareOperatingBoundary)
	sc.Step(`^an idle UAV at ([\-\d.]+),([\-\d.]+) with no queued work$`, c.anIdleUAVAt)
	sc.Step(`^a target at ([\-\d.]+),(\-?\d+(?:\.\d+)?) attracting the UAV outward$`, c.aTargetAttractingTheUAVOutward)
	sc.Step(`^the force controller steps once$`, c.theForceControllerStepsOnce)
	sc.Step(`^the UAV's position is unchanged$`, c.uavPositionIsUnchanged)
	sc.Step(`^the UAV is hovering$`, c.uavIsHovering)
}

func pt(lat, lon string) geo.Point {
	la, _ := strconv.ParseFloat(lat, 64)
	lo, _ := strconv.ParseFloat(lon, 64)
	return geo.Point{Latitude: la, Longitude: lo}
}

func f64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func (c *scenarioContext) aUAVAt(lat, lon, speed, rng, refuel, inspect, cutoff string) error {
	c.uavID = c.uavFleet.AddUAV(model.NewUAV(0, pt(lat, lon), f64(speed), f64(refuel), f64(cutoff), model.UAVAttributes{
		RangeAtFull: f64(rng), InspectionTime: f64(inspect),
	}))
	return nil
}

func (c *scenarioContext) aUAVBaseAt(lat, lon string) error {
	c.uavBases = append(c.uavBases, model.Base{ID: len(c.uavBases), Location: pt(lat, lon), AllKinds: true})
	return nil
}

func (c *scenarioContext) aWaterBomberAt(lat, lon, speed, rangeEmpty, rangeLoaded, suppress, refill, refuel, perSuppression, capacity, cutoff string) error {
	c.wbFleet.AddWaterBomber(model.NewWaterBomber(0, pt(lat, lon), f64(speed), f64(refuel), f64(cutoff), model.WaterBomberAttributes{
		KindName: "heavy", RangeEmpty: f64(rangeEmpty), RangeUnderLoad: f64(rangeLoaded),
		SuppressionTime: f64(suppress), WaterRefillTime: f64(refill),
		WaterPerSuppression: f64(perSuppression), WaterCapacity: f64(capacity),
	}))
	return nil
}

func (c *scenarioContext) aWaterBomberBaseAt(lat, lon string) error {
	c.wbBases = append(c.wbBases, model.Base{ID: len(c.wbBases), Location: pt(lat, lon), AllKinds: true})
	return nil
}

func (c *scenarioContext) aWaterTankAt(lat, lon, capacity string) error {
	t := model.NewWaterTank(len(c.tanks), pt(lat, lon), f64(capacity))
	c.tanks = append(c.tanks, &t)
	return nil
}

func (c *scenarioContext) aLightningStrikeThatDoesNotIgnite(lat, lon, spawn string) error {
	c.strikes.Add(model.Strike{Location: pt(lat, lon), SpawnTime: f64(spawn), IgnitedExplicit: true})
	return nil
}

func (c *scenarioContext) ignitedLightningStrikes(count, lat, lon, times string) error {
	n, err := strconv.Atoi(count)
	if err != nil {
		return err
	}
	parts := strings.Split(times, ",")
	if len(parts) != n {
		return fmt.Errorf("expected %d spawn times, got %d (%q)", n, len(parts), times)
	}
	for _, raw := range parts {
		c.strikes.Add(model.Strike{
			Location: pt(lat, lon), SpawnTime: f64(strings.TrimSpace(raw)),
			Ignited: true, IgnitedExplicit: true,
		})
	}
	return nil
}

func (c *scenarioContext) theScenarioRunsToCompletion() error {
	uavCoord := dispatch.New(dispatch.Simple, model.UAV, &c.uavFleet, &c.strikes, c.uavBases, nil, 1, 1e9, model.PriorityNone, nil)
	wbCoord := dispatch.New(dispatch.Simple, model.WaterBomber, &c.wbFleet, &c.strikes, c.wbBases, c.tanks, 1, 1e9, model.PriorityNone, nil)

	c.scenario = sim.NewScenario("t", &c.uavFleet, &c.wbFleet, &c.strikes, c.tanks, uavCoord, wbCoord, 0, 1, nil)
	c.scenario.Run()
	return nil
}

func (c *scenarioContext) strikeIsInspectedAtTime(id string, want string) error {
	i, _ := strconv.Atoi(id)
	s := c.strikes.Get(i)
	if !s.Inspected {
		return fmt.Errorf("strike %d was not inspected", i)
	}
	if *s.InspectionTime != f64(want) {
		return fmt.Errorf("strike %d inspected at %v, want %v", i, *s.InspectionTime, want)
	}
	return nil
}

func (c *scenarioContext) strikeIsInspected(id string) error {
	i, _ := strconv.Atoi(id)
	if !c.strikes.Get(i).Inspected {
		return fmt.Errorf("strike %d was not inspected", i)
	}
	return nil
}

func (c *scenarioContext) strikeIsNotInspected(id string) error {
	i, _ := strconv.Atoi(id)
	if c.strikes.Get(i).Inspected {
		return fmt.Errorf("strike %d was unexpectedly inspected", i)
	}
	return nil
}

func (c *scenarioContext) strikeHasNoSuppressionTime(id string) error {
	i, _ := strconv.Atoi(id)
	if c.strikes.Get(i).SuppressionTime != nil {
		return fmt.Errorf("strike %d unexpectedly has a suppression time", i)
	}
	return nil
}

func (c *scenarioContext) uavEventLogContainsRefuelAt() error {
	a := c.uavFleet.Get(c.uavID)
	for _, rec := range a.EventLog {
		if rec.Status == model.Refuelling {
			return nil
		}
	}
	return fmt.Errorf("no RefuelAt event found in UAV event log: %+v", a.EventLog)
}

func (c *scenarioContext) nthWaterTankLevelIs(idx int) func(string) error {
	return func(want string) error {
		if idx >= len(c.tanks) {
			return fmt.Errorf("no water tank at index %d", idx)
		}
		if c.tanks[idx].Level != f64(want) {
			return fmt.Errorf("water tank %d level is %v, want %v", idx, c.tanks[idx].Level, want)
		}
		return nil
	}
}

func (c *scenarioContext) everyStrikeIsSuppressed() error {
	for id, s := range c.strikes.All() {
		if !s.Suppressed {
			return fmt.Errorf("strike %d was not suppressed", id)
		}
	}
	return nil
}

func (c *scenarioContext) aSquareOperatingBoundary(x1, y1, x2, y2, cx, cy string) error {
	minLat, minLon := f64(x1), f64(y1)
	maxLat, maxLon := f64(x2), f64(y2)
	c.centre = pt(cx, cy)
	c.polygon = []geo.Point{
		{Latitude: minLat, Longitude: minLon}, {Latitude: minLat, Longitude: maxLon},
		{Latitude: maxLat, Longitude: maxLon}, {Latitude: maxLat, Longitude: minLon},
	}
	return nil
}

func (c *scenarioContext) anIdleUAVAt(lat, lon string) error {
	c.uavID = c.uavFleet.AddUAV(model.NewUAV(0, pt(lat, lon), 600, 0, 0, model.UAVAttributes{RangeAtFull: 1000, InspectionTime: 1}))
	return nil
}

func (c *scenarioContext) aTargetAttractingTheUAVOutward(lat, lon string) error {
	c.targets = append(c.targets, pt(lat, lon))
	return nil
}

func (c *scenarioContext) theForceControllerStepsOnce() error {
	c.controller = force.NewController(force.Config{
		TargetAttractionConst: 1e6, TargetAttractionPower: 1,
		BoundaryRepulsionConst: 0, BoundaryRepulsionPower: 1,
		DtMinutes: 10, Centre: c.centre, Polygon: c.polygon,
	})
	c.controller.Step(&c.uavFleet, c.targets, 0)
	return nil
}

func (c *scenarioContext) uavPositionIsUnchanged() error {
	a := c.uavFleet.Get(c.uavID)
	if len(a.Queue) != 1 {
		return fmt.Errorf("expected exactly one queued event, got %d", len(a.Queue))
	}
	if a.Queue[0].Target != a.Location {
		return fmt.Errorf("expected the queued event to stay at %v, got %v", a.Location, a.Queue[0].Target)
	}
	return nil
}

func (c *scenarioContext) uavIsHovering() error {
	a := c.uavFleet.Get(c.uavID)
	if a.State() != model.Hovering {
		return fmt.Errorf("expected the UAV to be hovering, got %v", a.State())
	}
	return nil
}
