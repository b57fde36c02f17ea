// pkg/sim/sim_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"
	"time"

	"firewatch/pkg/dispatch"
	"firewatch/pkg/force"
	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

func newTestUAVFleet(spawn geo.Point) *model.Fleet {
	var f model.Fleet
	f.AddUAV(model.NewUAV(0, spawn, 600, 10, 0.1, model.UAVAttributes{RangeAtFull: 1000, InspectionTime: 5}))
	return &f
}

func newTestWBFleet(spawn geo.Point) *model.Fleet {
	var f model.Fleet
	f.AddWaterBomber(model.NewWaterBomber(0, spawn, 500, 10, 0.1, model.WaterBomberAttributes{
		KindName: "heavy", RangeEmpty: 1000, RangeUnderLoad: 800, SuppressionTime: 5,
		WaterRefillTime: 10, WaterPerSuppression: 100, WaterCapacity: 500,
	}))
	return &f
}

func TestScenarioInspectsASimpleStrike(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	uavFleet := newTestUAVFleet(origin)
	wbFleet := &model.Fleet{}

	var strikes model.StrikeArena
	strikes.Add(model.Strike{Location: geo.Point{Latitude: 0.2, Longitude: 0}, SpawnTime: 0})

	bases := []model.Base{{ID: 0, Location: origin, AllKinds: true}}

	uavCoord := dispatch.New(dispatch.Simple, model.UAV, uavFleet, &strikes, bases, nil, 1, 1e9, model.PriorityNone, nil)
	wbCoord := dispatch.New(dispatch.Simple, model.WaterBomber, wbFleet, &strikes, nil, nil, 1, 1e9, model.PriorityNone, nil)

	s := NewScenario("t", uavFleet, wbFleet, &strikes, nil, uavCoord, wbCoord, 0, 1, nil)
	s.Run()

	strike := strikes.Get(0)
	if !strike.Inspected {
		t.Fatalf("expected the strike to be inspected, got %+v", strike)
	}
	if rt, ok := strike.ResponseTime(); !ok || rt <= 0 {
		t.Errorf("expected a positive response time, got %v (ok=%v)", rt, ok)
	}

	a := uavFleet.Get(0)
	if a.State() != model.Idle {
		t.Errorf("expected the UAV to return to Idle, got %v", a.State())
	}
	if len(a.EventLog) == 0 {
		t.Error("expected at least one event-log record")
	}
}

func TestIgnitedStrikeIsSuppressedByWaterBomber(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	uavFleet := newTestUAVFleet(origin)
	wbFleet := newTestWBFleet(origin)

	var strikes model.StrikeArena
	strikes.Add(model.Strike{Location: geo.Point{Latitude: 0.1, Longitude: 0}, SpawnTime: 0, Ignited: true, IgnitedExplicit: true})

	uavBases := []model.Base{{ID: 0, Location: origin, AllKinds: true}}
	wbBases := []model.Base{{ID: 0, Location: origin, AllKinds: true}}
	tanks := []*model.WaterTank{ptrTank(model.NewWaterTank(0, origin, 1000))}

	uavCoord := dispatch.New(dispatch.Simple, model.UAV, uavFleet, &strikes, uavBases, nil, 1, 1e9, model.PriorityNone, nil)
	wbCoord := dispatch.New(dispatch.Simple, model.WaterBomber, wbFleet, &strikes, wbBases, tanks, 1, 1e9, model.PriorityNone, nil)

	s := NewScenario("t", uavFleet, wbFleet, &strikes, tanks, uavCoord, wbCoord, 0, 1, nil)
	s.Run()

	strike := strikes.Get(0)
	if !strike.Suppressed {
		t.Fatalf("expected the strike to be suppressed, got %+v", strike)
	}
	if rt, ok := strike.SuppressionResponseTime(); !ok || rt <= 0 {
		t.Errorf("expected a positive suppression response time, got %v (ok=%v)", rt, ok)
	}
}

func TestScenarioTerminatesWithForceControllerActive(t *testing.T) {
	centre := geo.Point{Latitude: 0, Longitude: 0}
	uavFleet := newTestUAVFleet(centre)
	wbFleet := &model.Fleet{}

	var strikes model.StrikeArena
	strikes.Add(model.Strike{Location: geo.Point{Latitude: 0.05, Longitude: 0}, SpawnTime: 0})

	bases := []model.Base{{ID: 0, Location: centre, AllKinds: true}}
	uavCoord := dispatch.New(dispatch.Simple, model.UAV, uavFleet, &strikes, bases, nil, 1, 1e9, model.PriorityNone, nil)
	wbCoord := dispatch.New(dispatch.Simple, model.WaterBomber, wbFleet, &strikes, nil, nil, 1, 1e9, model.PriorityNone, nil)

	s := NewScenario("t", uavFleet, wbFleet, &strikes, nil, uavCoord, wbCoord, 0, 1, nil)

	polygon := []geo.Point{
		{Latitude: -1, Longitude: -1}, {Latitude: -1, Longitude: 1},
		{Latitude: 1, Longitude: 1}, {Latitude: 1, Longitude: -1},
	}
	controller := force.NewController(force.Config{
		TargetAttractionConst: 0, UAVRepulsionConst: 0, BoundaryRepulsionConst: 0,
		DtMinutes: 5, Centre: centre, Polygon: polygon,
	})
	s.WithForce(controller, 5, nil, nil, centre)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not terminate with an active force controller")
	}

	if !strikes.Get(0).Inspected {
		t.Error("expected the strike to still be inspected despite the force controller being active")
	}
}

func ptrTank(t model.WaterTank) *model.WaterTank { return &t }
