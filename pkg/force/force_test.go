// pkg/force/force_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package force

import (
	"testing"

	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

func squarePolygon(halfSide float64, centre geo.Point) []geo.Point {
	return []geo.Point{
		{Latitude: centre.Latitude - halfSide, Longitude: centre.Longitude - halfSide},
		{Latitude: centre.Latitude - halfSide, Longitude: centre.Longitude + halfSide},
		{Latitude: centre.Latitude + halfSide, Longitude: centre.Longitude + halfSide},
		{Latitude: centre.Latitude + halfSide, Longitude: centre.Longitude - halfSide},
	}
}

func TestUAVOutsideBoundaryRoutesToCentre(t *testing.T) {
	centre := geo.Point{Latitude: 0, Longitude: 0}
	cfg := Config{
		TargetAttractionConst: 1, TargetAttractionPower: -1,
		BoundaryRepulsionConst: 1, BoundaryRepulsionPower: -1,
		DtMinutes: 10, Centre: centre, Polygon: squarePolygon(1, centre),
	}
	c := NewController(cfg)

	var f model.Fleet
	id := f.AddUAV(model.NewUAV(0, geo.Point{Latitude: 5, Longitude: 5}, 600, 0, 0, model.UAVAttributes{RangeAtFull: 1000, InspectionTime: 1}))

	c.Step(&f, nil, 0)

	a := f.Get(id)
	if len(a.Queue) != 1 || a.Queue[0].Kind != model.GoTo {
		t.Fatalf("expected a single GoTo event, got %+v", a.Queue)
	}
	if a.Queue[0].Target != centre {
		t.Errorf("expected the out-of-bounds UAV to be routed to centre, got %v", a.Queue[0].Target)
	}
}

func TestUAVNearEdgeWithOutwardAttractorHovers(t *testing.T) {
	centre := geo.Point{Latitude: 0, Longitude: 0}
	cfg := Config{
		TargetAttractionConst: 1e6, TargetAttractionPower: 1, // grows with distance: overwhelming pull outward
		BoundaryRepulsionConst: 0, BoundaryRepulsionPower: 1,
		DtMinutes: 10, Centre: centre, Polygon: squarePolygon(1, centre),
	}
	c := NewController(cfg)

	var f model.Fleet
	near := geo.Point{Latitude: 0.99, Longitude: 0}
	id := f.AddUAV(model.NewUAV(0, near, 600, 0, 0, model.UAVAttributes{RangeAtFull: 1000, InspectionTime: 1}))

	target := geo.Point{Latitude: 10, Longitude: 0} // far outside, pulling the UAV through the boundary
	c.Step(&f, []geo.Point{target}, 0)

	a := f.Get(id)
	if len(a.Queue) != 1 || a.Queue[0].Kind != model.Hover {
		t.Fatalf("expected the UAV to hover rather than leave the polygon, got %+v", a.Queue)
	}
}

func TestForecastRequiresMinimumStrikesWithinRadius(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	cfg := ForecastConfig{Radius: 20, LookAhead: 60, MinInTarget: 2, CellSizeKm: 10}

	strikes := []HistoricalStrike{
		{Location: geo.Point{Latitude: 0.01, Longitude: 0}, Time: 0},
		{Location: geo.Point{Latitude: 0.02, Longitude: 0}, Time: 1},
	}
	targets := Forecast(cfg, origin, strikes, 10)
	if len(targets) == 0 {
		t.Fatal("expected at least one qualifying cell with two nearby recent strikes")
	}

	tooOld := []HistoricalStrike{
		{Location: geo.Point{Latitude: 0.01, Longitude: 0}, Time: -1000},
		{Location: geo.Point{Latitude: 0.02, Longitude: 0}, Time: -999},
	}
	if got := Forecast(cfg, origin, tooOld, 10); len(got) != 0 {
		t.Errorf("expected strikes outside the look-ahead window to be excluded, got %v", got)
	}
}
