// pkg/geo/geo_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"math"
	"testing"
)

func closeEnough(a, b, eps float64) bool {
	return Abs(a-b) <= eps
}

func TestDistanceZero(t *testing.T) {
	p := Point{Latitude: -37, Longitude: 145}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0 distance for identical points, got %f", d)
	}
}

func TestDistanceKnown(t *testing.T) {
	// Roughly 1 degree of latitude is about 111km.
	a := Point{Latitude: -37.00, Longitude: 145.00}
	b := Point{Latitude: -36.00, Longitude: 145.00}
	d := Distance(a, b)
	if !closeEnough(d, 111.2, 1.0) {
		t.Errorf("expected ~111km, got %f", d)
	}
}

func TestPositionAtEndpoints(t *testing.T) {
	a := Point{Latitude: -37, Longitude: 145}
	b := Point{Latitude: -36, Longitude: 146}

	if p := PositionAt(a, b, 0, 10, 0); p != a {
		t.Errorf("expected start point at t=tStart, got %v", p)
	}
	if p := PositionAt(a, b, 0, 10, 10); p != b {
		t.Errorf("expected end point at t=tEnd, got %v", p)
	}
	if p := PositionAt(a, b, 0, 10, -5); p != a {
		t.Errorf("expected clamp to start before tStart, got %v", p)
	}
	if p := PositionAt(a, b, 0, 10, 50); p != b {
		t.Errorf("expected clamp to end after tEnd, got %v", p)
	}
}

func TestPositionAtMidpointStaysOnGreatCircle(t *testing.T) {
	a := Point{Latitude: -37, Longitude: 145}
	b := Point{Latitude: -37, Longitude: 147}
	mid := PositionAt(a, b, 0, 10, 5)

	total := Distance(a, b)
	da, db := Distance(a, mid), Distance(mid, b)
	if !closeEnough(da+db, total, 1e-6) {
		t.Errorf("midpoint %v not on great circle between %v and %v: %f+%f != %f",
			mid, a, b, da, db, total)
	}
}

func TestNearest(t *testing.T) {
	pts := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: -37, Longitude: 145},
		{Latitude: 10, Longitude: 10},
	}
	if idx := Nearest(pts, Point{Latitude: -37.01, Longitude: 145.01}); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}

func TestNearestTiesLowestIndex(t *testing.T) {
	pts := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0},
	}
	if idx := Nearest(pts, Point{Latitude: 1, Longitude: 1}); idx != 0 {
		t.Errorf("expected tie broken to index 0, got %d", idx)
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	if !PointInPolygon(Vec2{5, 5}, square) {
		t.Errorf("expected center point to be inside")
	}
	if PointInPolygon(Vec2{15, 5}, square) {
		t.Errorf("expected point outside the square to be outside")
	}
	// Boundary ties resolve to inside.
	if !PointInPolygon(Vec2{0, 5}, square) {
		t.Errorf("expected boundary point to be inside")
	}
	if !PointInPolygon(Vec2{10, 10}, square) {
		t.Errorf("expected vertex to be inside")
	}
}

func TestPointInPolygonTooFewVertices(t *testing.T) {
	if PointInPolygon(Vec2{0, 0}, []Vec2{{0, 0}, {1, 1}}) {
		t.Errorf("a degenerate polygon should never contain a point")
	}
}

func TestNearestPolygonEdgeDistance(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	d, out := NearestPolygonEdgeDistance(Vec2{5, 9}, square)
	if !closeEnough(d, 1, 1e-9) {
		t.Errorf("expected distance 1 from top edge, got %f", d)
	}
	if out[1] < 0 {
		t.Errorf("expected outward normal to point away from interior (+y), got %v", out)
	}
}

func TestToVec2RoundTrip(t *testing.T) {
	origin := Point{Latitude: -37, Longitude: 145}
	p := Point{Latitude: -37.05, Longitude: 145.08}
	v := ToVec2(p, origin)
	back := FromVec2(v, origin)
	if !closeEnough(back.Latitude, p.Latitude, 1e-9) || !closeEnough(back.Longitude, p.Longitude, 1e-9) {
		t.Errorf("round trip mismatch: %v != %v", back, p)
	}
}

func TestBearingCardinal(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	north := Point{Latitude: 1, Longitude: 0}
	if b := Bearing(a, north); !closeEnough(b, 0, 1e-6) && !closeEnough(b, 360, 1e-6) {
		t.Errorf("expected bearing ~0 due north, got %f", b)
	}

	east := Point{Latitude: 0, Longitude: 1}
	if b := Bearing(a, east); !closeEnough(b, 90, 1e-6) {
		t.Errorf("expected bearing ~90 due east, got %f", b)
	}
}

func TestLerp(t *testing.T) {
	if v := Lerp(0.5, 0, 10); v != 5 {
		t.Errorf("expected 5, got %f", v)
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(15, 0, 10); v != 10 {
		t.Errorf("expected clamp to 10, got %v", v)
	}
	if v := Clamp(-5, 0, 10); v != 0 {
		t.Errorf("expected clamp to 0, got %v", v)
	}
}

func TestDegreesRadiansRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 45, 90, 180, 270} {
		if got := Degrees(Radians(d)); !closeEnough(got, d, 1e-9) {
			t.Errorf("round trip mismatch for %f: got %f", d, got)
		}
	}
	if Radians(180) != math.Pi {
		t.Errorf("expected Radians(180) == Pi")
	}
}
