// pkg/model/model_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import (
	"math"
	"testing"

	"firewatch/pkg/geo"
)

func TestUAVFuelBurnsLinearlyWithDistance(t *testing.T) {
	spawn := geo.Point{Latitude: -37, Longitude: 145}
	a := NewUAV(0, spawn, 60, 0, 0.2, UAVAttributes{RangeAtFull: 100})

	dest := geo.Point{Latitude: -37, Longitude: 145.5}
	d := geo.Distance(spawn, dest)
	a.ApplyTravel(dest)

	want := 1 - d/100
	if math.Abs(a.FuelFraction-want) > 1e-9 {
		t.Errorf("fuel fraction = %f, want %f", a.FuelFraction, want)
	}
	if a.FuelFraction < 0 || a.FuelFraction > 1 {
		t.Errorf("fuel fraction left [0,1]: %f", a.FuelFraction)
	}
}

func TestWaterBomberRangeDependsOnLoad(t *testing.T) {
	spawn := geo.Point{Latitude: 0, Longitude: 0}
	a := NewWaterBomber(0, spawn, 100, 10, 0.1, WaterBomberAttributes{
		KindName: "heavy", RangeEmpty: 500, RangeUnderLoad: 300, WaterCapacity: 1000, WaterPerSuppression: 100,
	})
	if r := a.RangeAtFullKm(); r != 300 {
		t.Errorf("expected full-load range 300, got %f", r)
	}
	a.WaterLevel = 0
	if r := a.RangeAtFullKm(); r != 500 {
		t.Errorf("expected empty range 500, got %f", r)
	}
}

func TestSuppressRequiresSufficientWater(t *testing.T) {
	a := NewWaterBomber(0, geo.Point{}, 100, 10, 0.1, WaterBomberAttributes{WaterCapacity: 50, WaterPerSuppression: 100})
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic suppressing with insufficient water")
		}
	}()
	a.Suppress()
}

func TestRefillWaterDebitsTank(t *testing.T) {
	tank := NewWaterTank(0, geo.Point{}, 1000)
	a := NewWaterBomber(0, geo.Point{}, 100, 10, 0.1, WaterBomberAttributes{WaterCapacity: 500, WaterPerSuppression: 100})
	a.WaterLevel = 100
	a.RefillWater(&tank)

	if a.WaterLevel != 500 {
		t.Errorf("expected full tank after refill, got %f", a.WaterLevel)
	}
	if tank.Level != 600 {
		t.Errorf("expected tank debited by 400, got %f", tank.Level)
	}
}

func TestTankDebitBelowZeroPanics(t *testing.T) {
	tank := NewWaterTank(0, geo.Point{}, 100)
	tank.Level = 10
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic debiting tank below zero")
		}
	}()
	tank.Debit(50)
}

func TestInfiniteTankNeverDebited(t *testing.T) {
	tank := NewWaterTank(0, geo.Point{}, math.Inf(1))
	tank.Debit(1e9)
	if !tank.Infinite() || tank.Level != math.Inf(1) {
		t.Errorf("expected infinite tank to remain unaffected by debit")
	}
}

func TestStrikeLifecycleInvariant(t *testing.T) {
	s := &Strike{ID: 0, SpawnTime: 10}
	s.Ignited = true
	s.SetInspected(1, 12)
	s.SetSuppressed(2, 15)

	if rt, ok := s.ResponseTime(); !ok || rt != 2 {
		t.Errorf("expected response time 2, got %f (ok=%v)", rt, ok)
	}
	if rt, ok := s.SuppressionResponseTime(); !ok || rt != 3 {
		t.Errorf("expected suppression response time 3, got %f (ok=%v)", rt, ok)
	}
}

func TestStrikeDoubleInspectionPanics(t *testing.T) {
	s := &Strike{ID: 0, SpawnTime: 0}
	s.SetInspected(1, 1)
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on double inspection")
		}
	}()
	s.SetInspected(1, 2)
}

func TestAircraftStateFollowsQueueHead(t *testing.T) {
	a := NewUAV(0, geo.Point{}, 60, 0, 0.1, UAVAttributes{RangeAtFull: 100})
	if a.State() != Idle {
		t.Errorf("expected Idle with empty queue")
	}
	a.Queue = append(a.Queue, InspectEvent(&Strike{ID: 0}))
	if a.State() != Servicing {
		t.Errorf("expected Servicing with Inspect at head, got %v", a.State())
	}
}

func TestBaseAdmission(t *testing.T) {
	b := Base{AllKinds: false, Kinds: map[string]bool{"heavy": true}}
	if b.Admits("light") {
		t.Errorf("expected light WBs not admitted")
	}
	if !b.Admits("heavy") {
		t.Errorf("expected heavy WBs admitted")
	}
	all := Base{AllKinds: true}
	if !all.Admits("anything") {
		t.Errorf("expected all-kinds base to admit any kind")
	}
}
