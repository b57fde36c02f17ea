// pkg/model/tank.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import (
	"math"

	"firewatch/pkg/geo"
)

// WaterTank is a shared, finite-or-infinite water reservoir. It is mutated
// only at RefillWaterAt event execution time (§5): water-bomber coordinators
// may plan against it, but the actual debit happens when the event runs,
// which is what lets a tank go dry between planning and execution and force
// a re-route (§4.5, §7 kind 3).
type WaterTank struct {
	ID            int
	Location      geo.Point
	Capacity      float64 // math.Inf(1) for an unlimited tank
	Level         float64
	InitialLevel  float64
}

func NewWaterTank(id int, loc geo.Point, capacity float64) WaterTank {
	return WaterTank{ID: id, Location: loc, Capacity: capacity, Level: capacity, InitialLevel: capacity}
}

// Infinite reports whether the tank has unlimited capacity.
func (t WaterTank) Infinite() bool {
	return math.IsInf(t.Capacity, 1)
}

// Available reports whether at least amount of water can currently be
// drawn from the tank.
func (t WaterTank) Available(amount float64) bool {
	return t.Infinite() || t.Level >= amount
}

// Debit withdraws amount from the tank, panicking as an invariant
// violation (§7 kind 4, I3) if that would drive the level negative.
func (t *WaterTank) Debit(amount float64) {
	if t.Infinite() {
		return
	}
	if t.Level < amount {
		panic("water tank debited below zero")
	}
	t.Level -= amount
}
