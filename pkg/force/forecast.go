// pkg/force/forecast.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package force

import "firewatch/pkg/geo"

// ForecastConfig configures the optional historical-strike enrichment of
// the target set (§4.6): grid cells that have seen at least MinInTarget
// strikes within Radius over the trailing LookAhead window are added to
// the targets the force field attracts toward.
type ForecastConfig struct {
	Radius      float64 // km
	LookAhead   float64 // minutes, trailing window ending at `now`
	MinInTarget int
	CellSizeKm  float64
}

// HistoricalStrike is the minimal shape Forecast needs from a strike:
// where and when it occurred.
type HistoricalStrike struct {
	Location geo.Point
	Time     float64
}

// Forecast returns the grid-cell centres that qualify as targets given
// the strikes observed so far (SPEC_FULL.md §4.6's forecasting
// enrichment). Cells are keyed by integer (x,y) on a CellSizeKm grid
// centred at origin, projected via geo.ToVec2; a cell qualifies if at
// least MinInTarget of the strikes within LookAhead minutes of now fall
// within Radius km of its centre. A strike is only counted for the cells
// in the 3x3 block around its own cell, so when Radius reaches beyond
// that block, more distant cell centres within Radius do not count it.
func Forecast(cfg ForecastConfig, origin geo.Point, strikes []HistoricalStrike, now float64) []geo.Point {
	type cellKey struct{ x, y int }
	counts := map[cellKey]int{}
	centres := map[cellKey]geo.Vec2{}

	cellOf := func(v geo.Vec2) cellKey {
		return cellKey{
			x: int(v[0] / cfg.CellSizeKm),
			y: int(v[1] / cfg.CellSizeKm),
		}
	}

	recent := make([]geo.Vec2, 0, len(strikes))
	for _, s := range strikes {
		if now-s.Time > cfg.LookAhead || s.Time > now {
			continue
		}
		recent = append(recent, geo.ToVec2(s.Location, origin))
	}

	// Every recent strike casts a vote for its own cell, and for every
	// neighbouring cell whose centre it falls within Radius of, since a
	// cell's qualification depends on proximity to its centre, not just
	// membership in the same grid square.
	for _, v := range recent {
		k := cellOf(v)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nk := cellKey{x: k.x + dx, y: k.y + dy}
				centre, ok := centres[nk]
				if !ok {
					centre = geo.Vec2{
						(float64(nk.x) + 0.5) * cfg.CellSizeKm,
						(float64(nk.y) + 0.5) * cfg.CellSizeKm,
					}
					centres[nk] = centre
				}
				if geo.Length2f(geo.Sub2f(v, centre)) <= cfg.Radius {
					counts[nk]++
				}
			}
		}
	}

	var targets []geo.Point
	for k, n := range counts {
		if n >= cfg.MinInTarget {
			targets = append(targets, geo.FromVec2(centres[k], origin))
		}
	}
	return targets
}
