// pkg/input/tanks.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"fmt"
	"math"

	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

// ReadWaterTanks reads the water-tank table: latitude, longitude,
// capacity, and an optional initial level (full if omitted); a
// capacity of 0 or an absent column means an infinite tank (§6.2,
// model.NewWaterTank's Infinite helper).
func ReadWaterTanks(path string) ([]*model.WaterTank, error) {
	_, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	tanks := make([]*model.WaterTank, len(rows))
	for i, r := range rows {
		lat, err := r.requireFloat("latitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		lon, err := r.requireFloat("longitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		capacity, hasCap, err := r.float("capacity")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}

		loc := geo.Point{Latitude: lat, Longitude: lon}
		var t model.WaterTank
		if !hasCap || capacity <= 0 {
			t = model.NewWaterTank(i, loc, math.Inf(1))
		} else {
			t = model.NewWaterTank(i, loc, capacity)
			if level, ok, err := r.float("level"); err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
			} else if ok {
				t.Level, t.InitialLevel = level, level
			}
		}
		tanks[i] = &t
	}
	return tanks, nil
}
