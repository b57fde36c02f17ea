// pkg/input/strikes.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"fmt"

	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

// ReadStrikes reads the lightning-strike table: latitude, longitude,
// spawn_time are required; ignited, ignition_probability_override, and
// risk_rating are optional (§6.2, §4.4's ignition rule).
func ReadStrikes(path string) ([]model.Strike, error) {
	_, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	strikes := make([]model.Strike, len(rows))
	for i, r := range rows {
		lat, err := r.requireFloat("latitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		lon, err := r.requireFloat("longitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		spawn, err := r.requireFloat("spawn_time")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}

		s := model.Strike{ID: i, Location: geo.Point{Latitude: lat, Longitude: lon}, SpawnTime: spawn}

		if ignited, ok := r.bool("ignited"); ok {
			s.Ignited = ignited
			s.IgnitedExplicit = true
		}
		if v, ok, err := r.float("ignition_probability_override"); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		} else if ok {
			s.IgnitionProbabilityOverride = &v
		}
		if v, ok, err := r.float("risk_rating"); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		} else if ok {
			s.RiskRating = &v
		}

		strikes[i] = s
	}
	return strikes, nil
}
