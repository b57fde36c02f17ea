// pkg/input/bases.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"fmt"
	"strings"

	"firewatch/pkg/geo"
	"firewatch/pkg/model"
)

// ReadUAVBases reads the UAV base table: latitude, longitude columns
// only — every UAV may refuel at any UAV base (§6.2).
func ReadUAVBases(path string) ([]model.Base, error) {
	_, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	bases := make([]model.Base, len(rows))
	for i, r := range rows {
		lat, err := r.requireFloat("latitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		lon, err := r.requireFloat("longitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		bases[i] = model.Base{ID: i, Location: geo.Point{Latitude: lat, Longitude: lon}, AllKinds: true}
	}
	return bases, nil
}

// ReadWaterBomberBases reads the WB base table: latitude, longitude,
// all, plus one boolean-ish column per WB kind name (§6.2) — a base
// admits a kind if its own column or the "all" column holds "1".
func ReadWaterBomberBases(path string) ([]model.Base, error) {
	header, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	kindCols := make([]string, 0, len(header))
	for _, h := range header {
		if h != "latitude" && h != "longitude" && h != "all" {
			kindCols = append(kindCols, h)
		}
	}

	bases := make([]model.Base, len(rows))
	for i, r := range rows {
		lat, err := r.requireFloat("latitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		lon, err := r.requireFloat("longitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		all, _ := r.bool("all")

		kinds := make(map[string]bool, len(kindCols))
		for _, k := range kindCols {
			if admits, ok := r.bool(k); ok && admits {
				kinds[strings.ToLower(k)] = true
			}
		}
		bases[i] = model.Base{ID: i, Location: geo.Point{Latitude: lat, Longitude: lon}, AllKinds: all, Kinds: kinds}
	}
	return bases, nil
}
