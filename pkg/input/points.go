// pkg/input/points.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"fmt"

	"firewatch/pkg/geo"
)

// ReadPoints reads a bare latitude/longitude table, used for aircraft
// spawn locations and force-controller targets (§6.2).
func ReadPoints(path string) ([]geo.Point, error) {
	_, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	pts := make([]geo.Point, len(rows))
	for i, r := range rows {
		lat, err := r.requireFloat("latitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		lon, err := r.requireFloat("longitude")
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		pts[i] = geo.Point{Latitude: lat, Longitude: lon}
	}
	return pts, nil
}

// ReadBoundaryPolygon reads the force controller's operating-area
// polygon. A polygon with fewer than 3 vertices is a schema error
// (§7 kind 1).
func ReadBoundaryPolygon(path string) ([]geo.Point, error) {
	pts, err := ReadPoints(path)
	if err != nil {
		return nil, err
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%s: boundary polygon needs at least 3 vertices, got %d", path, len(pts))
	}
	return pts, nil
}
