// pkg/output/csv.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package output writes the artifacts a finished Scenario produces: the
// per-strike summary CSV, the per-fleet event-update CSVs, the inspection-
// times histogram PNG, the gui.json replay pointer, and the
// simulation_input/ mirror (SPEC_FULL.md §6.3).
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"firewatch/pkg/model"
)

// WriteSimulationOutput writes <scenario>_simulation_output.csv: one row
// per strike, in id order, with missing inspection/suppression times
// rendered as the literal "N/A" per §6.3.
func WriteSimulationOutput(path string, strikes *model.StrikeArena) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simulation output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"id", "lat", "lon", "spawn_time", "inspection_time", "suppression_time"}); err != nil {
		return err
	}

	for id, s := range strikes.All() {
		row := []string{
			strconv.Itoa(id),
			formatFloat(s.Location.Latitude),
			formatFloat(s.Location.Longitude),
			formatFloat(s.SpawnTime),
			naIfAbsent(s.InspectionTime),
			naIfAbsent(s.SuppressionTime),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteEventUpdates writes one <scenario>_uav_event_updates.csv or
// <scenario>_wb_event_updates.csv. Rows are expected to already be in
// global chronological order (the caller merges per-aircraft logs before
// calling this, see merge.go); wbKind selects whether the water-bomber-only
// water_capacity_L column is emitted.
func WriteEventUpdates(path string, records []model.EventLogRecord, wbKind bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("event updates: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"aircraft_id", "lat", "lon", "time_min", "distance_travelled_km",
		"distance_hovered_km", "fuel_pct", "current_range_km", "status", "next_updates"}
	if wbKind {
		header = append(header, "water_capacity_L")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.AircraftID),
			formatFloat(r.Location.Latitude),
			formatFloat(r.Location.Longitude),
			formatFloat(r.TimeMinutes),
			formatFloat(r.DistanceTravelledKm),
			formatFloat(r.DistanceHoveredKm),
			formatFloat(r.FuelPct),
			formatFloat(r.CurrentRangeKm),
			r.Status.String(),
			r.NextUpdates,
		}
		if wbKind {
			row = append(row, formatFloat(r.WaterCapacityL))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func naIfAbsent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// scenarioPath joins an output directory with a scenario-prefixed filename.
func scenarioPath(dir, scenario, suffix string) string {
	return filepath.Join(dir, scenario+suffix)
}
