// pkg/config/sweep.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"fmt"
	"strconv"

	"github.com/brunoga/deep"
)

// ScenarioRow is one row of the scenario_parameters_filename table
// (§6.1): Name identifies the scenario, and Overrides maps each
// "?"-marked option's dotted path (e.g. "uavs.flight_speed") to its
// replacement value for this row.
type ScenarioRow struct {
	Name      string
	Overrides map[string]string
}

// Expand produces one Parameters per row, each a deep copy of base with
// that row's overrides applied, so mutating one expanded scenario can
// never leak into another or into base itself (§6.1, grounded on the
// teacher's brunoga/deep dependency used for exactly this "copy, then
// mutate the copy" shape).
func Expand(base *Parameters, rows []ScenarioRow) ([]*Parameters, error) {
	out := make([]*Parameters, 0, len(rows))
	for _, row := range rows {
		p, err := deep.Copy(base)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: cloning base parameters: %w", row.Name, err)
		}
		if err := applyOverrides(p, row.Overrides); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", row.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// applyOverrides sets each dotted-path field named in overrides. Only
// the options a scenario table may plausibly sweep over are supported;
// anything else is a schema error rather than silently ignored.
func applyOverrides(p *Parameters, overrides map[string]string) error {
	for path, value := range overrides {
		if err := setField(p, path, value); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func setField(p *Parameters, path, value string) error {
	switch path {
	case "uav_coordinator":
		p.UAVCoordinator = value
	case "wb_coordinator":
		p.WBCoordinator = value
	case "ignition_probability":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.IgnitionProbability = f
	case "uav_mean_time_power":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.UAVMeanTimePower = f
	case "wb_mean_time_power":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.WBMeanTimePower = f
	case "uavs.flight_speed":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.UAVs.FlightSpeed = f
	case "uavs.range":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.UAVs.Range = f
	case "uavs.pct_fuel_cutoff":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.UAVs.PctFuelCutoff = f
	case "target_maximum_inspection_time":
		p.TargetMaximumInspectionTime = value
	case "target_maximum_suppression_time":
		p.TargetMaximumSuppressionTime = value
	default:
		return fmt.Errorf("unrecognised sweep option %q", path)
	}
	return nil
}
