// pkg/config/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const validJSON = `{
  "water_bomber_bases_filename": "wb_bases.csv",
  "uav_bases_filename": "uav_bases.csv",
  "water_tanks_filename": "tanks.csv",
  "lightning_filename": "lightning.csv",
  "output_folder_name": "out",
  "uav_coordinator": "Simple",
  "wb_coordinator": "Insertion",
  "uav_mean_time_power": 1,
  "wb_mean_time_power": 1,
  "target_maximum_inspection_time": "inf",
  "target_maximum_suppression_time": 2,
  "ignition_probability": 0.5,
  "uavs": {
    "spawn_loc_file": "uav_spawns.csv",
    "flight_speed": 60,
    "fuel_refill_time": 0,
    "range": 120,
    "inspection_time": 0,
    "pct_fuel_cutoff": 0
  },
  "water_bombers": {
    "heavy": {
      "spawn_loc_file": "wb_spawns.csv",
      "flight_speed": 80,
      "suppression_time": 10,
      "water_refill_time": 5,
      "fuel_refill_time": 5,
      "water_per_suppression": 1,
      "range_empty": 300,
      "range_under_load": 200,
      "water_capacity": 5,
      "pct_fuel_cutoff": 0.1
    }
  }
}`

func TestParseValidParameters(t *testing.T) {
	p, e := Parse([]byte(validJSON))
	require.Nil(t, e, "expected no validation errors")
	require.NotNil(t, p)
	require.Equal(t, "Simple", p.UAVCoordinator)

	target, err := ParseTargetMaximum(p.TargetMaximumInspectionTime)
	require.NoError(t, err)
	require.True(t, math.IsInf(target, 1))
}

func TestUnrecognisedKeyIsASchemaError(t *testing.T) {
	bad := `{"uav_coordinator": "Simple", "not_a_real_option": 1}`
	_, e := Parse([]byte(bad))
	require.NotNil(t, e)
	require.True(t, e.HaveErrors())
}

func TestOutOfRangePctFuelCutoffIsRejected(t *testing.T) {
	bad := `{
  "water_bomber_bases_filename": "a", "uav_bases_filename": "b",
  "water_tanks_filename": "c", "lightning_filename": "d",
  "uav_coordinator": "Simple", "wb_coordinator": "Simple",
  "uav_mean_time_power": 1, "wb_mean_time_power": 1,
  "target_maximum_inspection_time": "inf", "target_maximum_suppression_time": "inf",
  "ignition_probability": 0.5,
  "uavs": {"spawn_loc_file": "e", "flight_speed": 1, "fuel_refill_time": 0,
    "range": 1, "inspection_time": 0, "pct_fuel_cutoff": 1.5},
  "water_bombers": {"heavy": {"spawn_loc_file": "f", "flight_speed": 1,
    "suppression_time": 1, "water_refill_time": 1, "fuel_refill_time": 1,
    "water_per_suppression": 1, "range_empty": 1, "range_under_load": 1,
    "water_capacity": 1, "pct_fuel_cutoff": 0}}
  }`
	_, e := Parse([]byte(bad))
	require.NotNil(t, e)
	require.Contains(t, e.String(), "pct_fuel_cutoff")
}

func TestUnrecognisedTargetMaximumIsRejected(t *testing.T) {
	_, err := ParseTargetMaximum("soon")
	require.Error(t, err)
}

func TestScenarioSweepDoesNotMutateBase(t *testing.T) {
	base, e := Parse([]byte(validJSON))
	require.Nil(t, e)

	rows := []ScenarioRow{
		{Name: "fast", Overrides: map[string]string{"uavs.flight_speed": "120"}},
		{Name: "slow", Overrides: map[string]string{"uavs.flight_speed": "30"}},
	}
	expanded, err := Expand(base, rows)
	require.NoError(t, err)
	require.Len(t, expanded, 2)
	require.Equal(t, 120.0, expanded[0].UAVs.FlightSpeed)
	require.Equal(t, 30.0, expanded[1].UAVs.FlightSpeed)
	require.Equal(t, 60.0, base.UAVs.FlightSpeed, "expanding scenarios must not mutate the base parameters")
}
