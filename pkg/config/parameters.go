// pkg/config/parameters.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config decodes, schema-checks, and validates the JSON run
// parameters (SPEC_FULL.md §6.1), and expands scenario sweeps.
package config

// UAVParameters configures the inspection-UAV fleet (§6.1 "uavs").
type UAVParameters struct {
	SpawnLocFile   string  `json:"spawn_loc_file" validate:"required"`
	FlightSpeed    float64 `json:"flight_speed" validate:"gt=0"`
	FuelRefillTime float64 `json:"fuel_refill_time" validate:"gte=0"`
	Range          float64 `json:"range" validate:"gt=0"`
	InspectionTime float64 `json:"inspection_time" validate:"gte=0"`
	PctFuelCutoff  float64 `json:"pct_fuel_cutoff" validate:"gte=0,lte=1"`

	// Prioritisation is the raw config string ("", "none", "product",
	// "sum", "risk_only"); validateValues (validate.go) parses it into a closed
	// model.PrioritisationFunction and rejects anything else.
	Prioritisation string `json:"prioritisation_function" validate:"omitempty,oneof=none product sum risk_only"`
}

// WaterBomberParameters configures one named water-bomber kind (§6.1
// "water_bombers" is a mapping of kind name to this shape).
type WaterBomberParameters struct {
	SpawnLocFile        string  `json:"spawn_loc_file" validate:"required"`
	FlightSpeed         float64 `json:"flight_speed" validate:"gt=0"`
	SuppressionTime     float64 `json:"suppression_time" validate:"gte=0"`
	WaterRefillTime     float64 `json:"water_refill_time" validate:"gte=0"`
	FuelRefillTime      float64 `json:"fuel_refill_time" validate:"gte=0"`
	WaterPerSuppression float64 `json:"water_per_suppression" validate:"gt=0"`
	RangeEmpty          float64 `json:"range_empty" validate:"gt=0"`
	RangeUnderLoad      float64 `json:"range_under_load" validate:"gt=0"`
	WaterCapacity       float64 `json:"water_capacity" validate:"gt=0"`
	PctFuelCutoff       float64 `json:"pct_fuel_cutoff" validate:"gte=0,lte=1"`
}

// ForecastingParameters configures the optional historical-strike
// enrichment of the force controller's target set (§4.6).
type ForecastingParameters struct {
	Radius      float64 `json:"radius" validate:"gt=0"`
	LookAhead   float64 `json:"look_ahead" validate:"gt=0"`
	MinInTarget int     `json:"min_in_target" validate:"gte=1"`
	CellSizeKm  float64 `json:"cell_size_km" validate:"gt=0"`
}

// UnassignedUAVsParameters configures the optional idle-UAV force
// controller (§6.1 "unassigned_uavs").
type UnassignedUAVsParameters struct {
	TargetsFilename         string                 `json:"targets_filename"`
	BoundaryPolygonFilename string                 `json:"boundary_polygon_filename" validate:"required"`
	DtSeconds               float64                `json:"dt" validate:"gt=0"`
	UAVRepulsionConst       float64                `json:"uav_repulsion_const"`
	UAVRepulsionPower       float64                `json:"uav_repulsion_power"`
	BoundaryRepulsionConst  float64                `json:"boundary_repulsion_const"`
	BoundaryRepulsionPower  float64                `json:"boundary_repulsion_power"`
	CentreLat               float64                `json:"centre_lat" validate:"gte=-90,lte=90"`
	CentreLon               float64                `json:"centre_lon" validate:"gte=-180,lte=180"`
	Forecasting             *ForecastingParameters `json:"forecasting"`
}

// Parameters is the top-level run configuration (§6.1). Every field is
// schema-checked against this type with util.CheckJSON before being
// struct-tag validated; the struct-tag pass runs only when the schema
// check found nothing (see Parse in validate.go).
type Parameters struct {
	WaterBomberBasesFilename string `json:"water_bomber_bases_filename" validate:"required"`
	UAVBasesFilename         string `json:"uav_bases_filename" validate:"required"`
	WaterTanksFilename       string `json:"water_tanks_filename" validate:"required"`
	LightningFilename        string `json:"lightning_filename" validate:"required"`

	OutputFolderName string `json:"output_folder_name"`

	UAVCoordinator string `json:"uav_coordinator" validate:"required,oneof=Simple Insertion MinimiseMeanTime ReprocessMaxTime"`
	WBCoordinator  string `json:"wb_coordinator" validate:"required,oneof=Simple Insertion MinimiseMeanTime ReprocessMaxTime"`

	// UAVMeanTimePower/WBMeanTimePower default to 1 (§6.1) when omitted;
	// omitempty lets the zero value through the validator so pkg/sim can
	// apply that default rather than every caller having to set it.
	UAVMeanTimePower float64 `json:"uav_mean_time_power" validate:"omitempty,gt=0"`
	WBMeanTimePower  float64 `json:"wb_mean_time_power" validate:"omitempty,gt=0"`

	// TargetMaximum*Time accept a number of hours or the literal string
	// "inf"; ParseTargetMaximum below is what actually interprets them,
	// since go-playground/validator has no "number or the string inf"
	// tag, and Go's json package won't decode "inf" into a float64.
	TargetMaximumInspectionTime   interface{} `json:"target_maximum_inspection_time"`
	TargetMaximumSuppressionTime  interface{} `json:"target_maximum_suppression_time"`

	IgnitionProbability float64 `json:"ignition_probability" validate:"gte=0,lte=1"`

	UAVs          UAVParameters                    `json:"uavs"`
	WaterBombers  map[string]WaterBomberParameters `json:"water_bombers" validate:"required,min=1"`
	UnassignedUAVs *UnassignedUAVsParameters        `json:"unassigned_uavs"`

	ScenarioParametersFilename string `json:"scenario_parameters_filename"`

	Seed *uint64 `json:"seed"`
}
