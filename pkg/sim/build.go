// pkg/sim/build.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"sort"

	"firewatch/pkg/config"
	"firewatch/pkg/dispatch"
	"firewatch/pkg/force"
	"firewatch/pkg/geo"
	"firewatch/pkg/input"
	"firewatch/pkg/log"
	"firewatch/pkg/model"
	"firewatch/pkg/util"
)

// Build wires validated Parameters and the tabular inputs they name into
// a ready-to-Run Scenario (SPEC_FULL.md §6.1, §6.2). name identifies the
// scenario for logging and, absent an explicit seed, for deriving one.
func Build(name string, p *config.Parameters, lg *log.Logger) (*Scenario, error) {
	uavBases, err := input.ReadUAVBases(p.UAVBasesFilename)
	if err != nil {
		return nil, fmt.Errorf("uav bases: %w", err)
	}
	wbBases, err := input.ReadWaterBomberBases(p.WaterBomberBasesFilename)
	if err != nil {
		return nil, fmt.Errorf("water bomber bases: %w", err)
	}
	tanks, err := input.ReadWaterTanks(p.WaterTanksFilename)
	if err != nil {
		return nil, fmt.Errorf("water tanks: %w", err)
	}
	strikeRows, err := input.ReadStrikes(p.LightningFilename)
	if err != nil {
		return nil, fmt.Errorf("lightning: %w", err)
	}

	var strikes model.StrikeArena
	for _, st := range strikeRows {
		strikes.Add(st)
	}

	// The config exposes one prioritisation_function, under uavs; both
	// coordinators share it, since §4.5's priority weighting is a
	// property of the cost function, not something the two fleets would
	// plausibly want to disagree about.
	priority, err := model.ParsePrioritisationFunction(p.UAVs.Prioritisation)
	if err != nil {
		return nil, err
	}

	uavFleet, err := buildUAVFleet(p, priority)
	if err != nil {
		return nil, err
	}
	wbFleet, err := buildWBFleet(p)
	if err != nil {
		return nil, err
	}

	uavPolicy, err := model.ParseCoordinatorPolicy(p.UAVCoordinator)
	if err != nil {
		return nil, err
	}
	wbPolicy, err := model.ParseCoordinatorPolicy(p.WBCoordinator)
	if err != nil {
		return nil, err
	}

	inspectHours, err := config.ParseTargetMaximum(p.TargetMaximumInspectionTime)
	if err != nil {
		return nil, err
	}
	suppressHours, err := config.ParseTargetMaximum(p.TargetMaximumSuppressionTime)
	if err != nil {
		return nil, err
	}

	uavMeanPower := p.UAVMeanTimePower
	if uavMeanPower == 0 {
		uavMeanPower = 1
	}
	wbMeanPower := p.WBMeanTimePower
	if wbMeanPower == 0 {
		wbMeanPower = 1
	}

	uavCoord := dispatch.New(uavPolicy, model.UAV, uavFleet, &strikes, uavBases, nil,
		uavMeanPower, inspectHours*60, priority, lg)
	wbCoord := dispatch.New(wbPolicy, model.WaterBomber, wbFleet, &strikes, wbBases, tanks,
		wbMeanPower, suppressHours*60, priority, lg)

	seed := util.HashString64(name)
	if p.Seed != nil {
		seed = *p.Seed
	}

	s := NewScenario(name, uavFleet, wbFleet, &strikes, tanks, uavCoord, wbCoord, p.IgnitionProbability, seed, lg)

	if p.UnassignedUAVs != nil {
		if err := wireForceController(s, p.UnassignedUAVs); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func buildUAVFleet(p *config.Parameters, prioritisation model.PrioritisationFunction) (*model.Fleet, error) {
	spawns, err := input.ReadPoints(p.UAVs.SpawnLocFile)
	if err != nil {
		return nil, fmt.Errorf("uav spawn points: %w", err)
	}

	var fleet model.Fleet
	for _, spawn := range spawns {
		fleet.AddUAV(model.NewUAV(0, spawn, p.UAVs.FlightSpeed, p.UAVs.FuelRefillTime, p.UAVs.PctFuelCutoff,
			model.UAVAttributes{RangeAtFull: p.UAVs.Range, InspectionTime: p.UAVs.InspectionTime, Prioritisation: prioritisation}))
	}
	return &fleet, nil
}

func buildWBFleet(p *config.Parameters) (*model.Fleet, error) {
	kinds := make([]string, 0, len(p.WaterBombers))
	for k := range p.WaterBombers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds) // deterministic fleet id assignment regardless of map iteration order

	var fleet model.Fleet
	for _, kind := range kinds {
		wb := p.WaterBombers[kind]
		spawns, err := input.ReadPoints(wb.SpawnLocFile)
		if err != nil {
			return nil, fmt.Errorf("water bomber %q spawn points: %w", kind, err)
		}
		attrs := model.WaterBomberAttributes{
			KindName: kind, RangeEmpty: wb.RangeEmpty, RangeUnderLoad: wb.RangeUnderLoad,
			SuppressionTime: wb.SuppressionTime, WaterRefillTime: wb.WaterRefillTime,
			WaterPerSuppression: wb.WaterPerSuppression, WaterCapacity: wb.WaterCapacity,
		}
		for _, spawn := range spawns {
			fleet.AddWaterBomber(model.NewWaterBomber(0, spawn, wb.FlightSpeed, wb.FuelRefillTime, wb.PctFuelCutoff, attrs))
		}
	}
	return &fleet, nil
}

func wireForceController(s *Scenario, cfg *config.UnassignedUAVsParameters) error {
	polygon, err := input.ReadBoundaryPolygon(cfg.BoundaryPolygonFilename)
	if err != nil {
		return fmt.Errorf("boundary polygon: %w", err)
	}

	var targets []geo.Point
	if cfg.TargetsFilename != "" {
		targets, err = input.ReadPoints(cfg.TargetsFilename)
		if err != nil {
			return fmt.Errorf("unassigned_uavs targets: %w", err)
		}
	}

	centre := geo.Point{Latitude: cfg.CentreLat, Longitude: cfg.CentreLon}
	dtMinutes := cfg.DtSeconds / 60

	controller := force.NewController(force.Config{
		TargetAttractionConst: 1, TargetAttractionPower: -1, // attraction grows as targets get nearer; §4.6's r^p with a negative p
		UAVRepulsionConst: cfg.UAVRepulsionConst, UAVRepulsionPower: cfg.UAVRepulsionPower,
		BoundaryRepulsionConst: cfg.BoundaryRepulsionConst, BoundaryRepulsionPower: cfg.BoundaryRepulsionPower,
		DtMinutes: dtMinutes, Centre: centre, Polygon: polygon,
	})

	var forecastCfg *force.ForecastConfig
	if cfg.Forecasting != nil {
		forecastCfg = &force.ForecastConfig{
			Radius: cfg.Forecasting.Radius, LookAhead: cfg.Forecasting.LookAhead * 60,
			MinInTarget: cfg.Forecasting.MinInTarget, CellSizeKm: cfg.Forecasting.CellSizeKm,
		}
	}

	s.WithForce(controller, dtMinutes, targets, forecastCfg, centre)
	return nil
}
