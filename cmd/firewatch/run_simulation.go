// cmd/firewatch/run_simulation.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"firewatch/pkg/config"
	"firewatch/pkg/input"
	"firewatch/pkg/log"
	"firewatch/pkg/output"
	"firewatch/pkg/sim"
	"firewatch/pkg/util"
)

func newRunSimulationCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-simulation [parameters_path]",
		Short: "Run a lightning-strike dispatch simulation from a parameters file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "parameters.json"
			if len(args) == 1 {
				path = args[0]
			}
			return runSimulation(path, v)
		},
	}
	cmd.Flags().BoolVar(&newRunID, "new-run-id", false, "stamp this run's gui.json with a fresh run id")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile of the run to this file")
	cmd.Flags().StringVar(&memProfile, "memprofile", "", "write a heap profile of the run to this file")
	return cmd
}

func runSimulation(path string, v *viper.Viper) error {
	lg := log.New(true, v.GetString("loglevel"), "")

	prof, err := util.CreateProfiler(cpuProfile, memProfile)
	if err != nil {
		return err
	}
	defer prof.Cleanup()

	p, errLog := config.Load(path)
	if errLog.HaveErrors() {
		errLog.PrintErrors(lg)
		return fmt.Errorf("%s: invalid parameters", path)
	}

	outDir := p.OutputFolderName
	if override := v.GetString("output_folder"); override != "" {
		outDir = override
	}

	paramSets, names, err := expandScenarios(p)
	if err != nil {
		return err
	}

	scenarios := make([]*sim.Scenario, len(paramSets))
	for i, sp := range paramSets {
		s, err := sim.Build(names[i], sp, lg)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", names[i], err)
		}
		lg.Infof("running scenario %q", names[i])
		s.Run()
		scenarios[i] = s
	}

	var runID string
	if newRunID {
		runID = uuid.NewString()
	}

	return output.WriteRun(outDir, path, p, scenarios, runID)
}

// expandScenarios returns the one-or-many Parameters a run actually
// executes, along with a matching scenario name for each: either the base
// parameters under the fixed name "scenario", or one
// deep-copied, override-applied Parameters per row of the configured sweep
// table (§6.1).
func expandScenarios(p *config.Parameters) ([]*config.Parameters, []string, error) {
	if p.ScenarioParametersFilename == "" {
		return []*config.Parameters{p}, []string{"scenario"}, nil
	}

	rows, err := input.ReadScenarioParameters(p.ScenarioParametersFilename)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario parameters: %w", err)
	}
	expanded, err := config.Expand(p, rows)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return expanded, names, nil
}
