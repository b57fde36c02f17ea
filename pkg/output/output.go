// pkg/output/output.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package output

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"firewatch/pkg/config"
	"firewatch/pkg/sim"
)

// WriteScenario writes the four per-scenario §6.3 artifacts (the
// simulation-output CSV, both event-update CSVs, and the histogram PNG)
// into outDir, concurrently: none of them has a data dependency on any
// other once s has finished Run()ning.
func WriteScenario(outDir string, s *sim.Scenario) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return WriteSimulationOutput(scenarioPath(outDir, s.Name, "_simulation_output.csv"), s.Strikes)
	})
	g.Go(func() error {
		path := scenarioPath(outDir, s.Name, "_uav_event_updates.csv")
		return WriteEventUpdates(path, MergeEventLogs(sim.EventLogs(s.UAVFleet)), false)
	})
	g.Go(func() error {
		path := scenarioPath(outDir, s.Name, "_wb_event_updates.csv")
		return WriteEventUpdates(path, MergeEventLogs(sim.EventLogs(s.WBFleet)), true)
	})
	g.Go(func() error {
		path := scenarioPath(outDir, s.Name, "_inspection_times.png")
		return WriteInspectionTimesPNG(path, s.Strikes, s.WBFleet, s.Tanks)
	})
	return g.Wait()
}

// WriteRun writes every finished scenario's per-scenario artifacts, then
// the run-level artifacts shared across a sweep: one gui.json pointing at
// every scenario's files, and one simulation_input/ mirror of the base
// parameters and tabular inputs every scenario in the sweep was expanded
// from (§6.1's sweep semantics mean they're the same files for every row).
func WriteRun(outDir string, paramsPath string, p *config.Parameters, scenarios []*sim.Scenario, runID string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, s := range scenarios {
		s := s
		g.Go(func() error { return WriteScenario(outDir, s) })
	}
	g.Go(func() error { return writeGUIManifest(outDir, scenarios, runID) })
	g.Go(func() error { return MirrorInputs(filepath.Join(outDir, "simulation_input"), paramsPath, p) })
	return g.Wait()
}

func writeGUIManifest(outDir string, scenarios []*sim.Scenario, runID string) error {
	entries := make([]GUIPointers, len(scenarios))
	for i, s := range scenarios {
		entries[i] = GUIPointers{
			Scenario:            s.Name,
			SimulationOutputCSV: s.Name + "_simulation_output.csv",
			UAVEventUpdatesCSV:  s.Name + "_uav_event_updates.csv",
			WBEventUpdatesCSV:   s.Name + "_wb_event_updates.csv",
			InspectionTimesPNG:  s.Name + "_inspection_times.png",
		}
	}
	return WriteGUIJSON(filepath.Join(outDir, "gui.json"), runID, entries)
}
