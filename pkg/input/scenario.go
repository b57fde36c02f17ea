// pkg/input/scenario.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"fmt"

	"firewatch/pkg/config"
)

// ReadScenarioParameters reads the scenario_parameters_filename sweep
// table (§6.1): the first column names the scenario, every other
// column is a dotted parameter path whose value replaces that option's
// "?" placeholder in the base parameters for that row.
func ReadScenarioParameters(path string) ([]config.ScenarioRow, error) {
	header, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: scenario table needs a name column plus at least one override column", path)
	}
	nameCol := header[0]

	out := make([]config.ScenarioRow, len(rows))
	for i, r := range rows {
		name, ok := r[nameCol]
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: row %d: missing scenario name", path, i)
		}
		overrides := make(map[string]string, len(header)-1)
		for _, col := range header[1:] {
			if v, ok := r[col]; ok {
				overrides[col] = v
			}
		}
		out[i] = config.ScenarioRow{Name: name, Overrides: overrides}
	}
	return out, nil
}
