// pkg/output/mirror.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"firewatch/pkg/config"
)

// MirrorInputs copies paramsPath and every tabular input it references into
// destDir, flat (sub-directories are flattened, paths inside the copy are
// not rewritten, per §6.3) so a run's inputs stay reproducible alongside
// its outputs even if the originals are later edited or moved.
func MirrorInputs(destDir string, paramsPath string, p *config.Parameters) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("simulation_input: %w", err)
	}

	files := []string{
		paramsPath,
		p.WaterBomberBasesFilename,
		p.UAVBasesFilename,
		p.WaterTanksFilename,
		p.LightningFilename,
		p.UAVs.SpawnLocFile,
	}
	for _, wb := range p.WaterBombers {
		files = append(files, wb.SpawnLocFile)
	}
	if p.UnassignedUAVs != nil {
		files = append(files, p.UnassignedUAVs.BoundaryPolygonFilename)
		if p.UnassignedUAVs.TargetsFilename != "" {
			files = append(files, p.UnassignedUAVs.TargetsFilename)
		}
	}
	if p.ScenarioParametersFilename != "" {
		files = append(files, p.ScenarioParametersFilename)
	}

	for _, src := range files {
		if src == "" {
			continue
		}
		if err := copyFlat(destDir, src); err != nil {
			return err
		}
	}
	return nil
}

func copyFlat(destDir, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("simulation_input: %w", err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("simulation_input: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("simulation_input: copying %s: %w", src, err)
	}
	return nil
}
