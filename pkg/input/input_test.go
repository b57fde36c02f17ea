// pkg/input/input_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package input

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadUAVBasesIgnoresColumnOrder(t *testing.T) {
	path := writeTemp(t, "uav_bases.csv", "longitude,latitude\n145.0,-37.0\n146.5,-36.2\n")
	bases, err := ReadUAVBases(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(bases) != 2 {
		t.Fatalf("expected 2 bases, got %d", len(bases))
	}
	if bases[0].Location.Latitude != -37.0 || bases[0].Location.Longitude != 145.0 {
		t.Errorf("column-order-independent parse failed: got %+v", bases[0].Location)
	}
	if !bases[0].AllKinds {
		t.Errorf("expected UAV bases to admit any UAV")
	}
}

func TestReadWaterBomberBasesKindColumns(t *testing.T) {
	path := writeTemp(t, "wb_bases.csv",
		"latitude,longitude,all,heavy,light\n"+
			"-37.0,145.0,0,1,0\n"+
			"-37.1,145.1,1,0,0\n")
	bases, err := ReadWaterBomberBases(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bases[0].Admits("heavy") || bases[0].Admits("light") {
		t.Errorf("expected row 0 to admit only heavy, got %+v", bases[0])
	}
	if !bases[1].Admits("anything") {
		t.Errorf("expected row 1's all=1 to admit any kind")
	}
}

func TestReadWaterTanksDefaultsToInfiniteWithoutCapacity(t *testing.T) {
	path := writeTemp(t, "tanks.csv", "latitude,longitude\n-37.0,145.0\n")
	tanks, err := ReadWaterTanks(path)
	if err != nil {
		t.Fatal(err)
	}
	if !tanks[0].Infinite() {
		t.Errorf("expected a tank with no capacity column to be infinite")
	}
}

func TestReadWaterTanksWithCapacityAndLevel(t *testing.T) {
	path := writeTemp(t, "tanks.csv", "latitude,longitude,capacity,level\n-37.0,145.0,10,4\n")
	tanks, err := ReadWaterTanks(path)
	if err != nil {
		t.Fatal(err)
	}
	if tanks[0].Infinite() || tanks[0].Capacity != 10 || tanks[0].Level != 4 {
		t.Errorf("expected a finite tank with capacity 10, level 4, got %+v", tanks[0])
	}
}

func TestReadStrikesOptionalColumns(t *testing.T) {
	path := writeTemp(t, "lightning.csv",
		"latitude,longitude,spawn_time,ignited,risk_rating\n"+
			"-37.0,145.0,0,1,0.8\n"+
			"-37.1,145.1,5,,\n")
	strikes, err := ReadStrikes(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strikes[0].Ignited || strikes[0].RiskRating == nil || *strikes[0].RiskRating != 0.8 {
		t.Errorf("expected row 0 ignited with risk_rating 0.8, got %+v", strikes[0])
	}
	if strikes[1].RiskRating != nil {
		t.Errorf("expected row 1 to have no risk_rating override, got %v", strikes[1].RiskRating)
	}
}

func TestReadBoundaryPolygonRejectsFewerThanThreeVertices(t *testing.T) {
	path := writeTemp(t, "polygon.csv", "latitude,longitude\n-37.0,145.0\n-37.1,145.1\n")
	if _, err := ReadBoundaryPolygon(path); err == nil {
		t.Errorf("expected a 2-vertex polygon to be rejected")
	}
}

func TestReadScenarioParametersBuildsOverrideRows(t *testing.T) {
	path := writeTemp(t, "scenarios.csv", "scenario,uavs.flight_speed\nfast,120\nslow,30\n")
	rows, err := ReadScenarioParameters(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Name != "fast" || rows[0].Overrides["uavs.flight_speed"] != "120" {
		t.Errorf("unexpected scenario rows: %+v", rows)
	}
}
