// pkg/input/csv.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package input parses the tabular (CSV) inputs SPEC_FULL.md §6.2
// describes: water-bomber bases, UAV bases, water tanks, lightning
// strikes, aircraft spawn points, force-controller targets, the
// boundary polygon, and scenario-sweep tables. Column names are
// canonical but column order is not, so every reader works off the
// header row rather than positional indices.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"firewatch/pkg/util"
)

// row is one CSV record addressed by (trimmed, lower-cased) column
// name rather than position, matching §6.2's "column order is not
// canonical" rule.
type row map[string]string

func (r row) float(col string) (float64, bool, error) {
	v, ok := r[col]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false, nil
	}
	f, err := util.Atof(v)
	if err != nil {
		return 0, true, fmt.Errorf("column %q: %w", col, err)
	}
	return f, true, nil
}

func (r row) requireFloat(col string) (float64, error) {
	f, ok, err := r.float(col)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing required column %q", col)
	}
	return f, nil
}

func (r row) bool(col string) (bool, bool) {
	v, ok := r[col]
	if !ok {
		return false, false
	}
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true"), true
}

// readRows reads a CSV file into a header slice (trimmed, lower-cased,
// order preserved as encountered) and one row map per data record.
func readRows(path string) ([]string, []row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		rr := make(row, len(header))
		for i, v := range rec {
			if i < len(header) {
				rr[header[i]] = v
			}
		}
		rows = append(rows, rr)
	}
	return header, rows, nil
}
