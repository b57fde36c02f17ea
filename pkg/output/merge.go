// pkg/output/merge.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package output

import (
	"sort"

	"firewatch/pkg/model"
)

// MergeEventLogs flattens a fleet's per-aircraft event logs (each already
// chronological within an aircraft) into the single globally chronological
// sequence the *_event_updates.csv rows require (§6.3). Ties break on
// aircraft id for a stable, reproducible ordering.
func MergeEventLogs(logs [][]model.EventLogRecord) []model.EventLogRecord {
	var n int
	for _, l := range logs {
		n += len(l)
	}
	merged := make([]model.EventLogRecord, 0, n)
	for _, l := range logs {
		merged = append(merged, l...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].TimeMinutes != merged[j].TimeMinutes {
			return merged[i].TimeMinutes < merged[j].TimeMinutes
		}
		return merged[i].AircraftID < merged[j].AircraftID
	})
	return merged
}
