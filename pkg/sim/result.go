// pkg/sim/result.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "firewatch/pkg/model"

// EventLogs returns every aircraft's event log for the given fleet, in
// id order, matching the per-fleet *_event_updates.csv shape (§6.3).
func EventLogs(fleet *model.Fleet) [][]model.EventLogRecord {
	logs := make([][]model.EventLogRecord, fleet.Len())
	for id, a := range fleet.All() {
		logs[id] = a.EventLog
	}
	return logs
}
