// pkg/model/base.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import "firewatch/pkg/geo"

// Base is a static refuel site with infinite capacity. UAV bases admit any
// UAV; water-bomber bases carry an explicit set of kind tags (plus an "all"
// tag) indicating which WB kinds may refuel there (§3, §6.2).
type Base struct {
	ID       int
	Location geo.Point

	// AllKinds is true when the tabular "all" column was set; any aircraft
	// kind may use the base regardless of Kinds.
	AllKinds bool
	// Kinds is the set of WB kind names (e.g. "heavy", "light") that may
	// refuel here. Unused for UAV bases, which always admit any UAV.
	Kinds map[string]bool
}

// Admits reports whether an aircraft of the named WB kind may refuel at
// this base. UAV bases should be constructed with AllKinds true.
func (b Base) Admits(kind string) bool {
	return b.AllKinds || b.Kinds[kind]
}
