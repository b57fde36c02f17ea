// pkg/model/fleet.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import (
	"iter"

	"firewatch/pkg/util"
)

// Fleet is an arena of aircraft indexed by stable integer ids, per
// SPEC_FULL.md §9: coordinators hold ids, never aliasing pointers across a
// replan. Internally it is backed by util.ObjectArena so aircraft memory is
// allocated once and never relocated once handed out.
type Fleet struct {
	arena util.ObjectArena[Aircraft]
	byID  []*Aircraft
}

// AddUAV allocates and returns the id of a new UAV.
func (f *Fleet) AddUAV(spawn Aircraft) int {
	return f.add(spawn)
}

// AddWaterBomber allocates and returns the id of a new water bomber. A
// Fleet only ever holds one kind at a time (a scenario builds one Fleet
// per fleet, not per aircraft kind), so this and AddUAV are equivalent;
// both exist so call sites read naturally regardless of which fleet
// they're populating.
func (f *Fleet) AddWaterBomber(spawn Aircraft) int {
	return f.add(spawn)
}

func (f *Fleet) add(spawn Aircraft) int {
	id := len(f.byID)
	spawn.ID = id
	p := f.arena.AllocClear()
	*p = spawn
	f.byID = append(f.byID, p)
	return id
}

// Get returns the aircraft with the given id. It panics on an out-of-range
// id, which would indicate a coordinator bug, not a data error.
func (f *Fleet) Get(id int) *Aircraft {
	return f.byID[id]
}

// Len returns the number of aircraft in the fleet.
func (f *Fleet) Len() int { return len(f.byID) }

// All iterates every aircraft in id order.
func (f *Fleet) All() iter.Seq2[int, *Aircraft] {
	return func(yield func(int, *Aircraft) bool) {
		for i, a := range f.byID {
			if !yield(i, a) {
				return
			}
		}
	}
}

// AllIdle reports whether every aircraft in the fleet is currently Idle,
// which together with an exhausted strike stream ends the simulation (§2).
func (f *Fleet) AllIdle() bool {
	for _, a := range f.byID {
		if a.State() != Idle {
			return false
		}
	}
	return true
}
