// pkg/model/strikearena.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package model

import (
	"iter"

	"firewatch/pkg/util"
)

// StrikeArena is an arena of strikes indexed by stable integer ids,
// mirroring Fleet. This is what lets ReprocessMaxTime (§4.5) look the
// current worst-response-time strike up by id, unqueue it from whichever
// aircraft holds it, and re-insert it, without aliasing pointers across a
// coordinator replan (§9).
type StrikeArena struct {
	arena util.ObjectArena[Strike]
	byID  []*Strike
}

// Add allocates and returns the id of a new strike.
func (a *StrikeArena) Add(s Strike) int {
	id := len(a.byID)
	s.ID = id
	p := a.arena.AllocClear()
	*p = s
	a.byID = append(a.byID, p)
	return id
}

func (a *StrikeArena) Get(id int) *Strike { return a.byID[id] }
func (a *StrikeArena) Len() int           { return len(a.byID) }

func (a *StrikeArena) All() iter.Seq2[int, *Strike] {
	return func(yield func(int, *Strike) bool) {
		for i, s := range a.byID {
			if !yield(i, s) {
				return
			}
		}
	}
}
