package world

import (
	"github.com/talgya/citadel/internal/entropy"
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/team"
)

// Egg is a latent player slot on a cell, belonging to a team.
type Egg struct {
	Id       ids.Id
	Team     team.Id
	Position geometry.Position
}

// EggRegistry is the flat, ordered list of every live egg.
type EggRegistry struct {
	eggs []Egg
}

// NewEggRegistry returns an empty registry.
func NewEggRegistry() *EggRegistry {
	return &EggRegistry{}
}

// Spawn appends a new egg for team at pos and returns it.
func (r *EggRegistry) Spawn(id ids.Id, t team.Id, pos geometry.Position) Egg {
	e := Egg{Id: id, Team: t, Position: pos}
	r.eggs = append(r.eggs, e)
	return e
}

// Drop picks one egg of team t at uniform random, removes it from the
// registry, and returns it. ok is false if the team has no eggs.
func (r *EggRegistry) Drop(t team.Id, src *entropy.Source) (egg Egg, ok bool) {
	var candidates []int
	for i, e := range r.eggs {
		if e.Team == t {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Egg{}, false
	}
	idx := candidates[src.IntN(len(candidates))]
	egg = r.eggs[idx]
	r.remove(idx)
	return egg, true
}

// BreakAt removes and returns every egg at pos (e.g. destroyed by Eject).
func (r *EggRegistry) BreakAt(pos geometry.Position) []Egg {
	var broken []Egg
	remaining := r.eggs[:0]
	for _, e := range r.eggs {
		if e.Position == pos {
			broken = append(broken, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	r.eggs = remaining
	return broken
}

// CountForTeam returns the number of eggs currently held by team t.
func (r *EggRegistry) CountForTeam(t team.Id) int {
	n := 0
	for _, e := range r.eggs {
		if e.Team == t {
			n++
		}
	}
	return n
}

// All returns every live egg.
func (r *EggRegistry) All() []Egg {
	return r.eggs
}

func (r *EggRegistry) remove(idx int) {
	r.eggs[idx] = r.eggs[len(r.eggs)-1]
	r.eggs = r.eggs[:len(r.eggs)-1]
}
