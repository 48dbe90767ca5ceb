// Package player implements Player state: position, heading, elevation,
// inventory, satiety, and the Idle/Incantating state machine.
package player

import (
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/resources"
	"github.com/talgya/citadel/internal/team"
)

// State is a player's activity state.
type State int

const (
	Idle State = iota
	Incantating
)

// StartingSatiety is the satiety a newly-hatched player begins with, and the
// value it is refilled to on consuming a Food unit.
const StartingSatiety = 126

// MaxElevation is the terminal elevation level; Elevate never goes past it.
const MaxElevation = 8

// Player is one live AI-controlled agent.
type Player struct {
	Id        ids.Id
	Team      team.Id
	Position  geometry.Position
	Heading   geometry.Heading
	Elevation int
	Inventory resources.Bag
	Satiety   int
	State     State
}

// New creates a freshly-hatched player at pos with the given heading,
// StartingSatiety satiety, an empty inventory, and elevation 1.
func New(id ids.Id, t team.Id, pos geometry.Position, heading geometry.Heading) *Player {
	p := &Player{
		Id:        id,
		Team:      t,
		Position:  pos,
		Heading:   heading,
		Elevation: 1,
		Satiety:   StartingSatiety,
		State:     Idle,
	}
	return p
}

// DecayResult reports the outcome of one satiety tick.
type DecayResult int

const (
	DecayOk DecayResult = iota
	DecayAteFood
	DecayDied
)

// Tick decrements satiety by one. If it would reach zero, consuming a Food
// unit refills it to StartingSatiety; with no Food the player is starved.
func (p *Player) Tick() DecayResult {
	p.Satiety--
	if p.Satiety > 0 {
		return DecayOk
	}
	if p.Inventory.TrySubtract(resources.Food, 1) {
		p.Satiety = StartingSatiety
		return DecayAteFood
	}
	return DecayDied
}

// Advance moves the player one cell forward in its current heading.
func (p *Player) Advance(size geometry.Size) {
	p.Position = p.Position.Step(p.Heading, size)
}

// TurnRight rotates the player's heading 90 degrees clockwise.
func (p *Player) TurnRight() {
	p.Heading = p.Heading.Right()
}

// TurnLeft rotates the player's heading 90 degrees counter-clockwise.
func (p *Player) TurnLeft() {
	p.Heading = p.Heading.Left()
}

// Elevate increments elevation by one, capped at MaxElevation.
func (p *Player) Elevate() {
	if p.Elevation < MaxElevation {
		p.Elevation++
	}
}

// VisionCellCount returns the number of cells a Look command reveals at the
// player's current elevation: (elevation+1)^2.
func (p *Player) VisionCellCount() int {
	n := p.Elevation + 1
	return n * n
}
