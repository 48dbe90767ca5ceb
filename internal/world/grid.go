// Package world holds the toroidal cell grid, the shared resource totals
// that drive the refill policy, and the flat egg registry.
package world

import (
	"fmt"

	"github.com/talgya/citadel/internal/entropy"
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/resources"
)

// RefillDensity is the target fraction of cells carrying one unit of a
// resource kind, at steady state, globally.
var RefillDensity = [resources.NumKinds]float64{
	resources.Food:      0.5,
	resources.Linemate:  0.3,
	resources.Deraumere: 0.15,
	resources.Sibur:     0.1,
	resources.Mendiane:  0.1,
	resources.Phiras:    0.08,
	resources.Thystame:  0.05,
}

// Cell holds the resource bag present at one grid position.
type Cell struct {
	Resources resources.Bag
}

// Grid is a dense W*H array of cells on a torus, plus the running total of
// resources across every cell (the refill policy's target).
type Grid struct {
	size   geometry.Size
	cells  []Cell
	Totals resources.Bag
}

// NewGrid allocates an empty W*H grid.
func NewGrid(size geometry.Size) *Grid {
	return &Grid{
		size:  size,
		cells: make([]Cell, size.W*size.H),
	}
}

// Size returns the grid's torus dimensions.
func (g *Grid) Size() geometry.Size {
	return g.size
}

func (g *Grid) index(p geometry.Position) int {
	n := p.Normalize(g.size)
	return n.Y*g.size.W + n.X
}

// At returns a pointer to the cell at p, wrapping p onto the torus first.
func (g *Grid) At(p geometry.Position) *Cell {
	return &g.cells[g.index(p)]
}

// AddResource adds n units of kind at p and updates the running total.
// n may be negative.
func (g *Grid) AddResource(p geometry.Position, kind resources.Kind, n int) {
	g.At(p).Resources.Add(kind, n)
	g.Totals.Add(kind, n)
}

// TrySubtractResource removes n units of kind at p if available, updating
// the running total on success.
func (g *Grid) TrySubtractResource(p geometry.Position, kind resources.Kind, n int) bool {
	if !g.At(p).Resources.TrySubtract(kind, n) {
		return false
	}
	g.Totals.Add(kind, -n)
	return true
}

// Refill compares each kind's running total against floor(density*W*H) and
// spawns the shortfall, one unit at a uniformly-random cell per unit. It
// returns every position that received a unit, grouped by kind, so the
// caller can fan out cell-update observer events.
func (g *Grid) Refill(src *entropy.Source) map[resources.Kind][]geometry.Position {
	spawned := make(map[resources.Kind][]geometry.Position)
	area := g.size.W * g.size.H
	for _, kind := range resources.WireOrder {
		target := int(RefillDensity[kind] * float64(area))
		deficit := target - g.Totals[kind]
		for i := 0; i < deficit; i++ {
			p := geometry.Position{X: src.IntN(g.size.W), Y: src.IntN(g.size.H)}
			g.AddResource(p, kind, 1)
			spawned[kind] = append(spawned[kind], p)
		}
	}
	return spawned
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.size.W, g.size.H)
}
