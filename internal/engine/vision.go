package engine

import (
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
)

// lookCells builds the Look reply for p: its own cell first, then one row
// per elevation level ahead of it, each row running left to right across
// the row's width, widening by two cells (one per side) per level.
func (e *Engine) lookCells(p *player.Player) []protocol.LookCell {
	aheadDx, aheadDy := p.Heading.Unit()
	rightDx, rightDy := p.Heading.Right().Unit()

	cells := []protocol.LookCell{e.cellAt(p.Position)}
	for row := 1; row <= p.Elevation; row++ {
		center := p.Position.Add(aheadDx*row, aheadDy*row, e.size)
		for offset := -row; offset <= row; offset++ {
			pos := center.Add(rightDx*offset, rightDy*offset, e.size)
			cells = append(cells, e.cellAt(pos))
		}
	}
	return cells
}

func (e *Engine) cellAt(pos geometry.Position) protocol.LookCell {
	count := 0
	for _, c := range e.ai {
		if c.player.Position == pos {
			count++
		}
	}
	return protocol.LookCell{Players: count, Bag: e.grid.At(pos).Resources}
}
