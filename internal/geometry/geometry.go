// Package geometry implements toroidal grid arithmetic: positions, headings,
// and the compass-sector calculation used by broadcast and ejection.
package geometry

import "math"

// Heading is one of the four cardinal directions a player faces.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Right rotates a heading 90 degrees clockwise: North -> East -> South -> West -> North.
func (h Heading) Right() Heading {
	return (h + 1) % 4
}

// Left rotates a heading 90 degrees counter-clockwise, the inverse of Right.
func (h Heading) Left() Heading {
	return (h + 3) % 4
}

// Unit returns the (dx, dy) step one Forward move takes in this heading.
// North decreases y, South increases y, East increases x, West decreases x.
func (h Heading) Unit() (dx, dy int) {
	switch h {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Size is the torus's dimensions.
type Size struct {
	W, H int
}

// Position is an unsigned cell coordinate on a torus of the given Size.
type Position struct {
	X, Y int
}

// Wrap reduces a possibly out-of-range or negative coordinate into [0,size).
// Uses Euclidean remainder so negative offsets wrap to the correct side.
func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// Normalize wraps p's coordinates into the torus defined by size.
func (p Position) Normalize(size Size) Position {
	return Position{X: wrap(p.X, size.W), Y: wrap(p.Y, size.H)}
}

// Add applies a signed offset to p and wraps the result onto the torus.
func (p Position) Add(dx, dy int, size Size) Position {
	return Position{X: wrap(p.X+dx, size.W), Y: wrap(p.Y+dy, size.H)}
}

// Step moves p one cell in heading h, wrapping on the torus.
func (p Position) Step(h Heading, size Size) Position {
	dx, dy := h.Unit()
	return p.Add(dx, dy, size)
}

// shortestAxis reduces a single-axis displacement to its shortest signed form
// on a torus side of length side: residues above half the side wrap negative,
// exactly half is kept positive (spec tie-break).
func shortestAxis(from, to, side int) int {
	d := wrap(to-from, side)
	if d*2 > side {
		d -= side
	}
	return d
}

// ShortestDisplacement returns the toroidally-shortest (dx, dy) from `from`
// to `to` on a torus of the given size.
func ShortestDisplacement(from, to Position, size Size) (dx, dy int) {
	dx = shortestAxis(from.X, to.X, size.W)
	dy = shortestAxis(from.Y, to.Y, size.H)
	return dx, dy
}

// Sector computes the 1-of-8 compass sector a receiver at `receiver` (facing
// `facing`) perceives an emitter at `emitter` to be in, on a torus of `size`.
// Returns 0 when emitter and receiver occupy the same cell.
func Sector(receiver, emitter Position, facing Heading, size Size) int {
	if receiver == emitter {
		return 0
	}
	dx, dy := ShortestDisplacement(receiver, emitter, size)
	theta := math.Atan2(float64(dy), float64(dx))
	if theta < 0 {
		theta += 2 * math.Pi
	}
	q := int(math.Round(theta/(math.Pi/4))) % 8

	var rotate int
	switch facing {
	case East:
		rotate = 0
	case North:
		rotate = 6
	case South:
		rotate = 2
	case West:
		rotate = 4
	}
	sector := (q+rotate)%8 + 1
	return sector
}
