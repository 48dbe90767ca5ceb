// Package resources implements the closed seven-kind resource bag shared by
// cells, player inventories, and world totals.
//
// Replaces a map[Kind]int with a fixed-size array — inline in Cell and
// Player, zero heap allocation per bag.
package resources

// Kind identifies one of the seven resource types.
type Kind int

const (
	Food Kind = iota
	Linemate
	Deraumere
	Sibur
	Mendiane
	Phiras
	Thystame

	NumKinds = 7
)

// WireOrder is the canonical ordering used across the AI and GUI wire
// dialects: food linemate deraumere sibur mendiane phiras thystame.
var WireOrder = [NumKinds]Kind{Food, Linemate, Deraumere, Sibur, Mendiane, Phiras, Thystame}

// Name returns the lowercase wire name for a kind.
func (k Kind) Name() string {
	switch k {
	case Food:
		return "food"
	case Linemate:
		return "linemate"
	case Deraumere:
		return "deraumere"
	case Sibur:
		return "sibur"
	case Mendiane:
		return "mendiane"
	case Phiras:
		return "phiras"
	case Thystame:
		return "thystame"
	default:
		return "unknown"
	}
}

// ParseKind resolves a lowercase wire name to its Kind. ok is false for any
// name outside the closed set.
func ParseKind(name string) (k Kind, ok bool) {
	for _, c := range WireOrder {
		if c.Name() == name {
			return c, true
		}
	}
	return 0, false
}

// Bag is a dense counter array over the seven resource kinds.
type Bag [NumKinds]int

// Add increments the count of kind by n (n may be negative).
func (b *Bag) Add(kind Kind, n int) {
	b[kind] += n
}

// TrySubtract removes n units of kind if at least n are present, returning
// whether the subtraction succeeded. The bag is unchanged on failure.
func (b *Bag) TrySubtract(kind Kind, n int) bool {
	if b[kind] < n {
		return false
	}
	b[kind] -= n
	return true
}

// HasAtLeast reports whether the bag holds at least n units of kind.
func (b Bag) HasAtLeast(kind Kind, n int) bool {
	return b[kind] >= n
}

// Covers reports whether b holds at least as much of every kind as need.
func (b Bag) Covers(need Bag) bool {
	for k := 0; k < NumKinds; k++ {
		if b[k] < need[k] {
			return false
		}
	}
	return true
}

// SubtractAll removes need from b. Caller must have verified Covers(need) —
// SubtractAll does not check and will go negative otherwise.
func (b *Bag) SubtractAll(need Bag) {
	for k := 0; k < NumKinds; k++ {
		b[k] -= need[k]
	}
}

// Total returns the sum of all counts in the bag.
func (b Bag) Total() int {
	sum := 0
	for _, v := range b {
		sum += v
	}
	return sum
}
