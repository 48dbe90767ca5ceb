package player

import "github.com/talgya/citadel/internal/resources"

// IncantationDuration is the fixed lockout length, in ticks, of a group
// ritual from start to resolution.
const IncantationDuration = 300

// Requirement describes what a given elevation level needs to begin an
// incantation: a minimum co-located player count and a resource bag the
// tile must cover.
type Requirement struct {
	Players   int
	Resources resources.Bag
}

// Requirements is indexed by the current (pre-ritual) elevation level,
// 1 through 7 — there is no requirement to leave level 8, it is terminal.
var Requirements = map[int]Requirement{
	1: {Players: 1, Resources: resources.Bag{resources.Linemate: 1}},
	2: {Players: 2, Resources: resources.Bag{resources.Linemate: 1, resources.Deraumere: 1, resources.Sibur: 1}},
	3: {Players: 2, Resources: resources.Bag{resources.Linemate: 2, resources.Sibur: 1, resources.Phiras: 2}},
	4: {Players: 4, Resources: resources.Bag{resources.Linemate: 1, resources.Deraumere: 1, resources.Sibur: 2, resources.Phiras: 1}},
	5: {Players: 4, Resources: resources.Bag{resources.Linemate: 1, resources.Deraumere: 2, resources.Sibur: 1, resources.Mendiane: 3}},
	6: {Players: 6, Resources: resources.Bag{resources.Linemate: 1, resources.Deraumere: 2, resources.Sibur: 3, resources.Phiras: 1}},
	7: {Players: 6, Resources: resources.Bag{resources.Linemate: 2, resources.Deraumere: 2, resources.Sibur: 2, resources.Mendiane: 2, resources.Phiras: 2, resources.Thystame: 1}},
}
