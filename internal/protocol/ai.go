// Package protocol implements wire encoding and decoding for both the AI
// and GUI dialects described by the external interface.
package protocol

import (
	"fmt"
	"strings"

	"github.com/talgya/citadel/internal/resources"
)

// AIVerb identifies a parsed AI command.
type AIVerb int

const (
	VerbUnknown AIVerb = iota
	VerbForward
	VerbRight
	VerbLeft
	VerbLook
	VerbInventory
	VerbBroadcast
	VerbConnectNbr
	VerbFork
	VerbEject
	VerbTake
	VerbSet
	VerbIncantation
)

// Cost returns the scheduling cost, in ticks, of a verb. Unknown verbs and
// ones needing resource arguments that failed to parse always cost 0 (a Ko
// is scheduled at zero cost, per the malformed-line error policy).
func (v AIVerb) Cost() uint64 {
	switch v {
	case VerbForward, VerbRight, VerbLeft, VerbLook, VerbBroadcast, VerbEject, VerbTake, VerbSet:
		return 7
	case VerbInventory:
		return 1
	case VerbFork:
		return 42
	case VerbConnectNbr, VerbIncantation, VerbUnknown:
		return 0
	default:
		return 0
	}
}

// AICommand is one parsed inbound AI line.
type AICommand struct {
	Verb     AIVerb
	Text     string        // Broadcast payload
	Resource resources.Kind // Take/Set argument
}

// ParseAILine parses a whitespace-separated AI command line. Unknown verbs
// or arity/argument mismatches return a VerbUnknown command — the caller
// schedules a Ko at cost 0 for it, per the error handling policy.
func ParseAILine(line string) AICommand {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return AICommand{Verb: VerbUnknown}
	}
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "Forward":
		return exact(args, AICommand{Verb: VerbForward})
	case "Right":
		return exact(args, AICommand{Verb: VerbRight})
	case "Left":
		return exact(args, AICommand{Verb: VerbLeft})
	case "Look":
		return exact(args, AICommand{Verb: VerbLook})
	case "Inventory":
		return exact(args, AICommand{Verb: VerbInventory})
	case "Connect_nbr":
		return exact(args, AICommand{Verb: VerbConnectNbr})
	case "Fork":
		return exact(args, AICommand{Verb: VerbFork})
	case "Eject":
		return exact(args, AICommand{Verb: VerbEject})
	case "Incantation":
		return exact(args, AICommand{Verb: VerbIncantation})
	case "Broadcast":
		// Free text: everything after the verb, rejoined with single spaces.
		if len(args) == 0 {
			return AICommand{Verb: VerbUnknown}
		}
		return AICommand{Verb: VerbBroadcast, Text: strings.Join(args, " ")}
	case "Take":
		if len(args) != 1 {
			return AICommand{Verb: VerbUnknown}
		}
		kind, ok := resources.ParseKind(args[0])
		if !ok {
			return AICommand{Verb: VerbUnknown}
		}
		return AICommand{Verb: VerbTake, Resource: kind}
	case "Set":
		if len(args) != 1 {
			return AICommand{Verb: VerbUnknown}
		}
		kind, ok := resources.ParseKind(args[0])
		if !ok {
			return AICommand{Verb: VerbUnknown}
		}
		return AICommand{Verb: VerbSet, Resource: kind}
	default:
		return AICommand{Verb: VerbUnknown}
	}
}

func exact(args []string, cmd AICommand) AICommand {
	if len(args) != 0 {
		return AICommand{Verb: VerbUnknown}
	}
	return cmd
}

// Welcome is the greeting line written immediately on accept.
func Welcome() string { return "WELCOME\n" }

// LoginAccept is the two-line reply to a successful team login.
func LoginAccept(remainingEggs int, w, h int) string {
	return fmt.Sprintf("%d\n%d %d\n", remainingEggs, w, h)
}

// Ok is the generic success reply.
func Ok() string { return "ok\n" }

// Ko is the generic failure reply.
func Ko() string { return "ko\n" }

// Dead is sent to a player on death.
func Dead() string { return "dead\n" }

// Message formats an inbound broadcast for the receiver.
func Message(sector int, text string) string {
	return fmt.Sprintf("message %d, %s\n", sector, text)
}

// inventoryOrder is the exact key order the AI inventory reply uses — not
// the canonical wire order, but the original layout's order.
var inventoryOrder = [resources.NumKinds]resources.Kind{
	resources.Deraumere, resources.Linemate, resources.Mendiane,
	resources.Phiras, resources.Sibur, resources.Thystame, resources.Food,
}

// Inventory formats the bracketed inventory listing.
func Inventory(bag resources.Bag) string {
	parts := make([]string, 0, resources.NumKinds)
	for _, k := range inventoryOrder {
		parts = append(parts, fmt.Sprintf("%s %d", k.Name(), bag[k]))
	}
	return fmt.Sprintf("[%s]\n", strings.Join(parts, ", "))
}

// LookCell is one cell's contents as reported by Look: how many players
// occupy it, and its resource bag.
type LookCell struct {
	Players int
	Bag     resources.Bag
}

// Look formats the Look reply: one bracketed, comma-separated list of
// per-cell space-separated tokens.
func Look(cells []LookCell) string {
	cellStrs := make([]string, len(cells))
	for i, c := range cells {
		var tokens []string
		for j := 0; j < c.Players; j++ {
			tokens = append(tokens, "player")
		}
		for _, k := range resources.WireOrder {
			for n := 0; n < c.Bag[k]; n++ {
				tokens = append(tokens, k.Name())
			}
		}
		cellStrs[i] = strings.Join(tokens, " ")
	}
	return fmt.Sprintf("[%s]\n", strings.Join(cellStrs, ","))
}

// Eject formats the eject notification sent to the pushed player.
func Eject(sector int) string {
	return fmt.Sprintf("eject %d\n", sector)
}

// IncantationUnderway is sent to every participant when a ritual begins.
func IncantationUnderway() string { return "Elevation underway\n" }

// IncantationSuccess is sent to every surviving participant on resolution.
func IncantationSuccess(level int) string {
	return fmt.Sprintf("Current level: %d\n", level)
}
