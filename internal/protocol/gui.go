package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/resources"
)

// GUIVerb identifies a parsed inbound observer command.
type GUIVerb int

const (
	GUIUnknown GUIVerb = iota
	GUIMsz
	GUIBct
	GUIMct
	GUITna
	GUIPpo
	GUIPlv
	GUIPin
	GUISgt
	GUISst
)

// GUICommand is one parsed inbound observer line.
type GUICommand struct {
	Verb GUIVerb
	X, Y int
	Id   ids.Id
	Freq int
}

// headingWire maps a Heading to its 1..4 wire value: N=1 E=2 S=3 W=4.
func headingWire(h geometry.Heading) int {
	switch h {
	case geometry.North:
		return 1
	case geometry.East:
		return 2
	case geometry.South:
		return 3
	case geometry.West:
		return 4
	default:
		return 0
	}
}

func formatId(id ids.Id) string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// parseId strips an optional leading '#' and parses the remainder as a
// decimal Id.
func parseId(tok string) (ids.Id, bool) {
	tok = strings.TrimPrefix(tok, "#")
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return ids.Id(n), true
}

// ParseGUILine parses one inbound observer line. A known verb with bad
// arguments reports ok=false with Verb still set (caller replies `sbp`); an
// unrecognized verb returns Verb: GUIUnknown (caller replies `suc`).
func ParseGUILine(line string) (GUICommand, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return GUICommand{Verb: GUIUnknown}, false
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "msz":
		if len(args) != 0 {
			return GUICommand{Verb: GUIMsz}, false
		}
		return GUICommand{Verb: GUIMsz}, true
	case "bct":
		if len(args) != 2 {
			return GUICommand{Verb: GUIBct}, false
		}
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return GUICommand{Verb: GUIBct}, false
		}
		return GUICommand{Verb: GUIBct, X: x, Y: y}, true
	case "mct":
		if len(args) != 0 {
			return GUICommand{Verb: GUIMct}, false
		}
		return GUICommand{Verb: GUIMct}, true
	case "tna":
		if len(args) != 0 {
			return GUICommand{Verb: GUITna}, false
		}
		return GUICommand{Verb: GUITna}, true
	case "ppo":
		id, ok := parseSingleId(args)
		if !ok {
			return GUICommand{Verb: GUIPpo}, false
		}
		return GUICommand{Verb: GUIPpo, Id: id}, true
	case "plv":
		id, ok := parseSingleId(args)
		if !ok {
			return GUICommand{Verb: GUIPlv}, false
		}
		return GUICommand{Verb: GUIPlv, Id: id}, true
	case "pin":
		id, ok := parseSingleId(args)
		if !ok {
			return GUICommand{Verb: GUIPin}, false
		}
		return GUICommand{Verb: GUIPin, Id: id}, true
	case "sgt":
		if len(args) != 0 {
			return GUICommand{Verb: GUISgt}, false
		}
		return GUICommand{Verb: GUISgt}, true
	case "sst":
		if len(args) != 1 {
			return GUICommand{Verb: GUISst}, false
		}
		f, err := strconv.Atoi(args[0])
		if err != nil {
			return GUICommand{Verb: GUISst}, false
		}
		return GUICommand{Verb: GUISst, Freq: f}, true
	default:
		return GUICommand{Verb: GUIUnknown}, false
	}
}

func parseSingleId(args []string) (ids.Id, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return parseId(args[0])
}

// Suc is the unknown-command reply.
func Suc() string { return "suc\n" }

// Sbp is the bad-parameter reply for a known verb.
func Sbp() string { return "sbp\n" }

func bagTokens(bag resources.Bag) string {
	parts := make([]string, resources.NumKinds)
	for i, k := range resources.WireOrder {
		parts[i] = strconv.Itoa(bag[k])
	}
	return strings.Join(parts, " ")
}

// Msz formats the map-size push.
func Msz(w, h int) string { return fmt.Sprintf("msz %d %d\n", w, h) }

// Bct formats a single cell's resource counts.
func Bct(x, y int, bag resources.Bag) string {
	return fmt.Sprintf("bct %d %d %s\n", x, y, bagTokens(bag))
}

// Tna formats one team-name push.
func Tna(name string) string { return fmt.Sprintf("tna %s\n", name) }

// Pnw announces a newly connected player.
func Pnw(id ids.Id, x, y int, heading geometry.Heading, level int, teamName string) string {
	return fmt.Sprintf("pnw %s %d %d %d %d %s\n", formatId(id), x, y, headingWire(heading), level, teamName)
}

// Ppo formats a position/heading push.
func Ppo(id ids.Id, x, y int, heading geometry.Heading) string {
	return fmt.Sprintf("ppo %s %d %d %d\n", formatId(id), x, y, headingWire(heading))
}

// Plv formats an elevation-level push.
func Plv(id ids.Id, level int) string {
	return fmt.Sprintf("plv %s %d\n", formatId(id), level)
}

// Pin formats a player-inventory push.
func Pin(id ids.Id, x, y int, bag resources.Bag) string {
	return fmt.Sprintf("pin %s %d %d %s\n", formatId(id), x, y, bagTokens(bag))
}

// Pex announces an ejection by id.
func Pex(id ids.Id) string { return fmt.Sprintf("pex %s\n", formatId(id)) }

// Pbc announces a broadcast by id.
func Pbc(id ids.Id, text string) string {
	return fmt.Sprintf("pbc %s %s\n", formatId(id), text)
}

// Pic announces an incantation start at (x,y) targeting level with the
// given participant ids.
func Pic(x, y, level int, participants []ids.Id) string {
	tokens := make([]string, len(participants))
	for i, id := range participants {
		tokens[i] = formatId(id)
	}
	return fmt.Sprintf("pic %d %d %d %s\n", x, y, level, strings.Join(tokens, " "))
}

// Pie announces incantation resolution at (x,y); success is 1 or 0.
func Pie(x, y int, success bool) string {
	r := 0
	if success {
		r = 1
	}
	return fmt.Sprintf("pie %d %d %d\n", x, y, r)
}

// Pfk announces an egg laid by id (Fork).
func Pfk(id ids.Id) string { return fmt.Sprintf("pfk %s\n", formatId(id)) }

// Pdr announces a resource drop (Set) by id, k is the resource wire index.
func Pdr(id ids.Id, kind resources.Kind) string {
	return fmt.Sprintf("pdr %s %d\n", formatId(id), wireIndex(kind))
}

// Pgt announces a resource pickup (Take) by id.
func Pgt(id ids.Id, kind resources.Kind) string {
	return fmt.Sprintf("pgt %s %d\n", formatId(id), wireIndex(kind))
}

func wireIndex(kind resources.Kind) int {
	for i, k := range resources.WireOrder {
		if k == kind {
			return i
		}
	}
	return -1
}

// Pdi announces a player's death/disconnect by id.
func Pdi(id ids.Id) string { return fmt.Sprintf("pdi %s\n", formatId(id)) }

// Enw announces a new egg: eggId laid by playerId (0 for server-seeded
// eggs) at (x,y).
func Enw(eggId, playerId ids.Id, x, y int) string {
	return fmt.Sprintf("enw %s %s %d %d\n", formatId(eggId), formatId(playerId), x, y)
}

// Ebo announces an egg hatching (consumed by a login).
func Ebo(eggId ids.Id) string { return fmt.Sprintf("ebo %s\n", formatId(eggId)) }

// Edi announces an egg's death (broken by Eject).
func Edi(eggId ids.Id) string { return fmt.Sprintf("edi %s\n", formatId(eggId)) }

// Sgt formats the current tick-frequency reply.
func Sgt(freq int) string { return fmt.Sprintf("sgt %d\n", freq) }

// Sst formats the tick-frequency-set acknowledgement.
func Sst(freq int) string { return fmt.Sprintf("sst %d\n", freq) }
