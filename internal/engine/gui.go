package engine

import (
	"time"

	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/protocol"
)

// handleGUIInbound resolves one observer command immediately — unlike AI
// commands, observer queries never go through the scheduler.
func (e *Engine) handleGUIInbound(sessionId ids.Id, cmd protocol.GUICommand, ok bool) {
	sess, present := e.observers[sessionId]
	if !present {
		return
	}
	if !ok {
		if cmd.Verb == protocol.GUIUnknown {
			sess.SendBlocking(protocol.Suc())
		} else {
			sess.SendBlocking(protocol.Sbp())
		}
		return
	}

	switch cmd.Verb {
	case protocol.GUIMsz:
		sess.SendBlocking(protocol.Msz(e.size.W, e.size.H))

	case protocol.GUIBct:
		if cmd.X < 0 || cmd.X >= e.size.W || cmd.Y < 0 || cmd.Y >= e.size.H {
			sess.SendBlocking(protocol.Sbp())
			return
		}
		pos := geometry.Position{X: cmd.X, Y: cmd.Y}
		sess.SendBlocking(protocol.Bct(pos.X, pos.Y, e.grid.At(pos).Resources))

	case protocol.GUIMct:
		for y := 0; y < e.size.H; y++ {
			for x := 0; x < e.size.W; x++ {
				pos := geometry.Position{X: x, Y: y}
				sess.SendBlocking(protocol.Bct(x, y, e.grid.At(pos).Resources))
			}
		}

	case protocol.GUITna:
		for _, t := range e.teams.All() {
			sess.SendBlocking(protocol.Tna(t.Name))
		}

	case protocol.GUIPpo:
		if c, found := e.ai[cmd.Id]; found {
			p := c.player
			sess.SendBlocking(protocol.Ppo(p.Id, p.Position.X, p.Position.Y, p.Heading))
		}

	case protocol.GUIPlv:
		if c, found := e.ai[cmd.Id]; found {
			sess.SendBlocking(protocol.Plv(c.player.Id, c.player.Elevation))
		}

	case protocol.GUIPin:
		if c, found := e.ai[cmd.Id]; found {
			p := c.player
			sess.SendBlocking(protocol.Pin(p.Id, p.Position.X, p.Position.Y, p.Inventory))
		}

	case protocol.GUISgt:
		sess.SendBlocking(protocol.Sgt(int(e.frequency)))

	case protocol.GUISst:
		if cmd.Freq > 0 {
			e.frequency = uint16(cmd.Freq)
			if e.ticker != nil {
				e.ticker.Reset(time.Second / time.Duration(e.frequency))
			}
		}
		sess.SendBlocking(protocol.Sst(int(e.frequency)))
	}
}
