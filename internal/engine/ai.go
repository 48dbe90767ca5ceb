package engine

import (
	"strconv"

	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/resources"
	"github.com/talgya/citadel/internal/scheduler"
)

// aiEvent is the scheduler payload for a normal parsed AI command.
type aiEvent struct {
	cmd protocol.AICommand
}

// handleAIInbound schedules a freshly-parsed AI line. A VerbUnknown command
// (malformed line or arity mismatch) is scheduled at zero cost and resolves
// to a Ko, per the error handling policy.
func (e *Engine) handleAIInbound(sessionId ids.Id, cmd protocol.AICommand) {
	c, ok := e.ai[sessionId]
	if !ok {
		return
	}
	e.sched.Schedule(c.player.Id, cmd.Verb.Cost(), aiEvent{cmd: cmd})
}

// applyAIEvent applies one expired AI command to the world. The actor must
// still exist — a dead or disconnected actor's event is silently dropped.
func (e *Engine) applyAIEvent(entry *scheduler.Entry, payload aiEvent) {
	c, ok := e.ai[entry.PlayerId]
	if !ok {
		return
	}
	p := c.player

	switch payload.cmd.Verb {
	case protocol.VerbForward:
		p.Advance(e.size)
		c.sess.SendBlocking(protocol.Ok())
		e.fanout(protocol.Ppo(p.Id, p.Position.X, p.Position.Y, p.Heading))

	case protocol.VerbRight:
		p.TurnRight()
		c.sess.SendBlocking(protocol.Ok())
		e.fanout(protocol.Ppo(p.Id, p.Position.X, p.Position.Y, p.Heading))

	case protocol.VerbLeft:
		p.TurnLeft()
		c.sess.SendBlocking(protocol.Ok())
		e.fanout(protocol.Ppo(p.Id, p.Position.X, p.Position.Y, p.Heading))

	case protocol.VerbLook:
		c.sess.SendBlocking(protocol.Look(e.lookCells(p)))

	case protocol.VerbInventory:
		c.sess.SendBlocking(protocol.Inventory(p.Inventory))

	case protocol.VerbBroadcast:
		c.sess.SendBlocking(protocol.Ok())
		e.broadcast(p, payload.cmd.Text)

	case protocol.VerbConnectNbr:
		remaining := e.eggs.CountForTeam(p.Team)
		c.sess.SendBlocking(strconv.Itoa(remaining) + "\n")

	case protocol.VerbFork:
		egg := e.eggs.Spawn(e.ids.Eggs.Next(), p.Team, p.Position)
		c.sess.SendBlocking(protocol.Ok())
		e.fanout(protocol.Enw(egg.Id, p.Id, p.Position.X, p.Position.Y))
		e.fanout(protocol.Pfk(p.Id))

	case protocol.VerbEject:
		e.applyEject(c, p)

	case protocol.VerbTake:
		e.applyTake(c, p, payload.cmd.Resource)

	case protocol.VerbSet:
		e.applySet(c, p, payload.cmd.Resource)

	case protocol.VerbIncantation:
		e.beginIncantation(p)

	case protocol.VerbUnknown:
		c.sess.SendBlocking(protocol.Ko())
	}
}

func (e *Engine) applyTake(c *aiClient, p *player.Player, kind resources.Kind) {
	if !e.grid.TrySubtractResource(p.Position, kind, 1) {
		c.sess.SendBlocking(protocol.Ko())
		return
	}
	p.Inventory.Add(kind, 1)
	c.sess.SendBlocking(protocol.Ok())
	e.fanout(protocol.Pgt(p.Id, kind))
	e.fanout(protocol.Pin(p.Id, p.Position.X, p.Position.Y, p.Inventory))
	e.fanout(protocol.Bct(p.Position.X, p.Position.Y, e.grid.At(p.Position).Resources))
}

func (e *Engine) applySet(c *aiClient, p *player.Player, kind resources.Kind) {
	if !p.Inventory.TrySubtract(kind, 1) {
		c.sess.SendBlocking(protocol.Ko())
		return
	}
	e.grid.AddResource(p.Position, kind, 1)
	c.sess.SendBlocking(protocol.Ok())
	e.fanout(protocol.Pdr(p.Id, kind))
	e.fanout(protocol.Pin(p.Id, p.Position.X, p.Position.Y, p.Inventory))
	e.fanout(protocol.Bct(p.Position.X, p.Position.Y, e.grid.At(p.Position).Resources))
}

func (e *Engine) applyEject(c *aiClient, p *player.Player) {
	pushDx, pushDy := p.Heading.Unit()
	var pushed []*player.Player
	for _, other := range e.ai {
		if other.player.Id == p.Id {
			continue
		}
		if other.player.Position == p.Position {
			pushed = append(pushed, other.player)
		}
	}
	if len(pushed) == 0 {
		c.sess.SendBlocking(protocol.Ko())
		return
	}
	c.sess.SendBlocking(protocol.Ok())
	for _, target := range pushed {
		oldPos := target.Position
		target.Position = target.Position.Add(pushDx, pushDy, e.size)
		sourcePos := oldPos.Add(-pushDx, -pushDy, e.size)
		sector := geometry.Sector(oldPos, sourcePos, target.Heading, e.size)
		if tc, ok := e.ai[target.Id]; ok {
			tc.sess.SendBlocking(protocol.Eject(sector))
		}
		e.fanout(protocol.Pex(target.Id))
		e.fanout(protocol.Ppo(target.Id, target.Position.X, target.Position.Y, target.Heading))
	}
	for _, broken := range e.eggs.BreakAt(p.Position) {
		e.fanout(protocol.Edi(broken.Id))
	}
}

func (e *Engine) broadcast(emitter *player.Player, text string) {
	for _, other := range e.ai {
		if other.player.Id == emitter.Id {
			continue
		}
		sector := geometry.Sector(other.player.Position, emitter.Position, other.player.Heading, e.size)
		other.sess.SendBlocking(protocol.Message(sector, text))
	}
	e.fanout(protocol.Pbc(emitter.Id, text))
}
