package engine

import (
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/resources"
)

// incantationState tracks one in-progress group ritual from its begin tick
// to its scheduled resolution.
type incantationState struct {
	initiator    ids.Id
	participants []ids.Id
	level        int
	position     geometry.Position
}

// incantationEndEvent is the initiator's force-scheduled resolution entry.
type incantationEndEvent struct {
	state *incantationState
}

// phantomEvent occupies a non-initiator participant's in-flight slot for the
// ritual's duration, so their own commands still serialize correctly around
// it once it resolves.
type phantomEvent struct {
	state *incantationState
}

// participantsAt returns every Idle player at level standing on pos.
func (e *Engine) participantsAt(pos geometry.Position, level int) []*player.Player {
	var found []*player.Player
	for _, c := range e.ai {
		p := c.player
		if p.Elevation != level || p.State != player.Idle {
			continue
		}
		if p.Position != pos {
			continue
		}
		found = append(found, p)
	}
	return found
}

// beginIncantation attempts to start a ritual for the initiator. It checks
// the co-located Idle same-level player count and the tile's resources
// against the level's requirement; on success it marks every participant
// Incantating, delays the pending actions of every participant other than
// the initiator by the ritual's duration, and schedules the resolution.
func (e *Engine) beginIncantation(p *player.Player) {
	actor := e.ai[p.Id]

	req, ok := player.Requirements[p.Elevation]
	if !ok {
		actor.sess.SendBlocking(protocol.Ko())
		return
	}

	participants := e.participantsAt(p.Position, p.Elevation)
	if len(participants) < req.Players {
		actor.sess.SendBlocking(protocol.Ko())
		return
	}
	if !e.grid.At(p.Position).Resources.Covers(req.Resources) {
		actor.sess.SendBlocking(protocol.Ko())
		return
	}

	participantIds := make([]ids.Id, len(participants))
	for i, pp := range participants {
		participantIds[i] = pp.Id
	}
	state := &incantationState{
		initiator:    p.Id,
		participants: participantIds,
		level:        p.Elevation,
		position:     p.Position,
	}
	e.incantations[p.Id] = state

	endTick := e.sched.CurrentTick() + uint64(player.IncantationDuration)
	for _, pp := range participants {
		pp.State = player.Incantating
		if pp.Id == p.Id {
			e.sched.ForceSchedule(pp.Id, endTick, incantationEndEvent{state: state})
			continue
		}
		e.sched.ShiftClientEvents(pp.Id, int64(player.IncantationDuration))
		e.sched.ForceSchedule(pp.Id, endTick, phantomEvent{state: state})
	}

	for _, pp := range participants {
		if c, ok := e.ai[pp.Id]; ok {
			c.sess.SendBlocking(protocol.IncantationUnderway())
		}
	}
	e.fanout(protocol.Pic(p.Position.X, p.Position.Y, p.Elevation, participantIds))
}

// resolveIncantation fires when the initiator's incantationEndEvent expires.
// It re-validates the ritual — every participant must still be Incantating,
// co-located, and at the original level, and the tile must still cover the
// requirement — before consuming resources and elevating survivors.
func (e *Engine) resolveIncantation(state *incantationState) {
	delete(e.incantations, state.initiator)

	req := player.Requirements[state.level]
	var survivors []*player.Player
	for _, id := range state.participants {
		c, ok := e.ai[id]
		if !ok {
			continue
		}
		p := c.player
		if p.State != player.Incantating || p.Position != state.position || p.Elevation != state.level {
			continue
		}
		survivors = append(survivors, p)
	}

	success := len(survivors) == len(state.participants) && e.grid.At(state.position).Resources.Covers(req.Resources)
	if success {
		for _, k := range resources.WireOrder {
			if n := req.Resources[k]; n > 0 {
				e.grid.TrySubtractResource(state.position, k, n)
			}
		}
		e.fanout(protocol.Bct(state.position.X, state.position.Y, e.grid.At(state.position).Resources))
	}

	for _, id := range state.participants {
		c, ok := e.ai[id]
		if !ok {
			continue
		}
		c.player.State = player.Idle
	}
	e.fanout(protocol.Pie(state.position.X, state.position.Y, success))
	for _, p := range survivors {
		if !success {
			continue
		}
		p.Elevate()
		c := e.ai[p.Id]
		c.sess.SendBlocking(protocol.IncantationSuccess(p.Elevation))
		e.fanout(protocol.Plv(p.Id, p.Elevation))
	}
}
