package engine

import (
	"log/slog"

	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/session"
)

const graphicTeamName = "GRAPHIC"

// handleLogin resolves a Pending connection's first line as a team name,
// per the connection FSM (spec §4.5).
func (e *Engine) handleLogin(sessionId ids.Id, teamName string) {
	sess, ok := e.pending[sessionId]
	if !ok {
		return
	}

	if teamName == graphicTeamName {
		delete(e.pending, sessionId)
		e.observers[sessionId] = sess
		sess.SetRole(session.GUI)
		slog.Info("observer connected", "session_id", sessionId)
		return
	}

	t, ok := e.teams.Lookup(teamName)
	if !ok {
		sess.SendBlocking(protocol.Ko())
		return
	}

	egg, ok := e.eggs.Drop(t.Id, e.src)
	if !ok {
		sess.SendBlocking(protocol.Ko())
		return
	}

	delete(e.pending, sessionId)
	sess.SetRole(session.AI)

	heading := geometry.Heading(e.src.IntN(4))
	p := player.New(sessionId, t.Id, egg.Position, heading)
	e.ai[sessionId] = &aiClient{sess: sess, player: p}

	remaining := e.eggs.CountForTeam(t.Id)
	sess.SendBlocking(protocol.LoginAccept(remaining, e.size.W, e.size.H))

	e.fanout(protocol.Ebo(egg.Id))
	e.fanout(protocol.Pnw(p.Id, p.Position.X, p.Position.Y, p.Heading, p.Elevation, t.Name))
	slog.Info("player logged in", "session_id", sessionId, "team", t.Name, "position", p.Position)
	if e.telemetry != nil {
		if err := e.telemetry.RecordEvent(e.sched.CurrentTick(), "login", t.Name); err != nil {
			slog.Warn("telemetry: event write failed", "error", err)
		}
	}
}
