// Package engine implements the core loop: a single task that owns the
// grid, the scheduler, and every client, selecting on inbound events, the
// tick interval, and new connections, in that priority order.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/citadel/internal/config"
	"github.com/talgya/citadel/internal/entropy"
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/scheduler"
	"github.com/talgya/citadel/internal/session"
	"github.com/talgya/citadel/internal/team"
	"github.com/talgya/citadel/internal/telemetry"
	"github.com/talgya/citadel/internal/world"
)

// aiClient pairs a connected AI session with its live Player.
type aiClient struct {
	sess   *session.Session
	player *player.Player
}

// Engine owns every piece of mutable world state. Nothing outside Run (and
// the functions it calls) ever mutates the grid, scheduler, or client maps.
type Engine struct {
	size      geometry.Size
	teams     *team.Registry
	grid      *world.Grid
	eggs      *world.EggRegistry
	sched     *scheduler.Scheduler
	ids       *ids.Registry
	src       *entropy.Source
	listener  *session.Listener
	telemetry *telemetry.Sink

	pending   map[ids.Id]*session.Session
	ai        map[ids.Id]*aiClient
	observers map[ids.Id]*session.Session

	frequency        uint16
	ticker           *time.Ticker
	lastPinBroadcast time.Time
	incantations     map[ids.Id]*incantationState
}

// New builds an Engine from a validated configuration and a listener that
// is already accepting connections. idReg is shared with the listener:
// session ids — reused directly as player ids — come from its client
// counter, while this Engine draws event and egg ids from the registry's
// separate counters, so equal values may appear across kinds.
func New(cfg config.Config, listener *session.Listener, telemetrySink *telemetry.Sink, idReg *ids.Registry) *Engine {
	size := geometry.Size{W: int(cfg.Width), H: int(cfg.Height)}
	e := &Engine{
		size:         size,
		teams:        team.NewRegistry(cfg.Teams),
		grid:         world.NewGrid(size),
		eggs:         world.NewEggRegistry(),
		sched:        scheduler.New(idReg.Events),
		ids:          idReg,
		src:          entropy.NewSource(uint64(cfg.Seed)),
		listener:     listener,
		telemetry:    telemetrySink,
		pending:      make(map[ids.Id]*session.Session),
		ai:           make(map[ids.Id]*aiClient),
		observers:    make(map[ids.Id]*session.Session),
		frequency:    cfg.Frequency,
		incantations: make(map[ids.Id]*incantationState),
	}
	for _, skipped := range e.teams.Skipped() {
		slog.Warn("reserved team name ignored at boot", "name", skipped)
	}
	for _, t := range e.teams.All() {
		for i := uint64(0); i < cfg.ClientsPerTeam; i++ {
			pos := geometry.Position{X: e.src.IntN(size.W), Y: e.src.IntN(size.H)}
			e.eggs.Spawn(e.ids.Eggs.Next(), t.Id, pos)
		}
	}
	return e
}

// Run is the core loop. It blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	interval := time.Second / time.Duration(e.frequency)
	e.ticker = time.NewTicker(interval)
	defer e.ticker.Stop()

	slog.Info("core loop started", "width", e.size.W, "height", e.size.H, "frequency", e.frequency)

	for {
		// select picks at random among ready cases, so the priority order is
		// applied by polling the higher-priority sources first.
		select {
		case ev := <-e.listener.Inbound:
			e.handleInbound(ev)
			continue
		default:
		}
		select {
		case <-e.ticker.C:
			e.handleTick()
			continue
		default:
		}
		select {
		case ev := <-e.listener.Inbound:
			e.handleInbound(ev)
		case <-e.ticker.C:
			e.handleTick()
		case sess := <-e.listener.Accept:
			e.handleAccept(sess)
		case <-ctx.Done():
			slog.Info("core loop stopping", "tick", humanize.Comma(int64(e.sched.CurrentTick())))
			return
		}
	}
}

func (e *Engine) handleAccept(sess *session.Session) {
	e.pending[sess.Id] = sess
	slog.Info("connection accepted", "session_id", sess.Id)
}

func (e *Engine) handleInbound(ev session.Inbound) {
	switch ev.Kind {
	case session.InboundLogin:
		e.handleLogin(ev.SessionId, ev.TeamName)
	case session.InboundAI:
		e.handleAIInbound(ev.SessionId, ev.AI)
	case session.InboundGUI:
		e.handleGUIInbound(ev.SessionId, ev.GUI, ev.GUIOk)
	case session.InboundLineTooLong:
		e.replyToActor(ev.SessionId, protocol.Ko())
	case session.InboundDisconnect:
		e.handleDisconnect(ev.SessionId)
	}
}

// replyToActor sends a line to whichever role currently owns sessionId.
func (e *Engine) replyToActor(sessionId ids.Id, line string) {
	if sess, ok := e.pending[sessionId]; ok {
		sess.SendBlocking(line)
		return
	}
	if c, ok := e.ai[sessionId]; ok {
		c.sess.SendBlocking(line)
		return
	}
	if sess, ok := e.observers[sessionId]; ok {
		sess.SendBlocking(line)
	}
}

func (e *Engine) handleDisconnect(sessionId ids.Id) {
	if _, ok := e.pending[sessionId]; ok {
		delete(e.pending, sessionId)
		return
	}
	if c, ok := e.ai[sessionId]; ok {
		e.removePlayer(sessionId, c, true)
		return
	}
	if _, ok := e.observers[sessionId]; ok {
		delete(e.observers, sessionId)
	}
}

// removePlayer deletes an AI client's player, frees its scheduler state,
// and — if notifyObservers is set — emits the pdi disconnect notification.
func (e *Engine) removePlayer(sessionId ids.Id, c *aiClient, notifyObservers bool) {
	e.sched.DropClient(c.player.Id)
	delete(e.ai, sessionId)
	if notifyObservers {
		e.fanout(protocol.Pdi(c.player.Id))
	}
}
