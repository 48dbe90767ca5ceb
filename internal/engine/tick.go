package engine

import (
	"log/slog"
	"time"

	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/scheduler"
)

// pinInterval is how often the core loop pushes a full inventory snapshot
// to observers, independent of the simulation's tick frequency.
const pinInterval = time.Second

// handleTick advances the simulation by one tick: resource refill, due
// scheduler entries, satiety decay, and the periodic observer pin sweep.
func (e *Engine) handleTick() {
	e.refill()

	for _, entry := range e.sched.Tick() {
		e.applyEntry(entry)
	}

	e.decaySatiety()

	if time.Since(e.lastPinBroadcast) >= pinInterval {
		e.broadcastPins()
		e.lastPinBroadcast = time.Now()
		e.recordStats()
	}
}

func (e *Engine) recordStats() {
	if e.telemetry == nil {
		return
	}
	if err := e.telemetry.RecordTickStats(e.sched.CurrentTick(), len(e.ai), len(e.eggs.All()), len(e.incantations)); err != nil {
		slog.Warn("telemetry: tick stats write failed", "error", err)
	}
}

func (e *Engine) refill() {
	spawned := e.grid.Refill(e.src)
	seen := make(map[[2]int]bool)
	for _, positions := range spawned {
		for _, pos := range positions {
			key := [2]int{pos.X, pos.Y}
			if seen[key] {
				continue
			}
			seen[key] = true
			e.fanout(protocol.Bct(pos.X, pos.Y, e.grid.At(pos).Resources))
		}
	}
}

func (e *Engine) applyEntry(entry *scheduler.Entry) {
	switch payload := entry.Data.(type) {
	case aiEvent:
		e.applyAIEvent(entry, payload)
	case incantationEndEvent:
		e.resolveIncantation(payload.state)
	case phantomEvent:
		// Placeholder only — the ritual's real resolution is driven by the
		// initiator's incantationEndEvent.
	}
}

func (e *Engine) decaySatiety() {
	for sessionId, c := range e.ai {
		if c.player.Tick() == player.DecayDied {
			c.sess.SendBlocking(protocol.Dead())
			if e.telemetry != nil {
				if err := e.telemetry.RecordEvent(e.sched.CurrentTick(), "death", "player starved"); err != nil {
					slog.Warn("telemetry: event write failed", "error", err)
				}
			}
			e.removePlayer(sessionId, c, true)
		}
	}
}

func (e *Engine) broadcastPins() {
	for _, c := range e.ai {
		p := c.player
		e.fanout(protocol.Pin(p.Id, p.Position.X, p.Position.Y, p.Inventory))
	}
}
