// Package scheduler implements the single priority queue of pending timed
// actions: per-client in-flight caps, force-scheduling, tick advancement,
// time-shifting, and cancellation.
package scheduler

import (
	"container/heap"
	"log/slog"

	"github.com/talgya/citadel/internal/ids"
)

// MaxInFlight is the per-client ceiling on pending scheduled events.
const MaxInFlight = 10

// RejectedEventId is the reserved sentinel returned when Schedule is
// rejected because the client is already at MaxInFlight.
const RejectedEventId = ids.Id(0)

// Entry is one pending scheduled action.
type Entry struct {
	EventId        ids.Id
	PlayerId       ids.Id
	ExpirationTick uint64
	Data           any

	index int // heap bookkeeping
}

// entryHeap orders by ascending ExpirationTick, ties broken by ascending
// EventId (FIFO — the order events were scheduled).
type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].ExpirationTick != h[j].ExpirationTick {
		return h[i].ExpirationTick < h[j].ExpirationTick
	}
	return h[i].EventId < h[j].EventId
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*Entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// clientState tracks the bookkeeping Schedule needs per player: the
// expiration of their most recently scheduled event (for end-to-end
// serialization) and their currently in-flight entries (for the cap).
type clientState struct {
	lastTick uint64
	hasLast  bool
	pending  map[ids.Id]*Entry
}

// Scheduler owns the single queue of pending timed actions.
type Scheduler struct {
	queue       entryHeap
	byEventId   map[ids.Id]*Entry
	clients     map[ids.Id]*clientState
	currentTick uint64
	events      *ids.Generator
}

// New builds an empty Scheduler. events is the shared event-id generator —
// the scheduler is the sole consumer of event ids within a run.
func New(events *ids.Generator) *Scheduler {
	return &Scheduler{
		byEventId: make(map[ids.Id]*Entry),
		clients:   make(map[ids.Id]*clientState),
		events:    events,
	}
}

// CurrentTick returns the scheduler's current tick counter.
func (s *Scheduler) CurrentTick() uint64 {
	return s.currentTick
}

func (s *Scheduler) clientFor(playerId ids.Id) *clientState {
	c, ok := s.clients[playerId]
	if !ok {
		c = &clientState{pending: make(map[ids.Id]*Entry)}
		s.clients[playerId] = c
	}
	return c
}

// Schedule computes expiration = last already-scheduled expiration for this
// player (or CurrentTick if none) plus cost, and enqueues data there. This
// serializes one client's commands end-to-end regardless of incoming rate.
// Returns RejectedEventId if the client is already at MaxInFlight — the
// caller treats this as a silent drop.
func (s *Scheduler) Schedule(playerId ids.Id, cost uint64, data any) ids.Id {
	c := s.clientFor(playerId)
	if len(c.pending) >= MaxInFlight {
		slog.Warn("scheduler in-flight cap exceeded", "player_id", playerId)
		return RejectedEventId
	}
	last := s.currentTick
	if c.hasLast && c.lastTick > last {
		last = c.lastTick
	}
	expiration := last + cost
	return s.enqueue(playerId, expiration, data, c)
}

// ForceSchedule bypasses both the in-flight cap and per-client
// serialization. Used only for the IncantationEnd event.
func (s *Scheduler) ForceSchedule(playerId ids.Id, expirationTick uint64, data any) ids.Id {
	c := s.clientFor(playerId)
	return s.enqueue(playerId, expirationTick, data, c)
}

func (s *Scheduler) enqueue(playerId ids.Id, expiration uint64, data any, c *clientState) ids.Id {
	id := s.events.Next()
	e := &Entry{EventId: id, PlayerId: playerId, ExpirationTick: expiration, Data: data}
	heap.Push(&s.queue, e)
	s.byEventId[id] = e
	c.pending[id] = e
	c.lastTick = expiration
	c.hasLast = true
	return id
}

// Tick advances current_tick by one and pops every entry whose expiration
// is now due, in sorted (tick, event_id) order. The caller applies them.
func (s *Scheduler) Tick() []*Entry {
	s.currentTick++
	var due []*Entry
	for s.queue.Len() > 0 && s.queue[0].ExpirationTick <= s.currentTick {
		e := heap.Pop(&s.queue).(*Entry)
		delete(s.byEventId, e.EventId)
		if c, ok := s.clients[e.PlayerId]; ok {
			delete(c.pending, e.EventId)
		}
		due = append(due, e)
	}
	return due
}

// ShiftClientEvents adds signed delta ticks to every pending event
// belonging to playerId, clamping the result to CurrentTick from below.
func (s *Scheduler) ShiftClientEvents(playerId ids.Id, delta int64) {
	c, ok := s.clients[playerId]
	if !ok {
		return
	}
	for _, e := range c.pending {
		shifted := int64(e.ExpirationTick) + delta
		if shifted < int64(s.currentTick) {
			shifted = int64(s.currentTick)
		}
		e.ExpirationTick = uint64(shifted)
		heap.Fix(&s.queue, e.index)
	}
	if c.hasLast {
		shifted := int64(c.lastTick) + delta
		if shifted < int64(s.currentTick) {
			shifted = int64(s.currentTick)
		}
		c.lastTick = uint64(shifted)
	}
}

// Cancel removes the event with the given id. Returns whether it was
// present.
func (s *Scheduler) Cancel(eventId ids.Id) bool {
	e, ok := s.byEventId[eventId]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, e.index)
	delete(s.byEventId, eventId)
	if c, ok := s.clients[e.PlayerId]; ok {
		delete(c.pending, eventId)
	}
	return true
}

// DropClient discards every pending entry for playerId without applying
// them — used when a connection disconnects, so its events never fire and
// its in-flight slots are released.
func (s *Scheduler) DropClient(playerId ids.Id) {
	c, ok := s.clients[playerId]
	if !ok {
		return
	}
	for id, e := range c.pending {
		heap.Remove(&s.queue, e.index)
		delete(s.byEventId, id)
	}
	delete(s.clients, playerId)
}

// PendingCount returns how many events playerId currently has in flight.
func (s *Scheduler) PendingCount(playerId ids.Id) int {
	c, ok := s.clients[playerId]
	if !ok {
		return 0
	}
	return len(c.pending)
}
