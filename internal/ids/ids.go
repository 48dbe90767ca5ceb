// Package ids generates monotonic, never-reused identifiers, one
// independent counter per kind (client, event, egg).
package ids

import "sync/atomic"

// Id is an unsigned 64-bit handle, monotonic within its kind.
type Id uint64

// Generator hands out monotonically increasing Ids for a single kind.
// Safe for concurrent use.
type Generator struct {
	next atomic.Uint64
}

// NewGenerator returns a Generator whose first Next() call yields start.
func NewGenerator(start Id) *Generator {
	g := &Generator{}
	g.next.Store(uint64(start))
	return g
}

// Next returns the next Id for this kind and advances the counter.
func (g *Generator) Next() Id {
	return Id(g.next.Add(1) - 1)
}

// Registry bundles the three independent per-kind counters the core loop
// needs. Kept separate rather than sharing one global counter so that
// removing a client never creates a gap visible in another kind's sequence.
type Registry struct {
	Clients *Generator
	Events  *Generator
	Eggs    *Generator
}

// NewRegistry builds a Registry with all three counters starting at 1.
// Id 0 is reserved (the scheduler's in-flight-cap-exceeded sentinel) and is
// never handed out by any generator.
func NewRegistry() *Registry {
	return &Registry{
		Clients: NewGenerator(1),
		Events:  NewGenerator(1),
		Eggs:    NewGenerator(1),
	}
}
