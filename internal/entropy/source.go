// Package entropy provides the single seeded random source the core loop
// draws from for egg placement and selection, resource refill, and initial
// player headings.
//
// Unlike a service wanting true randomness, the simulation needs the
// opposite: a single RNG per core loop invocation path, seedable for test
// determinism. One Source wraps math/rand/v2's PCG and is never shared
// across goroutines — only the main loop ever calls into it.
package entropy

import (
	"math/rand/v2"
	"sync"
)

// Source is a mutex-guarded seeded RNG. The core loop owns exactly one;
// tests construct their own with a fixed seed for reproducible runs.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource builds a Source seeded deterministically from seed.
func NewSource(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a random int in [0, n). Panics if n <= 0.
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
