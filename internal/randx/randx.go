// Package randx provides a seeded *rand.Rand that is safe to share across
// goroutines, the same way math/rand guards its global source.
package randx

import (
	"math/rand"
	"sync"
)

// lockedSource serializes access to the underlying source. rand.Rand keeps
// no state of its own outside Read, so guarding the source makes the usual
// Float64/Intn/Int63 methods safe for concurrent callers.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewLocked returns a seeded rng backed by a mutex-guarded source. The draw
// sequence matches rand.New(rand.NewSource(seed)), so seeded runs stay
// reproducible. Do not use Rand.Read on the shared instance; it buffers
// outside the source.
func NewLocked(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}
