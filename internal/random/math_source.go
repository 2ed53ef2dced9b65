package random

import (
	"math/rand"
	"sync"
	"time"
)

// mathSource implements Source using math/rand
type mathSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Source seeded with the given seed. A zero seed falls
// back to the current time.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &mathSource{rng: rand.New(rand.NewSource(seed))}
}

// Float64 implements Source.Float64
func (s *mathSource) Float64(n float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() * n
}

// Between implements Source.Between
func (s *mathSource) Between(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// Percent implements Source.Percent
func (s *mathSource) Percent() float64 {
	return s.Float64(100)
}
