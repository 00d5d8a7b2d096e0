// Package random isolates the randomness used by scoring jitter and
// synthetic data generation behind a seedable source, so tests can pin
// outcomes.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness surface consumed by the pipeline.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Range returns a value in [min, max].
	Range(min, max int) int
	// Jitter returns a value in [-spread, +spread].
	Jitter(spread int) int
	// Pick returns a random element of items. Panics on empty input.
	Pick(items []string) string
	// Coin returns true with probability 0.5.
	Coin() bool
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a time-seeded source.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a source with a fixed seed for deterministic tests.
func NewSeeded(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.Intn(max-min+1)
}

func (s *lockedSource) Jitter(spread int) int {
	if spread <= 0 {
		return 0
	}
	return s.Intn(2*spread+1) - spread
}

func (s *lockedSource) Pick(items []string) string {
	return items[s.Intn(len(items))]
}

func (s *lockedSource) Coin() bool {
	return s.Intn(2) == 0
}
