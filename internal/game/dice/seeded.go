package dice

import (
	"math/rand"
	"sync"
)

// seededSource implements Source with a deterministic math/rand generator.
//
// Invariant: two seededSources created with the same seed produce identical
// value sequences for identical call sequences.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
// Used for battle replay and tests; production callers use NewCryptoSource.
//
// Postcondition: The returned Source is safe for concurrent use.
func NewSeededSource(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a deterministic pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
