// Package entropy provides the randomness used by the game: seeded for
// reproducible sessions, crypto-seeded otherwise.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source wraps a mutex-guarded PRNG. A zero seed draws the seed from
// crypto/rand so unseeded sessions are unpredictable.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Source. Pass seed 0 for a random seed.
func New(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntN returns a random int in [0, n). n must be > 0.
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Range returns a random float64 in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.Float()*(max-min)
}

// IntRange returns a random int in [min, max] inclusive.
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.IntN(max-min+1)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float() < p
}

// WeightedIndex picks an index with probability proportional to its weight.
// Non-positive weights are treated as zero; returns -1 if nothing is pickable.
func (s *Source) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := s.Float() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// cryptoSeed derives a seed from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// This should never happen but a fixed seed beats a panic.
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
