// Per-region influence storage. Every tuple sums to exactly 100 after any
// operation; drift is corrected by adjusting Others, then the non-acting
// player. Threshold comparisons elsewhere use rounded integer shares.
package engine

import (
	"errors"
	"math"
)

var (
	ErrRegionNotFound     = errors.New("region not initialized")
	ErrAlreadyInitialized = errors.New("region already initialized")
)

// Tuple is the three-way influence split for one region.
type Tuple struct {
	P1     float64 `json:"player1"`
	P2     float64 `json:"player2"`
	Others float64 `json:"others"`
}

// Share returns the given player's share.
func (t Tuple) Share(p PlayerID) float64 {
	if p == Player1 {
		return t.P1
	}
	return t.P2
}

// Sum returns the tuple total, which should always be 100.
func (t Tuple) Sum() float64 {
	return t.P1 + t.P2 + t.Others
}

// RoundedShare returns the player's share rounded to the nearest integer.
// All >=50 style comparisons in the engine use this.
func (t Tuple) RoundedShare(p PlayerID) int {
	return int(math.Round(t.Share(p)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Store owns the per-region tuples. All mutations go through the session
// lock; Store itself is not safe for concurrent use.
type Store struct {
	tuples map[string]Tuple

	// onChange fires after every committed mutation.
	onChange func(regionID string, t Tuple)
}

// NewStore creates an empty influence store.
func NewStore() *Store {
	return &Store{tuples: make(map[string]Tuple)}
}

// Get returns the current tuple for a region.
func (s *Store) Get(regionID string) (Tuple, bool) {
	t, ok := s.tuples[regionID]
	return t, ok
}

// Has reports whether a region has been initialized.
func (s *Store) Has(regionID string) bool {
	_, ok := s.tuples[regionID]
	return ok
}

// Len returns the number of initialized regions.
func (s *Store) Len() int {
	return len(s.tuples)
}

// Initialize sets a region's starting tuple. Idempotent: a second call for
// the same region is a no-op and returns ErrAlreadyInitialized.
func (s *Store) Initialize(regionID string, t Tuple) error {
	if _, ok := s.tuples[regionID]; ok {
		return ErrAlreadyInitialized
	}
	s.commit(regionID, t, NoPlayer)
	return nil
}

// SetDirect overwrites a region's tuple, clamping each field to [0,100] and
// rescaling proportionally when the sum is off. Initializes the region if
// needed.
func (s *Store) SetDirect(regionID string, t Tuple) {
	t.P1 = clamp(t.P1, 0, 100)
	t.P2 = clamp(t.P2, 0, 100)
	t.Others = clamp(t.Others, 0, 100)

	sum := t.Sum()
	if sum <= 0 {
		t = Tuple{Others: 100}
	} else if math.Abs(sum-100) > 0.01 {
		scale := 100 / sum
		t.P1 *= scale
		t.P2 *= scale
		t.Others *= scale
	}
	s.commit(regionID, t, NoPlayer)
}

// ApplyBoost shifts boost points of influence to (or, when negative, away
// from) the given player, redistributing the complement across the other two
// fields in proportion to their current sizes.
func (s *Store) ApplyBoost(regionID string, player PlayerID, boost float64) error {
	t, ok := s.tuples[regionID]
	if !ok {
		return ErrRegionNotFound
	}
	if player != Player1 && player != Player2 {
		return errors.New("boost requires an acting player")
	}

	cur := t.Share(player)
	opp := t.Share(player.Opponent())
	others := t.Others

	delta := boost
	if delta > 0 {
		if cur+delta > 100 {
			delta = 100 - cur
		}
		pool := opp + others
		if delta > pool {
			delta = pool
		}
		if delta > 0 && pool > 0 {
			oppLoss := delta * (opp / pool)
			opp -= oppLoss
			others -= delta - oppLoss
			cur += delta
		}
	} else if delta < 0 {
		if cur+delta < 0 {
			delta = -cur
		}
		gain := -delta
		pool := opp + others
		if gain > 0 {
			if pool > 0 {
				oppGain := gain * (opp / pool)
				opp += oppGain
				others += gain - oppGain
			} else {
				others += gain
			}
			cur += delta
		}
	}

	if player == Player1 {
		t = Tuple{P1: cur, P2: opp, Others: others}
	} else {
		t = Tuple{P1: opp, P2: cur, Others: others}
	}
	s.commit(regionID, t, player)
	return nil
}

// commit rounds, renormalizes and stores a tuple, then fires onChange.
// The acting player is spared during drift correction.
func (s *Store) commit(regionID string, t Tuple, acting PlayerID) {
	t.P1 = round1(clamp(t.P1, 0, 100))
	t.P2 = round1(clamp(t.P2, 0, 100))
	t.Others = round1(clamp(t.Others, 0, 100))

	drift := round1(100 - t.Sum())
	if drift != 0 {
		t.Others = round1(t.Others + drift)
		if t.Others < 0 {
			spill := -t.Others
			t.Others = 0
			switch acting {
			case Player2:
				t.P1 = round1(math.Max(0, t.P1-spill))
			default:
				t.P2 = round1(math.Max(0, t.P2-spill))
			}
		}
	}

	s.tuples[regionID] = t
	if s.onChange != nil {
		s.onChange(regionID, t)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
