// Starting influence allocation. Regions are split by seat weight into
// high/medium/low tiers; roughly 100 seats worth lean toward each player,
// drawn from the high tier first, and everything else starts contested.
package engine

import "github.com/talgya/electionsim/internal/regions"

const (
	highTierSeats = 20 // seat weight above this is high tier
	lowTierSeats  = 5  // at or below is low tier
)

// initializeInfluenceLocked assigns every region its starting tuple exactly
// once, applying the home bonuses afterward.
func (s *GameSession) initializeInfluenceLocked() {
	var high, medium []*regions.Region
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		switch {
		case r.SeatWeight > highTierSeats:
			high = append(high, r)
		case r.SeatWeight > lowTierSeats:
			medium = append(medium, r)
		}
	}

	taken := make(map[string]bool)
	leanP1 := s.pickLeaningLocked(high, medium, taken)
	leanP2 := s.pickLeaningLocked(high, medium, taken)

	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		var t Tuple
		switch {
		case leanP1[r.ID]:
			t.P1 = s.rng.Range(35, 60)
			t.P2 = s.rng.Range(10, 35)
		case leanP2[r.ID]:
			t.P2 = s.rng.Range(35, 60)
			t.P1 = s.rng.Range(10, 35)
		default:
			t.P1 = s.rng.Range(10, 35)
			t.P2 = s.rng.Range(10, 35)
		}
		t.Others = 100 - t.P1 - t.P2

		t = s.home.ApplyBonus(r.Name, t)
		_ = s.store.Initialize(r.ID, t)
	}
}

// pickLeaningLocked selects untaken regions until their cumulative seat
// weight reaches the lean target. High tier first, medium as fallback.
func (s *GameSession) pickLeaningLocked(high, medium []*regions.Region, taken map[string]bool) map[string]bool {
	picked := make(map[string]bool)
	seats := 0
	for _, pool := range [][]*regions.Region{high, medium} {
		for _, r := range s.shuffleRegionsLocked(pool) {
			if seats >= s.tune.LeanTargetSeats {
				return picked
			}
			if taken[r.ID] {
				continue
			}
			taken[r.ID] = true
			picked[r.ID] = true
			seats += r.SeatWeight
		}
	}
	return picked
}

func (s *GameSession) shuffleRegionsLocked(in []*regions.Region) []*regions.Region {
	out := make([]*regions.Region, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// InitializeRegion initializes a single region on demand: a random
// contested tuple plus the home bonus. No-op if already initialized.
func (s *GameSession) InitializeRegion(regionID string) (Tuple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.store.Get(regionID); ok {
		return t, nil
	}
	r := s.catalog.Get(regionID)
	if r == nil {
		return Tuple{}, ErrRegionNotFound
	}
	t := Tuple{
		P1: s.rng.Range(15, 30),
		P2: s.rng.Range(15, 30),
	}
	t.Others = 100 - t.P1 - t.P2
	t = s.home.ApplyBonus(r.Name, t)
	if err := s.store.Initialize(regionID, t); err != nil {
		return Tuple{}, err
	}
	t, _ = s.store.Get(regionID)
	return t, nil
}
