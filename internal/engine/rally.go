// Rally token economy. Tokens reset and reallocate at every phase boundary;
// a normal token boosts one region, a special token boosts all of them.
package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoTokens        = errors.New("no rally tokens remaining")
	ErrRallyCapReached = errors.New("region rally cap reached")
)

// RallyPool is one player's current tokens.
type RallyPool struct {
	Normal  int `json:"normal"`
	Special int `json:"special"`
}

// Rally records one placed rally.
type Rally struct {
	ID       string    `json:"id"`
	RegionID string    `json:"region_id"`
	Player   PlayerID  `json:"player"`
	Phase    int       `json:"phase"`
	PlacedAt time.Time `json:"placed_at"`
}

// replenishTokensLocked discards unused tokens and deals the per-phase
// allocation. Each dealt token is independently special with the player's
// configured probability.
func (s *GameSession) replenishTokensLocked() {
	for _, p := range []PlayerID{Player1, Player2} {
		pl := s.players[p]
		pl.Tokens = RallyPool{}
		chance := s.tune.Rally.SpecialChance[int(p)-1]
		for i := 0; i < s.tune.Rally.TokensPerPhase; i++ {
			if s.rng.Chance(chance) {
				pl.Tokens.Special++
			} else {
				pl.Tokens.Normal++
			}
		}
		if pl.Tokens.Special > 0 {
			s.logActionLocked("rally", "Player %d received %d rally tokens (%d special)",
				p, s.tune.Rally.TokensPerPhase, pl.Tokens.Special)
		}
	}
}

// PlaceRally spends a normal token on one region.
func (s *GameSession) PlaceRally(player PlayerID, regionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placeRallyLocked(player, regionID)
}

func (s *GameSession) placeRallyLocked(player PlayerID, regionID string) error {
	if s.over {
		return ErrGameOver
	}
	if s.paused {
		return ErrGamePaused
	}
	if s.catalog.Get(regionID) == nil {
		return ErrRegionNotFound
	}
	pl := s.players[player]
	if pl.Tokens.Normal <= 0 {
		return ErrNoTokens
	}
	if len(s.rallies[regionID]) >= s.tune.Rally.RegionCap {
		return ErrRallyCapReached
	}

	pl.Tokens.Normal--
	s.rallies[regionID] = append(s.rallies[regionID], Rally{
		ID:       uuid.NewString(),
		RegionID: regionID,
		Player:   player,
		Phase:    s.phase,
		PlacedAt: time.Now(),
	})
	if err := s.store.ApplyBoost(regionID, player, s.tune.Rally.NormalBoost); err != nil {
		return err
	}

	s.logActionLocked("rally", "Player %d held a rally in %s", player, s.regionName(regionID))
	s.notify.rallyPlaced(regionID, player, false)
	return nil
}

// UseSpecialRally spends a special token, boosting the player everywhere.
func (s *GameSession) UseSpecialRally(player PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useSpecialRallyLocked(player)
}

func (s *GameSession) useSpecialRallyLocked(player PlayerID) error {
	if s.over {
		return ErrGameOver
	}
	if s.paused {
		return ErrGamePaused
	}
	pl := s.players[player]
	if pl.Tokens.Special <= 0 {
		return ErrNoTokens
	}
	pl.Tokens.Special--

	for i := range s.catalog.Regions {
		// Same proportional redistribution as a normal boost, per region.
		_ = s.store.ApplyBoost(s.catalog.Regions[i].ID, player, s.tune.Rally.SpecialBoost)
	}

	s.logActionLocked("rally", "Player %d launched a nationwide rally tour", player)
	s.notify.rallyPlaced("", player, true)
	return nil
}

// RallyCount returns the number of rallies placed in a region.
func (s *GameSession) RallyCount(regionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rallies[regionID])
}

// RegionRallies returns copies of the rallies active in a region this phase.
func (s *GameSession) RegionRallies(regionID string) []Rally {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Rally, len(s.rallies[regionID]))
	copy(out, s.rallies[regionID])
	return out
}
