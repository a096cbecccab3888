// Region campaign spending. A spend costs the region's seat weight (home
// discount applies) and buys an influence boost that decays as more money
// is poured into the same region.
package engine

import (
	"github.com/dustin/go-humanize"
)

// RegionSpendCost returns what one spend in the region costs the player.
func (s *GameSession) RegionSpendCost(player PlayerID, regionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.catalog.Get(regionID)
	if r == nil {
		return 0, ErrRegionNotFound
	}
	return s.home.CampaignCost(player, r.Name, r.SeatWeight), nil
}

// SpendOnRegion executes one campaign spend in a region.
func (s *GameSession) SpendOnRegion(player PlayerID, regionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spendOnRegionLocked(player, regionID, 1)
}

// BurstSpendOnRegion executes several spends at once, charged up front.
// Refused whole if the player cannot afford the full burst.
func (s *GameSession) BurstSpendOnRegion(player PlayerID, regionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spendOnRegionLocked(player, regionID, s.tune.Spend.BurstClicks)
}

func (s *GameSession) spendOnRegionLocked(player PlayerID, regionID string, clicks int) error {
	if s.over {
		return ErrGameOver
	}
	if s.paused {
		return ErrGamePaused
	}
	r := s.catalog.Get(regionID)
	if r == nil {
		return ErrRegionNotFound
	}
	if clicks < 1 {
		clicks = 1
	}

	cost := s.home.CampaignCost(player, r.Name, r.SeatWeight)
	total := cost * clicks
	pl := s.players[player]
	if pl.Funds < total {
		return ErrInsufficientFunds
	}
	pl.Funds -= total

	for i := 0; i < clicks; i++ {
		boost := s.spendBoostLocked(player, regionID)
		if err := s.store.ApplyBoost(regionID, player, boost); err != nil {
			return err
		}
		s.spent[regionID][player] += cost
	}

	if clicks > 1 {
		s.logActionLocked("spend", "Player %d spent %sM (%dx burst) campaigning in %s",
			player, humanize.Comma(int64(total)), clicks, r.Name)
	} else {
		s.logActionLocked("spend", "Player %d spent %sM campaigning in %s",
			player, humanize.Comma(int64(total)), r.Name)
	}
	return nil
}

// spendBoostLocked computes the influence a single spend buys right now:
// the base boost scaled down by money already sunk into the region, with a
// floor so late spending still moves the needle.
func (s *GameSession) spendBoostLocked(player PlayerID, regionID string) float64 {
	already := float64(s.spent[regionID][player])
	mult := 1 - already*s.tune.Spend.DecayPerSpent
	if mult < s.tune.Spend.MinMultiplier {
		mult = s.tune.Spend.MinMultiplier
	}
	return s.tune.Spend.BaseBoost * mult
}

// SpentInRegion returns the funds a player has sunk into a region so far.
func (s *GameSession) SpentInRegion(player PlayerID, regionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spent[regionID][player]
}
