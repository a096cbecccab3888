// Home region advantages: a fixed influence transfer at initialization and a
// discount on campaign costs in the player's home region.
package engine

import (
	"math"
	"strings"
)

// HomeBonus resolves home-region matches and applies the home advantages.
type HomeBonus struct {
	homes    map[PlayerID]string // display names
	bonus    float64
	discount float64
}

// NewHomeBonus configures the home regions for both players.
func NewHomeBonus(p1Home, p2Home string, bonus, discount float64) *HomeBonus {
	return &HomeBonus{
		homes: map[PlayerID]string{
			Player1: p1Home,
			Player2: p2Home,
		},
		bonus:    bonus,
		discount: discount,
	}
}

// HomeRegion returns the configured home region name for a player.
func (h *HomeBonus) HomeRegion(p PlayerID) string {
	return h.homes[p]
}

// IsHomeState reports whether regionName is the player's home region.
// Matching is exact, then case-insensitive, then whitespace-insensitive.
func (h *HomeBonus) IsHomeState(p PlayerID, regionName string) bool {
	home := h.homes[p]
	if home == "" || regionName == "" {
		return false
	}
	if home == regionName {
		return true
	}
	if strings.EqualFold(home, regionName) {
		return true
	}
	squash := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, " ", ""))
	}
	return squash(home) == squash(regionName)
}

// CampaignCost returns the cost after the home discount, rounded.
func (h *HomeBonus) CampaignCost(p PlayerID, regionName string, baseCost int) int {
	if h.IsHomeState(p, regionName) {
		return int(math.Round(float64(baseCost) * h.discount))
	}
	return baseCost
}

// ApplyBonus raises each matching player's share toward current+bonus
// (capped at 100), withdrawing first from Others, then from the opponent.
// Player 1 is applied before player 2; each application clamps
// independently, so a shared home region cannot push a field negative.
// The result is integer-rounded with Others absorbing the remainder.
func (h *HomeBonus) ApplyBonus(regionName string, t Tuple) Tuple {
	for _, p := range []PlayerID{Player1, Player2} {
		if !h.IsHomeState(p, regionName) {
			continue
		}
		cur := t.Share(p)
		target := math.Min(100, cur+h.bonus)
		need := target - cur
		if need <= 0 {
			continue
		}

		fromOthers := math.Min(need, t.Others)
		t.Others -= fromOthers
		need -= fromOthers

		opp := p.Opponent()
		fromOpp := math.Min(need, t.Share(opp))
		if opp == Player1 {
			t.P1 -= fromOpp
		} else {
			t.P2 -= fromOpp
		}

		gained := fromOthers + fromOpp
		if p == Player1 {
			t.P1 += gained
		} else {
			t.P2 += gained
		}
	}

	t.P1 = math.Round(t.P1)
	t.P2 = math.Round(t.P2)
	t.Others = math.Round(t.Others)
	t.Others += 100 - t.Sum()
	if t.Others < 0 {
		spill := -t.Others
		t.Others = 0
		if t.P1 >= t.P2 {
			t.P1 -= spill
		} else {
			t.P2 -= spill
		}
	}
	return t
}
