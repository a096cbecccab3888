// Policy campaign boards: 24 two-player progress races. Completing one
// applies the policy's tag-based influence effect nationwide on behalf of
// the player who contributed more.
package engine

import (
	"errors"

	"github.com/talgya/electionsim/internal/policy"
)

var (
	ErrGamePaused        = errors.New("game is paused")
	ErrGameOver          = errors.New("game is over")
	ErrCampaignComplete  = errors.New("campaign already completed")
	ErrClickCapReached   = errors.New("campaign click cap reached for this phase")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownCampaign   = errors.New("unknown campaign")
)

// CampaignKey identifies one campaign on the boards.
type CampaignKey struct {
	Category policy.Category `json:"category"`
	Index    int             `json:"index"`
}

// Campaign is the mutable race state for one policy.
type Campaign struct {
	Key         CampaignKey   `json:"key"`
	Policy      policy.Policy `json:"-"`
	P1Progress  int           `json:"player1_progress"`
	P2Progress  int           `json:"player2_progress"`
	Completed   bool          `json:"completed"`
	PhaseClicks int           `json:"phase_clicks"`
}

// Combined returns total progress, capped at 100.
func (c *Campaign) Combined() int {
	total := c.P1Progress + c.P2Progress
	if total > 100 {
		total = 100
	}
	return total
}

// Dominant returns whichever player has the higher individual progress.
// Ties go to player 1.
func (c *Campaign) Dominant() PlayerID {
	if c.P2Progress > c.P1Progress {
		return Player2
	}
	return Player1
}

// CampaignBoard holds all 24 campaigns in display order.
type CampaignBoard struct {
	byKey map[CampaignKey]*Campaign
	order []CampaignKey
}

// NewCampaignBoard builds the boards from the policy catalog.
func NewCampaignBoard() *CampaignBoard {
	b := &CampaignBoard{byKey: make(map[CampaignKey]*Campaign, policy.Count())}
	for _, cat := range policy.Categories {
		for i := 0; i < policy.PerCategory; i++ {
			p, err := policy.Get(cat, i)
			if err != nil {
				continue
			}
			key := CampaignKey{Category: cat, Index: i}
			b.byKey[key] = &Campaign{Key: key, Policy: p}
			b.order = append(b.order, key)
		}
	}
	return b
}

// Get returns the campaign for a key, or nil.
func (b *CampaignBoard) Get(key CampaignKey) *Campaign {
	return b.byKey[key]
}

// All returns every campaign in display order.
func (b *CampaignBoard) All() []*Campaign {
	out := make([]*Campaign, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.byKey[key])
	}
	return out
}

type completion struct {
	key      CampaignKey
	dominant PlayerID
}

// ContributeCampaign is one click on a campaign by a player: pays the
// tier-based cost and adds progress. The first crossing of combined
// progress 100 completes the campaign and applies its policy effect.
func (s *GameSession) ContributeCampaign(cat policy.Category, index int, player PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contributeCampaignLocked(CampaignKey{Category: cat, Index: index}, player)
}

func (s *GameSession) contributeCampaignLocked(key CampaignKey, player PlayerID) error {
	if s.over {
		return ErrGameOver
	}
	if s.paused {
		return ErrGamePaused
	}
	c := s.board.Get(key)
	if c == nil {
		return ErrUnknownCampaign
	}
	if c.Completed {
		return ErrCampaignComplete
	}
	if c.PhaseClicks >= s.tune.Campaign.PhaseClickCap {
		return ErrClickCapReached
	}

	cost := c.Policy.ClickCost(s.tune.Campaign.BaseCost)
	pl := s.players[player]
	if pl.Funds < cost {
		return ErrInsufficientFunds
	}
	pl.Funds -= cost

	add := s.tune.Campaign.ClickProgress
	if room := 100 - (c.P1Progress + c.P2Progress); add > room {
		add = room
	}
	if player == Player1 {
		c.P1Progress += add
	} else {
		c.P2Progress += add
	}
	c.PhaseClicks++

	s.logActionLocked("campaign", "Player %d contributed %dM to %s",
		player, cost, c.Policy.Name)

	if c.P1Progress+c.P2Progress >= 100 && !c.Completed {
		c.Completed = true
		dominant := c.Dominant()
		s.completedThisPhase = append(s.completedThisPhase, completion{key: key, dominant: dominant})
		summary := s.applyPolicyEffectLocked(c.Policy, dominant)
		s.logActionLocked("campaign", "Player %d completed %s (%d regions affected)",
			dominant, c.Policy.Name, summary.RegionsAffected)
		s.notify.campaignCompleted(key.Category, key.Index, dominant, summary)
	}
	return nil
}

// applyPolicyEffectLocked applies the completed policy's effect in every
// region whose tags intersect the policy's support or oppose lists.
func (s *GameSession) applyPolicyEffectLocked(p policy.Policy, dominant PlayerID) EffectSummary {
	var summary EffectSummary
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		effect := p.Effect(r.Tags)
		if effect == 0 {
			continue
		}
		if err := s.store.ApplyBoost(r.ID, dominant, float64(effect)); err != nil {
			continue
		}
		summary.RegionsAffected++
		if effect > 0 {
			summary.TotalPositive += effect
		} else {
			summary.TotalNegative += -effect
		}
	}
	return summary
}

// resetPhaseClicksLocked zeroes every campaign's per-phase click counter.
func (s *GameSession) resetPhaseClicksLocked() {
	for _, c := range s.board.All() {
		c.PhaseClicks = 0
	}
}

// awardPhaseBonusesLocked pays the per-completion fund bonus for campaigns
// finished during the ending phase, then clears the list. The bonus ships
// as zero; the hook stays so balance can turn it back on.
func (s *GameSession) awardPhaseBonusesLocked() {
	bonus := s.tune.Campaign.CompletionBonus
	if bonus > 0 {
		counts := map[PlayerID]int{}
		for _, done := range s.completedThisPhase {
			counts[done.dominant]++
		}
		for p, n := range counts {
			total := bonus * n
			s.players[p].Funds += total
			s.logActionLocked("bonus", "Player %d received %dM phase bonus for %d completed campaigns",
				p, total, n)
		}
	}
	s.completedThisPhase = s.completedThisPhase[:0]
}
