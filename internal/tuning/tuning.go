// Package tuning holds every numeric constant of the game balance in one
// yaml-loadable struct so balance passes don't require a rebuild.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TotalPhases          int `yaml:"total_phases"`
	PhaseDurationSeconds int `yaml:"phase_duration_seconds"`

	StartingFunds int `yaml:"starting_funds"`
	PhaseFunds    int `yaml:"phase_funds"` // credited to each player at every phase boundary

	Campaign Campaign `yaml:"campaign"`
	Rally    Rally    `yaml:"rally"`
	Spend    Spend    `yaml:"spend"`

	HomeBonus        float64 `yaml:"home_bonus"`         // influence points granted in a player's home region
	HomeCostDiscount float64 `yaml:"home_cost_discount"` // multiplier on costs in the home region

	GroupBonusRatio float64 `yaml:"group_bonus_ratio"` // fund bonus per seat for dominating a group
	ScanDebounceMs  int     `yaml:"scan_debounce_ms"`

	MajoritySeats   int `yaml:"majority_seats"`
	LeanTargetSeats int `yaml:"lean_target_seats"` // seats worth of regions leaning each player at start

	AIIntervalMs     int `yaml:"ai_interval_ms"`
	AIIntervalHardMs int `yaml:"ai_interval_hard_ms"`

	RandomEvents RandomEvents `yaml:"random_events"`
}

type Campaign struct {
	BaseCost        int `yaml:"base_cost"`        // tier 3 click cost; tier 2 = 1.5x, tier 1 = 2x
	ClickProgress   int `yaml:"click_progress"`   // progress points per accepted click
	PhaseClickCap   int `yaml:"phase_click_cap"`  // accepted clicks per campaign per phase
	CompletionBonus int `yaml:"completion_bonus"` // fund bonus per completion, paid at phase end
}

type Rally struct {
	TokensPerPhase int        `yaml:"tokens_per_phase"`
	SpecialChance  [2]float64 `yaml:"special_chance"` // per-token special probability, player 1 then player 2
	NormalBoost    float64    `yaml:"normal_boost"`
	SpecialBoost   float64    `yaml:"special_boost"` // applied in every region
	RegionCap      int        `yaml:"region_cap"`    // concurrent rallies per region, both players combined
}

type Spend struct {
	BaseBoost     float64 `yaml:"base_boost"`
	DecayPerSpent float64 `yaml:"decay_per_spent"` // multiplier loss per fund already spent in the region
	MinMultiplier float64 `yaml:"min_multiplier"`
	BurstClicks   int     `yaml:"burst_clicks"`
}

type RandomEvents struct {
	Enabled      bool `yaml:"enabled"`
	MinMagnitude int  `yaml:"min_magnitude"`
	MaxMagnitude int  `yaml:"max_magnitude"`
}

// Default returns the shipped game balance.
func Default() Tuning {
	return Tuning{
		TotalPhases:          10,
		PhaseDurationSeconds: 30,
		StartingFunds:        200,
		PhaseFunds:           200,
		Campaign: Campaign{
			BaseCost:        20,
			ClickProgress:   10,
			PhaseClickCap:   5,
			CompletionBonus: 0,
		},
		Rally: Rally{
			TokensPerPhase: 2,
			SpecialChance:  [2]float64{0.10, 0.05},
			NormalBoost:    8,
			SpecialBoost:   5,
			RegionCap:      2,
		},
		Spend: Spend{
			BaseBoost:     5,
			DecayPerSpent: 0.005,
			MinMultiplier: 0.8,
			BurstClicks:   3,
		},
		HomeBonus:        20,
		HomeCostDiscount: 0.8,
		GroupBonusRatio:  0.5,
		ScanDebounceMs:   500,
		MajoritySeats:    272,
		LeanTargetSeats:  100,
		AIIntervalMs:     2000,
		AIIntervalHardMs: 1500,
		RandomEvents: RandomEvents{
			Enabled:      false,
			MinMagnitude: 5,
			MaxMagnitude: 20,
		},
	}
}

// Load reads a tuning file, starting from defaults so partial files work.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
