package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBalance(t *testing.T) {
	d := Default()
	if d.TotalPhases != 10 || d.PhaseDurationSeconds != 30 {
		t.Errorf("round structure = %d x %ds", d.TotalPhases, d.PhaseDurationSeconds)
	}
	if d.StartingFunds != 200 || d.PhaseFunds != 200 {
		t.Errorf("funds = %d start, %d per phase", d.StartingFunds, d.PhaseFunds)
	}
	if d.MajoritySeats != 272 {
		t.Errorf("majority = %d, want 272", d.MajoritySeats)
	}
	if d.Campaign.BaseCost != 20 || d.Campaign.PhaseClickCap != 5 {
		t.Errorf("campaign = %+v", d.Campaign)
	}
	if d.Campaign.CompletionBonus != 0 {
		t.Errorf("completion bonus = %d, want 0 by default", d.Campaign.CompletionBonus)
	}
	if d.Rally.TokensPerPhase != 2 || d.Rally.RegionCap != 2 {
		t.Errorf("rally = %+v", d.Rally)
	}
	if d.Rally.SpecialChance[0] != 0.10 || d.Rally.SpecialChance[1] != 0.05 {
		t.Errorf("special chance = %v", d.Rally.SpecialChance)
	}
	if d.Spend.MinMultiplier != 0.8 || d.Spend.BurstClicks != 3 {
		t.Errorf("spend = %+v", d.Spend)
	}
	if d.RandomEvents.Enabled {
		t.Error("random events on by default")
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("total_phases: 4\ncampaign:\n  base_cost: 50\nrally:\n  special_chance: [0.5, 0.5]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalPhases != 4 {
		t.Errorf("total_phases = %d, want 4", got.TotalPhases)
	}
	if got.Campaign.BaseCost != 50 {
		t.Errorf("base_cost = %d, want 50", got.Campaign.BaseCost)
	}
	if got.Rally.SpecialChance != [2]float64{0.5, 0.5} {
		t.Errorf("special_chance = %v", got.Rally.SpecialChance)
	}

	// Everything the file leaves out keeps its default.
	if got.PhaseDurationSeconds != 30 || got.MajoritySeats != 272 {
		t.Errorf("defaults lost: %+v", got)
	}
	if got.Campaign.ClickProgress != 10 {
		t.Errorf("nested default lost: click_progress = %d", got.Campaign.ClickProgress)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("total_phases: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}
