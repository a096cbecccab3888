package engine

import "testing"

func TestIsHomeStateMatching(t *testing.T) {
	h := NewHomeBonus("Uttar Pradesh", "Tamil Nadu", 20, 0.8)

	tests := []struct {
		player PlayerID
		name   string
		want   bool
	}{
		{Player1, "Uttar Pradesh", true},
		{Player1, "uttar pradesh", true},
		{Player1, "UttarPradesh", true},
		{Player1, "Tamil Nadu", false},
		{Player2, "TAMILNADU", true},
		{Player2, "Kerala", false},
		{Player1, "", false},
	}
	for _, tc := range tests {
		if got := h.IsHomeState(tc.player, tc.name); got != tc.want {
			t.Errorf("IsHomeState(%d, %q) = %v, want %v", tc.player, tc.name, got, tc.want)
		}
	}
}

func TestCampaignCostHomeDiscount(t *testing.T) {
	h := NewHomeBonus("Gujarat", "", 20, 0.8)

	if got := h.CampaignCost(Player1, "Gujarat", 26); got != 21 {
		t.Errorf("home cost = %d, want 21", got) // round(26 * 0.8)
	}
	if got := h.CampaignCost(Player1, "Kerala", 26); got != 26 {
		t.Errorf("away cost = %d, want 26", got)
	}
	if got := h.CampaignCost(Player2, "Gujarat", 26); got != 26 {
		t.Errorf("opponent cost = %d, want 26", got)
	}
}

func TestApplyBonusWithdrawsOthersFirst(t *testing.T) {
	h := NewHomeBonus("Gujarat", "Kerala", 20, 0.8)

	got := h.ApplyBonus("Gujarat", Tuple{P1: 30, P2: 30, Others: 40})
	if got.P1 != 50 {
		t.Errorf("P1 = %v, want 50", got.P1)
	}
	// Others could cover the full bonus, so the opponent is untouched.
	if got.P2 != 30 {
		t.Errorf("P2 = %v, want 30", got.P2)
	}
	if got.Others != 20 {
		t.Errorf("Others = %v, want 20", got.Others)
	}
}

func TestApplyBonusSpillsIntoOpponent(t *testing.T) {
	h := NewHomeBonus("Gujarat", "Kerala", 20, 0.8)

	got := h.ApplyBonus("Gujarat", Tuple{P1: 30, P2: 62, Others: 8})
	if got.P1 != 50 {
		t.Errorf("P1 = %v, want 50", got.P1)
	}
	// 8 from Others, the remaining 12 from the opponent.
	if got.P2 != 50 {
		t.Errorf("P2 = %v, want 50", got.P2)
	}
	if got.Others != 0 {
		t.Errorf("Others = %v, want 0", got.Others)
	}
}

func TestApplyBonusCapsAtHundred(t *testing.T) {
	h := NewHomeBonus("Gujarat", "Kerala", 20, 0.8)

	got := h.ApplyBonus("Gujarat", Tuple{P1: 92, P2: 5, Others: 3})
	if got.P1 != 100 {
		t.Errorf("P1 = %v, want 100", got.P1)
	}
	if got.Sum() != 100 {
		t.Errorf("sum = %v, want 100", got.Sum())
	}
}

func TestApplyBonusSharedHomeClampsIndependently(t *testing.T) {
	// Both players share a home region: player 1 is applied first, then
	// player 2 takes what is left. No field may go negative.
	h := NewHomeBonus("Gujarat", "Gujarat", 20, 0.8)

	got := h.ApplyBonus("Gujarat", Tuple{P1: 40, P2: 40, Others: 20})
	if got.Sum() != 100 {
		t.Fatalf("sum = %v, want 100", got.Sum())
	}
	if got.P1 < 0 || got.P2 < 0 || got.Others < 0 {
		t.Fatalf("negative field: %+v", got)
	}
	// Player 1 drains Others (40 -> 60), then player 2 pulls its 20 back
	// out of player 1.
	if got.P1 != 40 || got.P2 != 60 {
		t.Errorf("got P1=%v P2=%v, want 40/60", got.P1, got.P2)
	}
}

func TestApplyBonusNonHomeUnchanged(t *testing.T) {
	h := NewHomeBonus("Gujarat", "Kerala", 20, 0.8)
	in := Tuple{P1: 30, P2: 30, Others: 40}
	got := h.ApplyBonus("Punjab", in)
	if got != in {
		t.Errorf("non-home region changed: %+v", got)
	}
}

func TestApplyBonusResultIsIntegral(t *testing.T) {
	h := NewHomeBonus("Gujarat", "", 20, 0.8)
	got := h.ApplyBonus("Gujarat", Tuple{P1: 33.4, P2: 21.7, Others: 44.9})
	for _, v := range []float64{got.P1, got.P2, got.Others} {
		if v != float64(int(v)) {
			t.Errorf("non-integer field in %+v", got)
		}
	}
	if got.Sum() != 100 {
		t.Errorf("sum = %v, want 100", got.Sum())
	}
}
