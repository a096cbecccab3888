package engine

import (
	"testing"

	"github.com/talgya/electionsim/internal/tuning"
)

func TestRegionSpendCostUsesSeatWeight(t *testing.T) {
	s := newTestSession(t, nil)

	tests := []struct {
		player PlayerID
		region string
		cost   int
	}{
		{Player1, "IN-UP", 64}, // home: round(80 * 0.8)
		{Player2, "IN-UP", 80},
		{Player2, "IN-GJ", 21}, // home: round(26 * 0.8)
		{Player1, "IN-GJ", 26},
		{Player1, "IN-LA", 1},
	}
	for _, tc := range tests {
		got, err := s.RegionSpendCost(tc.player, tc.region)
		if err != nil {
			t.Fatalf("cost %s player %d: %v", tc.region, tc.player, err)
		}
		if got != tc.cost {
			t.Errorf("cost %s player %d = %d, want %d", tc.region, tc.player, got, tc.cost)
		}
	}

	if _, err := s.RegionSpendCost(Player1, "IN-XX"); err != ErrRegionNotFound {
		t.Fatalf("unknown region: got %v, want ErrRegionNotFound", err)
	}
}

func TestSpendChargesAndBoosts(t *testing.T) {
	s := newTestSession(t, nil)

	before, _ := s.Influence("IN-LA")
	funds := s.Funds(Player1)
	if err := s.SpendOnRegion(Player1, "IN-LA"); err != nil {
		t.Fatalf("spend: %v", err)
	}
	after, _ := s.Influence("IN-LA")

	if got := funds - s.Funds(Player1); got != 1 {
		t.Errorf("charged %d, want the region's seat weight", got)
	}
	// First spend in a fresh region buys the full base boost.
	if gain := after.P1 - before.P1; gain < 4.9 {
		t.Errorf("boost = %v, want ~5", gain)
	}
	if got := s.SpentInRegion(Player1, "IN-LA"); got != 1 {
		t.Errorf("spent = %d, want 1", got)
	}
}

func TestSpendBoostDecaysToFloor(t *testing.T) {
	s := newTestSession(t, nil)
	s.mu.Lock()
	defer s.mu.Unlock()

	if got := s.spendBoostLocked(Player1, "IN-UP"); got != 5 {
		t.Fatalf("fresh boost = %v, want 5", got)
	}
	// 20 already spent: 5 * (1 - 20*0.005) = 4.5.
	s.spent["IN-UP"][Player1] = 20
	if got := s.spendBoostLocked(Player1, "IN-UP"); !almostEqual(got, 4.5) {
		t.Errorf("decayed boost = %v, want 4.5", got)
	}
	// Deep spending bottoms out at the floor multiplier.
	s.spent["IN-UP"][Player1] = 1000
	if got := s.spendBoostLocked(Player1, "IN-UP"); !almostEqual(got, 4) {
		t.Errorf("floored boost = %v, want 5 * 0.8", got)
	}
	// The other player's decay is tracked separately.
	if got := s.spendBoostLocked(Player2, "IN-UP"); got != 5 {
		t.Errorf("opponent boost = %v, want 5", got)
	}
}

func TestBurstSpendChargedUpFront(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) { tu.StartingFunds = 10000 })

	funds := s.Funds(Player2)
	if err := s.BurstSpendOnRegion(Player2, "IN-KL"); err != nil {
		t.Fatalf("burst: %v", err)
	}
	// Three clicks at seat-weight cost 20 each.
	if got := funds - s.Funds(Player2); got != 60 {
		t.Errorf("burst charged %d, want 60", got)
	}
	if got := s.SpentInRegion(Player2, "IN-KL"); got != 60 {
		t.Errorf("spent = %d, want 60", got)
	}
}

func TestBurstRefusedWholeWhenShort(t *testing.T) {
	// 200 covers two 80-point spends but not a three-click burst.
	s := newTestSession(t, func(tu *tuning.Tuning) { tu.GroupBonusRatio = 0 })

	funds := s.Funds(Player2)
	if err := s.BurstSpendOnRegion(Player2, "IN-UP"); err != ErrInsufficientFunds {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if s.Funds(Player2) != funds {
		t.Fatalf("failed burst still charged: %d -> %d", funds, s.Funds(Player2))
	}
	if got := s.SpentInRegion(Player2, "IN-UP"); got != 0 {
		t.Fatalf("failed burst recorded spending: %d", got)
	}

	// A single spend is still affordable.
	if err := s.SpendOnRegion(Player2, "IN-UP"); err != nil {
		t.Fatalf("single spend: %v", err)
	}
}

func TestSpendRejectedWhenPaused(t *testing.T) {
	s := newTestSession(t, nil)
	s.Pause()
	if err := s.SpendOnRegion(Player1, "IN-LA"); err != ErrGamePaused {
		t.Fatalf("got %v, want ErrGamePaused", err)
	}
}
