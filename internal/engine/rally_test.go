package engine

import (
	"testing"

	"github.com/talgya/electionsim/internal/tuning"
)

func TestReplenishDealsTokensPerPhase(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})
	for _, p := range []PlayerID{Player1, Player2} {
		pool := s.Tokens(p)
		if pool.Normal != 2 || pool.Special != 0 {
			t.Errorf("player %d tokens = %+v, want 2 normal", p, pool)
		}
	}
}

func TestReplenishDiscardsLeftovers(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})
	s.mu.Lock()
	s.players[Player1].Tokens = RallyPool{Normal: 7, Special: 3}
	s.replenishTokensLocked()
	pool := s.players[Player1].Tokens
	s.mu.Unlock()
	if pool.Normal != 2 || pool.Special != 0 {
		t.Fatalf("tokens after replenish = %+v, want fresh 2 normal", pool)
	}
}

func TestPlaceRallyBoostsRegion(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})

	before, _ := s.Influence("IN-KL")
	if err := s.PlaceRally(Player1, "IN-KL"); err != nil {
		t.Fatalf("place rally: %v", err)
	}
	after, _ := s.Influence("IN-KL")

	if after.P1-before.P1 < 7.9 {
		t.Errorf("rally boost = %v, want ~8", after.P1-before.P1)
	}
	if got := s.Tokens(Player1).Normal; got != 1 {
		t.Errorf("normal tokens = %d, want 1", got)
	}
	if got := s.RallyCount("IN-KL"); got != 1 {
		t.Errorf("rally count = %d, want 1", got)
	}
}

func TestPlaceRallyTokenAndCapLimits(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})

	if err := s.PlaceRally(Player1, "IN-OD"); err != nil {
		t.Fatalf("first rally: %v", err)
	}
	if err := s.PlaceRally(Player1, "IN-OD"); err != nil {
		t.Fatalf("second rally: %v", err)
	}
	// Player 1 is out of tokens.
	if err := s.PlaceRally(Player1, "IN-OD"); err != ErrNoTokens {
		t.Fatalf("third rally: got %v, want ErrNoTokens", err)
	}
	// Player 2 has tokens but the region is at its cap.
	if err := s.PlaceRally(Player2, "IN-OD"); err != ErrRallyCapReached {
		t.Fatalf("capped region: got %v, want ErrRallyCapReached", err)
	}
	// A different region is still open.
	if err := s.PlaceRally(Player2, "IN-KL"); err != nil {
		t.Fatalf("other region: %v", err)
	}
}

func TestPlaceRallyUnknownRegion(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.PlaceRally(Player1, "IN-XX"); err != ErrRegionNotFound {
		t.Fatalf("got %v, want ErrRegionNotFound", err)
	}
}

func TestSpecialRallyBoostsEverywhere(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{1, 1}
	})

	if pool := s.Tokens(Player2); pool.Special != 2 || pool.Normal != 0 {
		t.Fatalf("tokens = %+v, want 2 special", pool)
	}

	before := make(map[string]Tuple)
	for _, id := range []string{"IN-UP", "IN-TN", "IN-LA"} {
		before[id], _ = s.Influence(id)
	}

	if err := s.UseSpecialRally(Player2); err != nil {
		t.Fatalf("special rally: %v", err)
	}

	for id, b := range before {
		after, _ := s.Influence(id)
		if after.P2 < b.P2 {
			t.Errorf("region %s lost influence on a special rally: %v -> %v", id, b.P2, after.P2)
		}
	}
	if got := s.Tokens(Player2).Special; got != 1 {
		t.Errorf("special tokens = %d, want 1", got)
	}
}

func TestSpecialRallyWithoutToken(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})
	if err := s.UseSpecialRally(Player1); err != ErrNoTokens {
		t.Fatalf("got %v, want ErrNoTokens", err)
	}
}

func TestRegionRalliesExposesRecords(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})

	if err := s.PlaceRally(Player1, "IN-KL"); err != nil {
		t.Fatalf("place rally: %v", err)
	}

	list := s.RegionRallies("IN-KL")
	if len(list) != 1 {
		t.Fatalf("records = %d, want 1", len(list))
	}
	r := list[0]
	if r.ID == "" {
		t.Error("rally record has no id")
	}
	if r.RegionID != "IN-KL" || r.Player != Player1 || r.Phase != 1 {
		t.Errorf("record = %+v, want Player1 in IN-KL at phase 1", r)
	}
	if r.PlacedAt.IsZero() {
		t.Error("rally record has no timestamp")
	}

	// Callers get copies; the session's own records stay intact.
	list[0].RegionID = "IN-XX"
	if got := s.RegionRallies("IN-KL")[0].RegionID; got != "IN-KL" {
		t.Fatalf("internal record mutated through the returned slice: %s", got)
	}

	if got := len(s.RegionRallies("IN-LA")); got != 0 {
		t.Fatalf("untouched region reports %d rallies", got)
	}
}

func TestRallyRejectedWhenPaused(t *testing.T) {
	s := newTestSession(t, func(tu *tuning.Tuning) {
		tu.Rally.SpecialChance = [2]float64{0, 0}
	})
	s.Pause()
	if err := s.PlaceRally(Player1, "IN-UP"); err != ErrGamePaused {
		t.Fatalf("got %v, want ErrGamePaused", err)
	}
	s.Resume()
	if err := s.PlaceRally(Player1, "IN-UP"); err != nil {
		t.Fatalf("after resume: %v", err)
	}
}
