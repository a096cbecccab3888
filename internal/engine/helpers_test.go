package engine

import (
	"testing"

	"github.com/talgya/electionsim/internal/regions"
	"github.com/talgya/electionsim/internal/tuning"
)

func testCatalog(t *testing.T) *regions.Catalog {
	t.Helper()
	cat, err := regions.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

// newTestSession builds a deterministic session. The debounce window is
// pushed far out so tests drive scans explicitly.
func newTestSession(t *testing.T, mutate func(*tuning.Tuning)) *GameSession {
	t.Helper()
	tune := tuning.Default()
	tune.ScanDebounceMs = 60000
	if mutate != nil {
		mutate(&tune)
	}
	return NewGameSession(testCatalog(t), Config{
		Player1Home: "Uttar Pradesh",
		Player2Home: "Gujarat",
		Seed:        7,
		Tuning:      tune,
	})
}
