// Command electionsim runs a two-player territorial election against the
// computer: a human as Player 1 over the HTTP API, an AI as Player 2.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/electionsim/internal/api"
	"github.com/talgya/electionsim/internal/engine"
	"github.com/talgya/electionsim/internal/entropy"
	"github.com/talgya/electionsim/internal/persistence"
	"github.com/talgya/electionsim/internal/regions"
	"github.com/talgya/electionsim/internal/tuning"
)

func main() {
	var (
		apiPort    = flag.Int("port", 8080, "HTTP API port")
		dbPath     = flag.String("db", "data/electionsim.db", "SQLite database path")
		tuningPath = flag.String("tuning", "", "optional tuning.yaml overriding the shipped balance")
		difficulty = flag.String("difficulty", "medium", "AI difficulty: easy, medium, hard")
		p1Home     = flag.String("p1-home", "Uttar Pradesh", "Player 1 home region")
		p2Home     = flag.String("p2-home", "Gujarat", "Player 2 (AI) home region")
		seed       = flag.Int64("seed", 0, "RNG seed (0 = random)")
		resume     = flag.Bool("resume", false, "resume the saved game if one exists")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// ── Tuning ────────────────────────────────────────────────────────
	tune := tuning.Default()
	if *tuningPath != "" {
		var err error
		tune, err = tuning.Load(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
		slog.Info("tuning loaded", "path", *tuningPath)
	}

	// ── Region catalog ────────────────────────────────────────────────
	catalog, err := regions.Load()
	if err != nil {
		slog.Error("failed to load region catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("region catalog loaded", "regions", catalog.Len(), "total_seats", catalog.TotalSeats())

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Session ───────────────────────────────────────────────────────
	session := engine.NewGameSession(catalog, engine.Config{
		Player1Home: *p1Home,
		Player2Home: *p2Home,
		Seed:        *seed,
		Tuning:      tune,
	})

	if *resume {
		saved, err := db.LoadGameState()
		switch {
		case err == nil && !saved.Over:
			session.Restore(saved)
			slog.Info("saved game restored", "phase", saved.Phase)
		case err == nil:
			slog.Info("saved game already finished, starting fresh", "outcome", saved.Outcome)
		case err != persistence.ErrNoSavedGame:
			slog.Error("failed to load saved game", "error", err)
			os.Exit(1)
		}
	}

	// ── AI opponent ───────────────────────────────────────────────────
	diff := engine.Difficulty(*difficulty)
	switch diff {
	case engine.DifficultyEasy, engine.DifficultyMedium, engine.DifficultyHard:
	default:
		slog.Error("invalid difficulty", "difficulty", *difficulty)
		os.Exit(1)
	}
	ai := engine.NewAIController(session, diff, entropy.New(*seed))

	// ── Event stream ──────────────────────────────────────────────────
	stream := api.NewHub()
	session.Subscribe(stream)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("ELECTIONSIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("ELECTIONSIM_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	clock := engine.NewClock(session)

	apiServer := &api.Server{
		Session:  session,
		Clock:    clock,
		AI:       ai,
		Catalog:  catalog,
		DB:       db,
		Stream:   stream,
		Port:     *apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		ai.Stop()
		clock.Stop()
	}()

	phase, _ := session.Phase()
	fmt.Printf("\nElection underway: %d regions, %d seats, majority at %d.\n",
		catalog.Len(), catalog.TotalSeats(), tune.MajoritySeats)
	fmt.Printf("API: http://localhost:%d/api/v1/state\n", *apiPort)
	fmt.Printf("Phase %d of %d, AI difficulty %s. (Ctrl+C to stop)\n", phase, tune.TotalPhases, diff)

	ai.Start()
	clock.Run()
	ai.Stop()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveGameState(session.Snapshot(), session.RecentEvents(0)); err != nil {
		slog.Error("final save failed", "error", err)
	}

	if over, outcome := session.Over(); over {
		fmt.Printf("Game over: %s\n", outcome)
	} else {
		fmt.Println("Game stopped. State saved.")
	}
}
