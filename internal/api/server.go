// Package api provides the HTTP API for playing and observing a session.
// GET endpoints are public (read-only observation).
// Player action endpoints are POST and rate limited per IP.
// Admin endpoints require a bearer token.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/electionsim/internal/engine"
	"github.com/talgya/electionsim/internal/persistence"
	"github.com/talgya/electionsim/internal/policy"
	"github.com/talgya/electionsim/internal/regions"
)

// Server serves one game session over HTTP.
type Server struct {
	Session  *engine.GameSession
	Clock    *engine.Clock
	AI       *engine.AIController
	Catalog  *regions.Catalog
	DB       *persistence.DB
	Stream   *Hub
	Port     int
	AdminKey string // Bearer token for admin endpoints. Empty = admin disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Player actions are clicks; the limiter only guards scripted abuse.
	actionLimiter := NewActionLimiter(240, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can watch the race).
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/regions", s.handleRegions)
	mux.HandleFunc("/api/v1/region/", s.handleRegionDetail)
	mux.HandleFunc("/api/v1/groups", s.handleGroups)
	mux.HandleFunc("/api/v1/campaigns", s.handleCampaigns)
	mux.HandleFunc("/api/v1/projection", s.handleProjection)
	mux.HandleFunc("/api/v1/actions", s.handleActions)

	// Live event stream (websocket).
	mux.HandleFunc("/api/v1/events", s.Stream.HandleWS)

	// Player action endpoints (POST — the human plays Player 1).
	mux.HandleFunc("/api/v1/campaign", actionLimiter.Throttle(s.handleCampaignClick))
	mux.HandleFunc("/api/v1/rally", actionLimiter.Throttle(s.handleRally))
	mux.HandleFunc("/api/v1/spend", actionLimiter.Throttle(s.handleSpend))
	mux.HandleFunc("/api/v1/pause", actionLimiter.Throttle(s.handlePause))
	mux.HandleFunc("/api/v1/resume", actionLimiter.Throttle(s.handleResume))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/difficulty", s.adminOnly(s.handleDifficulty))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both GET and POST).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no ELECTIONSIM_ADMIN_KEY set)", http.StatusForbidden)
				return
			}

			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		next(w, r)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.Session.Snapshot()

	writeJSON(w, map[string]any{
		"phase":           st.Phase,
		"total_phases":    st.TotalPhases,
		"phase_remaining": st.PhaseRemaining,
		"phase_clock":     engine.PhaseClock(st.PhaseRemaining),
		"paused":          st.Paused,
		"over":            st.Over,
		"outcome":         st.Outcome,
		"projection":      st.Projection,
		"players":         st.Players,
		"speed":           s.Clock.Speed,
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Snapshot().Regions)
}

// handleRegionDetail serves GET /api/v1/region/:id, initializing the region
// on first access.
func (s *Server) handleRegionDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing region id", http.StatusBadRequest)
		return
	}
	id := parts[4]

	region := s.Catalog.Get(id)
	if region == nil {
		http.Error(w, "region not found", http.StatusNotFound)
		return
	}

	t, err := s.Session.InitializeRegion(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	p1, p2, others := engine.ProjectRegion(region.SeatWeight, t)
	writeJSON(w, map[string]any{
		"id":             region.ID,
		"name":           region.Name,
		"seats":          region.SeatWeight,
		"tags":           region.Tags,
		"influence":      t,
		"rallies":        s.Session.RallyCount(id),
		"active_rallies": s.Session.RegionRallies(id),
		"projection": map[string]int{
			"player1": p1,
			"player2": p2,
			"others":  others,
		},
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Snapshot().Groups)
}

func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	st := s.Session.Snapshot()

	type campaignView struct {
		Category   string `json:"category"`
		Index      int    `json:"index"`
		Name       string `json:"name"`
		Tier       int    `json:"tier"`
		P1Progress int    `json:"player1_progress"`
		P2Progress int    `json:"player2_progress"`
		Completed  bool   `json:"completed"`
	}

	var result []campaignView
	for _, c := range st.Campaigns {
		p, err := policy.Get(c.Key.Category, c.Key.Index)
		if err != nil {
			continue
		}
		result = append(result, campaignView{
			Category:   string(c.Key.Category),
			Index:      c.Key.Index,
			Name:       p.Name,
			Tier:       p.Tier,
			P1Progress: c.P1Progress,
			P2Progress: c.P2Progress,
			Completed:  c.Completed,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.ProjectSeats())
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	writeJSON(w, s.Session.RecentEvents(limit))
}

func (s *Server) handleCampaignClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Category string `json:"category"`
		Index    int    `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	err := s.Session.ContributeCampaign(policy.Category(req.Category), req.Index, engine.Player1)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "funds": s.Session.Funds(engine.Player1)})
}

func (s *Server) handleRally(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		RegionID string `json:"region_id"`
		Special  bool   `json:"special"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var err error
	if req.Special {
		err = s.Session.UseSpecialRally(engine.Player1)
	} else {
		err = s.Session.PlaceRally(engine.Player1, req.RegionID)
	}
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "tokens": s.Session.Tokens(engine.Player1)})
}

func (s *Server) handleSpend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		RegionID string `json:"region_id"`
		Burst    bool   `json:"burst"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var err error
	if req.Burst {
		err = s.Session.BurstSpendOnRegion(engine.Player1, req.RegionID)
	} else {
		err = s.Session.SpendOnRegion(engine.Player1, req.RegionID)
	}
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "funds": s.Session.Funds(engine.Player1)})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Session.Pause()
	writeJSON(w, map[string]any{"paused": true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Session.Resume()
	writeJSON(w, map[string]any{"paused": false})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 100 {
			http.Error(w, "speed must be 0-100", http.StatusBadRequest)
			return
		}
		s.Clock.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Clock.Speed})
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Difficulty string `json:"difficulty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		switch d := engine.Difficulty(req.Difficulty); d {
		case engine.DifficultyEasy, engine.DifficultyMedium, engine.DifficultyHard:
			s.AI.SetDifficulty(d)
			slog.Info("difficulty changed", "difficulty", d)
		default:
			http.Error(w, "difficulty must be easy, medium or hard", http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	st := s.Session.Snapshot()
	if err := s.DB.SaveGameState(st, s.Session.RecentEvents(0)); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"phase":   st.Phase,
		"message": "snapshot saved",
	})
}

// writeActionError maps engine errors to HTTP status codes.
func writeActionError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, engine.ErrRegionNotFound), errors.Is(err, engine.ErrUnknownCampaign):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrGameOver), errors.Is(err, engine.ErrGamePaused):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrNoTokens),
		errors.Is(err, engine.ErrClickCapReached),
		errors.Is(err, engine.ErrRallyCapReached),
		errors.Is(err, engine.ErrCampaignComplete):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
