// GameSession is the aggregate root of one running election. All mutable
// state hangs off the session and every operation goes through its mutex;
// nothing in this package touches package-level state.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/electionsim/internal/entropy"
	"github.com/talgya/electionsim/internal/regions"
	"github.com/talgya/electionsim/internal/tuning"
)

// Player is one contender's mutable resources.
type Player struct {
	ID         PlayerID  `json:"id"`
	Funds      int       `json:"funds"`
	HomeRegion string    `json:"home_region"`
	Tokens     RallyPool `json:"tokens"`
}

// Config sets up a new session.
type Config struct {
	Player1Home string
	Player2Home string
	Seed        int64 // 0 means seed from the OS
	Tuning      tuning.Tuning
}

// GameSession holds the complete state of one election.
type GameSession struct {
	mu sync.Mutex

	catalog *regions.Catalog
	tune    tuning.Tuning
	rng     *entropy.Source
	mood    opensimplex.Noise

	store   *Store
	home    *HomeBonus
	groups  *GroupIndex
	board   *CampaignBoard
	players map[PlayerID]*Player

	rallies map[string][]Rally          // regionID -> active rallies this phase
	spent   map[string]map[PlayerID]int // regionID -> funds sunk per player

	completedThisPhase []completion

	phase           int
	phaseRemaining  int // seconds left in the current phase
	paused          bool
	over            bool
	outcome         Outcome
	finalProjection Projection

	scanTimer   *time.Timer
	scanRunning bool
	scanQueued  bool

	notify notifier
	events []Event
}

// NewGameSession builds a fully initialized session: starting influence
// dealt, home bonuses applied, first rally tokens in hand and the opening
// domination scan already paid out.
func NewGameSession(catalog *regions.Catalog, cfg Config) *GameSession {
	tune := cfg.Tuning
	if tune.TotalPhases == 0 {
		tune = tuning.Default()
	}

	s := &GameSession{
		catalog: catalog,
		tune:    tune,
		rng:     entropy.New(cfg.Seed),
		mood:    opensimplex.New(cfg.Seed),
		store:   NewStore(),
		home:    NewHomeBonus(cfg.Player1Home, cfg.Player2Home, tune.HomeBonus, tune.HomeCostDiscount),
		groups:  NewGroupIndex(catalog),
		board:   NewCampaignBoard(),
		players: map[PlayerID]*Player{
			Player1: {ID: Player1, Funds: tune.StartingFunds, HomeRegion: cfg.Player1Home},
			Player2: {ID: Player2, Funds: tune.StartingFunds, HomeRegion: cfg.Player2Home},
		},
		rallies:        make(map[string][]Rally),
		spent:          make(map[string]map[PlayerID]int),
		phase:          1,
		phaseRemaining: tune.PhaseDurationSeconds,
	}
	for i := range catalog.Regions {
		s.spent[catalog.Regions[i].ID] = make(map[PlayerID]int)
	}
	s.store.onChange = func(regionID string, t Tuple) {
		s.notify.influenceChanged(regionID, t)
		s.requestGroupScanLocked()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initializeInfluenceLocked()
	s.replenishTokensLocked()
	s.scanGroupsLocked(true)
	s.logActionLocked("phase", "Phase 1 of %d started", tune.TotalPhases)
	return s
}

// Subscribe registers an observer. Not safe to call concurrently with a
// running session; subscribe before the clock starts.
func (s *GameSession) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify.add(o)
}

// TickSecond advances the session clock by one second.
func (s *GameSession) TickSecond() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.paused {
		return
	}
	s.phaseRemaining--
	if s.phaseRemaining > 0 {
		return
	}
	if s.phase >= s.tune.TotalPhases {
		s.finishGameLocked()
		return
	}
	s.advancePhaseLocked()
}

// advancePhaseLocked rolls the session into the next phase: funds accrue,
// phase bonuses pay out, campaign click caps and rally tokens reset, the
// domination scan reruns and a random event may fire.
func (s *GameSession) advancePhaseLocked() {
	s.phase++
	s.phaseRemaining = s.tune.PhaseDurationSeconds

	for _, p := range []PlayerID{Player1, Player2} {
		s.players[p].Funds += s.tune.PhaseFunds
	}
	s.awardPhaseBonusesLocked()
	s.resetPhaseClicksLocked()
	s.rallies = make(map[string][]Rally)
	s.replenishTokensLocked()

	s.logActionLocked("phase", "Phase %d of %d started", s.phase, s.tune.TotalPhases)
	// Boundary scans repeat the payout for groups still held.
	s.scanGroupsLocked(true)
	s.maybeRandomEventLocked(s.phase)
	s.notify.phaseChanged(s.phase, s.tune.TotalPhases)
}

// finishGameLocked ends the session and runs the single authoritative
// majority evaluation.
func (s *GameSession) finishGameLocked() {
	s.over = true
	if s.scanTimer != nil {
		s.scanTimer.Stop()
		s.scanTimer = nil
	}
	s.awardPhaseBonusesLocked()
	s.checkFinalVictoryLocked()
}

// Pause freezes the clock and rejects player actions until Resume.
func (s *GameSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.paused {
		return
	}
	s.paused = true
	s.logActionLocked("phase", "Game paused")
}

// Resume unfreezes a paused session.
func (s *GameSession) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || !s.paused {
		return
	}
	s.paused = false
	s.logActionLocked("phase", "Game resumed")
}

// Paused reports whether the session is paused.
func (s *GameSession) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Over reports whether the session has ended, and with what outcome.
func (s *GameSession) Over() (bool, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over, s.outcome
}

// Phase returns the current phase number and seconds remaining in it.
func (s *GameSession) Phase() (phase, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.phaseRemaining
}

// Funds returns a player's current funds.
func (s *GameSession) Funds(p PlayerID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[p].Funds
}

// Tokens returns a player's current rally token pool.
func (s *GameSession) Tokens(p PlayerID) RallyPool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[p].Tokens
}

// Influence returns the current tuple for a region.
func (s *GameSession) Influence(regionID string) (Tuple, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(regionID)
}

// RecentEvents returns up to n most recent action log entries, newest last.
func (s *GameSession) RecentEvents(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, n)
	copy(out, s.events[len(s.events)-n:])
	return out
}

// logActionLocked appends to the action log and mirrors to slog.
func (s *GameSession) logActionLocked(category, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.events = append(s.events, Event{Phase: s.phase, Description: msg, Category: category})
	if len(s.events) > 1000 {
		s.events = s.events[len(s.events)-1000:]
	}
	slog.Info(msg, "category", category, "phase", s.phase)
}

// regionName resolves an id to its display name, falling back to the id.
func (s *GameSession) regionName(regionID string) string {
	if r := s.catalog.Get(regionID); r != nil {
		return r.Name
	}
	return regionID
}

// RegionState is one region's full public view.
type RegionState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SeatWeight int    `json:"seats"`
	Influence  Tuple  `json:"influence"`
	Rallies    int    `json:"rallies"`
	P1Spent    int    `json:"player1_spent"`
	P2Spent    int    `json:"player2_spent"`
}

// GroupState is one demographic group's domination status.
type GroupState struct {
	Tag    string   `json:"tag"`
	Name   string   `json:"name"`
	Seats  int      `json:"seats"`
	Holder PlayerID `json:"holder"`
}

// State is a consistent snapshot of the whole session, the unit the API
// serves and the persistence layer saves.
type State struct {
	Phase          int           `json:"phase"`
	PhaseRemaining int           `json:"phase_remaining"`
	TotalPhases    int           `json:"total_phases"`
	Paused         bool          `json:"paused"`
	Over           bool          `json:"over"`
	Outcome        Outcome       `json:"outcome,omitempty"`
	Projection     Projection    `json:"projection"`
	Players        []Player      `json:"players"`
	Regions        []RegionState `json:"regions"`
	Groups         []GroupState  `json:"groups"`
	Campaigns      []Campaign    `json:"campaigns"`
}

// Snapshot copies the full session state under one lock acquisition.
func (s *GameSession) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Phase:          s.phase,
		PhaseRemaining: s.phaseRemaining,
		TotalPhases:    s.tune.TotalPhases,
		Paused:         s.paused,
		Over:           s.over,
		Outcome:        s.outcome,
		Players:        []Player{*s.players[Player1], *s.players[Player2]},
	}
	if s.over {
		st.Projection = s.finalProjection
	} else {
		st.Projection = s.projectSeatsLocked()
	}

	st.Regions = make([]RegionState, 0, s.catalog.Len())
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		t, _ := s.store.Get(r.ID)
		st.Regions = append(st.Regions, RegionState{
			ID:         r.ID,
			Name:       r.Name,
			SeatWeight: r.SeatWeight,
			Influence:  t,
			Rallies:    len(s.rallies[r.ID]),
			P1Spent:    s.spent[r.ID][Player1],
			P2Spent:    s.spent[r.ID][Player2],
		})
	}

	for _, tag := range s.groups.Tags() {
		st.Groups = append(st.Groups, GroupState{
			Tag:    tag,
			Name:   regions.GroupName(tag),
			Seats:  s.groups.Seats(tag),
			Holder: s.groups.Last(tag),
		})
	}

	for _, c := range s.board.All() {
		st.Campaigns = append(st.Campaigns, *c)
	}
	return st
}

// Restore overwrites clock, funds and influence from a saved state. Used by
// the persistence layer when resuming a saved game; the board and rally
// pools restart fresh for the restored phase.
func (s *GameSession) Restore(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = st.Phase
	s.phaseRemaining = st.PhaseRemaining
	if s.phaseRemaining <= 0 {
		s.phaseRemaining = s.tune.PhaseDurationSeconds
	}
	for _, p := range st.Players {
		if pl, ok := s.players[p.ID]; ok {
			pl.Funds = p.Funds
		}
	}
	for _, r := range st.Regions {
		if s.catalog.Get(r.ID) == nil {
			continue
		}
		s.store.SetDirect(r.ID, r.Influence)
		s.spent[r.ID][Player1] = r.P1Spent
		s.spent[r.ID][Player2] = r.P2Spent
	}
	for _, c := range st.Campaigns {
		if cur := s.board.Get(c.Key); cur != nil {
			cur.P1Progress = c.P1Progress
			cur.P2Progress = c.P2Progress
			cur.Completed = c.Completed
		}
	}
	s.logActionLocked("phase", "Saved game restored at phase %d", s.phase)
}
