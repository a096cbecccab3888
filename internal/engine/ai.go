// Computer opponent. The controller runs on its own ticker, takes the
// session lock once per decision, and plays Player 2 with one of three
// strategy profiles.
package engine

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/talgya/electionsim/internal/entropy"
	"github.com/talgya/electionsim/internal/regions"
)

// Difficulty selects the AI strategy profile.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AIController drives the computer player against a session.
type AIController struct {
	session    *GameSession
	difficulty Difficulty
	player     PlayerID
	rng        *entropy.Source
	focus      []string // demographic group tags this AI concentrates on

	runMu   sync.Mutex // guards stop/enabled across Start/Stop callers
	stop    chan struct{}
	enabled bool
}

// NewAIController builds a controller for Player 2. The controller is idle
// until Start is called.
func NewAIController(session *GameSession, difficulty Difficulty, rng *entropy.Source) *AIController {
	c := &AIController{
		session:    session,
		difficulty: difficulty,
		player:     Player2,
		rng:        rng,
	}
	c.pickFocusGroups()
	return c
}

// pickFocusGroups selects 3-4 demographic groups the AI will favor when
// spending. Union territories are too small to anchor a strategy.
func (c *AIController) pickFocusGroups() {
	tags := make([]string, 0, len(regions.GroupTags()))
	for _, t := range regions.GroupTags() {
		if t == "UnionTerritory" {
			continue
		}
		tags = append(tags, t)
	}
	for i := len(tags) - 1; i > 0; i-- {
		j := c.rng.IntN(i + 1)
		tags[i], tags[j] = tags[j], tags[i]
	}
	n := 3 + c.rng.IntN(2)
	c.focus = tags[:n]
}

func (c *AIController) interval() time.Duration {
	if c.difficulty == DifficultyHard {
		return time.Duration(c.session.tune.AIIntervalHardMs) * time.Millisecond
	}
	return time.Duration(c.session.tune.AIIntervalMs) * time.Millisecond
}

// Start launches the decision loop. Calling Start on a running controller
// is a no-op.
func (c *AIController) Start() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	c.startLocked()
}

func (c *AIController) startLocked() {
	if c.enabled {
		return
	}
	c.enabled = true
	c.stop = make(chan struct{})
	go c.run(c.stop, c.interval())
	slog.Info("ai controller started", "difficulty", c.difficulty, "interval", c.interval())
}

// Stop halts the decision loop. Safe to call from any goroutine, repeatedly.
func (c *AIController) Stop() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	c.stopLocked()
}

func (c *AIController) stopLocked() {
	if !c.enabled {
		return
	}
	c.enabled = false
	close(c.stop)
}

// SetDifficulty switches profile mid-game: new focus groups, new cadence.
func (c *AIController) SetDifficulty(d Difficulty) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	restart := c.enabled
	if restart {
		c.stopLocked()
	}
	c.difficulty = d
	c.pickFocusGroups()
	if restart {
		c.startLocked()
	}
}

func (c *AIController) run(stop chan struct{}, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick takes one decision. All reads and the chosen action happen under a
// single acquisition of the session lock so the AI acts on a consistent
// snapshot.
func (c *AIController) tick() {
	s := c.session
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over || s.paused {
		return
	}

	switch c.difficulty {
	case DifficultyHard:
		c.tickHardLocked()
	case DifficultyMedium:
		c.tickMediumLocked()
	default:
		c.tickEasyLocked()
	}
}

// --- easy -----------------------------------------------------------------

// tickEasyLocked plays almost at random: an occasional rally, otherwise an
// even split between spending and campaigning, with a pull toward the home
// state. A branch that cannot act drops down to a plain region spend.
func (c *AIController) tickEasyLocked() {
	roll := c.rng.Float()
	switch {
	case roll < 0.15:
		if !c.rallyRandomLocked() {
			c.spendRandomLocked()
		}
	case roll < 0.575:
		c.spendRandomLocked()
	default:
		if !c.randomCampaignClickLocked() {
			c.spendRandomLocked()
		}
	}
}

func (c *AIController) randomCampaignClickLocked() bool {
	all := c.session.board.All()
	open := all[:0:0]
	for _, cp := range all {
		if !cp.Completed {
			open = append(open, cp)
		}
	}
	if len(open) == 0 {
		return false
	}
	cp := open[c.rng.IntN(len(open))]
	return c.session.contributeCampaignLocked(cp.Key, c.player) == nil
}

func (c *AIController) rallyRandomLocked() bool {
	id := c.randomTargetRegionLocked()
	if id == "" {
		return false
	}
	return c.rallyOrSpecialLocked(id)
}

func (c *AIController) spendRandomLocked() bool {
	id := c.randomTargetRegionLocked()
	if id == "" {
		return false
	}
	return c.session.spendOnRegionLocked(c.player, id, 1) == nil
}

// randomTargetRegionLocked picks a random region, favoring home 40% of the
// time when the AI has one.
func (c *AIController) randomTargetRegionLocked() string {
	s := c.session
	if home := s.home.HomeRegion(c.player); home != "" && c.rng.Chance(0.4) {
		if r := s.catalog.ByName(home); r != nil {
			return r.ID
		}
	}
	if s.catalog.Len() == 0 {
		return ""
	}
	return s.catalog.Regions[c.rng.IntN(s.catalog.Len())].ID
}

// rallyOrSpecialLocked places a normal rally, falling back to a special
// token when only specials remain. Reports whether a token was played so
// the caller can pick a cheaper action when the pool is empty.
func (c *AIController) rallyOrSpecialLocked(regionID string) bool {
	pool := c.session.players[c.player].Tokens
	if pool.Normal > 0 {
		return c.session.placeRallyLocked(c.player, regionID) == nil
	}
	if pool.Special > 0 {
		return c.session.useSpecialRallyLocked(c.player) == nil
	}
	return false
}

// --- medium ---------------------------------------------------------------

// tickMediumLocked prefers finishing campaigns it leads; when that branch
// declines or fails, a fresh roll splits the rest 30/70 between rallying a
// contested region and spending inside the focus groups. Failed rallies
// drop down to the spend.
func (c *AIController) tickMediumLocked() {
	if c.rng.Chance(0.60) {
		if key, ok := c.bestCampaignLocked(); ok {
			if c.session.contributeCampaignLocked(key, c.player) == nil {
				return
			}
		}
	}
	if c.rng.Chance(0.30) {
		if id := c.contestedRegionLocked(); id != "" && c.rallyOrSpecialLocked(id) {
			return
		}
	}
	c.spendFocusLocked()
}

// bestCampaignLocked scores incomplete campaigns and returns the highest.
// Leading and nearly-finished campaigns score high; campaigns the AI has
// no stake in score low.
func (c *AIController) bestCampaignLocked() (CampaignKey, bool) {
	var best *Campaign
	bestScore := -1.0
	for _, cp := range c.session.board.All() {
		if cp.Completed {
			continue
		}
		lead := cp.P2Progress - cp.P1Progress
		if lead < 0 {
			lead = 0
		}
		score := float64(lead)*2 + float64(cp.P2Progress)*3
		remaining := 100 - cp.Combined()
		switch {
		case remaining < 20:
			score += 100
		case remaining < 40:
			score += 50
		}
		if score > bestScore {
			bestScore = score
			best = cp
		}
	}
	if best == nil || bestScore <= 0 {
		return CampaignKey{}, false
	}
	return best.Key, true
}

// contestedRegionLocked returns a region from the five most valuable
// battlegrounds, weighted toward big close seats in the AI's focus groups.
func (c *AIController) contestedRegionLocked() string {
	s := c.session
	type scored struct {
		id     string
		weight float64
	}
	var candidates []scored
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		t, ok := s.store.Get(r.ID)
		if !ok {
			continue
		}
		if len(s.rallies[r.ID]) >= s.tune.Rally.RegionCap {
			continue
		}
		// Competitiveness: distance of the AI share from an even split.
		gap := t.P2 - 50
		if gap < 0 {
			gap = -gap
		}
		w := float64(r.SeatWeight)*2 + (50 - gap)
		if c.inFocus(r) {
			w += 25
		}
		candidates = append(candidates, scored{r.ID, w})
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].weight > candidates[j].weight })
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	weights := make([]float64, len(candidates))
	for i, cand := range candidates {
		weights[i] = cand.weight
	}
	idx := c.rng.WeightedIndex(weights)
	if idx < 0 {
		return ""
	}
	return candidates[idx].id
}

// spendFocusLocked spends in the AI's focus groups, seat-weighted, falling
// back to a fully random region when the focus pool is too thin or the
// picked seat is unaffordable.
func (c *AIController) spendFocusLocked() bool {
	s := c.session
	var pool []*regions.Region
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		if c.inFocus(r) {
			pool = append(pool, r)
		}
	}
	if len(pool) <= 3 {
		return c.spendRandomLocked()
	}
	weights := make([]float64, len(pool))
	for i, r := range pool {
		weights[i] = float64(r.SeatWeight)
	}
	idx := c.rng.WeightedIndex(weights)
	if idx < 0 {
		return false
	}
	if s.spendOnRegionLocked(c.player, pool[idx].ID, 1) != nil {
		// A cheaper random seat may still be within budget.
		return c.spendRandomLocked()
	}
	return true
}

func (c *AIController) inFocus(r *regions.Region) bool {
	for _, tag := range c.focus {
		if r.HasTag(tag) {
			return true
		}
	}
	return false
}

// --- hard -----------------------------------------------------------------

// tickHardLocked layers tactics: sometimes a pre-emptive rally where the
// human is building up, usually pushes its own leading campaign, sometimes
// additionally contests the human's best campaign, and otherwise splits
// between strategic rallies and focus spending. Any branch that cannot act
// falls through to the next one.
func (c *AIController) tickHardLocked() {
	if c.rng.Chance(0.25) {
		if id := c.humanThreatRegionLocked(); id != "" && c.rallyOrSpecialLocked(id) {
			return
		}
	}

	acted := false
	if c.rng.Chance(0.50) {
		if key, ok := c.bestCampaignLocked(); ok &&
			c.session.contributeCampaignLocked(key, c.player) == nil {
			acted = true
		}
	}
	if c.rng.Chance(0.25) {
		if key, ok := c.catchUpCampaignLocked(); ok &&
			c.session.contributeCampaignLocked(key, c.player) == nil {
			acted = true
		}
	}
	if acted {
		return
	}

	if c.rng.Chance(0.55) {
		if id := c.strategicRallyRegionLocked(); id != "" && c.rallyOrSpecialLocked(id) {
			return
		}
	}
	c.spendFocusLocked()
}

// humanThreatRegionLocked finds where the human is strongest but not yet
// dominant, to rally against before the region tips.
func (c *AIController) humanThreatRegionLocked() string {
	s := c.session
	bestID := ""
	bestShare := 0.0
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		t, ok := s.store.Get(r.ID)
		if !ok {
			continue
		}
		if len(s.rallies[r.ID]) >= s.tune.Rally.RegionCap {
			continue
		}
		if t.P1 >= 35 && t.P1 < 50 && t.P1 > bestShare {
			bestShare = t.P1
			bestID = r.ID
		}
	}
	return bestID
}

// catchUpCampaignLocked scores campaigns the human leads, preferring ones
// nearly complete and still contestable.
func (c *AIController) catchUpCampaignLocked() (CampaignKey, bool) {
	var best *Campaign
	bestScore := -1.0
	for _, cp := range c.session.board.All() {
		if cp.Completed || cp.P1Progress <= cp.P2Progress {
			continue
		}
		remaining := 100 - cp.Combined()
		var score float64
		switch {
		case remaining < 20:
			score += 100
		case remaining < 40:
			score += 50
		default:
			score += 10
		}
		deficit := cp.P1Progress - cp.P2Progress
		switch {
		case deficit <= 10:
			score += 50
		case deficit <= 25:
			score += 25
		}
		if cp.P1Progress > 40 {
			score += 30
		}
		if score > bestScore {
			bestScore = score
			best = cp
		}
	}
	if best == nil {
		return CampaignKey{}, false
	}
	return best.Key, true
}

// strategicRallyRegionLocked weights battlegrounds toward seats the AI is
// just short of a majority in, plus seats where it trails badly.
func (c *AIController) strategicRallyRegionLocked() string {
	s := c.session
	var ids []string
	var weights []float64
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		t, ok := s.store.Get(r.ID)
		if !ok {
			continue
		}
		if len(s.rallies[r.ID]) >= s.tune.Rally.RegionCap {
			continue
		}
		w := float64(r.SeatWeight)
		if t.P2 >= 45 && t.P2 < 50 {
			w += 40 // one rally from tipping
		}
		if t.P2 < 15 {
			w += 20 // beachhead in hostile territory
		}
		ids = append(ids, r.ID)
		weights = append(weights, w)
	}
	idx := c.rng.WeightedIndex(weights)
	if idx < 0 {
		return ""
	}
	return ids[idx]
}
