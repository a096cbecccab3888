// Region groups and the domination scanner. A group is dominated when one
// player holds a rounded share of at least 50 in every member region.
// Scans are debounced and run one at a time; a request arriving mid-scan is
// queued as a single trailing re-run.
package engine

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/talgya/electionsim/internal/regions"
)

// GroupIndex is the static tag → member-regions index plus the last known
// domination status per group, kept for change detection.
type GroupIndex struct {
	members map[string][]string
	seats   map[string]int
	last    map[string]PlayerID
}

// NewGroupIndex builds the index from the region catalog.
func NewGroupIndex(cat *regions.Catalog) *GroupIndex {
	g := &GroupIndex{
		members: cat.GroupRegions(),
		seats:   make(map[string]int),
		last:    make(map[string]PlayerID),
	}
	for tag := range g.members {
		g.seats[tag] = cat.GroupSeats(tag)
	}
	return g
}

// GroupsOf returns the tags of every group containing the region.
func (g *GroupIndex) GroupsOf(regionID string) []string {
	var out []string
	for tag, ids := range g.members {
		for _, id := range ids {
			if id == regionID {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

// Members returns the region ids in a group.
func (g *GroupIndex) Members(tag string) []string {
	return g.members[tag]
}

// Seats returns the total seat weight of a group.
func (g *GroupIndex) Seats(tag string) int {
	return g.seats[tag]
}

// Tags returns every group tag.
func (g *GroupIndex) Tags() []string {
	out := make([]string, 0, len(g.members))
	for tag := range g.members {
		out = append(out, tag)
	}
	return out
}

// IsDominated returns the player holding every member region at a rounded
// share of 50 or more, or NoPlayer. An empty group is never dominated.
// Player 1 is checked first, matching the order domination was always
// evaluated in.
func (g *GroupIndex) IsDominated(tag string, store *Store) PlayerID {
	ids := g.members[tag]
	if len(ids) == 0 {
		return NoPlayer
	}
	for _, p := range []PlayerID{Player1, Player2} {
		all := true
		for _, id := range ids {
			t, ok := store.Get(id)
			if !ok || t.RoundedShare(p) < 50 {
				all = false
				break
			}
		}
		if all {
			return p
		}
	}
	return NoPlayer
}

// Last returns the last scanned domination status for a group.
func (g *GroupIndex) Last(tag string) PlayerID {
	return g.last[tag]
}

// requestGroupScan schedules a debounced scan. Repeated requests inside the
// debounce window collapse into one run. Caller must hold s.mu.
func (s *GameSession) requestGroupScanLocked() {
	if s.scanTimer != nil || s.over {
		return
	}
	delay := time.Duration(s.tune.ScanDebounceMs) * time.Millisecond
	s.scanTimer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		s.scanTimer = nil
		if s.scanRunning {
			// A synchronous scan is in flight; queue one trailing re-run.
			s.scanQueued = true
			s.mu.Unlock()
			return
		}
		s.scanGroupsLocked(false)
		queued := s.scanQueued
		s.scanQueued = false
		s.mu.Unlock()
		if queued {
			s.mu.Lock()
			s.requestGroupScanLocked()
			s.mu.Unlock()
		}
	})
}

// scanGroupsLocked recomputes every group's domination status. Status
// changes pay the domination bonus once and notify observers; a group that
// stays dominated is paid again only on a round-boundary scan.
func (s *GameSession) scanGroupsLocked(roundBoundary bool) {
	s.scanRunning = true
	defer func() { s.scanRunning = false }()

	for _, tag := range s.groups.Tags() {
		status := s.groups.IsDominated(tag, s.store)
		prev := s.groups.last[tag]
		if status != prev {
			s.groups.last[tag] = status
			if status != NoPlayer {
				s.awardDominationBonusLocked(tag, status)
			}
			s.notify.dominationChanged(regions.GroupName(tag), status)
		} else if status != NoPlayer && roundBoundary {
			s.awardDominationBonusLocked(tag, status)
		}
	}
}

// awardDominationBonusLocked credits the group bonus: half the group's seat
// weight, rounded. Zero-seat groups pay nothing.
func (s *GameSession) awardDominationBonusLocked(tag string, p PlayerID) {
	seats := s.groups.Seats(tag)
	if seats == 0 {
		return
	}
	bonus := int(math.Round(s.tune.GroupBonusRatio * float64(seats)))
	if bonus <= 0 {
		return
	}
	s.players[p].Funds += bonus
	s.logActionLocked("bonus", "Player %d received %sM for dominating %s (%d seats)",
		p, humanize.Comma(int64(bonus)), regions.GroupName(tag), seats)
}
