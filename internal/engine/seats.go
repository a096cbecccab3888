// Seat projection: influence percentages become integer seat counts per
// region, summing nationally to the exact catalog total.
package engine

import "math"

// Projection is the national seat split.
type Projection struct {
	P1     int `json:"player1_seats"`
	P2     int `json:"player2_seats"`
	Others int `json:"others_seats"`
}

// Total returns the projected seat total.
func (p Projection) Total() int {
	return p.P1 + p.P2 + p.Others
}

// ProjectRegion converts one region's influence into seats. Rounding
// overflow is deducted from whichever player projects larger, so the three
// counts always sum to the seat weight with no negative entries.
func ProjectRegion(seatWeight int, t Tuple) (p1, p2, others int) {
	p1 = int(math.Round(float64(seatWeight) * t.P1 / 100))
	p2 = int(math.Round(float64(seatWeight) * t.P2 / 100))
	others = seatWeight - p1 - p2
	if others < 0 {
		excess := -others
		if p1 >= p2 {
			p1 -= excess
		} else {
			p2 -= excess
		}
		others = 0
	}
	return p1, p2, others
}

// ProjectSeats computes the current national projection.
func (s *GameSession) ProjectSeats() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectSeatsLocked()
}

func (s *GameSession) projectSeatsLocked() Projection {
	var proj Projection
	for i := range s.catalog.Regions {
		r := &s.catalog.Regions[i]
		t, ok := s.store.Get(r.ID)
		if !ok {
			proj.Others += r.SeatWeight
			continue
		}
		p1, p2, others := ProjectRegion(r.SeatWeight, t)
		proj.P1 += p1
		proj.P2 += p2
		proj.Others += others
	}
	return proj
}

// checkFinalVictoryLocked runs the one authoritative majority evaluation at
// the end of the last phase.
func (s *GameSession) checkFinalVictoryLocked() {
	proj := s.projectSeatsLocked()
	switch {
	case proj.P1 >= s.tune.MajoritySeats:
		s.outcome = OutcomePlayer1Majority
	case proj.P2 >= s.tune.MajoritySeats:
		s.outcome = OutcomePlayer2Majority
	default:
		s.outcome = OutcomeHungParliament
	}
	s.finalProjection = proj
	s.logActionLocked("phase", "Final result: P1 %d seats, P2 %d seats, others %d — %s",
		proj.P1, proj.P2, proj.Others, s.outcome)
	s.notify.gameOver(s.outcome, proj)
}
