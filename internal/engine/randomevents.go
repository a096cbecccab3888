// Random regional events: every even-numbered phase one region swings for
// or against a random player. A slow national-mood noise curve biases how
// hard the swings hit as the campaign wears on.
package engine

import "math"

var positiveEvents = []string{
	"Major infrastructure project announced",
	"New tech hub established",
	"Agricultural subsidy program launched",
	"Educational excellence award received",
	"Tourism boost from international recognition",
	"Industrial investment secured",
	"Healthcare facility modernization completed",
	"Sports victory brings national pride",
	"Cultural festival celebrates heritage",
	"Green energy project inaugurated",
}

var negativeEvents = []string{
	"Natural disaster causes widespread damage",
	"Economic downturn hits local industries",
	"Corruption scandal emerges",
	"Infrastructure project faces delays",
	"Agricultural crisis affects farmers",
	"Healthcare system overwhelmed",
	"Environmental concerns raised",
	"Educational funding cuts announced",
	"Industrial accident sparks safety concerns",
	"Religious tensions create unrest",
}

// maybeRandomEventLocked fires at most one event per even phase.
func (s *GameSession) maybeRandomEventLocked(phase int) {
	if !s.tune.RandomEvents.Enabled {
		return
	}
	if phase <= 1 || phase%2 != 0 {
		return
	}

	r := &s.catalog.Regions[s.rng.IntN(s.catalog.Len())]
	positive := s.rng.Chance(0.5)
	player := Player1
	if s.rng.Chance(0.5) {
		player = Player2
	}

	magnitude := float64(s.rng.IntRange(s.tune.RandomEvents.MinMagnitude, s.tune.RandomEvents.MaxMagnitude))
	// National mood drifts smoothly across phases and scales the swing
	// by up to ±25%.
	mood := s.mood.Eval2(float64(phase)*0.35, 0)
	magnitude = math.Round(magnitude * (1 + 0.25*mood))
	if magnitude < 1 {
		magnitude = 1
	}

	var description string
	delta := magnitude
	if positive {
		description = positiveEvents[s.rng.IntN(len(positiveEvents))]
	} else {
		description = negativeEvents[s.rng.IntN(len(negativeEvents))]
		delta = -magnitude
	}

	if err := s.store.ApplyBoost(r.ID, player, delta); err != nil {
		return
	}

	s.logActionLocked("event", "%s in %s (%+.0f for Player %d)", description, r.Name, delta, player)
	s.notify.randomEvent(r.ID, description, delta)
}
