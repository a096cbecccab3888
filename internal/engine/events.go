// Observer interface between the simulation core and presentation layers.
// Callbacks are fire-and-forget: subscribers must not block and must not
// call back into the session from inside a callback.
package engine

import "github.com/talgya/electionsim/internal/policy"

// PlayerID identifies one of the two contenders.
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Outcome is the terminal result of a session.
type Outcome string

const (
	OutcomePlayer1Majority Outcome = "player1_majority"
	OutcomePlayer2Majority Outcome = "player2_majority"
	OutcomeHungParliament  Outcome = "hung_parliament"
)

// EffectSummary aggregates a policy completion's nationwide impact.
type EffectSummary struct {
	RegionsAffected int `json:"regions_affected"`
	TotalPositive   int `json:"total_positive"`
	TotalNegative   int `json:"total_negative"`
}

// Observer receives simulation notifications.
type Observer interface {
	InfluenceChanged(regionID string, t Tuple)
	DominationChanged(group string, holder PlayerID)
	CampaignCompleted(cat policy.Category, index int, dominant PlayerID, summary EffectSummary)
	RallyPlaced(regionID string, player PlayerID, special bool)
	PhaseChanged(phase, totalPhases int)
	RandomEventOccurred(regionID, description string, delta float64)
	GameOver(outcome Outcome, proj Projection)
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	OnInfluenceChanged  func(regionID string, t Tuple)
	OnDominationChanged func(group string, holder PlayerID)
	OnCampaignCompleted func(cat policy.Category, index int, dominant PlayerID, summary EffectSummary)
	OnRallyPlaced       func(regionID string, player PlayerID, special bool)
	OnPhaseChanged      func(phase, totalPhases int)
	OnRandomEvent       func(regionID, description string, delta float64)
	OnGameOver          func(outcome Outcome, proj Projection)
}

func (o ObserverFuncs) InfluenceChanged(regionID string, t Tuple) {
	if o.OnInfluenceChanged != nil {
		o.OnInfluenceChanged(regionID, t)
	}
}

func (o ObserverFuncs) DominationChanged(group string, holder PlayerID) {
	if o.OnDominationChanged != nil {
		o.OnDominationChanged(group, holder)
	}
}

func (o ObserverFuncs) CampaignCompleted(cat policy.Category, index int, dominant PlayerID, summary EffectSummary) {
	if o.OnCampaignCompleted != nil {
		o.OnCampaignCompleted(cat, index, dominant, summary)
	}
}

func (o ObserverFuncs) RallyPlaced(regionID string, player PlayerID, special bool) {
	if o.OnRallyPlaced != nil {
		o.OnRallyPlaced(regionID, player, special)
	}
}

func (o ObserverFuncs) PhaseChanged(phase, totalPhases int) {
	if o.OnPhaseChanged != nil {
		o.OnPhaseChanged(phase, totalPhases)
	}
}

func (o ObserverFuncs) RandomEventOccurred(regionID, description string, delta float64) {
	if o.OnRandomEvent != nil {
		o.OnRandomEvent(regionID, description, delta)
	}
}

func (o ObserverFuncs) GameOver(outcome Outcome, proj Projection) {
	if o.OnGameOver != nil {
		o.OnGameOver(outcome, proj)
	}
}

// notifier fans a notification out to every registered observer.
type notifier struct {
	observers []Observer
}

func (n *notifier) add(o Observer) {
	n.observers = append(n.observers, o)
}

func (n *notifier) influenceChanged(regionID string, t Tuple) {
	for _, o := range n.observers {
		o.InfluenceChanged(regionID, t)
	}
}

func (n *notifier) dominationChanged(group string, holder PlayerID) {
	for _, o := range n.observers {
		o.DominationChanged(group, holder)
	}
}

func (n *notifier) campaignCompleted(cat policy.Category, index int, dominant PlayerID, summary EffectSummary) {
	for _, o := range n.observers {
		o.CampaignCompleted(cat, index, dominant, summary)
	}
}

func (n *notifier) rallyPlaced(regionID string, player PlayerID, special bool) {
	for _, o := range n.observers {
		o.RallyPlaced(regionID, player, special)
	}
}

func (n *notifier) phaseChanged(phase, total int) {
	for _, o := range n.observers {
		o.PhaseChanged(phase, total)
	}
}

func (n *notifier) randomEvent(regionID, description string, delta float64) {
	for _, o := range n.observers {
		o.RandomEventOccurred(regionID, description, delta)
	}
}

func (n *notifier) gameOver(outcome Outcome, proj Projection) {
	for _, o := range n.observers {
		o.GameOver(outcome, proj)
	}
}

// Event is one entry in the session action log.
type Event struct {
	Phase       int    `json:"phase" db:"phase"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "spend", "rally", "campaign", "bonus", "phase", "event"
}
