// Real-time phase clock. One tick is one game second; the phase and round
// structure lives in the session, the clock only drives it forward.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// Clock drives a session forward in real time.
type Clock struct {
	Session  *GameSession
	Speed    float64       // multiplier: 1.0 = real-time, 0 = frozen
	Interval time.Duration // base tick interval (default 1 second)
	Running  bool
}

// NewClock creates a real-time clock for a session.
func NewClock(session *GameSession) *Clock {
	return &Clock{
		Session:  session,
		Speed:    1.0,
		Interval: time.Second,
		Running:  false,
	}
}

// Run starts the clock loop. Blocks until Stop is called or the game ends.
func (c *Clock) Run() {
	c.Running = true
	slog.Info("game clock started", "speed", c.Speed)

	for c.Running {
		if c.Speed <= 0 {
			// Frozen — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		c.Session.TickSecond()
		if over, _ := c.Session.Over(); over {
			c.Running = false
			break
		}

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(c.Interval) / c.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("game clock stopped")
}

// Stop halts the clock loop.
func (c *Clock) Stop() {
	c.Running = false
}

// PhaseClock formats seconds remaining as m:ss for display.
func PhaseClock(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%d:%02d", remaining/60, remaining%60)
}
