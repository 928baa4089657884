// Package hints decides when a struggling player should be offered a hint.
package hints

import (
	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/levels"
)

// Hint texts.
const (
	HintReorder   = "Try pulling pins in a different order!"
	HintFindWater = "Look for pins holding back water."
)

// Policy holds the advisor thresholds.
type Policy struct {
	IdleSeconds           float64 // idle strictly longer than this triggers a hint
	AttemptThreshold      int     // this many resets triggers a hint
	ReorderHintAttempts   int     // from this many resets the reorder text is used
	ResetAttemptsPerLevel bool    // clear the reset count when a new level loads
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{IdleSeconds: 15, AttemptThreshold: 3, ReorderHintAttempts: 5}
}

// PolicyFromConfig extracts the thresholds from cfg.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		IdleSeconds:           cfg.Hints.IdleSeconds,
		AttemptThreshold:      cfg.Hints.AttemptThreshold,
		ReorderHintAttempts:   cfg.Hints.ReorderHintAttempts,
		ResetAttemptsPerLevel: cfg.Hints.ResetAttemptsPerLevel,
	}
}

// Advisor tracks idle time and reset attempts.
type Advisor struct {
	policy   Policy
	idle     float64
	attempts int
	active   bool
}

// NewAdvisor creates an advisor with no idle time and no attempts.
func NewAdvisor(p Policy) *Advisor {
	return &Advisor{policy: p}
}

// Update advances the idle clock by dt seconds and raises the hint once a
// threshold is crossed. It runs every tick whatever the level status.
func (a *Advisor) Update(dt float64) {
	if dt > 0 {
		a.idle += dt
	}
	a.evaluate()
}

func (a *Advisor) evaluate() {
	if a.attempts >= a.policy.AttemptThreshold || a.idle > a.policy.IdleSeconds {
		a.active = true
	}
}

// RecordAction clears idle time and hides the hint.
func (a *Advisor) RecordAction() {
	a.idle = 0
	a.active = false
}

// RecordReset counts an attempt. Idle time is cleared and the thresholds are
// checked straight away, so the reset that reaches the attempt threshold
// shows the hint without waiting for the next tick.
func (a *Advisor) RecordReset() {
	a.attempts++
	a.RecordAction()
	a.evaluate()
}

// ResetLevel is called when a different level loads.
func (a *Advisor) ResetLevel() {
	a.idle = 0
	a.active = false
	if a.policy.ResetAttemptsPerLevel {
		a.attempts = 0
	}
}

// IsHintAvailable reports whether a hint should be offered.
func (a *Advisor) IsHintAvailable() bool { return a.active }

// Attempts returns the counted resets.
func (a *Advisor) Attempts() int { return a.attempts }

// Idle returns the idle time in seconds.
func (a *Advisor) Idle() float64 { return a.idle }

// Hint returns the hint text for the level being played.
func (a *Advisor) Hint(_ levels.Definition) string {
	if a.attempts >= a.policy.ReorderHintAttempts {
		return HintReorder
	}
	return HintFindWater
}
