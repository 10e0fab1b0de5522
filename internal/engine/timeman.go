package engine

import (
	"time"
)

// Time budget per computer move: base plus a per-level share, capped.
const (
	baseThinkTime  = 300 * time.Millisecond
	levelThinkTime = 120 * time.Millisecond
	maxExtraTime   = 900 * time.Millisecond
)

// TimeBudget returns the wall-clock budget for one move at difficulty d.
func TimeBudget(d Difficulty) time.Duration {
	return baseThinkTime + min(maxExtraTime, time.Duration(d.Clamp())*levelThinkTime)
}

// TimeManager tracks the deadline of a single search.
type TimeManager struct {
	startTime time.Time
	deadline  time.Time // zero means no deadline
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock. A zero moveTime disables the deadline.
func (tm *TimeManager) Init(moveTime time.Duration) {
	tm.startTime = time.Now()
	tm.deadline = time.Time{}
	if moveTime > 0 {
		tm.deadline = tm.startTime.Add(moveTime)
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Expired returns true once the deadline has passed.
func (tm *TimeManager) Expired() bool {
	return !tm.deadline.IsZero() && time.Now().After(tm.deadline)
}
