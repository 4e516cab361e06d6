package workout

import (
	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
)

// ForTime is a stopwatch the athlete stops when the work is done.
type ForTime struct {
	*Controller
}

// NewForTime creates a For-Time controller.
func NewForTime(deps Dependencies) *ForTime {
	return &ForTime{Controller: New(ForTimeVariant, deps)}
}

// SetCountdown sets the get-ready countdown in seconds (>= 0).
func (forTime *ForTime) SetCountdown(seconds int) bool {
	return forTime.Configure(model.FieldCountdown, seconds)
}

// MarkComplete stops the clock and keeps the elapsed time as the result. The engine
// is paused, not completed, so Start resumes counting.
func (forTime *ForTime) MarkComplete() bool {
	accepted := false
	forTime.deps.Driver.Do(func() {
		if !forTime.main.Running() {
			return
		}
		forTime.main.Pause()
		accepted = true
		forTime.setPhaseLocked(PhaseFinished)
		forTime.playLocked(model.CueComplete)
	})
	return accepted
}

// Elapsed returns the counted seconds.
func (forTime *ForTime) Elapsed() int {
	return forTime.Snapshot().Value
}

// Result returns the elapsed time as HH:MM:SS.
func (forTime *ForTime) Result() string {
	return timekeeper.FormatSeconds(forTime.Elapsed(), true)
}
