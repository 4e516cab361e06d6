package workout

import "wodtimer/internal/core/model"

// AMRAP counts a fixed duration down while the athlete tallies rounds.
type AMRAP struct {
	*Controller
}

// NewAMRAP creates an AMRAP controller.
func NewAMRAP(deps Dependencies) *AMRAP {
	return &AMRAP{Controller: New(AMRAPVariant, deps)}
}

// SetDuration sets the workout length in seconds (> 0).
func (amrap *AMRAP) SetDuration(seconds int) bool {
	return amrap.Configure(model.FieldDuration, seconds)
}

// SetCountdown sets the get-ready countdown in seconds (>= 0).
func (amrap *AMRAP) SetCountdown(seconds int) bool {
	return amrap.Configure(model.FieldCountdown, seconds)
}

// IncrementRound records a finished round. It only counts while the clock runs.
func (amrap *AMRAP) IncrementRound() bool {
	accepted := false
	amrap.deps.Driver.Do(func() {
		if !amrap.main.Running() {
			return
		}
		amrap.rounds++
		accepted = true
		amrap.emitLocked(EventCounter, "")
		amrap.playLocked(model.CueStart)
	})
	return accepted
}

// DecrementRound undoes a round, never going below zero.
func (amrap *AMRAP) DecrementRound() bool {
	accepted := false
	amrap.deps.Driver.Do(func() {
		if !amrap.main.Running() || amrap.rounds == 0 {
			return
		}
		amrap.rounds--
		accepted = true
		amrap.emitLocked(EventCounter, "")
	})
	return accepted
}

// Rounds returns the rounds recorded in the current run.
func (amrap *AMRAP) Rounds() int {
	return amrap.Snapshot().Rounds
}
