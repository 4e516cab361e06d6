package workout

import "wodtimer/internal/core/model"

// EMOM repeats a fixed-length interval a fixed number of times.
type EMOM struct {
	*Controller
}

// NewEMOM creates an EMOM controller.
func NewEMOM(deps Dependencies) *EMOM {
	return &EMOM{Controller: New(EMOMVariant, deps)}
}

// SetIntervalLength sets the interval length in seconds (>= 10).
func (emom *EMOM) SetIntervalLength(seconds int) bool {
	return emom.Configure(model.FieldIntervalLength, seconds)
}

// SetTotalIntervals sets how many intervals make up the workout (>= 1).
func (emom *EMOM) SetTotalIntervals(total int) bool {
	return emom.Configure(model.FieldTotalIntervals, total)
}

// SetCountdown sets the get-ready countdown in seconds (>= 0).
func (emom *EMOM) SetCountdown(seconds int) bool {
	return emom.Configure(model.FieldCountdown, seconds)
}

// CurrentInterval returns the 1-based interval in progress, or 0 when idle.
func (emom *EMOM) CurrentInterval() int {
	return emom.Snapshot().Interval
}
