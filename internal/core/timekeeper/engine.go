package timekeeper

import "fmt"

// Engine is a one-second granularity countdown or count-up timer.
//
// Engine is not safe for concurrent use. Engines are advanced by a Driver, and every
// call that mutates one must happen inside the Driver's loop (Driver.Do or a tick).
type Engine struct {
	initial   int
	value     int
	direction Direction
	status    Status
	fired     Threshold
	handlers  Handlers
}

// NewEngine creates an idle Engine holding initial seconds.
func NewEngine(initial int, direction Direction, handlers Handlers) *Engine {
	if initial < 0 {
		initial = 0
	}
	return &Engine{
		initial:   initial,
		value:     initial,
		direction: direction,
		status:    StatusIdle,
		handlers:  handlers,
	}
}

// Start resumes or begins counting. It does nothing unless the engine is idle or paused.
func (engine *Engine) Start() {
	if engine.status != StatusIdle && engine.status != StatusPaused {
		return
	}
	engine.status = StatusRunning
}

// Pause freezes a running engine.
func (engine *Engine) Pause() {
	if engine.status != StatusRunning {
		return
	}
	engine.status = StatusPaused
}

// Reset restores the initial value and re-arms both thresholds.
func (engine *Engine) Reset() {
	engine.value = engine.initial
	engine.status = StatusIdle
	engine.fired = 0
}

// SetInitial changes the value used by the next Reset. An idle engine adopts it at once.
func (engine *Engine) SetInitial(initial int) {
	if initial < 0 {
		initial = 0
	}
	engine.initial = initial
	if engine.status == StatusIdle {
		engine.value = initial
	}
}

// Advance applies one second to a running engine.
func (engine *Engine) Advance() {
	if engine.status != StatusRunning {
		return
	}

	if engine.direction == CountUp {
		engine.value++
		return
	}

	if engine.value > 0 {
		engine.value--
	}

	if engine.fired&ThresholdHalfway == 0 && engine.value <= engine.initial/2 {
		engine.fired |= ThresholdHalfway
		call(engine.handlers.OnHalfway)
	}
	if engine.fired&ThresholdTenSecondsLeft == 0 && engine.value <= TenSeconds {
		engine.fired |= ThresholdTenSecondsLeft
		call(engine.handlers.OnTenSecondsLeft)
	}

	if engine.value == 0 {
		// OnComplete may reset and restart this engine.
		engine.status = StatusCompleted
		call(engine.handlers.OnComplete)
	}
}

// Value returns the remaining (CountDown) or elapsed (CountUp) seconds.
func (engine *Engine) Value() int {
	return engine.value
}

// Initial returns the value restored by Reset.
func (engine *Engine) Initial() int {
	return engine.initial
}

// Status returns the engine status.
func (engine *Engine) Status() Status {
	return engine.status
}

// Direction returns the counting direction.
func (engine *Engine) Direction() Direction {
	return engine.direction
}

// Fired reports whether threshold already fired during the current run.
func (engine *Engine) Fired(threshold Threshold) bool {
	return engine.fired&threshold != 0
}

// Running is shorthand for Status() == StatusRunning.
func (engine *Engine) Running() bool {
	return engine.status == StatusRunning
}

// FormatDisplay renders the value as MM:SS, or HH:MM:SS when forceHours is set or the
// value reaches an hour.
func (engine *Engine) FormatDisplay(forceHours bool) string {
	return FormatSeconds(engine.value, forceHours)
}

// FormatSeconds renders seconds as MM:SS or HH:MM:SS, zero-padded.
func FormatSeconds(seconds int, forceHours bool) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	if forceHours || hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
