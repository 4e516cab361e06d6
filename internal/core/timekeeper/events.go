package timekeeper

// Direction selects whether an Engine counts down or up.
type Direction int

const (
	CountDown Direction = iota
	CountUp
)

func (direction Direction) String() string {
	if direction == CountUp {
		return "count_up"
	}
	return "count_down"
}

// Status represents the current Engine state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Threshold is a one-shot countdown event.
type Threshold uint8

const (
	ThresholdHalfway Threshold = 1 << iota
	ThresholdTenSecondsLeft
)

// TenSeconds is the remaining value at which ThresholdTenSecondsLeft fires.
const TenSeconds = 10

// Handlers are invoked synchronously from Advance.
type Handlers struct {
	OnHalfway        func()
	OnTenSecondsLeft func()
	OnComplete       func()
}
