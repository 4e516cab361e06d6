package model

import (
	"strconv"
	"strings"
)

// Bound describes a configuration field persisted in the settings store.
type Bound struct {
	Key     string
	Default int
	Min     int
}

// Accepts reports whether value satisfies the minimum.
func (bound Bound) Accepts(value int) bool {
	return value >= bound.Min
}

var (
	AmrapDuration    = Bound{Key: "amrap.duration", Default: 1200, Min: 1}
	AmrapCountdown   = Bound{Key: "amrap.countdown", Default: 10, Min: 0}
	EmomInterval     = Bound{Key: "emom.interval", Default: 60, Min: 10}
	EmomTotal        = Bound{Key: "emom.total", Default: 10, Min: 1}
	EmomCountdown    = Bound{Key: "emom.countdown", Default: 10, Min: 0}
	ForTimeCountdown = Bound{Key: "fortime.countdown", Default: 10, Min: 0}
)

// WorkoutConfig contains the integer fields a controller is configured with.
// Fields a mode does not use stay zero.
type WorkoutConfig struct {
	Duration       int
	IntervalLength int
	TotalIntervals int
	Countdown      int
}

// ParseBounded parses user input and checks it against the bound.
// Non-numeric or too small input is reported with ok == false.
func ParseBounded(text string, bound Bound) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || !bound.Accepts(parsed) {
		return 0, false
	}
	return parsed, true
}

// Field names one WorkoutConfig field.
type Field int

const (
	FieldNone Field = iota
	FieldDuration
	FieldIntervalLength
	FieldTotalIntervals
	FieldCountdown
)

func (field Field) String() string {
	switch field {
	case FieldDuration:
		return "duration"
	case FieldIntervalLength:
		return "interval length"
	case FieldTotalIntervals:
		return "total intervals"
	case FieldCountdown:
		return "countdown"
	default:
		return "none"
	}
}

// Get returns the value stored for field.
func (config WorkoutConfig) Get(field Field) int {
	switch field {
	case FieldDuration:
		return config.Duration
	case FieldIntervalLength:
		return config.IntervalLength
	case FieldTotalIntervals:
		return config.TotalIntervals
	case FieldCountdown:
		return config.Countdown
	default:
		return 0
	}
}

// Set stores value for field.
func (config *WorkoutConfig) Set(field Field, value int) {
	switch field {
	case FieldDuration:
		config.Duration = value
	case FieldIntervalLength:
		config.IntervalLength = value
	case FieldTotalIntervals:
		config.TotalIntervals = value
	case FieldCountdown:
		config.Countdown = value
	}
}
