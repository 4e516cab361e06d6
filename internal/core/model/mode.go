package model

// Mode identifies a workout timer type.
type Mode string

const (
	ModeAMRAP   Mode = "amrap"
	ModeEMOM    Mode = "emom"
	ModeForTime Mode = "fortime"
)

// Title returns the heading shown for the mode.
func (mode Mode) Title() string {
	switch mode {
	case ModeAMRAP:
		return "AMRAP"
	case ModeEMOM:
		return "EMOM"
	case ModeForTime:
		return "FOR TIME"
	default:
		return string(mode)
	}
}

// Description returns the long form of the mode name.
func (mode Mode) Description() string {
	switch mode {
	case ModeAMRAP:
		return "As Many Rounds As Possible"
	case ModeEMOM:
		return "Every Minute On the Minute"
	case ModeForTime:
		return "Complete Workout As Fast As Possible"
	default:
		return ""
	}
}

// ParseMode maps a command-line name to a Mode.
func ParseMode(name string) (Mode, bool) {
	switch Mode(name) {
	case ModeAMRAP, ModeEMOM, ModeForTime:
		return Mode(name), true
	case "for-time", "for_time":
		return ModeForTime, true
	}
	return "", false
}

// Modes lists the modes in menu order.
func Modes() []Mode {
	return []Mode{ModeAMRAP, ModeEMOM, ModeForTime}
}

// Cue is a short audio signal tied to a timer event.
type Cue string

const (
	CueStart          Cue = "start"
	CueHalfway        Cue = "halfway"
	CueTenSecondsLeft Cue = "ten_seconds"
	CueComplete       Cue = "complete"
)

// Cues lists every cue.
func Cues() []Cue {
	return []Cue{CueStart, CueHalfway, CueTenSecondsLeft, CueComplete}
}
