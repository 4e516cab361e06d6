package workout

import (
	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
)

// Completion decides what happens when the main engine reaches zero.
type Completion int

const (
	// CompletionReturn ends the workout and returns to configuring.
	CompletionReturn Completion = iota
	// CompletionRepeat starts the next interval until the total is reached.
	CompletionRepeat
	// CompletionManual never completes on its own; the user marks completion.
	CompletionManual
)

// Variant describes the rules that distinguish one workout mode from another.
type Variant struct {
	Mode      model.Mode
	Direction timekeeper.Direction

	// Fields lists the configurable fields and their store bounds.
	Fields map[model.Field]model.Bound
	// MainLength is the field holding the main engine length; FieldNone starts at 0.
	MainLength model.Field

	HalfwayCue bool
	// TenSecondsCue plays when at least TenSecondsMinLength seconds were configured.
	TenSecondsCue       bool
	TenSecondsMinLength int

	Completion Completion
	ForceHours bool
}

var (
	AMRAPVariant = Variant{
		Mode:      model.ModeAMRAP,
		Direction: timekeeper.CountDown,
		Fields: map[model.Field]model.Bound{
			model.FieldDuration:  model.AmrapDuration,
			model.FieldCountdown: model.AmrapCountdown,
		},
		MainLength:    model.FieldDuration,
		HalfwayCue:    true,
		TenSecondsCue: true,
		Completion:    CompletionReturn,
	}

	EMOMVariant = Variant{
		Mode:      model.ModeEMOM,
		Direction: timekeeper.CountDown,
		Fields: map[model.Field]model.Bound{
			model.FieldIntervalLength: model.EmomInterval,
			model.FieldTotalIntervals: model.EmomTotal,
			model.FieldCountdown:      model.EmomCountdown,
		},
		MainLength: model.FieldIntervalLength,
		// No ten-second warning for intervals shorter than 20s.
		TenSecondsCue:       true,
		TenSecondsMinLength: 20,
		Completion:          CompletionRepeat,
	}

	ForTimeVariant = Variant{
		Mode:      model.ModeForTime,
		Direction: timekeeper.CountUp,
		Fields: map[model.Field]model.Bound{
			model.FieldCountdown: model.ForTimeCountdown,
		},
		MainLength: model.FieldNone,
		Completion: CompletionManual,
		ForceHours: true,
	}
)

// VariantFor returns the rules for mode.
func VariantFor(mode model.Mode) (Variant, bool) {
	switch mode {
	case model.ModeAMRAP:
		return AMRAPVariant, true
	case model.ModeEMOM:
		return EMOMVariant, true
	case model.ModeForTime:
		return ForTimeVariant, true
	}
	return Variant{}, false
}
