package workout

import (
	"fmt"
	"time"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
)

// Phase is the controller-level stage of a workout.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseCountdown   Phase = "countdown"
	PhaseActive      Phase = "active"
	PhaseFinished    Phase = "finished"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventPhase   EventType = "phase"
	EventTick    EventType = "tick"
	EventCue     EventType = "cue"
	EventCounter EventType = "counter"
	EventConfig  EventType = "config"
)

// Snapshot is a read-only view of a controller.
type Snapshot struct {
	Mode   model.Mode
	Phase  Phase
	Config model.WorkoutConfig

	// Display renders the engine the user is looking at: the countdown while it
	// runs, otherwise the main engine.
	Display     string
	InCountdown bool
	Status      timekeeper.Status
	Value       int

	Rounds   int
	Interval int
}

// Event represents a controller update for observers.
type Event struct {
	Type     EventType
	Cue      model.Cue
	Snapshot Snapshot
	At       time.Time
}

// Headline is the line shown above the clock.
func (snapshot Snapshot) Headline() string {
	if snapshot.InCountdown {
		return "Get Ready!"
	}
	switch snapshot.Mode {
	case model.ModeAMRAP:
		return fmt.Sprintf("Rounds: %d", snapshot.Rounds)
	case model.ModeEMOM:
		if snapshot.Interval == 0 {
			return "Ready to Start"
		}
		return fmt.Sprintf("Interval %d of %d", snapshot.Interval, snapshot.Config.TotalIntervals)
	case model.ModeForTime:
		if snapshot.Phase == PhaseFinished {
			return "Completed in: " + snapshot.Display
		}
	}
	return ""
}

// Summary is a one-line status such as "AMRAP 12:00 (paused)".
func (snapshot Snapshot) Summary() string {
	summary := snapshot.Mode.Title() + " " + snapshot.Display
	switch {
	case snapshot.InCountdown:
		summary += " (get ready)"
	case snapshot.Phase == PhaseFinished:
		summary += " (done)"
	case snapshot.Status == timekeeper.StatusPaused:
		summary += " (paused)"
	}
	return summary
}
