package workout

import (
	"time"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
)

// SettingsStore persists configuration fields.
type SettingsStore interface {
	Int(key string, fallback int) int
	SetInt(key string, value int) error
}

// CuePlayer plays audio cues. Play must not block.
type CuePlayer interface {
	Play(cue model.Cue)
}

// Logger receives non-fatal failures.
type Logger interface {
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Dependencies are the collaborators a Controller is constructed with.
type Dependencies struct {
	Driver *timekeeper.Driver
	Store  SettingsStore
	Cues   CuePlayer
	Logger Logger
}

// Controller is the workout state machine shared by every mode. It owns a countdown
// engine and a main engine and applies the rules of its Variant.
//
// All state is guarded by the Driver loop: public methods enter it with Driver.Do,
// and Advance is called from Driver.Step.
type Controller struct {
	variant Variant
	deps    Dependencies

	config    model.WorkoutConfig
	countdown *timekeeper.Engine
	main      *timekeeper.Engine
	phase     Phase
	rounds    int
	interval  int

	events []chan Event
	detach func()
	closed bool
}

// New creates a controller for variant, loads its configuration from the store and
// attaches it to the driver.
func New(variant Variant, deps Dependencies) *Controller {
	if deps.Driver == nil {
		deps.Driver = timekeeper.NewDriver(timekeeper.Config{})
	}
	if deps.Store == nil {
		deps.Store = defaultsStore{}
	}
	if deps.Cues == nil {
		deps.Cues = silentPlayer{}
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}

	controller := &Controller{
		variant: variant,
		deps:    deps,
		phase:   PhaseConfiguring,
	}
	controller.loadConfig()

	controller.countdown = timekeeper.NewEngine(controller.config.Countdown, timekeeper.CountDown, timekeeper.Handlers{
		OnComplete: controller.handleCountdownComplete,
	})
	controller.main = timekeeper.NewEngine(controller.mainLength(), variant.Direction, timekeeper.Handlers{
		OnHalfway:        controller.handleHalfway,
		OnTenSecondsLeft: controller.handleTenSecondsLeft,
		OnComplete:       controller.handleMainComplete,
	})

	controller.detach = deps.Driver.Attach(controller)
	return controller
}

// NewForMode creates the controller for mode.
func NewForMode(mode model.Mode, deps Dependencies) (*Controller, bool) {
	variant, ok := VariantFor(mode)
	if !ok {
		return nil, false
	}
	return New(variant, deps), true
}

// Mode returns the workout mode.
func (controller *Controller) Mode() model.Mode {
	return controller.variant.Mode
}

// Subscribe registers a new observer channel. Sends never block; a full channel drops
// the event. Channels are closed by Close.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.deps.Driver.Do(func() {
		if controller.closed {
			close(ch)
			return
		}
		controller.events = append(controller.events, ch)
	})
	return ch
}

// Snapshot returns the current state.
func (controller *Controller) Snapshot() Snapshot {
	var snapshot Snapshot
	controller.deps.Driver.Do(func() {
		snapshot = controller.snapshotLocked()
	})
	return snapshot
}

// Configure validates and stores a configuration field. Values below the field's
// minimum, unknown fields and changes outside the configuring phase are rejected and
// the previous value is kept.
func (controller *Controller) Configure(field model.Field, value int) bool {
	accepted := false
	controller.deps.Driver.Do(func() {
		accepted = controller.configureLocked(field, value)
	})
	return accepted
}

// Start begins a fresh run from the configuring phase, or resumes a paused main
// engine. A paused For-Time result resumes counting; only Reset clears it.
func (controller *Controller) Start() {
	controller.deps.Driver.Do(controller.startLocked)
}

// Pause freezes the main engine while it runs.
func (controller *Controller) Pause() {
	controller.deps.Driver.Do(controller.pauseLocked)
}

// Resume restarts a paused main engine.
func (controller *Controller) Resume() {
	controller.deps.Driver.Do(controller.resumeLocked)
}

// TogglePause pauses a running workout or resumes a paused one.
func (controller *Controller) TogglePause() {
	controller.deps.Driver.Do(func() {
		if controller.main.Running() {
			controller.pauseLocked()
			return
		}
		controller.resumeLocked()
	})
}

// Reset stops both engines, clears counters and returns to configuring.
func (controller *Controller) Reset() {
	controller.deps.Driver.Do(controller.resetLocked)
}

// Close detaches the controller from the driver and closes subscriber channels.
// The controller must not be used afterwards.
func (controller *Controller) Close() {
	controller.deps.Driver.Do(func() {
		if controller.closed {
			return
		}
		controller.closed = true
		controller.countdown.Reset()
		controller.main.Reset()
		for _, ch := range controller.events {
			close(ch)
		}
		controller.events = nil
	})
	controller.detach()
}

// Advance implements timekeeper.Advancer. Only engines running when the tick began
// are advanced, so an engine started during this tick first moves on the next one.
func (controller *Controller) Advance() {
	if controller.closed {
		return
	}
	countdownRunning := controller.countdown.Running()
	mainRunning := controller.main.Running()
	if !countdownRunning && !mainRunning {
		return
	}

	if countdownRunning {
		controller.countdown.Advance()
	}
	if mainRunning {
		controller.main.Advance()
	}
	controller.emitLocked(EventTick, "")
}

func (controller *Controller) loadConfig() {
	for field, bound := range controller.variant.Fields {
		value := controller.deps.Store.Int(bound.Key, bound.Default)
		if !bound.Accepts(value) {
			controller.deps.Logger.Debug("%s: stored %s %d below minimum %d, using default", controller.variant.Mode, field, value, bound.Min)
			value = bound.Default
		}
		controller.config.Set(field, value)
	}
}

func (controller *Controller) mainLength() int {
	return controller.config.Get(controller.variant.MainLength)
}

func (controller *Controller) configureLocked(field model.Field, value int) bool {
	bound, ok := controller.variant.Fields[field]
	if !ok || !bound.Accepts(value) || controller.phase != PhaseConfiguring {
		return false
	}

	controller.config.Set(field, value)
	if err := controller.deps.Store.SetInt(bound.Key, value); err != nil {
		controller.deps.Logger.Error("save %s: %v", bound.Key, err)
	}

	controller.countdown.SetInitial(controller.config.Countdown)
	controller.main.SetInitial(controller.mainLength())
	controller.emitLocked(EventConfig, "")
	return true
}

func (controller *Controller) startLocked() {
	switch controller.phase {
	case PhaseConfiguring:
		controller.freshStartLocked()
	case PhaseActive, PhaseFinished:
		controller.resumeLocked()
	}
}

func (controller *Controller) freshStartLocked() {
	controller.rounds = 0
	controller.interval = 0
	controller.countdown.SetInitial(controller.config.Countdown)
	controller.countdown.Reset()
	controller.main.SetInitial(controller.mainLength())
	controller.main.Reset()

	if controller.config.Countdown > 0 {
		controller.countdown.Start()
		controller.setPhaseLocked(PhaseCountdown)
		return
	}
	controller.beginMainLocked()
}

func (controller *Controller) beginMainLocked() {
	if controller.variant.Completion == CompletionRepeat {
		controller.interval = 1
	}
	controller.main.Reset()
	controller.main.Start()
	controller.setPhaseLocked(PhaseActive)
	controller.playLocked(model.CueStart)
}

func (controller *Controller) pauseLocked() {
	if controller.phase != PhaseActive || !controller.main.Running() {
		return
	}
	controller.main.Pause()
	controller.emitLocked(EventPhase, "")
}

func (controller *Controller) resumeLocked() {
	if controller.main.Status() != timekeeper.StatusPaused {
		return
	}
	controller.main.Start()
	controller.setPhaseLocked(PhaseActive)
}

func (controller *Controller) resetLocked() {
	controller.countdown.Reset()
	controller.main.SetInitial(controller.mainLength())
	controller.main.Reset()
	controller.rounds = 0
	controller.interval = 0
	controller.setPhaseLocked(PhaseConfiguring)
}

func (controller *Controller) handleCountdownComplete() {
	controller.beginMainLocked()
}

func (controller *Controller) handleHalfway() {
	if controller.variant.HalfwayCue {
		controller.playLocked(model.CueHalfway)
	}
}

func (controller *Controller) handleTenSecondsLeft() {
	if controller.variant.TenSecondsCue && controller.main.Initial() >= controller.variant.TenSecondsMinLength {
		controller.playLocked(model.CueTenSecondsLeft)
	}
}

func (controller *Controller) handleMainComplete() {
	switch controller.variant.Completion {
	case CompletionReturn:
		controller.playLocked(model.CueComplete)
		controller.setPhaseLocked(PhaseConfiguring)
	case CompletionRepeat:
		if controller.interval >= controller.config.TotalIntervals {
			controller.interval = 0
			controller.playLocked(model.CueComplete)
			controller.setPhaseLocked(PhaseConfiguring)
			return
		}
		controller.interval++
		controller.main.Reset()
		controller.main.Start()
		controller.emitLocked(EventCounter, "")
		controller.playLocked(model.CueStart)
	}
}

func (controller *Controller) setPhaseLocked(phase Phase) {
	controller.phase = phase
	controller.emitLocked(EventPhase, "")
}

func (controller *Controller) playLocked(cue model.Cue) {
	controller.deps.Cues.Play(cue)
	controller.emitLocked(EventCue, cue)
}

func (controller *Controller) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Mode:        controller.variant.Mode,
		Phase:       controller.phase,
		Config:      controller.config,
		InCountdown: controller.countdown.Running(),
		Status:      controller.main.Status(),
		Value:       controller.main.Value(),
		Rounds:      controller.rounds,
		Interval:    controller.interval,
	}
	if snapshot.InCountdown {
		snapshot.Display = controller.countdown.FormatDisplay(false)
	} else {
		snapshot.Display = controller.main.FormatDisplay(controller.variant.ForceHours)
	}
	return snapshot
}

func (controller *Controller) emitLocked(eventType EventType, cue model.Cue) {
	if len(controller.events) == 0 {
		return
	}
	event := Event{
		Type:     eventType,
		Cue:      cue,
		Snapshot: controller.snapshotLocked(),
		At:       time.Now(),
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type defaultsStore struct{}

func (defaultsStore) Int(_ string, fallback int) int { return fallback }
func (defaultsStore) SetInt(string, int) error      { return nil }

type silentPlayer struct{}

func (silentPlayer) Play(model.Cue) {}

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
