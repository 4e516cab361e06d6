package workout

import (
	"errors"
	"testing"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
)

type memoryStore struct {
	values map[string]int
	err    error
	writes int
}

func newMemoryStore(values map[string]int) *memoryStore {
	if values == nil {
		values = map[string]int{}
	}
	return &memoryStore{values: values}
}

func (store *memoryStore) Int(key string, fallback int) int {
	if value, ok := store.values[key]; ok {
		return value
	}
	return fallback
}

func (store *memoryStore) SetInt(key string, value int) error {
	store.writes++
	if store.err != nil {
		return store.err
	}
	store.values[key] = value
	return nil
}

type playedCue struct {
	cue   model.Cue
	value int
}

// cueRecorder runs inside the driver loop, so probe may read engine state directly.
type cueRecorder struct {
	played []playedCue
	probe  func() int
}

func (recorder *cueRecorder) Play(cue model.Cue) {
	value := -1
	if recorder.probe != nil {
		value = recorder.probe()
	}
	recorder.played = append(recorder.played, playedCue{cue: cue, value: value})
}

func (recorder *cueRecorder) cues() []model.Cue {
	cues := make([]model.Cue, 0, len(recorder.played))
	for _, played := range recorder.played {
		cues = append(cues, played.cue)
	}
	return cues
}

func (recorder *cueRecorder) count(cue model.Cue) int {
	total := 0
	for _, played := range recorder.played {
		if played.cue == cue {
			total++
		}
	}
	return total
}

type recordedLogger struct {
	errors []string
}

func (logger *recordedLogger) Error(format string, v ...interface{}) {
	logger.errors = append(logger.errors, format)
}

func (logger *recordedLogger) Debug(string, ...interface{}) {}

type fixture struct {
	driver *timekeeper.Driver
	store  *memoryStore
	cues   *cueRecorder
	logger *recordedLogger
}

func newFixture(values map[string]int) *fixture {
	return &fixture{
		driver: timekeeper.NewDriver(timekeeper.Config{}),
		store:  newMemoryStore(values),
		cues:   &cueRecorder{},
		logger: &recordedLogger{},
	}
}

func (f *fixture) deps() Dependencies {
	return Dependencies{Driver: f.driver, Store: f.store, Cues: f.cues, Logger: f.logger}
}

func (f *fixture) step(n int) {
	for i := 0; i < n; i++ {
		f.driver.Step()
	}
}

func equalCues(got, want []model.Cue) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAMRAPFullRun(t *testing.T) {
	f := newFixture(map[string]int{
		model.AmrapDuration.Key:  60,
		model.AmrapCountdown.Key: 5,
	})
	amrap := NewAMRAP(f.deps())
	f.cues.probe = func() int { return amrap.main.Value() }

	amrap.Start()
	snapshot := amrap.Snapshot()
	if snapshot.Phase != PhaseCountdown || !snapshot.InCountdown {
		t.Fatalf("phase = %s, in countdown = %v", snapshot.Phase, snapshot.InCountdown)
	}
	if snapshot.Display != "00:05" {
		t.Errorf("countdown display = %q, want 00:05", snapshot.Display)
	}

	f.step(4)
	if len(f.cues.played) != 0 {
		t.Fatalf("cues before countdown end: %v", f.cues.cues())
	}
	f.step(1)
	if !equalCues(f.cues.cues(), []model.Cue{model.CueStart}) {
		t.Fatalf("cues after countdown = %v", f.cues.cues())
	}
	snapshot = amrap.Snapshot()
	if snapshot.Phase != PhaseActive || snapshot.Value != 60 || snapshot.Status != timekeeper.StatusRunning {
		t.Fatalf("after countdown: %+v", snapshot)
	}

	if !amrap.IncrementRound() || !amrap.IncrementRound() {
		t.Fatal("increment rejected while running")
	}
	if !amrap.DecrementRound() {
		t.Fatal("decrement rejected while running")
	}
	if amrap.Rounds() != 1 {
		t.Errorf("rounds = %d, want 1", amrap.Rounds())
	}
	f.cues.played = nil

	f.step(60)
	want := []playedCue{
		{cue: model.CueHalfway, value: 30},
		{cue: model.CueTenSecondsLeft, value: 10},
		{cue: model.CueComplete, value: 0},
	}
	if len(f.cues.played) != len(want) {
		t.Fatalf("cues = %+v, want %+v", f.cues.played, want)
	}
	for i := range want {
		if f.cues.played[i] != want[i] {
			t.Errorf("cue %d = %+v, want %+v", i, f.cues.played[i], want[i])
		}
	}

	snapshot = amrap.Snapshot()
	if snapshot.Phase != PhaseConfiguring {
		t.Errorf("phase after completion = %s, want %s", snapshot.Phase, PhaseConfiguring)
	}
	if snapshot.Status != timekeeper.StatusCompleted || snapshot.Value != 0 {
		t.Errorf("main engine after completion: status %s value %d", snapshot.Status, snapshot.Value)
	}
	if snapshot.Rounds != 1 {
		t.Errorf("rounds after completion = %d, want 1", snapshot.Rounds)
	}
}

func TestAMRAPRoundsBounded(t *testing.T) {
	f := newFixture(map[string]int{model.AmrapDuration.Key: 120, model.AmrapCountdown.Key: 0})
	amrap := NewAMRAP(f.deps())

	if amrap.IncrementRound() {
		t.Error("increment accepted before start")
	}

	amrap.Start()
	if amrap.DecrementRound() {
		t.Error("decrement below zero accepted")
	}
	amrap.IncrementRound()
	amrap.Pause()
	if amrap.IncrementRound() || amrap.DecrementRound() {
		t.Error("round change accepted while paused")
	}
	if amrap.Rounds() != 1 {
		t.Errorf("rounds = %d, want 1", amrap.Rounds())
	}

	amrap.Reset()
	if amrap.Rounds() != 0 {
		t.Errorf("rounds after reset = %d, want 0", amrap.Rounds())
	}
}

func TestAMRAPDirectStartAndPause(t *testing.T) {
	f := newFixture(map[string]int{model.AmrapDuration.Key: 30, model.AmrapCountdown.Key: 0})
	amrap := NewAMRAP(f.deps())

	amrap.Start()
	if !equalCues(f.cues.cues(), []model.Cue{model.CueStart}) {
		t.Errorf("direct start cues = %v", f.cues.cues())
	}
	f.step(3)
	amrap.Pause()
	f.step(5)
	if got := amrap.Snapshot().Value; got != 27 {
		t.Errorf("value while paused = %d, want 27", got)
	}

	amrap.Start()
	f.step(2)
	if got := amrap.Snapshot().Value; got != 25 {
		t.Errorf("value after resume = %d, want 25", got)
	}

	amrap.TogglePause()
	if amrap.Snapshot().Status != timekeeper.StatusPaused {
		t.Error("toggle should pause a running workout")
	}
	amrap.TogglePause()
	if amrap.Snapshot().Status != timekeeper.StatusRunning {
		t.Error("toggle should resume a paused workout")
	}

	amrap.Reset()
	snapshot := amrap.Snapshot()
	if snapshot.Phase != PhaseConfiguring || snapshot.Value != 30 || snapshot.Status != timekeeper.StatusIdle {
		t.Errorf("after reset: %+v", snapshot)
	}
	f.step(3)
	if amrap.Snapshot().Value != 30 {
		t.Error("reset engine kept ticking")
	}
}

func TestEMOMIntervalSequence(t *testing.T) {
	f := newFixture(map[string]int{
		model.EmomInterval.Key:  15,
		model.EmomTotal.Key:     3,
		model.EmomCountdown.Key: 0,
	})
	emom := NewEMOM(f.deps())

	var sequence []int
	record := func() {
		current := emom.CurrentInterval()
		if len(sequence) == 0 || sequence[len(sequence)-1] != current {
			sequence = append(sequence, current)
		}
	}

	if emom.CurrentInterval() != 0 {
		t.Fatalf("interval before start = %d", emom.CurrentInterval())
	}
	emom.Start()
	record()
	for i := 0; i < 50; i++ {
		f.driver.Step()
		record()
	}

	want := []int{1, 2, 3, 0}
	if len(sequence) != len(want) {
		t.Fatalf("interval sequence = %v, want %v", sequence, want)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("interval sequence = %v, want %v", sequence, want)
		}
	}

	wantCues := []model.Cue{model.CueStart, model.CueStart, model.CueStart, model.CueComplete}
	if !equalCues(f.cues.cues(), wantCues) {
		t.Errorf("cues = %v, want %v", f.cues.cues(), wantCues)
	}
	if f.cues.count(model.CueTenSecondsLeft) != 0 {
		t.Error("ten seconds cue fired for a 15s interval")
	}
	if emom.Snapshot().Phase != PhaseConfiguring {
		t.Errorf("phase after all intervals = %s", emom.Snapshot().Phase)
	}
}

func TestEMOMTenSecondCueForLongIntervals(t *testing.T) {
	f := newFixture(map[string]int{
		model.EmomInterval.Key:  20,
		model.EmomTotal.Key:     2,
		model.EmomCountdown.Key: 3,
	})
	emom := NewEMOM(f.deps())
	emom.Start()
	f.step(3)
	if emom.CurrentInterval() != 1 {
		t.Fatalf("interval after countdown = %d, want 1", emom.CurrentInterval())
	}
	f.step(40)

	if got := f.cues.count(model.CueTenSecondsLeft); got != 2 {
		t.Errorf("ten seconds cues = %d, want 2", got)
	}
	if got := f.cues.count(model.CueHalfway); got != 0 {
		t.Errorf("halfway cues = %d, want 0", got)
	}
	if emom.CurrentInterval() != 0 {
		t.Errorf("interval after completion = %d", emom.CurrentInterval())
	}
}

func TestEMOMRestartAfterCompletion(t *testing.T) {
	f := newFixture(map[string]int{
		model.EmomInterval.Key:  10,
		model.EmomTotal.Key:     1,
		model.EmomCountdown.Key: 2,
	})
	emom := NewEMOM(f.deps())
	emom.Start()
	f.step(12)
	if emom.Snapshot().Phase != PhaseConfiguring {
		t.Fatalf("phase = %s, want configuring", emom.Snapshot().Phase)
	}

	emom.Start()
	snapshot := emom.Snapshot()
	if snapshot.Phase != PhaseCountdown || !snapshot.InCountdown {
		t.Errorf("restart should re-enter the countdown, got %+v", snapshot)
	}
	f.step(2)
	if emom.CurrentInterval() != 1 || emom.Snapshot().Value != 10 {
		t.Errorf("restart interval = %d value = %d", emom.CurrentInterval(), emom.Snapshot().Value)
	}
}

func TestEMOMPauseAndReset(t *testing.T) {
	f := newFixture(map[string]int{
		model.EmomInterval.Key:  30,
		model.EmomTotal.Key:     5,
		model.EmomCountdown.Key: 10,
	})
	emom := NewEMOM(f.deps())
	emom.Start()
	f.step(4)

	// Pausing during the countdown is not possible.
	emom.Pause()
	f.step(6)
	if emom.Snapshot().Phase != PhaseActive {
		t.Fatalf("phase = %s, want active", emom.Snapshot().Phase)
	}

	f.step(5)
	emom.Pause()
	f.step(5)
	if got := emom.Snapshot().Value; got != 25 {
		t.Errorf("paused value = %d, want 25", got)
	}

	emom.Reset()
	snapshot := emom.Snapshot()
	if snapshot.Interval != 0 || snapshot.Phase != PhaseConfiguring || snapshot.InCountdown {
		t.Errorf("after reset: %+v", snapshot)
	}
}

func TestForTimeMarkComplete(t *testing.T) {
	f := newFixture(map[string]int{model.ForTimeCountdown.Key: 0})
	forTime := NewForTime(f.deps())

	if forTime.MarkComplete() {
		t.Error("mark complete accepted before start")
	}

	forTime.Start()
	f.step(37)
	if !forTime.MarkComplete() {
		t.Fatal("mark complete rejected while running")
	}
	if got := forTime.Result(); got != "00:00:37" {
		t.Errorf("result = %q, want 00:00:37", got)
	}
	snapshot := forTime.Snapshot()
	if snapshot.Status != timekeeper.StatusPaused {
		t.Errorf("status = %s, want %s", snapshot.Status, timekeeper.StatusPaused)
	}
	if snapshot.Phase != PhaseFinished || snapshot.Display != "00:00:37" {
		t.Errorf("snapshot = %+v", snapshot)
	}
	wantCues := []model.Cue{model.CueStart, model.CueComplete}
	if !equalCues(f.cues.cues(), wantCues) {
		t.Errorf("cues = %v, want %v", f.cues.cues(), wantCues)
	}

	f.step(10)
	if forTime.Elapsed() != 37 {
		t.Errorf("elapsed moved after completion: %d", forTime.Elapsed())
	}
	if forTime.MarkComplete() {
		t.Error("second mark complete accepted")
	}
}

func TestForTimeStartWhilePausedResumes(t *testing.T) {
	f := newFixture(map[string]int{model.ForTimeCountdown.Key: 0})
	forTime := NewForTime(f.deps())
	forTime.Start()
	f.step(20)
	forTime.MarkComplete()

	forTime.Start()
	f.step(5)
	if forTime.Elapsed() != 25 {
		t.Errorf("elapsed after resume = %d, want 25", forTime.Elapsed())
	}
	if forTime.Snapshot().Phase != PhaseActive {
		t.Errorf("phase after resume = %s", forTime.Snapshot().Phase)
	}

	forTime.Reset()
	if forTime.Elapsed() != 0 {
		t.Errorf("elapsed after reset = %d", forTime.Elapsed())
	}
	f.step(3)
	if forTime.Elapsed() != 0 {
		t.Error("reset count-up engine kept ticking")
	}
}

func TestForTimeCountdownThenCountUp(t *testing.T) {
	f := newFixture(map[string]int{model.ForTimeCountdown.Key: 3})
	forTime := NewForTime(f.deps())
	forTime.Start()
	if forTime.Snapshot().Display != "00:03" {
		t.Errorf("countdown display = %q", forTime.Snapshot().Display)
	}
	f.step(3)
	if forTime.Elapsed() != 0 || forTime.Snapshot().Status != timekeeper.StatusRunning {
		t.Fatalf("main engine should start at 0 after countdown: %+v", forTime.Snapshot())
	}
	f.step(4)
	if forTime.Elapsed() != 4 {
		t.Errorf("elapsed = %d, want 4", forTime.Elapsed())
	}
	if forTime.Snapshot().Display != "00:00:04" {
		t.Errorf("display = %q", forTime.Snapshot().Display)
	}
}

func TestConfigureValidationAndPersistence(t *testing.T) {
	f := newFixture(nil)
	emom := NewEMOM(f.deps())

	config := emom.Snapshot().Config
	if config.IntervalLength != 60 || config.TotalIntervals != 10 || config.Countdown != 10 {
		t.Fatalf("defaults = %+v", config)
	}

	tests := []struct {
		name  string
		apply func() bool
		want  bool
	}{
		{name: "interval below minimum", apply: func() bool { return emom.SetIntervalLength(9) }, want: false},
		{name: "interval at minimum", apply: func() bool { return emom.SetIntervalLength(10) }, want: true},
		{name: "zero intervals", apply: func() bool { return emom.SetTotalIntervals(0) }, want: false},
		{name: "negative countdown", apply: func() bool { return emom.SetCountdown(-1) }, want: false},
		{name: "zero countdown", apply: func() bool { return emom.SetCountdown(0) }, want: true},
		{name: "field of another mode", apply: func() bool { return emom.Configure(model.FieldDuration, 100) }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apply(); got != tt.want {
				t.Errorf("accepted = %v, want %v", got, tt.want)
			}
		})
	}

	config = emom.Snapshot().Config
	if config.IntervalLength != 10 || config.TotalIntervals != 10 || config.Countdown != 0 {
		t.Errorf("config = %+v", config)
	}
	if f.store.values[model.EmomInterval.Key] != 10 || f.store.values[model.EmomCountdown.Key] != 0 {
		t.Errorf("store = %v", f.store.values)
	}
	if f.store.writes != 2 {
		t.Errorf("store writes = %d, want 2", f.store.writes)
	}
	if emom.Snapshot().Value != 10 {
		t.Errorf("idle interval engine value = %d, want 10", emom.Snapshot().Value)
	}

	emom.Start()
	if emom.SetTotalIntervals(3) {
		t.Error("configuration accepted while running")
	}
}

func TestStoredValueBelowMinimumUsesDefault(t *testing.T) {
	f := newFixture(map[string]int{model.EmomInterval.Key: 5, model.AmrapDuration.Key: 0})
	if got := NewEMOM(f.deps()).Snapshot().Config.IntervalLength; got != model.EmomInterval.Default {
		t.Errorf("interval = %d, want default %d", got, model.EmomInterval.Default)
	}
	if got := NewAMRAP(f.deps()).Snapshot().Config.Duration; got != model.AmrapDuration.Default {
		t.Errorf("duration = %d, want default %d", got, model.AmrapDuration.Default)
	}
}

func TestStoreFailureIsLogged(t *testing.T) {
	f := newFixture(nil)
	f.store.err = errors.New("read-only file system")
	amrap := NewAMRAP(f.deps())

	if !amrap.SetDuration(300) {
		t.Fatal("valid duration rejected")
	}
	if amrap.Snapshot().Config.Duration != 300 {
		t.Error("duration not applied after store failure")
	}
	if len(f.logger.errors) != 1 {
		t.Errorf("logged errors = %d, want 1", len(f.logger.errors))
	}
}

func TestSubscribeEventOrder(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     []EventType
	}{
		{name: "plain tick", duration: 30, want: []EventType{EventPhase, EventCue, EventTick}},
		{name: "ten seconds cue on first tick", duration: 10, want: []EventType{EventPhase, EventCue, EventCue, EventTick}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(map[string]int{model.AmrapDuration.Key: tt.duration, model.AmrapCountdown.Key: 0})
			amrap := NewAMRAP(f.deps())
			defer amrap.Close()
			events := amrap.Subscribe(16)

			amrap.Start()
			f.step(1)

			var types []EventType
			for len(events) > 0 {
				types = append(types, (<-events).Type)
			}
			if len(types) != len(tt.want) {
				t.Fatalf("events = %v, want %v", types, tt.want)
			}
			for i := range tt.want {
				if types[i] != tt.want[i] {
					t.Fatalf("events = %v, want %v", types, tt.want)
				}
			}
		})
	}
}

func TestSubscribeAndClose(t *testing.T) {
	f := newFixture(map[string]int{model.AmrapDuration.Key: 30, model.AmrapCountdown.Key: 0})
	amrap := NewAMRAP(f.deps())
	events := amrap.Subscribe(16)

	amrap.Start()
	f.step(1)
	for len(events) > 0 {
		<-events
	}

	amrap.Close()
	amrap.Close()
	if _, ok := <-events; ok {
		t.Error("subscriber channel should be closed")
	}
	f.step(3)
	if amrap.Snapshot().Value != 30 {
		t.Error("closed controller kept ticking")
	}

	late := amrap.Subscribe(1)
	if _, ok := <-late; ok {
		t.Error("subscription after close should be closed")
	}
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	f := newFixture(map[string]int{model.ForTimeCountdown.Key: 0})
	forTime := NewForTime(f.deps())
	events := forTime.Subscribe(1)
	forTime.Start()
	f.step(5)
	if len(events) != 1 {
		t.Errorf("buffered events = %d, want 1", len(events))
	}
}

func TestOnlyOneEngineRuns(t *testing.T) {
	f := newFixture(map[string]int{
		model.EmomInterval.Key:  10,
		model.EmomTotal.Key:     3,
		model.EmomCountdown.Key: 4,
	})
	emom := NewEMOM(f.deps())
	emom.Start()
	for i := 0; i < 40; i++ {
		f.driver.Do(func() {
			if emom.countdown.Running() && emom.main.Running() {
				t.Fatalf("both engines running at tick %d", i)
			}
		})
		f.driver.Step()
	}
}

func TestNewForMode(t *testing.T) {
	for _, mode := range model.Modes() {
		controller, ok := NewForMode(mode, Dependencies{})
		if !ok {
			t.Fatalf("NewForMode(%s) failed", mode)
		}
		if controller.Mode() != mode {
			t.Errorf("mode = %s, want %s", controller.Mode(), mode)
		}
		controller.Close()
	}
	if _, ok := NewForMode("tabata", Dependencies{}); ok {
		t.Error("unknown mode accepted")
	}
}
