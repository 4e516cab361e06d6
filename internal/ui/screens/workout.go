package screens

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
	"wodtimer/internal/core/workout"
)

const displayTextSize = 72

// fieldInput edits one configuration field. scale converts the shown unit to seconds.
type fieldInput struct {
	field model.Field
	bound model.Bound
	scale int
	label string
	entry *widget.Entry
}

// control is a mode-specific button enabled by a snapshot predicate.
type control struct {
	button  *widget.Button
	enabled func(workout.Snapshot) bool
}

// workoutScreen renders one controller.
type workoutScreen struct {
	controller *workout.Controller
	inputs     []*fieldInput
	controls   []control

	display  *canvas.Text
	headline *widget.Label
	form     *fyne.Container
	start    *widget.Button
	pause    *widget.Button
	reset    *widget.Button
	content  fyne.CanvasObject
}

func newAMRAPScreen(deps workout.Dependencies) *workoutScreen {
	amrap := workout.NewAMRAP(deps)
	decrement := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { amrap.DecrementRound() })
	increment := widget.NewButtonWithIcon("Round", theme.ContentAddIcon(), func() { amrap.IncrementRound() })
	return newWorkoutScreen(amrap.Controller,
		[]*fieldInput{
			{field: model.FieldDuration, bound: model.AmrapDuration, scale: 60, label: "Duration (minutes)"},
			{field: model.FieldCountdown, bound: model.AmrapCountdown, scale: 1, label: "Countdown (seconds)"},
		},
		[]control{
			{button: decrement, enabled: func(snapshot workout.Snapshot) bool {
				return counting(snapshot) && snapshot.Rounds > 0
			}},
			{button: increment, enabled: counting},
		},
	)
}

func newEMOMScreen(deps workout.Dependencies) *workoutScreen {
	emom := workout.NewEMOM(deps)
	return newWorkoutScreen(emom.Controller,
		[]*fieldInput{
			{field: model.FieldIntervalLength, bound: model.EmomInterval, scale: 1, label: "Interval Time (seconds)"},
			{field: model.FieldTotalIntervals, bound: model.EmomTotal, scale: 1, label: "Total Intervals"},
			{field: model.FieldCountdown, bound: model.EmomCountdown, scale: 1, label: "Countdown (seconds)"},
		},
		nil,
	)
}

func newForTimeScreen(deps workout.Dependencies) *workoutScreen {
	forTime := workout.NewForTime(deps)
	done := widget.NewButtonWithIcon("Complete", theme.ConfirmIcon(), func() { forTime.MarkComplete() })
	done.Importance = widget.SuccessImportance
	return newWorkoutScreen(forTime.Controller,
		[]*fieldInput{
			{field: model.FieldCountdown, bound: model.ForTimeCountdown, scale: 1, label: "Countdown (seconds)"},
		},
		[]control{{button: done, enabled: counting}},
	)
}

func counting(snapshot workout.Snapshot) bool {
	return !snapshot.InCountdown && snapshot.Status == timekeeper.StatusRunning
}

func newWorkoutScreen(controller *workout.Controller, inputs []*fieldInput, controls []control) *workoutScreen {
	screen := &workoutScreen{
		controller: controller,
		inputs:     inputs,
		controls:   controls,
	}

	screen.display = canvas.NewText("", color.NRGBA{})
	screen.display.TextSize = displayTextSize
	screen.display.TextStyle = fyne.TextStyle{Monospace: true}
	screen.display.Alignment = fyne.TextAlignCenter
	screen.headline = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	formItems := make([]fyne.CanvasObject, 0, len(inputs)*2)
	for _, input := range inputs {
		input.entry = widget.NewEntry()
		input.entry.OnSubmitted = func(string) { screen.applyInputs() }
		formItems = append(formItems, widget.NewLabel(input.label), input.entry)
	}
	screen.form = container.New(layout.NewFormLayout(), formItems...)

	screen.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), screen.handleStart)
	screen.start.Importance = widget.HighImportance
	screen.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), controller.Pause)
	screen.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), controller.Reset)

	buttons := container.NewHBox(layout.NewSpacer(), screen.start, screen.pause, screen.reset, layout.NewSpacer())
	extras := container.NewHBox(layout.NewSpacer())
	for _, item := range controls {
		extras.Add(item.button)
	}
	extras.Add(layout.NewSpacer())

	screen.content = container.NewVBox(
		screen.form,
		screen.headline,
		screen.display,
		extras,
		buttons,
	)

	screen.render(controller.Snapshot())
	return screen
}

// listen forwards controller events to the UI thread until the controller is closed.
func (screen *workoutScreen) listen() {
	events := screen.controller.Subscribe(32)
	go func() {
		for event := range events {
			snapshot := event.Snapshot
			fyne.Do(func() {
				screen.render(snapshot)
			})
		}
	}()
}

func (screen *workoutScreen) handleStart() {
	if screen.controller.Snapshot().Phase == workout.PhaseConfiguring {
		screen.applyInputs()
	}
	screen.controller.Start()
}

// applyInputs configures every edited field and restores the text of rejected ones.
// An entry still showing the current value is left alone, so a duration that is not
// a whole number of minutes survives a Start.
func (screen *workoutScreen) applyInputs() {
	config := screen.controller.Snapshot().Config
	for _, input := range screen.inputs {
		current := config.Get(input.field)
		minimum := (input.bound.Min + input.scale - 1) / input.scale
		value, ok := model.ParseBounded(input.entry.Text, model.Bound{Min: minimum})
		if ok && value == current/input.scale {
			continue
		}
		if ok && screen.controller.Configure(input.field, value*input.scale) {
			continue
		}
		input.entry.SetText(input.format(current))
	}
}

func (input *fieldInput) format(seconds int) string {
	return fmt.Sprintf("%d", seconds/input.scale)
}

func (screen *workoutScreen) render(snapshot workout.Snapshot) {
	configuring := snapshot.Phase == workout.PhaseConfiguring
	paused := snapshot.Status == timekeeper.StatusPaused

	screen.display.Text = snapshot.Display
	screen.display.Color = theme.Color(theme.ColorNameForeground)
	if snapshot.InCountdown {
		screen.display.Color = theme.Color(theme.ColorNameWarning)
	}
	screen.display.Refresh()
	screen.headline.SetText(snapshot.Headline())

	for _, input := range screen.inputs {
		if configuring {
			input.entry.Enable()
		} else {
			input.entry.Disable()
		}
		if configuring && input.entry.Text == "" {
			input.entry.SetText(input.format(snapshot.Config.Get(input.field)))
		}
	}
	if configuring {
		screen.form.Show()
	} else {
		screen.form.Hide()
	}

	switch {
	case configuring:
		screen.start.SetText("Start")
		screen.start.Show()
		screen.pause.Hide()
	case paused:
		screen.start.SetText("Resume")
		screen.start.Show()
		screen.pause.Hide()
	default:
		screen.start.Hide()
		screen.pause.Show()
		if snapshot.InCountdown {
			screen.pause.Disable()
		} else {
			screen.pause.Enable()
		}
	}

	if configuring && snapshot.Status == timekeeper.StatusIdle && snapshot.Rounds == 0 {
		screen.reset.Disable()
	} else {
		screen.reset.Enable()
	}

	for _, item := range screen.controls {
		if item.enabled(snapshot) {
			item.button.Enable()
		} else {
			item.button.Disable()
		}
	}
}

func (screen *workoutScreen) close() {
	screen.controller.Close()
}
