package screens

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
	"wodtimer/internal/core/workout"
	"wodtimer/internal/ui/preferences"
)

// Screen names a page of the main window.
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenAMRAP    Screen = "amrap"
	ScreenEMOM     Screen = "emom"
	ScreenForTime  Screen = "fortime"
	ScreenSettings Screen = "settings"
)

// ScreenFor returns the screen that runs mode.
func ScreenFor(mode model.Mode) Screen {
	return Screen(mode)
}

// Store is the settings store shared by the workout and settings screens.
type Store interface {
	workout.SettingsStore
	preferences.Store
}

// Cues plays workout cues and holds the mute switch.
type Cues interface {
	workout.CuePlayer
	SetMuted(muted bool)
	Muted() bool
}

// Logger receives UI failures.
type Logger interface {
	workout.Logger
	Info(format string, v ...interface{})
}

// ThemeSetter applies a theme preference.
type ThemeSetter interface {
	SetPreference(preference model.ThemePreference)
}

// Dependencies are the collaborators shared by every screen.
type Dependencies struct {
	Driver *timekeeper.Driver
	Store  Store
	Cues   Cues
	Logger Logger
	Theme  ThemeSetter
	About  preferences.About
}

// Navigator swaps the window content between screens. A workout controller lives
// only while its screen is shown.
type Navigator struct {
	window   fyne.Window
	deps     Dependencies
	current  Screen
	view     *workoutScreen
	settings *preferences.Panel
	onChange []func(Screen, *workout.Controller)
	// live forwards controller events to the widgets.
	live bool
}

// NewNavigator creates a navigator showing the home screen.
func NewNavigator(window fyne.Window, deps Dependencies) *Navigator {
	return newNavigator(window, deps, true)
}

func newNavigator(window fyne.Window, deps Dependencies, live bool) *Navigator {
	nav := &Navigator{
		window: window,
		deps:   deps,
		live:   live,
	}
	nav.Show(ScreenHome)
	return nav
}

// OnChange registers a callback run after every screen change. The controller is
// nil for screens without a workout.
func (nav *Navigator) OnChange(callback func(Screen, *workout.Controller)) {
	nav.onChange = append(nav.onChange, callback)
}

// Current returns the visible screen.
func (nav *Navigator) Current() Screen {
	return nav.current
}

// Active returns the controller of the visible workout screen, or nil.
func (nav *Navigator) Active() *workout.Controller {
	if nav.view == nil {
		return nil
	}
	return nav.view.controller
}

// Show tears down the current workout, if any, and displays screen.
func (nav *Navigator) Show(screen Screen) {
	if nav.view != nil {
		nav.view.close()
		nav.view = nil
	}
	nav.settings = nil

	var body fyne.CanvasObject
	title := ""
	switch screen {
	case ScreenAMRAP:
		nav.view = newAMRAPScreen(nav.workoutDeps())
		title = model.ModeAMRAP.Title()
	case ScreenEMOM:
		nav.view = newEMOMScreen(nav.workoutDeps())
		title = model.ModeEMOM.Title()
	case ScreenForTime:
		nav.view = newForTimeScreen(nav.workoutDeps())
		title = model.ModeForTime.Title()
	case ScreenSettings:
		nav.settings = preferences.New(preferences.Load(nav.deps.Store), nav.deps.About, nav.applySettings)
		body = nav.settings.Content()
		title = "Settings"
	default:
		screen = ScreenHome
		body = nav.home()
	}
	if nav.view != nil {
		body = nav.view.content
		if nav.live {
			nav.view.listen()
		}
	}

	nav.current = screen
	if screen == ScreenHome {
		nav.window.SetContent(container.NewPadded(body))
	} else {
		nav.window.SetContent(container.NewBorder(nav.header(title), nil, nil, nil, container.NewPadded(body)))
	}

	for _, callback := range nav.onChange {
		callback(screen, nav.Active())
	}
}

// Close releases the active workout.
func (nav *Navigator) Close() {
	if nav.view != nil {
		nav.view.close()
		nav.view = nil
	}
}

func (nav *Navigator) workoutDeps() workout.Dependencies {
	return workout.Dependencies{
		Driver: nav.deps.Driver,
		Store:  nav.deps.Store,
		Cues:   nav.deps.Cues,
		Logger: nav.deps.Logger,
	}
}

func (nav *Navigator) header(title string) fyne.CanvasObject {
	back := widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), func() {
		nav.Show(ScreenHome)
	})
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewBorder(nil, widget.NewSeparator(), back, nil, heading)
}

func (nav *Navigator) home() fyne.CanvasObject {
	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Choose Your Workout Timer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	for _, mode := range model.Modes() {
		target := ScreenFor(mode)
		button := widget.NewButton(mode.Title(), func() { nav.Show(target) })
		button.Importance = widget.HighImportance
		items = append(items,
			button,
			widget.NewLabelWithStyle(mode.Description(), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		)
	}
	settings := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		nav.Show(ScreenSettings)
	})
	items = append(items, layout.NewSpacer(), settings)
	return container.NewVBox(items...)
}

func (nav *Navigator) applySettings(settings model.Preferences) {
	if err := preferences.Save(nav.deps.Store, settings); err != nil && nav.deps.Logger != nil {
		nav.deps.Logger.Error("save preferences: %v", err)
	}
	if nav.deps.Cues != nil {
		nav.deps.Cues.SetMuted(settings.Muted)
	}
	if nav.deps.Theme != nil {
		nav.deps.Theme.SetPreference(settings.Theme)
	}
	if nav.deps.Logger != nil {
		nav.deps.Logger.Info("preferences updated: theme=%s muted=%v", settings.Theme, settings.Muted)
	}
}
