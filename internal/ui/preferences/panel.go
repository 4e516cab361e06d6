package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"wodtimer/internal/core/model"
)

var themeLabels = []string{"System", "Light", "Dark"}

var themeByLabel = map[string]model.ThemePreference{
	"System": model.ThemeSystem,
	"Light":  model.ThemeLight,
	"Dark":   model.ThemeDark,
}

// About is shown at the bottom of the panel.
type About struct {
	Name        string
	Version     string
	Description string
}

// Panel holds the theme, sound and about sections.
type Panel struct {
	content  fyne.CanvasObject
	settings model.Preferences
	onChange func(model.Preferences)
	theme    *widget.RadioGroup
	mute     *widget.Check
	updating bool
}

// New creates the settings panel. onChange receives every edit immediately.
func New(settings model.Preferences, about About, onChange func(model.Preferences)) *Panel {
	panel := &Panel{
		settings: settings,
		onChange: onChange,
	}

	panel.theme = widget.NewRadioGroup(themeLabels, panel.handleTheme)
	panel.theme.Horizontal = true
	panel.theme.Required = true
	panel.mute = widget.NewCheck("Mute Sound Effects", panel.handleMute)

	aboutName := about.Name
	if about.Version != "" {
		aboutName += " v" + about.Version
	}

	panel.content = container.NewVBox(
		widget.NewLabelWithStyle("Theme", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		panel.theme,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		panel.mute,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("About", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(aboutName),
		widget.NewLabel(about.Description),
	)

	panel.UpdateSettings(settings)
	return panel
}

// Content returns the panel widgets.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

// Settings returns the values currently shown.
func (panel *Panel) Settings() model.Preferences {
	return panel.settings
}

// UpdateSettings replaces the shown values without reporting a change.
func (panel *Panel) UpdateSettings(settings model.Preferences) {
	panel.updating = true
	defer func() { panel.updating = false }()

	panel.settings = settings
	panel.theme.SetSelected(labelForTheme(settings.Theme))
	panel.mute.SetChecked(settings.Muted)
}

func (panel *Panel) handleTheme(label string) {
	preference, ok := themeByLabel[label]
	if !ok || preference == panel.settings.Theme {
		return
	}
	panel.settings.Theme = preference
	panel.notify()
}

func (panel *Panel) handleMute(muted bool) {
	if muted == panel.settings.Muted {
		return
	}
	panel.settings.Muted = muted
	panel.notify()
}

func (panel *Panel) notify() {
	if panel.updating || panel.onChange == nil {
		return
	}
	panel.onChange(panel.settings)
}

func labelForTheme(preference model.ThemePreference) string {
	for label, candidate := range themeByLabel {
		if candidate == preference {
			return label
		}
	}
	return "System"
}
