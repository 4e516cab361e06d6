package term

import (
	"github.com/charmbracelet/lipgloss"

	"wodtimer/internal/core/model"
)

// Theme defines the color palette for the terminal view.
type Theme struct {
	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color
	Border      lipgloss.Color

	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DarkTheme is the Tokyo Night palette.
var DarkTheme = Theme{
	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),
	Border:      lipgloss.Color("#414868"),
	Accent:      lipgloss.Color("#7aa2f7"),
	Success:     lipgloss.Color("#9ece6a"),
	Warning:     lipgloss.Color("#e0af68"),
	Error:       lipgloss.Color("#f7768e"),
}

// LightTheme is the Tokyo Night Day palette.
var LightTheme = Theme{
	TextPrimary: lipgloss.Color("#3760bf"),
	TextDim:     lipgloss.Color("#848cb5"),
	Border:      lipgloss.Color("#a8aecb"),
	Accent:      lipgloss.Color("#2e7de9"),
	Success:     lipgloss.Color("#587539"),
	Warning:     lipgloss.Color("#8c6c3e"),
	Error:       lipgloss.Color("#f52a65"),
}

// ThemeFor picks a palette. System follows the terminal background.
func ThemeFor(preference model.ThemePreference) Theme {
	switch preference {
	case model.ThemeLight:
		return LightTheme
	case model.ThemeDark:
		return DarkTheme
	}
	if lipgloss.HasDarkBackground() {
		return DarkTheme
	}
	return LightTheme
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Headline  lipgloss.Style
	Clock     lipgloss.Style
	Countdown lipgloss.Style
	Paused    lipgloss.Style
	Done      lipgloss.Style
	Panel     lipgloss.Style
	Cue       lipgloss.Style

	KeyBinding lipgloss.Style
	KeyHint    lipgloss.Style
	Footer     lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	clock := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Bold(true).
		Padding(1, 4)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.TextDim).Italic(true),
		Headline: lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),
		Clock:    clock,
		Countdown: clock.
			Foreground(t.Warning),
		Paused: clock.
			Foreground(t.TextDim),
		Done: clock.
			Foreground(t.Success),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		Cue: lipgloss.NewStyle().Foreground(t.Error).Bold(true),

		KeyBinding: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.TextDim),
		Footer: lipgloss.NewStyle().
			Foreground(t.TextDim),
	}
}
