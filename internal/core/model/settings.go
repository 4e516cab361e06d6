package model

// ThemePreference is the user's theme choice.
type ThemePreference string

const (
	ThemeSystem ThemePreference = "system"
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
)

// ParseThemePreference falls back to ThemeSystem for unknown values.
func ParseThemePreference(value string) ThemePreference {
	switch ThemePreference(value) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

const (
	KeyMuted = "sound.muted"
	KeyTheme = "appearance.theme"
)

// Preferences holds the application-wide settings edited on the Settings screen.
type Preferences struct {
	Theme ThemePreference
	Muted bool
}

// DefaultPreferences returns defaults for a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme: ThemeSystem,
		Muted: false,
	}
}
