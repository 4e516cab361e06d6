package preferences

import (
	"fmt"

	"wodtimer/internal/core/model"
)

// Store persists preference values.
type Store interface {
	Bool(key string, fallback bool) bool
	SetBool(key string, value bool) error
	String(key string, fallback string) string
	SetString(key string, value string) error
}

// Load reads preferences, using defaults for missing or unknown values.
func Load(store Store) model.Preferences {
	settings := model.DefaultPreferences()
	settings.Theme = model.ParseThemePreference(store.String(model.KeyTheme, string(settings.Theme)))
	settings.Muted = store.Bool(model.KeyMuted, settings.Muted)
	return settings
}

// Save writes preferences to the store.
func Save(store Store, settings model.Preferences) error {
	if err := store.SetString(model.KeyTheme, string(settings.Theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := store.SetBool(model.KeyMuted, settings.Muted); err != nil {
		return fmt.Errorf("save mute: %w", err)
	}
	return nil
}
