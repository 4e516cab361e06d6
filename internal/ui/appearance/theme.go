package appearance

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"wodtimer/internal/core/model"
)

// Resolve maps a preference to the variant that should be shown. System follows osVariant.
func Resolve(preference model.ThemePreference, osVariant fyne.ThemeVariant) fyne.ThemeVariant {
	switch preference {
	case model.ThemeLight:
		return theme.VariantLight
	case model.ThemeDark:
		return theme.VariantDark
	}
	return osVariant
}

// variantTheme renders the default theme in a fixed variant.
type variantTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewTheme returns the default theme pinned to variant.
func NewTheme(variant fyne.ThemeVariant) fyne.Theme {
	return &variantTheme{base: theme.DefaultTheme(), variant: variant}
}

func (pinned *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return pinned.base.Color(name, pinned.variant)
}

func (pinned *variantTheme) Font(style fyne.TextStyle) fyne.Resource {
	return pinned.base.Font(style)
}

func (pinned *variantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return pinned.base.Icon(name)
}

func (pinned *variantTheme) Size(name fyne.ThemeSizeName) float32 {
	return pinned.base.Size(name)
}

// Resolver applies the theme preference to the app and tracks OS variant changes.
type Resolver struct {
	mu         sync.Mutex
	settings   fyne.Settings
	preference model.ThemePreference
	applied    fyne.ThemeVariant
	onChange   func(fyne.ThemeVariant)
}

// NewResolver applies preference immediately. onChange, if set, is called whenever
// the applied variant changes.
func NewResolver(settings fyne.Settings, preference model.ThemePreference, onChange func(fyne.ThemeVariant)) *Resolver {
	resolver := &Resolver{
		settings:   settings,
		preference: preference,
		onChange:   onChange,
	}
	resolver.apply(true)
	settings.AddListener(func(fyne.Settings) {
		resolver.apply(false)
	})
	return resolver
}

// SetPreference switches the preference and re-applies the theme.
func (resolver *Resolver) SetPreference(preference model.ThemePreference) {
	resolver.mu.Lock()
	resolver.preference = preference
	resolver.mu.Unlock()
	resolver.apply(true)
}

// Preference returns the current preference.
func (resolver *Resolver) Preference() model.ThemePreference {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()
	return resolver.preference
}

// Variant returns the variant currently applied.
func (resolver *Resolver) Variant() fyne.ThemeVariant {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()
	return resolver.applied
}

// apply sets the theme when forced or when the resolved variant moved. The settings
// listener fires on every SetTheme, so unforced calls must not set the theme again.
func (resolver *Resolver) apply(force bool) {
	resolver.mu.Lock()
	preference := resolver.preference
	variant := Resolve(preference, resolver.settings.ThemeVariant())
	changed := variant != resolver.applied
	if !force && !changed {
		resolver.mu.Unlock()
		return
	}
	resolver.applied = variant
	resolver.mu.Unlock()

	if force {
		if preference == model.ThemeSystem {
			resolver.settings.SetTheme(theme.DefaultTheme())
		} else {
			resolver.settings.SetTheme(NewTheme(variant))
		}
	}
	if changed && resolver.onChange != nil {
		resolver.onChange(variant)
	}
}
