package term

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/workout"
)

// Options configures a terminal session.
type Options struct {
	Mode  model.Mode
	Deps  workout.Dependencies
	Theme model.ThemePreference
	// Overrides are applied before the first render and also saved to the store.
	Overrides map[model.Field]int
	// Autostart begins the workout without waiting for a key.
	Autostart bool
	// Input and Output replace the terminal; nil keeps stdin/stdout.
	Input  io.Reader
	Output io.Writer
}

// Run runs one workout in the terminal until the user quits.
func Run(options Options) error {
	session, ok := NewSession(options.Mode, options.Deps)
	if !ok {
		return fmt.Errorf("unknown mode %q", options.Mode)
	}
	defer session.Controller.Close()

	for field, value := range options.Overrides {
		if !session.Controller.Configure(field, value) {
			return fmt.Errorf("invalid %s %d for %s", field, value, options.Mode.Title())
		}
	}
	if options.Autostart {
		session.Controller.Start()
	}

	programOptions := []tea.ProgramOption{tea.WithAltScreen()}
	if options.Input != nil {
		programOptions = append(programOptions, tea.WithInput(options.Input))
	}
	if options.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(options.Output))
	}

	program := tea.NewProgram(NewModel(session, NewStyles(ThemeFor(options.Theme))), programOptions...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
