package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/workout"
	"wodtimer/internal/term"
)

// runFlags are the per-workout overrides of the run command.
type runFlags struct {
	duration  time.Duration
	interval  time.Duration
	intervals int
	countdown time.Duration
	start     bool
}

var fieldFlags = map[string]model.Field{
	"duration":  model.FieldDuration,
	"interval":  model.FieldIntervalLength,
	"intervals": model.FieldTotalIntervals,
	"countdown": model.FieldCountdown,
}

func newRunCmd(options *globalOptions) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <amrap|emom|fortime>",
		Short: "Run a workout in the terminal",
		Long: `Run one workout in the terminal.

Keys: space start/pause/resume, r reset, +/- rounds (AMRAP),
c mark complete (For-Time), q quit.

Flags override the stored configuration and are saved for next time.`,
		Example: `  wodtimer run amrap --duration 20m --countdown 10s
  wodtimer run emom --interval 1m --intervals 12
  wodtimer run fortime --start`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.ModeAMRAP), string(model.ModeEMOM), string(model.ModeForTime)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := model.ParseMode(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("unknown mode %q (want amrap, emom or fortime)", args[0])
			}
			overrides, err := buildOverrides(cmd, mode, flags)
			if err != nil {
				return err
			}
			return runTerminal(options, mode, overrides, flags.start)
		},
	}

	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "AMRAP length, e.g. 20m")
	cmd.Flags().DurationVar(&flags.interval, "interval", 0, "EMOM interval length, e.g. 1m")
	cmd.Flags().IntVar(&flags.intervals, "intervals", 0, "EMOM interval count")
	cmd.Flags().DurationVar(&flags.countdown, "countdown", 0, "Get-ready countdown, e.g. 10s")
	cmd.Flags().BoolVar(&flags.start, "start", false, "Start immediately")
	return cmd
}

// buildOverrides converts the flags the user set into configuration fields, rejecting
// flags that do not apply to mode.
func buildOverrides(cmd *cobra.Command, mode model.Mode, flags *runFlags) (map[model.Field]int, error) {
	variant, _ := workout.VariantFor(mode)
	values := map[string]int{
		"duration":  int(flags.duration / time.Second),
		"interval":  int(flags.interval / time.Second),
		"intervals": flags.intervals,
		"countdown": int(flags.countdown / time.Second),
	}

	overrides := map[model.Field]int{}
	for name, field := range fieldFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		bound, ok := variant.Fields[field]
		if !ok {
			return nil, fmt.Errorf("--%s does not apply to %s", name, mode.Title())
		}
		if !bound.Accepts(values[name]) {
			return nil, fmt.Errorf("--%s is below the %s minimum of %d", name, mode.Title(), bound.Min)
		}
		overrides[field] = values[name]
	}
	return overrides, nil
}

func runTerminal(options *globalOptions, mode model.Mode, overrides map[model.Field]int, start bool) error {
	env, err := options.open()
	if err != nil {
		return err
	}
	defer env.close()

	// Console output would tear the full-screen view.
	env.logger.SetConsole(io.Discard)

	player := newSoundPlayer(env)
	defer player.Close()

	env.driver.Start()
	return term.Run(term.Options{
		Mode: mode,
		Deps: workout.Dependencies{
			Driver: env.driver,
			Store:  env.store,
			Cues:   player,
			Logger: env.logger,
		},
		Theme:     env.preferences.Theme,
		Overrides: overrides,
		Autostart: start,
	})
}
