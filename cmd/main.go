package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
	"wodtimer/internal/logging"
	"wodtimer/internal/storage"
	"wodtimer/internal/ui/preferences"
)

const (
	appName = "WODTimer"
	appID   = "com.wodtimer.app"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
	tick       time.Duration
}

func newRootCmd() *cobra.Command {
	options := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "wodtimer",
		Short: "AMRAP, EMOM and For-Time workout timer",
		Long: `WODTimer is a workout timer with AMRAP, EMOM and For-Time modes.
Without a subcommand it opens the desktop window and tray menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(options)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.configPath, "config", "", "Settings file (default: user config dir)")
	flags.StringVar(&options.logLevel, "log-level", "info", "Log level: silent, error, info, verbose, debug")
	flags.StringVar(&options.logFile, "log-file", "", "Append log output to this file")
	flags.DurationVar(&options.tick, "tick", time.Second, "Length of one timer second")
	_ = flags.MarkHidden("tick")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd(options))
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wodtimer version %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "date: %s\n", date)
		},
	}
}

// environment holds what every front-end needs.
type environment struct {
	logger      *logging.Logger
	store       *storage.Store
	preferences model.Preferences
	driver      *timekeeper.Driver
}

func (options *globalOptions) open() (*environment, error) {
	level, err := logging.ParseLevel(options.logLevel)
	if err != nil {
		return nil, err
	}
	if options.tick <= 0 {
		return nil, fmt.Errorf("--tick must be positive, got %s", options.tick)
	}
	logger, err := logging.New(level, options.logFile)
	if err != nil {
		return nil, err
	}

	configPath := options.configPath
	if configPath == "" {
		configPath, err = storage.ResolvePath(appName)
		if err != nil {
			logger.Error("%v; settings will not be saved", err)
		}
	}
	store, err := storage.Open(configPath)
	if err != nil {
		logger.Error("load settings: %v", err)
	}
	logger.Debug("settings file: %s", store.Path())

	return &environment{
		logger:      logger,
		store:       store,
		preferences: preferences.Load(store),
		driver:      timekeeper.NewDriver(timekeeper.Config{TickInterval: options.tick}),
	}, nil
}

func (env *environment) close() {
	env.driver.Stop()
	_ = env.logger.Close()
}
