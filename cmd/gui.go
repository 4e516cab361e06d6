package main

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
	"wodtimer/internal/core/workout"
	"wodtimer/internal/platform"
	"wodtimer/internal/ui/appearance"
	"wodtimer/internal/ui/preferences"
	"wodtimer/internal/ui/screens"
	"wodtimer/internal/ui/tray"
)

// mutePublisher reports mute changes made from the settings screen.
type mutePublisher struct {
	*platform.SoundPlayer
	onChange func(bool)
}

func (publisher *mutePublisher) SetMuted(muted bool) {
	publisher.SoundPlayer.SetMuted(muted)
	if publisher.onChange != nil {
		publisher.onChange(muted)
	}
}

func newSoundPlayer(env *environment) *platform.SoundPlayer {
	return platform.NewSoundPlayer(platform.SoundConfig{
		Muted:  env.preferences.Muted,
		Logger: env.logger,
	})
}

func runGUI(options *globalOptions) error {
	env, err := options.open()
	if err != nil {
		return err
	}
	defer env.close()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			env.logger.Info("%s: %v", appName, err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	player := newSoundPlayer(env)
	defer player.Close()
	cues := &mutePublisher{SoundPlayer: player}

	env.driver.Start()

	fyneApp := app.NewWithID(appID)
	resolver := appearance.NewResolver(fyneApp.Settings(), env.preferences.Theme, func(variant fyne.ThemeVariant) {
		env.logger.Debug("theme variant %d applied", variant)
	})

	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(440, 600))

	nav := screens.NewNavigator(window, screens.Dependencies{
		Driver: env.driver,
		Store:  env.store,
		Cues:   cues,
		Logger: env.logger,
		Theme:  resolver,
		About: preferences.About{
			Name:        appName,
			Version:     version,
			Description: "A workout timer for AMRAP, EMOM and For-Time sessions",
		},
	})
	defer nav.Close()

	guard.OnActivate(func() {
		fyne.Do(func() {
			window.Show()
			window.RequestFocus()
		})
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		installTray(desktopApp, fyneApp, window, nav, cues, env)
		window.SetCloseIntercept(func() {
			window.Hide()
		})
	} else {
		env.logger.Verbose("system tray unsupported on this platform")
	}

	env.logger.Info("%s %s started", appName, version)
	window.Show()
	fyneApp.Run()
	return nil
}

func installTray(desktopApp desktop.App, fyneApp fyne.App, window fyne.Window, nav *screens.Navigator, cues *mutePublisher, env *environment) {
	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, appName, tray.Callbacks{
		OnShow: func() {
			window.Show()
			window.RequestFocus()
		},
		OnOpen: func(mode model.Mode) {
			nav.Show(screens.ScreenFor(mode))
			window.Show()
			window.RequestFocus()
		},
		OnTogglePause: func() {
			if controller := nav.Active(); controller != nil {
				controller.TogglePause()
			}
		},
		OnToggleMute: func() {
			settings := preferences.Load(env.store)
			settings.Muted = !cues.Muted()
			if err := preferences.Save(env.store, settings); err != nil {
				env.logger.Error("save preferences: %v", err)
			}
			cues.SetMuted(settings.Muted)
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})
	trayManager.SetMuted(cues.Muted())
	cues.onChange = trayManager.SetMuted

	nav.OnChange(func(_ screens.Screen, controller *workout.Controller) {
		trayManager.SetWorkout(controller != nil)
		if controller == nil {
			return
		}
		trayManager.SetStatus(controller.Snapshot().Summary())
		events := controller.Subscribe(8)
		go func() {
			for event := range events {
				snapshot := event.Snapshot
				fyne.Do(func() {
					trayManager.SetStatus(snapshot.Summary())
					trayManager.SetPaused(snapshot.Status == timekeeper.StatusPaused)
				})
			}
		}()
	})
}
