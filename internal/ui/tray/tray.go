package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"wodtimer/internal/core/model"
)

// MenuHost shows the tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnOpen        func(model.Mode)
	OnTogglePause func()
	OnToggleMute  func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	title       string
	statusItem  *fyne.MenuItem
	showItem    *fyne.MenuItem
	modeItems   []*fyne.MenuItem
	pauseItem   *fyne.MenuItem
	muteItem    *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show window", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	for _, mode := range model.Modes() {
		target := mode
		manager.modeItems = append(manager.modeItems, fyne.NewMenuItem("Open "+mode.Title(), func() {
			if manager.callbacks.OnOpen != nil {
				manager.callbacks.OnOpen(target)
			}
		}))
	}

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})
	manager.pauseItem.Disabled = true

	manager.muteItem = fyne.NewMenuItem("Mute sounds", func() {
		if manager.callbacks.OnToggleMute != nil {
			manager.callbacks.OnToggleMute()
		}
	})

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetWorkout enables the pause item while a workout screen is open.
func (manager *Manager) SetWorkout(active bool) {
	manager.pauseItem.Disabled = !active
	if !active {
		manager.paused = false
		manager.pauseItem.Label = "Pause"
		manager.statusLabel = "idle"
	}
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	if manager.paused == paused {
		return
	}
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
}

// SetMuted updates the mute item.
func (manager *Manager) SetMuted(muted bool) {
	manager.muteItem.Checked = muted
	manager.refreshMenu()
}

// Menu returns the menu currently shown.
func (manager *Manager) Menu() *fyne.Menu {
	items := []*fyne.MenuItem{
		manager.statusItem,
		manager.showItem,
		fyne.NewMenuItemSeparator(),
	}
	items = append(items, manager.modeItems...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.muteItem,
		manager.quitItem,
	)
	return fyne.NewMenu(manager.title, items...)
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}
