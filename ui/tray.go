// Package ui provides the graphical user interface for Save State.
// This file contains the system tray indicator.
package ui

import (
	"sync"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/state"
)

// TrayIndicator mirrors the toggle pair in the system tray.
// Its menu runs on the systray goroutine; every state change is handed to
// the GTK main thread with glib.IdleAdd.
type TrayIndicator struct {
	app *Application

	mu         sync.Mutex
	ready      bool
	current    state.RunState
	statusItem *systray.MenuItem
	runItem    *systray.MenuItem
	idleItem   *systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{app: app}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon.
func (t *TrayIndicator) Quit() {
	systray.Quit()
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetTitle(common.AppName)

	t.mu.Lock()
	t.statusItem = systray.AddMenuItem("", "Current state")
	t.statusItem.Disable()

	systray.AddSeparator()

	t.runItem = systray.AddMenuItemCheckbox("Run", "Switch to running", false)
	t.idleItem = systray.AddMenuItemCheckbox("Kill", "Switch to idle", false)
	t.ready = true
	current := t.current
	t.mu.Unlock()

	t.render(current)

	go func() {
		for range t.runItem.ClickedCh {
			t.request(state.Running)
		}
	}()
	go func() {
		for range t.idleItem.ClickedCh {
			t.request(state.Idle)
		}
	}()

	systray.AddSeparator()

	showItem := systray.AddMenuItem("Open "+common.AppName, "Show main window")
	go func() {
		for range showItem.ClickedCh {
			glib.IdleAdd(t.app.showWindow)
		}
	}()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(t.app.Quit)
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogDebug("Tray indicator cleanup completed")
}

// request asks the main thread to move the pair to st.
func (t *TrayIndicator) request(st state.RunState) {
	glib.IdleAdd(func() {
		t.app.SetState(st, state.SourceTray)
	})
	// Re-render so a click on the checked item does not uncheck it.
	t.mu.Lock()
	current := t.current
	t.mu.Unlock()
	t.render(current)
}

// SetState updates icon, tooltip and check marks for st.
func (t *TrayIndicator) SetState(st state.RunState) {
	t.mu.Lock()
	t.current = st
	ready := t.ready
	t.mu.Unlock()

	if ready {
		t.render(st)
	}
}

func (t *TrayIndicator) render(st state.RunState) {
	if st == state.Running {
		systray.SetIcon(iconRunning)
	} else {
		systray.SetIcon(iconIdle)
	}
	systray.SetTooltip(statusSummary(st))

	t.statusItem.SetTitle(statusSummary(st))
	if st == state.Running {
		t.runItem.Check()
		t.idleItem.Uncheck()
	} else {
		t.runItem.Uncheck()
		t.idleItem.Check()
	}
}
