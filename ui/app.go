package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/config"
	"github.com/yllada/save-state/state"
)

// Application represents the main application
type Application struct {
	app      *gtk.Application
	window   *MainWindow
	config   *config.Config
	store    *state.Store
	history  *state.History
	effects  *state.Effects
	watcher  *state.Watcher
	notifier *Notifier
	tray     *TrayIndicator
	version  string

	ctx    context.Context
	cancel context.CancelFunc

	// source of the transition currently being applied to the pair
	source string

	shuttingDown atomic.Bool
}

// NewApplication creates a new application. history may be nil. Cancelling
// ctx quits the application.
func NewApplication(ctx context.Context, appID, version string, cfg *config.Config, history *state.History) *Application {
	app := gtk.NewApplication(appID, gio.ApplicationFlagsNone)
	ctx, cancel := context.WithCancel(ctx)

	application := &Application{
		app:      app,
		config:   cfg,
		store:    state.NewStore(common.AbsPath(cfg.EffectiveStateFile())),
		history:  history,
		notifier: NewNotifier(common.AppName),
		version:  version,
		ctx:      ctx,
		cancel:   cancel,
		source:   state.SourceUI,
	}

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(application.onShutdown)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	go quitOnCancel(a.ctx, &a.shuttingDown, func() {
		glib.IdleAdd(a.Quit)
	})
	return a.app.Run(args)
}

// quitOnCancel calls quit once ctx is cancelled from outside, e.g. by
// SIGTERM. It returns without calling quit when shuttingDown is already set.
func quitOnCancel(ctx context.Context, shuttingDown *atomic.Bool, quit func()) {
	<-ctx.Done()
	if shuttingDown.Load() {
		return
	}
	common.LogInfo("Quitting: %v", context.Cause(ctx))
	quit()
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	// A second activation only raises the existing window.
	if a.window != nil {
		a.showWindow()
		return
	}

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles()

	window, err := NewMainWindow(a)
	if err != nil {
		common.LogError("Could not build main window: %v", err)
		a.app.Quit()
		return
	}
	a.window = window
	a.effects = &state.Effects{
		Store:   a.store,
		History: a.history,
		Label:   a.window.SetStatus,
		Report: func(err error) {
			a.window.showError("Could not save state", err.Error())
		},
	}

	initial, err := a.store.Load()
	if err != nil {
		common.LogWarn("Could not load state from %s, using %s: %v", a.store.Path(), initial, err)
	} else {
		common.LogInfo("Loaded state %s from %s", initial, a.store.Path())
	}

	a.window.pair.Init(initial)
	a.window.pair.OnChange(a.onStateChanged)
	a.window.SetStatus(state.StartupLabel(initial), initial)
	a.window.Show()

	if a.config.ShowTray {
		a.tray = NewTrayIndicator(a)
		a.tray.SetState(initial)
		go a.tray.Run()
	}

	if a.config.WatchStateFile {
		a.startWatcher()
	}
}

// onShutdown releases background resources once the last window closed.
func (a *Application) onShutdown() {
	a.shuttingDown.Store(true)
	a.cancel()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.tray != nil {
		a.tray.Quit()
	}
	common.LogInfo("Shutting down")
}

// startWatcher reflects external edits of the state file into the toggles.
func (a *Application) startWatcher() {
	a.watcher = state.NewWatcher(a.store, func(st state.RunState) {
		glib.IdleAdd(func() {
			a.SetState(st, state.SourceWatcher)
		})
	})

	if err := a.watcher.Start(a.ctx); err != nil {
		common.LogWarn("State file watcher disabled: %v", err)
		a.watcher = nil
	}
}

// SetState moves the toggle pair to st on behalf of source.
// Must run on the GTK main thread.
func (a *Application) SetState(st state.RunState, source string) {
	if a.window == nil {
		return
	}

	a.source = source
	defer func() { a.source = state.SourceUI }()
	a.window.pair.Set(st)
}

// onStateChanged is the side effect of every transition of the pair:
// persist, relabel, journal and notify.
func (a *Application) onStateChanged(st state.RunState) {
	source := a.source
	common.LogInfo("State changed to %s (%s)", st, source)

	_ = a.effects.Apply(a.ctx, st, source)

	if a.tray != nil {
		a.tray.SetState(st)
	}

	if a.config.ShowNotifications {
		go a.notifier.NotifyState(st)
	}
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName(common.ConfigDirName)
}

// GetConfig returns the configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}

	switch theme {
	case common.ThemeLight:
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", false)
	case common.ThemeDark:
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", true)
	default:
		// "auto": leave the system color scheme alone
	}
}

// showWindow shows the main window
func (a *Application) showWindow() {
	if a.window != nil {
		a.window.window.Present()
	}
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}

// statusSummary is the one-line state description used by the tray and
// notifications.
func statusSummary(st state.RunState) string {
	return fmt.Sprintf("%s is %s", common.AppName, st)
}
