package ui

import (
	_ "embed"
	"fmt"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/state"
	"github.com/yllada/save-state/toggle"
)

// defaultLayout is used when the layout file is missing.
//
//go:embed main_glade.ui
var defaultLayout string

// MainWindow is the window described by the layout: a status label above
// the run and kill toggle buttons.
type MainWindow struct {
	app    *Application
	window *gtk.Window
	status *gtk.Label
	run    *gtk.ToggleButton
	kill   *gtk.ToggleButton
	pair   *toggle.Pair
}

// NewMainWindow loads the layout and wires the toggle pair.
func NewMainWindow(app *Application) (*MainWindow, error) {
	builder, err := loadLayout(common.AbsPath(app.GetConfig().EffectiveLayoutFile()))
	if err != nil {
		return nil, err
	}

	mw := &MainWindow{app: app}

	if mw.window, err = lookup[*gtk.Window](builder, common.WidgetWindow); err != nil {
		return nil, err
	}
	if mw.status, err = lookup[*gtk.Label](builder, common.WidgetStatus); err != nil {
		return nil, err
	}
	if mw.run, err = lookup[*gtk.ToggleButton](builder, common.WidgetRun); err != nil {
		return nil, err
	}
	if mw.kill, err = lookup[*gtk.ToggleButton](builder, common.WidgetKill); err != nil {
		return nil, err
	}

	mw.window.SetTitle(common.WindowTitle)
	mw.window.SetDefaultSize(app.config.WindowWidth, app.config.WindowHeight)
	mw.window.SetIconName(common.ConfigDirName)
	app.app.AddWindow(mw.window)

	mw.run.AddCSSClass("run-toggle")
	mw.kill.AddCSSClass("kill-toggle")

	mw.pair = toggle.NewPair(mw.run, mw.kill)
	mw.run.ConnectToggled(func() { mw.pair.Toggled(mw.run) })
	mw.kill.ConnectToggled(func() { mw.pair.Toggled(mw.kill) })

	mw.createHeaderBar()
	return mw, nil
}

// loadLayout builds from path, or from the embedded layout when path does
// not exist.
func loadLayout(path string) (*gtk.Builder, error) {
	builder := gtk.NewBuilder()

	if path != "" && common.FileExists(path) {
		if err := builder.AddFromFile(path); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrLayout, path, err)
		}
		common.LogDebug("Loaded layout from %s", path)
		return builder, nil
	}

	common.LogDebug("Layout %q not found, using built-in layout", path)
	if err := builder.AddFromString(defaultLayout, -1); err != nil {
		return nil, fmt.Errorf("%w: built-in layout: %w", common.ErrLayout, err)
	}
	return builder, nil
}

// lookup fetches the object with the given ID and checks its type.
func lookup[T coreglib.Objector](builder *gtk.Builder, id string) (T, error) {
	var zero T

	obj := builder.GetObject(id)
	if obj == nil {
		return zero, fmt.Errorf("%w: no object with id %q", common.ErrLayout, id)
	}

	typed, ok := obj.Cast().(T)
	if !ok {
		return zero, fmt.Errorf("%w: object %q is %T, want %T", common.ErrLayout, id, obj.Cast(), zero)
	}
	return typed, nil
}

// createHeaderBar adds the menu button to the layout's window.
func (mw *MainWindow) createHeaderBar() {
	headerBar := gtk.NewHeaderBar()

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	headerBar.PackEnd(menuButton)

	mw.window.SetTitlebar(headerBar)
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	stateSection := gio.NewMenu()
	stateSection.Append("Toggle", "app.toggle")
	menu.AppendSection("", &stateSection.MenuModel)

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *MainWindow) setupActions() {
	// Toggle action (Ctrl+T)
	toggleAction := gio.NewSimpleAction("toggle", nil)
	toggleAction.ConnectActivate(func(_ *glib.Variant) {
		mw.pair.Toggle()
	})
	mw.app.app.AddAction(toggleAction)
	mw.app.app.SetAccelsForAction("app.toggle", []string{"<Control>t"})

	// Preferences action (Ctrl+,)
	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		NewPreferencesDialog(mw).Show()
	})
	mw.app.app.AddAction(preferencesAction)
	mw.app.app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onAbout()
	})
	mw.app.app.AddAction(aboutAction)

	// Quit action (Ctrl+Q)
	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		mw.window.Close()
	})
	mw.app.app.AddAction(quitAction)
	mw.app.app.SetAccelsForAction("app.quit", []string{"<Control>q"})
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// SetStatus updates the status label and its state styling.
func (mw *MainWindow) SetStatus(text string, st state.RunState) {
	mw.status.SetText(text)
	if st == state.Running {
		mw.status.RemoveCSSClass("status-idle")
		mw.status.AddCSSClass("status-running")
	} else {
		mw.status.RemoveCSSClass("status-running")
		mw.status.AddCSSClass("status-idle")
	}
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(mw.window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName(common.ConfigDirName)
	about.SetVersion(mw.app.GetVersion())
	about.SetComments("Keeps the state of a run/kill toggle across restarts\nin a small XML file.")
	about.SetCopyright("© 2026 Yadian Llada Lopez")
	about.SetAuthors([]string{"Yadian Llada Lopez <yadian@y3lcorp.com>"})

	about.Show()
}

// showError displays an error dialog.
func (mw *MainWindow) showError(title, message string) {
	window := gtk.NewWindow()
	window.SetTitle(title)
	window.SetTransientFor(mw.window)
	window.SetModal(true)
	window.SetDefaultSize(320, 140)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(24)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)
	mainBox.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-error-symbolic")
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("heading")
	mainBox.Append(titleLabel)

	msgLabel := gtk.NewLabel(message)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	mainBox.Append(msgLabel)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.SetHAlign(gtk.AlignCenter)
	okBtn.SetMarginTop(12)
	okBtn.ConnectClicked(func() {
		window.Close()
	})
	mainBox.Append(okBtn)

	window.SetChild(mainBox)
	window.Show()
}
