// Package ui provides the graphical user interface for Save State.
// This file contains the PreferencesDialog component for application settings.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/config"
)

// PreferencesDialog represents the preferences dialog.
type PreferencesDialog struct {
	window        *gtk.Window
	mainWindow    *MainWindow
	config        *config.Config
	watchSwitch   *gtk.Switch
	historySwitch *gtk.Switch
	notifySwitch  *gtk.Switch
	traySwitch    *gtk.Switch
	themeDropDown *gtk.DropDown
	themeIDs      []string
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.GetConfig(),
		themeIDs:   []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark},
	}

	pd.build()
	return pd
}

// build constructs the dialog UI.
func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Preferences")
	pd.window.SetTransientFor(pd.mainWindow.window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(460, 0)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// State file section
	stateCard := pd.createCard()

	pathLabel := gtk.NewLabel(pd.config.EffectiveStateFile())
	pathLabel.SetSelectable(true)
	pathLabel.AddCSSClass("dim-label")
	stateCard.Append(pd.createSettingRow("State File", "Where the toggle state is stored", pathLabel))
	stateCard.Append(pd.createSeparator())

	pd.watchSwitch = pd.newSwitch(pd.config.WatchStateFile)
	stateCard.Append(pd.createSettingRow(
		"Follow External Changes",
		"Update the toggles when another program edits the state file (restart required)",
		pd.watchSwitch,
	))
	stateCard.Append(pd.createSeparator())

	pd.historySwitch = pd.newSwitch(pd.config.RecordHistory)
	stateCard.Append(pd.createSettingRow(
		"Record History",
		"Keep a journal of every state change (restart required)",
		pd.historySwitch,
	))

	mainBox.Append(pd.createSection("State", stateCard))

	// Desktop section
	desktopCard := pd.createCard()

	pd.notifySwitch = pd.newSwitch(pd.config.ShowNotifications)
	desktopCard.Append(pd.createSettingRow(
		"Notifications",
		"Show a notification when the state changes",
		pd.notifySwitch,
	))
	desktopCard.Append(pd.createSeparator())

	pd.traySwitch = pd.newSwitch(pd.config.ShowTray)
	desktopCard.Append(pd.createSettingRow(
		"Tray Icon",
		"Show the state in the system tray (restart required)",
		pd.traySwitch,
	))
	desktopCard.Append(pd.createSeparator())

	themeModel := gtk.NewStringList([]string{"System Default", "Light", "Dark"})
	pd.themeDropDown = gtk.NewDropDown(themeModel, nil)
	pd.themeDropDown.SetSelected(pd.findThemeIndex(pd.config.Theme))
	pd.themeDropDown.SetVAlign(gtk.AlignCenter)
	desktopCard.Append(pd.createSettingRow(
		"Theme",
		"Choose the visual appearance of the application",
		pd.themeDropDown,
	))

	mainBox.Append(pd.createSection("Desktop", desktopCard))
	rootBox.Append(mainBox)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	// Defaults standing in for an unreadable config file are not saved.
	if pd.config.IsFallback() {
		saveBtn.SetSensitive(false)
		saveBtn.SetTooltipText("The configuration file could not be loaded; fix " + configPathHint() + " first")
	}

	rootBox.Append(buttonBar)
	pd.window.SetChild(rootBox)
}

func (pd *PreferencesDialog) newSwitch(active bool) *gtk.Switch {
	sw := gtk.NewSwitch()
	sw.SetActive(active)
	sw.SetVAlign(gtk.AlignCenter)
	return sw
}

// createSection wraps a card with a heading.
func (pd *PreferencesDialog) createSection(title string, card *gtk.Box) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	section.Append(label)
	section.Append(card)

	return section
}

// createCard creates a styled card container for settings.
func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (pd *PreferencesDialog) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(12)
	row.SetMarginBottom(12)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

func (pd *PreferencesDialog) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// findThemeIndex returns the index of a theme ID, or 0 if not found.
func (pd *PreferencesDialog) findThemeIndex(themeID string) uint {
	for i, id := range pd.themeIDs {
		if id == themeID {
			return uint(i)
		}
	}
	return 0
}

// savePreferences saves the current preferences to the config file.
func (pd *PreferencesDialog) savePreferences() {
	pd.config.WatchStateFile = pd.watchSwitch.Active()
	pd.config.RecordHistory = pd.historySwitch.Active()
	pd.config.ShowNotifications = pd.notifySwitch.Active()
	pd.config.ShowTray = pd.traySwitch.Active()

	themeIdx := pd.themeDropDown.Selected()
	if int(themeIdx) < len(pd.themeIDs) {
		pd.config.Theme = pd.themeIDs[themeIdx]
	}
	pd.mainWindow.app.ApplyTheme(pd.config.Theme)

	if err := pd.config.Save(); err != nil {
		common.LogError("Could not save preferences: %v", err)
		pd.mainWindow.showError("Error", "Could not save preferences: "+err.Error())
		return
	}

	common.LogInfo("Preferences saved to %s", pd.config.Path())
}

func configPathHint() string {
	if path, err := config.DefaultPath(); err == nil {
		return path
	}
	return "the configuration file"
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}
