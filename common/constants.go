// Package common provides shared constants, types, and utilities
// used across the Save State application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.savestate.app"
	// AppName is the display name of the application.
	AppName = "Save State"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "save-state"
)

// File names used by the application.
const (
	StateFileName   = "toggle_state.xml"
	LayoutFileName  = "main_glade.ui"
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "save-state.log"
)

// Widget IDs the layout must define.
const (
	WidgetWindow = "window"
	WidgetStatus = "status"
	WidgetRun    = "toggle"
	WidgetKill   = "kill"
)

// Watcher timing.
const (
	// WatchDebounce coalesces bursts of file events into one reload.
	WatchDebounce = 250 * time.Millisecond
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 360
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 200
	// MinWindowWidth is the minimum window width.
	MinWindowWidth = 200
	// MinWindowHeight is the minimum window height.
	MinWindowHeight = 120
	// WindowTitle is the title of the main window.
	WindowTitle = "Save State"
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)
