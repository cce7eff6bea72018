// Package ui provides the graphical user interface for Save State.
//
// The window is loaded from a GtkBuilder layout holding a status label and
// two toggle buttons, "Run" and "Kill". The buttons are coupled through a
// toggle.Pair so exactly one of them is active, and every transition is
// written to the XML state file.
//
// # Components
//
//   - Application: GTK application lifecycle, persistence and history
//   - MainWindow: builder layout, header bar menu and status label
//   - TrayIndicator: optional system tray mirror of the pair
//   - Notifier: desktop notifications over D-Bus
//   - PreferencesDialog: settings editor
//
// # Thread Safety
//
// GTK operations must execute on the main thread. The state file watcher
// and the tray menu run on their own goroutines and hand every change to
// the main thread with glib.IdleAdd:
//
//	glib.IdleAdd(func() {
//	    app.SetState(st, state.SourceWatcher)
//	})
package ui
