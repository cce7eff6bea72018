// Package ui provides the graphical user interface for Save State.
// This file contains desktop notifications for state changes.
package ui

import (
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/state"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = notifyService + ".Notify"
	notifyTimeoutMs = int32(4000)
)

// Notification urgency hint values.
const (
	urgencyLow    byte = 0
	urgencyNormal byte = 1
)

// Notifier sends desktop notifications over the session bus, falling back
// to notify-send. Consecutive notifications replace each other.
type Notifier struct {
	appName string

	mu       sync.Mutex
	lastID   uint32
	fallback bool
}

// NewNotifier creates a notifier that reports as appName.
func NewNotifier(appName string) *Notifier {
	return &Notifier{appName: appName}
}

// NotifyState announces a transition to st.
func (n *Notifier) NotifyState(st state.RunState) {
	icon := "media-playback-stop"
	urgency := urgencyLow
	if st == state.Running {
		icon = "media-playback-start"
		urgency = urgencyNormal
	}

	n.Notify(state.RuntimeLabel(st), statusSummary(st), icon, urgency)
}

// Notify shows a notification.
func (n *Notifier) Notify(title, body, icon string, urgency byte) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.fallback {
		id, err := n.notifyDBus(title, body, icon, urgency)
		if err == nil {
			n.lastID = id
			return
		}
		common.LogDebug("D-Bus notifications unavailable, using notify-send: %v", err)
		n.fallback = true
	}

	n.notifySend(title, body, icon, urgency)
}

func (n *Notifier) notifyDBus(title, body, icon string, urgency byte) (uint32, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, err
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	var id uint32
	err = conn.Object(notifyService, dbus.ObjectPath(notifyPath)).
		Call(notifyMethod, 0,
			n.appName, n.lastID, icon, title, body,
			[]string{}, hints, notifyTimeoutMs,
		).Store(&id)
	return id, err
}

func (n *Notifier) notifySend(title, body, icon string, urgency byte) {
	level := "low"
	if urgency >= urgencyNormal {
		level = "normal"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+n.appName,
		"--icon="+icon,
		"--urgency="+level,
		title,
		body,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}
