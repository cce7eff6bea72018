// Package state holds the persisted run/idle flag: the RunState type, the XML
// state document it is stored in, a file watcher for external edits and an
// optional transition journal.
package state

import (
	"fmt"
	"strings"

	"github.com/yllada/save-state/common"
)

// RunState is the single persisted flag. The zero value is Idle.
type RunState bool

const (
	Idle    RunState = false
	Running RunState = true
)

// String returns a human-readable state name.
func (s RunState) String() string {
	if s {
		return "Running"
	}
	return "Idle"
}

// OnOff returns the text stored in the onoff element.
func (s RunState) OnOff() string {
	if s {
		return "ON"
	}
	return "OFF"
}

// ParseRunState parses a user-supplied state name.
func ParseRunState(text string) (RunState, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "on", "run", "running", "true", "1":
		return Running, nil
	case "off", "idle", "kill", "false", "0":
		return Idle, nil
	default:
		return Idle, fmt.Errorf("%w: %q", common.ErrInvalidState, text)
	}
}

// StartupLabel is the status text for a state restored from disk.
func StartupLabel(s RunState) string {
	return "«" + s.String() + "»"
}

// RuntimeLabel is the status text after the user toggled the state.
func RuntimeLabel(s RunState) string {
	return s.String() + ".."
}
