// Package cli provides command-line interface functionality for Save State.
// This allows users to inspect and change the persisted state from the
// terminal without launching the GUI application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/state"
)

// CLI represents the command-line interface.
type CLI struct {
	store   *state.Store
	history *state.History
	out     io.Writer
}

// New creates a new CLI instance for the state file at statePath.
// history may be nil when journaling is disabled.
func New(statePath string, history *state.History) *CLI {
	return &CLI{
		store:   state.NewStore(statePath),
		history: history,
		out:     os.Stdout,
	}
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// Status prints the persisted state. A missing state file reports the
// default state.
func (c *CLI) Status() error {
	st, err := c.store.Load()
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "%s (%s)\n", st, c.store.Path())
	case errors.Is(err, common.ErrStateRead) && errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(c.out, "%s (no state file at %s)\n", st, c.store.Path())
	default:
		return err
	}
	return nil
}

// Set writes value ("on", "off", ...) to the state file.
func (c *CLI) Set(ctx context.Context, value string) error {
	st, err := state.ParseRunState(value)
	if err != nil {
		return err
	}

	prev, loadErr := c.store.Load()
	if err := c.store.Save(st); err != nil {
		return err
	}

	if loadErr == nil && prev == st {
		fmt.Fprintf(c.out, "Already %s\n", st)
		return nil
	}

	if c.history != nil {
		if err := c.history.Record(ctx, st, state.SourceCLI); err != nil {
			common.LogWarn("Could not record transition: %v", err)
		}
	}

	fmt.Fprintf(c.out, "✓ %s\n", st)
	return nil
}

// History prints the most recent transitions, newest first.
func (c *CLI) History(ctx context.Context, limit int) error {
	if c.history == nil {
		return fmt.Errorf("%w: history recording is disabled", common.ErrHistory)
	}

	entries, err := c.history.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No transitions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATE\tSOURCE\tSESSION")
	fmt.Fprintln(w, "----\t-----\t------\t-------")

	for _, e := range entries {
		session := e.Session
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.At.Local().Format(time.DateTime), e.State, e.Source, session)
	}

	return w.Flush()
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Save State - toggle state persistence sample

Usage:
  save-state [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --state PATH      State file (default: toggle_state.xml)
  --layout PATH     GtkBuilder layout file (default: main_glade.ui)
  --status          Print the persisted state
  --set on|off      Write a new state
  --history N       Show the last N recorded transitions
  --help            Show this help message

Examples:
  save-state --status
  save-state --set on
  save-state --history 10

Notes:
  - A running GUI picks up --set changes to the same state file
  - Run without options to launch the GUI`)
}
