package state

import (
	"context"

	"github.com/yllada/save-state/common"
)

// Effects applies what follows a state transition: the runtime label, the
// state file and the history journal.
type Effects struct {
	Store *Store
	// History may be nil.
	History *History
	// Label shows the runtime label for the new state.
	Label func(text string, st RunState)
	// Report is told about a failed save, after the label was updated.
	Report func(err error)
}

// Apply runs the effects of a transition to st requested by source. A
// transition read from the file itself is not written back. The returned
// error is the save error, if any; journal failures are only logged.
func (e *Effects) Apply(ctx context.Context, st RunState, source string) error {
	if e.Label != nil {
		e.Label(RuntimeLabel(st), st)
	}

	var saveErr error
	if source != SourceWatcher && e.Store != nil {
		if saveErr = e.Store.Save(st); saveErr != nil {
			common.LogError("Could not save state: %v", saveErr)
			if e.Report != nil {
				e.Report(saveErr)
			}
		}
	}

	if e.History != nil {
		if err := e.History.Record(ctx, st, source); err != nil {
			common.LogWarn("Could not record transition: %v", err)
		}
	}

	return saveErr
}
