package state

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yllada/save-state/common"
)

// Watcher reloads the state file when another process changes it.
//
// The parent directory is watched rather than the file itself: atomic
// writes replace the file, which would silently end a watch on the old inode.
type Watcher struct {
	store    *Store
	debounce time.Duration
	onChange func(RunState)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher that calls onChange from its own goroutine
// whenever the file content differs from what store last read or wrote.
func NewWatcher(store *Store, onChange func(RunState)) *Watcher {
	return &Watcher{
		store:    store,
		debounce: common.WatchDebounce,
		onChange: onChange,
	}
}

// SetDebounce overrides the delay between the last file event and the reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start begins watching. It returns once the watch is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(common.AbsPath(w.store.Path()))
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = fsw
	w.cancel = cancel
	w.done = make(chan struct{})

	common.LogDebug("Watching %s for state changes", dir)
	go w.loop(ctx, fsw, w.debounce, w.done)
	return nil
}

// Stop ends the watch and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.watcher, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, debounce time.Duration, done chan struct{}) {
	defer close(done)
	defer fsw.Close()

	name := filepath.Base(w.store.Path())

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			common.LogWarn("State file watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	st, changed, err := w.store.Reload()
	if err != nil {
		common.LogDebug("Ignoring unreadable state file: %v", err)
		return
	}
	if !changed {
		return
	}

	common.LogInfo("State file changed externally: %s", st)
	if w.onChange != nil {
		w.onChange(st)
	}
}
