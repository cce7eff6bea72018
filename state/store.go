package state

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/yllada/save-state/common"
)

// ReadFile reads the state document at path. On any failure it returns Idle
// together with an error wrapping common.ErrStateRead or common.ErrStateParse.
func ReadFile(path string) (RunState, error) {
	file, err := os.Open(path)
	if err != nil {
		return Idle, fmt.Errorf("%w: %w", common.ErrStateRead, err)
	}
	defer file.Close()

	return Decode(file)
}

// WriteFile atomically replaces the state document at path.
func WriteFile(path string, st RunState) error {
	var buf bytes.Buffer
	if err := Encode(&buf, st); err != nil {
		return fmt.Errorf("%w: encode: %w", common.ErrStateWrite, err)
	}

	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStateWrite, err)
	}
	defer func() {
		// No-op once committed.
		if err := pendingFile.Cleanup(); err != nil {
			common.LogDebug("Cleanup of pending state file failed: %v", err)
		}
	}()

	if _, err := pendingFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStateWrite, err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStateWrite, err)
	}

	return nil
}

// Store is the state file at a fixed path. It remembers the last state it
// read or wrote so that a watcher can tell its own writes from external ones.
type Store struct {
	path string

	mu    sync.Mutex
	last  RunState
	known bool
}

// NewStore creates a store for the state document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. On failure the returned state is Idle and the
// remembered state is left unchanged.
func (s *Store) Load() (RunState, error) {
	st, err := ReadFile(s.path)
	if err != nil {
		return Idle, err
	}

	s.remember(st)
	return st, nil
}

// Save writes st to the state file.
func (s *Store) Save(st RunState) error {
	if err := WriteFile(s.path, st); err != nil {
		return err
	}

	s.remember(st)
	return nil
}

// Reload reads the state file and reports whether it differs from the last
// state this store read or wrote.
func (s *Store) Reload() (st RunState, changed bool, err error) {
	st, err = ReadFile(s.path)
	if err != nil {
		return Idle, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	changed = !s.known || s.last != st
	s.last = st
	s.known = true
	return st, changed, nil
}

// Last returns the last state read or written, if any.
func (s *Store) Last() (RunState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.known
}

func (s *Store) remember(st RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = st
	s.known = true
}
