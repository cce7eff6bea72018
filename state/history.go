package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yllada/save-state/common"

	_ "modernc.org/sqlite" // pure Go driver
)

// Transition sources recorded in the history journal.
const (
	SourceUI      = "ui"
	SourceTray    = "tray"
	SourceCLI     = "cli"
	SourceWatcher = "file"
)

// Entry is one recorded state transition.
type Entry struct {
	ID      int64
	State   RunState
	Source  string
	Session string
	At      time.Time
}

// History is an append-only journal of state transitions kept in SQLite.
// Each process records under its own session ID.
type History struct {
	db      *sql.DB
	session string
}

// OpenHistory opens (creating if needed) the journal at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", common.ErrHistory, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", common.ErrHistory, err)
	}

	h := &History{db: db, session: uuid.NewString()}
	if err := h.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %w", common.ErrHistory, err)
	}

	return h, nil
}

func (h *History) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		running INTEGER NOT NULL CHECK(running IN (0, 1)),
		source TEXT NOT NULL,
		session TEXT NOT NULL,
		at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Session returns the ID this process records under.
func (h *History) Session() string {
	return h.session
}

// Record appends a transition to st.
func (h *History) Record(ctx context.Context, st RunState, source string) error {
	running := 0
	if st == Running {
		running = 1
	}

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO transitions (running, source, session, at) VALUES (?, ?, ?, ?)`,
		running, source, h.session, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: record: %w", common.ErrHistory, err)
	}
	return nil
}

// Recent returns up to limit transitions, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, running, source, session, at FROM transitions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", common.ErrHistory, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			running int
			at      string
		)
		if err := rows.Scan(&e.ID, &running, &e.Source, &e.Session, &at); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", common.ErrHistory, err)
		}
		e.State = RunState(running == 1)
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %w", common.ErrHistory, at, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrHistory, err)
	}
	return entries, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
