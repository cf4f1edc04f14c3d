// Package storage provides SQLite-based persistence for resolved ticks.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
	"github.com/vovakirdan/pushcore/internal/sim"
)

// ErrNoSession is returned when a session ID is not in the journal.
var ErrNoSession = errors.New("storage: no such session")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Session is one engine run.
type Session struct {
	ID        string
	Scenario  string
	Width     int
	Height    int
	Ticks     uint64
	StartedAt time.Time
}

// MoveRecord is one resolved move command.
type MoveRecord struct {
	SessionID string          `json:"session"`
	Tick      uint64          `json:"tick"`
	Seq       int             `json:"seq"`
	Entity    core.EntityID   `json:"entity"`
	Direction core.Direction  `json:"-"`
	Dir       string          `json:"dir"`
	Origin    core.Coord      `json:"origin"`
	Accepted  bool            `json:"accepted"`
	Missing   bool            `json:"missing,omitempty"`
	Moved     []core.EntityID `json:"moved"`
	History   string          `json:"history,omitempty"`
}

// TickRecord is one engine tick. Rewind and reset ticks resolve no moves, so
// this is the only trace they leave.
type TickRecord struct {
	SessionID  string
	Tick       uint64
	History    string
	Moves      int
	Sublimated []core.EntityID
}

// EventRecord is one push event.
type EventRecord struct {
	SessionID string
	Tick      uint64
	Pusher    core.EntityID
	Direction core.Direction
	Pushed    []core.EntityID
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS ticks (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			history TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL DEFAULT 0,
			sublimated TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (session_id, tick)
		);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			entity INTEGER NOT NULL,
			direction TEXT NOT NULL,
			origin_x INTEGER NOT NULL,
			origin_y INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			missing INTEGER NOT NULL DEFAULT 0,
			moved TEXT NOT NULL,
			history TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id, tick, seq);

		CREATE TABLE IF NOT EXISTS push_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			pusher INTEGER NOT NULL,
			direction TEXT NOT NULL,
			pushed TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_push_events_session ON push_events(session_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession creates a session with a fresh ID.
func (s *Store) StartSession(scenario string, bounds core.Bounds) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		Width:     bounds.W,
		Height:    bounds.H,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, scenario, width, height, started_at) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.Scenario, sess.Width, sess.Height, sess.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot start session: %w", err)
	}
	return sess, nil
}

// RecordStep stores the tick, every outcome and every push event of a step
// in one transaction and advances the session's tick count.
func (s *Store) RecordStep(sessionID string, res sim.StepResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	upd, err := tx.Exec("UPDATE sessions SET ticks = ? WHERE id = ?", res.Tick, sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot update session: %w", err)
	}
	if n, err := upd.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}

	cmd := ""
	if res.History != history.None {
		cmd = res.History.String()
	}
	sublimated, err := encodeIDs(res.Sublimated)
	if err != nil {
		return fmt.Errorf("storage: cannot encode sublimated list: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO ticks (session_id, tick, history, moves, sublimated) VALUES (?, ?, ?, ?, ?)",
		sessionID, res.Tick, cmd, len(res.Outcomes), sublimated,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save tick: %w", err)
	}

	for seq, o := range res.Outcomes {
		moved, err := encodeIDs(o.Result.Moved)
		if err != nil {
			return fmt.Errorf("storage: cannot encode moved list: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO moves
			 (session_id, tick, seq, entity, direction, origin_x, origin_y, accepted, missing, moved, history)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID, res.Tick, seq,
			o.Command.Entity, o.Command.Direction.String(),
			o.Origin.X, o.Origin.Y,
			o.Result.Accepted, o.Missing, moved, cmd,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save move: %w", err)
		}
	}

	for _, ev := range res.Events {
		pushed, err := encodeIDs(ev.Pushed)
		if err != nil {
			return fmt.Errorf("storage: cannot encode pushed list: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO push_events (session_id, tick, pusher, direction, pushed) VALUES (?, ?, ?, ?, ?)",
			sessionID, res.Tick, ev.Pusher, ev.Direction.String(), pushed,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save push event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit tick %d: %w", res.Tick, err)
	}
	return nil
}

// Recorder returns a step callback that journals each result under the
// session.
func (s *Store) Recorder(sessionID string) func(sim.StepResult) error {
	return func(res sim.StepResult) error {
		return s.RecordStep(sessionID, res)
	}
}

// Sessions retrieves the most recent sessions.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scenario, width, height, ticks, started_at
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionByID retrieves one session.
func (s *Store) SessionByID(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT id, scenario, width, height, ticks, started_at
		 FROM sessions
		 WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	return sess, err
}

// Moves retrieves a session's moves in resolution order.
func (s *Store) Moves(sessionID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, tick, seq, entity, direction, origin_x, origin_y, accepted, missing, moved, history
		 FROM moves
		 WHERE session_id = ?
		 ORDER BY tick, seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var records []MoveRecord
	for rows.Next() {
		var r MoveRecord
		var moved string
		if err := rows.Scan(
			&r.SessionID, &r.Tick, &r.Seq, &r.Entity, &r.Dir,
			&r.Origin.X, &r.Origin.Y, &r.Accepted, &r.Missing, &moved, &r.History,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.Direction, err = core.ParseDirection(r.Dir); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if r.Moved, err = decodeIDs(moved); err != nil {
			return nil, fmt.Errorf("storage: cannot decode moved list: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Ticks retrieves a session's ticks in order, including history-only ones.
func (s *Store) Ticks(sessionID string) ([]TickRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, tick, history, moves, sublimated
		 FROM ticks
		 WHERE session_id = ?
		 ORDER BY tick`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ticks: %w", err)
	}
	defer rows.Close()

	var records []TickRecord
	for rows.Next() {
		var r TickRecord
		var sublimated string
		if err := rows.Scan(&r.SessionID, &r.Tick, &r.History, &r.Moves, &sublimated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.Sublimated, err = decodeIDs(sublimated); err != nil {
			return nil, fmt.Errorf("storage: cannot decode sublimated list: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PushEvents retrieves a session's push events in tick order.
func (s *Store) PushEvents(sessionID string) ([]EventRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, tick, pusher, direction, pushed
		 FROM push_events
		 WHERE session_id = ?
		 ORDER BY tick, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query push events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var r EventRecord
		var dir, pushed string
		if err := rows.Scan(&r.SessionID, &r.Tick, &r.Pusher, &dir, &pushed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.Direction, err = core.ParseDirection(dir); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if r.Pushed, err = decodeIDs(pushed); err != nil {
			return nil, fmt.Errorf("storage: cannot decode pushed list: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteSession removes a session and everything recorded under it.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM ticks WHERE session_id = ?",
		"DELETE FROM moves WHERE session_id = ?",
		"DELETE FROM push_events WHERE session_id = ?",
		"DELETE FROM sessions WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("storage: cannot delete session: %w", err)
		}
	}
	return tx.Commit()
}

const timeLayout = "2006-01-02 15:04:05"

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var startedAt any
	if err := row.Scan(&sess.ID, &sess.Scenario, &sess.Width, &sess.Height, &sess.Ticks, &startedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	sess.StartedAt = parseTime(startedAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func encodeIDs(ids []core.EntityID) (string, error) {
	if ids == nil {
		ids = []core.EntityID{}
	}
	b, err := json.Marshal(ids)
	return string(b), err
}

func decodeIDs(s string) ([]core.EntityID, error) {
	ids := []core.EntityID{}
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
