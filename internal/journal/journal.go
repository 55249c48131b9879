// Package journal records context mutations in a local SQLite database so
// sync activity can be reviewed across sessions.
//
// The journal is an optional subsystem: when the database cannot be opened
// the server runs without it and the tools skip recording.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level variable to allow test injection.
var openDB = sql.Open

// Event kinds recorded by the context tools.
const (
	KindRepoInit      = "repo_init"
	KindWorkspaceInit = "workspace_init"
	KindFileMapping   = "file_mapping"
	KindArchLink      = "arch_link"
)

// Event is one recorded context mutation.
type Event struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Root      string `json:"root"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

// Config holds journal configuration.
type Config struct {
	// Path is the SQLite database file. The parent directory is created
	// on open.
	Path string
}

// DefaultConfig returns the default journal location under the user's
// home directory.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{Path: filepath.Join(home, ".wikijs-mcp", "journal.db")}
}

// Store is the sync journal backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the journal database, applies the WAL
// pragmas, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		root       TEXT NOT NULL,
		detail     TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_events_kind    ON events(kind);
	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one event and returns its id.
func (s *Store) Record(kind, root, detail string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO events (kind, root, detail) VALUES (?, ?, ?)`,
		kind, root, detail,
	)
	if err != nil {
		return 0, fmt.Errorf("journal: record event: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit events, newest first. Non-positive limits
// fall back to 20.
func (s *Store) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, kind, root, detail, created_at
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Root, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
