package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row does not exist or is not visible
// to the requesting parent.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when signing up with an email that is
// already registered.
var ErrEmailExists = errors.New("email already registered")

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id            TEXT PRIMARY KEY,
  email         TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name          TEXT NOT NULL,
  pin           TEXT,
  created_at    DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS profiles (
  id                TEXT PRIMARY KEY,
  parent_id         TEXT NOT NULL,
  name              TEXT NOT NULL,
  age               INTEGER NOT NULL,
  maturity_level    TEXT NOT NULL,
  blocked_sites     TEXT NOT NULL DEFAULT '[]',
  whitelisted_sites TEXT NOT NULL DEFAULT '[]',
  created_at        DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_parent ON profiles(parent_id);
CREATE TABLE IF NOT EXISTS content_logs (
  id              TEXT PRIMARY KEY,
  profile_id      TEXT NOT NULL,
  content_type    TEXT NOT NULL,
  detected_at     DATETIME NOT NULL,
  is_safe         INTEGER NOT NULL CHECK (is_safe IN (0,1)),
  confidence      REAL NOT NULL,
  reasons         TEXT NOT NULL DEFAULT '[]',
  content_snippet TEXT NOT NULL,
  url             TEXT
);
CREATE INDEX IF NOT EXISTS idx_logs_profile ON content_logs(profile_id, detected_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// encodeList stores string slices as JSON text columns.
func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func decodeList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime handles both RFC3339 values written by this code and the
// "2006-01-02 15:04:05" format SQLite's CURRENT_TIMESTAMP produces.
func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t
	}
	return time.Time{}
}
