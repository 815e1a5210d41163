package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection serializes writers across sessions.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the LLM request event log.
func (s *Store) EventRepo() *EventLog {
	return &EventLog{db: s.db, seq: s.seq}
}

// SessionRepo returns the conversation session log.
func (s *Store) SessionRepo() *SessionLog {
	return &SessionLog{db: s.db, seq: s.seq}
}

// PlayerRepo returns the player profile repository.
func (s *Store) PlayerRepo() *Players {
	return &Players{db: s.db}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var migrations = []string{
	// 1: LLM request events.
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     TEXT    NOT NULL,
		provider      TEXT    NOT NULL DEFAULT '',
		model         TEXT    NOT NULL DEFAULT '',
		purpose       TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_request_events(purpose);`,

	// 2: conversation sessions.
	`CREATE TABLE IF NOT EXISTS session_logs (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence            INTEGER NOT NULL UNIQUE,
		session_id          TEXT    NOT NULL UNIQUE,
		player              TEXT    NOT NULL DEFAULT '',
		timestamp           TEXT    NOT NULL,
		position            TEXT    NOT NULL,
		game_state          TEXT    NOT NULL,
		recommended_actions TEXT    NOT NULL DEFAULT '[]',
		conversation        TEXT    NOT NULL DEFAULT '[]',
		concepts            TEXT    NOT NULL DEFAULT '[]',
		outcome             TEXT    NOT NULL
	);`,

	// 3: player profiles.
	`CREATE TABLE IF NOT EXISTS players (
		name               TEXT PRIMARY KEY,
		mastered_concepts  TEXT NOT NULL DEFAULT '[]',
		struggled_concepts TEXT NOT NULL DEFAULT '[]',
		last_active        TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS player_history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL REFERENCES players(name) ON DELETE CASCADE,
		timestamp   TEXT NOT NULL,
		game_state  TEXT NOT NULL,
		position    TEXT NOT NULL,
		concepts    TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_player_history_name ON player_history(player_name);`,
}

// migrate applies every migration newer than the recorded schema version.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DUGOUT_DB environment variable
// 2. $XDG_DATA_HOME/dugout/dugout.db
// 3. ~/.local/share/dugout/dugout.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DUGOUT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(base, "dugout", "dugout.db")
	return p, EnsureDir(p)
}

// DefaultLogDir is where per-day conversation logs go when DUGOUT_LOG_DIR
// is unset.
func DefaultLogDir() (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "dugout", "conversations"), nil
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
