package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gwlsn/framescore/internal/runner"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS results (
	asset_token TEXT NOT NULL,
	runner_id TEXT NOT NULL,
	frame_count INTEGER NOT NULL DEFAULT 0,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (asset_token, runner_id)
);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL,
	applied_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_results_runner ON results(runner_id);
`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex // Protects concurrent access
	path string
}

// NewSQLiteStore creates a new SQLite-backed result store.
// The database file is created if it doesn't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	// Check/set schema version. An older on-disk schema is refused rather
	// than migrated - cached scores are reproducible and cheap to discard.
	var version int
	err = db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			db.Close()
			return nil, fmt.Errorf("insert schema version: %w", err)
		}
	} else if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	} else if version != schemaVersion {
		db.Close()
		return nil, fmt.Errorf("cache schema version %d unsupported (want %d); delete %s", version, schemaVersion, dbPath)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Save persists a result, replacing any existing row for the same key
func (s *SQLiteStore) Save(res *runner.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	frames, err := res.FrameCount()
	if err != nil {
		return fmt.Errorf("refusing to cache result without scores: %w", err)
	}
	if frames == 0 {
		return fmt.Errorf("refusing to cache zero-frame result %s", res.RunnerID)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO results (asset_token, runner_id, frame_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		res.AssetToken, res.RunnerID, frames, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Get retrieves a result by key. Returns nil if not found.
func (s *SQLiteStore) Get(assetToken, runnerID string) (*runner.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow(
		"SELECT payload FROM results WHERE asset_token = ? AND runner_id = ?",
		assetToken, runnerID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}

	var res runner.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("unmarshal cached result: %w", err)
	}
	return &res, nil
}

// Delete removes a result. Missing rows are not an error.
func (s *SQLiteStore) Delete(assetToken, runnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM results WHERE asset_token = ? AND runner_id = ?",
		assetToken, runnerID)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}

// Count returns the number of cached results
func (s *SQLiteStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
