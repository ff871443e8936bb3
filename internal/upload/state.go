package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB records which export files have been delivered to which server so
// unchanged files are not sent twice.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/push-state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "push-state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed_exports (
		server      TEXT NOT NULL,
		hash        TEXT NOT NULL,
		path        TEXT NOT NULL,
		workouts    INTEGER NOT NULL,
		pushed_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (server, hash)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsPushed reports whether content with this hash was already delivered to
// server.
func (s *StateDB) IsPushed(server, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pushed_exports WHERE server = ? AND hash = ?`,
		server, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPushed records a successful delivery.
func (s *StateDB) MarkPushed(server, hash, path string, workouts int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed_exports (server, hash, path, workouts) VALUES (?, ?, ?, ?)`,
		server, hash, path, workouts,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
