package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps preferences in a single key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("prefs: open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prefs: initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS preferences (
		source TEXT NOT NULL,
		key    TEXT NOT NULL,
		value  TEXT NOT NULL,
		PRIMARY KEY (source, key)
	);
	`)
	return err
}

func (s *SQLiteStore) Get(source, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE source = ? AND key = ?", source, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs: query %s.%s: %w", source, key, err)
	}

	return v, true, nil
}

func (s *SQLiteStore) Set(source, key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO preferences (source, key, value) VALUES (?, ?, ?)", source, key, value)
	if err != nil {
		return fmt.Errorf("prefs: update %s.%s: %w", source, key, err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
