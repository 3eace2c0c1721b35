// Package database opens the weeknotes SQLite store and brings its schema
// up to date through a versioned migration runner.
//
// Startup order is fixed: the configuration snapshot is resolved first, the
// store is opened from its database settings, and Migrate runs before any
// command logic touches the data. A migration failure aborts the invocation.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver.
)

// Open opens (or creates) the SQLite database at the given path.
// It enables WAL mode for concurrent read performance, sets the busy
// handler timeout, turns foreign keys on, and verifies connectivity.
func Open(path string, busyTimeout time.Duration) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory %q: %w", dir, err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=ON",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %q: %w", path, err)
	}

	return db, nil
}
