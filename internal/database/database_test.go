package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "weeknotes.db")

	db, err := Open(path, time.Second)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
	assert.FileExists(t, path)
}

func TestOpenEnablesWALAndForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenRejectsUnwritableParent(t *testing.T) {
	// A file where the parent directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	_, err := Open(filepath.Join(blocker, "weeknotes.db"), time.Second)
	require.Error(t, err)
}
