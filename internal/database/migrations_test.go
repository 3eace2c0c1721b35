package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func trackedVersions(t *testing.T, db *sql.DB) []int64 {
	t.Helper()
	rows, err := db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	require.NoError(t, err)
	defer rows.Close()

	var versions []int64
	for rows.Next() {
		var v int64
		require.NoError(t, rows.Scan(&v))
		versions = append(versions, v)
	}
	require.NoError(t, rows.Err())
	return versions
}

func TestMigrateFreshStore(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
		{Version: 2, Name: "add column x", SQL: `ALTER TABLE a ADD COLUMN x TEXT`},
	}

	applied, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, applied)
	assert.Equal(t, []int64{1, 2}, trackedVersions(t, db))

	// table a exists with column x
	_, err = db.Exec(`INSERT INTO a (id, x) VALUES (1, 'hello')`)
	require.NoError(t, err)
}

func TestMigrateSecondRunIsNoop(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
	}

	_, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)

	applied, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, []int64{1}, trackedVersions(t, db))
}

func TestMigrateUpToDateStorePerformsZeroWrites(t *testing.T) {
	// sqlmock verifies that an up-to-date store sees only the idempotent
	// tracking-table create and the version read: no transactions, no DDL.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations ORDER BY version`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1).AddRow(2))

	applied, err := Migrate(context.Background(), db, []Migration{
		{Version: 1, Name: "one", SQL: `CREATE TABLE a (id INTEGER)`},
		{Version: 2, Name: "two", SQL: `CREATE TABLE b (id INTEGER)`},
	})
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFailureRollsBackVersion(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
		{Version: 2, Name: "broken", SQL: `ALTER TABLE missing ADD COLUMN x TEXT`},
		{Version: 3, Name: "never reached", SQL: `CREATE TABLE c (id INTEGER PRIMARY KEY)`},
	}

	applied, err := Migrate(context.Background(), db, migrations)
	require.Error(t, err)

	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, int64(2), migErr.Version)

	// version 1 stands alone; 2 rolled back, 3 never attempted
	assert.Equal(t, []int64{1}, applied)
	assert.Equal(t, []int64{1}, trackedVersions(t, db))

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'c'`).Scan(&count))
	assert.Zero(t, count, "version 3 must not be attempted after 2 fails")
}

func TestMigrateDetectsSchemaDrift(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
		{Version: 2, Name: "create b", SQL: `CREATE TABLE b (id INTEGER PRIMARY KEY)`},
	}

	_, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)

	// Simulate a store whose history this binary cannot explain.
	_, err = db.Exec(`DELETE FROM schema_migrations WHERE version = 1`)
	require.NoError(t, err)

	_, err = Migrate(context.Background(), db, migrations)
	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, int64(1), migErr.Version)
	assert.Contains(t, migErr.Error(), "drift")
}

func TestMigrateNonContiguousVersions(t *testing.T) {
	// Gaps in the known set are fine as long as order is ascending.
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 3, Name: "create b", SQL: `CREATE TABLE b (id INTEGER PRIMARY KEY)`},
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
	}

	applied, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, applied)
}

func TestMigrateRejectsDuplicateVersions(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "a", SQL: `CREATE TABLE a (id INTEGER)`},
		{Version: 1, Name: "a again", SQL: `CREATE TABLE b (id INTEGER)`},
	}

	_, err := Migrate(context.Background(), db, migrations)
	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, int64(1), migErr.Version)
}

func TestMigratePicksUpWhereItLeftOff(t *testing.T) {
	db := openTestDB(t)
	first := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
	}
	_, err := Migrate(context.Background(), db, first)
	require.NoError(t, err)

	// A newer binary knows one more version.
	second := append(first, Migration{
		Version: 2, Name: "add column x", SQL: `ALTER TABLE a ADD COLUMN x TEXT`,
	})
	applied, err := Migrate(context.Background(), db, second)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, applied)
	assert.Equal(t, []int64{1, 2}, trackedVersions(t, db))
}

func TestInspect(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
		{Version: 2, Name: "create b", SQL: `CREATE TABLE b (id INTEGER PRIMARY KEY)`},
	}

	// Before any migration: no tracking table, everything pending.
	status, err := Inspect(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Zero(t, status.Current)
	assert.Empty(t, status.Applied)
	assert.Len(t, status.Pending, 2)

	_, err = Migrate(context.Background(), db, migrations[:1])
	require.NoError(t, err)

	status, err = Inspect(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Current)
	assert.Len(t, status.Applied, 1)
	assert.Equal(t, "create a", status.Applied[0].Name)
	assert.Len(t, status.Pending, 1)
	assert.Equal(t, int64(2), status.Pending[0].Version)
}

func TestMigrateKnownSchema(t *testing.T) {
	db := openTestDB(t)

	applied, err := Migrate(context.Background(), db, Known())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, applied)

	// items honors its uniqueness constraint
	_, err = db.Exec(`INSERT INTO items (source, external_id, posted_at, imported_at)
		VALUES ('mastodon', '42', '2026-08-20T10:00:00Z', '2026-08-24T09:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (source, external_id, posted_at, imported_at)
		VALUES ('mastodon', '42', '2026-08-20T10:00:00Z', '2026-08-24T09:00:00Z')`)
	require.Error(t, err)
}

func TestMigrationErrorUnwrap(t *testing.T) {
	cause := errors.New("syntax error")
	err := &MigrationError{Version: 2, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "migration 2")
}

func TestRunnerTimeout(t *testing.T) {
	// An already-expired deadline must fail the version, not hang.
	db := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Runner{Timeout: time.Nanosecond}).Migrate(ctx, db, []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
	})
	require.Error(t, err)
}

func TestApplyOneSkipsVersionRecordedByAnotherRunner(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(createTrackingTable)
	require.NoError(t, err)

	// Another process already applied and recorded version 1.
	_, err = db.Exec(
		`INSERT INTO schema_migrations (version, name, applied_at, statement) VALUES (1, 'create a', '2026-08-24T00:00:00Z', 'CREATE TABLE a (id INTEGER PRIMARY KEY)')`)
	require.NoError(t, err)

	err = (&Runner{}).applyOne(context.Background(), db, Migration{
		Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`,
	})
	require.ErrorIs(t, err, errAlreadyApplied)
	assert.Equal(t, []int64{1}, trackedVersions(t, db))

	// The rolled-back transaction must not have executed the DDL.
	_, err = db.Exec(`INSERT INTO a (id) VALUES (1)`)
	require.Error(t, err)
}

func TestMigrateConvergesWhenVersionRecordedMidRun(t *testing.T) {
	db := openTestDB(t)

	// Version 1 records version 2 as a side effect, standing in for a
	// second runner that wins the race between the version read and
	// version 2's transaction.
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY);
INSERT INTO schema_migrations (version, name, applied_at, statement) VALUES (2, 'create b', '2026-08-24T00:00:00Z', '')`},
		{Version: 2, Name: "create b", SQL: `CREATE TABLE b (id INTEGER PRIMARY KEY)`},
	}

	applied, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, applied, "the skipped version must not be reported as applied")
	assert.Equal(t, []int64{1, 2}, trackedVersions(t, db))

	// Version 2's DDL never ran: its record was already present.
	_, err = db.Exec(`INSERT INTO b (id) VALUES (1)`)
	require.Error(t, err)
}

func TestMigrateToleratesNewerRecordedVersions(t *testing.T) {
	db := openTestDB(t)
	migrations := []Migration{
		{Version: 1, Name: "create a", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY)`},
	}

	_, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)

	// A newer binary recorded a version this one does not know. As long as
	// every known version is recorded, the store counts as up to date.
	_, err = db.Exec(
		`INSERT INTO schema_migrations (version, name, applied_at, statement) VALUES (9, 'future', '2026-08-24T00:00:00Z', '')`)
	require.NoError(t, err)

	applied, err := Migrate(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Empty(t, applied)
}
