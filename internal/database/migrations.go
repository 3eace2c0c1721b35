package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Migration is one versioned schema change known to the binary.
// Versions are positive, unique, and applied in ascending numeric order;
// gaps in the known set are allowed.
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// MigrationError reports a failed or impossible schema migration.
// Version 0 refers to the tracking table itself.
type MigrationError struct {
	Version int64
	Cause   error
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("migration tracking table: %v", e.Cause)
	}
	return fmt.Sprintf("migration %d: %v", e.Version, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *MigrationError) Unwrap() error {
	return e.Cause
}

// errAlreadyApplied signals that a concurrent runner recorded the version
// between our initial read and our transaction. The version is skipped.
var errAlreadyApplied = errors.New("already applied by another runner")

// createTrackingTable is the one piece of schema that must exist before any
// migration logic runs. Created idempotently on every invocation.
const createTrackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TEXT NOT NULL,
    statement  TEXT NOT NULL
)`

// Runner executes schema migrations against an opened store.
// The zero value is usable; fields bound optional behavior.
type Runner struct {
	// Timeout bounds each version's DDL execution and record insert.
	// Zero means no per-version deadline.
	Timeout time.Duration

	// Logger receives debug output per version. Nil uses the default logger.
	Logger *log.Logger
}

// Migrate brings the store's schema up to the highest version in migrations,
// applying each missing version exactly once, in ascending order. Each
// version's DDL and its tracking record commit in a single transaction before
// the next version starts. Returns the versions applied by this call.
//
// Running Migrate against an up-to-date store performs zero schema writes.
// If applying a version fails, that version's transaction is rolled back,
// later versions are not attempted, and a MigrationError naming the version
// is returned. Migration failures are not retried: schema errors are
// operator mistakes, not transient conditions.
func (r *Runner) Migrate(ctx context.Context, db *sql.DB, migrations []Migration) ([]int64, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	sorted, err := sortAndCheck(migrations)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createTrackingTable); err != nil {
		return nil, &MigrationError{Version: 0, Cause: fmt.Errorf("create: %w", err)}
	}

	recorded, current, err := recordedVersions(ctx, db)
	if err != nil {
		return nil, &MigrationError{Version: 0, Cause: fmt.Errorf("read applied versions: %w", err)}
	}

	// Every known version at or below the store's current version must be
	// recorded. A hole means the store's history cannot be explained by this
	// binary; schema drift is not automatically recoverable.
	for _, m := range sorted {
		if m.Version <= current && !recorded[m.Version] {
			return nil, &MigrationError{
				Version: m.Version,
				Cause:   fmt.Errorf("store is at version %d but version %d was never applied (schema drift)", current, m.Version),
			}
		}
	}

	var applied []int64
	for _, m := range sorted {
		if m.Version <= current {
			continue
		}

		logger.Debug("applying migration", "version", m.Version, "name", m.Name)
		err := r.applyOne(ctx, db, m)
		if errors.Is(err, errAlreadyApplied) {
			logger.Debug("migration applied concurrently, skipping", "version", m.Version)
			continue
		}
		if err != nil {
			return applied, err
		}
		applied = append(applied, m.Version)
	}

	if len(applied) == 0 {
		logger.Debug("schema up to date", "version", current)
	}
	return applied, nil
}

// Migrate runs migrations with default Runner settings.
func Migrate(ctx context.Context, db *sql.DB, migrations []Migration) ([]int64, error) {
	return (&Runner{}).Migrate(ctx, db, migrations)
}

// applyOne executes a single version's DDL and tracking record in one
// transaction. The transaction is the sole mutual-exclusion mechanism:
// concurrent runners re-check the tracking table inside it and converge
// without double-applying.
func (r *Runner) applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &MigrationError{Version: m.Version, Cause: fmt.Errorf("begin: %w", err)}
	}

	var exists bool
	row := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)`, m.Version)
	if err := row.Scan(&exists); err != nil {
		tx.Rollback()
		return &MigrationError{Version: m.Version, Cause: fmt.Errorf("check applied: %w", err)}
	}
	if exists {
		tx.Rollback()
		return errAlreadyApplied
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		tx.Rollback()
		return &MigrationError{Version: m.Version, Cause: err}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at, statement) VALUES (?, ?, ?, ?)`,
		m.Version, m.Name, time.Now().UTC().Format(time.RFC3339), m.SQL)
	if err != nil {
		tx.Rollback()
		return &MigrationError{Version: m.Version, Cause: fmt.Errorf("record: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return &MigrationError{Version: m.Version, Cause: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// recordedVersions returns the set of versions in the tracking table and the
// highest among them (0 for an empty table).
func recordedVersions(ctx context.Context, db *sql.DB) (map[int64]bool, int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recorded := make(map[int64]bool)
	var current int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, 0, err
		}
		recorded[v] = true
		if v > current {
			current = v
		}
	}
	return recorded, current, rows.Err()
}

// sortAndCheck returns the migrations in ascending version order, rejecting
// non-positive and duplicate version numbers.
func sortAndCheck(migrations []Migration) ([]Migration, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	seen := make(map[int64]bool, len(sorted))
	for _, m := range sorted {
		if m.Version <= 0 {
			return nil, &MigrationError{Version: m.Version, Cause: errors.New("version must be positive")}
		}
		if seen[m.Version] {
			return nil, &MigrationError{Version: m.Version, Cause: errors.New("duplicate version")}
		}
		seen[m.Version] = true
	}
	return sorted, nil
}

// AppliedMigration is one row of the tracking table.
type AppliedMigration struct {
	Version   int64  `json:"version"`
	Name      string `json:"name"`
	AppliedAt string `json:"applied_at"`
}

// Status describes how the store's schema relates to the binary's known
// migrations.
type Status struct {
	Current int64              `json:"current"`
	Applied []AppliedMigration `json:"applied"`
	Pending []Migration        `json:"pending"`
}

// Inspect reports applied and pending migrations without changing anything.
// A store with no tracking table is reported as version 0 with everything
// pending.
func Inspect(ctx context.Context, db *sql.DB, migrations []Migration) (*Status, error) {
	sorted, err := sortAndCheck(migrations)
	if err != nil {
		return nil, err
	}

	status := &Status{}

	var trackingExists bool
	row := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations')`)
	if err := row.Scan(&trackingExists); err != nil {
		return nil, &MigrationError{Version: 0, Cause: err}
	}

	if trackingExists {
		rows, err := db.QueryContext(ctx,
			`SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
		if err != nil {
			return nil, &MigrationError{Version: 0, Cause: err}
		}
		defer rows.Close()
		for rows.Next() {
			var a AppliedMigration
			if err := rows.Scan(&a.Version, &a.Name, &a.AppliedAt); err != nil {
				return nil, &MigrationError{Version: 0, Cause: err}
			}
			status.Applied = append(status.Applied, a)
			if a.Version > status.Current {
				status.Current = a.Version
			}
		}
		if err := rows.Err(); err != nil {
			return nil, &MigrationError{Version: 0, Cause: err}
		}
	}

	for _, m := range sorted {
		if m.Version > status.Current {
			status.Pending = append(status.Pending, m)
		}
	}
	return status, nil
}
