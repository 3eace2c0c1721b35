// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/database"
	"github.com/eastgate/weeknotes/internal/output"
)

// newMigrateCmd creates the migrate command and its status subcommand.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Long: `Run pending schema migrations against the journal database.

Every command migrates on startup; migrate exists to run the step
explicitly and to inspect it with 'migrate status'.

Examples:
  weeknotes migrate           # Apply pending migrations
  weeknotes migrate status    # Show applied and pending versions`,
		RunE: runMigrate,
	}
	cmd.AddCommand(newMigrateStatusCmd())
	return cmd
}

// openRaw resolves configuration and opens the database without migrating.
func openRaw(cmd *cobra.Command) (*sql.DB, *session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause(
			fmt.Sprintf("opening store at %s: %v", cfg.Database.Path, err), err)
	}
	return db, &session{cfg: cfg, db: db, logger: newLogger(cmd, cfg)}, nil
}

// runMigrate executes the migrate command.
func runMigrate(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	db, sess, err := openRaw(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer db.Close()

	runner := &database.Runner{
		Timeout: sess.cfg.Database.MigrateTimeout,
		Logger:  sess.logger,
	}
	applied, err := runner.Migrate(cmd.Context(), db, database.Known())
	if err != nil {
		migErr := output.NewMigrationError(err)
		printer.Error(migErr)
		return migErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"applied": applied,
			"count":   len(applied),
		})
	}

	if len(applied) == 0 {
		return printer.Success(map[string]any{"message": "Schema already up to date"})
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Applied %d migration(s): %v", len(applied), applied),
	})
}

// newMigrateStatusCmd creates the migrate status subcommand.
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending schema migrations",
		RunE:  runMigrateStatus,
	}
}

// runMigrateStatus executes the migrate status subcommand. It inspects the
// schema without changing it.
func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	db, _, err := openRaw(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer db.Close()

	status, err := database.Inspect(cmd.Context(), db, database.Known())
	if err != nil {
		migErr := output.NewMigrationError(err)
		printer.Error(migErr)
		return migErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(status)
	}

	printer.KeyValue("Current version", strconv.FormatInt(status.Current, 10))

	if len(status.Applied) > 0 {
		rows := make([][]string, 0, len(status.Applied))
		for _, a := range status.Applied {
			rows = append(rows, []string{strconv.FormatInt(a.Version, 10), a.Name, a.AppliedAt})
		}
		printer.Section("Applied")
		printer.Table([]string{"VERSION", "NAME", "APPLIED AT"}, rows)
	}

	if len(status.Pending) > 0 {
		rows := make([][]string, 0, len(status.Pending))
		for _, m := range status.Pending {
			rows = append(rows, []string{strconv.FormatInt(m.Version, 10), m.Name})
		}
		printer.Section("Pending")
		printer.Table([]string{"VERSION", "NAME"}, rows)
	} else {
		printer.Println()
		printer.Println("No pending migrations.")
	}
	return nil
}
