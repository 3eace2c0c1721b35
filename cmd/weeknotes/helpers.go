// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/database"
	"github.com/eastgate/weeknotes/internal/output"
	"github.com/eastgate/weeknotes/internal/store"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the effective color setting from the --color flag and
// TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds a printer for a command with stderr routing for
// human-mode errors and warnings.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// resolveConfig builds the configuration snapshot for this invocation.
// The command's flag set supplies the explicitly-set flag layer.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, output.NewConfigError(err)
	}
	return cfg, nil
}

// newLogger builds the command logger at the configured level. Logs go to
// stderr so JSON output on stdout stays machine-parseable.
func newLogger(cmd *cobra.Command, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "weeknotes",
	})
}

// session is the opened journal every data command runs against.
type session struct {
	cfg    *config.Config
	db     *sql.DB
	store  *store.Store
	logger *log.Logger
}

// Close releases the database connection.
func (s *session) Close() {
	_ = s.db.Close()
}

// openSession runs the startup sequence: resolve configuration, open the
// store, bring the schema up to date. Failures map onto the config and
// migration exit codes before any command body runs.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd, cfg)

	db, err := database.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(
			fmt.Sprintf("opening store at %s: %v", cfg.Database.Path, err), err)
	}

	runner := &database.Runner{
		Timeout: cfg.Database.MigrateTimeout,
		Logger:  logger,
	}
	if _, err := runner.Migrate(cmd.Context(), db, database.Known()); err != nil {
		db.Close()
		return nil, output.NewMigrationError(err)
	}

	return &session{
		cfg:    cfg,
		db:     db,
		store:  store.New(db),
		logger: logger,
	}, nil
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
