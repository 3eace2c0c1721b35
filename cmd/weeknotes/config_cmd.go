// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/config"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Long: `Inspect the configuration used by this invocation.

'config show' prints every resolved setting after merging flags,
environment variables, the config file, and defaults. 'config path'
prints the locations involved in resolution.

Examples:
  weeknotes config show          # Resolved settings
  weeknotes config show --json   # As JSON for scripting
  weeknotes config path          # Config dir and file locations`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration snapshot",
		RunE:  runConfigShow,
	}
}

// runConfigShow executes the config show subcommand.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	settings := map[string]any{
		"database.path":            cfg.Database.Path,
		"database.busy_timeout":    cfg.Database.BusyTimeout.String(),
		"database.migrate_timeout": cfg.Database.MigrateTimeout.String(),
		"log.level":                cfg.Log.Level,
		"import.dir":               cfg.Import.Dir,
		"week.timezone":            cfg.Week.Timezone,
		"draft.output_dir":         cfg.Draft.OutputDir,
		"draft.title_prefix":       cfg.Draft.TitlePrefix,
		"draft.author":             cfg.Draft.Author,
	}

	if printer.IsJSON() {
		return printer.WriteJSON(settings)
	}

	printer.KeyValue("database.path", cfg.Database.Path)
	printer.KeyValue("database.busy_timeout", cfg.Database.BusyTimeout.String())
	printer.KeyValue("database.migrate_timeout", cfg.Database.MigrateTimeout.String())
	printer.KeyValue("log.level", cfg.Log.Level)
	printer.KeyValue("import.dir", cfg.Import.Dir)
	printer.KeyValue("week.timezone", cfg.Week.Timezone)
	printer.KeyValue("draft.output_dir", cfg.Draft.OutputDir)
	printer.KeyValue("draft.title_prefix", cfg.Draft.TitlePrefix)
	printer.KeyValue("draft.author", cfg.Draft.Author)
	return nil
}

// newConfigPathCmd creates the config path subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		RunE:  runConfigPath,
	}
}

// runConfigPath executes the config path subcommand.
func runConfigPath(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	dir := config.Dir()
	result := map[string]any{
		"config_dir":       dir,
		"config_file":      filepath.Join(dir, "weeknotes.yaml"),
		"default_database": config.DefaultDatabasePath(),
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.KeyValue("Config dir", dir)
	printer.KeyValue("Config file", filepath.Join(dir, "weeknotes.yaml"))
	printer.KeyValue("Default database", config.DefaultDatabasePath())
	return nil
}
