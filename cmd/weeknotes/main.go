// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the weeknotes CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeknotes",
		Short: "A local-first weeknotes journal",
		Long: `Weeknotes - a local-first journal of your week's online activity.

Weeknotes keeps a SQLite journal of Mastodon posts and Linkding bookmarks
imported from exported JSON, computes ISO-week windows, and assembles
Jekyll-ready draft skeletons:
  - Import exported posts and bookmarks into a deduplicated local store
  - Query activity by week or date range
  - Generate a post skeleton with frontmatter and per-source sections

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'weeknotes --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for values that can't live in the shell.
	// Environment variables already set always take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().String("db", "", "Path to the SQLite database")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-project override, gitignored)
//  2. $CWD/.env         (per-project)
//  3. ~/.config/weeknotes/env (global fallback)
func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = godotenv.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "journal", Title: "Journal Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "publish", Title: "Publishing Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Journal commands: import, list, status
	addGroupedCommand(cmd, newImportCmd(), "journal")
	addGroupedCommand(cmd, newListCmd(), "journal")
	addGroupedCommand(cmd, newStatusCmd(), "journal")

	// Publishing commands: week, draft
	addGroupedCommand(cmd, newWeekCmd(), "publish")
	addGroupedCommand(cmd, newDraftCmd(), "publish")

	// Agent commands: serve, skill
	addGroupedCommand(cmd, newServeCmd(), "agent")
	addGroupedCommand(cmd, newSkillCmd(), "agent")

	// Admin commands: init, migrate, config, doctor
	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newMigrateCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
