// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/database"
	"github.com/eastgate/weeknotes/internal/feeds"
	"github.com/eastgate/weeknotes/internal/store"
	"github.com/eastgate/weeknotes/internal/week"
)

// checkConfigResolution resolves the configuration snapshot and records
// the outcome. Returns nil when resolution failed; dependent checks are
// skipped in that case.
func checkConfigResolution(cmd *cobra.Command, checks *[]checkResult) *config.Config {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		*checks = append(*checks, checkResult{
			Name:    "Resolution",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the named setting in the config file, environment, or flags",
		})
		return nil
	}

	*checks = append(*checks, checkResult{
		Name:    "Resolution",
		Status:  checkPass,
		Message: "configuration resolves and validates",
	})
	*checks = append(*checks, checkConfigFile())
	return cfg
}

// checkConfigFile reports whether a config file was found at one of the
// conventional locations. Running without one is fine.
func checkConfigFile() checkResult {
	candidates := []string{
		"weeknotes.yaml",
		filepath.Join(config.Dir(), "weeknotes.yaml"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return checkResult{
				Name:    "Config File",
				Status:  checkPass,
				Message: "using " + path,
			}
		}
	}
	return checkResult{
		Name:    "Config File",
		Status:  checkWarn,
		Message: "no config file found, using defaults",
		Hint:    "Run 'weeknotes init' to create an example config",
	}
}

// checkTimezone verifies the configured timezone loads.
func checkTimezone(cfg *config.Config) checkResult {
	if _, err := week.LoadLocation(cfg.Week.Timezone); err != nil {
		return checkResult{
			Name:    "Timezone",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Set week.timezone to \"Local\", \"UTC\", or an IANA name",
		}
	}
	return checkResult{
		Name:    "Timezone",
		Status:  checkPass,
		Message: cfg.Week.Timezone + " loads",
	}
}

// runStoreChecks verifies the database opens and reports schema state.
func runStoreChecks(cmd *cobra.Command, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)

	db, err := database.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Database",
			Status:  checkFail,
			Message: fmt.Sprintf("cannot open %s: %v", cfg.Database.Path, err),
		})
		return checks
	}
	defer db.Close()

	checks = append(checks, checkResult{
		Name:    "Database",
		Status:  checkPass,
		Message: cfg.Database.Path + " is reachable",
	})

	status, err := database.Inspect(cmd.Context(), db, database.Known())
	switch {
	case err != nil:
		checks = append(checks, checkResult{
			Name:    "Schema",
			Status:  checkFail,
			Message: err.Error(),
		})
	case len(status.Pending) > 0:
		checks = append(checks, checkResult{
			Name:    "Schema",
			Status:  checkWarn,
			Message: fmt.Sprintf("version %d, %d migration(s) pending", status.Current, len(status.Pending)),
			Hint:    "Run 'weeknotes migrate'",
		})
	default:
		checks = append(checks, checkResult{
			Name:    "Schema",
			Status:  checkPass,
			Message: fmt.Sprintf("up to date at version %d", status.Current),
		})
	}

	return checks
}

// runDataChecks reports on the import directory and journal contents.
func runDataChecks(cmd *cobra.Command, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)

	if _, err := os.Stat(cfg.Import.Dir); errors.Is(err, fs.ErrNotExist) {
		checks = append(checks, checkResult{
			Name:    "Import Dir",
			Status:  checkWarn,
			Message: cfg.Import.Dir + " does not exist",
			Hint:    "Place exported " + feeds.MastodonFile + " / " + feeds.LinkdingFile + " there before importing",
		})
	} else {
		checks = append(checks, checkResult{
			Name:    "Import Dir",
			Status:  checkPass,
			Message: cfg.Import.Dir + " exists",
		})
	}

	checks = append(checks, checkJournalContents(cmd, cfg))
	return checks
}

// checkJournalContents counts stored items, tolerating a store that has
// not been migrated yet.
func checkJournalContents(cmd *cobra.Command, cfg *config.Config) checkResult {
	db, err := database.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return checkResult{
			Name:    "Journal",
			Status:  checkWarn,
			Message: "store unreachable, skipped",
		}
	}
	defer db.Close()

	summary, err := store.New(db).Summarize(cmd.Context())
	if err != nil {
		return checkResult{
			Name:    "Journal",
			Status:  checkWarn,
			Message: "not readable yet (schema missing?)",
			Hint:    "Run 'weeknotes migrate'",
		}
	}
	if summary.TotalItems == 0 {
		return checkResult{
			Name:    "Journal",
			Status:  checkWarn,
			Message: "no items imported yet",
			Hint:    "Run 'weeknotes import'",
		}
	}
	return checkResult{
		Name:    "Journal",
		Status:  checkPass,
		Message: fmt.Sprintf("%d item(s), %d draft(s)", summary.TotalItems, summary.Drafts),
	}
}
