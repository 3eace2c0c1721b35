// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/feeds"
	"github.com/eastgate/weeknotes/internal/output"
)

// importResult holds the data for import output.
type importResult struct {
	Dir      string   `json:"dir"`
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Missing  []string `json:"missing,omitempty"`
}

// newImportCmd creates the import command.
func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import exported posts and bookmarks into the journal",
		Long: `Import activity data from locally exported JSON files.

Reads mastodon.json (Mastodon API status array) and linkding.json
(Linkding bookmark export) from the import directory and upserts them
into the journal. Re-importing the same export is safe: items are
deduplicated on (source, external_id).

Examples:
  weeknotes import                    # Import from the configured directory
  weeknotes import --dir data/latest  # Import from a specific directory
  weeknotes import --json             # Structured output for scripting`,
		RunE: runImport,
	}
	cmd.Flags().String("dir", "", "Directory with exported mastodon.json / linkding.json")
	return cmd
}

// runImport executes the import command.
func runImport(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	sess, err := openSession(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.Close()

	loaded, err := feeds.LoadDir(sess.cfg.Import.Dir)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	sess.logger.Debug("parsed import directory",
		"dir", sess.cfg.Import.Dir, "items", len(loaded.Items), "missing", loaded.Missing)

	stats, err := sess.store.SaveItems(cmd.Context(), loaded.Items)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("saving items: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	result := importResult{
		Dir:      sess.cfg.Import.Dir,
		Inserted: stats.Inserted,
		Updated:  stats.Updated,
		Missing:  loaded.Missing,
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	for _, name := range result.Missing {
		printer.Warn("no %s in %s, skipped", name, result.Dir)
	}
	printer.KeyValue("Imported from", result.Dir)
	printer.KeyValue("New items", strconv.Itoa(result.Inserted))
	printer.KeyValue("Updated items", strconv.Itoa(result.Updated))
	return nil
}
