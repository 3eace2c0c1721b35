// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/database"
	"github.com/eastgate/weeknotes/internal/output"
	"github.com/eastgate/weeknotes/internal/week"
)

// statusResult holds the data for status output.
type statusResult struct {
	DatabasePath  string         `json:"database_path"`
	SchemaVersion int64          `json:"schema_version"`
	TotalItems    int            `json:"total_items"`
	BySource      map[string]int `json:"by_source"`
	Earliest      string         `json:"earliest,omitempty"`
	Latest        string         `json:"latest,omitempty"`
	Drafts        int            `json:"drafts"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show journal state",
		Long: `Show the current state of the weeknotes journal.

Displays the database path, schema version, item counts per source,
the covered date range, and the number of recorded drafts.

Examples:
  weeknotes status          # Show human-readable status
  weeknotes status --json   # Output status as JSON for scripting`,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	sess, err := openSession(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.Close()

	schema, err := database.Inspect(cmd.Context(), sess.db, database.Known())
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("inspecting schema: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	summary, err := sess.store.Summarize(cmd.Context())
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("summarizing store: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	result := statusResult{
		DatabasePath:  sess.cfg.Database.Path,
		SchemaVersion: schema.Current,
		TotalItems:    summary.TotalItems,
		BySource:      make(map[string]int, len(summary.BySource)),
		Drafts:        summary.Drafts,
	}
	for source, count := range summary.BySource {
		result.BySource[string(source)] = count
	}
	if !summary.Earliest.IsZero() {
		result.Earliest = summary.Earliest.Format(week.DateLayout)
		result.Latest = summary.Latest.Format(week.DateLayout)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Section("Store")
	printer.KeyValue("Database", result.DatabasePath)
	printer.KeyValue("Schema version", strconv.FormatInt(result.SchemaVersion, 10))

	printer.Section("Journal")
	printer.KeyValue("Items", strconv.Itoa(result.TotalItems))
	for source, count := range result.BySource {
		printer.KeyValue("  "+source, strconv.Itoa(count))
	}
	if result.Earliest != "" {
		printer.KeyValue("Covers", result.Earliest+" to "+result.Latest)
	}
	printer.KeyValue("Drafts", strconv.Itoa(result.Drafts))
	return nil
}
