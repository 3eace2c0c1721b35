// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/draft"
	"github.com/eastgate/weeknotes/internal/output"
)

// draftResult holds the data for draft output.
type draftResult struct {
	Title     string `json:"title"`
	Path      string `json:"path,omitempty"`
	ItemCount int    `json:"item_count"`
	Written   bool   `json:"written"`
}

// newDraftCmd creates the draft command.
func newDraftCmd() *cobra.Command {
	var dateFlag string
	var stdoutFlag, forceFlag bool
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Generate the weeknotes post skeleton for a week",
		Long: `Generate a Jekyll-ready weeknotes skeleton from stored items.

Composes frontmatter and per-source sections for the week's Mastodon
posts and Linkding bookmarks, writes the file under the output
directory, and records it so repeated runs are detected.

Examples:
  weeknotes draft                     # Current week, written to the output dir
  weeknotes draft --date 2026-08-26   # A specific week
  weeknotes draft --stdout            # Print instead of writing
  weeknotes draft --force             # Overwrite an existing draft`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, dateFlag, stdoutFlag, forceFlag)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date in YYYY-MM-DD format (default: today)")
	cmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "Print the skeleton instead of writing a file")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing draft for the week")
	cmd.Flags().String("timezone", "", "Timezone for week boundaries")
	cmd.Flags().String("title-prefix", "", "Leading segment of the post title")
	cmd.Flags().String("output-dir", "", "Root directory for post files")
	return cmd
}

// runDraft executes the draft command.
func runDraft(cmd *cobra.Command, dateFlag string, toStdout, force bool) error {
	printer := newPrinter(cmd)

	sess, err := openSession(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.Close()

	info, err := weekInfoFor(sess.cfg, dateFlag)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	items, err := sess.store.ListRange(cmd.Context(), info.Start, info.End, "")
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("listing items: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	content, err := draft.Compose(draft.Input{
		Week:   info,
		Author: sess.cfg.Draft.Author,
		Items:  items,
	})
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("composing draft: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	if toStdout {
		printer.Print("%s", content)
		return nil
	}

	if !force {
		if existing, findErr := sess.store.FindDraft(cmd.Context(), info.Year, info.Week); findErr == nil && existing != nil {
			userErr := output.NewUserError(fmt.Sprintf(
				"draft for %d week %d already recorded at %s (use --force to overwrite)",
				info.Year, info.Week, existing.Path))
			printer.Error(userErr)
			return userErr
		}
		if _, statErr := os.Stat(info.Filename); statErr == nil {
			userErr := output.NewUserError(fmt.Sprintf(
				"%s already exists (use --force to overwrite)", info.Filename))
			printer.Error(userErr)
			return userErr
		}
	}

	if err := os.MkdirAll(filepath.Dir(info.Filename), 0o755); err != nil {
		sysErr := output.NewSystemErrorWithCause("creating output directory: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}
	if err := os.WriteFile(info.Filename, []byte(content), 0o644); err != nil {
		sysErr := output.NewSystemErrorWithCause("writing draft: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	if err := sess.store.RecordDraft(cmd.Context(), info.Year, info.Week, info.Filename, len(items)); err != nil {
		sysErr := output.NewSystemErrorWithCause("recording draft: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	sess.logger.Debug("wrote draft", "path", info.Filename, "items", len(items))

	result := draftResult{
		Title:     info.Title,
		Path:      info.Filename,
		ItemCount: len(items),
		Written:   true,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Draft written to %s (%d items)", result.Path, result.ItemCount),
	})
}
