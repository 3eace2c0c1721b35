// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/output"
	"github.com/eastgate/weeknotes/internal/store"
	"github.com/eastgate/weeknotes/internal/week"
)

// listResult holds the data for list output.
type listResult struct {
	Start string       `json:"start"`
	End   string       `json:"end"`
	Count int          `json:"count"`
	Items []store.Item `json:"items,omitempty"`
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var dateFlag, startFlag, endFlag, sourceFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List imported items for a week or date range",
		Long: `List journal items for a week or an explicit date range.

Without flags, shows the current week's items. --date selects the week
containing that date; --start/--end select an explicit half-open range.

Examples:
  weeknotes list                        # Current week
  weeknotes list --date 2026-08-26      # Week of a specific date
  weeknotes list --start 2026-08-01 --end 2026-09-01
  weeknotes list --source linkding      # Bookmarks only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, dateFlag, startFlag, endFlag, sourceFlag)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Range start, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Range end, YYYY-MM-DD (exclusive)")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Filter by source: mastodon or linkding")
	cmd.Flags().String("timezone", "", "Timezone for week boundaries")
	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, dateFlag, startFlag, endFlag, sourceFlag string) error {
	printer := newPrinter(cmd)

	if sourceFlag != "" && sourceFlag != string(store.SourceMastodon) && sourceFlag != string(store.SourceLinkding) {
		err := output.NewUserError(fmt.Sprintf("unknown source %q (expected mastodon or linkding)", sourceFlag))
		printer.Error(err)
		return err
	}
	if (startFlag == "") != (endFlag == "") {
		err := output.NewUserError("--start and --end must be used together")
		printer.Error(err)
		return err
	}

	sess, err := openSession(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.Close()

	start, end, err := listWindow(sess, dateFlag, startFlag, endFlag)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	items, err := sess.store.ListRange(cmd.Context(), start, end, store.Source(sourceFlag))
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("listing items: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	result := listResult{
		Start: start.Format(week.DateLayout),
		End:   end.Format(week.DateLayout),
		Count: len(items),
		Items: items,
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	if len(items) == 0 {
		printer.Print("No items between %s and %s.\n", result.Start, result.End)
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.PostedAt.Format(week.DateLayout),
			string(item.Source),
			itemSummary(item),
		})
	}
	printer.Table([]string{"DATE", "SOURCE", "ITEM"}, rows)
	return nil
}

// listWindow resolves the query window: an explicit --start/--end range, or
// the week containing --date (or today).
func listWindow(sess *session, dateFlag, startFlag, endFlag string) (time.Time, time.Time, error) {
	loc, err := week.LoadLocation(sess.cfg.Week.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if startFlag != "" {
		start, err := week.ParseDate(startFlag, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := week.ParseDate(endFlag, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	info, err := weekInfoFor(sess.cfg, dateFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return info.Start, info.End, nil
}

// itemSummary returns a single-line label for an item: bookmark title, or
// post text truncated to fit a table cell.
func itemSummary(item store.Item) string {
	text := item.Title
	if text == "" {
		text = strings.Join(strings.Fields(item.Content), " ")
	}
	if text == "" {
		text = item.URL
	}
	const max = 60
	if runes := []rune(text); len(runes) > max {
		text = string(runes[:max-3]) + "..."
	}
	return text
}
