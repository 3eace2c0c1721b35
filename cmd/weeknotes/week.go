// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/output"
	"github.com/eastgate/weeknotes/internal/week"
)

// weekResult holds the data for week output.
type weekResult struct {
	Date     string `json:"date"`
	Year     int    `json:"year"`
	Week     int    `json:"week"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
}

// newWeekCmd creates the week command.
func newWeekCmd() *cobra.Command {
	var dateFlag string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show ISO week number, window, title, and filename",
		Long: `Show weeknotes metadata for a date.

Computes the ISO week number, the Monday-Sunday window, the post title,
and the target filename for a date (today by default).

Examples:
  weeknotes week                     # Current week
  weeknotes week --date 2026-08-26   # Week of a specific date
  weeknotes week --json              # Structured output for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeek(cmd, dateFlag)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date in YYYY-MM-DD format (default: today)")
	cmd.Flags().String("timezone", "", "Timezone for week boundaries")
	cmd.Flags().String("title-prefix", "", "Leading segment of the post title")
	cmd.Flags().String("output-dir", "", "Root directory for post filenames")
	return cmd
}

// runWeek executes the week command.
func runWeek(cmd *cobra.Command, dateFlag string) error {
	printer := newPrinter(cmd)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	info, err := weekInfoFor(cfg, dateFlag)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	result := weekResult{
		Date:     info.Date.Format(week.DateLayout),
		Year:     info.Year,
		Week:     info.Week,
		Start:    info.Start.Format(week.DateLayout),
		End:      info.End.AddDate(0, 0, -1).Format(week.DateLayout),
		Title:    info.Title,
		Filename: info.Filename,
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.KeyValue("Date", result.Date)
	printer.KeyValue("ISO Week", strconv.Itoa(result.Week))
	printer.KeyValue("Window", result.Start+" to "+result.End)
	printer.KeyValue("Title", result.Title)
	printer.KeyValue("Filename", result.Filename)
	return nil
}

// weekInfoFor resolves a --date value (or today) into week info using the
// configured timezone and draft settings.
func weekInfoFor(cfg *config.Config, dateFlag string) (week.Info, error) {
	loc, err := week.LoadLocation(cfg.Week.Timezone)
	if err != nil {
		return week.Info{}, err
	}

	day := time.Now().In(loc)
	if dateFlag != "" {
		if day, err = week.ParseDate(dateFlag, loc); err != nil {
			return week.Info{}, err
		}
	}
	return week.For(day, cfg.Draft.TitlePrefix, cfg.Draft.OutputDir), nil
}
