// Package week computes ISO-week metadata for weeknotes posts: the week
// number, the Monday through Sunday window, and the Jekyll post title and
// filename derived from a date.
package week

import (
	"fmt"
	"path/filepath"
	"time"
)

// DateLayout is the calendar-date format accepted by --date flags.
const DateLayout = "2006-01-02"

// Info describes the weeknotes post anchored at a single date. Year is the
// calendar year of the date, not the ISO week-year, so posts file under the
// directory readers expect even in the days around new year.
type Info struct {
	Date     time.Time `json:"-"`
	Year     int       `json:"year"`
	Week     int       `json:"week"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Title    string    `json:"title"`
	Filename string    `json:"filename"`
}

// For computes the week info for a date. titlePrefix becomes the leading
// segment of the post title and outputDir the root of the filename path.
func For(date time.Time, titlePrefix, outputDir string) Info {
	_, week := date.ISOWeek()
	year := date.Year()

	start := startOfWeek(date)
	dateStr := date.Format(DateLayout)

	return Info{
		Date:     date,
		Year:     year,
		Week:     week,
		Start:    start,
		End:      start.AddDate(0, 0, 7),
		Title:    fmt.Sprintf("%s: %d Week %d", titlePrefix, year, week),
		Filename: filepath.Join(outputDir, fmt.Sprintf("%d", year), fmt.Sprintf("%s-w%02d.md", dateStr, week)),
	}
}

// ParseDate parses a YYYY-MM-DD date in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// LoadLocation resolves a timezone setting. "Local" and "" mean the
// system timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// startOfWeek returns midnight on the Monday of the date's week, in the
// date's location.
func startOfWeek(date time.Time) time.Time {
	daysSinceMonday := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, date.Location())
}
