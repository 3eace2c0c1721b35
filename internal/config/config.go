// Package config resolves the weeknotes configuration snapshot.
//
// Every setting has a dotted key, a compiled-in default, a derived
// environment variable (uppercased key with '.' replaced by '_'), an
// optional config-file entry, and an optional CLI flag. Resolve merges
// all four sources into one typed, read-only Config; dotted-path lookups
// never escape this package.
package config

import "time"

// Config is the resolved configuration snapshot for one process invocation.
// It is constructed once by Resolve before any command body runs and must
// not be mutated afterwards; components receive it by injection.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Import   ImportConfig   `mapstructure:"import"`
	Week     WeekConfig     `mapstructure:"week"`
	Draft    DraftConfig    `mapstructure:"draft"`
}

// DatabaseConfig holds store connection settings.
type DatabaseConfig struct {
	// Path to the SQLite database file. Empty means <config dir>/weeknotes.db.
	Path string `mapstructure:"path"`
	// BusyTimeout is the SQLite busy handler timeout.
	BusyTimeout time.Duration `mapstructure:"busy_timeout" validate:"min=0"`
	// MigrateTimeout bounds each migration version's DDL execution. Zero disables it.
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout" validate:"min=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// ImportConfig holds settings for importing exported source data.
type ImportConfig struct {
	// Dir is where exported mastodon.json / linkding.json files are looked up.
	Dir string `mapstructure:"dir" validate:"required"`
}

// WeekConfig holds week-window settings.
type WeekConfig struct {
	// Timezone for week boundaries: "Local", "UTC", or an IANA name.
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// DraftConfig holds draft composition settings.
type DraftConfig struct {
	OutputDir   string `mapstructure:"output_dir" validate:"required"`
	TitlePrefix string `mapstructure:"title_prefix" validate:"required"`
	Author      string `mapstructure:"author"`
}

// defaults is the compiled-in value table, keyed by dotted setting path.
// Every setting must appear here: viper only consults the environment for
// keys it already knows about.
func defaults() map[string]any {
	return map[string]any{
		"database.path":            "",
		"database.busy_timeout":    5 * time.Second,
		"database.migrate_timeout": 30 * time.Second,
		"log.level":                "info",
		"import.dir":               "data/latest",
		"week.timezone":            "Local",
		"draft.output_dir":         "content/posts",
		"draft.title_prefix":       "Weeknotes",
		"draft.author":             "",
	}
}

// flagBindings maps dotted setting paths to their CLI flag names.
// Flags are hyphenated; which flags exist depends on the command, so
// Resolve binds only the ones present in the given flag set.
var flagBindings = map[string]string{
	"database.path":      "db",
	"log.level":          "log-level",
	"import.dir":         "dir",
	"week.timezone":      "timezone",
	"draft.output_dir":   "output-dir",
	"draft.title_prefix": "title-prefix",
}
