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
	"github.com/eastgate/weeknotes/internal/output"
)

// exampleConfig is written into the config dir on init as a starting point.
const exampleConfig = `# weeknotes configuration
# Copy to weeknotes.yaml in this directory (or the working directory)
# and uncomment what you want to change. Every key can also be set via
# an environment variable: uppercase the key and replace '.' with '_'
# (e.g. DATABASE_PATH, DRAFT_OUTPUT_DIR).

database:
  # path: ""                  # default: <this dir>/weeknotes.db
  # busy_timeout: 5s
  # migrate_timeout: 30s

log:
  # level: info               # debug, info, warn, error

import:
  # dir: data/latest          # where mastodon.json / linkding.json live

week:
  # timezone: Local           # "Local", "UTC", or an IANA name

draft:
  # output_dir: content/posts
  # title_prefix: Weeknotes
  # author: ""
`

// initResult holds the data for init output.
type initResult struct {
	ConfigDir     string `json:"config_dir"`
	ExampleConfig string `json:"example_config"`
	Database      string `json:"database"`
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the config directory and database",
		Long: `Initialize weeknotes for first use.

Creates the config directory, writes a commented example config file,
opens the database, and brings the schema up to date. Safe to run
repeatedly.

Examples:
  weeknotes init          # Set everything up
  weeknotes init --json   # Structured output for scripting`,
		RunE: runInit,
	}
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	dir := config.Dir()
	if dir == "" {
		err := output.NewSystemError("cannot determine config directory (no home directory)")
		printer.Error(err)
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		sysErr := output.NewSystemErrorWithCause("creating config directory: "+err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	examplePath := filepath.Join(dir, "weeknotes.yaml.example")
	if _, err := os.Stat(examplePath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(exampleConfig), 0o644); err != nil {
			sysErr := output.NewSystemErrorWithCause("writing example config: "+err.Error(), err)
			printer.Error(sysErr)
			return sysErr
		}
	}

	// Open and migrate; this is the same startup path every command uses.
	cfg, err := resolveConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	sess, err := openSession(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer sess.Close()

	result := initResult{
		ConfigDir:     dir,
		ExampleConfig: examplePath,
		Database:      cfg.Database.Path,
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.KeyValue("Config dir", result.ConfigDir)
	printer.KeyValue("Example config", result.ExampleConfig)
	printer.KeyValue("Database", result.Database)
	printer.Println()
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("weeknotes is ready. Import your first export with 'weeknotes import --dir %s'.", cfg.Import.Dir),
	})
}
