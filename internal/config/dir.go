package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the weeknotes configuration directory.
//
// Resolution:
//   - $WEEKNOTES_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/weeknotes if set (respects XDG on any platform)
//   - %AppData%/weeknotes on Windows
//   - ~/.config/weeknotes on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("WEEKNOTES_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "weeknotes")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "weeknotes")
		}
	}

	// macOS and Linux: ~/.config/weeknotes
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "weeknotes")
}

// DefaultDatabasePath returns the database location used when database.path
// is not set by any configuration source.
func DefaultDatabasePath() string {
	dir := Dir()
	if dir == "" {
		return "weeknotes.db"
	}
	return filepath.Join(dir, "weeknotes.db")
}
