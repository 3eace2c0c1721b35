// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eastgate/weeknotes/internal/output"
)

// derivedEnvVars are the environment variables the resolver derives from
// setting paths. Tests unset them so the host environment cannot leak in.
var derivedEnvVars = []string{
	"DATABASE_PATH", "DATABASE_BUSY_TIMEOUT", "DATABASE_MIGRATE_TIMEOUT",
	"LOG_LEVEL", "IMPORT_DIR", "WEEK_TIMEZONE",
	"DRAFT_OUTPUT_DIR", "DRAFT_TITLE_PREFIX", "DRAFT_AUTHOR",
}

// isolateEnv points the config dir at a temp directory and clears every
// derived environment variable for the duration of the test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WEEKNOTES_CONFIG_HOME", dir)
	for _, key := range derivedEnvVars {
		if val, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, val) })
		}
	}
	return dir
}

// runCommand executes the CLI against a fresh root command and returns
// combined stdout plus the error.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// tempDBArgs returns --db pointing at a fresh database file.
func tempDBArgs(t *testing.T) (string, []string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	return path, []string{"--db", path}
}

func TestBuildVersion(t *testing.T) {
	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion() = %q, want %q", got, "dev")
	}

	origCommit, origDate := commit, date
	defer func() { commit, date = origCommit, origDate }()

	commit = "abcdef1234567890"
	date = "2026-08-26"
	got := buildVersion()
	if !strings.Contains(got, "abcdef1") {
		t.Errorf("buildVersion() = %q, want short commit included", got)
	}
	if strings.Contains(got, "abcdef12") {
		t.Errorf("buildVersion() = %q, want commit truncated to 7 chars", got)
	}
}

func TestRootCmd_NoSubcommandJSON(t *testing.T) {
	isolateEnv(t)

	out, err := runCommand(t, "--json")
	if err == nil {
		t.Fatal("expected error when no subcommand given in JSON mode")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(out, `"error"`) {
		t.Errorf("expected JSON error output, got: %s", out)
	}
}

func TestRootCmd_HelpListsGroups(t *testing.T) {
	isolateEnv(t)

	out, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Journal Commands:",
		"Publishing Commands:",
		"Agent Commands:",
		"Admin Commands:",
		"import", "list", "status", "week", "draft",
		"init", "migrate", "config", "doctor", "serve", "skill",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestFormatBool(t *testing.T) {
	if formatBool(true) != "yes" || formatBool(false) != "no" {
		t.Error("formatBool mapping wrong")
	}
}
