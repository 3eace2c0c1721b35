// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/eastgate/weeknotes/internal/database"
)

func TestMigrateCmd_AppliesAndIsIdempotent(t *testing.T) {
	isolateEnv(t)
	_, dbArgs := tempDBArgs(t)

	out, err := runCommand(t, append([]string{"migrate", "--json"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var first struct {
		Applied []int64 `json:"applied"`
		Count   int     `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &first); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, out)
	}
	if first.Count != len(database.Known()) {
		t.Errorf("applied %d migrations, want %d", first.Count, len(database.Known()))
	}

	// Second run applies nothing.
	out, err = runCommand(t, append([]string{"migrate", "--json"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	var second struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &second); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if second.Count != 0 {
		t.Errorf("second run applied %d migrations, want 0", second.Count)
	}
}

func TestMigrateStatusCmd(t *testing.T) {
	isolateEnv(t)
	_, dbArgs := tempDBArgs(t)

	// Fresh store: everything pending, nothing changed by status itself.
	out, err := runCommand(t, append([]string{"migrate", "status", "--json"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var status database.Status
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, out)
	}
	if status.Current != 0 {
		t.Errorf("current = %d, want 0 before migrating", status.Current)
	}
	if len(status.Pending) != len(database.Known()) {
		t.Errorf("pending = %d, want %d", len(status.Pending), len(database.Known()))
	}

	if _, err := runCommand(t, append([]string{"migrate"}, dbArgs...)...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	out, err = runCommand(t, append([]string{"migrate", "status"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No pending migrations.") {
		t.Errorf("expected up-to-date message, got:\n%s", out)
	}
}
