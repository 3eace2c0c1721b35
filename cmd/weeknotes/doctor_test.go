// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDoctorCmd_JSON(t *testing.T) {
	isolateEnv(t)
	dbArgs := seedJournal(t)

	out, err := runCommand(t, append([]string{"doctor", "--json"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, out)
	}
	if result.Summary == nil {
		t.Fatal("summary missing")
	}
	if result.Summary.Failed != 0 {
		t.Errorf("failed = %d, want 0\nOutput: %s", result.Summary.Failed, out)
	}
	if len(result.Config) == 0 || len(result.Store) == 0 || len(result.Data) == 0 {
		t.Errorf("expected checks in every category: %+v", result)
	}

	var schemaCheck *checkResult
	for i := range result.Store {
		if result.Store[i].Name == "Schema" {
			schemaCheck = &result.Store[i]
		}
	}
	if schemaCheck == nil {
		t.Fatal("no schema check reported")
	}
	if schemaCheck.Status != checkPass {
		t.Errorf("schema check = %s (%s), want pass", schemaCheck.Status, schemaCheck.Message)
	}
}

func TestDoctorCmd_WarnsOnEmptyJournal(t *testing.T) {
	isolateEnv(t)
	dbPath, dbArgs := tempDBArgs(t)

	// Migrate first so only the journal-content warning fires for the store.
	if _, err := runCommand(t, append([]string{"migrate"}, dbArgs...)...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out, err := runCommand(t, append([]string{"doctor", "--json"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, out)
	}
	if result.Summary.Warnings == 0 {
		t.Errorf("expected warnings for empty journal at %s\nOutput: %s", dbPath, out)
	}

	found := false
	for _, check := range result.Data {
		if check.Status == checkWarn && strings.Contains(check.Hint, "weeknotes import") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an import hint in data checks: %+v", result.Data)
	}
}

func TestDoctorCmd_HumanOutput(t *testing.T) {
	isolateEnv(t)
	dbArgs := seedJournal(t)

	out, err := runCommand(t, append([]string{"doctor"}, dbArgs...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"CONFIG", "STORE", "DATA"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected section %q in output:\n%s", want, out)
		}
	}
}
