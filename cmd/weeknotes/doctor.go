// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Config  []checkResult  `json:"config"`
	Store   []checkResult  `json:"store"`
	Data    []checkResult  `json:"data"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quietFlag bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check setup health and suggest fixes",
		Long: `Check weeknotes setup health and suggest fixes.

Runs a series of health checks across three categories:
  CONFIG - configuration resolution, config file, timezone
  STORE  - database reachability and schema state
  DATA   - import directory and journal contents

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  weeknotes doctor          # Run all health checks
  weeknotes doctor --quiet  # Only show failures and warnings
  weeknotes doctor --json   # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quietFlag)
		},
	}

	cmd.Flags().BoolVar(&quietFlag, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := newPrinter(cmd)

	result := gatherDoctorChecks(cmd)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command) *doctorResult {
	result := &doctorResult{
		Version: version,
		Summary: &doctorSummary{},
	}

	var cfgChecks []checkResult
	cfg := checkConfigResolution(cmd, &cfgChecks)
	result.Config = cfgChecks

	if cfg != nil {
		result.Config = append(result.Config, checkTimezone(cfg))
		result.Store = runStoreChecks(cmd, cfg)
		result.Data = runDataChecks(cmd, cfg)
	}

	allChecks := append(append(result.Config, result.Store...), result.Data...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("weeknotes doctor v%s\n", result.Version)

	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "STORE", result.Store, quiet)
	printCheckSection(printer, "DATA", result.Data, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s: %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     hint: %s\n", check.Hint)
		}
	}
}

// statusIcon returns the display symbol for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "✓"
	case checkWarn:
		return "!"
	case checkFail:
		return "✗"
	}
	return "?"
}
