// Package output provides structured output and error handling for the
// weeknotes CLI.
//
// Commands are designed to work equally well for humans and for automated
// agents, so every command supports a JSON output mode alongside styled
// human-readable output.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches
// format based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "imported 12 items"})
//	printer.Error(err)
//	printer.Println("plain text")
//
// # Exit codes
//
// Errors carry exit codes through ExitError:
//
//	output.ExitSuccess        // 0: success
//	output.ExitUserError      // 1: user error (bad args, not found)
//	output.ExitSystemError    // 2: system error (I/O, store access)
//	output.ExitConfigError    // 3: configuration could not be resolved
//	output.ExitMigrationError // 4: schema migration failed
//
// Configuration and migration failures are startup-fatal: commands report
// the failing setting or version and exit non-zero without doing any work.
package output
