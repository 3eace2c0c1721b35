package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad args, nothing to do, not found)
// 2 = System error (I/O failure, store unreachable)
// 3 = Configuration error (unparseable file, bad value for a setting)
// 4 = Migration error (schema migration failed or drift detected)
const (
	ExitSuccess        = 0
	ExitUserError      = 1
	ExitSystemError    = 2
	ExitConfigError    = 3
	ExitMigrationError = 4
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, missing input files, nothing matching a filter.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: I/O errors, store access failures.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError wraps a configuration resolution failure (exit code 3).
// The cause is expected to already name the failing setting.
func NewConfigError(cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// NewMigrationError wraps a schema migration failure (exit code 4).
// The cause is expected to already name the failing version.
func NewMigrationError(cause error) *ExitError {
	return &ExitError{
		Code:    ExitMigrationError,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
