package cli

import (
	"errors"

	"github.com/thenoetrevino/flowboard/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates a general error occurred.
	// Use for: an unreachable API, store failures, unexpected failures.
	ExitGeneral = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: user, project or task ids that do not exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: responses or input that cannot be decoded.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid status values, empty titles, or any input the API rejects.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor classifies an error into an exit code
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrInvalidArgument):
		return ExitValidation
	default:
		return ExitGeneral
	}
}

// ExitCode returns the exit code main should use for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}
