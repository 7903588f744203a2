package cli

import "fmt"

// ExitError signals a specific process exit code from a command RunE without
// calling os.Exit directly, keeping command behavior testable. [Execute]
// extracts the code with [IsExitError]; every other error maps to exit code 1.
type ExitError struct {
	// Code is the exit code to return to the shell.
	Code int
}

// Error returns "exit status N", matching the os/exec ExitError format.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError checks whether err is an [ExitError] and extracts its code.
// Returns (0, false) for nil or other error types.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
