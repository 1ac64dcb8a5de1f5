// Package cli contains the cobra commands of the qris binary.
package cli

import "fmt"

// Exit codes
const (
	ExitOK       = 0
	ExitError    = 1 // usage, I/O or parse failure
	ExitFindings = 2 // the command ran and reported problems
)

// ExitCodeError carries a process exit code out of a command.
// Message is empty when the command already reported its result.
type ExitCodeError struct {
	Code    int
	Message string
}

func (e *ExitCodeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// findingsError is returned by commands whose output already lists the problems.
func findingsError() error {
	return &ExitCodeError{Code: ExitFindings}
}
