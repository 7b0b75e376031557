package utils

import "fmt"

// Exit codes for the failure classes that are allowed to terminate a run.
// Everything else degrades to a fallback value and the run continues.
const (
	ExitAuthFailure    = 1
	ExitPersistFailure = 2
)

// RunError is a fatal run failure carrying the process exit code the CLI
// should terminate with.
type RunError struct {
	ExitCode int
	Message  string
	Err      error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// NewAuthError reports an authentication failure, which aborts the run.
func NewAuthError(message string) *RunError {
	return &RunError{
		ExitCode: ExitAuthFailure,
		Message:  message,
	}
}

// NewPersistError reports a failure to rewrite the record store. The run
// must not report success when the table was not written.
func NewPersistError(err error) *RunError {
	return &RunError{
		ExitCode: ExitPersistFailure,
		Message:  "failed to persist records",
		Err:      err,
	}
}
