package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/podded/podded/engine/core"
)

// Exit statuses of the podded binary.
const (
	ExitOK         = 0
	ExitArgument   = 1
	ExitLocked     = 2
	ExitSubprocess = 3
	ExitMissing    = 4
	ExitStructural = 5
	ExitUnexpected = 9
)

// CliError is an error as the user sees it: one prefixed line and an exit
// status.
type CliError struct {
	Code    int
	Prefix  string
	Message string
	Cause   error
}

func (e *CliError) Error() string {
	if e.Prefix == "" {
		return e.Message
	}
	return e.Prefix + " " + e.Message
}

func (e *CliError) Unwrap() error {
	return e.Cause
}

// Classify maps an error returned by a command onto the exit status and
// prefix it is reported with. A nil error maps to nil.
func Classify(err error) *CliError {
	if err == nil {
		return nil
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	msg := err.Error()
	var procErr *core.ExternalProcessError
	switch {
	case errors.Is(err, core.ErrLocked):
		return &CliError{Code: ExitLocked, Prefix: "LOCKED:", Message: msg, Cause: err}
	case errors.As(err, &procErr):
		return &CliError{
			Code:    ExitSubprocess,
			Prefix:  fmt.Sprintf("SUBPROCESS exited with %d:", procErr.ExitCode),
			Message: processMessage(procErr),
			Cause:   err,
		}
	case errors.Is(err, core.ErrFetch):
		return &CliError{Code: ExitSubprocess, Prefix: "FETCH:", Message: msg, Cause: err}
	case errors.Is(err, core.ErrMissingConfig):
		return &CliError{Code: ExitMissing, Prefix: "MISSING:", Message: msg, Cause: err}
	case errors.Is(err, core.ErrStructural):
		return &CliError{Code: ExitStructural, Prefix: "MALFORMED:", Message: msg, Cause: err}
	case errors.Is(err, core.ErrNotFound):
		return &CliError{Code: ExitOK, Prefix: "NOT FOUND:", Message: msg, Cause: err}
	case errors.Is(err, core.ErrArgument), errors.Is(err, core.ErrValidation):
		return &CliError{Code: ExitArgument, Prefix: "INVALID ARGUMENT:", Message: msg, Cause: err}
	case errors.Is(err, context.Canceled):
		return &CliError{Code: ExitUnexpected, Prefix: "INTERRUPTED:", Message: msg, Cause: err}
	default:
		return &CliError{Code: ExitUnexpected, Prefix: "ERROR:", Message: msg, Cause: err}
	}
}

func processMessage(err *core.ExternalProcessError) string {
	cmd := strings.Join(err.Argv, " ")
	if err.ExitCode < 0 && err.Cause != nil {
		return fmt.Sprintf("%s: %v", cmd, err.Cause)
	}
	return cmd
}
