package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels every podded error can be matched against with errors.Is.
var (
	ErrStructural      = errors.New("document is not well-formed")
	ErrLocked          = errors.New("document is locked")
	ErrValidation      = errors.New("invalid value")
	ErrMissingConfig   = errors.New("missing configuration")
	ErrNotFound        = errors.New("no such variable")
	ErrExternalProcess = errors.New("external process failed")
	ErrArgument        = errors.New("invalid argument")
	ErrFetch           = errors.New("fetch failed")
)

// StructuralError reports text that cannot be read as a podded document.
type StructuralError struct {
	Variable string
	Line     int
	Reason   string
}

func (e *StructuralError) Error() string {
	switch {
	case e.Variable != "" && e.Line > 0:
		return fmt.Sprintf("%s (line %d): %s", e.Variable, e.Line, e.Reason)
	case e.Variable != "":
		return fmt.Sprintf("%s: %s", e.Variable, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	default:
		return e.Reason
	}
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// LockedError rejects a mutation while LOCK is set.
type LockedError struct {
	Operation string
}

func (e *LockedError) Error() string {
	if e.Operation == "" {
		return "this document cannot modify itself anymore"
	}
	return fmt.Sprintf("this document cannot modify itself anymore (%s)", e.Operation)
}

func (e *LockedError) Is(target error) bool {
	return target == ErrLocked
}

// ValidationError reports a value that has no literal form for its slot.
type ValidationError struct {
	Variable string
	Reason   string
	Cause    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Variable != "" {
		msg = e.Variable + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// MissingConfigError means a template needs a slot that is still empty.
type MissingConfigError struct {
	Variable string
	Hint     string
}

func (e *MissingConfigError) Error() string {
	msg := fmt.Sprintf("%s has not been provided", e.Variable)
	if e.Hint != "" {
		msg += " yet, " + e.Hint
	}
	return msg
}

func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NotFoundError is returned for slot names outside the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such variable %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExternalProcessError carries the argv and exit status of a failed launch.
type ExternalProcessError struct {
	Argv     []string
	ExitCode int
	Cause    error
}

func (e *ExternalProcessError) Error() string {
	cmd := strings.Join(e.Argv, " ")
	if e.ExitCode < 0 && e.Cause != nil {
		return fmt.Sprintf("%s: %v", cmd, e.Cause)
	}
	return fmt.Sprintf("exited with %d: %s", e.ExitCode, cmd)
}

func (e *ExternalProcessError) Is(target error) bool {
	return target == ErrExternalProcess
}

func (e *ExternalProcessError) Unwrap() error {
	return e.Cause
}

// ArgumentError reports a malformed command line.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return e.Reason
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// FetchError wraps a failed retrieval of the update payload.
type FetchError struct {
	URL    string
	Status int
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewArgumentError formats an ArgumentError.
func NewArgumentError(format string, args ...any) error {
	return &ArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// NewStructuralError formats a StructuralError for a variable.
func NewStructuralError(variable string, line int, format string, args ...any) error {
	return &StructuralError{Variable: variable, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// NewValidationError formats a ValidationError for a variable.
func NewValidationError(variable string, cause error, format string, args ...any) error {
	return &ValidationError{Variable: variable, Reason: fmt.Sprintf(format, args...), Cause: cause}
}
