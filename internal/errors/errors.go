package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG"
	ErrAPI    = "API"
	ErrSSH    = "SSH"
)

// Dashboard operation kinds. Each one maps to a single fixed display message,
// whatever the underlying cause was.
const (
	ErrFetchSystemInfo = "FETCH_SYSTEM_INFO"
	ErrFetchProcesses  = "FETCH_PROCESSES"
	ErrKillProcess     = "KILL_PROCESS"
)

// Fixed display messages for the dashboard operation kinds.
const (
	MsgFetchSystemInfo = "Failed to fetch system info"
	MsgFetchProcesses  = "Failed to fetch processes"
	MsgKillProcess     = "Failed to kill process"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// The layout of Error() is:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Operation wraps a failed dashboard operation into its kind. The display
// message is fixed per kind; the cause is kept for logs and errors.Is.
func Operation(kind string, cause error) *Error {
	return &Error{
		Code:    kind,
		Message: DisplayMessage(kind),
		Cause:   cause,
	}
}

// DisplayMessage returns the fixed user-facing text for an operation kind.
func DisplayMessage(kind string) string {
	switch kind {
	case ErrFetchSystemInfo:
		return MsgFetchSystemInfo
	case ErrFetchProcesses:
		return MsgFetchProcesses
	case ErrKillProcess:
		return MsgKillProcess
	default:
		return "Operation failed"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code && code != ""
}

// CodeOf returns the code of the first structured Error in err's chain,
// or "" if there is none.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var sdErr *Error
	if errors.As(err, &sdErr) {
		return sdErr.Code
	}
	return ""
}
