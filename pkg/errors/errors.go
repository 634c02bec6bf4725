// Package errors provides structured error types for gitscope.
//
// Error codes make the failure taxonomy explicit and testable:
//   - REPOSITORY_ERROR: the snapshot is unreadable or corrupt; fatal, never
//     retried (all inputs are local and synchronous).
//   - INTERNAL_ERROR: an invariant violation such as a candidate commit
//     missing from its own snapshot; fatal and indicates a bug.
//   - INVALID_INPUT: bad flag or configuration values.
//
// Classification ambiguity (a ref that cannot be confidently attributed to
// a remote owner) is deliberately NOT an error: the classifier falls back
// to treating the remote as foreign, since under-inclusion is a usability
// nuisance rather than a correctness hazard.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRepository, "unreadable ref %q", name)
//	if errors.Is(err, errors.ErrCodeRepository) {
//	    // abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, cause, "candidate %s missing", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure taxonomy.
const (
	// ErrCodeRepository marks unreadable or corrupt repository state.
	ErrCodeRepository Code = "REPOSITORY_ERROR"

	// ErrCodeInternal marks invariant violations that signal a bug.
	ErrCodeInternal Code = "INTERNAL_ERROR"

	// ErrCodeInvalidInput marks bad flag or configuration values.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
