// Package errors provides structured error types for the flowgraph layout engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three categories, mirroring the failure taxonomy of
// the layout pipeline:
//   - UNSUPPORTED_*: the input graph has a shape the engine refuses to lay
//     out. Always fatal; producing a wrong layout is worse than failing.
//   - INTERNAL_*: invariant violations that indicate a bug in upstream graph
//     construction, not a normal user-input condition.
//   - INVALID_*, NOT_FOUND: lookup and format failures.
//
// Partial results (edges left unrouted after routing) are not errors; they
// are reported as warnings on the layouter so the caller still receives a
// best-effort layout.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMultipleBackedges, "node %s has multiple backedges", id)
//	if errors.Is(err, errors.ErrCodeMultipleBackedges) {
//	    // fall back to a general-purpose layout
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Unsupported-input errors. The computation is deterministic and pure,
	// so none of these are retryable.
	ErrCodeUnsupportedInput  Code = "UNSUPPORTED_INPUT"
	ErrCodeNoSource          Code = "UNSUPPORTED_NO_SOURCE"
	ErrCodeNoSink            Code = "UNSUPPORTED_NO_SINK"
	ErrCodeMultipleBackedges Code = "UNSUPPORTED_MULTIPLE_BACKEDGES"
	ErrCodeNoExitCandidate   Code = "UNSUPPORTED_NO_EXIT_CANDIDATE"
	ErrCodeAmbiguousStart    Code = "UNSUPPORTED_AMBIGUOUS_START"

	// Internal invariant violations.
	ErrCodeInternal    Code = "INTERNAL_INVARIANT"
	ErrCodeNoCanonical Code = "INTERNAL_NO_CANONICAL_BACKEDGE"

	// Lookup and format errors.
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsUnsupportedInput reports whether err carries any UNSUPPORTED_* code.
// Callers use this to decide whether a fallback layout engine applies.
func IsUnsupportedInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnsupportedInput, ErrCodeNoSource, ErrCodeNoSink,
		ErrCodeMultipleBackedges, ErrCodeNoExitCandidate, ErrCodeAmbiguousStart:
		return true
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
