// Package errors provides structured error types for fluvia.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three groups:
//   - INVALID_*, DIMENSION_MISMATCH: configuration and precondition failures,
//     reported by constructors before any object is produced
//   - OUT_OF_BOUNDS: a coordinate outside a field's declared extents
//   - INVARIANT_VIOLATION, INTERNAL_ERROR: a postcondition failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDimensionMismatch, "operand %d is %dx%d", i, w, h)
//	if errors.Is(err, errors.ErrCodeDimensionMismatch) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidOptions    Code = "INVALID_OPTIONS"
	ErrCodeInvalidTree       Code = "INVALID_TREE"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// Access errors
	ErrCodeOutOfBounds Code = "OUT_OF_BOUNDS"
	ErrCodeNotFound    Code = "NOT_FOUND"

	// Postcondition errors
	ErrCodeInvariant Code = "INVARIANT_VIOLATION"
	ErrCodeInternal  Code = "INTERNAL_ERROR"
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

// OutOfBounds builds the error raised when (x, y) falls outside a w×h field.
func OutOfBounds(x, y, w, h int) *Error {
	return New(ErrCodeOutOfBounds, "point (%d,%d) outside %dx%d field", x, y, w, h)
}

// FromPanic converts a recovered panic value into an error. Coded errors
// raised by bounds checks are returned unchanged; anything else is wrapped
// as ErrCodeInternal.
func FromPanic(v any) error {
	switch p := v.(type) {
	case nil:
		return nil
	case *Error:
		return p
	case error:
		return Wrap(ErrCodeInternal, p, "panic")
	default:
		return New(ErrCodeInternal, "panic: %v", p)
	}
}
