// Package errors provides structured error types for plotspec.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the Go API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MISSING_*: Required input is absent
//   - UNSUPPORTED_*: The drawing surface cannot honor a request
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyInput, "grid has no cells")
//	if errors.Is(err, errors.ErrCodeEmptyInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "cell[%d][%d]", row, col)
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
	ErrCodeEmptyInput        Code = "EMPTY_INPUT"
	ErrCodeDimensionality    Code = "INVALID_DIMENSIONS"
	ErrCodeMissingField      Code = "MISSING_FIELD"
	ErrCodeInvalidLimits     Code = "INVALID_LIMITS"
	ErrCodeInvalidLocation   Code = "INVALID_LOCATION"
	ErrCodeInvalidStyle      Code = "INVALID_STYLE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidLayoutMode Code = "INVALID_LAYOUT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Surface capability errors
	ErrCodeUnsupportedKind Code = "UNSUPPORTED_SERIES_KIND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface. The code is printed once for a
// chain of causes sharing it, so located errors read "CODE: cell[0][1]: msg".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.detail())
}

// detail is the message chain below the code prefix.
func (e *Error) detail() string {
	if e.Cause == nil {
		return e.Message
	}
	if c, ok := e.Cause.(*Error); ok && c.Code == e.Code {
		return e.Message + ": " + c.detail()
	}
	return e.Message + ": " + e.Cause.Error()
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

// Within prefixes err with a location such as "cell[0][1]" while keeping the
// code of the innermost *Error visible to Is and GetCode. Errors without a
// code are wrapped as ErrCodeInternal.
func Within(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Wrap(code, err, format, args...)
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
// For *Error types, returns the message chain without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
