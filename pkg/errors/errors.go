// Package errors provides structured error types for the mzqc toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names one failure surface of the document pipeline:
//   - IO_ERROR: a path could not be opened for reading or writing
//   - PARSE_ERROR: bytes are not well-formed JSON
//   - SCHEMA_VIOLATION: the structural validator rejected a document,
//     carrying the specific rule that failed
//   - CACHE_LOAD_ERROR: an ontology source could not be opened
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "parse %s: not valid JSON", path)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Document pipeline errors
	ErrCodeIO        Code = "IO_ERROR"
	ErrCodeParse     Code = "PARSE_ERROR"
	ErrCodeSchema    Code = "SCHEMA_VIOLATION"
	ErrCodeCacheLoad Code = "CACHE_LOAD_ERROR"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
