// Package errors provides structured error types for the treemap tool.
//
// Every failure the layout core can report carries a machine-readable [Code]
// so that callers (the CLI, the HTTP server) can decide how to surface it
// without string matching:
//
//   - VALIDATION: a rectangle was built with bad geometry or a bad color code
//   - MALFORMED_TREE: a tree node is missing its value or carries a negative one
//   - DEGENERATE_INPUT: a proportion was requested against a zero total
//
// The remaining codes cover the surrounding tooling (input files, formats,
// lookups).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedTree, "leaf %q has no value", key)
//	if errors.Is(err, errors.ErrCodeMalformedTree) {
//	    // report the bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout core errors
	ErrCodeValidation      Code = "VALIDATION"
	ErrCodeMalformedTree   Code = "MALFORMED_TREE"
	ErrCodeDegenerateInput Code = "DEGENERATE_INPUT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsLayoutError reports whether err originates from the layout core, i.e.
// whether it carries one of the validation, malformed-tree or
// degenerate-input codes.
func IsLayoutError(err error) bool {
	switch GetCode(err) {
	case ErrCodeValidation, ErrCodeMalformedTree, ErrCodeDegenerateInput:
		return true
	}
	return false
}
