// Package errors provides structured error types for dirgraph.
//
// Every failure that leaves the pipeline carries a machine-readable [Code],
// grouped into three classes:
//   - INVALID_*: argument validation failures, raised before any traversal
//   - NOT_FOUND, PERMISSION_DENIED, IO_ERROR: filesystem failures
//   - RENDER_ERROR: the layout engine could not produce the artifact
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOrientation, "invalid orientation: %s", o)
//	if errors.IsValidation(err) {
//	    // Reject the request before touching the filesystem
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidDirectory   Code = "INVALID_DIRECTORY"
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidRenderer    Code = "INVALID_RENDERER"

	// Filesystem errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodePermissionDenied Code = "PERMISSION_DENIED"
	ErrCodeIO               Code = "IO_ERROR"

	// Layout engine errors
	ErrCodeRender Code = "RENDER_ERROR"

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

// WrapFS wraps a filesystem error, picking NOT_FOUND or PERMISSION_DENIED
// when the cause allows it and IO_ERROR otherwise. An error that already
// carries a code is returned unchanged.
func WrapFS(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	if GetCode(cause) != "" {
		return cause
	}
	code := ErrCodeIO
	switch {
	case errors.Is(cause, fs.ErrNotExist):
		code = ErrCodeNotFound
	case errors.Is(cause, fs.ErrPermission):
		code = ErrCodePermissionDenied
	}
	return Wrap(code, cause, format, args...)
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

// IsValidation reports whether err is an argument validation failure.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDirectory, ErrCodeInvalidOrientation,
		ErrCodeInvalidFormat, ErrCodeInvalidRenderer:
		return true
	}
	return false
}

// IsFilesystem reports whether err is a filesystem failure.
func IsFilesystem(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodePermissionDenied, ErrCodeIO:
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
		if e.Cause != nil && !IsValidation(e) {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
