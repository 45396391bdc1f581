package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidOrientation, "invalid orientation: %s", "XY")

	if err.Code != ErrCodeInvalidOrientation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidOrientation)
	}

	if err.Message != "invalid orientation: XY" {
		t.Errorf("Message = %v, want %v", err.Message, "invalid orientation: XY")
	}

	expected := "INVALID_ORIENTATION: invalid orientation: XY"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeIO, cause, "read directory")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestWrapFS(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		expected Code
	}{
		{"not exist", fs.ErrNotExist, ErrCodeNotFound},
		{"wrapped not exist", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, ErrCodeNotFound},
		{"permission", fs.ErrPermission, ErrCodePermissionDenied},
		{"other", errors.New("disk on fire"), ErrCodeIO},
		{"already coded", New(ErrCodeRender, "boom"), ErrCodeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapFS(tt.cause, "walk %s", "R")
			if got := GetCode(err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}

	if WrapFS(nil, "noop") != nil {
		t.Error("WrapFS(nil) should return nil")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRender, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRender,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("build: %w", New(ErrCodeNotFound, "missing")),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		code       Code
		validation bool
		filesystem bool
	}{
		{ErrCodeInvalidInput, true, false},
		{ErrCodeInvalidDirectory, true, false},
		{ErrCodeInvalidOrientation, true, false},
		{ErrCodeInvalidFormat, true, false},
		{ErrCodeInvalidRenderer, true, false},
		{ErrCodeNotFound, false, true},
		{ErrCodePermissionDenied, false, true},
		{ErrCodeIO, false, true},
		{ErrCodeRender, false, false},
		{ErrCodeInternal, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "x")
			if got := IsValidation(err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
			if got := IsFilesystem(err); got != tt.filesystem {
				t.Errorf("IsFilesystem() = %v, want %v", got, tt.filesystem)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFormat, "test"),
			expected: ErrCodeInvalidFormat,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "filesystem error keeps cause",
			err:      Wrap(ErrCodeNotFound, errors.New("no such file"), "walk R"),
			expected: "walk R: no such file",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
