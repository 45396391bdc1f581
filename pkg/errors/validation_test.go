package errors

import (
	"testing"
)

func TestValidateDirName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "photos", false},
		{"with dot", "my.project", false},
		{"hidden", ".config", false},
		{"spaces", "My Documents", false},

		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"nested", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDirectory) {
				t.Errorf("ValidateDirName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDirectory)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out.svg", false},
		{"absolute", "/tmp/out.png", false},

		{"empty", "", true},
		{"directory", "out/", true},
		{"control char", "out\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://quickchart.io/graphviz", false},
		{"http", "http://localhost:8080/graphviz", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDirectory,
		ErrCodeInvalidOrientation,
		ErrCodeInvalidFormat,
		ErrCodeInvalidRenderer,
		ErrCodeNotFound,
		ErrCodePermissionDenied,
		ErrCodeIO,
		ErrCodeRender,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
