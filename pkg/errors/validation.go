package errors

import (
	"strings"
	"unicode"
)

// ValidateDirName validates the name of the directory to visualize.
// The name must be a single path element so it can only refer to a direct
// child of the base directory.
//
// Validation rules:
//   - Name cannot be empty
//   - No control characters or null bytes
//   - No path separators
//   - Not "." or ".."
func ValidateDirName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDirectory, "directory name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDirectory, "directory name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidDirectory, "directory name %q must not contain path separators", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidDirectory, "directory name %q is not a child directory", name)
	}

	return nil
}

// ValidateOutputPath validates an explicit output file path.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "output path %q names a directory", path)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
