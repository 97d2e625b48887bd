package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a local file path (SVG assets, output files, config).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) unless the path is absolute
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.HasPrefix(path, "/") && strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "relative path cannot contain path traversal sequences (..)")
	}

	return nil
}

// nameRegex matches backend and shape kind identifiers.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// ValidateBackendName checks that name is a well-formed backend identifier.
// It does not check that such a backend is registered.
func ValidateBackendName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBackend, "backend name cannot be empty")
	}
	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidBackend, "invalid backend name: %q", name)
	}
	return nil
}

// ValidateCount checks an item count requested for a scene.
func ValidateCount(count, max int) error {
	if count < 0 {
		return New(ErrCodeInvalidInput, "item count cannot be negative, got %d", count)
	}
	if max > 0 && count > max {
		return New(ErrCodeInvalidInput, "item count %d exceeds limit %d", count, max)
	}
	return nil
}
