package errors

import (
	"strings"
	"unicode"
)

// ValidateHrefRoot checks a configured href root.
// The root may be a path ("/api/") or an absolute URL ("https://host/api/").
func ValidateHrefRoot(root string) error {
	if root == "" {
		return New(ErrCodeInvalidConfig, "href root cannot be empty")
	}
	for _, r := range root {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "href root contains invalid characters: %q", root)
		}
	}
	return nil
}

// ValidateVersion checks that a version string is usable as a single path
// segment. The empty string (no version) is valid.
//
// Validation rules:
//   - No path separators
//   - No "." or ".." segments
//   - No control characters or whitespace
func ValidateVersion(version string) error {
	if version == "" {
		return nil
	}
	if version == "." || version == ".." {
		return New(ErrCodeInvalidConfig, "version cannot be %q", version)
	}
	if strings.ContainsAny(version, "/\\") {
		return New(ErrCodeInvalidConfig, "version cannot contain path separators: %q", version)
	}
	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "version contains invalid characters: %q", version)
		}
	}
	return nil
}
