package errors

import (
	"strings"
	"unicode"
)

// ValidateEntryName validates an on-disk entry name read from an index
// record's order list. Order entries are joined onto filesystem paths, so a
// hostile or corrupted index must not be able to escape the collection
// directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators (/ or \)
//   - No "." or ".." components
//   - Maximum length of 256 characters
func ValidateEntryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayout, "entry name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidLayout, "entry name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayout, "entry name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidLayout, "entry name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidLayout, "entry name cannot be a relative path component: %q", name)
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
