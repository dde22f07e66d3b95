package errors

import (
	"strings"
	"unicode"
)

// ValidateGroupName validates a population or synapse group name.
// Group names become keys in the serialized description and file-system
// cache keys, so anything that could smuggle path components is rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGroup, "group name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidGroup, "group name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGroup, "group name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidGroup, "group name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputFilename validates a description output filename.
// It ensures the filename is a simple basename without path components;
// directories are supplied separately to the export functions.
func ValidateOutputFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "output filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "output filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "output filename cannot be a hidden file")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output filename contains invalid control characters")
		}
	}

	return nil
}
