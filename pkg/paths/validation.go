package paths

import (
	"path/filepath"
	"strings"

	"github.com/nimata/nimata/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// SanitizePath attempts to clean and make a path safe for use.
// It:
// - Expands a leading ~ to the home directory
// - Removes redundant separators
// - Resolves . and .. elements
func SanitizePath(path string) string {
	path = expandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// ValidatePathSecurity performs security-focused validation on a path.
// It checks for common path traversal attacks and suspicious patterns.
func ValidatePathSecurity(path string) error {
	// Check for basic validity first
	if err := ValidatePath(path); err != nil {
		return err
	}

	return checkTraversalAndUnicode(path, "path")
}

// ValidateValueSecurity screens an arbitrary string value for the same
// traversal markers and deceptive characters as ValidatePathSecurity.
// Unlike path validation it accepts empty and long strings, which are
// legal values in configuration files.
func ValidateValueSecurity(value string) error {
	if strings.Contains(value, "\x00") {
		return errors.New(errors.ErrInvalidInput, "value contains null bytes")
	}

	return checkTraversalAndUnicode(value, "value")
}

func checkTraversalAndUnicode(s, subject string) error {
	// Check for obvious traversal attempts
	if strings.Contains(s, "../") || strings.Contains(s, "..\\") {
		return errors.Newf(errors.ErrInvalidInput,
			"%s contains parent directory references", subject)
	}

	// Check for hidden Unicode characters that might be used to deceive
	for _, r := range s {
		if r == '‮' || // Right-to-left override
			r == '​' || // Zero-width space
			r == '­' { // Soft hyphen
			return errors.Newf(errors.ErrInvalidInput,
				"%s contains suspicious Unicode characters", subject)
		}
	}

	return nil
}
