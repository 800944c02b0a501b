package errors

import (
	"strings"
	"unicode"
)

// ValidateBoardCode validates a share-server board code for safety.
// Codes are embedded in URLs and store keys, so the rules are conservative:
//   - No empty codes
//   - Maximum length of 64 characters
//   - Lowercase letters, digits and hyphens only
func ValidateBoardCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "board code cannot be empty")
	}

	if len(code) > 64 {
		return New(ErrCodeInvalidInput, "board code too long (max 64 characters)")
	}

	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return New(ErrCodeInvalidInput, "board code contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateBoardPath validates a board file path given on the command line.
// "-" (stdin/stdout) is always accepted.
func ValidateBoardPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "board path cannot be empty")
	}
	if path == "-" {
		return nil
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "board path contains invalid characters")
		}
	}
	return nil
}

// ValidateBaseURL validates a share-server base URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
