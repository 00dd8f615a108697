package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier taken from a graph document.
// Ids are opaque keys: any non-empty string is accepted.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !IsRemote(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsRemote reports whether a graph source refers to an http(s) location
// rather than a local file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ValidateSource validates a graph source, which is either a local file path
// or an http(s) URL.
//
// Validation rules:
//   - Source cannot be empty
//   - No null bytes or control characters
//   - Remote sources must pass [ValidateURL]
//   - Other URL schemes (ftp://, file://, ...) are rejected
func ValidateSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return New(ErrCodeInvalidSource, "graph source cannot be empty")
	}

	for _, r := range source {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "graph source contains invalid characters")
		}
	}

	if IsRemote(source) {
		return ValidateURL(source)
	}

	if strings.Contains(source, "://") {
		return New(ErrCodeInvalidSource, "unsupported graph source scheme: %q", source)
	}

	return nil
}
