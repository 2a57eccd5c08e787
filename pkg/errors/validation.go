package errors

import (
	"strings"
	"unicode"
)

const maxPasteKeyLength = 64

// ValidatePasteKey validates a paste key before it is placed in a URL path or
// form field.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 64 characters
//   - No control characters
//   - No URL delimiters (/, ?, #) and no backslashes
func ValidatePasteKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "paste key cannot be empty")
	}

	if len(key) > maxPasteKeyLength {
		return New(ErrCodeInvalidInput, "paste key too long (max %d characters)", maxPasteKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "paste key contains invalid control characters")
		}
	}

	if i := strings.IndexAny(key, "/?#\\"); i >= 0 {
		return New(ErrCodeInvalidInput, "paste key contains invalid character: %q", key[i])
	}

	return nil
}

// ValidateURL validates a base URL string.
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
