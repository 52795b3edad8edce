package errors

import (
	"strings"
	"unicode"
)

// DefaultMaxTiles bounds the number of tiles accepted for a search.
// The backtracking search is exponential; beyond a few dozen tiles a
// pathological input can run for hours.
const DefaultMaxTiles = 64

// ValidateTileCount checks that a tile set can be searched.
// An empty set is reported with ErrCodeEmptyInput so callers can tell it
// apart from "no ring exists". A max of zero or less disables the upper bound.
func ValidateTileCount(n, max int) error {
	if n == 0 {
		return New(ErrCodeEmptyInput, "no valid dominoes found")
	}
	if max > 0 && n > max {
		return New(ErrCodeTooManyTiles, "too many dominoes: %d (max %d)", n, max)
	}
	return nil
}

// ValidateSourceName validates a caller-supplied input name used in logs,
// cache keys and output documents.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 256 characters
//   - No control characters
func ValidateSourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "source name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "source name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "source name contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks an output format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
