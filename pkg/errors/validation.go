package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// idRegex matches element and link identifiers in scene files.
var idRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

// ValidateID validates an element or link identifier.
//
// The rules are conservative so identifiers are safe as cache keys,
// document IDs and DOT node names:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No control characters
//   - Must start with a letter or underscore
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "identifier too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "identifier contains invalid control characters")
		}
	}

	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidScene, "invalid identifier: %q", id)
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidateNonNegative rejects non-finite and negative values.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative", name)
	}
	return nil
}

// ValidateURL validates a connection URL for one of the given schemes.
// With no schemes, http and https are accepted.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}

	// Simple scheme validation without full URL parsing
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
