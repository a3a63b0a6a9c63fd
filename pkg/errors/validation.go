package errors

import (
	"math"
	"unicode"
)

// maxTreeNameLength bounds top-level tree names accepted from files and URLs.
const maxTreeNameLength = 256

// ValidateTreeName validates the name of a top-level tree in a tree file.
// Names are used as lookup keys on the command line and in HTTP routes, so
// they must be non-empty, reasonably short, and free of control characters.
func ValidateTreeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "tree name cannot be empty")
	}

	if len(name) > maxTreeNameLength {
		return New(ErrCodeInvalidInput, "tree name too long (max %d characters)", maxTreeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tree name contains invalid control characters")
		}
	}

	return nil
}

// ValidateDimension checks that v is usable as a bounding box side:
// finite and strictly positive.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", name, v)
	}
	return nil
}
