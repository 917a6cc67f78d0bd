package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentID validates a presentation document identifier before it
// is used as a cache key or forwarded to the canvas size provider.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators (identifiers end up in cache keys)
//   - Maximum length of 256 characters
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "document id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidDocument, "document id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document id contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidDocument, "document id cannot contain path separators")
	}

	return nil
}

// ValidateFontSize validates a caller-supplied font size in points. Zero is
// allowed and means "derive a size"; anything else must be positive and
// within a sane typographic range.
func ValidateFontSize(size float64) error {
	if size == 0 {
		return nil
	}
	if size < 1 || size > 400 {
		return New(ErrCodeInvalidFontSize, "font size %.1fpt outside [1, 400]", size)
	}
	return nil
}

// ValidateFontRange validates the bounds of a font-size search.
func ValidateFontRange(minSize, maxSize float64) error {
	if minSize <= 0 || maxSize <= 0 {
		return New(ErrCodeInvalidFontSize, "font size bounds must be positive")
	}
	if minSize > maxSize {
		return New(ErrCodeInvalidFontSize, "minimum font size %.1fpt exceeds maximum %.1fpt", minSize, maxSize)
	}
	return nil
}

// ValidateAlignment validates a text alignment name. Empty means "use the
// preset default".
func ValidateAlignment(alignment string) error {
	switch alignment {
	case "", "left", "center", "right":
		return nil
	}
	return New(ErrCodeInvalidInput, "unknown alignment %q", alignment)
}

// ValidateHexColor validates a caller-supplied color. Empty means "theme
// default"; otherwise the value must be a #RRGGBB hex string.
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return New(ErrCodeInvalidInput, "color %q is not a #RRGGBB hex string", color)
	}
	for _, r := range color[1:] {
		if !isHexDigit(r) {
			return New(ErrCodeInvalidInput, "color %q is not a #RRGGBB hex string", color)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
