// Package textmetrics estimates the rendered footprint of text without a
// font engine.
//
// The real renderer is a remote service whose glyph metrics cannot be
// queried, so this package substitutes a character-count model with
// configurable safety margins: estimates are deliberately generous so that
// actual rendering never exceeds them. The model diverges from true
// rendered size for unusual fonts, non-Latin scripts, and extreme letter
// spacing; that is a known, accepted approximation.
//
// All dimensions are in points. Empty or whitespace-only text yields
// zero-size estimates rather than errors.
package textmetrics

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// avgCharWidthFactor converts font size to an average glyph width for
	// the widest-line estimate. Generous on purpose: real glyph widths
	// vary by font and case.
	avgCharWidthFactor = 0.7

	// wrapCharWidthFactor is the tighter factor used when computing how
	// many characters fit on a wrapped line.
	wrapCharWidthFactor = 0.6

	// wordWrapSlack discounts the characters-per-line budget because words
	// do not break at arbitrary characters.
	wordWrapSlack = 0.85

	// widthSafetyMargin inflates width estimates.
	widthSafetyMargin = 1.2

	// heightSafetyMargin inflates height estimates when no wrapping was
	// simulated. Wrapped estimates are already conservative and use
	// wrappedHeightMargin instead.
	heightSafetyMargin  = 1.2
	wrappedHeightMargin = 1.1

	// Fixed internal padding inside a text box, per side.
	horizontalPadding = 10.0
	verticalPadding   = 5.0
)

// DefaultLineHeight is the line-height multiplier used when the caller has
// no explicit preference.
const DefaultLineHeight = 1.2

// BoxSize is an estimated width and height in points.
type BoxSize struct {
	Width  float64
	Height float64
}

// EstimateWidth returns a conservative width estimate for text rendered at
// fontSize. Only the longest explicit line matters; wrapping is the
// caller's concern (see [EstimateHeight]).
func EstimateWidth(text string, fontSize float64) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	longest := 0
	for _, line := range strings.Split(text, "\n") {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}

	w := float64(longest)*fontSize*avgCharWidthFactor + 2*horizontalPadding
	return w * widthSafetyMargin
}

// EstimateHeight returns a conservative height estimate for text rendered
// at fontSize with the given line-height multiplier. When maxWidth is
// positive, word-wrap is simulated: each explicit line is split into as
// many wrapped lines as its character count requires at the effective
// characters-per-line budget. Empty lines count as one line.
func EstimateHeight(text string, fontSize, lineHeight, maxWidth float64) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	lines := strings.Split(text, "\n")
	total := 0
	wrapped := false

	if maxWidth > 0 {
		budget := charsPerLine(fontSize, maxWidth)
		for _, line := range lines {
			n := utf8.RuneCountInString(line)
			if n == 0 {
				total++
				continue
			}
			rows := int(math.Ceil(float64(n) / float64(budget)))
			if rows > 1 {
				wrapped = true
			}
			total += rows
		}
	} else {
		total = len(lines)
	}

	h := float64(total)*fontSize*lineHeight + 2*verticalPadding
	if wrapped {
		return h * wrappedHeightMargin
	}
	return h * heightSafetyMargin
}

// RequiredBoxSize estimates the box needed to hold text at fontSize. When
// maxWidth is positive and the unconstrained width estimate exceeds it, the
// width is pinned to maxWidth and the height recomputed with wrapping.
//
// The returned height can exceed any box the caller had in mind; that is
// the point. Callers compare it against their available space and either
// grow the box or shrink the font (see [SolveFontSize]) instead of
// truncating content.
func RequiredBoxSize(text string, fontSize, lineHeight, maxWidth float64) BoxSize {
	w := EstimateWidth(text, fontSize)
	if maxWidth > 0 && w > maxWidth {
		return BoxSize{
			Width:  maxWidth,
			Height: EstimateHeight(text, fontSize, lineHeight, maxWidth),
		}
	}
	return BoxSize{
		Width:  w,
		Height: EstimateHeight(text, fontSize, lineHeight, 0),
	}
}

// charsPerLine converts an available width into a whole-character budget,
// discounted for word boundaries. Always at least 1.
func charsPerLine(fontSize, maxWidth float64) int {
	budget := int(maxWidth / (fontSize * wrapCharWidthFactor) * wordWrapSlack)
	if budget < 1 {
		return 1
	}
	return budget
}
