package planner

import (
	"math"
	"strings"

	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/textmetrics"
)

// Auto-sizing bounds for derived widths, in points.
const (
	minAutoWidth = 200.0
	maxAutoWidth = 680.0
)

// AutoSize derives a box size for text at fontSize. Explicit requested
// dimensions (positive values) are used verbatim. A derived width comes
// from the character-count estimate bounded to [200, 680]pt and snapped to
// the grid; a derived height is 2×fontSize for short single-line text, or
// the wrapped text estimate for everything else, also grid-snapped.
func AutoSize(text string, fontSize, requestedWidth, requestedHeight float64) (w, h float64) {
	w = requestedWidth
	if w <= 0 {
		est := textmetrics.EstimateWidth(text, fontSize)
		w = geometry.SnapToGrid(math.Min(math.Max(est, minAutoWidth), maxAutoWidth))
	}

	h = requestedHeight
	if h <= 0 {
		if isShortSingleLine(text, fontSize, w) {
			h = geometry.SnapToGrid(2 * fontSize)
		} else {
			box := textmetrics.RequiredBoxSize(text, fontSize, textmetrics.DefaultLineHeight, w)
			h = geometry.SnapToGrid(box.Height)
		}
		if h < geometry.MinSize {
			h = geometry.MinSize
		}
	}

	return w, h
}

// isShortSingleLine reports whether text has no explicit breaks and fits
// the box width without wrapping.
func isShortSingleLine(text string, fontSize, width float64) bool {
	return !strings.Contains(text, "\n") &&
		textmetrics.EstimateWidth(text, fontSize) <= width
}
