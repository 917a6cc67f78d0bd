// Package geometry provides rectangle math and bounds validation for slide
// canvases.
//
// All values are expressed in points (1pt = 1/72 inch), the engine's native
// unit. The central operation is [Clamp], which forces a requested rectangle
// into the usable area of a canvas and reports every adjustment it made.
// Clamping never fails: out-of-range input is corrected, not rejected, and
// callers inspect [ClampResult.Warnings] to learn what changed.
package geometry

import "math"

// Layout constants, in points.
const (
	// Margin is the minimum empty border between any element and the
	// canvas edge.
	Margin = 20.0

	// MinSize is the smallest allowed width or height for an element.
	MinSize = 10.0

	// GridUnit is the snapping grid for visual alignment.
	GridUnit = 8.0
)

// DefaultCanvas is the standard 16:9 slide size used when the real canvas
// size cannot be resolved.
var DefaultCanvas = Size{Width: 720, Height: 405}

// Size is a canvas size in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle in points. X and Y locate the top-left
// corner; the canvas origin is the top-left of the slide.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// AspectRatio returns width/height, or 0 for a degenerate rectangle.
func (r Rect) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return r.Width / r.Height
}

// Overlaps reports whether r and other intersect with positive area.
// Rectangles that merely touch along an edge or corner do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// SnapToGrid rounds v to the nearest multiple of [GridUnit].
func SnapToGrid(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}

// UsableWidth returns the horizontal space available for elements on a
// canvas of the given size, never less than [MinSize].
func UsableWidth(canvas Size) float64 {
	return math.Max(canvas.Width-2*Margin, MinSize)
}

// UsableHeight returns the vertical space available for elements on a
// canvas of the given size, never less than [MinSize].
func UsableHeight(canvas Size) float64 {
	return math.Max(canvas.Height-2*Margin, MinSize)
}
