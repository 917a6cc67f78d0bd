package geometry

import (
	"fmt"
	"math"
)

// ClampResult describes the outcome of a bounds validation. Bounds holds
// the corrected rectangle, Original the rectangle as requested. Warnings
// contains one human-readable entry per adjustment, in the order the
// adjustments were applied, so a caller (or an agent driving the API) can
// report exactly what was changed and why.
type ClampResult struct {
	Bounds     Rect     `json:"bounds"`
	WasClamped bool     `json:"was_clamped"`
	Warnings   []string `json:"warnings,omitempty"`
	Original   Rect     `json:"original"`
}

// Clamp forces r into the usable area of the canvas.
//
// Adjustments are applied in a fixed order so that warnings are
// reproducible: size floors first, then size ceilings, then position. The
// position pass uses the already-corrected width and height. Clamp is total
// over finite inputs and idempotent: clamping an already-valid rectangle
// returns it unchanged with no warnings.
func Clamp(r Rect, canvas Size) ClampResult {
	res := ClampResult{Bounds: r, Original: r}

	if res.Bounds.Width < MinSize {
		res.warn("width %.1fpt below minimum, raised to %.1fpt", res.Bounds.Width, MinSize)
		res.Bounds.Width = MinSize
	}
	if res.Bounds.Height < MinSize {
		res.warn("height %.1fpt below minimum, raised to %.1fpt", res.Bounds.Height, MinSize)
		res.Bounds.Height = MinSize
	}

	maxW, maxH := maxElementSize(canvas)
	if res.Bounds.Width > maxW {
		res.warn("width %.1fpt exceeds canvas, reduced to %.1fpt", res.Bounds.Width, maxW)
		res.Bounds.Width = maxW
	}
	if res.Bounds.Height > maxH {
		res.warn("height %.1fpt exceeds canvas, reduced to %.1fpt", res.Bounds.Height, maxH)
		res.Bounds.Height = maxH
	}

	if x := clampAxis(res.Bounds.X, res.Bounds.Width, canvas.Width); x != res.Bounds.X {
		res.warn("x %.1fpt out of bounds, moved to %.1fpt", res.Bounds.X, x)
		res.Bounds.X = x
	}
	if y := clampAxis(res.Bounds.Y, res.Bounds.Height, canvas.Height); y != res.Bounds.Y {
		res.warn("y %.1fpt out of bounds, moved to %.1fpt", res.Bounds.Y, y)
		res.Bounds.Y = y
	}

	return res
}

// ClampPreserveAspect fits r into the canvas while holding width/height
// constant. It scales both dimensions together by the smaller of the two
// required scale factors, then applies the same minimum-size and position
// rules as [Clamp], scaling back up proportionally when the scaled result
// falls below the minimum floor. Use this for images, where independent
// clamping would distort content.
func ClampPreserveAspect(r Rect, canvas Size) ClampResult {
	res := ClampResult{Bounds: r, Original: r}

	if res.Bounds.Width <= 0 || res.Bounds.Height <= 0 {
		// No aspect to preserve; fall back to independent clamping.
		inner := Clamp(r, canvas)
		inner.Original = r
		return inner
	}

	maxW, maxH := maxElementSize(canvas)
	scale := math.Min(maxW/res.Bounds.Width, maxH/res.Bounds.Height)
	if scale < 1 {
		res.warn("size %.1f×%.1fpt exceeds canvas, scaled by %.3f", res.Bounds.Width, res.Bounds.Height, scale)
		res.Bounds.Width *= scale
		res.Bounds.Height *= scale
	}

	// Scaling down can push the short dimension under the floor. Scale
	// both dimensions back up so the short one lands exactly on MinSize,
	// keeping the ratio intact.
	if short := math.Min(res.Bounds.Width, res.Bounds.Height); short < MinSize {
		up := MinSize / short
		res.warn("scaled size below minimum, enlarged by %.3f", up)
		res.Bounds.Width *= up
		res.Bounds.Height *= up
	}

	if x := clampAxis(res.Bounds.X, res.Bounds.Width, canvas.Width); x != res.Bounds.X {
		res.warn("x %.1fpt out of bounds, moved to %.1fpt", res.Bounds.X, x)
		res.Bounds.X = x
	}
	if y := clampAxis(res.Bounds.Y, res.Bounds.Height, canvas.Height); y != res.Bounds.Y {
		res.warn("y %.1fpt out of bounds, moved to %.1fpt", res.Bounds.Y, y)
		res.Bounds.Y = y
	}

	return res
}

// maxElementSize returns the largest width and height an element may take
// on the given canvas. On a degenerate canvas (margins do not fit) the
// ceiling is pinned at MinSize so it can never go non-positive.
func maxElementSize(canvas Size) (w, h float64) {
	return math.Max(canvas.Width-2*Margin, MinSize), math.Max(canvas.Height-2*Margin, MinSize)
}

// clampAxis clamps a position into [Margin, canvasDim-size-Margin]. When the
// element fills the whole usable span the upper bound drops below Margin; the
// position is then pinned at the margin.
func clampAxis(pos, size, canvasDim float64) float64 {
	hi := canvasDim - size - Margin
	if hi < Margin {
		hi = Margin
	}
	return math.Min(math.Max(pos, Margin), hi)
}

func (r *ClampResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.WasClamped = true
}
