// Package arrange repositions batches of slide elements with simple
// placement strategies.
//
// Unlike the planner, which styles and sizes individual text items, this
// package treats elements as opaque rectangles that already carry
// approximate sizes and only decides where they go: a grid, a vertical
// stack, or a left-to-right flow with wrapping. A separate pass,
// [ResolveOverlaps], untangles collisions greedily after placement.
package arrange

import (
	"fmt"
	"math"

	"github.com/deckplan/deckplan/pkg/geometry"
)

// Gap is the spacing between arranged elements, in points.
const Gap = 16.0

// Strategy selects a placement algorithm.
type Strategy string

// Supported strategies.
const (
	StrategyGrid  Strategy = "grid"
	StrategyStack Strategy = "stack"
	StrategyFlow  Strategy = "flow"
)

// Valid reports whether s names a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyGrid, StrategyStack, StrategyFlow:
		return true
	}
	return false
}

// Element is a placeable rectangle with a caller-assigned identifier.
type Element struct {
	ID     string        `json:"id"`
	Bounds geometry.Rect `json:"bounds"`
}

// Apply places elements on the canvas using the named strategy and returns
// a new slice; the input is not modified. Unknown strategies fall back to
// [StrategyStack].
func Apply(strategy Strategy, elements []Element, canvas geometry.Size) []Element {
	switch strategy {
	case StrategyGrid:
		return Grid(elements, canvas)
	case StrategyFlow:
		return Flow(elements, canvas)
	default:
		return Stack(elements, canvas)
	}
}

// Grid lays elements out row-major on a near-square grid: cols = ⌈√n⌉,
// rows = ⌈n/cols⌉. The usable canvas area is divided into equal cells
// separated by [Gap], and each element is clamped to its cell's size.
func Grid(elements []Element, canvas geometry.Size) []Element {
	n := len(elements)
	if n == 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	cellW := (geometry.UsableWidth(canvas) - float64(cols-1)*Gap) / float64(cols)
	cellH := (geometry.UsableHeight(canvas) - float64(rows-1)*Gap) / float64(rows)
	cellW = math.Max(cellW, geometry.MinSize)
	cellH = math.Max(cellH, geometry.MinSize)

	out := make([]Element, n)
	for i, el := range elements {
		row, col := i/cols, i%cols
		el.Bounds.X = geometry.Margin + float64(col)*(cellW+Gap)
		el.Bounds.Y = geometry.Margin + float64(row)*(cellH+Gap)
		el.Bounds.Width = math.Min(el.Bounds.Width, cellW)
		el.Bounds.Height = math.Min(el.Bounds.Height, cellH)
		out[i] = el
	}
	return out
}

// Stack places elements top to bottom at the left margin, each [Gap] below
// the previous one.
func Stack(elements []Element, canvas geometry.Size) []Element {
	out := make([]Element, len(elements))
	y := geometry.Margin
	for i, el := range elements {
		el.Bounds.X = geometry.Margin
		el.Bounds.Y = y
		y += el.Bounds.Height + Gap
		out[i] = el
	}
	return out
}

// Flow places elements left to right, wrapping to a new row when the next
// element would cross the right margin. Each new row starts [Gap] below the
// tallest element of the previous row.
func Flow(elements []Element, canvas geometry.Size) []Element {
	out := make([]Element, len(elements))
	x, y := geometry.Margin, geometry.Margin
	rowHeight := 0.0
	limit := canvas.Width - geometry.Margin

	for i, el := range elements {
		if x > geometry.Margin && x+el.Bounds.Width > limit {
			x = geometry.Margin
			y += rowHeight + Gap
			rowHeight = 0
		}
		el.Bounds.X = x
		el.Bounds.Y = y
		x += el.Bounds.Width + Gap
		rowHeight = math.Max(rowHeight, el.Bounds.Height)
		out[i] = el
	}
	return out
}

// maxAttempts bounds the per-element overlap-resolution loop so the greedy
// search always terminates.
const maxAttempts = 100

// ResolveOverlaps nudges elements apart so that no two overlap and all stay
// within canvas bounds. Elements are processed in input order; each one is
// moved down by [Gap] until it clears every already-placed element, wrapping
// to the top of a new column to the right when it runs off the bottom. The
// result is greedy and order-dependent, not a global optimum.
//
// Elements that still collide after the attempt budget are left at their
// last tried position and reported in the returned warnings.
func ResolveOverlaps(elements []Element, canvas geometry.Size) ([]Element, []string) {
	out := make([]Element, len(elements))
	var warnings []string

	for i, el := range elements {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if fits(el.Bounds, out[:i], canvas) {
				placed = true
				break
			}
			if el.Bounds.Bottom()+Gap > canvas.Height-geometry.Margin {
				// Out of vertical room: start a fresh column to the right.
				el.Bounds.Y = geometry.Margin
				el.Bounds.X += Gap + el.Bounds.Width
			} else {
				el.Bounds.Y += Gap
			}
		}
		if !placed {
			warnings = append(warnings, fmt.Sprintf("could not place element %q without overlap after %d attempts", el.ID, maxAttempts))
		}
		out[i] = el
	}

	return out, warnings
}

// fits reports whether r avoids every placed element and stays within the
// canvas margins.
func fits(r geometry.Rect, placed []Element, canvas geometry.Size) bool {
	if r.X < geometry.Margin || r.Y < geometry.Margin ||
		r.Right() > canvas.Width-geometry.Margin ||
		r.Bottom() > canvas.Height-geometry.Margin {
		return false
	}
	for _, p := range placed {
		if r.Overlaps(p.Bounds) {
			return false
		}
	}
	return true
}
