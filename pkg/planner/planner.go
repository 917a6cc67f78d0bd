package planner

import "github.com/deckplan/deckplan/pkg/geometry"

// TitleOffset is the canonical vertical position of the first auto-stacked
// element, in points. Subsequent offsets follow from [StackGap].
const TitleOffset = 32.0

// goldenRatio drives the vertical rhythm between stacked elements: bigger
// type earns proportionally more breathing room.
const goldenRatio = 1.618

// StackGap returns the grid-snapped vertical gap that follows an element
// rendered at fontSize.
func StackGap(fontSize float64) float64 {
	return geometry.SnapToGrid(fontSize * goldenRatio)
}

// Item is one piece of text to place. Pointer fields distinguish "absent"
// from zero: a nil Y means the caller wants an automatic position. Width,
// Height and FontSize use zero for "derive it"; Bold is a pointer so an
// explicit false survives.
type Item struct {
	Text      string   `json:"text"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	FontSize  float64  `json:"font_size,omitempty"`
	Bold      *bool    `json:"bold,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// Placement is the planner's output for one item: the inferred preset, the
// effective style after caller overrides, the derived box size, and the
// recommended vertical position. The x coordinate and final clamping are
// the engine's concern.
type Placement struct {
	Preset       Preset  `json:"preset"`
	Style        Style   `json:"style"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	RecommendedY float64 `json:"recommended_y"`
	AutoStacked  bool    `json:"auto_stacked"`
}

// Plan assigns a preset, style, size, and vertical position to every item,
// in order.
//
// When [ShouldAutoStack] holds for the batch, all items are placed on the
// canonical golden-ratio ladder starting at [TitleOffset], ignoring any
// (repeated) y values the caller supplied. Otherwise explicit y values are
// honored verbatim and only items without one ride the running offset.
func Plan(items []Item) []Placement {
	placements := make([]Placement, 0, len(items))
	autoStack := ShouldAutoStack(items)

	cursor := TitleOffset
	prev := Preset("")
	for i, item := range items {
		preset := DetectPreset(item.Text, i, item.Y, prev)
		style := applyOverrides(StyleFor(preset), item)
		w, h := AutoSize(item.Text, style.FontSize, item.Width, item.Height)

		y := cursor
		stacked := true
		if !autoStack && item.Y != nil {
			y = *item.Y
			stacked = false
		}

		placements = append(placements, Placement{
			Preset:       preset,
			Style:        style,
			Width:        w,
			Height:       h,
			RecommendedY: y,
			AutoStacked:  stacked,
		})

		cursor = y + StackGap(style.FontSize)
		prev = preset
	}

	return placements
}

// ShouldAutoStack reports whether a batch should be placed on the automatic
// vertical ladder instead of honoring per-item y values. It holds when no
// item carries an explicit y, or when more than one item carries the same
// explicit y for every item. A single item with an explicit y is honored
// literally.
func ShouldAutoStack(items []Item) bool {
	if len(items) == 0 {
		return false
	}

	var first *float64
	supplied := 0
	for i := range items {
		if items[i].Y == nil {
			continue
		}
		supplied++
		if first == nil {
			first = items[i].Y
		} else if *items[i].Y != *first {
			return false
		}
	}

	if supplied == 0 {
		return true
	}
	// All supplied values identical: only suspicious when the whole batch
	// collides, and never for a single item.
	return supplied == len(items) && len(items) > 1
}

// applyOverrides layers the caller's explicit style fields on top of the
// preset defaults.
func applyOverrides(s Style, item Item) Style {
	if item.FontSize > 0 {
		s.FontSize = item.FontSize
	}
	if item.Bold != nil {
		s.Bold = *item.Bold
	}
	if item.Alignment != "" {
		s.Alignment = item.Alignment
	}
	if item.Color != "" {
		s.Color = item.Color
	}
	return s
}
