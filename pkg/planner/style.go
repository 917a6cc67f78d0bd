package planner

// Alignment values for preset styles. AlignRight never comes from a
// preset but is accepted as a per-item override.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Style is the visual treatment derived from a preset. Color is a hex
// string and may be empty, meaning the theme default.
type Style struct {
	FontSize  float64 `json:"font_size"`
	Bold      bool    `json:"bold"`
	Alignment string  `json:"alignment"`
	Color     string  `json:"color,omitempty"`
}

// presetStyles is the fixed preset-to-style table. Font sizes also drive the
// golden-ratio stacking gaps, so changing them shifts the canonical
// vertical offsets.
var presetStyles = map[Preset]Style{
	PresetTitle:    {FontSize: 36, Bold: true, Alignment: AlignCenter},
	PresetSubtitle: {FontSize: 28, Bold: true, Alignment: AlignCenter, Color: "#666666"},
	PresetMetric:   {FontSize: 54, Bold: true, Alignment: AlignCenter},
	PresetBody:     {FontSize: 18, Bold: false, Alignment: AlignLeft},
	PresetBullet:   {FontSize: 18, Bold: false, Alignment: AlignLeft},
}

// StyleFor returns the style for a preset. Unknown presets get the body
// style.
func StyleFor(p Preset) Style {
	if s, ok := presetStyles[p]; ok {
		return s
	}
	return presetStyles[PresetBody]
}
