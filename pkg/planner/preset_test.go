package planner

import "testing"

func yp(v float64) *float64 { return &v }

func TestDetectPreset(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		index int
		y     *float64
		prev  Preset
		want  Preset
	}{
		{name: "short number is metric", text: "42", index: 3, want: PresetMetric},
		{name: "percentage is metric", text: "87%", index: 2, want: PresetMetric},
		{name: "short revenue figure", text: "$1.2M ARR", index: 5, want: PresetMetric},
		{name: "long text with digits is not metric", text: "We shipped 14 releases this quarter", index: 4, y: yp(200), want: PresetBody},
		{name: "dot bullet", text: "• first point", index: 3, want: PresetBullet},
		{name: "dash bullet", text: "- second point", index: 3, want: PresetBullet},
		{name: "star bullet", text: "* third point", index: 3, want: PresetBullet},
		{name: "plus bullet", text: "+ fourth point", index: 3, want: PresetBullet},
		{name: "leading whitespace before glyph", text: "   - indented", index: 3, want: PresetBullet},
		{name: "metric beats bullet", text: "- 42%", index: 3, want: PresetMetric},
		{name: "first item is title", text: "Our Grand Vision", index: 0, want: PresetTitle},
		{name: "top position is title", text: "Placed near the top of the slide here", index: 4, y: yp(40), want: PresetTitle},
		{name: "short text in upper region is title", text: "Short headline", index: 4, y: yp(90), want: PresetTitle},
		{name: "second item is subtitle", text: "An elaboration", index: 1, want: PresetSubtitle},
		{name: "follows title", text: "After the heading", index: 6, prev: PresetTitle, want: PresetSubtitle},
		{name: "subtitle band", text: "Positioned in the subtitle band of a slide somewhere", index: 6, y: yp(120), want: PresetSubtitle},
		{name: "lower region is body", text: "Details live here", index: 6, y: yp(300), want: PresetBody},
		{
			name:  "long text is body",
			text:  "This paragraph carries well over one hundred characters of descriptive prose, which marks it as body copy regardless of position.",
			index: 6,
			want:  PresetBody,
		},
		{name: "fallthrough default is body", text: "Unremarkable text", index: 6, want: PresetBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPreset(tt.text, tt.index, tt.y, tt.prev); got != tt.want {
				t.Errorf("DetectPreset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectPresetRuleOrder(t *testing.T) {
	// "42" at index 0 satisfies both the metric and the title rule; the
	// metric rule is listed first and must win.
	if got := DetectPreset("42", 0, nil, ""); got != PresetMetric {
		t.Errorf("metric rule should precede title rule, got %v", got)
	}

	// A bullet glyph at index 0 likewise beats the title rule.
	if got := DetectPreset("- agenda", 0, nil, ""); got != PresetBullet {
		t.Errorf("bullet rule should precede title rule, got %v", got)
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		preset    Preset
		fontSize  float64
		bold      bool
		alignment string
	}{
		{PresetTitle, 36, true, AlignCenter},
		{PresetSubtitle, 28, true, AlignCenter},
		{PresetMetric, 54, true, AlignCenter},
		{PresetBody, 18, false, AlignLeft},
		{PresetBullet, 18, false, AlignLeft},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			s := StyleFor(tt.preset)
			if s.FontSize != tt.fontSize || s.Bold != tt.bold || s.Alignment != tt.alignment {
				t.Errorf("StyleFor(%s) = %+v", tt.preset, s)
			}
		})
	}

	t.Run("subtitle is muted", func(t *testing.T) {
		if StyleFor(PresetSubtitle).Color == "" {
			t.Error("subtitle style should carry a muted color")
		}
	})

	t.Run("unknown preset falls back to body", func(t *testing.T) {
		if StyleFor(Preset("banner")) != StyleFor(PresetBody) {
			t.Error("unknown preset should use the body style")
		}
	})
}
