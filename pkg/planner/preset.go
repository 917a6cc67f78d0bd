// Package planner infers semantic roles for slide text and derives styling
// and placement from them.
//
// Text arriving from callers rarely says what it is. The planner classifies
// each item as a title, subtitle, body block, metric, or bullet using an
// ordered list of heuristic rules, then maps the role to a preset style and
// an auto-computed box. Classification of item i may depend on the preset
// of item i-1 (a subtitle usually follows a title), so batches are
// processed in order.
package planner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Preset is an inferred semantic role for a piece of slide text.
type Preset string

// The closed set of presets.
const (
	PresetTitle    Preset = "title"
	PresetSubtitle Preset = "subtitle"
	PresetBody     Preset = "body"
	PresetMetric   Preset = "metric"
	PresetBullet   Preset = "bullet"
)

// ruleInput carries everything a detection rule may inspect.
type ruleInput struct {
	text   string  // trimmed text
	length int     // rune count of trimmed text
	index  int     // position within the batch
	y      float64 // requested y, valid only when hasY
	hasY   bool
	prev   Preset // preset of the preceding item, "" for the first
}

// rule pairs a predicate with the preset it selects. Rules are evaluated in
// order; the first match wins. Keeping them as an explicit list makes the
// precedence auditable and testable rule by rule.
type rule struct {
	name   string
	match  func(in ruleInput) bool
	preset Preset
}

var presetRules = []rule{
	{
		name: "short numeric text is a metric",
		match: func(in ruleInput) bool {
			return in.length < 20 && containsDigitOrPercent(in.text)
		},
		preset: PresetMetric,
	},
	{
		name: "bullet glyph prefix",
		match: func(in ruleInput) bool {
			return startsWithBulletGlyph(in.text)
		},
		preset: PresetBullet,
	},
	{
		name: "first item or near the top",
		match: func(in ruleInput) bool {
			return in.index == 0 ||
				(in.hasY && in.y < 80) ||
				(in.length < 50 && in.hasY && in.y < 100)
		},
		preset: PresetTitle,
	},
	{
		name: "second item or follows a title",
		match: func(in ruleInput) bool {
			return in.index == 1 ||
				in.prev == PresetTitle ||
				(in.hasY && in.y >= 80 && in.y < 150)
		},
		preset: PresetSubtitle,
	},
	{
		name: "long text or lower region",
		match: func(in ruleInput) bool {
			return in.length > 100 || (in.hasY && in.y >= 150)
		},
		preset: PresetBody,
	},
}

// DetectPreset classifies text at the given batch index. y is the caller's
// requested vertical position, nil when absent. prev is the preset assigned
// to the preceding item, or "" for the first item. Unmatched text defaults
// to [PresetBody].
func DetectPreset(text string, index int, y *float64, prev Preset) Preset {
	trimmed := strings.TrimSpace(text)
	in := ruleInput{
		text:   trimmed,
		length: utf8.RuneCountInString(trimmed),
		index:  index,
		prev:   prev,
	}
	if y != nil {
		in.y, in.hasY = *y, true
	}

	for _, r := range presetRules {
		if r.match(in) {
			return r.preset
		}
	}
	return PresetBody
}

func containsDigitOrPercent(s string) bool {
	return strings.ContainsRune(s, '%') || strings.ContainsFunc(s, unicode.IsDigit)
}

func startsWithBulletGlyph(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case '•', '-', '*', '+':
		return true
	}
	return false
}
