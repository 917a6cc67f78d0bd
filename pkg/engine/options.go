package engine

import (
	"github.com/deckplan/deckplan/pkg/arrange"
	"github.com/deckplan/deckplan/pkg/errors"
	"github.com/deckplan/deckplan/pkg/planner"
)

// Font-size search defaults for [Engine.FitText].
const (
	DefaultMinFontSize = 8.0
	DefaultMaxFontSize = 72.0
)

// PlaceOptions configures a batch text placement.
type PlaceOptions struct {
	// DocumentID identifies the target presentation document.
	DocumentID string `json:"document_id"`

	// Items are placed in order; order matters because preset detection
	// looks at the preceding item.
	Items []planner.Item `json:"items"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills defaults. It must be
// called (and succeed) before the options are used; [Engine.Place] calls it
// for callers that have not.
func (o *PlaceOptions) ValidateAndSetDefaults() error {
	if err := errors.ValidateDocumentID(o.DocumentID); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no text items supplied")
	}

	for i, item := range o.Items {
		if err := errors.ValidateFontSize(item.FontSize); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "item %d", i)
		}
		if err := errors.ValidateAlignment(item.Alignment); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "item %d", i)
		}
		if err := errors.ValidateHexColor(item.Color); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "item %d", i)
		}
	}

	o.validated = true
	return nil
}

// ArrangeOptions configures a batch repositioning.
type ArrangeOptions struct {
	// DocumentID identifies the target presentation document.
	DocumentID string `json:"document_id"`

	// Strategy selects the placement algorithm. Defaults to stack.
	Strategy arrange.Strategy `json:"strategy,omitempty"`

	// Elements to reposition, in order.
	Elements []arrange.Element `json:"elements"`

	// ResolveCollisions runs the overlap-resolution pass after placement.
	ResolveCollisions bool `json:"resolve_collisions,omitempty"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *ArrangeOptions) ValidateAndSetDefaults() error {
	if err := errors.ValidateDocumentID(o.DocumentID); err != nil {
		return err
	}
	if len(o.Elements) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no elements supplied")
	}
	if o.Strategy == "" {
		o.Strategy = arrange.StrategyStack
	}
	if !o.Strategy.Valid() {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", o.Strategy)
	}

	o.validated = true
	return nil
}

// FitOptions configures a font-size fit query.
type FitOptions struct {
	Text      string  `json:"text"`
	MaxWidth  float64 `json:"max_width"`
	MaxHeight float64 `json:"max_height"`

	// MinFontSize and MaxFontSize bound the search; zero values default to
	// 8pt and 72pt.
	MinFontSize float64 `json:"min_font_size,omitempty"`
	MaxFontSize float64 `json:"max_font_size,omitempty"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *FitOptions) ValidateAndSetDefaults() error {
	if o.Text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no text supplied")
	}
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "target box must have positive dimensions")
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if err := errors.ValidateFontRange(o.MinFontSize, o.MaxFontSize); err != nil {
		return err
	}

	o.validated = true
	return nil
}
