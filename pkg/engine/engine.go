// Package engine composes the layout subsystems into the operations the
// CLI and API expose.
//
// An [Engine] resolves a document's canvas size through the metadata cache
// (falling back to the default 720×405 canvas when the provider is
// unavailable), runs the planner over a batch of text items, clamps every
// resulting rectangle into canvas bounds, and reports all adjustments. It
// also fronts the arrange strategies and the font-fit solver, and wires
// mutation notifications to cache invalidation.
//
// The engine never fails a request over geometry: rectangles are corrected
// and the corrections reported. The only errors it returns are input
// validation failures.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/deckplan/deckplan/pkg/arrange"
	"github.com/deckplan/deckplan/pkg/canvascache"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/observability"
	"github.com/deckplan/deckplan/pkg/planner"
	"github.com/deckplan/deckplan/pkg/provider"
	"github.com/deckplan/deckplan/pkg/textmetrics"
	"github.com/deckplan/deckplan/pkg/units"
)

// Engine is the composition root for layout operations. Construct with
// [New]; the zero value is not usable.
type Engine struct {
	store  canvascache.Store
	prov   provider.Provider
	logger *log.Logger
}

// New creates an Engine. A nil store gets an in-memory cache with the
// default TTL, a nil prov a static default-canvas provider, and a nil
// logger the package default.
func New(store canvascache.Store, prov provider.Provider, logger *log.Logger) *Engine {
	if store == nil {
		store = canvascache.NewMemoryStore(canvascache.DefaultTTL)
	}
	if prov == nil {
		prov = provider.Static{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: store, prov: prov, logger: logger}
}

// PlacedElement is one placed text box. Bounds is in points, EMUBounds the
// same rectangle in the presentation API's native unit.
type PlacedElement struct {
	ObjectID    string         `json:"object_id"`
	Text        string         `json:"text"`
	Preset      planner.Preset `json:"preset"`
	Style       planner.Style  `json:"style"`
	Bounds      geometry.Rect  `json:"bounds"`
	EMUBounds   geometry.Rect  `json:"emu_bounds"`
	WasClamped  bool           `json:"was_clamped"`
	Warnings    []string       `json:"warnings,omitempty"`
	AutoStacked bool           `json:"auto_stacked"`
}

// PlaceResult is the outcome of a batch placement.
type PlaceResult struct {
	DocumentID string          `json:"document_id"`
	Canvas     geometry.Size   `json:"canvas"`
	FromCache  bool            `json:"canvas_from_cache"`
	Elements   []PlacedElement `json:"elements"`
	Duration   time.Duration   `json:"-"`
}

// Place styles, sizes, positions, and clamps a batch of text items.
func (e *Engine) Place(ctx context.Context, opts PlaceOptions) (*PlaceResult, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	observability.Layout().OnPlanStart(ctx, opts.DocumentID, len(opts.Items))

	canvas, fromCache := e.resolveCanvas(ctx, opts.DocumentID)
	placements := planner.Plan(opts.Items)

	elements := make([]PlacedElement, len(placements))
	for i, p := range placements {
		rect := geometry.Rect{
			X:      e.horizontalPosition(opts.Items[i], p, canvas),
			Y:      p.RecommendedY,
			Width:  p.Width,
			Height: p.Height,
		}
		clamped := geometry.Clamp(rect, canvas)
		if clamped.WasClamped {
			observability.Layout().OnClamp(ctx, opts.DocumentID, len(clamped.Warnings))
		}

		elements[i] = PlacedElement{
			ObjectID:    uuid.NewString(),
			Text:        opts.Items[i].Text,
			Preset:      p.Preset,
			Style:       p.Style,
			Bounds:      clamped.Bounds,
			EMUBounds:   toEMURect(clamped.Bounds),
			WasClamped:  clamped.WasClamped,
			Warnings:    clamped.Warnings,
			AutoStacked: p.AutoStacked,
		}
	}

	duration := time.Since(start)
	observability.Layout().OnPlanComplete(ctx, opts.DocumentID, len(elements), duration, nil)
	e.logger.Debug("placed text batch",
		"document", opts.DocumentID,
		"items", len(elements),
		"canvas_cached", fromCache,
		"duration", duration.Round(time.Microsecond))

	return &PlaceResult{
		DocumentID: opts.DocumentID,
		Canvas:     canvas,
		FromCache:  fromCache,
		Elements:   elements,
		Duration:   duration,
	}, nil
}

// ArrangeResult is the outcome of a batch repositioning.
type ArrangeResult struct {
	DocumentID string            `json:"document_id"`
	Canvas     geometry.Size     `json:"canvas"`
	Strategy   arrange.Strategy  `json:"strategy"`
	Elements   []arrange.Element `json:"elements"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// Arrange repositions a batch of elements with the selected strategy and
// optionally untangles remaining collisions.
func (e *Engine) Arrange(ctx context.Context, opts ArrangeOptions) (*ArrangeResult, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	observability.Layout().OnArrangeStart(ctx, string(opts.Strategy), len(opts.Elements))

	canvas, _ := e.resolveCanvas(ctx, opts.DocumentID)
	placed := arrange.Apply(opts.Strategy, opts.Elements, canvas)

	var warnings []string
	if opts.ResolveCollisions {
		placed, warnings = arrange.ResolveOverlaps(placed, canvas)
	}

	observability.Layout().OnArrangeComplete(ctx, string(opts.Strategy), time.Since(start), nil)
	e.logger.Debug("arranged elements",
		"document", opts.DocumentID,
		"strategy", opts.Strategy,
		"elements", len(placed),
		"collisions_resolved", opts.ResolveCollisions)

	return &ArrangeResult{
		DocumentID: opts.DocumentID,
		Canvas:     canvas,
		Strategy:   opts.Strategy,
		Elements:   placed,
		Warnings:   warnings,
	}, nil
}

// FitResult is the outcome of a font-fit query.
type FitResult struct {
	FontSize    float64             `json:"font_size"`
	RequiredBox textmetrics.BoxSize `json:"required_box"`
	Fits        bool                `json:"fits"`
}

// FitText solves for the largest font size whose estimated footprint fits
// the target box. Fits is false when even the minimum font size overflows
// the box; the caller is told more space is needed rather than having
// content silently truncated.
func (e *Engine) FitText(_ context.Context, opts FitOptions) (*FitResult, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	size := textmetrics.SolveFontSize(opts.Text, opts.MaxWidth, opts.MaxHeight, opts.MinFontSize, opts.MaxFontSize)
	box := textmetrics.RequiredBoxSize(opts.Text, size, textmetrics.DefaultLineHeight, opts.MaxWidth)

	return &FitResult{
		FontSize:    size,
		RequiredBox: box,
		Fits:        box.Width <= opts.MaxWidth && box.Height <= opts.MaxHeight,
	}, nil
}

// OnMutation invalidates cached canvas metadata for a document. Every
// external path that structurally mutates a document must route through
// here so the next placement re-fetches the canvas.
func (e *Engine) OnMutation(ctx context.Context, documentID string) error {
	if err := e.store.Invalidate(ctx, documentID); err != nil {
		return err
	}
	observability.Cache().OnCacheInvalidate(ctx, documentID)
	e.logger.Debug("invalidated canvas metadata", "document", documentID)
	return nil
}

// resolveCanvas returns the canvas size for a document, consulting the
// cache first and falling back to [geometry.DefaultCanvas] when the
// provider cannot be reached. Provider and cache failures are absorbed
// here, never propagated: a layout request must not fail because metadata
// was unavailable. Retry belongs to the calling layer.
func (e *Engine) resolveCanvas(ctx context.Context, documentID string) (geometry.Size, bool) {
	if entry, err := e.store.Get(ctx, documentID); err == nil && entry != nil {
		observability.Cache().OnCacheHit(ctx, documentID)
		return entry.Dimensions, true
	} else if err != nil {
		e.logger.Warn("canvas cache read failed", "document", documentID, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, documentID)

	meta, err := provider.FetchMetadata(ctx, e.prov, documentID)
	if err != nil || meta.Dimensions.Width <= 0 || meta.Dimensions.Height <= 0 {
		observability.Provider().OnFallback(ctx, documentID, err)
		e.logger.Warn("canvas size unavailable, using default",
			"document", documentID,
			"default", geometry.DefaultCanvas,
			"err", err)
		return geometry.DefaultCanvas, false
	}

	if err := e.store.Set(ctx, documentID, canvascache.Entry{
		Dimensions: meta.Dimensions,
		Layouts:    meta.Layouts,
		Masters:    meta.Masters,
	}); err != nil {
		e.logger.Warn("canvas cache write failed", "document", documentID, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, documentID)
	}

	return meta.Dimensions, false
}

// horizontalPosition picks the x coordinate for a placed item: an explicit
// x wins, otherwise the box is positioned by its alignment (centered boxes
// are centered on the canvas, left at the margin, right against the right
// margin).
func (e *Engine) horizontalPosition(item planner.Item, p planner.Placement, canvas geometry.Size) float64 {
	if item.X != nil {
		return *item.X
	}
	switch p.Style.Alignment {
	case planner.AlignCenter:
		return (canvas.Width - p.Width) / 2
	case planner.AlignRight:
		return canvas.Width - geometry.Margin - p.Width
	default:
		return geometry.Margin
	}
}

func toEMURect(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      units.ToEMU(r.X),
		Y:      units.ToEMU(r.Y),
		Width:  units.ToEMU(r.Width),
		Height: units.ToEMU(r.Height),
	}
}
