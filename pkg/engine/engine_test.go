package engine

import (
	"context"
	"testing"
	"time"

	"github.com/deckplan/deckplan/pkg/arrange"
	"github.com/deckplan/deckplan/pkg/canvascache"
	"github.com/deckplan/deckplan/pkg/errors"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/planner"
)

// fakeProvider counts fetches and can be told to fail.
type fakeProvider struct {
	size  geometry.Size
	err   error
	calls int
}

func (f *fakeProvider) FetchCanvasSize(_ context.Context, _ string) (geometry.Size, error) {
	f.calls++
	if f.err != nil {
		return geometry.Size{}, f.err
	}
	return f.size, nil
}

func yp(v float64) *float64 { return &v }

func TestPlaceAutoStack(t *testing.T) {
	e := New(nil, nil, nil)

	res, err := e.Place(context.Background(), PlaceOptions{
		DocumentID: "doc-1",
		Items: []planner.Item{
			{Text: "Title"},
			{Text: "Subtitle"},
			{Text: "Body"},
		},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if len(res.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(res.Elements))
	}

	wantY := []float64{32, 88, 136}
	for i, el := range res.Elements {
		if el.Bounds.Y != wantY[i] {
			t.Errorf("element %d y = %v, want %v", i, el.Bounds.Y, wantY[i])
		}
		if el.ObjectID == "" {
			t.Errorf("element %d has no object id", i)
		}
		if el.EMUBounds.Y != el.Bounds.Y*12700 {
			t.Errorf("element %d EMU y = %v, want %v", i, el.EMUBounds.Y, el.Bounds.Y*12700)
		}
	}

	// Distinct object ids.
	if res.Elements[0].ObjectID == res.Elements[1].ObjectID {
		t.Error("object ids not unique")
	}
}

func TestPlaceIdenticalYOverride(t *testing.T) {
	e := New(nil, nil, nil)

	res, err := e.Place(context.Background(), PlaceOptions{
		DocumentID: "doc-1",
		Items: []planner.Item{
			{Text: "First", Y: yp(50)},
			{Text: "Second", Y: yp(50)},
			{Text: "Third", Y: yp(50)},
		},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	seen := map[float64]bool{}
	for _, el := range res.Elements {
		if seen[el.Bounds.Y] {
			t.Errorf("repeated y %v not overridden", el.Bounds.Y)
		}
		seen[el.Bounds.Y] = true
	}
}

func TestPlaceClampsIntoCanvas(t *testing.T) {
	e := New(nil, nil, nil)

	res, err := e.Place(context.Background(), PlaceOptions{
		DocumentID: "doc-1",
		Items: []planner.Item{
			{Text: "Way off canvas", X: yp(5000), Y: yp(5000), Width: 300, Height: 100},
		},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	el := res.Elements[0]
	if !el.WasClamped {
		t.Error("off-canvas element not reported as clamped")
	}
	if len(el.Warnings) == 0 {
		t.Error("clamped element carries no warnings")
	}
	if el.Bounds.Right() > res.Canvas.Width-geometry.Margin ||
		el.Bounds.Bottom() > res.Canvas.Height-geometry.Margin {
		t.Errorf("element overflows canvas: %+v", el.Bounds)
	}
}

func TestPlaceValidation(t *testing.T) {
	e := New(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts PlaceOptions
		code errors.Code
	}{
		{
			name: "empty document id",
			opts: PlaceOptions{Items: []planner.Item{{Text: "x"}}},
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "no items",
			opts: PlaceOptions{DocumentID: "doc-1"},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad font size",
			opts: PlaceOptions{DocumentID: "doc-1", Items: []planner.Item{{Text: "x", FontSize: -4}}},
			code: errors.ErrCodeInvalidFontSize,
		},
		{
			name: "bad color",
			opts: PlaceOptions{DocumentID: "doc-1", Items: []planner.Item{{Text: "x", Color: "red"}}},
			code: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Place(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestResolveCanvasCachesFetches(t *testing.T) {
	prov := &fakeProvider{size: geometry.Size{Width: 960, Height: 540}}
	store := canvascache.NewMemoryStore(time.Minute)
	e := New(store, prov, nil)
	ctx := context.Background()

	opts := PlaceOptions{DocumentID: "doc-1", Items: []planner.Item{{Text: "Hi"}}}

	first, err := e.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if first.FromCache {
		t.Error("first placement should miss the cache")
	}
	if first.Canvas.Width != 960 {
		t.Errorf("canvas = %+v, want provider size", first.Canvas)
	}

	second, err := e.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if !second.FromCache {
		t.Error("second placement should hit the cache")
	}
	if prov.calls != 1 {
		t.Errorf("provider called %d times, want 1", prov.calls)
	}
}

func TestResolveCanvasFallsBackOnProviderFailure(t *testing.T) {
	prov := &fakeProvider{err: errors.New(errors.ErrCodeProvider, "unreachable")}
	e := New(nil, prov, nil)

	res, err := e.Place(context.Background(), PlaceOptions{
		DocumentID: "doc-1",
		Items:      []planner.Item{{Text: "Hi"}},
	})
	if err != nil {
		t.Fatalf("provider failure must be absorbed, got: %v", err)
	}
	if res.Canvas != geometry.DefaultCanvas {
		t.Errorf("canvas = %+v, want default", res.Canvas)
	}
}

func TestOnMutationInvalidatesCache(t *testing.T) {
	prov := &fakeProvider{size: geometry.Size{Width: 960, Height: 540}}
	e := New(canvascache.NewMemoryStore(time.Hour), prov, nil)
	ctx := context.Background()

	opts := PlaceOptions{DocumentID: "doc-1", Items: []planner.Item{{Text: "Hi"}}}
	if _, err := e.Place(ctx, opts); err != nil {
		t.Fatal(err)
	}

	if err := e.OnMutation(ctx, "doc-1"); err != nil {
		t.Fatalf("OnMutation error: %v", err)
	}

	if _, err := e.Place(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if prov.calls != 2 {
		t.Errorf("provider called %d times after invalidation, want 2", prov.calls)
	}
}

func TestArrange(t *testing.T) {
	e := New(nil, nil, nil)
	ctx := context.Background()

	els := []arrange.Element{
		{ID: "a", Bounds: geometry.Rect{X: 100, Y: 100, Width: 100, Height: 50}},
		{ID: "b", Bounds: geometry.Rect{X: 100, Y: 100, Width: 100, Height: 50}},
	}

	t.Run("stack default", func(t *testing.T) {
		res, err := e.Arrange(ctx, ArrangeOptions{DocumentID: "doc-1", Elements: els})
		if err != nil {
			t.Fatalf("Arrange error: %v", err)
		}
		if res.Strategy != arrange.StrategyStack {
			t.Errorf("strategy = %v, want stack default", res.Strategy)
		}
		if res.Elements[0].Bounds.Y == res.Elements[1].Bounds.Y {
			t.Error("stacked elements share a row")
		}
	})

	t.Run("collision resolution", func(t *testing.T) {
		// Leave elements where they are but resolve the collision.
		res, err := e.Arrange(ctx, ArrangeOptions{
			DocumentID:        "doc-1",
			Strategy:          arrange.StrategyGrid,
			Elements:          els,
			ResolveCollisions: true,
		})
		if err != nil {
			t.Fatalf("Arrange error: %v", err)
		}
		if res.Elements[0].Bounds.Overlaps(res.Elements[1].Bounds) {
			t.Error("collision not resolved")
		}
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		_, err := e.Arrange(ctx, ArrangeOptions{
			DocumentID: "doc-1",
			Strategy:   arrange.Strategy("spiral"),
			Elements:   els,
		})
		if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
			t.Errorf("err = %v, want INVALID_STRATEGY", err)
		}
	})
}

func TestFitText(t *testing.T) {
	e := New(nil, nil, nil)
	ctx := context.Background()

	t.Run("solves within range", func(t *testing.T) {
		res, err := e.FitText(ctx, FitOptions{Text: "Hello World", MaxWidth: 400, MaxHeight: 120})
		if err != nil {
			t.Fatalf("FitText error: %v", err)
		}
		if res.FontSize < DefaultMinFontSize || res.FontSize > DefaultMaxFontSize {
			t.Errorf("font size %v outside default range", res.FontSize)
		}
		if !res.Fits {
			t.Error("generous box reported as not fitting")
		}
	})

	t.Run("overflow reported not truncated", func(t *testing.T) {
		res, err := e.FitText(ctx, FitOptions{
			Text:      "Quarterly Revenue Summary",
			MaxWidth:  200,
			MaxHeight: 60,
			// Pin the size: the caller insists on 44pt.
			MinFontSize: 44,
			MaxFontSize: 44,
		})
		if err != nil {
			t.Fatalf("FitText error: %v", err)
		}
		if res.Fits {
			t.Error("44pt headline cannot fit a 200x60 box")
		}
		if res.RequiredBox.Height <= 60 {
			t.Errorf("required height = %v, want > 60 to signal overflow", res.RequiredBox.Height)
		}
	})

	t.Run("validation", func(t *testing.T) {
		if _, err := e.FitText(ctx, FitOptions{Text: "", MaxWidth: 100, MaxHeight: 100}); err == nil {
			t.Error("empty text accepted")
		}
		if _, err := e.FitText(ctx, FitOptions{Text: "x", MaxWidth: -1, MaxHeight: 100}); err == nil {
			t.Error("negative box accepted")
		}
	})
}
