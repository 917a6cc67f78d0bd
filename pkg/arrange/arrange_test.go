package arrange

import (
	"fmt"
	"math"
	"testing"

	"github.com/deckplan/deckplan/pkg/geometry"
)

func makeElements(n int, w, h float64) []Element {
	els := make([]Element, n)
	for i := range els {
		els[i] = Element{
			ID:     fmt.Sprintf("el-%d", i),
			Bounds: geometry.Rect{X: 100, Y: 100, Width: w, Height: h},
		}
	}
	return els
}

func assertNoOverlaps(t *testing.T, els []Element) {
	t.Helper()
	for i := range els {
		for j := i + 1; j < len(els); j++ {
			if els[i].Bounds.Overlaps(els[j].Bounds) {
				t.Errorf("%s overlaps %s: %+v vs %+v", els[i].ID, els[j].ID, els[i].Bounds, els[j].Bounds)
			}
		}
	}
}

func TestGrid(t *testing.T) {
	tests := []struct {
		n        int
		wantCols int
		wantRows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{5, 3, 2},
		{9, 3, 3},
		{10, 4, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			els := Grid(makeElements(tt.n, 500, 300), geometry.DefaultCanvas)

			cols := int(math.Ceil(math.Sqrt(float64(tt.n))))
			if cols != tt.wantCols {
				t.Fatalf("cols = %d, want %d", cols, tt.wantCols)
			}

			assertNoOverlaps(t, els)
			for _, el := range els {
				if el.Bounds.X < geometry.Margin || el.Bounds.Y < geometry.Margin {
					t.Errorf("%s starts inside margin: %+v", el.ID, el.Bounds)
				}
				if el.Bounds.Right() > geometry.DefaultCanvas.Width-geometry.Margin+1e-9 ||
					el.Bounds.Bottom() > geometry.DefaultCanvas.Height-geometry.Margin+1e-9 {
					t.Errorf("%s overflows canvas: %+v", el.ID, el.Bounds)
				}
			}

			// Row-major order: the second element of a multi-column grid
			// sits to the right of the first, on the same row.
			if tt.n > 1 {
				if els[1].Bounds.Y != els[0].Bounds.Y {
					t.Errorf("elements 0 and 1 on different rows: %v vs %v", els[0].Bounds.Y, els[1].Bounds.Y)
				}
				if els[1].Bounds.X <= els[0].Bounds.X {
					t.Errorf("element 1 not right of element 0")
				}
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		if got := Grid(nil, geometry.DefaultCanvas); got != nil {
			t.Errorf("Grid(nil) = %v, want nil", got)
		}
	})

	t.Run("small elements keep their size", func(t *testing.T) {
		els := Grid(makeElements(4, 50, 30), geometry.DefaultCanvas)
		for _, el := range els {
			if el.Bounds.Width != 50 || el.Bounds.Height != 30 {
				t.Errorf("%s resized to %+v, cell is larger", el.ID, el.Bounds)
			}
		}
	})
}

func TestStack(t *testing.T) {
	els := Stack(makeElements(3, 200, 50), geometry.DefaultCanvas)

	for i, el := range els {
		if el.Bounds.X != geometry.Margin {
			t.Errorf("element %d x = %v, want %v", i, el.Bounds.X, geometry.Margin)
		}
	}
	if els[0].Bounds.Y != geometry.Margin {
		t.Errorf("first element y = %v, want %v", els[0].Bounds.Y, geometry.Margin)
	}
	for i := 1; i < len(els); i++ {
		want := els[i-1].Bounds.Bottom() + Gap
		if els[i].Bounds.Y != want {
			t.Errorf("element %d y = %v, want %v", i, els[i].Bounds.Y, want)
		}
	}
}

func TestFlow(t *testing.T) {
	t.Run("wraps at right margin", func(t *testing.T) {
		// Three 300pt elements on a 720pt canvas: two fit per row.
		els := Flow(makeElements(3, 300, 60), geometry.DefaultCanvas)

		if els[0].Bounds.Y != els[1].Bounds.Y {
			t.Errorf("first two elements on different rows")
		}
		if els[2].Bounds.Y <= els[0].Bounds.Y {
			t.Errorf("third element did not wrap: y = %v", els[2].Bounds.Y)
		}
		if els[2].Bounds.X != geometry.Margin {
			t.Errorf("wrapped element x = %v, want %v", els[2].Bounds.X, geometry.Margin)
		}
	})

	t.Run("new row clears the tallest element", func(t *testing.T) {
		els := []Element{
			{ID: "a", Bounds: geometry.Rect{Width: 300, Height: 40}},
			{ID: "b", Bounds: geometry.Rect{Width: 300, Height: 120}},
			{ID: "c", Bounds: geometry.Rect{Width: 300, Height: 40}},
		}
		got := Flow(els, geometry.DefaultCanvas)
		want := geometry.Margin + 120 + Gap
		if got[2].Bounds.Y != want {
			t.Errorf("wrapped row y = %v, want %v", got[2].Bounds.Y, want)
		}
	})

	t.Run("oversized element gets its own row", func(t *testing.T) {
		els := Flow(makeElements(2, 800, 60), geometry.DefaultCanvas)
		if els[0].Bounds.Y == els[1].Bounds.Y {
			t.Error("oversized elements share a row")
		}
	})
}

func TestApply(t *testing.T) {
	els := makeElements(3, 100, 50)

	if got := Apply(StrategyGrid, els, geometry.DefaultCanvas); got[2].Bounds != Grid(els, geometry.DefaultCanvas)[2].Bounds {
		t.Error("Apply(grid) did not delegate to Grid")
	}
	if got := Apply(StrategyFlow, els, geometry.DefaultCanvas); got[2].Bounds != Flow(els, geometry.DefaultCanvas)[2].Bounds {
		t.Error("Apply(flow) did not delegate to Flow")
	}
	// Unknown strategies stack.
	if got := Apply(Strategy("spiral"), els, geometry.DefaultCanvas); got[2].Bounds != Stack(els, geometry.DefaultCanvas)[2].Bounds {
		t.Error("Apply(unknown) did not fall back to Stack")
	}
}

func TestStrategyValid(t *testing.T) {
	for _, s := range []Strategy{StrategyGrid, StrategyStack, StrategyFlow} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Strategy("spiral").Valid() {
		t.Error("unknown strategy reported valid")
	}
}

func TestResolveOverlaps(t *testing.T) {
	t.Run("five identical rectangles separate", func(t *testing.T) {
		els, warnings := ResolveOverlaps(makeElements(5, 100, 50), geometry.DefaultCanvas)
		if len(warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", warnings)
		}
		assertNoOverlaps(t, els)
	})

	t.Run("non-overlapping input untouched", func(t *testing.T) {
		in := []Element{
			{ID: "a", Bounds: geometry.Rect{X: 20, Y: 20, Width: 100, Height: 50}},
			{ID: "b", Bounds: geometry.Rect{X: 300, Y: 20, Width: 100, Height: 50}},
		}
		got, warnings := ResolveOverlaps(in, geometry.DefaultCanvas)
		if len(warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", warnings)
		}
		for i := range in {
			if got[i].Bounds != in[i].Bounds {
				t.Errorf("element %s moved from %+v to %+v", in[i].ID, in[i].Bounds, got[i].Bounds)
			}
		}
	})

	t.Run("touching edges are not overlap", func(t *testing.T) {
		in := []Element{
			{ID: "a", Bounds: geometry.Rect{X: 20, Y: 20, Width: 100, Height: 50}},
			{ID: "b", Bounds: geometry.Rect{X: 120, Y: 20, Width: 100, Height: 50}},
		}
		got, _ := ResolveOverlaps(in, geometry.DefaultCanvas)
		if got[1].Bounds != in[1].Bounds {
			t.Errorf("touching element moved to %+v", got[1].Bounds)
		}
	})

	t.Run("impossible packing reports failures", func(t *testing.T) {
		// Forty elements the size of the whole usable area cannot coexist.
		els := make([]Element, 40)
		for i := range els {
			els[i] = Element{
				ID:     fmt.Sprintf("big-%d", i),
				Bounds: geometry.Rect{X: 20, Y: 20, Width: 680, Height: 365},
			}
		}
		_, warnings := ResolveOverlaps(els, geometry.DefaultCanvas)
		if len(warnings) == 0 {
			t.Fatal("expected placement warnings for impossible packing")
		}
	})

	t.Run("terminates within the attempt budget", func(t *testing.T) {
		els, _ := ResolveOverlaps(makeElements(50, 300, 200), geometry.DefaultCanvas)
		if len(els) != 50 {
			t.Fatalf("got %d elements back, want 50", len(els))
		}
	})
}
