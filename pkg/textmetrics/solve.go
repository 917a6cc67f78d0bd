package textmetrics

import "math"

// guardBand is the fraction of the target box the solved estimate must fit
// within. The final safety pass shrinks the result proportionally when the
// estimate lands between 90% and 100% of the box.
const guardBand = 0.9

// SolveFontSize finds the largest font size in [minSize, maxSize] whose
// estimated footprint fits inside a maxWidth×maxHeight box.
//
// The search is a binary search over the font-size domain to 0.1pt
// precision, so it terminates in O(log(maxSize−minSize)) iterations. After
// the search a safety pass verifies the solution also fits a 90%-of-box
// guard band and scales it down proportionally if not. The result is
// rounded to one decimal place and never falls below minSize.
func SolveFontSize(text string, maxWidth, maxHeight, minSize, maxSize float64) float64 {
	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}
	if minSize <= 0 {
		minSize = 1
	}

	fits := func(size, w, h float64) bool {
		return EstimateWidth(text, size) <= w &&
			EstimateHeight(text, size, DefaultLineHeight, 0) <= h
	}

	if fits(maxSize, maxWidth, maxHeight) {
		return roundTenth(applyGuardBand(text, maxSize, maxWidth, maxHeight, minSize))
	}

	lo, hi := minSize, maxSize
	best := minSize
	for hi-lo > 0.1 {
		mid := (lo + hi) / 2
		if fits(mid, maxWidth, maxHeight) {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}

	return roundTenth(applyGuardBand(text, best, maxWidth, maxHeight, minSize))
}

// applyGuardBand shrinks size proportionally until the estimate fits within
// guardBand of the box, but never below minSize. The estimate carries fixed
// padding terms, so a single proportional pass can land slightly above the
// band; the pass repeats (bounded) until the band holds or the floor is hit.
func applyGuardBand(text string, size, maxWidth, maxHeight, minSize float64) float64 {
	for i := 0; i < 10; i++ {
		w := EstimateWidth(text, size)
		h := EstimateHeight(text, size, DefaultLineHeight, 0)
		if w <= maxWidth*guardBand && h <= maxHeight*guardBand {
			return size
		}
		if size <= minSize {
			return minSize
		}

		scale := 1.0
		if w > 0 {
			scale = math.Min(scale, maxWidth*guardBand/w)
		}
		if h > 0 {
			scale = math.Min(scale, maxHeight*guardBand/h)
		}
		size = math.Max(size*scale, minSize)
	}
	return size
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
