package bplane

import (
	"math"

	"github.com/grailbio/bplane/georect"
)

// sizerResult is the Sizer's output: the chosen bin dimensions, the
// per-axis caps the algorithm enforced, the tentative bin count, and
// the element count it was computed from.
type sizerResult struct {
	dx, dy     georect.PosType
	maxDX      georect.PosType
	maxDY      georect.PosType
	numBins    int
	count      int
}

// sizeBinArray chooses bin dimensions and grid size for bbox and
// elements, following Config's population targets. It returns
// ok == false when binning isn't worthwhile (too few elements, or the
// area is too small to subdivide) or when no progress can be made
// (every element would be oversized on both axes).
//
// This is a close transcription of bpBinArraySizeIt -- the step
// structure (not just the resulting shape) matters here, since
// a prose description alone would leave too much room for drift.
func sizeBinArray(cfg Config, bbox georect.Rect, elements *Header) (sizerResult, bool) {
	h := georect.Height(bbox)
	w := georect.Width(bbox)

	var maxEX, maxEY georect.PosType
	count := 0
	for e := elements; e != nil; e = e.listNext {
		if ew := georect.Width(e.Rect); ew > maxEX {
			maxEX = ew
		}
		if eh := georect.Height(e.Rect); eh > maxEY {
			maxEY = eh
		}
		count++
	}

	if count < cfg.MinPop {
		return sizerResult{}, false
	}
	if h < 2 || w < 2 {
		return sizerResult{}, false
	}

	dx := maxEX + 1
	dy := maxEY + 1

	// Ensure at least two bins per axis, so sparse designs can still
	// be subbinned later.
	maxDX := (w + 1) / 2
	maxDY := (h + 1) / 2

	switch {
	case dx <= maxDX && dy <= maxDY:
		// Both axes fit comfortably; nothing to do.

	case dx <= maxDX:
		// y overflows two-bins-per-axis, x is fine: reduce only y.
		dy = h + 1

	case dy <= maxDY:
		// x overflows, y is fine: reduce only x.
		dx = w + 1

	default:
		// Both axes overflow -- some elements will end up oversized.
		// Pick whichever axis reduction minimizes the oversized count.
		var xOver, yOver int
		for e := elements; e != nil; e = e.listNext {
			if georect.Width(e.Rect) >= maxDX {
				xOver++
			}
			if georect.Height(e.Rect) >= maxDY {
				yOver++
			}
		}

		if xOver < yOver {
			dx = maxDX
			dy = h + 1
		} else {
			if yOver == count {
				// Reducing y makes no progress either; refuse.
				return sizerResult{}, false
			}
			dx = w + 1
			dy = maxDY
		}
	}

	xDim := int(roundUp(w, dx) / dx)
	yDim := int(roundUp(h, dy) / dy)
	numBins := float64(xDim) * float64(yDim)

	maxBins := float64(count) / cfg.MinAvgPop
	if maxBins < 1 {
		maxBins = 1
	}

	if numBins > maxBins {
		switch {
		case dx == w+1:
			// Can't grow x further; grow y instead.
			yDimTarget := maxOf(maxBins/float64(xDim), 1)
			dy = (h + 1) / georect.PosType(yDimTarget)
			if dy > maxDY {
				dy = maxDY
			}

		case dy == h+1:
			// Can't grow y further; grow x instead.
			xDimTarget := maxOf(maxBins/float64(yDim), 1)
			dx = (w + 1) / georect.PosType(xDimTarget)
			if dx > maxDX {
				dx = maxDX
			}

		default:
			// Aim for roughly square bins.
			area := float64(h) * float64(w)
			d := georect.PosType(maxOf(math.Sqrt(area/maxBins), 1))

			switch {
			case d < dx:
				yDimTarget := maxOf(maxBins/float64(xDim), 1)
				dy = (h + 1) / georect.PosType(yDimTarget)
				if dy > maxDY {
					dy = maxDY
				}
			case d < dy:
				xDimTarget := maxOf(maxBins/float64(yDim), 1)
				dx = (w + 1) / georect.PosType(xDimTarget)
				if dx > maxDX {
					dx = maxDX
				}
			case d > maxDX:
				dx = w + 1
				dy = maxOf3((h+1)/georect.PosType(maxBins), dy)
				if dy > maxDY {
					dy = maxDY
				}
			case d > maxDY:
				dy = h + 1
				dx = maxOf3((w+1)/georect.PosType(maxBins), dx)
				if dx > maxDX {
					dx = maxDX
				}
			default:
				dx = d
				dy = d
			}
		}

		xDim = int(roundUp(w, dx) / dx)
		yDim = int(roundUp(h, dy) / dy)
		numBins = float64(xDim) * float64(yDim)
	}

	return sizerResult{
		dx: dx, dy: dy,
		maxDX: maxDX, maxDY: maxDY,
		numBins: int(numBins),
		count:   count,
	}, true
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxOf3(a, b georect.PosType) georect.PosType {
	if a > b {
		return a
	}
	return b
}
