// Package georect implements the minimal axis-aligned rectangle
// arithmetic that bplane needs: canonicalization, width/height, the
// null rectangle, and the touch/surround predicates used by area
// queries. It is deliberately narrow -- it is not a general VLSI
// geometry library, just the "Rectangle library" collaborator that
// bplane consumes.
package georect

import "math"

// PosType is the coordinate type for rectangle corners. int32 keeps a
// Rect at 16 bytes and matches the width the original C implementation
// used for its Rect fields.
type PosType int32

// PosTypeMax is the largest representable coordinate.
const PosTypeMax = math.MaxInt32

// PosTypeMin is the smallest representable coordinate.
const PosTypeMin = math.MinInt32

// Rect is an axis-aligned rectangle. A canonical Rect satisfies
// XBot <= XTop && YBot <= YTop. BPlane requires every stored or queried
// rectangle to be canonical; use Canonical to fix one up.
type Rect struct {
	XBot, YBot, XTop, YTop PosType
}

// NullRect is the canonical empty rectangle: a single point at the
// origin, Width()==Height()==0. It is the Rect zero value, not the
// empty-BPlane bounding-box sentinel -- that is Inverted, below.
var NullRect = Rect{}

// Inverted is a rectangle with XBot > XTop, used as a sentinel for
// "no bounding box" (an empty BPlane), matching the original's
// GeoInvertedRect.
var Inverted = Rect{XBot: 1, XTop: 0, YBot: 1, YTop: 0}

// Canonical returns r with its X and Y spans swapped into non-inverted
// order.
func Canonical(r Rect) Rect {
	if r.XBot > r.XTop {
		r.XBot, r.XTop = r.XTop, r.XBot
	}
	if r.YBot > r.YTop {
		r.YBot, r.YTop = r.YTop, r.YBot
	}
	return r
}

// IsCanonical reports whether r.XBot<=r.XTop && r.YBot<=r.YTop.
func IsCanonical(r Rect) bool {
	return r.XBot <= r.XTop && r.YBot <= r.YTop
}

// IsNull reports whether r is inverted in either dimension, matching
// GEO_RECTNULL. Inverted, the bounding box of an empty BPlane, is null.
func IsNull(r Rect) bool {
	return r.XBot > r.XTop || r.YBot > r.YTop
}

// Width returns r's horizontal extent. Requires a canonical r.
func Width(r Rect) PosType { return r.XTop - r.XBot }

// Height returns r's vertical extent. Requires a canonical r.
func Height(r Rect) PosType { return r.YTop - r.YBot }

// Expand grows (or shrinks, for negative d) r by d units on every side.
func Expand(r Rect, d PosType) Rect {
	return Rect{
		XBot: r.XBot - d,
		YBot: r.YBot - d,
		XTop: r.XTop + d,
		YTop: r.YTop + d,
	}
}

// Clip intersects r with bound, returning a (possibly inverted/null)
// result.
func Clip(r, bound Rect) Rect {
	if r.XBot < bound.XBot {
		r.XBot = bound.XBot
	}
	if r.YBot < bound.YBot {
		r.YBot = bound.YBot
	}
	if r.XTop > bound.XTop {
		r.XTop = bound.XTop
	}
	if r.YTop > bound.YTop {
		r.YTop = bound.YTop
	}
	return r
}

// Surrounds reports whether outer fully contains inner (outer's
// boundary may coincide with inner's).
func Surrounds(outer, inner Rect) bool {
	return outer.XBot <= inner.XBot && outer.XTop >= inner.XTop &&
		outer.YBot <= inner.YBot && outer.YTop >= inner.YTop
}

// Touches reports whether r and area intersect, treating their
// boundaries as closed -- two rectangles sharing only an edge or a
// corner still touch. Used for BPE_TOUCH matching directly, and for
// BPE_OVERLAP against a caller-contracted area (see bplane/enum.go).
func Touches(r, area Rect) bool {
	if r.XTop < area.XBot {
		return false
	}
	if r.XBot > area.XTop {
		return false
	}
	if r.YTop < area.YBot {
		return false
	}
	if r.YBot > area.YTop {
		return false
	}
	return true
}

// Equal reports whether a and b are identical (used by BPE_EQUAL,
// which compares against the canonical query rectangle).
func Equal(a, b Rect) bool {
	return a == b
}

// IncludeInBBox grows bbox so that it contains r. Callers are
// responsible for priming bbox with the first element's rectangle
// before folding in the rest, exactly as GeoIncludeRectInBBox expects.
func IncludeInBBox(r Rect, bbox *Rect) {
	if r.XBot < bbox.XBot {
		bbox.XBot = r.XBot
	}
	if r.YBot < bbox.YBot {
		bbox.YBot = r.YBot
	}
	if r.XTop > bbox.XTop {
		bbox.XTop = r.XTop
	}
	if r.YTop > bbox.YTop {
		bbox.YTop = r.YTop
	}
}
