package bplane

import "github.com/grailbio/bplane/georect"

// binSlot is one bucket of a binArray: either the head of an Element
// list, or a nested binArray. The original tagged a single pointer's
// low bit to distinguish the two cases (bpOpaque.h's BT_LIST/BT_ARRAY);
// forbidding that confusion statically is worth the small extra type, so
// binSlot is a small sum type instead. Exactly one of list/sub is
// meaningful at a time: list != nil implies sub == nil and vice versa,
// and both nil means an empty bin.
type binSlot struct {
	list *Header
	sub  *binArray
}

func (s *binSlot) isArray() bool { return s.sub != nil }

// binArray is a regular dimX x dimY grid of bins covering bbox, plus
// one oversized-overflow bucket at index numBins. Grounded on
// bpOpaque.h's BinArray and bpBins.c's bpBinArrayNew/bpBinAdd.
type binArray struct {
	bbox       georect.Rect // pulled in by one unit on top/right, see newBinArray
	dx, dy     georect.PosType
	dimX, dimY int
	numBins    int // dimX * dimY; slots has numBins+1 entries
	slots      []binSlot
}

// newBinArray allocates an empty binArray of dx x dy bins covering
// bbox. bbox's top and right edges are pulled in by one unit, matching
// bpBinArrayNew; binArray.indexOf places Elements lying on bbox's top
// or right edge in the last row or column, so bin indexing always lands
// in range.
func newBinArray(bbox georect.Rect, dx, dy georect.PosType) *binArray {
	w := georect.Width(bbox)
	h := georect.Height(bbox)
	dimX := int(roundUp(w, dx) / dx)
	dimY := int(roundUp(h, dy) / dy)
	numBins := dimX * dimY

	ba := &binArray{
		bbox:    bbox,
		dx:      dx,
		dy:      dy,
		dimX:    dimX,
		dimY:    dimY,
		numBins: numBins,
		slots:   make([]binSlot, numBins+1),
	}
	ba.bbox.XTop--
	ba.bbox.YTop--
	return ba
}

// roundUp rounds i up to the next multiple of res, matching bpBins.c's
// roundUp (used here only with non-negative, grid-relative values, so
// the original's negative-remainder correction is not needed).
func roundUp(i, res georect.PosType) georect.PosType {
	if i <= 0 {
		return 0
	}
	r := i % res
	if r == 0 {
		return i
	}
	return i - r + res
}

// binArea returns the rectangle covered by slot i, or ba.bbox (restored
// to its un-pulled-in form) for the oversized slot -- bpEnum.h's
// bpBinArea.
func (ba *binArray) binArea(i int) georect.Rect {
	if i == ba.numBins {
		return georect.Rect{
			XBot: ba.bbox.XBot, YBot: ba.bbox.YBot,
			XTop: ba.bbox.XTop + 1, YTop: ba.bbox.YTop + 1,
		}
	}
	xi := i % ba.dimX
	yi := i / ba.dimX
	xbot := ba.bbox.XBot + ba.dx*georect.PosType(xi)
	ybot := ba.bbox.YBot + ba.dy*georect.PosType(yi)
	return georect.Rect{XBot: xbot, YBot: ybot, XTop: xbot + ba.dx, YTop: ybot + ba.dy}
}

// indexOf computes the slot index for h, matching bpBinAdd: an Element
// whose rectangle is dx-or-wider or dy-or-taller is oversized.
func (ba *binArray) indexOf(h *Header) int {
	if georect.Width(h.Rect) >= ba.dx || georect.Height(h.Rect) >= ba.dy {
		return ba.numBins
	}
	xi := int((h.Rect.XBot - ba.bbox.XBot) / ba.dx)
	yi := int((h.Rect.YBot - ba.bbox.YBot) / ba.dy)
	// A corner on the top or right edge of a bbox whose width or height
	// is a multiple of dx or dy divides out to one past the last
	// column or row; the last bin's closed area reaches that edge.
	if xi >= ba.dimX {
		xi = ba.dimX - 1
	}
	if yi >= ba.dimY {
		yi = ba.dimY - 1
	}
	return yi*ba.dimX + xi
}

// add places h into the appropriate bin, recursing into a nested
// binArray if the target slot has been subbinned -- bpBinAdd.
func (ba *binArray) add(h *Header) {
	i := ba.indexOf(h)
	slot := &ba.slots[i]
	if slot.isArray() {
		slot.sub.add(h)
		return
	}
	linkInto(&slot.list, h)
}

// buildBinArray runs the Sizer over elements and, if it approves,
// allocates a binArray of the chosen shape and adds every element to
// it. subbin controls whether an over-full bin created for the initial
// population should immediately be split again via subbinOverfull -- the
// original's bpBinArrayBuild only subbins when called with rebuild
// semantics, matching Plane.rebuild's use here. It returns nil if the
// Sizer refuses, leaving the caller to keep elements unbinned.
func buildBinArray(cfg Config, bbox georect.Rect, elements *Header, subbin bool) *binArray {
	result, ok := sizeBinArray(cfg, bbox, elements)
	if !ok {
		return nil
	}

	ba := newBinArray(bbox, result.dx, result.dy)
	for e := elements; e != nil; {
		next := e.listNext
		e.listNext = nil
		ba.add(e)
		e = next
	}

	if subbin {
		ba.subbinOverfull(cfg)
	}
	return ba
}

// subbinOverfull walks every direct bin in ba -- including the
// oversized bucket at index numBins -- and converts any whose list is
// at least cfg.MinPop long into a nested binArray, recursively -- the
// rebuild-time half of dynamic subbinning; the other half triggers
// lazily during enumeration (enum.go). The oversized bucket is rebuilt
// over ba's un-pulled-in bbox (ba.bbox with the top/right edges newBinArray
// took back added in again), the same rectangle bpBinArrayBuild's own
// "sub-bin oversized" block passes on -- not ba.bbox directly, which
// would otherwise get pulled in a second time by the nested newBinArray
// call and leave that subArray's grid one unit short of ba's actual
// span.
func (ba *binArray) subbinOverfull(cfg Config) {
	for i := 0; i < ba.numBins; i++ {
		slot := &ba.slots[i]
		if slot.isArray() || slot.list == nil {
			continue
		}
		if !listAtLeast(slot.list, cfg.MinPop) {
			continue
		}
		sub := buildBinArray(cfg, ba.binArea(i), slot.list, true)
		if sub != nil {
			slot.list = nil
			slot.sub = sub
		}
	}

	over := &ba.slots[ba.numBins]
	if !over.isArray() && over.list != nil && listAtLeast(over.list, cfg.MinPop) {
		full := georect.Rect{
			XBot: ba.bbox.XBot, YBot: ba.bbox.YBot,
			XTop: ba.bbox.XTop + 1, YTop: ba.bbox.YTop + 1,
		}
		sub := buildBinArray(cfg, full, over.list, true)
		if sub != nil {
			over.list = nil
			over.sub = sub
		}
	}
}

// unbuild collects every Element reachable from this (sub)tree into a
// single forward-linked list (via Header.listNext) and discards the
// tree structure -- bpBinArrayUnbuild. The returned Elements' back
// pointers are stale until they are re-added via add/linkInto.
func (ba *binArray) unbuild() *Header {
	var elements *Header
	for i := 0; i <= ba.numBins; i++ {
		slot := &ba.slots[i]
		var l *Header
		if slot.isArray() {
			l = slot.sub.unbuild()
		} else {
			l = slot.list
		}
		for l != nil {
			e := l
			l = e.listNext
			e.listNext = elements
			elements = e
		}
	}
	return elements
}
