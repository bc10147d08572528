package bplane

import (
	"github.com/grailbio/base/simd"

	"github.com/grailbio/bplane/georect"
)

// enumState names the four phases of an Enum: the bin tree, then the
// inbox, then done -- or, for Equal only, the hash chain alone, then
// done. BINS_INSIDE/INBOX_INSIDE are folded into frame.inside here
// rather than kept as separate states, since Go's sum-typed binSlot
// already removes the reason the original needed a parallel state bit.
type enumState int

const (
	stateBins enumState = iota
	stateInbox
	stateHash
	stateDone
)

// frame is one level of the enumerator's descent into the bin tree:
// the binArray being scanned, the slot currently being examined, and
// whether that binArray is already known to be fully inside the search
// area (in which case no per-element match check is needed).
type frame struct {
	ba      *binArray
	i       int // slot index currently being scanned; -1 before the first
	inside  bool
	rejects int // non-matching Elements seen in the current (list) slot
}

// Enum walks the Elements of a Plane matching a query area and
// MatchMode. An Enum must be terminated with Term once it is no longer
// needed, even if Next was never called to exhaustion, so the owning
// Plane can accept Adds again.
type Enum struct {
	plane *Plane
	next  *Enum // singly linked into Plane.enums

	id    string
	area  georect.Rect // canonical query rect, as given by the caller
	match MatchMode

	// srch is the rectangle actually used for every containment,
	// threshold and per-Element match decision below InitEnum: equal
	// to area for Touch/All, contracted by one unit on every side for
	// Overlap (bpEnumInit's GEO_EXPAND(-1) on bpe_srchArea). Keeping a
	// single post-contraction rectangle, rather than contracting only
	// at the final match check, means every frame's "is this bin fully
	// inside the query" decision sees the same area the match check
	// does.
	srch                   georect.Rect
	subBinMinX, subBinMinY georect.PosType // Touch/Overlap only

	state enumState
	stack []frame

	nextElement *Header
}

// InitEnum begins an enumeration of p's Elements against area under
// mode. id is a short human-readable label stored on this iterator; it
// has no effect on matching, and neither Stat nor Dump reports it.
//
// Equal queries do not touch the bin tree at all: they go straight to
// the hash chain (bpEnumInit's BPE_EQUAL fast path).
func InitEnum(p *Plane, area georect.Rect, mode MatchMode, id string) *Enum {
	e := &Enum{}
	e.initEnum(p, area, mode, id)
	return e
}

func (e *Enum) initEnum(p *Plane, area georect.Rect, mode MatchMode, id string) {
	switch mode {
	case Equal, Touch, Overlap, All:
	default:
		panicBadMatchMode(mode)
	}

	*e = Enum{
		plane: p,
		next:  p.enums,
		id:    id,
		area:  georect.Canonical(area),
		match: mode,
	}
	p.enums = e

	if mode == Equal {
		e.state = stateHash
		e.nextElement = p.hash.lookupFirst(e.area)
		e.advance()
		return
	}

	e.srch = e.area
	if mode == Overlap {
		e.srch = georect.Expand(e.srch, -1)
	}
	if mode == Touch || mode == Overlap {
		e.subBinMinX = georect.Width(e.srch) / 2
		e.subBinMinY = georect.Height(e.srch) / 2
	}

	p.rebuild()

	e.state = stateBins
	if p.root != nil {
		// One machine word's worth of frames covers most bin trees
		// without a reallocation; deeply subbinned trees just grow
		// the slice past it like any other append.
		e.stack = make([]frame, 0, simd.BitsPerWord)
		e.pushRoot(p.root)
	}
	e.advance()
}

// pushRoot pushes ba as the outermost frame, marking it "inside" when
// the search rectangle fully surrounds it so that per-Element filtering
// can be skipped for every Element beneath it -- and for an All query,
// which ignores area altogether.
func (e *Enum) pushRoot(ba *binArray) {
	inside := e.match == All || georect.Surrounds(e.srch, ba.bbox)
	e.push(ba, inside)
}

func (e *Enum) push(ba *binArray, inside bool) {
	e.stack = append(e.stack, frame{ba: ba, i: -1, inside: inside})
}

func (e *Enum) top() *frame { return &e.stack[len(e.stack)-1] }

func (e *Enum) pop() { e.stack = e.stack[:len(e.stack)-1] }

// Next returns the next matching Element, or (nil, false) once the
// enumeration is exhausted.
func (e *Enum) Next() (Elem, bool) {
	if e.nextElement == nil {
		return nil, false
	}
	h := e.nextElement
	e.nextElement = e.listNextForState(h)
	e.advance()
	return h.elem, true
}

// advance ensures nextElement either names a matching Element or is
// nil, walking bins/inbox/hash forward as needed. It is idempotent:
// calling it again when nextElement is already valid does nothing
// (the inner loops only run while nextElement == nil).
func (e *Enum) advance() {
	for e.nextElement == nil {
		switch e.state {
		case stateBins:
			if !e.nextBin() {
				e.state = stateInbox
				e.nextElement = e.plane.inbox
			}
		case stateInbox:
			e.state = stateDone
		case stateHash, stateDone:
			return
		}
	}
	if !e.matches(e.nextElement) {
		if f := e.currentFrame(); f != nil {
			f.rejects++
		}
		e.nextElement = e.listNextForState(e.nextElement)
		e.advance()
	}
}

func (e *Enum) listNextForState(h *Header) *Header {
	if e.state == stateHash {
		return e.plane.hash.lookupNext(h)
	}
	return h.listNext
}

func (e *Enum) matches(h *Header) bool {
	if e.state != stateHash {
		if f := e.currentFrame(); f != nil && f.inside {
			return true
		}
	}
	switch e.match {
	case Equal:
		return georect.Equal(h.Rect, e.area)
	case All:
		return true
	case Touch, Overlap:
		// Touch and Overlap share the same closed-boundary test against
		// srch; Overlap's strict-interior behavior comes entirely from
		// srch having already been contracted by one unit in initEnum.
		return georect.Touches(h.Rect, e.srch)
	default:
		return false
	}
}

// currentFrame reports whether nextElement came from a bin list (as
// opposed to the inbox), and if so returns that frame, so matches can
// skip the check for frames already known to be inside the search
// area. Once state has moved past stateBins this always returns nil.
func (e *Enum) currentFrame() *frame {
	if e.state != stateBins || len(e.stack) == 0 {
		return nil
	}
	return e.top()
}

// Term ends the enumeration, unlinking e from its Plane's active-
// iterator list. Terminating an Enum more than once, or terminating
// one that has already run to exhaustion, is harmless.
func (e *Enum) Term() {
	if e.plane == nil {
		return
	}
	pp := &e.plane.enums
	for *pp != nil {
		if *pp == e {
			*pp = e.next
			break
		}
		pp = &(*pp).next
	}
	e.state = stateDone
	e.nextElement = nil
	e.stack = nil
	e.plane = nil
}

// nextBin advances to the next non-empty bin within the bin tree,
// descending into nested (subbinned) binArrays and popping back out
// when a binArray is exhausted. It returns false once the entire bin
// tree has been walked (the caller should then fall through to the
// inbox).
func (e *Enum) nextBin() bool {
	for len(e.stack) > 0 {
		f := e.top()
		e.maybeSubbin(f)

		f.i++
		for f.i <= f.ba.numBins {
			inside := f.inside || e.match == All

			// Elements are binned by their bottom-left corner and are
			// narrower than dx and shorter than dy, so they can reach
			// past a regular bin's top and right edges by less than one
			// bin. The oversized slot is always visited.
			if !inside && f.i < f.ba.numBins {
				area := f.ba.binArea(f.i)
				area.XTop += f.ba.dx
				area.YTop += f.ba.dy
				if !georect.Touches(area, e.srch) {
					f.i++
					continue
				}
			}

			slot := &f.ba.slots[f.i]
			if slot.isArray() {
				sub := slot.sub
				subInside := inside || georect.Surrounds(e.srch, sub.bbox)
				e.push(sub, subInside)
				return true
			}
			if slot.list != nil {
				e.nextElement = slot.list
				return true
			}
			f.i++
		}

		e.pop()
	}
	return false
}

// maybeSubbin converts the bin f just finished scanning into a nested
// binArray if it rejected at least MinPop Elements -- the traversal-
// time half of dynamic subbinning. A bin that keeps rejecting most of
// what it's asked about is too coarse for the queries actually being
// run against it; splitting it trades one more level of tree depth for
// fewer wasted match checks on future queries.
//
// A regular bin is only worth subbinning when it is itself at least as
// wide or tall as subBinMinX/subBinMinY: a bin already finer than half
// the search rectangle's extent can't be filtered any further by it, so
// splitting it would just add tree depth with nothing to show for it.
// The oversized slot is exempt from that check and subbins on the
// reject count alone, since an overflow bucket can hold Elements far
// bigger than any regular bin regardless of how fine the grid is.
func (e *Enum) maybeSubbin(f *frame) {
	if f.rejects < e.plane.cfg.MinPop || f.i < 0 || f.i > f.ba.numBins {
		f.rejects = 0
		return
	}
	oversized := f.i == f.ba.numBins
	if !oversized && f.ba.dx < e.subBinMinX && f.ba.dy < e.subBinMinY {
		f.rejects = 0
		return
	}
	slot := &f.ba.slots[f.i]
	if !slot.isArray() && slot.list != nil {
		if sub := buildBinArray(e.plane.cfg, f.ba.binArea(f.i), slot.list, false); sub != nil {
			slot.list = nil
			slot.sub = sub
		}
	}
	f.rejects = 0
}
