package bplane

import (
	"github.com/grailbio/base/log"

	"github.com/grailbio/bplane/georect"
)

// Plane is a spatial index over axis-aligned rectangles. The zero value
// is not usable; construct one with New or NewWithConfig.
type Plane struct {
	cfg Config

	bbox      georect.Rect
	bboxExact bool
	count     int

	enums *Enum // head of the active-iterator list; non-nil forbids Add

	hash *hashIndex

	inbox *Header // Elements not yet absorbed into the bin tree

	binArea georect.Rect
	root    *binArray // nil until the Plane has been binned
}

// New returns an empty Plane configured with DefaultConfig.
func New() *Plane {
	p, err := NewWithConfig(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid; a failure here is a bug in
		// this package, not a caller error.
		log.Panicf("bplane: DefaultConfig unexpectedly invalid: %v", err)
	}
	return p
}

// NewWithConfig returns an empty Plane using cfg, or an error if cfg
// fails validation.
func NewWithConfig(cfg Config) (*Plane, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Plane{
		cfg:       cfg,
		bbox:      georect.NullRect,
		bboxExact: true,
		hash:      newHashIndex(),
	}, nil
}

// Close releases p. p must be empty (Count() == 0); this mirrors
// BPFree's ASSERT(bp->bp_count==0,...).
func (p *Plane) Close() {
	if p.count != 0 {
		log.Panicf("bplane: Close called on a non-empty Plane (%d elements remain)", p.count)
	}
}

// Count returns the number of Elements currently in p.
func (p *Plane) Count() int { return p.count }

// Add indexes e in p. e.Rect must already be canonical. Add
// panics if any iterator is currently live on p.
func (p *Plane) Add(e Elem) {
	panicIfAddDuringEnum(p)

	h := e.bpHeader()
	if !georect.IsCanonical(h.Rect) {
		log.Panicf("bplane: Add called with a non-canonical rectangle %+v", h.Rect)
	}
	h.elem = e

	p.count++
	p.hash.add(h)

	if p.count == 1 {
		p.bbox = h.Rect
	} else {
		georect.IncludeInBBox(h.Rect, &p.bbox)
	}

	if p.root != nil && georect.Surrounds(p.binArea, h.Rect) {
		p.root.add(h)
		return
	}

	linkInto(&p.inbox, h)
}

// Delete removes e from p. Deleting from an empty Plane is a soft
// error (logged, not trapped), matching BPDelete's handling of
// bp_count==0; deleting an Element that is in no Plane (never added,
// or already removed) is a contract violation and panics. An Element
// that belongs to a different Plane is not detected.
func (p *Plane) Delete(e Elem) {
	h := e.bpHeader()

	if p.count == 0 {
		log.Error.Printf("bplane: Delete called on an empty Plane")
		return
	}
	panicIfForeign(h)

	p.count--

	if p.bboxExact && (p.bbox.XBot == h.Rect.XBot || p.bbox.XTop == h.Rect.XTop ||
		p.bbox.YBot == h.Rect.YBot || p.bbox.YTop == h.Rect.YTop) {
		p.bboxExact = false
	}

	for en := p.enums; en != nil; en = en.next {
		if en.nextElement != h {
			continue
		}
		if en.match == Equal {
			en.nextElement = p.hash.lookupNext(h)
		} else {
			en.nextElement = h.listNext
		}
		// The successor may not match, or may be nil at the end of a
		// bin's list; advance moves on to the next matching Element.
		en.advance()
	}

	p.hash.delete(h)
	unlink(h)
}

// BBox returns p's current bounding box, or the Inverted sentinel if p
// is empty. If a prior Delete removed an edge-defining Element, the
// exact box is recomputed here via one internal ALL enumeration rather
// than eagerly on every Delete -- matching BPBBox's laziness.
func (p *Plane) BBox() georect.Rect {
	if p.count == 0 {
		return georect.Inverted
	}
	if p.bboxExact {
		return p.bbox
	}

	var e Enum
	e.initEnum(p, georect.Rect{}, All, "BPlane.BBox")
	first, ok := e.Next()
	if !ok {
		// Unreachable: count > 0 implies at least one Element exists.
		log.Panicf("bplane: BBox found no Elements despite Count()=%d", p.count)
	}
	bbox := first.bpHeader().Rect
	for elem, ok := e.Next(); ok; elem, ok = e.Next() {
		georect.IncludeInBBox(elem.bpHeader().Rect, &bbox)
	}
	e.Term()

	p.bbox = bbox
	p.bboxExact = true
	return p.bbox
}

// rebuild dissolves any existing bin tree, merges it with the inbox,
// and rebuilds, growing the covered area so that future Adds don't
// immediately force another rebuild -- bpBinsUpdate.
func (p *Plane) rebuild() {
	if !listAtLeast(p.inbox, p.cfg.MinPop) {
		return
	}

	wasBinned := p.root != nil
	elements := p.inbox
	if wasBinned {
		dissolved := p.root.unbuild()
		elements = concatLists(dissolved, elements)
	}

	bbox := boundingBoxOf(elements)
	if wasBinned {
		dx := georect.Width(bbox) / 2
		dy := georect.Height(bbox) / 2
		bbox.XBot -= dx
		bbox.YBot -= dy
		bbox.XTop += dx
		bbox.YTop += dy
	}

	root := buildBinArray(p.cfg, bbox, elements, true)
	if root != nil {
		p.inbox = nil
		p.root = root
		p.binArea = bbox
	} else {
		// Sizer refused even after merging; keep everything in the
		// inbox rather than losing track of it. The dissolved tree is
		// dropped, and every Element is relinked so that its
		// back-pointer names its place in the inbox.
		p.root = nil
		p.inbox = nil
		for e := elements; e != nil; {
			next := e.listNext
			linkInto(&p.inbox, e)
			e = next
		}
	}
}

// listAtLeast reports whether the singly-linked list starting at head
// has at least n elements, without counting past n -- bpListExceedsQ.
func listAtLeast(head *Header, n int) bool {
	for e := head; e != nil && n > 0; e = e.listNext {
		n--
	}
	return n == 0
}

// concatLists appends b after a, both singly-linked via listNext.
func concatLists(a, b *Header) *Header {
	if a == nil {
		return b
	}
	tail := a
	for tail.listNext != nil {
		tail = tail.listNext
	}
	tail.listNext = b
	return a
}

// boundingBoxOf computes the tight bounding box of a non-empty
// singly-linked list.
func boundingBoxOf(head *Header) georect.Rect {
	bbox := head.Rect
	for e := head; e != nil; e = e.listNext {
		georect.IncludeInBBox(e.Rect, &bbox)
	}
	return bbox
}
