package bplane

import "github.com/grailbio/base/log"

// MatchMode selects how InitEnum filters Elements against the query
// rectangle.
type MatchMode int

const (
	// Equal enumerates Elements whose rectangle equals the query
	// rectangle exactly.
	Equal MatchMode = iota
	// Touch enumerates Elements whose rectangle intersects the query
	// rectangle, treating boundaries as closed (adjacency counts).
	Touch
	// Overlap enumerates Elements whose rectangle intersects the
	// query rectangle's strict interior (a shared edge or corner
	// alone does not count).
	Overlap
	// All enumerates every Element in the Plane; the query area is
	// ignored.
	All
)

func (m MatchMode) String() string {
	switch m {
	case Equal:
		return "Equal"
	case Touch:
		return "Touch"
	case Overlap:
		return "Overlap"
	case All:
		return "All"
	default:
		return "MatchMode(?)"
	}
}

// panicIfAddDuringEnum traps an Add attempted while any iterator is
// live on p, matching BPAdd's
// ASSERT(!bp->bp_enums, "BPAdd, attempted during active enumerations").
func panicIfAddDuringEnum(p *Plane) {
	if p.enums != nil {
		log.Panicf("bplane: Add called while an iterator is active on this Plane")
	}
}

// panicIfForeign traps a Delete of an Element that is in no Plane
// (never added, or already removed) -- the original's "deleting an
// instance not in this BPlane is a programming error". A not-yet-added
// or already-deleted Header always has a nil back-pointer, since Add
// and bin placement are the only things that set it. An Element that
// belongs to a different Plane has a back-pointer and is not caught.
func panicIfForeign(h *Header) {
	if h.listPrev == nil {
		log.Panicf("bplane: Delete called on an Element not currently in this Plane")
	}
}

// panicBadMatchMode traps InitEnum called with an out-of-range mode.
func panicBadMatchMode(m MatchMode) {
	log.Panicf("bplane: InitEnum called with invalid match mode %d", int(m))
}
