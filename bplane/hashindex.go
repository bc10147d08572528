package bplane

import "github.com/grailbio/bplane/georect"

// hashIndex maps a canonical rectangle to the Elements stored with
// exactly that rectangle, for EQUAL queries. It mirrors the original's
// IHashTable usage (bpMain.c: IHashAdd/IHashDelete on every Add/Delete,
// IHashLookUp/IHashLookUpNext only consulted for BPE_EQUAL), but is
// purpose-built for a fixed 4-word key instead of a generic hash table.
//
// Buckets are chained via Header.hashNext. Two Elements with different
// rectangles can land in the same bucket (a hash collision); lookups
// always re-check Rect equality, same as the original's key-equality
// callback (IHash4WordKeyEq).
type hashIndex struct {
	buckets map[uint64]*Header
	count   int
}

func newHashIndex() *hashIndex {
	return &hashIndex{buckets: make(map[uint64]*Header)}
}

// add prepends h to its bucket. Order within a bucket is therefore
// most-recently-added-first; that is a fixed, self-consistent order
// for EQUAL to iterate, not a promise to match the original's physical
// layout.
func (idx *hashIndex) add(h *Header) {
	key := hashKey(h.Rect)
	h.hashNext = idx.buckets[key]
	idx.buckets[key] = h
	idx.count++
}

// delete removes h from its bucket. Bucket chains are expected to stay
// short (only true rectangle duplicates or rare hash collisions grow
// them beyond length one), so a linear scan is used rather than a
// second back-pointer field.
func (idx *hashIndex) delete(h *Header) {
	key := hashKey(h.Rect)
	// Map values aren't addressable in Go, so walk with an explicit
	// previous pointer instead of taking &idx.buckets[key].
	cur := idx.buckets[key]
	var prev *Header
	for cur != nil {
		if cur == h {
			if prev == nil {
				idx.buckets[key] = cur.hashNext
			} else {
				prev.hashNext = cur.hashNext
			}
			cur.hashNext = nil
			idx.count--
			return
		}
		prev = cur
		cur = cur.hashNext
	}
}

// lookupFirst returns the first Element whose rectangle equals r, or
// nil if none.
func (idx *hashIndex) lookupFirst(r georect.Rect) *Header {
	for cur := idx.buckets[hashKey(r)]; cur != nil; cur = cur.hashNext {
		if cur.Rect == r {
			return cur
		}
	}
	return nil
}

// lookupNext returns the next Element in h's bucket whose rectangle
// equals h.Rect, continuing past any colliding-but-different-rect
// Elements in between (mirroring IHashLookUpNext).
func (idx *hashIndex) lookupNext(h *Header) *Header {
	for cur := h.hashNext; cur != nil; cur = cur.hashNext {
		if cur.Rect == h.Rect {
			return cur
		}
	}
	return nil
}
