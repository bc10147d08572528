package bplane

import "github.com/grailbio/bplane/georect"

// Header is the ownership-neutral handle bplane threads through a
// client's record. A client type embeds Header as its first field and
// gets Elem for free via promoted methods.
//
// While an Element belongs to a Plane (from Add until Delete), the
// client must not mutate Rect and must not Add the same Element to a
// second Plane or to the same Plane twice.
type Header struct {
	hashNext *Header  // next Element in the same hash bucket
	listNext *Header  // next Element in whichever list (inbox or bin) currently holds this one
	listPrev **Header // address of the pointer field that points at this Header -- enables O(1) unlink
	Rect     georect.Rect

	elem Elem // the client record this Header is embedded in, set by Plane.Add
}

// bpHeader lets Header (and so anything embedding it) satisfy Elem.
func (h *Header) bpHeader() *Header { return h }

// Elem is implemented by any client record that embeds Header.
type Elem interface {
	bpHeader() *Header
}

// linkInto makes h the new head of the list whose head pointer lives at
// headp, maintaining the old head's back-pointer. This is the Go
// expression of bpBinAdd's list-splice and BPAdd's inbox-prepend, which
// both do the same three-pointer dance.
func linkInto(headp **Header, h *Header) {
	next := *headp
	h.listNext = next
	if next != nil {
		next.listPrev = &h.listNext
	}
	*headp = h
	h.listPrev = headp
}

// unlink splices h out of whatever list currently holds it in O(1),
// using its back-pointer -- the same trick as the original's
// `*e->e_linkp = e->e_link; if(e->e_link) e->e_link->e_linkp = e->e_linkp;`.
func unlink(h *Header) {
	*h.listPrev = h.listNext
	if h.listNext != nil {
		h.listNext.listPrev = h.listPrev
	}
	h.listNext = nil
	h.listPrev = nil
}

// listToSlice copies the singly-linked list starting at head (via
// listNext) into a slice, leaving the list unchanged; this package's
// tests use it to count and inspect a list.
func listToSlice(head *Header) []*Header {
	var out []*Header
	for e := head; e != nil; e = e.listNext {
		out = append(out, e)
	}
	return out
}
