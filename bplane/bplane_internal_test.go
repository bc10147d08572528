package bplane

import (
	"testing"

	"github.com/grailbio/testutil/assert"

	"github.com/grailbio/bplane/georect"
)

// rectElem is the minimal Elem used by this package's white-box tests;
// the public API tests in bplane_test.go define their own.
type rectElem struct {
	Header
	name string
}

func newRectElem(name string, r georect.Rect) *rectElem {
	e := &rectElem{name: name}
	e.Rect = r
	return e
}

func TestHashIndexAddLookupDelete(t *testing.T) {
	idx := newHashIndex()
	a := newRectElem("a", georect.Rect{XBot: 0, YBot: 0, XTop: 10, YTop: 10})
	b := newRectElem("b", georect.Rect{XBot: 0, YBot: 0, XTop: 10, YTop: 10}) // duplicate rect
	c := newRectElem("c", georect.Rect{XBot: 5, YBot: 5, XTop: 15, YTop: 15})

	idx.add(&a.Header)
	idx.add(&b.Header)
	idx.add(&c.Header)

	assert.EQ(t, 3, idx.count)

	first := idx.lookupFirst(a.Rect)
	assert.EQ(t, true, first != nil)
	seen := map[*Header]bool{first: true}
	for h := idx.lookupNext(first); h != nil; h = idx.lookupNext(h) {
		seen[h] = true
	}
	assert.EQ(t, 2, len(seen))
	assert.EQ(t, false, seen[&c.Header])

	idx.delete(&a.Header)
	assert.EQ(t, 2, idx.count)
	assert.EQ(t, &b.Header, idx.lookupFirst(a.Rect))
}

func TestSizeBinArrayRefusesSmallPopulations(t *testing.T) {
	cfg := DefaultConfig()
	bbox := georect.Rect{XBot: 0, YBot: 0, XTop: 100, YTop: 100}
	var head *Header
	for i := 0; i < cfg.MinPop-1; i++ {
		e := newRectElem("x", georect.Rect{XBot: georect.PosType(i), YBot: 0, XTop: georect.PosType(i) + 1, YTop: 1})
		e.listNext = head
		head = &e.Header
	}
	_, ok := sizeBinArray(cfg, bbox, head)
	assert.EQ(t, false, ok)
}

func TestSizeBinArrayChoosesAtLeastTwoBinsPerAxis(t *testing.T) {
	cfg := Config{MinPop: 4, MinAvgPop: 1}
	bbox := georect.Rect{XBot: 0, YBot: 0, XTop: 100, YTop: 100}
	var head *Header
	for i := 0; i < 20; i++ {
		e := newRectElem("x", georect.Rect{XBot: georect.PosType(i), YBot: georect.PosType(i), XTop: georect.PosType(i) + 1, YTop: georect.PosType(i) + 1})
		e.listNext = head
		head = &e.Header
	}
	result, ok := sizeBinArray(cfg, bbox, head)
	assert.EQ(t, true, ok)
	assert.EQ(t, true, result.dx <= result.maxDX && result.dy <= result.maxDY)
}

func TestSubbinOverfullSplitsOversizedBucket(t *testing.T) {
	cfg := Config{MinPop: 4, MinAvgPop: 1}
	bbox := georect.Rect{XBot: 0, YBot: 0, XTop: 100, YTop: 100}
	// dx/dy of 20 makes every one of these width/height-25 rectangles
	// land in the oversized bucket (indexOf: width/height >= dx/dy),
	// while still being small enough relative to bbox for the rebuild
	// below to choose a real (non-refusing) bin shape for them.
	ba := newBinArray(bbox, 20, 20)
	var elems []*rectElem
	for i := 0; i < 8; i++ {
		e := newRectElem("x", georect.Rect{
			XBot: georect.PosType(i), YBot: georect.PosType(i),
			XTop: georect.PosType(i) + 25, YTop: georect.PosType(i) + 25,
		})
		elems = append(elems, e)
		ba.add(&e.Header)
	}

	over := &ba.slots[ba.numBins]
	assert.EQ(t, false, over.isArray())
	assert.EQ(t, true, over.list != nil)

	ba.subbinOverfull(cfg)

	over = &ba.slots[ba.numBins]
	assert.EQ(t, true, over.isArray())
	assert.EQ(t, true, over.list == nil)

	collected := listToSlice(over.sub.unbuild())
	assert.EQ(t, len(elems), len(collected))
}

func TestBinArrayAddAndUnbuildRoundTrip(t *testing.T) {
	bbox := georect.Rect{XBot: 0, YBot: 0, XTop: 100, YTop: 100}
	ba := newBinArray(bbox, 10, 10)

	var elems []*rectElem
	for i := 0; i < 30; i++ {
		e := newRectElem("x", georect.Rect{
			XBot: georect.PosType(i % 10 * 10), YBot: georect.PosType(i / 10 * 10),
			XTop: georect.PosType(i%10*10 + 1), YTop: georect.PosType(i/10*10 + 1),
		})
		elems = append(elems, e)
		ba.add(&e.Header)
	}

	collected := listToSlice(ba.unbuild())
	assert.EQ(t, len(elems), len(collected))
}
