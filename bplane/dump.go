package bplane

import (
	"fmt"
	"io"
)

// Dump writes a human-readable tree of p's bin structure to w, for
// interactive debugging -- grounded on bpDump.c's recursive bin-array
// printer. It is not meant to be machine-parsed.
func (p *Plane) Dump(w io.Writer) {
	fmt.Fprintf(w, "bplane: count=%d bbox=%v inbox=%d\n", p.count, p.bbox, listLen(p.inbox))
	if p.root == nil {
		fmt.Fprintln(w, "  (not binned)")
		return
	}
	p.root.dump(w, 1)
}

func (ba *binArray) dump(w io.Writer, depth int) {
	indent := make([]byte, depth*2)
	for i := range indent {
		indent[i] = ' '
	}
	fmt.Fprintf(w, "%sbinArray %dx%d bins=%d dx=%d dy=%d bbox=%v\n",
		indent, ba.dimX, ba.dimY, ba.numBins, ba.dx, ba.dy, ba.bbox)

	for i := 0; i <= ba.numBins; i++ {
		slot := &ba.slots[i]
		switch {
		case slot.isArray():
			label := fmt.Sprintf("%s  [%d] ->", indent, i)
			if i == ba.numBins {
				label = fmt.Sprintf("%s  [oversized] ->", indent)
			}
			fmt.Fprintln(w, label)
			slot.sub.dump(w, depth+2)
		case slot.list != nil:
			n := listLen(slot.list)
			if i == ba.numBins {
				fmt.Fprintf(w, "%s  [oversized] %d element(s)\n", indent, n)
			} else {
				fmt.Fprintf(w, "%s  [%d] %d element(s)\n", indent, i, n)
			}
		}
	}
}
