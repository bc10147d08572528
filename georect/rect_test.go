package georect

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want Rect
	}{
		{Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}},
		{Rect{10, 10, 0, 0}, Rect{0, 0, 10, 10}},
		{Rect{10, 0, 0, 10}, Rect{0, 0, 10, 10}},
		{Rect{5, 5, 5, 5}, Rect{5, 5, 5, 5}},
	}
	for _, test := range tests {
		got := Canonical(test.in)
		if got != test.want {
			t.Errorf("Canonical(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}

// TestTouchesContractedVsTouches documents the identity bplane's OVERLAP
// matching relies on: touching a one-unit-contracted rectangle is the
// same as a strict-interior ("more than a shared edge or corner") test
// against the uncontracted one, for integer coordinates.
func TestTouchesContractedVsTouches(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{10, 10, 20, 20} // shares only corner (10,10) with a
	c := Rect{5, 5, 15, 15}   // shares interior area with a

	if !Touches(a, b) {
		t.Errorf("Touches(%v, %v) = false, want true (shared corner)", a, b)
	}
	if Touches(a, Expand(b, -1)) {
		t.Errorf("Touches(%v, Expand(%v, -1)) = true, want false (corner only, no shared interior)", a, b)
	}
	if !Touches(a, Expand(c, -1)) {
		t.Errorf("Touches(%v, Expand(%v, -1)) = false, want true (shared interior)", a, c)
	}
}

func TestSurrounds(t *testing.T) {
	outer := Rect{0, 0, 100, 100}
	inner := Rect{10, 10, 20, 20}
	if !Surrounds(outer, inner) {
		t.Errorf("Surrounds(%v, %v) = false, want true", outer, inner)
	}
	if Surrounds(inner, outer) {
		t.Errorf("Surrounds(%v, %v) = true, want false", inner, outer)
	}
	// Boundary-touching counts as surrounding.
	if !Surrounds(outer, outer) {
		t.Errorf("Surrounds(%v, %v) = false, want true (identical rects)", outer, outer)
	}
}

func TestIncludeInBBox(t *testing.T) {
	bbox := Rect{5, 5, 5, 5}
	IncludeInBBox(Rect{0, 0, 1, 1}, &bbox)
	IncludeInBBox(Rect{20, 20, 21, 21}, &bbox)
	want := Rect{0, 0, 21, 21}
	if bbox != want {
		t.Errorf("bbox = %v, want %v", bbox, want)
	}
}

func TestIsNull(t *testing.T) {
	if IsNull(Rect{0, 0, 10, 10}) {
		t.Errorf("IsNull(canonical rect) = true, want false")
	}
	if !IsNull(Inverted) {
		t.Errorf("IsNull(Inverted) = false, want true")
	}
}
