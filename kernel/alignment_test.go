package kernel

import "testing"

func TestNextPrevBoundaryIdentityAtStride1(t *testing.T) {
	for _, p := range []uintptr{0, 1, 7, 4096, 0xDEADBEEF} {
		if got := NextBoundary(p, 1); got != p {
			t.Errorf("NextBoundary(%d, 1) = %d, want %d", p, got, p)
		}
		if got := PrevBoundary(p, 1); got != p {
			t.Errorf("PrevBoundary(%d, 1) = %d, want %d", p, got, p)
		}
	}
}

func TestNextBoundary16(t *testing.T) {
	cases := []struct{ p, want uintptr }{
		{0, 0}, {1, 16}, {15, 16}, {16, 16}, {17, 32}, {31, 32}, {32, 32},
	}
	for _, c := range cases {
		if got := NextBoundary(c.p, 16); got != c.want {
			t.Errorf("NextBoundary(%d, 16) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestPrevBoundary16(t *testing.T) {
	cases := []struct{ p, want uintptr }{
		{0, 0}, {1, 0}, {15, 0}, {16, 16}, {17, 16}, {31, 16}, {32, 32},
	}
	for _, c := range cases {
		if got := PrevBoundary(c.p, 16); got != c.want {
			t.Errorf("PrevBoundary(%d, 16) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestStrideMaskStride1IsAllOnes(t *testing.T) {
	if got := StrideMask[uint16](1); got != 0xFFFF {
		t.Errorf("StrideMask[uint16](1) = %#x, want 0xFFFF", got)
	}
	if got := StrideMask[uint64](1); got != ^uint64(0) {
		t.Errorf("StrideMask[uint64](1) = %#x, want all-ones", got)
	}
}

func TestStrideMask16(t *testing.T) {
	got := StrideMask[uint64](16)
	for i := 0; i < 64; i++ {
		want := i%16 == 0
		set := got&(uint64(1)<<uint(i)) != 0
		if set != want {
			t.Errorf("StrideMask[uint64](16) bit %d = %v, want %v", i, set, want)
		}
	}
}

func TestStrideMask32Width(t *testing.T) {
	got := StrideMask[uint32](16)
	if got != 0x00010001 {
		t.Errorf("StrideMask[uint32](16) = %#x, want 0x00010001", got)
	}
}
