package kernel

import (
	"encoding/binary"
	"testing"
	"unsafe"
)

// TestResultRel checks testable property 6: result.rel(k) == p +
// sext32(p[k..k+4]) + k + 4, for both forward (positive) and backward
// (negative) displacements.
func TestResultRel(t *testing.T) {
	cases := []struct {
		name   string
		offset int
		disp   int32
	}{
		{"forward displacement", 3, 0x100},
		{"backward displacement", 3, -0x40},
		{"zero displacement", 0, 0},
		{"offset past start of buffer", 10, -5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := make([]byte, 64)
			binary.LittleEndian.PutUint32(data[c.offset:], uint32(c.disp))

			r := fromIndex(data, 0)
			got := r.Rel(c.offset)

			want := unsafe.Add(r.addr, c.offset+int(c.disp)+4)
			if got.addr != want {
				t.Fatalf("Rel(%d) addr = %v, want %v", c.offset, got.addr, want)
			}
		})
	}
}

func TestResultRelNotFound(t *testing.T) {
	r := notFound
	if got := r.Rel(4); got.Found() {
		t.Fatal("Rel on a not-found Result must stay not-found")
	}
}
