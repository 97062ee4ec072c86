package kernel

import (
	"testing"
	"unsafe"
)

// align16Buffer returns a size-byte slice whose backing array starts at a
// 16-byte-aligned address, by over-allocating and trimming the head. Tests
// that assert Align16 semantics need a deterministic base address; a plain
// make([]byte, n) gives no such guarantee.
func align16Buffer(t *testing.T, size int) []byte {
	t.Helper()
	buf := make([]byte, size+16)
	base := uintptr(unsafe.Pointer(&buf[0]))
	off := int(NextBoundary(base, 16) - base)
	return buf[off : off+size : off+size]
}
