package kernel

import (
	"bytes"
	"unsafe"

	"github.com/coregx/sigscan/sig"
)

// matchAt reports whether s matches data starting at index i. Wildcards
// always match; every concrete element must equal the byte at its offset.
// The caller guarantees i+s.Len() <= len(data).
func matchAt(data []byte, i int, s sig.Signature) bool {
	for k := 0; k < s.Len(); k++ {
		e := s.At(k)
		if !e.IsWildcard() && data[i+k] != e.Value() {
			return false
		}
	}
	return true
}

// scalarFindAlign1 finds the first match of s with a start index in
// [lo, hi), stepping candidates one byte at a time and using a byte-find
// primitive (bytes.IndexByte) to skip to the next occurrence of the first
// (concrete) signature byte, mirroring find_pattern<FastFirst, X1>.
func scalarFindAlign1(data []byte, s sig.Signature, lo, hi int) Result {
	if lo >= hi {
		return notFound
	}
	first := s.First().Value()
	i := lo
	for i < hi {
		rel := bytes.IndexByte(data[i:hi], first)
		if rel < 0 {
			return notFound
		}
		i += rel
		if matchAt(data, i, s) {
			return fromIndex(data, i)
		}
		i++
	}
	return notFound
}

// scalarFindAlign16 finds the first match of s with a start index in
// [lo, hi) restricted to addresses that are multiples of 16, checking the
// first byte directly rather than through a byte-find primitive, mirroring
// find_pattern<FastFirst, X16>.
func scalarFindAlign16(data []byte, s sig.Signature, lo, hi int) Result {
	if lo >= hi || len(data) == 0 {
		return notFound
	}
	base := uintptr(unsafe.Pointer(&data[0]))
	first := s.First().Value()
	i := int(NextBoundary(base+uintptr(lo), 16) - base)
	for i < hi {
		if data[i] == first && matchAt(data, i, s) {
			return fromIndex(data, i)
		}
		i += 16
	}
	return notFound
}

// scalarFind dispatches scalarFindAlign1/16 by alignment. It is the shared
// primitive used both as the standalone Scalar-FastFirst kernel and, inside
// the SIMD-tier kernels, as the head/tail fragment scanner.
func scalarFind(data []byte, s sig.Signature, alignment Alignment, lo, hi int) Result {
	switch alignment {
	case Align16:
		return scalarFindAlign16(data, s, lo, hi)
	default:
		return scalarFindAlign1(data, s, lo, hi)
	}
}

// ScalarFastFirst is the Scalar-FastFirst kernel: it needs no CPU feature
// support and is always available as the dispatcher's ultimate fallback,
// and as the kernel forced by NewScalarContext.
func ScalarFastFirst(data []byte, ctx *Context) Result {
	s := ctx.sig
	l := s.Len()
	if l > len(data) {
		return notFound
	}
	return scalarFind(data, s, ctx.alignment, 0, len(data)-l+1)
}
