package kernel

import (
	"math/bits"
	"unsafe"

	"github.com/coregx/sigscan/sig"
)

// buildTemplate materializes the value and mask vectors described in
// spec §4.D step 1: value[i] is the signature's concrete byte at i (zero in
// wildcard/out-of-range lanes), mask[i] is 0xFF in concrete lanes and 0x00
// in wildcard or out-of-range lanes. Both are exactly W bytes, built fresh
// on the stack for every call — per the "no caching across calls" design
// note, since the signature may differ between calls.
func buildTemplate(s sig.Signature, width int) (value, mask [64]byte) {
	l := s.Len()
	n := width
	if l < n {
		n = l
	}
	for i := 0; i < n; i++ {
		e := s.At(i)
		if !e.IsWildcard() {
			value[i] = e.Value()
			mask[i] = 0xFF
		}
	}
	return value, mask
}

// laneBitmap computes, for a width-byte window, a bit-per-lane map: bit i is
// set iff (chunk[i] XOR value[i]) AND mask[i] == 0, i.e. chunk[i] agrees with
// signature element i. A window with every bit set matches the (possibly
// truncated to width) head of the signature; simdFind evaluates one such
// window per candidate start lane to build its candidate bitmap. This
// is the portable stand-in for the vector XOR/AND/PMOVMSKB sequence a real
// SSE4.1/AVX2/AVX-512 kernel would run in hardware: Go has no compiler
// intrinsics for those ISAs, so the comparison itself runs as scalar Go,
// while the surrounding head/body/tail structure, stride masking and CPU
// dispatch below are the real, faithfully-ported algorithm.
func laneBitmap(chunk, value, mask []byte, width int) uint64 {
	var bm uint64
	for i := 0; i < width; i++ {
		if (chunk[i]^value[i])&mask[i] == 0 {
			bm |= uint64(1) << uint(i)
		}
	}
	return bm
}

// simdFind runs the shared SIMD-tier algorithm (spec §4.D) for a vector
// width of `width` bytes (16 for SSE4.1, 32 for AVX2, 64 for AVX-512):
// scalar head fragment, W-byte-aligned body with masked lane comparison
// (and, for Align16, stride masking of the lane bitmap), scalar tail
// fragment. Tie-breaking is lowest-address-first throughout, since the head
// fragment is searched before the body, lanes are consumed low-to-high
// within each vector via TrailingZeros64, and vectors are visited in
// ascending address order.
func simdFind(data []byte, ctx *Context, width int) Result {
	n := len(data)
	s := ctx.sig
	l := s.Len()
	if l > n {
		return notFound
	}
	scanLimit := n - l + 1

	value, mask := buildTemplate(s, width)

	base := uintptr(unsafe.Pointer(&data[0]))
	bodyStart := int(NextBoundary(base, uintptr(width)) - base)
	if bodyStart > scanLimit {
		bodyStart = scanLimit
	}

	// Head fragment: candidates in [0, bodyStart).
	if r := scalarFind(data, s, ctx.alignment, 0, bodyStart); r.Found() {
		return r
	}

	var strideMask uint64 = ^uint64(0)
	if ctx.alignment == Align16 {
		strideMask = StrideMask[uint64](16)
	}

	hw := min(l, width)
	full := ^uint64(0) >> uint(64-hw)

	pos := bodyStart
	for pos+width <= n && pos < scanLimit {
		var bm uint64
		for lane := 0; lane < width && pos+lane < scanLimit; lane++ {
			if laneBitmap(data[pos+lane:pos+lane+hw], value[:hw], mask[:hw], hw) == full {
				bm |= uint64(1) << uint(lane)
			}
		}
		bm &= strideMask
		for bm != 0 {
			lane := bits.TrailingZeros64(bm)
			bm &= bm - 1
			start := pos + lane
			if start >= scanLimit {
				break
			}
			if l <= width {
				return fromIndex(data, start)
			}
			if matchAt(data, start, s) {
				return fromIndex(data, start)
			}
		}
		pos += width
	}

	// Tail fragment: candidates in [pos, scanLimit) that didn't fill a
	// whole vector.
	return scalarFind(data, s, ctx.alignment, pos, scanLimit)
}

// SSE41 is the SSE4.1-tier kernel: 16-byte vector width.
func SSE41(data []byte, ctx *Context) Result {
	return simdFind(data, ctx, 16)
}

// AVX2 is the AVX2-tier kernel: 32-byte vector width.
func AVX2(data []byte, ctx *Context) Result {
	return simdFind(data, ctx, 32)
}

// AVX512 is the AVX-512-tier kernel: 64-byte vector width.
func AVX512(data []byte, ctx *Context) Result {
	return simdFind(data, ctx, 64)
}
