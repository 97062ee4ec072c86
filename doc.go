// Package sigscan provides high-throughput byte-signature scanning over
// arbitrary memory ranges: given a pattern of fixed bytes interleaved with
// wildcard positions, it locates the first (or every) occurrence inside a
// range of raw bytes, and helps resolve relative addresses and indices
// computed off a match site.
//
// sigscan targets the same audience as libhat (its C++ namesake): binary
// analysis tools, runtime code patchers, game-modding layers and other
// low-level code that must find known machine-code or data templates
// inside a loaded process image.
//
// The engine is stateless and fully reentrant: a scan call executes
// synchronously on the calling thread and allocates no heap memory beyond
// what FindAllSlice needs for its output. Multiple goroutines may scan the
// same or disjoint ranges concurrently with no synchronization, provided
// the caller does not mutate a range while it is being scanned.
//
// Basic usage:
//
//	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
//	signature := sig.New([]sig.Element{sig.Byte(0x02), sig.Byte(0x03)})
//
//	result := sigscan.Find(data, signature, sigscan.Align1, sigscan.HintNone)
//	if result.Found() {
//	    fmt.Printf("matched at offset %d\n", ...)
//	}
//
// Wildcards match any byte:
//
//	// "AA ?? CC" matches {0xAA, anything, 0xCC}.
//	signature := sig.New([]sig.Element{sig.Byte(0xAA), sig.Wildcard(), sig.Byte(0xCC)})
//
// Signature literals written by humans (e.g. "48 8B ?? ?? C7") are best
// produced with package sigparse, which implements the grammar this module
// consumes. Resolving a signature against a loaded module's named section
// (".text", ".rdata", ...) is package procmod's job.
package sigscan

import (
	"github.com/coregx/sigscan/kernel"
	"github.com/coregx/sigscan/sig"
)

// Signature, Element, Alignment, Hint and Result are re-exported here as
// the primary types most callers interact with; sigparse imports package
// sig directly for the rest of its surface, the same way coregex's root
// package re-exports meta types.
type (
	Signature = sig.Signature
	Element   = sig.Element
	Alignment = kernel.Alignment
	Hint      = kernel.Hint
	Result    = kernel.Result
)

const (
	// Align1 admits every byte offset as a candidate match start.
	Align1 = kernel.Align1
	// Align16 admits only offsets whose runtime address is a multiple of 16.
	Align16 = kernel.Align16
)

const (
	// HintNone carries no domain knowledge about the scanned bytes.
	HintNone = kernel.HintNone
	// HintX86_64MachineCode asserts the scanned bytes are x86-64 instructions.
	HintX86_64MachineCode = kernel.HintX86_64MachineCode
)

// Byte and Wildcard construct Signature elements; NewSignature builds a
// Signature over them. Re-exported from package sig for convenience since
// most callers never need anything else from that package.
var (
	Byte         = sig.Byte
	Wildcard     = sig.Wildcard
	NewSignature = sig.New
)

// Read performs an unaligned load of an Int at result.Addr()+offset.
// Undefined if result is not Found.
func Read[Int kernel.Number](result Result, offset int) Int {
	return kernel.Read[Int](result, offset)
}

// Index reads an Int at offset and reinterprets it as an unsigned index
// into an array of Elem: read<Int>(offset) / sizeof(Elem).
func Index[Int kernel.Number, Elem any](result Result, offset int) uint64 {
	return kernel.Index[Int, Elem](result, offset)
}
