// Package experimental holds scan-engine helpers whose ABI assumptions are
// narrower than the core engine's: right now, a vtable locator that walks
// a class's RTTI metadata back to its vtable address. Unlike package
// sigscan's core, which works on any byte range regardless of what it
// represents, these helpers assume a specific compiler's object layout
// and a specific pointer width, and should be treated as a starting point
// to adapt rather than a general-purpose tool.
package experimental

import (
	"encoding/binary"
	"errors"

	"github.com/coregx/sigscan"
	"github.com/coregx/sigscan/internal/conv"
)

// CompilerType selects which C++ RTTI object layout FindVTable assumes.
type CompilerType int

const (
	// MSVC assumes the RTTICompleteObjectLocator/TypeDescriptor layout
	// emitted by Microsoft's compiler, with absolute (not image-relative)
	// pointers — i.e. 32-bit binaries, or 64-bit binaries built without the
	// compact RTTI pointer encoding introduced around VS2015.
	MSVC CompilerType = iota
	// GNU assumes the Itanium C++ ABI's std::type_info layout, as emitted
	// by GCC and Clang.
	GNU
)

// ErrNameNotFound indicates the mangled class name string itself was not
// found in data.
var ErrNameNotFound = errors.New("experimental: class name not found")

// ErrDescriptorNotFound indicates the name was found but nothing in data
// points at the RTTI descriptor (TypeDescriptor/type_info) that owns it —
// or, for GNU, that nothing in data points at the name string itself.
var ErrDescriptorNotFound = errors.New("experimental: no pointer to the RTTI descriptor found")

// ErrLocatorNotFound indicates the RTTI descriptor was found but nothing
// in data points at it in the way FindVTable expects (the
// CompleteObjectLocator, for MSVC; the vtable's typeinfo slot, for GNU).
var ErrLocatorNotFound = errors.New("experimental: no pointer to the RTTI locator found")

// msvcNameOffset is sizeof(void*)*2: a TypeDescriptor is { vfptr, spare,
// name[] }, so its address sits two pointers before its name field.
const msvcNameOffset = 2

// gnuNameOffset is sizeof(void*): an Itanium type_info is { vfptr,
// name_ptr, ... }, so its address sits one pointer before its name field.
const gnuNameOffset = 1

// FindVTable locates the vtable for a C++ class by its decorated (MSVC) or
// mangled (GNU) name, searching data for the name string (for GNU, then for
// the type_info's pointer to that string), then for a pointer to its RTTI
// descriptor, then for a pointer to that locator — the
// word immediately after that last pointer is the vtable's first entry,
// so the match address plus pointerSize is the vtable address.
//
// data must cover every section the RTTI chain can reference (typically
// .rdata and .data together); pointerSize must be 4 or 8 and match the
// target binary's bitness. This only handles single, unambiguous
// inheritance chains: a class with multiple vtables (multiple inheritance)
// returns whichever the byte-level search finds first.
//
// For MSVC this treats "a pointer to the field that held pTypeDescriptor"
// as interchangeable with "a pointer to the CompleteObjectLocator" — true
// whenever a vtable's [-1] slot stores the address of that field rather
// than the COL's own base address, which is the layout this was checked
// against. A COL whose pTypeDescriptor isn't aliasable this way (e.g. one
// using the 64-bit image-relative encoding) will not resolve correctly.
func FindVTable(data []byte, className string, compiler CompilerType, pointerSize int) (addr int, err error) {
	if pointerSize != 4 && pointerSize != 8 {
		return 0, errors.New("experimental: pointerSize must be 4 or 8")
	}

	nameSig := literalSignature([]byte(className))
	nameHit := sigscan.Find(data, nameSig, sigscan.Align1, sigscan.HintNone)
	if !nameHit.Found() {
		return 0, ErrNameNotFound
	}
	nameAddr := sigscan.OffsetInSlice(data, nameHit)

	nameOffset := msvcNameOffset
	if compiler == GNU {
		nameOffset = gnuNameOffset
		// A type_info holds a pointer to the name string rather than the
		// string itself: its name field is wherever that pointer is stored.
		namePtrHit, err := findPointerTo(data, nameAddr, pointerSize)
		if err != nil {
			return 0, ErrDescriptorNotFound
		}
		nameAddr = namePtrHit
	}
	descriptorAddr := nameAddr - nameOffset*pointerSize
	if descriptorAddr < 0 {
		return 0, ErrDescriptorNotFound
	}

	descriptorHit, err := findPointerTo(data, descriptorAddr, pointerSize)
	if err != nil {
		return 0, ErrDescriptorNotFound
	}

	if compiler == MSVC {
		// The TypeDescriptor pointer we just found is the
		// CompleteObjectLocator's pTypeDescriptor field; find the pointer
		// to the locator itself (the vtable's [-1] slot).
		locatorHit, err := findPointerTo(data, descriptorHit, pointerSize)
		if err != nil {
			return 0, ErrLocatorNotFound
		}
		return locatorHit + pointerSize, nil
	}

	// GNU vtables point directly at the type_info object with no
	// intervening locator: the pointer we already found IS the vtable's
	// typeinfo slot.
	return descriptorHit + pointerSize, nil
}

// findPointerTo scans data for the first pointer-sized, little-endian
// encoding of target, returning its offset.
func findPointerTo(data []byte, target int, pointerSize int) (int, error) {
	buf := make([]byte, pointerSize)
	if pointerSize == 8 {
		binary.LittleEndian.PutUint64(buf, uint64(target))
	} else {
		binary.LittleEndian.PutUint32(buf, conv.IntToUint32(target))
	}
	sig := literalSignature(buf)
	hit := sigscan.Find(data, sig, sigscan.Align1, sigscan.HintNone)
	if !hit.Found() {
		return 0, errors.New("experimental: pointer not found")
	}
	return sigscan.OffsetInSlice(data, hit), nil
}

func literalSignature(lit []byte) sigscan.Signature {
	elems := make([]sigscan.Element, len(lit))
	for i, b := range lit {
		elems[i] = sigscan.Byte(b)
	}
	return sigscan.NewSignature(elems)
}
