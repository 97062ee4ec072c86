package kernel

import "unsafe"

// Number is the set of fixed-width integer types Result.Read and Index can
// load. Restricting it to concrete, fixed-layout numeric kinds is what
// makes the unsafe reinterpretation below well-defined at each
// instantiation, the same way libhat's read<Int> is only ever instantiated
// for std::integral types.
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~int | ~uint
}

// Result holds either a null address or an address into the scanned byte
// range that a kernel matched. It has no notion of the range's length: like
// a raw pointer, it is the caller's responsibility to
// keep the backing storage alive and to only compute offsets that remain
// inside it.
type Result struct {
	addr unsafe.Pointer
}

// notFound is the zero Result; kept as a named value purely for readability
// at call sites.
var notFound = Result{}

// fromIndex builds a Result pointing at data[i].
func fromIndex(data []byte, i int) Result {
	return Result{addr: unsafe.Pointer(&data[i])}
}

// Found reports whether the result holds an address.
func (r Result) Found() bool {
	return r.addr != nil
}

// Addr returns the matched address, or nil if not found.
func (r Result) Addr() unsafe.Pointer {
	return r.addr
}

// Equal implements pointer equality, the only comparison Result defines;
// there is no ordering.
func (r Result) Equal(o Result) bool {
	return r.addr == o.addr
}

// Read performs an unaligned load of an Int at address+offset. It is
// undefined behavior — most likely a fault — to call it on a not-Found
// Result, exactly as libhat's scan_result_base::read is.
func Read[Int Number](r Result, offset int) Int {
	return *(*Int)(unsafe.Add(r.addr, offset))
}

// Index reads an Int at offset and reinterprets it as an unsigned index
// into an array of Elem, i.e. read<Int>(offset) / sizeof(Elem). This is the
// idiom decoded machine code uses for scaled-index operands.
func Index[Int Number, Elem any](r Result, offset int) uint64 {
	v := Read[Int](r, offset)
	var probe Elem
	return uint64(v) / uint64(unsafe.Sizeof(probe))
}

// Shift returns a Result offset by delta bytes from r, or notFound if r is
// not found. sigscan's entry points use this to rewind a match found
// against a truncated (leading-wildcard-stripped) signature back to the
// address of the original, untruncated signature.
func (r Result) Shift(delta int) Result {
	if !r.Found() {
		return notFound
	}
	return Result{addr: unsafe.Add(r.addr, delta)}
}

// OffsetOf returns the index within data of result's address. data must be
// the same backing slice (or a re-slice of it) that the scan producing
// result ran against. Exported so the root sigscan package can translate
// a Result back into a resumable cursor without reaching into this
// package's unexported addr field.
func OffsetOf(data []byte, result Result) int {
	return int(uintptr(result.addr) - uintptr(unsafe.Pointer(&data[0])))
}

// Rel resolves a 32-bit signed PC-relative displacement stored at
// address+offset, returning address + displacement + offset + 4 — the
// address of the byte immediately following the 4-byte displacement field,
// adjusted by its own value. Returns a not-found Result if r is not found.
func (r Result) Rel(offset int) Result {
	if !r.Found() {
		return notFound
	}
	disp := Read[int32](r, offset)
	return Result{addr: unsafe.Add(r.addr, int(disp)+offset+4)}
}
