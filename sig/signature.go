// Package sig defines the pattern representation scanned by package kernel:
// a fixed-length sequence of concrete bytes and wildcards.
//
// A Signature is a read-only view borrowed from the caller. It never owns
// storage and carries no scanning logic of its own — package kernel and its
// dispatcher are the only consumers that interpret it.
package sig

// Element is a single position in a Signature: either a concrete byte value
// or a wildcard that matches any byte.
type Element struct {
	value    byte
	wildcard bool
}

// Byte returns a concrete Element matching only v.
func Byte(v byte) Element {
	return Element{value: v}
}

// Wildcard returns an Element matching any byte.
func Wildcard() Element {
	return Element{wildcard: true}
}

// IsWildcard reports whether e matches any byte.
func (e Element) IsWildcard() bool {
	return e.wildcard
}

// Value returns the concrete byte e matches. Calling it on a wildcard
// Element returns 0, which is not meaningful; check IsWildcard first.
func (e Element) Value() byte {
	return e.value
}

// String renders the element the way a signature literal would: two hex
// digits for a concrete byte, or "?" for a wildcard.
func (e Element) String() string {
	if e.wildcard {
		return "?"
	}
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[e.value>>4], hex[e.value&0xF]})
}

// Signature is a non-empty, ordered sequence of Elements.
//
// It is a thin, copyable view over a caller-owned slice — constructing one
// does not copy the backing array. The engine trusts, and does not
// re-validate, the invariant that len(elems) >= 1.
type Signature struct {
	elems []Element
}

// New constructs a Signature over elems. The caller retains ownership of
// elems; Signature never mutates it. Panics if elems is empty, matching the
// parser-enforced invariant that a Signature is always non-empty.
func New(elems []Element) Signature {
	if len(elems) == 0 {
		panic("sig: signature must not be empty")
	}
	return Signature{elems: elems}
}

// Len returns the number of elements in the signature.
func (s Signature) Len() int {
	return len(s.elems)
}

// At returns the element at index i.
func (s Signature) At(i int) Element {
	return s.elems[i]
}

// First returns the element at index 0. Panics on an empty Signature, which
// cannot occur for a Signature obtained through New.
func (s Signature) First() Element {
	return s.elems[0]
}

// Slice returns the subrange view of s starting at offset, sharing the same
// backing storage. offset must be in [0, s.Len()].
func (s Signature) Slice(offset int) Signature {
	return Signature{elems: s.elems[offset:]}
}

// LeadingWildcards counts the wildcard elements at the head of s, before the
// first concrete element (or the whole length, if s is all wildcards).
func (s Signature) LeadingWildcards() int {
	n := 0
	for _, e := range s.elems {
		if !e.IsWildcard() {
			break
		}
		n++
	}
	return n
}

// Truncate strips the leading wildcards from s and returns how many were
// removed together with the remaining Signature, whose first element is
// concrete (unless s was entirely wildcards, in which case trunc is empty;
// package sigscan's entry points reject that case, and sigparse.Parse never
// produces such a signature).
//
// This mirrors libhat's detail::truncate: searching for the truncated
// signature and then subtracting offset from the hit is equivalent to
// searching for the original, because leading wildcards match anything.
func (s Signature) Truncate() (offset int, trunc Signature) {
	offset = s.LeadingWildcards()
	return offset, s.Slice(offset)
}

// String renders the signature as a space-separated token sequence, e.g.
// "48 8B ? C7".
func (s Signature) String() string {
	buf := make([]byte, 0, s.Len()*3)
	for i, e := range s.elems {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, e.String()...)
	}
	return string(buf)
}
