package kernel

// Hint carries advisory domain knowledge about the bytes being scanned.
// Hints never change correctness — they only permit the dispatcher to pick
// a faster, but semantically identical, kernel.
type Hint uint64

const (
	// HintNone carries no domain knowledge.
	HintNone Hint = 0

	// HintX86_64MachineCode asserts the scanned bytes are x86-64
	// instructions. The dispatcher treats it as advisory only (see
	// applyHints): it may prefer a kernel tuned for short, highly
	// selective first bytes, but never picks a kernel unsupported by the
	// running CPU.
	HintX86_64MachineCode Hint = 1 << 0
)

// Has reports whether all bits of h2 are set in the receiver h.
func (h Hint) Has(h2 Hint) bool {
	return h&h2 == h2
}

// With returns h combined with h2.
func (h Hint) With(h2 Hint) Hint {
	return h | h2
}
