// Package kernel implements the scan engine's dispatcher and the family of
// search kernels it selects from: one Scalar-FastFirst kernel plus one SIMD
// kernel per supported instruction-set tier (SSE4.1, AVX2, AVX-512), each
// implemented for both supported alignments.
//
// Callers do not normally construct a Context directly; package sigscan's
// entry points do so on every call. Context is exposed here because
// packages that need reproducible, non-dispatched behavior — most notably
// tests exercising the "compile-time" scan path described in the module's
// design notes — construct one with NewScalarContext.
package kernel

import "github.com/coregx/sigscan/sig"

// scanFunc is the shape every kernel implements: search [0, len(data)) of
// data for ctx's (already alignment- and truncation-adjusted) signature.
type scanFunc func(data []byte, ctx *Context) Result

// Mode names a kernel family. It exists primarily for diagnostics —
// Context.Mode lets a caller or test assert which kernel a dispatch chose.
type Mode int

const (
	ModeScalarFastFirst Mode = iota
	ModeSSE41
	ModeAVX2
	ModeAVX512
)

func (m Mode) String() string {
	switch m {
	case ModeScalarFastFirst:
		return "ScalarFastFirst"
	case ModeSSE41:
		return "SSE4.1"
	case ModeAVX2:
		return "AVX2"
	case ModeAVX512:
		return "AVX-512"
	default:
		return "Mode(?)"
	}
}

// Context is populated once per scan call and read-only thereafter: the
// (possibly truncated) signature, the selected kernel, the alignment, the
// kernel's vector width in bytes (0 for scalar), and the hint set. It is a
// small value type — trivially copyable, no heap allocation of its own.
type Context struct {
	sig         sig.Signature
	scanner     scanFunc
	mode        Mode
	alignment   Alignment
	vectorWidth int
	hints       Hint
}

// Signature returns the (already truncated) signature the context scans for.
func (c *Context) Signature() sig.Signature { return c.sig }

// Alignment returns the context's candidate-start stride.
func (c *Context) Alignment() Alignment { return c.alignment }

// VectorWidth returns the selected kernel's vector width in bytes, or 0 for
// a scalar kernel.
func (c *Context) VectorWidth() int { return c.vectorWidth }

// Hints returns the hint set the context was built with.
func (c *Context) Hints() Hint { return c.hints }

// Mode returns the selected kernel family, for diagnostics and tests.
func (c *Context) Mode() Mode { return c.mode }

// Scan trampolines to the context's selected kernel.
func (c *Context) Scan(data []byte) Result {
	return c.scanner(data, c)
}

// NewContext builds a Context for signature s and the given alignment,
// selecting the widest kernel the running CPU supports and then applying
// hints. This is the dispatched, run-time path: CPU features are read
// (from the package-level flags in cpu_amd64.go, filled once at package
// initialization) once per call, never per candidate.
func NewContext(s sig.Signature, alignment Alignment, hints Hint) Context {
	mode, scanner, width := resolveScanner(alignment, s.Len())
	ctx := Context{
		sig:         s,
		scanner:     scanner,
		mode:        mode,
		alignment:   alignment,
		vectorWidth: width,
		hints:       hints,
	}
	ctx.applyHints()
	return ctx
}

// NewScalarContext builds a Context that unconditionally uses
// ScalarFastFirst and never queries CPU features, for the "compile-time"
// scan path described in the module design notes: it must produce output
// identical to the dispatched path for every input, and is the reference
// the cross-kernel property tests check the dispatched kernels against.
func NewScalarContext(s sig.Signature, alignment Alignment) Context {
	return Context{
		sig:       s,
		scanner:   ScalarFastFirst,
		mode:      ModeScalarFastFirst,
		alignment: alignment,
	}
}

// resolveScanner picks the widest kernel the running CPU supports for
// alignment, given a signature of length sigLen. Single-element signatures
// are routed to the scalar kernel regardless of CPU support; longer ones get
// the widest supported SIMD kernel. This is a
// performance decision, not a correctness one, since ScalarFastFirst is
// always a valid choice for any signature length and alignment.
func resolveScanner(alignment Alignment, sigLen int) (Mode, scanFunc, int) {
	if sigLen < 2 {
		return ModeScalarFastFirst, ScalarFastFirst, 0
	}
	switch {
	case hasAVX512BW:
		return ModeAVX512, AVX512, 64
	case hasAVX2:
		return ModeAVX2, AVX2, 32
	case hasSSE41:
		return ModeSSE41, SSE41, 16
	default:
		return ModeScalarFastFirst, ScalarFastFirst, 0
	}
}

// applyHints lets hints downgrade the kernel chosen by resolveScanner.
// Hints are advisory only (see HintX86_64MachineCode's doc comment): this
// method must never select a kernel resolveScanner would have rejected as
// unsupported, only trade a supported kernel for another supported one.
func (c *Context) applyHints() {
	if !c.hints.Has(HintX86_64MachineCode) {
		return
	}
	// x86-64 opcodes are short and their first byte is often a poor
	// filter (0x48 REX.W prefixes dominate), but signatures written
	// against machine code also tend to be short enough that a SIMD
	// kernel's fixed head/tail overhead outweighs its throughput
	// advantage. Prefer the scalar kernel for signatures that fit in a
	// single 16-byte SSE4.1 vector; longer ones keep whatever
	// resolveScanner chose.
	if c.sig.Len() <= 16 && c.mode != ModeScalarFastFirst {
		c.mode = ModeScalarFastFirst
		c.scanner = ScalarFastFirst
		c.vectorWidth = 0
	}
}
