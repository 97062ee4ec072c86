//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

// CPU feature flags, detected once at package initialization and read
// without synchronization thereafter (golang.org/x/sys/cpu itself performs
// the one-time detection work; the package-level vars below are the
// dispatcher's single-initialization cache of it, matching
// simd.hasAVX2 / prefilter.hasSSSE3 in the sibling coregex module).
var (
	hasSSE41    = cpu.X86.HasSSE41
	hasAVX2     = cpu.X86.HasAVX2
	hasAVX512BW = cpu.X86.HasAVX512BW
)
