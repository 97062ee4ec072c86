//go:build !amd64

package kernel

// Non-amd64 platforms have no SSE4.1/AVX2/AVX-512 kernels to select; the
// dispatcher always falls back to ScalarFastFirst.
const (
	hasSSE41    = false
	hasAVX2     = false
	hasAVX512BW = false
)
