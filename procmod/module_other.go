//go:build !windows

package procmod

import "errors"

// ErrUnsupportedPlatform is returned by OpenProcess on platforms other
// than Windows, where live-process module enumeration isn't implemented.
// Use ImageResolver to scan an on-disk executable instead.
var ErrUnsupportedPlatform = errors.New("procmod: live process scanning is only supported on windows")

// OpenProcess is unavailable outside Windows; see ErrUnsupportedPlatform.
func OpenProcess(exeName string) (Resolver, error) {
	return nil, ErrUnsupportedPlatform
}
