package procmod

import "github.com/coregx/sigscan"

// FindInSection resolves section's bytes through r and scans them for
// signature, returning the match's offset relative to section.Begin (i.e.
// already adjusted to the section's base address) and whether one was
// found.
func FindInSection(r Resolver, section Section, signature sigscan.Signature, alignment sigscan.Alignment, hints sigscan.Hint) (offset int, found bool) {
	data, err := r.Bytes(section)
	if err != nil {
		return 0, false
	}
	result := sigscan.Find(data, signature, alignment, hints)
	if !result.Found() {
		return 0, false
	}
	return sigscan.OffsetInSlice(data, result), true
}
