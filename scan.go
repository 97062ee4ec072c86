package sigscan

import (
	"github.com/coregx/sigscan/kernel"
)

// truncateFor strips a signature's leading wildcards and, when the
// remainder still fits inside data[0:], builds a scan Context and the
// window it should run against. ok is false when the signature (after
// truncation) cannot possibly fit in data, mirroring find_pattern's
// begin >= end || trunc.size() > distance(begin, end) rejection.
func truncateFor(data []byte, s Signature, alignment Alignment, hints Hint) (ctx kernel.Context, window []byte, offset int, ok bool) {
	offset, trunc := s.Truncate()
	// An all-wildcard signature truncates to nothing; every position would
	// match, which isn't a useful query and isn't something the parser ever
	// produces. Reject it here rather than hand kernel.NewContext an empty
	// Signature.
	if trunc.Len() == 0 || offset > len(data) || trunc.Len() > len(data)-offset {
		return kernel.Context{}, nil, 0, false
	}
	return kernel.NewContext(trunc, alignment, hints), data[offset:], offset, true
}

// Find returns the first occurrence of signature in data, or a not-found
// Result if there is none. alignment restricts which byte offsets are
// eligible match starts; hints lets the caller share domain knowledge
// (e.g. that data holds x86-64 machine code) that a kernel may use to pick
// a cheaper strategy.
//
// Find is the direct analogue of libhat's find_pattern(begin, end, sig,
// hints): it truncates leading wildcards from signature before scanning
// (a match can never start on a byte the signature doesn't constrain) and
// re-adds the truncated length to the address of any hit.
func Find(data []byte, signature Signature, alignment Alignment, hints Hint) Result {
	ctx, window, offset, ok := truncateFor(data, signature, alignment, hints)
	if !ok {
		return Result{}
	}
	return ctx.Scan(window).Shift(-offset)
}

// FindAll scans data for every occurrence of signature, writing up to
// len(out) results into out and returning the number written plus the
// input cursor at which searching stopped. Matches after the first are
// searched starting at the byte immediately after the previous match's
// first byte, exactly as libhat's find_all_pattern
// advances by one instead of by len(signature), so overlapping
// occurrences are still found.
//
// stoppedAt is the input cursor to resume a chunked scan from: data is
// exhausted up to stoppedAt, but a match that starts at or after
// stoppedAt may still be found once more bytes are appended and the
// caller rescans data[stoppedAt:] — it is len(data) only when nothing
// remaining could possibly match (no candidate start position was left
// unexamined), not merely whenever out happens to be full.
//
// FindAll performs no allocation; callers that don't want to size a
// buffer up front should use FindAllSlice instead.
func FindAll(data []byte, out []Result, signature Signature, alignment Alignment, hints Hint) (n int, stoppedAt int) {
	ctx, window, offset, ok := truncateFor(data, signature, alignment, hints)
	if !ok {
		return 0, 0
	}
	if len(out) == 0 {
		return 0, 0
	}

	i := 0
	for n < len(out) && i <= len(window)-ctx.Signature().Len() {
		r := ctx.Scan(window[i:])
		if !r.Found() {
			return n, len(window) - ctx.Signature().Len() + 1
		}
		out[n] = r.Shift(-offset)
		n++
		i = matchIndex(window, r) + 1
	}
	// Either out filled or the remaining window is too short for another
	// match to start — in both cases i itself (not len(data)) is the
	// earliest position a future call must re-examine.
	return n, i
}

// FindAllFunc scans data for every occurrence of signature, calling visit
// once per match in ascending address order, and returns the number of
// matches found (every call made to visit, whether or not it returned
// true). It stops as soon as visit returns false, or when the range is
// exhausted. It performs no allocation and imposes no bound on the
// number of matches, the counted-sink analogue of libhat's
// find_all_pattern(begin, end, outIt, sig, hints).
func FindAllFunc(data []byte, signature Signature, alignment Alignment, hints Hint, visit func(Result) bool) int {
	ctx, window, offset, ok := truncateFor(data, signature, alignment, hints)
	if !ok {
		return 0
	}

	count := 0
	i := 0
	for i <= len(window)-ctx.Signature().Len() {
		r := ctx.Scan(window[i:])
		if !r.Found() {
			return count
		}
		count++
		if !visit(r.Shift(-offset)) {
			return count
		}
		i = matchIndex(window, r) + 1
	}
	return count
}

// FindAllSlice scans data for every occurrence of signature and returns
// them as a newly allocated slice, the Go analogue of libhat's
// find_all_pattern overload that returns a std::vector.
func FindAllSlice(data []byte, signature Signature, alignment Alignment, hints Hint) []Result {
	var results []Result
	FindAllFunc(data, signature, alignment, hints, func(r Result) bool {
		results = append(results, r)
		return true
	})
	return results
}

// OffsetInSlice reports the index of result's address within data, which
// must be the same slice (or a re-slice of it) that produced result. Used
// by callers like package procmod, where data holds a section's bytes and
// the index is therefore the match's offset from the section's start.
func OffsetInSlice(data []byte, result Result) int {
	return kernel.OffsetOf(data, result)
}

// matchIndex reports the index of result's address within window, which
// must be the same slice (or a re-slice of it) that produced result. It
// exists purely to translate a Result's opaque address back into a cursor
// FindAll/FindAllFunc can resume scanning from.
func matchIndex(window []byte, result Result) int {
	return kernel.OffsetOf(window, result)
}
