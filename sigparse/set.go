package sigparse

import (
	"errors"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/sigscan/sig"
)

// ErrNoAnchor indicates a signature has no run of concrete bytes long
// enough to anchor an Aho-Corasick prefilter (see anchorMinLen).
var ErrNoAnchor = errors.New("sigparse: signature has no usable literal anchor")

// anchorMinLen is the shortest literal run Set will build an automaton
// state machine over. Shorter anchors produce too many false-positive
// candidates to be worth the multi-pattern dispatch; a caller scanning for
// very short or heavily wildcarded signatures should use sigscan.Find
// directly instead of building a Set.
const anchorMinLen = 2

// Set batch-matches many signatures against one haystack in a single pass.
// It extracts each signature's longest run of concrete bytes as an
// Aho-Corasick literal, so a single O(n) automaton walk locates every
// candidate position across the whole set; each candidate is then verified
// against its full signature (wildcards included) before being reported,
// the same two-stage "cheap filter, then verify" structure the scan
// engine's own prefilters use.
type Set struct {
	signatures []sig.Signature
	anchors    []anchor
	automaton  *ahocorasick.Automaton
}

type anchor struct {
	offset int // position of the anchor literal within its signature
}

// NewSet builds a Set over signatures. Returns ErrNoAnchor if any signature
// lacks a concrete run of at least anchorMinLen bytes.
func NewSet(signatures []sig.Signature) (*Set, error) {
	set := &Set{
		signatures: signatures,
		anchors:    make([]anchor, len(signatures)),
	}

	builder := ahocorasick.NewBuilder()
	for i, s := range signatures {
		off, lit, err := longestLiteralRun(s)
		if err != nil {
			return nil, err
		}
		set.anchors[i] = anchor{offset: off}
		builder.AddPattern(lit)
	}

	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	set.automaton = automaton
	return set, nil
}

// Match pairs a matched signature with where it was found.
type Match struct {
	SignatureIndex int
	Offset         int
}

// FindAll scans data in a single automaton pass and returns every position
// where any of the Set's signatures fully matches, including the
// wildcarded positions the Aho-Corasick anchor alone can't see. Each
// anchor hit identifies its originating signature by pattern index (the
// order signatures were passed to NewSet, which is also the order their
// anchors were added to the builder), so one walk of the haystack
// dispatches to the right verification regardless of how many signatures
// are in the set.
func (set *Set) FindAll(data []byte) []Match {
	var matches []Match
	at := 0
	for at < len(data) {
		m := set.automaton.Find(data, at)
		if m == nil {
			break
		}
		i := m.PatternID
		start := m.Start - set.anchors[i].offset
		if start >= 0 && start+set.signatures[i].Len() <= len(data) && matchesAt(data, set.signatures[i], start) {
			matches = append(matches, Match{SignatureIndex: i, Offset: start})
		}
		at = m.Start + 1
	}
	return matches
}

// matchesAt reports whether s matches data at start, honoring wildcards.
// This mirrors kernel.matchAt but lives here because that function is
// unexported in package kernel, and sigparse only ever needs the reference
// comparison, not a dispatched kernel.
func matchesAt(data []byte, s sig.Signature, start int) bool {
	for i := 0; i < s.Len(); i++ {
		e := s.At(i)
		if e.IsWildcard() {
			continue
		}
		if data[start+i] != e.Value() {
			return false
		}
	}
	return true
}

// longestLiteralRun returns the offset and bytes of the longest run of
// concrete (non-wildcard) elements in s.
func longestLiteralRun(s sig.Signature) (offset int, literal []byte, err error) {
	bestOffset, bestLen := -1, 0
	curOffset, curLen := -1, 0
	for i := 0; i < s.Len(); i++ {
		if s.At(i).IsWildcard() {
			curOffset, curLen = -1, 0
			continue
		}
		if curLen == 0 {
			curOffset = i
		}
		curLen++
		if curLen > bestLen {
			bestOffset, bestLen = curOffset, curLen
		}
	}
	if bestLen < anchorMinLen {
		return 0, nil, ErrNoAnchor
	}
	literal = make([]byte, bestLen)
	for i := 0; i < bestLen; i++ {
		literal[i] = s.At(bestOffset + i).Value()
	}
	return bestOffset, literal, nil
}
