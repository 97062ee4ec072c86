// Package sigparse turns human-written signature literals into the
// sig.Signature form the scan engine consumes.
//
// A signature literal is a sequence of whitespace-separated tokens: each
// token is either exactly two hexadecimal digits (case-insensitive),
// denoting a concrete byte, or a single "?" or "??", denoting a wildcard.
// Empty input, and input consisting only of wildcards, are both rejected —
// the engine has nothing to anchor a scan on in either case.
package sigparse

import (
	"strconv"
	"strings"

	"github.com/coregx/sigscan/sig"
)

// Parse parses a signature literal such as "48 8B 05 ?? ?? ?? ?? C7" into a
// sig.Signature. Token boundaries are runs of Unicode whitespace (as
// strings.Fields splits them); any number
// of spaces/tabs between tokens is accepted.
func Parse(literal string) (sig.Signature, error) {
	fields := strings.Fields(literal)
	if len(fields) == 0 {
		return sig.Signature{}, ErrEmpty
	}

	elems := make([]sig.Element, len(fields))
	concrete := 0
	for i, tok := range fields {
		e, err := parseToken(tok)
		if err != nil {
			return sig.Signature{}, &SyntaxError{Input: literal, Token: tok, Position: i, Err: err}
		}
		elems[i] = e
		if !e.IsWildcard() {
			concrete++
		}
	}
	if concrete == 0 {
		return sig.Signature{}, ErrAllWildcards
	}
	return sig.New(elems), nil
}

func parseToken(tok string) (sig.Element, error) {
	if tok == "?" || tok == "??" {
		return sig.Wildcard(), nil
	}
	if len(tok) != 2 {
		return sig.Element{}, errBadToken
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return sig.Element{}, errBadToken
	}
	return sig.Byte(byte(v)), nil
}
