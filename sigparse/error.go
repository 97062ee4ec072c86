package sigparse

import (
	"errors"
	"fmt"
)

// Common parse errors.
var (
	// ErrEmpty indicates the input held no tokens at all.
	ErrEmpty = errors.New("sigparse: empty signature")

	// ErrAllWildcards indicates every token in the input was a wildcard,
	// which the engine cannot scan for (see sig.Signature.Truncate).
	ErrAllWildcards = errors.New("sigparse: signature must contain at least one concrete byte")
)

// SyntaxError reports a malformed token at a specific position in the
// original input string.
type SyntaxError struct {
	Input    string
	Token    string
	Position int
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sigparse: invalid token %q at position %d in %q: %v", e.Token, e.Position, e.Input, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var errBadToken = errors.New("token must be two hex digits, \"?\" or \"??\"")
