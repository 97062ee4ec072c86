package sigparse

import (
	"errors"
	"testing"
)

func TestParseConcreteBytes(t *testing.T) {
	s, err := Parse("48 8B 05")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.At(0).Value() != 0x48 || s.At(1).Value() != 0x8B || s.At(2).Value() != 0x05 {
		t.Fatalf("unexpected element values: %v", s)
	}
}

func TestParseLowercaseHex(t *testing.T) {
	s, err := Parse("ab cd")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.At(0).Value() != 0xAB || s.At(1).Value() != 0xCD {
		t.Fatalf("unexpected element values: %v", s)
	}
}

func TestParseWildcardForms(t *testing.T) {
	for _, lit := range []string{"48 ? C7", "48 ?? C7"} {
		s, err := Parse(lit)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", lit, err)
		}
		if !s.At(1).IsWildcard() {
			t.Fatalf("Parse(%q): element 1 is not a wildcard", lit)
		}
	}
}

func TestParseWhitespaceVariants(t *testing.T) {
	s, err := Parse("  48\t8B   05  ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestParseEmptyRejected(t *testing.T) {
	_, err := Parse("   ")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestParseAllWildcardsRejected(t *testing.T) {
	_, err := Parse("?? ?? ??")
	if !errors.Is(err, ErrAllWildcards) {
		t.Fatalf("err = %v, want ErrAllWildcards", err)
	}
}

func TestParseBadTokenReported(t *testing.T) {
	_, err := Parse("48 ZZ C7")
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if synErr.Position != 1 || synErr.Token != "ZZ" {
		t.Fatalf("unexpected SyntaxError fields: %+v", synErr)
	}
}

func TestParseOddLengthTokenRejected(t *testing.T) {
	if _, err := Parse("4"); err == nil {
		t.Fatal("expected an error for a single hex digit token")
	}
}
