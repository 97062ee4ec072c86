package sig

import "testing"

func TestElementString(t *testing.T) {
	cases := []struct {
		e    Element
		want string
	}{
		{Byte(0x00), "00"},
		{Byte(0xAB), "AB"},
		{Byte(0xff), "FF"},
		{Wildcard(), "?"},
	}
	for _, c := range cases {
		if got := c.e.String(); got != c.want {
			t.Errorf("Element.String() = %q, want %q", got, c.want)
		}
	}
}

func TestSignatureBasics(t *testing.T) {
	s := New([]Element{Byte(0xDE), Byte(0xAD), Wildcard(), Byte(0xBE)})
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.First().Value() != 0xDE {
		t.Fatalf("First() = %v, want DE", s.First())
	}
	if !s.At(2).IsWildcard() {
		t.Fatalf("At(2) should be wildcard")
	}
	if got, want := s.String(), "DE AD ? BE"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestSignatureSlice(t *testing.T) {
	s := New([]Element{Byte(1), Byte(2), Byte(3)})
	sub := s.Slice(1)
	if sub.Len() != 2 || sub.At(0).Value() != 2 {
		t.Fatalf("Slice(1) = %v, want [2 3]", sub)
	}
}

func TestLeadingWildcards(t *testing.T) {
	cases := []struct {
		elems []Element
		want  int
	}{
		{[]Element{Byte(1), Byte(2)}, 0},
		{[]Element{Wildcard(), Byte(2)}, 1},
		{[]Element{Wildcard(), Wildcard(), Byte(3)}, 2},
		{[]Element{Wildcard(), Wildcard()}, 2},
	}
	for _, c := range cases {
		s := New(c.elems)
		if got := s.LeadingWildcards(); got != c.want {
			t.Errorf("LeadingWildcards(%v) = %d, want %d", s, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	s := New([]Element{Wildcard(), Wildcard(), Byte(0x33)})
	offset, trunc := s.Truncate()
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
	if trunc.Len() != 1 || trunc.First().Value() != 0x33 {
		t.Fatalf("trunc = %v, want [33]", trunc)
	}
}

func TestNewPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty signature")
		}
	}()
	New(nil)
}
