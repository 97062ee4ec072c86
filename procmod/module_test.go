package procmod

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSectionLen(t *testing.T) {
	s := Section{Begin: 0x1000, End: 0x1400}
	if s.Len() != 0x400 {
		t.Fatalf("Len() = %d, want %#x", s.Len(), 0x400)
	}
}

func TestOpenImageRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-an-image")
	if err := os.WriteFile(path, []byte("not a real executable"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := OpenImage(path); err == nil {
		t.Fatal("expected an error opening a non-executable file")
	}
}

func TestOpenImageMissingFile(t *testing.T) {
	if _, err := OpenImage(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
