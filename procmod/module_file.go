package procmod

import (
	"bytes"
	"debug/elf"
	"debug/pe"
	"fmt"
	"io"
	"os"
)

// ImageResolver resolves sections against an executable image sitting on
// disk rather than a running process: a static-analysis fallback for when
// no live process is available, or when the caller wants to scan a binary
// before ever running it. It supports PE (Windows) and ELF (Linux) images,
// detected from the file's magic bytes.
type ImageResolver struct {
	file    *os.File
	peFile  *pe.File
	elfFile *elf.File
}

// OpenImage opens the executable image at path and identifies its format.
func OpenImage(path string) (*ImageResolver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		f.Close()
		return nil, fmt.Errorf("procmod: reading image magic: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	r := &ImageResolver{file: f}
	switch {
	case bytes.HasPrefix(magic, []byte("MZ")):
		pf, err := pe.NewFile(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("procmod: parsing PE image: %w", err)
		}
		r.peFile = pf
	case bytes.Equal(magic, []byte(elf.ELFMAG)):
		ef, err := elf.NewFile(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("procmod: parsing ELF image: %w", err)
		}
		r.elfFile = ef
	default:
		f.Close()
		return nil, fmt.Errorf("procmod: %s: unrecognized image format", path)
	}
	return r, nil
}

// Section resolves a named section to its virtual address range. For PE
// images the range is base-relative (Begin/End are RVAs, not live
// addresses, since there is no running process to anchor them to); for
// ELF images it is the section's virtual address as linked.
func (r *ImageResolver) Section(name string) (Section, error) {
	if r.peFile != nil {
		for _, sec := range r.peFile.Sections {
			if sec.Name == name {
				return Section{Name: name, Begin: uintptr(sec.VirtualAddress), End: uintptr(sec.VirtualAddress + sec.VirtualSize)}, nil
			}
		}
		return Section{}, ErrSectionNotFound
	}
	sec := r.elfFile.Section(name)
	if sec == nil {
		return Section{}, ErrSectionNotFound
	}
	return Section{Name: name, Begin: uintptr(sec.Addr), End: uintptr(sec.Addr + sec.Size)}, nil
}

// Bytes returns the named section's on-disk contents.
func (r *ImageResolver) Bytes(section Section) ([]byte, error) {
	if r.peFile != nil {
		for _, sec := range r.peFile.Sections {
			if uintptr(sec.VirtualAddress) == section.Begin {
				return sec.Data()
			}
		}
		return nil, ErrSectionNotFound
	}
	sec := r.elfFile.Section(section.Name)
	if sec == nil {
		return nil, ErrSectionNotFound
	}
	return sec.Data()
}

func (r *ImageResolver) Close() error {
	if r.peFile != nil {
		r.peFile.Close()
	}
	if r.elfFile != nil {
		r.elfFile.Close()
	}
	return r.file.Close()
}
