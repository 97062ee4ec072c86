//go:build windows

package procmod

import (
	"bytes"
	"debug/pe"
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// processResolver resolves sections against a module loaded in a running
// process, reading section bytes straight out of that process's address
// space via ReadProcessMemory. It deliberately does not attempt the
// remote-thread / anti-cheat-bypass tricks some memory tools use to get
// around a protected page: if ReadProcessMemory fails, Bytes returns the
// error rather than trying to work around the protection.
type processResolver struct {
	handle  windows.Handle
	base    uintptr
	size    uint32
	headers *pe.File
}

// OpenProcess resolves the main module of the process named exeName
// (case-insensitive substring match against each running process's module
// list, e.g. "myapp.exe") and returns a Resolver over it.
func OpenProcess(exeName string) (Resolver, error) {
	pids, err := enumProcesses()
	if err != nil {
		return nil, fmt.Errorf("procmod: EnumProcesses: %w", err)
	}

	for _, pid := range pids {
		mod, ok, err := mainModule(pid, exeName)
		if err != nil || !ok {
			continue
		}
		h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
		if err != nil {
			continue
		}
		r := &processResolver{handle: h, base: mod.base, size: mod.size}
		if err := r.parseHeaders(); err != nil {
			windows.CloseHandle(h)
			return nil, err
		}
		return r, nil
	}
	return nil, ErrModuleNotFound
}

type moduleHandle struct {
	base uintptr
	size uint32
}

func enumProcesses() ([]uint32, error) {
	pids := make([]uint32, 4096)
	var returned uint32
	if err := windows.EnumProcesses(pids, &returned); err != nil {
		return nil, err
	}
	n := int(returned) / 4
	if n > len(pids) {
		n = len(pids)
	}
	return pids[:n], nil
}

// mainModule enumerates a process's loaded modules (via EnumProcessModules
// and GetModuleInformation/GetModuleFileNameEx, the legitimate Win32 module
// listing APIs) looking for the one whose filename matches exeName.
func mainModule(pid uint32, exeName string) (moduleHandle, bool, error) {
	hProcess, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return moduleHandle{}, false, err
	}
	defer windows.CloseHandle(hProcess)

	var handles [1024]windows.Handle
	var needed uint32
	entrySize := uint32(unsafe.Sizeof(handles[0]))
	if err := windows.EnumProcessModules(hProcess, &handles[0], entrySize*uint32(len(handles)), &needed); err != nil {
		return moduleHandle{}, false, err
	}
	count := needed / entrySize

	want := strings.ToLower(exeName)
	for i := uint32(0); i < count && i < uint32(len(handles)); i++ {
		var nameBuf [windows.MAX_PATH]uint16
		if err := windows.GetModuleFileNameEx(hProcess, handles[i], &nameBuf[0], windows.MAX_PATH); err != nil {
			continue
		}
		name := strings.ToLower(syscall.UTF16ToString(nameBuf[:]))
		if !strings.Contains(name, want) {
			continue
		}
		var mi windows.ModuleInfo
		if err := windows.GetModuleInformation(hProcess, handles[i], &mi, uint32(unsafe.Sizeof(mi))); err != nil {
			return moduleHandle{}, false, err
		}
		return moduleHandle{base: mi.BaseOfDll, size: mi.SizeOfImage}, true, nil
	}
	return moduleHandle{}, false, nil
}

// parseHeaders reads the module's PE headers directly out of the process's
// address space and parses them with the standard library's debug/pe. The
// header region is laid out identically in the file and in the mapped
// image (sections are what move), so a plain io.ReaderAt over the raw
// bytes parses exactly the way it would from disk.
func (r *processResolver) parseHeaders() error {
	headerSize := r.size
	if headerSize > 1<<20 {
		headerSize = 1 << 20 // headers are never anywhere close to this large
	}
	buf := make([]byte, headerSize)
	if err := windows.ReadProcessMemory(r.handle, r.base, &buf[0], uintptr(len(buf)), nil); err != nil {
		return fmt.Errorf("procmod: reading PE headers: %w", err)
	}
	f, err := pe.NewFile(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("procmod: parsing PE headers: %w", err)
	}
	r.headers = f
	return nil
}

func (r *processResolver) Section(name string) (Section, error) {
	for _, sec := range r.headers.Sections {
		if strings.EqualFold(strings.TrimRight(sec.Name, "\x00"), name) {
			begin := r.base + uintptr(sec.VirtualAddress)
			return Section{Name: name, Begin: begin, End: begin + uintptr(sec.VirtualSize)}, nil
		}
	}
	return Section{}, ErrSectionNotFound
}

func (r *processResolver) Bytes(section Section) ([]byte, error) {
	data := make([]byte, section.Len())
	if len(data) == 0 {
		return data, nil
	}
	if err := windows.ReadProcessMemory(r.handle, section.Begin, &data[0], uintptr(len(data)), nil); err != nil {
		return nil, fmt.Errorf("procmod: ReadProcessMemory: %w", err)
	}
	return data, nil
}

func (r *processResolver) Close() error {
	return windows.CloseHandle(r.handle)
}
