package experimental

import (
	"encoding/binary"
	"testing"
)

func putPtr(data []byte, at int, value int, pointerSize int) {
	if pointerSize == 8 {
		binary.LittleEndian.PutUint64(data[at:], uint64(value))
	} else {
		binary.LittleEndian.PutUint32(data[at:], uint32(value))
	}
}

func TestFindVTableGNU(t *testing.T) {
	const ptrSize = 8
	data := make([]byte, 256)
	for i := range data {
		data[i] = 0xCC // filler that can't be mistaken for a real pointer
	}

	className := "_ZTI4Widget"
	nameAddr := 100
	copy(data[nameAddr:], className)

	// type_info layout: { vfptr, name_ptr }, with name_ptr pointing at the
	// name string stored elsewhere.
	typeInfoAddr := 48
	putPtr(data, typeInfoAddr, 0, ptrSize) // vfptr, irrelevant to the search
	putPtr(data, typeInfoAddr+ptrSize, nameAddr, ptrSize)

	// vtable: { offset_to_top, typeinfo_ptr, first_vfn, ... }
	vtableAddr := 8
	putPtr(data, vtableAddr, 0, ptrSize)
	putPtr(data, vtableAddr+ptrSize, typeInfoAddr, ptrSize)

	got, err := FindVTable(data, className, GNU, ptrSize)
	if err != nil {
		t.Fatalf("FindVTable failed: %v", err)
	}
	// The vtable address an object's vptr actually holds is the first
	// virtual function pointer, one slot past typeinfo_ptr.
	want := vtableAddr + 2*ptrSize
	if got != want {
		t.Fatalf("FindVTable = %d, want %d", got, want)
	}
}

func TestFindVTableMSVC(t *testing.T) {
	const ptrSize = 8
	data := make([]byte, 256)
	for i := range data {
		data[i] = 0xCC
	}

	className := ".?AVWidget@@"
	nameAddr := 120
	copy(data[nameAddr:], className)

	// TypeDescriptor layout: { vfptr, spare, name[] }.
	descriptorAddr := nameAddr - 2*ptrSize
	putPtr(data, descriptorAddr, 0, ptrSize)
	putPtr(data, descriptorAddr+ptrSize, 0, ptrSize)

	// CompleteObjectLocator holds a pointer to the TypeDescriptor.
	locatorAddr := 40
	putPtr(data, locatorAddr+3*ptrSize, descriptorAddr, ptrSize)

	// vtable's [-1] slot holds a pointer to the locator.
	vtableAddr := 8
	putPtr(data, vtableAddr-ptrSize, locatorAddr+3*ptrSize, ptrSize)

	got, err := FindVTable(data, className, MSVC, ptrSize)
	if err != nil {
		t.Fatalf("FindVTable failed: %v", err)
	}
	if got != vtableAddr {
		t.Fatalf("FindVTable = %d, want %d", got, vtableAddr)
	}
}

func TestFindVTableNameNotFound(t *testing.T) {
	data := make([]byte, 64)
	if _, err := FindVTable(data, "NoSuchClass", GNU, 8); err != ErrNameNotFound {
		t.Fatalf("err = %v, want ErrNameNotFound", err)
	}
}

func TestFindVTableInvalidPointerSize(t *testing.T) {
	data := make([]byte, 64)
	if _, err := FindVTable(data, "x", GNU, 5); err == nil {
		t.Fatal("expected an error for an invalid pointer size")
	}
}
