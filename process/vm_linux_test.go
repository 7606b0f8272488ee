package process

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"runtime"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

func attachSelf(t *testing.T) *VMMemory {
	t.Helper()

	mem, err := Attach(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}

	if mem.PID() != os.Getpid() {
		t.Fatalf("expected pid %d - got %d", os.Getpid(), mem.PID())
	}

	return mem
}

func skipIfDenied(t *testing.T, err error) {
	t.Helper()

	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) || errors.Is(err, unix.ENOSYS) {
		t.Skipf("process memory access is not permitted in this environment - %v", err)
	}
}

//go:noinline
func codePageTarget(a int, b int) int {
	return a*b + 7
}

func TestVMMemory_ReadWrite(t *testing.T) {
	mem := attachSelf(t)

	target := []byte{0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc}
	addr := uint64(uintptr(unsafe.Pointer(&target[0])))

	err := mem.WriteMemory(addr+1, []byte{0xe9, 0xe0, 0x02, 0x00})
	skipIfDenied(t, err)
	if err != nil {
		t.Fatal(err)
	}

	exp := []byte{0xcc, 0xe9, 0xe0, 0x02, 0x00, 0xcc}
	if !bytes.Equal(target, exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, target)
	}

	b, err := mem.ReadMemory(addr, len(target))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(b, exp) {
		t.Fatalf("expected read to return 0x%x - got 0x%x", exp, b)
	}

	runtime.KeepAlive(target)
}

func TestVMMemory_ApplyAndRevert(t *testing.T) {
	mem := attachSelf(t)

	target := []byte{0x0f, 0x84, 0xdb, 0x02, 0x00, 0x00}
	addr := uint64(uintptr(unsafe.Pointer(&target[0])))

	undo, err := Apply(mem, Patch{Address: addr, Bytes: bytes.Repeat([]byte{0x90}, 6)})
	skipIfDenied(t, err)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(target, bytes.Repeat([]byte{0x90}, 6)) {
		t.Fatalf("expected nops - got 0x%x", target)
	}

	_, err = Apply(mem, undo)
	if err != nil {
		t.Fatal(err)
	}

	exp := []byte{0x0f, 0x84, 0xdb, 0x02, 0x00, 0x00}
	if !bytes.Equal(target, exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, target)
	}

	runtime.KeepAlive(target)
}

func TestVMMemory_ApplyToCodePage(t *testing.T) {
	mem := attachSelf(t)

	addr := uint64(reflect.ValueOf(codePageTarget).Pointer())

	orig, err := mem.ReadMemory(addr, 6)
	skipIfDenied(t, err)
	if err != nil {
		t.Fatal(err)
	}

	hook := bytes.Repeat([]byte{0x90}, len(orig))

	undo, err := Apply(mem, Patch{Address: addr, Bytes: hook})
	skipIfDenied(t, err)
	if errors.Is(err, unix.EIO) {
		t.Skipf("kernel does not permit forced writes to read-only mappings - %v", err)
	}
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(undo.Bytes, orig) {
		t.Fatalf("expected undo patch to hold 0x%x - got 0x%x", orig, undo.Bytes)
	}

	patched, err := mem.ReadMemory(addr, len(hook))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(patched, hook) {
		t.Fatalf("expected code page to hold 0x%x - got 0x%x", hook, patched)
	}

	_, err = Apply(mem, undo)
	if err != nil {
		t.Fatal(err)
	}

	restored, err := mem.ReadMemory(addr, len(orig))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(restored, orig) {
		t.Fatalf("expected original code 0x%x - got 0x%x", orig, restored)
	}

	if got := codePageTarget(6, 7); got != 49 {
		t.Fatalf("expected restored function to return 49 - got %d", got)
	}
}

func TestVMMemory_EmptyAccess(t *testing.T) {
	mem := attachSelf(t)

	b, err := mem.ReadMemory(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(b) != 0 {
		t.Fatalf("expected no bytes - got 0x%x", b)
	}

	err = mem.WriteMemory(0, nil)
	if err != nil {
		t.Fatal(err)
	}
}
