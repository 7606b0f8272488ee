package process

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// Attach returns a Memory for the process with the specified PID.
//
// Memory is read using process_vm_readv(2) and written through
// /proc/PID/mem, both of which require the same permissions as ptrace(2).
// Writes through /proc/PID/mem ignore page protections, so read-only
// code pages can be patched without changing their protection first.
func Attach(pid int) (*VMMemory, error) {
	err := unix.Kill(pid, 0)
	if err == unix.ESRCH {
		return nil, fmt.Errorf("failed to find process %d - %w", pid, err)
	}

	return &VMMemory{
		pid: pid,
	}, nil
}

// VMMemory implements Memory for a local Linux process.
type VMMemory struct {
	pid    int
	logger *log.Logger
}

// PID returns the process ID.
func (o *VMMemory) PID() int {
	return o.pid
}

// SetLogger enables hexdump logging of writes.
func (o *VMMemory) SetLogger(logger *log.Logger) {
	o.logger = logger
}

// ReadMemory reads size bytes starting at addr.
func (o *VMMemory) ReadMemory(addr uint64, size int) ([]byte, error) {
	b := make([]byte, size)
	if size == 0 {
		return b, nil
	}

	local := []unix.Iovec{{Base: &b[0]}}
	local[0].SetLen(size)

	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: size}}

	n, err := unix.ProcessVMReadv(o.pid, local, remote, 0)
	if err != nil {
		return nil, fmt.Errorf("process_vm_readv failed for pid %d - %w", o.pid, err)
	}

	if n != size {
		return nil, fmt.Errorf("read %d of %d bytes from pid %d - %w",
			n, size, o.pid, io.ErrUnexpectedEOF)
	}

	return b, nil
}

// WriteMemory writes p starting at addr.
func (o *VMMemory) WriteMemory(addr uint64, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if addr > math.MaxInt64 {
		return fmt.Errorf("address 0x%x cannot be used as a file offset", addr)
	}

	if o.logger != nil {
		o.logger.Printf("writing %d bytes to pid %d at 0x%x:\n%s",
			len(p), o.pid, addr, hex.Dump(p))
	}

	memPath := "/proc/" + strconv.Itoa(o.pid) + "/mem"

	f, err := os.OpenFile(memPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open memory of pid %d - %w", o.pid, err)
	}
	defer f.Close()

	n, err := f.WriteAt(p, int64(addr))
	if err != nil {
		return fmt.Errorf("wrote %d of %d bytes to pid %d - %w", n, len(p), o.pid, err)
	}

	return nil
}
