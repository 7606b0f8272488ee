//go:build !linux

package process

import (
	"fmt"
	"log"
	"runtime"
)

// Attach returns ErrUnsupportedPlatform on this operating system.
func Attach(pid int) (*VMMemory, error) {
	return nil, fmt.Errorf("%s - %w", runtime.GOOS, ErrUnsupportedPlatform)
}

// VMMemory is only implemented on Linux.
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

// ReadMemory returns ErrUnsupportedPlatform.
func (o *VMMemory) ReadMemory(uint64, int) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

// WriteMemory returns ErrUnsupportedPlatform.
func (o *VMMemory) WriteMemory(uint64, []byte) error {
	return ErrUnsupportedPlatform
}
