// Package process provides functionality for patching the memory of
// a running software process.
package process

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned when process memory access is
// not implemented for the current operating system.
var ErrUnsupportedPlatform = errors.New("process memory access is not supported on this platform")

// Memory abstracts reading and writing the virtual memory of a
// running software process.
type Memory interface {
	// ReadMemory reads size bytes starting at addr.
	ReadMemory(addr uint64, size int) ([]byte, error)

	// WriteMemory writes p starting at addr.
	WriteMemory(addr uint64, p []byte) error
}

// Assembled abstracts machine code that was built to reside at
// a particular address, such as an *asmkit.Emitter.
type Assembled interface {
	// BaseAddress returns the address of the first byte.
	BaseAddress() uint32

	// Bytes returns the machine code.
	Bytes() []byte
}

// Patch is a sequence of bytes to be written at an address.
type Patch struct {
	Address uint64
	Bytes   []byte
}

// PatchFrom creates a Patch that writes the assembled machine code
// to its base address.
func PatchFrom(a Assembled) Patch {
	return Patch{
		Address: uint64(a.BaseAddress()),
		Bytes:   a.Bytes(),
	}
}

// ApplyOrExit calls Apply. It calls DefaultExitFn if an error occurs.
func ApplyOrExit(mem Memory, patch Patch) Patch {
	undo, err := Apply(mem, patch)
	if err != nil {
		DefaultExitFn(err)
	}

	return undo
}

// Apply writes the patch to memory. It returns a Patch containing
// the bytes that were overwritten, which can be applied to revert
// the change.
func Apply(mem Memory, patch Patch) (Patch, error) {
	orig, err := mem.ReadMemory(patch.Address, len(patch.Bytes))
	if err != nil {
		return Patch{}, fmt.Errorf("failed to read %d bytes at 0x%x before patching - %w",
			len(patch.Bytes), patch.Address, err)
	}

	err = mem.WriteMemory(patch.Address, patch.Bytes)
	if err != nil {
		return Patch{}, fmt.Errorf("failed to write %d bytes at 0x%x - %w",
			len(patch.Bytes), patch.Address, err)
	}

	return Patch{
		Address: patch.Address,
		Bytes:   orig,
	}, nil
}

// ApplyAll applies patches in order. If a patch fails, the patches
// that were already applied are reverted before the error is returned.
//
// On success, the returned undo patches are ordered such that
// applying them in order reverts all of the changes.
func ApplyAll(mem Memory, patches ...Patch) ([]Patch, error) {
	var undos []Patch

	for i, patch := range patches {
		undo, err := Apply(mem, patch)
		if err != nil {
			revertErr := revert(mem, undos)
			if revertErr != nil {
				return nil, fmt.Errorf("failed to apply patch %d - %w (revert also failed - %v)",
					i, err, revertErr)
			}

			return nil, fmt.Errorf("failed to apply patch %d - %w", i, err)
		}

		undos = append([]Patch{undo}, undos...)
	}

	return undos, nil
}

func revert(mem Memory, undos []Patch) error {
	for _, undo := range undos {
		err := mem.WriteMemory(undo.Address, undo.Bytes)
		if err != nil {
			return fmt.Errorf("failed to revert %d bytes at 0x%x - %w",
				len(undo.Bytes), undo.Address, err)
		}
	}

	return nil
}
