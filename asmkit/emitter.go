// Package asmkit assembles small 32-bit x86 code fragments such as inline hooks.
package asmkit

import (
	"encoding/binary"
	"fmt"
	"log"

	"gitlab.com/stephen-fox/hookkit/conv"
	"gitlab.com/stephen-fox/hookkit/iokit"
)

// NewEmitter instantiates a new Emitter whose first byte will reside
// at baseAddr once the emitted code is written to memory.
func NewEmitter(baseAddr uint32) *Emitter {
	return &Emitter{
		base: baseAddr,
	}
}

// Emitter builds 32-bit x86 machine code anchored at a fixed virtual
// address by implementing the "builder pattern". It is intended for
// constructing inline hooks: short code fragments that are written
// into a running process to call into or jump to injected logic.
//
// Emitted bytes are only ever appended. The address of the next
// instruction (see Cursor) is always derived from the base address
// and the number of bytes emitted so far.
//
// The Emitter does not validate the instruction sequence it produces.
// An Emitter must not be used by multiple goroutines concurrently.
type Emitter struct {
	base uint32
	buf  iokit.Buffer
}

// SetLogger enables hexdump logging of emitted bytes to the specified
// logger. A nil logger disables logging.
func (o *Emitter) SetLogger(logger *log.Logger) *Emitter {
	o.buf.OptLoggerW = logger

	return o
}

// BaseAddress returns the address of the first emitted byte.
func (o *Emitter) BaseAddress() uint32 {
	return o.base
}

// Cursor returns the address that the next emitted byte will occupy.
// 32-bit wraparound applies.
func (o *Emitter) Cursor() uint32 {
	return o.base + uint32(o.buf.Len())
}

// Len returns the number of bytes emitted so far.
func (o *Emitter) Len() int {
	return o.buf.Len()
}

// Bytes returns a copy of the emitted machine code.
func (o *Emitter) Bytes() []byte {
	return o.buf.Bytes()
}

// Raw appends the specified bytes verbatim.
func (o *Emitter) Raw(b ...byte) *Emitter {
	o.buf.WriteOrExit(b)

	return o
}

// Imm32 appends v as a little endian 32-bit integer. Signed values
// can be encoded by converting a variable, e.g., uint32(disp) where
// disp is an int32 holding -8.
func (o *Emitter) Imm32(v uint32) *Emitter {
	b := make([]byte, 4)

	binary.LittleEndian.PutUint32(b, v)

	return o.Raw(b...)
}

// Push appends a push of the specified immediate value using the
// shortest encoding. Values up to 0xff use "push imm8". Note that
// the CPU sign-extends imm8, so 0x80 through 0xff arrive on the
// stack as 0xffffff80 through 0xffffffff.
func (o *Emitter) Push(v uint32) *Emitter {
	if v <= 0xff {
		return o.Raw(OpPushImm8, byte(v))
	}

	o.Raw(OpPushImm32)

	return o.Imm32(v)
}

// Call appends a near relative call to dst. Any arguments are pushed
// right-to-left so that args[0] is on top of the stack when dst is
// entered. After the call, the caller removes the arguments from the
// stack with "add esp, 4*len(args)" (cdecl).
func (o *Emitter) Call(dst uint32, args ...uint32) *Emitter {
	return o.call(dst, args, true)
}

// CallNoCleanup is like Call, but it does not remove the arguments
// from the stack after the call. This is useful when the callee
// cleans up the stack (stdcall) or when the stack is restored later.
func (o *Emitter) CallNoCleanup(dst uint32, args ...uint32) *Emitter {
	return o.call(dst, args, false)
}

func (o *Emitter) call(dst uint32, args []uint32, cleanup bool) *Emitter {
	for i := len(args) - 1; i >= 0; i-- {
		o.Push(args[i])
	}

	o.rel32(OpCallRel32, dst)

	if len(args) > 0 && cleanup {
		o.Raw(addESPImm8...)
		o.Raw(byte(4 * len(args)))
	}

	return o
}

// Jmp appends a near relative jump to dst.
func (o *Emitter) Jmp(dst uint32) *Emitter {
	return o.rel32(OpJmpRel32, dst)
}

// rel32 appends an instruction consisting of a one-byte opcode and
// a displacement measured from the end of the instruction.
func (o *Emitter) rel32(opcode byte, dst uint32) *Emitter {
	instAddr := o.Cursor()

	o.Raw(opcode)

	return o.Imm32(dst - (instAddr + rel32InstLen))
}

// StoreEAX appends "mov [dst], eax".
func (o *Emitter) StoreEAX(dst uint32) *Emitter {
	o.Raw(OpMovMoffsEAX)

	return o.Imm32(dst)
}

// Prologue appends "push ebp; mov ebp, esp".
func (o *Emitter) Prologue() *Emitter {
	return o.Raw(prologue...)
}

// Epilogue appends "pop ebp; ret".
func (o *Emitter) Epilogue() *Emitter {
	return o.Raw(epilogue...)
}

// Nop appends n one-byte nop instructions.
func (o *Emitter) Nop(n int) *Emitter {
	for i := 0; i < n; i++ {
		o.Raw(OpNop)
	}

	return o
}

// DummyCall appends nops occupying the space of a call that
// pushes numArgs 32-bit arguments and cleans them up. It is used
// to reserve a call site that is filled in later, or to disable
// an existing one.
func (o *Emitter) DummyCall(numArgs int) *Emitter {
	o.Nop(rel32InstLen)

	if numArgs > 0 {
		o.Nop(numArgs*pushImm32InstLen + addESPInstLen)
	}

	return o
}

// HexOrExit calls Hex. It calls DefaultExitFn if an error occurs.
func (o *Emitter) HexOrExit(s string) *Emitter {
	err := o.Hex(s)
	if err != nil {
		DefaultExitFn(err)
	}

	return o
}

// Hex appends the bytes described by a whitespace-separated sequence
// of two-character hex tokens (e.g., "c7 45 fc ff ff 00 00"). Nothing
// is appended if any token is malformed.
func (o *Emitter) Hex(s string) error {
	b, err := conv.HexTokensToBytes(s)
	if err != nil {
		return fmt.Errorf("failed to parse hex at 0x%08x - %w", o.Cursor(), err)
	}

	o.Raw(b...)

	return nil
}
