package iokit

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
)

// Buffer is an append-only byte sink built on bytes.Buffer. Data
// written to a Buffer is never reordered or removed, which makes
// its length a reliable source for derived offsets.
type Buffer struct {
	// Buf is the internal bytes.Buffer. It is automatically
	// instantiated by the struct's methods if it is nil.
	Buf *bytes.Buffer

	// OptLoggerW is an optional logger that, when non-nil,
	// will recieve hexdump-style output when write-type
	// methods are called.
	OptLoggerW *log.Logger
}

// Bytes returns a copy of the data written so far.
func (o *Buffer) Bytes() []byte {
	if o.Buf == nil {
		return []byte{}
	}

	cp := make([]byte, o.Buf.Len())

	copy(cp, o.Buf.Bytes())

	return cp
}

// Len returns the number of bytes written so far.
func (o *Buffer) Len() int {
	if o.Buf == nil {
		return 0
	}

	return o.Buf.Len()
}

// WriteOrExit calls Write. It calls DefaultExitFn if an error occurs.
func (o *Buffer) WriteOrExit(b []byte) int {
	n, err := o.Write(b)
	if err != nil {
		DefaultExitFn(fmt.Errorf("iokit.buffer: failed to write - %w", err))
	}

	return n
}

// Write calls Buf.Write.
func (o *Buffer) Write(b []byte) (int, error) {
	if o.Buf == nil {
		o.Buf = bytes.NewBuffer(nil)
	}

	at := o.Buf.Len()

	n, err := o.Buf.Write(b)

	o.logWrite(at, b[0:n])

	return n, err
}

// WriteByte calls Buf.WriteByte.
func (o *Buffer) WriteByte(b byte) error {
	if o.Buf == nil {
		o.Buf = bytes.NewBuffer(nil)
	}

	at := o.Buf.Len()

	err := o.Buf.WriteByte(b)
	if err != nil {
		return err
	}

	o.logWrite(at, []byte{b})

	return nil
}

func (o *Buffer) logWrite(at int, b []byte) {
	if o.OptLoggerW == nil {
		return
	}

	hexDump := hex.Dump(b)

	if len(hexDump) <= 1 {
		// hex.Dump always adds a newline.
		hexDump = "<empty-value>"
	} else {
		hexDump = hexDump[0 : len(hexDump)-1]
	}

	o.OptLoggerW.Printf("iokit.buffer: wrote at index %d:\n%s", at, hexDump)
}
