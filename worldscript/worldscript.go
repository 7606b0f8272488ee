// Package worldscript holds world map script opcodes.
package worldscript

// New creates a Script from a copy of the specified opcodes.
func New(opcodes []uint32) *Script {
	cp := make([]uint32, len(opcodes))

	copy(cp, opcodes)

	return &Script{
		opcodes: cp,
	}
}

// Script is an ordered sequence of world script opcodes.
type Script struct {
	opcodes []uint32
}

// Opcodes returns a copy of the script's opcodes.
func (o *Script) Opcodes() []uint32 {
	cp := make([]uint32, len(o.opcodes))

	copy(cp, o.opcodes)

	return cp
}

// Len returns the number of opcodes in the script.
func (o *Script) Len() int {
	return len(o.opcodes)
}
