package asmkit

// 32-bit x86 encodings used when building hooks.
const (
	OpPushImm8    byte = 0x6a
	OpPushImm32   byte = 0x68
	OpCallRel32   byte = 0xe8
	OpJmpRel32    byte = 0xe9
	OpMovMoffsEAX byte = 0xa3
	OpNop         byte = 0x90
	OpPushEBP     byte = 0x55
	OpPopEBP      byte = 0x5d
	OpRet         byte = 0xc3
)

var (
	// prologue is "push ebp; mov ebp, esp".
	prologue = []byte{OpPushEBP, 0x8b, 0xec}

	// epilogue is "pop ebp; ret".
	epilogue = []byte{OpPopEBP, OpRet}

	// addESPImm8 is "add esp, imm8" minus its immediate.
	addESPImm8 = []byte{0x83, 0xc4}
)

const (
	// rel32InstLen is the length of a near call or jump with
	// a 32-bit displacement (opcode plus displacement).
	rel32InstLen = 5

	// pushImm32InstLen is the length of "push imm32".
	pushImm32InstLen = 5

	// addESPInstLen is the length of "add esp, imm8".
	addESPInstLen = 3
)
