package process_test

import (
	"fmt"
	"log"
	"os"

	"gitlab.com/stephen-fox/hookkit/asmkit"
	"gitlab.com/stephen-fox/hookkit/process"
)

func ExampleApply() {
	mem, err := process.Attach(os.Getpid())
	if err != nil {
		log.Fatalln(err)
	}

	addrs := process.NewAddressTable("steam").
		AddSymbolInContext("hook_site", 0x0060b40a, "steam").
		AddSymbolInContext("skip_target", 0x0060b6ef, "steam")

	// Jump over a block of code and pad the remainder
	// of the overwritten instruction with a nop.
	hook := asmkit.NewEmitter(addrs.AddressOrExit("hook_site")).
		Jmp(addrs.AddressOrExit("skip_target")).
		Nop(1)

	undo, err := process.Apply(mem, process.PatchFrom(hook))
	if err != nil {
		log.Fatalln(err)
	}

	// Later, restore the original code.
	_, err = process.Apply(mem, undo)
	if err != nil {
		log.Fatalln(err)
	}
}

func ExamplePatchFrom() {
	hook := asmkit.NewEmitter(0x0060b40a).
		Jmp(0x0060b6ef).
		Nop(1)

	patch := process.PatchFrom(hook)

	fmt.Printf("0x%x: % x\n", patch.Address, patch.Bytes)

	// Output:
	// 0x60b40a: e9 e0 02 00 00 90
}
