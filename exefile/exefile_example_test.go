package exefile_test

import (
	"fmt"
	"log"

	"gitlab.com/stephen-fox/hookkit/exefile"
)

func ExampleFile_SetTerrainType() {
	// A real image would be read from the game's executable file.
	image := make([]byte, exefile.TerrainTableOffset+exefile.TerrainTableSize)

	exe := exefile.ParseOrExit(image)

	err := exe.SetTerrainType(5, 2, 17)
	if err != nil {
		log.Fatalln(err)
	}

	err = exe.SetTerrainType(5, 2, 32)
	fmt.Println(err)

	patched := exe.BytesOrExit()

	fmt.Printf("0x%x: %d\n", exefile.TerrainTableOffset+5*4+2,
		patched[exefile.TerrainTableOffset+5*4+2])

	// Output:
	// terrain type must be in the range of 0-31, got 32 - value out of range
	// 0x56c8b6: 17
}
