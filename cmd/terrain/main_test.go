package main

import (
	"bytes"
	"strings"
	"testing"

	"gitlab.com/stephen-fox/hookkit/exefile"
)

func TestPrintTable(t *testing.T) {
	image := make([]byte, exefile.TerrainTableOffset+exefile.TerrainTableSize)
	copy(image[exefile.TerrainTableOffset+4:], []byte{1, 12, 3, 31})

	exe, err := exefile.Parse(image)
	if err != nil {
		t.Fatal(err)
	}

	out := bytes.NewBuffer(nil)

	err = printTable(out, exe)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1+exefile.NumTerrainRegions {
		t.Fatalf("expected %d lines - got %d", 1+exefile.NumTerrainRegions, len(lines))
	}

	if lines[0] != "terrain table at 0x56c8a0:" {
		t.Fatalf("unexpected header %q", lines[0])
	}

	if lines[2] != "region  1:  1 12  3 31" {
		t.Fatalf("unexpected region line %q", lines[2])
	}
}
