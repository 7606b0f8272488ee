package conv

import (
	"bytes"
	"errors"
	"testing"
)

func TestHexTokensToBytes(t *testing.T) {
	b, err := HexTokensToBytes("c7 45 FC ff\tff\n00 00")
	if err != nil {
		t.Fatal(err)
	}

	exp := []byte{0xc7, 0x45, 0xfc, 0xff, 0xff, 0x00, 0x00}
	if !bytes.Equal(b, exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, b)
	}
}

func TestHexTokensToBytes_Empty(t *testing.T) {
	b, err := HexTokensToBytes("  \n ")
	if err != nil {
		t.Fatal(err)
	}

	if len(b) != 0 {
		t.Fatalf("expected no bytes - got 0x%x", b)
	}
}

func TestHexTokensToBytes_Malformed(t *testing.T) {
	for _, s := range []string{"9", "90 9", "900", "zz", "0x90", "90,90"} {
		_, err := HexTokensToBytes(s)
		if !errors.Is(err, ErrInvalidHexToken) {
			t.Fatalf("%q: expected ErrInvalidHexToken - got %v", s, err)
		}
	}
}
