package conv

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHexToken is returned when a hex token is not exactly
// two hexadecimal characters.
var ErrInvalidHexToken = errors.New("invalid hex token")

// HexTokensToBytes converts a whitespace-separated sequence of
// two-character hex tokens (e.g., "8b 45 fc") into a []byte.
//
// Unlike a lenient hex reader, any token that is not exactly two
// hexadecimal characters is rejected. An empty or whitespace-only
// string produces an empty []byte.
func HexTokensToBytes(s string) ([]byte, error) {
	tokens := strings.Fields(s)

	out := make([]byte, len(tokens))

	for i, token := range tokens {
		if len(token) != 2 || !isHexChar(token[0]) || !isHexChar(token[1]) {
			return nil, fmt.Errorf("token %d (%q) - %w", i, token, ErrInvalidHexToken)
		}

		_, err := hex.Decode(out[i:i+1], []byte(token))
		if err != nil {
			return nil, fmt.Errorf("failed to hex-decode token %d (%q) - %w", i, token, err)
		}
	}

	return out, nil
}

func isHexChar(b byte) bool {
	return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') || (b >= '0' && b <= '9')
}
