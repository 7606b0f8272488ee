package conv

import (
	"bufio"
	"fmt"
	"io"
)

const goSliceBytesPerLine = 8

// BytesToGoSliceFormat converts a []byte into a Go []byte declaration string.
//
// If noFormatting is true, the declaration is written on a single line.
// Otherwise, each line contains up to eight bytes.
func BytesToGoSliceFormat(b []byte, noFormatting bool, w io.Writer) error {
	out := bufio.NewWriter(w)

	_, err := out.WriteString("[]byte{")
	if err != nil {
		return err
	}

	for i, v := range b {
		var sep string
		switch {
		case noFormatting && i > 0:
			sep = ", "
		case !noFormatting && i%goSliceBytesPerLine == 0:
			sep = "\n\t"
		case !noFormatting:
			sep = " "
		}

		var comma string
		if !noFormatting {
			comma = ","
		}

		_, err = fmt.Fprintf(out, "%s0x%02x%s", sep, v, comma)
		if err != nil {
			return err
		}
	}

	if !noFormatting && len(b) > 0 {
		_, err = out.WriteString("\n")
		if err != nil {
			return err
		}
	}

	_, err = out.WriteString("}\n")
	if err != nil {
		return err
	}

	return out.Flush()
}
