// hookgen assembles a 32-bit x86 hook from a simple script.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gitlab.com/stephen-fox/hookkit/conv"
)

const (
	baseArg         = "b"
	contextArg      = "c"
	outputFormatArg = "o"
	verboseArg      = "v"
	helpArg         = "h"

	hexFormat = "hex"
	rawFormat = "raw"
	b64Format = "b64"
	goFormat  = "go"

	appName = "hookgen"
	usage   = appName + `

DESCRIPTION
  Assembles a 32-bit x86 hook from a script read from a file or stdin.
  The hook is assembled as if its first byte resides at the base address.

USAGE
  ` + appName + ` -` + baseArg + ` ADDRESS [options] [SCRIPT-PATH]

SCRIPT
  One directive per line. '#' starts a comment. Operands are numbers
  (e.g., 0x401000) or symbol names defined with 'sym'.

    prologue                 push ebp; mov ebp, esp
    epilogue                 pop ebp; ret
    push VALUE
    call DST [ARG...]        cdecl call, caller cleans up the stack
    callnc DST [ARG...]      call without stack cleanup
    jmp DST
    store DST                mov [DST], eax
    nop COUNT
    dummycall NUM-ARGS       nops the size of a call with NUM-ARGS
    hex TOKENS...            e.g., hex c7 45 fc ff ff 00 00
    raw BYTES...             e.g., raw 0x90 0xcc
    sym CONTEXT NAME ADDR    define NAME's address for CONTEXT

EXAMPLES
  $ printf 'prologue\ncall 0x405000 1 2\nepilogue\n' | ` + appName + ` -` + baseArg + ` 0x401000
  558bec6a026a01e8f43f000083c4085dc3

OPTIONS
`
)

func main() {
	log.SetFlags(0)

	err := mainWithError()
	if err != nil {
		log.Fatalln("fatal:", err)
	}
}

func mainWithError() error {
	base := flag.String(
		baseArg,
		"",
		"The address of the hook's first byte (a number or a symbol name)")
	context := flag.String(
		contextArg,
		"default",
		"The address table context used to resolve symbol names")
	outputFormat := flag.String(
		outputFormatArg,
		hexFormat,
		fmt.Sprintf("The output format ('%s', '%s', '%s', '%s')",
			hexFormat, rawFormat, b64Format, goFormat))
	verbose := flag.Bool(
		verboseArg,
		false,
		"Log a hexdump of each emitted instruction")
	help := flag.Bool(
		helpArg,
		false,
		"Display this information")

	flag.Parse()

	if *help {
		os.Stderr.WriteString(usage)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *base == "" {
		return fmt.Errorf("please specify a base address using '-%s'", baseArg)
	}

	var src io.Reader
	switch flag.NArg() {
	case 0:
		src = os.Stdin
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()

		src = f
	default:
		return fmt.Errorf("expected at most one script path, got %d arguments", flag.NArg())
	}

	config := assembleConfig{
		src:     src,
		base:    *base,
		context: *context,
	}

	if *verbose {
		config.optLogger = log.New(os.Stderr, "", 0)
	}

	hook, err := assemble(config)
	if err != nil {
		return err
	}

	return writeOutput(os.Stdout, *outputFormat, hook.Bytes())
}

func writeOutput(w io.Writer, format string, b []byte) error {
	var err error

	switch format {
	case hexFormat:
		_, err = fmt.Fprintln(w, hex.EncodeToString(b))
	case rawFormat:
		_, err = w.Write(b)
	case b64Format:
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(b))
	case goFormat:
		err = conv.BytesToGoSliceFormat(b, false, w)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}

	return err
}
