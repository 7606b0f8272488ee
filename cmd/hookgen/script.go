package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"gitlab.com/stephen-fox/hookkit/asmkit"
	"gitlab.com/stephen-fox/hookkit/process"
)

type assembleConfig struct {
	src       io.Reader
	base      string
	context   string
	optLogger *log.Logger
}

type scriptLine struct {
	num    int
	fields []string
}

// assemble reads a hook script and returns the assembled machine code
// along with its base address.
func assemble(config assembleConfig) (*asmkit.Emitter, error) {
	table := process.NewAddressTable(config.context)

	var lines []scriptLine

	scanner := bufio.NewScanner(config.src)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i > -1 {
			line = line[0:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "sym" {
			err := addSymbol(table, fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d - %w", lineNum, err)
			}

			continue
		}

		lines = append(lines, scriptLine{
			num:    lineNum,
			fields: fields,
		})
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to read script - %w", err)
	}

	base, err := operand(table, config.base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base address - %w", err)
	}

	emitter := asmkit.NewEmitter(base).SetLogger(config.optLogger)

	for _, line := range lines {
		err := emit(emitter, table, line.fields[0], line.fields[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d (%q) - %w",
				line.num, strings.Join(line.fields, " "), err)
		}
	}

	return emitter, nil
}

func addSymbol(table *process.AddressTable, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("sym expects CONTEXT NAME ADDRESS, got %d arguments", len(args))
	}

	addr, err := strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		return fmt.Errorf("failed to parse address of symbol %q - %w", args[1], err)
	}

	table.AddSymbolInContext(args[1], uint32(addr), args[0])

	return nil
}

func emit(e *asmkit.Emitter, table *process.AddressTable, directive string, args []string) error {
	switch directive {
	case "prologue":
		e.Prologue()
	case "epilogue":
		e.Epilogue()
	case "push", "jmp", "store":
		if len(args) != 1 {
			return fmt.Errorf("%s expects one operand, got %d", directive, len(args))
		}

		v, err := operand(table, args[0])
		if err != nil {
			return err
		}

		switch directive {
		case "push":
			e.Push(v)
		case "jmp":
			e.Jmp(v)
		case "store":
			e.StoreEAX(v)
		}
	case "call", "callnc":
		if len(args) == 0 {
			return fmt.Errorf("%s expects a destination", directive)
		}

		values, err := operands(table, args)
		if err != nil {
			return err
		}

		if directive == "call" {
			e.Call(values[0], values[1:]...)
		} else {
			e.CallNoCleanup(values[0], values[1:]...)
		}
	case "nop", "dummycall":
		if len(args) != 1 {
			return fmt.Errorf("%s expects a count", directive)
		}

		n, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return fmt.Errorf("failed to parse count - %w", err)
		}

		if directive == "nop" {
			e.Nop(int(n))
		} else {
			e.DummyCall(int(n))
		}
	case "hex":
		return e.Hex(strings.Join(args, " "))
	case "raw":
		b := make([]byte, len(args))

		for i, arg := range args {
			v, err := strconv.ParseUint(arg, 0, 8)
			if err != nil {
				return fmt.Errorf("failed to parse byte %d - %w", i, err)
			}

			b[i] = byte(v)
		}

		e.Raw(b...)
	default:
		return fmt.Errorf("unknown directive: %q", directive)
	}

	return nil
}

func operands(table *process.AddressTable, args []string) ([]uint32, error) {
	values := make([]uint32, len(args))

	for i, arg := range args {
		v, err := operand(table, arg)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}

// operand parses a number in Go syntax (e.g., 0x401000), or looks
// up a symbol in the current context of the address table. Negative
// numbers (e.g., -8) are stored as their 32-bit two's complement.
func operand(table *process.AddressTable, s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("operand is empty")
	}

	if s[0] == '-' {
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("failed to parse number %q - %w", s, err)
		}

		return uint32(int32(v)), nil
	}

	if s[0] >= '0' && s[0] <= '9' {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("failed to parse number %q - %w", s, err)
		}

		return uint32(v), nil
	}

	return table.Address(s)
}
