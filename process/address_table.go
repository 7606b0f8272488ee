package process

import (
	"fmt"
)

// NewAddressTable creates a new instance of an *AddressTable with
// the specified initial context. Refer to AddressTable's documentation
// for more information.
func NewAddressTable(initialContext string) *AddressTable {
	return &AddressTable{
		currentContext:          initialContext,
		contextToSymbolsToAddrs: make(map[string]map[string]uint32),
	}
}

// AddressTable organizes the addresses of symbols for different
// releases (contexts) of the same executable.
//
// Code and data move between releases of a program. A hook that calls
// a game function, or a patch that stores to a game variable, must
// use the addresses of the release it is applied to. Rather than
// hard-coding the addresses of one release, add each release's
// addresses to its own context and select the context at runtime.
type AddressTable struct {
	currentContext          string
	contextToSymbolsToAddrs map[string]map[string]uint32
}

// SetContext sets the current context to the specified value.
func (o *AddressTable) SetContext(context string) *AddressTable {
	o.currentContext = context
	return o
}

// CurrentContext returns the current context.
func (o *AddressTable) CurrentContext() string {
	return o.currentContext
}

// DeleteContext deletes the specified context.
func (o *AddressTable) DeleteContext(context string) *AddressTable {
	delete(o.contextToSymbolsToAddrs, context)
	return o
}

// AddSymbolInContext adds or sets the address of a symbol for
// the specified context.
func (o *AddressTable) AddSymbolInContext(symbolName string, address uint32, context string) *AddressTable {
	symbolsToAddrs := o.contextToSymbolsToAddrs[context]
	if symbolsToAddrs == nil {
		symbolsToAddrs = make(map[string]uint32)
		o.contextToSymbolsToAddrs[context] = symbolsToAddrs
	}

	symbolsToAddrs[symbolName] = address

	return o
}

// DeleteSymbolFromContext deletes a symbol from the specified context.
func (o *AddressTable) DeleteSymbolFromContext(symbolName string, context string) *AddressTable {
	delete(o.contextToSymbolsToAddrs[context], symbolName)
	return o
}

// AddressOrExit calls Address. It calls DefaultExitFn if an error occurs.
func (o *AddressTable) AddressOrExit(symbolName string) uint32 {
	addr, err := o.Address(symbolName)
	if err != nil {
		DefaultExitFn(err)
	}

	return addr
}

// Address returns the address of the specified symbol for the
// currently selected context.
func (o *AddressTable) Address(symbolName string) (uint32, error) {
	symbolsToAddrs, hasIt := o.contextToSymbolsToAddrs[o.currentContext]
	if !hasIt {
		return 0, fmt.Errorf("the current context (%q) is not in the lookup table",
			o.currentContext)
	}

	addr, hasIt := symbolsToAddrs[symbolName]
	if !hasIt {
		return 0, fmt.Errorf("failed to find the symbol %q in the table for %q",
			symbolName, o.currentContext)
	}

	return addr, nil
}
