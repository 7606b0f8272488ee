// Package hookkit provides functionality for patching the code and static
// data of a 32-bit x86 game executable, either on disk or in a running
// process.
//
// APIs are separated into subpackages, and documented accordingly.
//
// For scripting convenience, "OrExit" functions and methods are provided.
// Any errors encountered by these functions are treated as fatal. In such
// cases, an exit handler function is invoked.
package hookkit
