// Package runtime names the ABI contract between emitted code and the
// native runtime it links against. The runtime itself — the native
// implementation of read_int/print_int and the startup shim — is an
// external collaborator out of this compiler's scope (spec.md §1); this
// package exists so the symbol names are declared once and referenced
// from select-instructions (pkg/ir) and the printer (pkg/x64) instead of
// being repeated as string literals.
package runtime

// ReadIntSymbol is the extern symbol emitted code calls to block until
// stdin provides a parseable decimal integer. It returns its result in
// rax and takes no arguments.
const ReadIntSymbol = "read_int"

// PrintIntSymbol is the extern symbol that prints a decimal integer
// followed by a newline to stdout. It is not emitted by any current
// Rlang construct (the surface language has no statement that prints
// mid-program) but is part of the ABI a linked runtime provides, per
// spec.md §6, for a driver that wants to report the native-run result.
const PrintIntSymbol = "print_int"

// EntrySymbol is the process entry point the runtime's startup shim
// installs: it performs CRT initialization, calls the compiled start()
// function, and exits with its return value truncated to 32 bits.
const EntrySymbol = "__runtime_startup"

// StartSymbol is the label the compiler emits for the single entry point
// of a compiled Rlang program; the runtime's startup shim calls this.
const StartSymbol = "start"
