// Package toolchain describes the external assembler/linker contract
// the compiler shells out to (spec.md §6: "the shell-out to an external
// assembler and linker... described only by their interfaces"). The
// assembler and linker binaries themselves are an external collaborator,
// out of this module's scope.
package toolchain

import (
	"context"
	"io"
)

// Toolchain assembles a NASM source file, links the resulting object
// against a runtime archive, and runs the produced executable.
type Toolchain interface {
	// Assemble turns the NASM source at asmPath into the object file at
	// objPath.
	Assemble(ctx context.Context, asmPath, objPath string) error

	// Link combines objPath and the runtime archive at runtimePath into
	// the executable at exePath.
	Link(ctx context.Context, objPath, runtimePath, exePath string) error

	// Run executes exePath, feeding it stdin, and returns its exit code
	// and captured stdout.
	Run(ctx context.Context, exePath string, stdin io.Reader) (exitCode int, stdout string, err error)
}
