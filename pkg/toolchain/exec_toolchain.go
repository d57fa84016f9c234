package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExecToolchain shells out to system-installed nasm and cc (spec.md §6:
// "Implementers targeting other OSes MAY rely on system-installed
// tools"). It assumes both are already on PATH; the Windows
// self-contained embedding of NASM/link.exe described in
// original_source/compiler/src/backend/x64_build.rs is out of scope
// here (spec.md §1) — this is the POSIX branch of that same file.
type ExecToolchain struct{}

var _ Toolchain = ExecToolchain{}

// Assemble runs `nasm -f elf64 -o objPath asmPath`.
func (ExecToolchain) Assemble(ctx context.Context, asmPath, objPath string) error {
	return run(ctx, "nasm", "-f", "elf64", "-o", objPath, asmPath)
}

// Link runs `cc -no-pie -o exePath objPath runtimePath` (spec.md §5).
func (ExecToolchain) Link(ctx context.Context, objPath, runtimePath, exePath string) error {
	return run(ctx, "cc", "-no-pie", "-o", exePath, objPath, runtimePath)
}

// Run executes exePath with stdin piped in and returns its exit code
// and captured stdout.
func (ExecToolchain) Run(ctx context.Context, exePath string, stdin io.Reader) (int, string, error) {
	cmd := exec.CommandContext(ctx, exePath)
	cmd.Stdin = stdin

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, out.String(), nil
	}

	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		return exitErr.ExitCode(), out.String(), nil
	}
	return -1, out.String(), fmt.Errorf("toolchain: run %s: %w", exePath, err)
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	*target = ee
	return true
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("toolchain: %s: %w", name, err)
	}
	return nil
}
