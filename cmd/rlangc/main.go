package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teris-io/cli"

	"rlang.dev/compiler/pkg/toolchain"
	"rlang.dev/compiler/pkg/x64"
)

var Description = strings.ReplaceAll(`
rlangc compiles a single Rlang expression to x86-64 NASM assembly,
cross-checking an AST interpreter against an IR interpreter along the
way. With no FILE argument it starts an interactive REPL.
`, "\n", " ")

var App = cli.New(Description).
	WithArg(cli.NewArg("file", "The Rlang source file to compile").AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("out", "Output path for the generated .asm file (default: FILE with its extension replaced)").WithType(cli.TypeString)).
	WithOption(cli.NewOption("run", "Assemble, link and run the compiled program").WithType(cli.TypeBool)).
	WithOption(cli.NewOption("runtime", "Path to the runtime archive to link against (required with --run)").WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) == 0 {
		NewRepl().Run()
		return 0
	}

	inputPath := args[0]
	src, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Printf("ERROR: unable to open input file: %s\n", err)
		return -1
	}

	result, parseErrs := runPipeline(string(src), os.Stdin)
	if parseErrs != nil {
		printParseErrors(parseErrs)
		return -1
	}

	if result.ASTResult.HadError {
		fmt.Printf("ERROR: AST interpreter: %s\n", strings.Join(result.ASTResult.Errors, "; "))
		return -1
	}
	if result.IRResult.HadError {
		fmt.Printf("ERROR: IR interpreter: %s\n", strings.Join(result.IRResult.Errors, "; "))
		return -1
	}
	if !resultsAgree(result) {
		fmt.Printf("ERROR: AST interpreter and IR interpreter disagree (%d vs %d)\n",
			result.ASTResult.Value, result.IRResult.Value)
		return -1
	}

	asmPath := options["out"]
	if asmPath == "" {
		asmPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".asm"
	}
	asmText := x64.NewPrinter(result.X64).Print()
	if err := os.WriteFile(asmPath, []byte(asmText), 0o644); err != nil {
		fmt.Printf("ERROR: unable to write output file: %s\n", err)
		return -1
	}

	fmt.Printf("Result of interpreting the AST: %d\n", result.ASTResult.Value)
	fmt.Printf("Result of interpreting the IR: %d\n", result.IRResult.Value)
	fmt.Printf("Wrote %s\n", asmPath)

	if _, run := options["run"]; run {
		return doRun(asmPath, options["runtime"])
	}

	return 0
}

// doRun assembles, links and executes asmPath against the caller-supplied
// runtime archive (spec.md §6: "the repo does not ship one, per the
// runtime being out of scope").
func doRun(asmPath, runtimePath string) int {
	if runtimePath == "" {
		fmt.Printf("ERROR: --run requires --runtime PATH\n")
		return -1
	}

	base := strings.TrimSuffix(asmPath, filepath.Ext(asmPath))
	objPath, exePath := base+".o", base

	tc := toolchain.ExecToolchain{}
	ctx := context.Background()

	if err := tc.Assemble(ctx, asmPath, objPath); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}
	if err := tc.Link(ctx, objPath, runtimePath, exePath); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}
	code, stdout, err := tc.Run(ctx, exePath, os.Stdin)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}
	fmt.Print(stdout)
	fmt.Printf("Exit code: %d\n", code)
	return code
}

func main() { os.Exit(App.Run(os.Args, os.Stdout)) }
