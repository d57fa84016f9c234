package main

import (
	"fmt"
	"io"
	"strings"

	"rlang.dev/compiler/pkg/cache"
	"rlang.dev/compiler/pkg/ir"
	"rlang.dev/compiler/pkg/rlang"
	"rlang.dev/compiler/pkg/runtime"
	"rlang.dev/compiler/pkg/x64"
)

const startSymbol = runtime.StartSymbol

// pipelineResult carries every intermediate representation the REPL's
// :show-ast/:show-ir/:show-x64 commands and batch mode need, plus both
// interpreters' results (spec.md §4.15).
type pipelineResult struct {
	AST       rlang.AstNode
	IR        ir.Program
	X64       x64.Program
	ASTResult rlang.Result
	IRResult  ir.Result
}

// runPipeline runs lex -> parse -> uniquify -> partial eval -> decomplify
// -> (AST interpret) -> explicate -> (IR interpret) -> select -> homes ->
// patch -> finalize, exactly as spec.md §4.15 orders it. parseErrs is
// non-nil (and result nil) if the program failed to parse.
func runPipeline(src string, stdin io.Reader) (result *pipelineResult, parseErrs []rlang.Error) {
	tokens := rlang.NewLexer(src).Lex()
	prog := rlang.NewParser(tokens).Parse()
	if !rlang.ParseSuccess(prog) {
		return nil, rlang.CollectErrors(prog.Exp)
	}

	ast := rlang.Uniquify(prog.Exp)
	ast = rlang.PartialEval(ast)
	ast = rlang.Decomplify(ast)

	readCache := cache.New()

	astInterp := rlang.NewInterp(readCache, stdin)
	astResult := astInterp.Run(ast)

	irProg := rlang.Explicate(ast)

	readCache.SetMode(cache.ReadMode)
	irInterp := ir.NewInterp(readCache, strings.NewReader(""))
	irResult := irInterp.Run(irProg.Entry)

	x64Prog := ir.Select(irProg)
	startFn := x64Prog.Functions[startSymbol]
	startFn = x64.AssignHomes(startFn)
	startFn = x64.PatchInstructions(startFn)
	startFn = x64.FinalizeFrame(startFn)
	x64Prog.Functions[startSymbol] = startFn

	return &pipelineResult{AST: ast, IR: irProg, X64: x64Prog, ASTResult: astResult, IRResult: irResult}, nil
}

// resultsAgree reports whether both interpreters produced the same
// value with no errors (spec.md §4.15: "Both interpreters' integer
// results must agree; if they disagree the driver SHOULD abort").
func resultsAgree(r *pipelineResult) bool {
	return !r.ASTResult.HadError && !r.IRResult.HadError && r.ASTResult.Value == r.IRResult.Value
}

func printParseErrors(errs []rlang.Error) {
	for _, e := range errs {
		fmt.Printf("ERROR: %d:%d: %s\n", e.Token.Line, e.Token.Col, e.Msg)
	}
}
