package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// replAction runs a meta-command and reports whether the REPL should
// keep going (mirrors the teacher's action-table dispatch and the
// original source's repl.rs ReplCommand/ReplResult pair).
type replAction func(r *Repl) (keepGoing bool)

type replCommand struct {
	cmd    string
	help   string
	action replAction
}

// Repl is the interactive driver (C15): one program compiled and
// cross-interpreted per non-empty input line, with toggleable debug
// dumps of each intermediate representation.
type Repl struct {
	commands  []replCommand
	showAST   bool
	showIR    bool
	showX64   bool
	multiline bool
	buf       strings.Builder
}

// NewRepl returns a Repl with its command table installed.
func NewRepl() *Repl {
	r := &Repl{}
	r.commands = []replCommand{
		{":help", "show available commands", (*Repl).printHelp},
		{":show-ast", "toggle printing the decomplified AST", func(r *Repl) bool { r.showAST = !r.showAST; return true }},
		{":show-ir", "toggle printing the intermediate representation", func(r *Repl) bool { r.showIR = !r.showIR; return true }},
		{":show-x64", "toggle printing the x64 assembly", func(r *Repl) bool { r.showX64 = !r.showX64; return true }},
		{":grammer", "print the grammar", (*Repl).printGrammar},
		{":quit", "exit the repl", func(r *Repl) bool { return false }},
	}
	return r
}

func (r *Repl) printHelp() bool {
	fmt.Println()
	for _, c := range r.commands {
		fmt.Printf("%s - %s\n", c.cmd, c.help)
	}
	fmt.Println(";; - toggle multiline input buffering")
	fmt.Println()
	return true
}

func (r *Repl) printGrammar() bool {
	fmt.Println(`
expr  ::= int | (read) | ('-' exp) | ('+' exp exp)
        | var | (let ([var exp]+) exp)
rlang ::= exp
        `)
	return true
}

func (r *Repl) handleCommand(cmd string) (keepGoing bool) {
	for _, c := range r.commands {
		if c.cmd == cmd {
			return c.action(r)
		}
	}
	return true
}

// Run reads one line at a time from stdin until :quit or EOF.
func (r *Repl) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			continue
		}

		if line == ";;" {
			if r.multiline {
				r.runProgram(r.buf.String())
				r.buf.Reset()
			}
			r.multiline = !r.multiline
			continue
		}

		if r.multiline {
			r.buf.WriteString(line)
			r.buf.WriteByte('\n')
			continue
		}

		if strings.HasPrefix(line, ":") {
			if !r.handleCommand(line) {
				fmt.Println("Goodbye!")
				return
			}
			continue
		}

		r.runProgram(line)
	}
}

func (r *Repl) runProgram(src string) {
	result, parseErrs := runPipeline(src, os.Stdin)
	if parseErrs != nil {
		printParseErrors(parseErrs)
		return
	}

	if r.showAST {
		fmt.Println("AST:")
		fmt.Printf("%#v\n", result.AST)
	}

	if result.ASTResult.HadError {
		for _, e := range result.ASTResult.Errors {
			fmt.Printf("ERROR: %s\n", e)
		}
		return
	}
	fmt.Printf("Result of interpreting the AST: %d\n\n", result.ASTResult.Value)

	if r.showIR {
		fmt.Println("IR:")
		fmt.Printf("%#v\n", result.IR)
	}

	if result.IRResult.HadError {
		for _, e := range result.IRResult.Errors {
			fmt.Printf("ERROR: %s\n", e)
		}
		return
	}
	fmt.Printf("Result of interpreting the IR: %d\n\n", result.IRResult.Value)

	if r.showX64 {
		fmt.Printf("%#v\n", result.X64)
	}

	if !resultsAgree(result) {
		fmt.Printf("ERROR: AST interpreter and IR interpreter disagree (%d vs %d)\n",
			result.ASTResult.Value, result.IRResult.Value)
	}
}
