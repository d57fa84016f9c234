package ir

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rlang.dev/compiler/pkg/cache"
	"rlang.dev/compiler/pkg/ident"
)

// ----------------------------------------------------------------------------
// IR Interpreter (C8)

// Result mirrors pkg/rlang.Result: the shape every interpreter in this
// compiler returns (spec.md §4.8).
type Result struct {
	Value    int64
	HadError bool
	Errors   []string
}

// Interp straight-line-evaluates a Tail. It is run second, in ReadMode,
// against the same cache the AST interpreter (pkg/rlang) wrote in
// WriteMode, so both see an identical `read` stream (spec.md §4.10).
type Interp struct {
	vars   map[ident.Identifier]int64
	cache  *cache.ReadCache
	stdin  *bufio.Reader
	errors []string
}

// NewInterp returns an Interp. stdin is only consulted if c is in
// WriteMode (running the IR interpreter standalone, outside the normal
// two-interpreter pipeline).
func NewInterp(c *cache.ReadCache, stdin io.Reader) *Interp {
	return &Interp{
		vars:  map[ident.Identifier]int64{},
		cache: c,
		stdin: bufio.NewReader(stdin),
	}
}

// Run evaluates fn's entry block and returns the accumulated Result.
func (in *Interp) Run(fn Function) Result {
	tail, ok := fn.Labels[EntryLabel]
	if !ok {
		panic(fmt.Sprintf("ir interp: missing entry label %q", EntryLabel))
	}
	v, ok := in.evalTail(tail)
	return Result{Value: v, HadError: !ok, Errors: in.errors}
}

func (in *Interp) fail(format string, args ...any) {
	in.errors = append(in.errors, fmt.Sprintf(format, args...))
}

func (in *Interp) evalTail(t Tail) (int64, bool) {
	switch n := t.(type) {
	case Return:
		return in.evalExp(n.Value)

	case Seq:
		v, ok := in.evalExp(n.Stmt.Value)
		if !ok {
			return 0, false
		}
		in.vars[n.Stmt.Name] = v
		return in.evalTail(n.Next)

	default:
		panic(fmt.Sprintf("ir interp: unreachable Tail %T", t))
	}
}

func (in *Interp) evalExp(e Exp) (int64, bool) {
	switch n := e.(type) {
	case AtomExp:
		return in.evalAtom(n.Atom)

	case Prim:
		return in.evalPrim(n)

	default:
		panic(fmt.Sprintf("ir interp: unreachable Exp %T", e))
	}
}

// evalAtom resolves a to an integer. Every Seq stores the already
// evaluated int64 value of its right-hand side, so a Var that was
// assigned from another Var holds that Var's value and one map lookup
// resolves it; no chain is followed at lookup time.
func (in *Interp) evalAtom(a Atm) (int64, bool) {
	switch t := a.(type) {
	case Int:
		return t.Value, true

	case Var:
		v, ok := in.vars[t.Name]
		if !ok {
			in.fail("undefined variable %q", t.Name.String())
			return 0, false
		}
		return v, true

	default:
		panic(fmt.Sprintf("ir interp: unreachable Atm %T", a))
	}
}

func (in *Interp) evalPrim(p Prim) (int64, bool) {
	switch p.Op {
	case "read":
		return in.readInt()

	case "-":
		v, ok := in.evalAtom(p.Args[0])
		if !ok {
			return 0, false
		}
		return -v, true

	case "+":
		l, lok := in.evalAtom(p.Args[0])
		r, rok := in.evalAtom(p.Args[1])
		if !lok || !rok {
			return 0, false
		}
		return l + r, true

	default:
		panic(fmt.Sprintf("ir interp: unreachable primitive op %q", p.Op))
	}
}

func (in *Interp) readInt() (int64, bool) {
	if in.cache.Mode() == cache.ReadMode {
		v, ok := in.cache.Replay("read")
		if !ok {
			panic("ir interp: read-call cache exhausted in ReadMode — interpreters disagreed about call count")
		}
		return v, true
	}

	for {
		line, err := in.stdin.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			if n, perr := strconv.ParseInt(trimmed, 10, 64); perr == nil {
				in.cache.Record("read", n)
				return n, true
			}
		}
		if err != nil {
			in.fail("read: %v", err)
			return 0, false
		}
	}
}
