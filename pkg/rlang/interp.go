package rlang

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
// AST Interpreter (C6)

// Result is the shape every interpreter in this package returns (spec.md
// §4.6/§4.8): the final value if evaluation succeeded, whether any error
// occurred, and every error message accumulated along the way.
type Result struct {
	Value    int64
	HadError bool
	Errors   []string
}

// Interp holds the mutable state threaded through a single AST
// interpretation run: the variable environment and the shared read-call
// cache (spec.md §4.10).
type Interp struct {
	env    map[ident.Identifier]int64
	cache  *cache.ReadCache
	stdin  *bufio.Reader
	errors []string
}

// NewInterp returns an Interp that reads `read` input from stdin and
// records it into c (write mode is the cache's responsibility to set).
func NewInterp(c *cache.ReadCache, stdin io.Reader) *Interp {
	return &Interp{
		env:   map[ident.Identifier]int64{},
		cache: c,
		stdin: bufio.NewReader(stdin),
	}
}

// Run evaluates n and returns the accumulated Result.
func (in *Interp) Run(n AstNode) Result {
	v, ok := in.eval(n)
	return Result{Value: v, HadError: !ok, Errors: in.errors}
}

func (in *Interp) fail(format string, args ...any) {
	in.errors = append(in.errors, fmt.Sprintf(format, args...))
}

func (in *Interp) eval(n AstNode) (int64, bool) {
	switch t := n.(type) {
	case Int:
		return t.Value, true

	case Var:
		v, ok := in.env[t.Name]
		if !ok {
			in.fail("undefined variable %q", t.Name.String())
			return 0, false
		}
		return v, true

	case Prim:
		return in.evalPrim(t)

	case Let:
		for _, b := range t.Bindings {
			if _, exists := in.env[b.Name]; exists {
				in.fail("duplicate binding %q (uniquify should make this unreachable)", b.Name.String())
				return 0, false
			}
			v, ok := in.eval(b.Expr)
			if !ok {
				return 0, false
			}
			in.env[b.Name] = v
		}
		return in.eval(t.Body)

	case Error:
		in.fail("parse error: %s", t.Msg)
		return 0, false

	default:
		panic(fmt.Sprintf("interp: unreachable AstNode %T", n))
	}
}

func (in *Interp) evalPrim(p Prim) (int64, bool) {
	switch p.Op {
	case "read":
		return in.readInt()

	case "-":
		v, ok := in.eval(p.Args[0])
		if !ok {
			return 0, false
		}
		return -v, true

	case "+":
		l, lok := in.eval(p.Args[0])
		r, rok := in.eval(p.Args[1])
		if !lok || !rok {
			return 0, false
		}
		return l + r, true

	default:
		panic(fmt.Sprintf("interp: unreachable primitive op %q", p.Op))
	}
}

// readInt implements the §4.10 read-call cache protocol: in WriteMode it
// blocks on stdin, parses (retrying on a malformed line), records the
// value, and returns it; in ReadMode it replays the value the first
// interpreter already recorded.
func (in *Interp) readInt() (int64, bool) {
	if in.cache.Mode() == cache.ReadMode {
		v, ok := in.cache.Replay("read")
		if !ok {
			panic("interp: read-call cache exhausted in ReadMode — interpreters disagreed about call count")
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
