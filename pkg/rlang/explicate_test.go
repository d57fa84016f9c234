package rlang

import (
	"testing"

	"rlang.dev/compiler/pkg/ir"
)

func explicateSrc(src string) ir.Program {
	prog := parse(src)
	n := Decomplify(PartialEval(Uniquify(prog.Exp)))
	return Explicate(n)
}

func TestExplicateConstant(t *testing.T) {
	p := explicateSrc("(123)")
	tail, ok := p.Entry.Labels[ir.EntryLabel]
	if !ok {
		t.Fatalf("missing entry label %q", ir.EntryLabel)
	}
	ret, ok := tail.(ir.Return)
	if !ok {
		t.Fatalf("got %+v, want ir.Return", tail)
	}
	atom, ok := ret.Value.(ir.AtomExp)
	if !ok {
		t.Fatalf("got %+v, want ir.AtomExp", ret.Value)
	}
	if i, ok := atom.Atom.(ir.Int); !ok || i.Value != 123 {
		t.Fatalf("got %+v, want ir.Int(123)", atom.Atom)
	}
	if len(p.Entry.Locals) != 0 {
		t.Fatalf("locals = %v, want none", p.Entry.Locals)
	}
}

func TestExplicateAddReadProducesOrderedAssignments(t *testing.T) {
	p := explicateSrc("(+ (read) (read))")

	if len(p.Entry.Locals) != 2 || p.Entry.Locals[0].String() != "tmp.0" || p.Entry.Locals[1].String() != "tmp.1" {
		t.Fatalf("locals = %v, want [tmp.0 tmp.1]", p.Entry.Locals)
	}

	tail := p.Entry.Labels[ir.EntryLabel]
	seq0, ok := tail.(ir.Seq)
	if !ok || seq0.Stmt.Name.String() != "tmp.0" {
		t.Fatalf("first stmt = %+v, want tmp.0 = read", tail)
	}
	if _, ok := seq0.Stmt.Value.(ir.Prim); !ok {
		t.Fatalf("tmp.0 value = %+v, want ir.Prim{read}", seq0.Stmt.Value)
	}

	seq1, ok := seq0.Next.(ir.Seq)
	if !ok || seq1.Stmt.Name.String() != "tmp.1" {
		t.Fatalf("second stmt = %+v, want tmp.1 = read", seq0.Next)
	}

	ret, ok := seq1.Next.(ir.Return)
	if !ok {
		t.Fatalf("final = %+v, want ir.Return", seq1.Next)
	}
	p2, ok := ret.Value.(ir.Prim)
	if !ok || p2.Op != "+" {
		t.Fatalf("return value = %+v, want Prim{+}", ret.Value)
	}
}

func TestExplicateNegateOfReadOperandDoesNotPanic(t *testing.T) {
	// Regression: (- (read)) nested as an operand of "+" used to reach
	// explicate with a non-atomic Prim arg and panic in toAtom.
	p := explicateSrc("(+ (read) (- (read)))")

	if len(p.Entry.Locals) != 3 {
		t.Fatalf("locals = %v, want 3 (two reads plus the negate result)", p.Entry.Locals)
	}
	if _, ok := p.Entry.Labels[ir.EntryLabel].(ir.Seq); !ok {
		t.Fatalf("got %+v, want a Seq chain of assignments", p.Entry.Labels[ir.EntryLabel])
	}
}

func TestExplicateNestedLetFoldsAwayAtPartialEval(t *testing.T) {
	p := explicateSrc("(let ([x (let ([y 42]) y)]) x)")
	if len(p.Entry.Locals) != 0 {
		t.Fatalf("locals = %v, want none (fully folded by partial eval)", p.Entry.Locals)
	}
	ret, ok := p.Entry.Labels[ir.EntryLabel].(ir.Return)
	if !ok {
		t.Fatalf("got %+v, want ir.Return", p.Entry.Labels[ir.EntryLabel])
	}
	atom := ret.Value.(ir.AtomExp)
	if i, ok := atom.Atom.(ir.Int); !ok || i.Value != 42 {
		t.Fatalf("got %+v, want ir.Int(42)", atom.Atom)
	}
}
