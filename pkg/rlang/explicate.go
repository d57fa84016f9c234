package rlang

import (
	"fmt"
	"sort"

	"rlang.dev/compiler/pkg/ident"
	"rlang.dev/compiler/pkg/ir"
)

// ----------------------------------------------------------------------------
// Explicate Control (C7)
//
// Converts an A-normalized AST into an ir.Program: a single labelled
// block (".l1") whose Tail is a right-leaning Seq/Return chain. Two
// mutually recursive traversals thread a growing continuation (spec.md
// §4.7); the pattern to preserve is the right fold over bindings — it is
// what makes later bindings nest inside earlier ones, the correct
// evaluation order.

type explicator struct {
	locals map[ident.Identifier]struct{}
}

// Explicate lowers n (already uniquified, folded, and decomplified) into
// an ir.Program with a single entry label.
func Explicate(n AstNode) ir.Program {
	ex := &explicator{locals: map[ident.Identifier]struct{}{}}
	tail := ex.explicateTail(n)

	locals := make([]ident.Identifier, 0, len(ex.locals))
	for name := range ex.locals {
		locals = append(locals, name)
	}
	sort.Slice(locals, func(i, j int) bool { return ident.Less(locals[i], locals[j]) })

	return ir.Program{Entry: ir.Function{
		Locals: locals,
		Labels: map[string]ir.Tail{ir.EntryLabel: tail},
		Order:  []string{ir.EntryLabel},
	}}
}

// explicateTail lowers e, which is in tail position, to a Tail.
func (ex *explicator) explicateTail(e AstNode) ir.Tail {
	switch t := e.(type) {
	case Int:
		return ir.Return{Value: ir.AtomExp{Atom: toAtom(t)}}

	case Var:
		return ir.Return{Value: ir.AtomExp{Atom: toAtom(t)}}

	case Prim:
		return ir.Return{Value: toExp(t)}

	case Let:
		acc := ex.explicateTail(t.Body)
		for i := len(t.Bindings) - 1; i >= 0; i-- {
			b := t.Bindings[i]
			acc = ex.explicateAssign(b.Expr, b.Name, acc)
		}
		return acc

	default:
		panic(fmt.Sprintf("explicate: unreachable AstNode %T in tail position", e))
	}
}

// explicateAssign lowers e as the value to be assigned to x, with cont
// continuing afterward.
func (ex *explicator) explicateAssign(e AstNode, x ident.Identifier, cont ir.Tail) ir.Tail {
	switch t := e.(type) {
	case Int:
		ex.locals[x] = struct{}{}
		return ir.Seq{Stmt: ir.Stmt{Name: x, Value: ir.AtomExp{Atom: toAtom(t)}}, Next: cont}

	case Var:
		ex.locals[x] = struct{}{}
		return ir.Seq{Stmt: ir.Stmt{Name: x, Value: ir.AtomExp{Atom: toAtom(t)}}, Next: cont}

	case Prim:
		ex.locals[x] = struct{}{}
		return ir.Seq{Stmt: ir.Stmt{Name: x, Value: toExp(t)}, Next: cont}

	case Let:
		acc := ex.explicateAssign(t.Body, x, cont)
		for i := len(t.Bindings) - 1; i >= 0; i-- {
			b := t.Bindings[i]
			acc = ex.explicateAssign(b.Expr, b.Name, acc)
		}
		return acc

	default:
		panic(fmt.Sprintf("explicate: unreachable AstNode %T in assign position", e))
	}
}

func toAtom(n AstNode) ir.Atm {
	switch t := n.(type) {
	case Int:
		return ir.Int{Value: t.Value}
	case Var:
		return ir.Var{Name: t.Name}
	default:
		panic(fmt.Sprintf("explicate: %T is not atomic", n))
	}
}

func toExp(p Prim) ir.Exp {
	args := make([]ir.Atm, len(p.Args))
	for i, a := range p.Args {
		args[i] = toAtom(a)
	}
	return ir.Prim{Op: p.Op, Args: args}
}
