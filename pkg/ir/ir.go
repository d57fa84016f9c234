// Package ir holds the three-address intermediate representation that
// Explicate Control (pkg/rlang) produces and that the IR interpreter and
// Select Instructions (both in this package; Select produces pkg/x64
// types) consume (spec.md §3).
package ir

import "rlang.dev/compiler/pkg/ident"

// Atm is an atomic operand: a literal or a variable reference. Every
// operand in the IR is atomic — this is the invariant decomplify
// established on the AST and explicate control preserves.
type Atm interface{ atm() }

// Int is an integer literal atom.
type Int struct{ Value int64 }

func (Int) atm() {}

// Var is a variable-reference atom.
type Var struct{ Name ident.Identifier }

func (Var) atm() {}

// Exp is an expression: either a bare atom or a primitive application
// over atomic arguments.
type Exp interface{ exp() }

// AtomExp wraps a bare Atm in expression position.
type AtomExp struct{ Atom Atm }

func (AtomExp) exp() {}

// Prim is a primitive application; op is one of "+", "-", "read" and
// len(Args) matches its arity.
type Prim struct {
	Op   string
	Args []Atm
}

func (Prim) exp() {}

// Stmt is an assignment: the result of evaluating Value is bound to Name.
type Stmt struct {
	Name  ident.Identifier
	Value Exp
}

// Tail is a block's control-terminating form: a linked list of Stmts
// ending in exactly one Return (spec.md §3). Implementers may flatten
// this into a vector, but the Return-at-the-tail invariant is load
// bearing for Select Instructions and liveness.
type Tail interface{ tail() }

// Return ends a Tail, evaluating Value as the block's result.
type Return struct{ Value Exp }

func (Return) tail() {}

// Seq prepends Stmt to Next.
type Seq struct {
	Stmt Stmt
	Next Tail
}

func (Seq) tail() {}

// EntryLabel is the label explicate control always assigns to the first
// block of a program.
const EntryLabel = ".l1"

// Function is a single IR function: its locals (every Var ever assigned,
// naturally sorted) and its labelled blocks.
type Function struct {
	Locals []ident.Identifier
	Labels map[string]Tail
	// Order preserves label creation order for deterministic iteration
	// where natural sort is not itself the requirement (e.g. debug
	// dumps); block linearization for frame finalization always
	// re-derives order via natural sort over label names instead.
	Order []string
}

// Program wraps the single entry function a source program compiles to
// (spec.md's Non-goals exclude user-defined functions).
type Program struct {
	Entry Function
}
