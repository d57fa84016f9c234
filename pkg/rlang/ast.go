package rlang

import "rlang.dev/compiler/pkg/ident"

// ----------------------------------------------------------------------------
// AST (C2 data model)

// AstNode is the shared marker for every Rlang AST variant, mirroring
// the teacher's tagged-variant style (pkg/asm/asm.go's Statement, pkg/
// vm/vm.go's Operation): a marker interface plus one concrete struct per
// case, exhaustively switched on by every pass.
type AstNode interface{ astNode() }

// Int is an integer literal.
type Int struct{ Value int64 }

func (Int) astNode() {}

// Var is a variable reference.
type Var struct{ Name ident.Identifier }

func (Var) astNode() {}

// Prim is a primitive application: op is one of "+", "-", "read" and len(Args)
// matches op's arity (0 for read, 1 for "-", 2 for "+").
type Prim struct {
	Op   string
	Args []AstNode
}

func (Prim) astNode() {}

// Binding is a single `[name expr]` pair inside a `let`.
type Binding struct {
	Name ident.Identifier
	Expr AstNode
}

// Let is a scoped binding form: each Binding's Expr is evaluated against
// the enclosing scope (let-style, not let*-style — sibling bindings do
// not see each other), then Body is evaluated with all bindings in
// scope (spec.md §4.3).
type Let struct {
	Bindings []Binding
	Body     AstNode
}

func (Let) astNode() {}

// Error is a parse-failure sentinel. Downstream passes must never
// transform it, only detect it and short-circuit (spec.md §3).
type Error struct {
	Msg   string
	Token Token
}

func (Error) astNode() {}

// Program wraps the single top-level expression a Rlang source compiles
// to (spec.md §1: "Programs are single expressions").
type Program struct {
	Exp AstNode
}

// ContainsError reports whether any node in the tree is an Error
// sentinel, used by the parser's ParseSuccess and by every pass that
// must refuse to proceed past a parse failure.
func ContainsError(n AstNode) bool {
	switch t := n.(type) {
	case Error:
		return true
	case Int, Var:
		return false
	case Prim:
		for _, a := range t.Args {
			if ContainsError(a) {
				return true
			}
		}
		return false
	case Let:
		for _, b := range t.Bindings {
			if ContainsError(b.Expr) {
				return true
			}
		}
		return ContainsError(t.Body)
	default:
		return false
	}
}

// CollectErrors walks the tree and returns every Error sentinel found,
// in source order, for the driver to print (spec.md §4.15's "abort on
// parse errors, printing them").
func CollectErrors(n AstNode) []Error {
	switch t := n.(type) {
	case Error:
		return []Error{t}
	case Int, Var:
		return nil
	case Prim:
		var errs []Error
		for _, a := range t.Args {
			errs = append(errs, CollectErrors(a)...)
		}
		return errs
	case Let:
		var errs []Error
		for _, b := range t.Bindings {
			errs = append(errs, CollectErrors(b.Expr)...)
		}
		return append(errs, CollectErrors(t.Body)...)
	default:
		return nil
	}
}
