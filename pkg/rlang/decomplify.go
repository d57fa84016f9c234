package rlang

import (
	"fmt"

	"rlang.dev/compiler/pkg/ident"
)

// ----------------------------------------------------------------------------
// Decomplify / Remove Complex Operands (C5)
//
// This pass changes `+`/`-` to only take atoms (literals or variables) as
// operands: `(+ 2 (+ 2 2))` becomes `(let ([tmp.0 (+ 2 2)]) (+ 2 tmp.0))`
// (spec.md §4.5).

// rco carries the monotonic temp counter and the accumulated table of
// atomized sub-expressions, keyed by the fresh name each was bound to.
// Names are unique for the lifetime of a single Decomplify call, so the
// table only ever grows — nothing needs to remove from it.
type rco struct {
	num int
	env []Binding
}

// Decomplify A-normalizes n.
func Decomplify(n AstNode) AstNode {
	r := &rco{}
	return r.rcoExpr(n)
}

func (r *rco) tmp() ident.Identifier {
	name := ident.Intern(fmt.Sprintf("tmp.%d", r.num))
	r.num++
	return name
}

func (r *rco) envGet(name ident.Identifier) (AstNode, bool) {
	for _, b := range r.env {
		if b.Name == name {
			return b.Expr, true
		}
	}
	return nil, false
}

func (r *rco) envSet(name ident.Identifier, expr AstNode) {
	r.env = append(r.env, Binding{Name: name, Expr: expr})
}

// rcoAtom atomizes e if needed, returning whether it had to and the
// resulting atom (Int or Var). Atomized sub-expressions are recorded in
// r.env under the fresh name, for the caller to fetch and bind.
func (r *rco) rcoAtom(e AstNode) (atomized bool, atom AstNode) {
	switch t := e.(type) {
	case Int:
		return false, t

	case Var:
		return false, t

	case Let:
		tmp := r.tmp()
		expr := r.rcoExpr(e)
		r.envSet(tmp, expr)
		return true, Var{Name: tmp}

	case Prim:
		switch t.Op {
		case "+", "-":
			// Recurse through rcoExpr first so a "-" operand's own
			// operand gets normalized too — storing e raw here would
			// let a non-atomic arg (e.g. the inner `(read)` in
			// `(- (read))`) leak through to explicate/select, which
			// require every Prim's args to be atoms (spec.md §8).
			tmp := r.tmp()
			expr := r.rcoExpr(e)
			r.envSet(tmp, expr)
			return true, Var{Name: tmp}

		case "read":
			tmp := r.tmp()
			r.envSet(tmp, e)
			return true, Var{Name: tmp}

		default:
			panic(fmt.Sprintf("decomplify: unreachable primitive op %q", t.Op))
		}

	default:
		panic(fmt.Sprintf("decomplify: unreachable AstNode %T", e))
	}
}

// rcoExpr returns e in ANF.
func (r *rco) rcoExpr(e AstNode) AstNode {
	switch t := e.(type) {
	case Int:
		return t

	case Var:
		return t

	case Let:
		var untouched, changed []Binding
		for _, b := range t.Bindings {
			switch rebuilt := r.rcoExpr(b.Expr).(type) {
			case Let:
				changed = append(changed, rebuilt.Bindings...)
				changed = append(changed, Binding{Name: b.Name, Expr: rebuilt.Body})
			default:
				untouched = append(untouched, Binding{Name: b.Name, Expr: rebuilt})
			}
		}
		newBody := r.rcoExpr(t.Body)
		bindings := append(untouched, changed...)
		return Let{Bindings: bindings, Body: newBody}

	case Prim:
		switch t.Op {
		case "read":
			return t

		case "-":
			atomized, arg := r.rcoAtom(t.Args[0])
			if !atomized {
				return t
			}
			name := arg.(Var).Name
			stored, _ := r.envGet(name)
			return Let{
				Bindings: []Binding{{Name: name, Expr: stored}},
				Body:     Prim{Op: t.Op, Args: []AstNode{arg}},
			}

		case "+":
			lAtomized, lAtom := r.rcoAtom(t.Args[0])
			rAtomized, rAtom := r.rcoAtom(t.Args[1])

			var bindings []Binding
			wasAtomized := false

			for _, pair := range []struct {
				atomized bool
				atom     AstNode
			}{{lAtomized, lAtom}, {rAtomized, rAtom}} {
				v, ok := pair.atom.(Var)
				if !ok || !pair.atomized {
					continue
				}
				stored, found := r.envGet(v.Name)
				if !found {
					panic(fmt.Sprintf("decomplify: tmp var %q binding not found", v.Name.String()))
				}
				bindings = append(bindings, Binding{Name: v.Name, Expr: stored})
				wasAtomized = true
			}

			if !wasAtomized {
				return t
			}
			return Let{
				Bindings: bindings,
				Body:     Prim{Op: t.Op, Args: []AstNode{lAtom, rAtom}},
			}

		default:
			panic(fmt.Sprintf("decomplify: unreachable primitive op %q", t.Op))
		}

	default:
		panic(fmt.Sprintf("decomplify: unreachable AstNode %T", e))
	}
}
