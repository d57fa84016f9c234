package rlang

import "rlang.dev/compiler/pkg/ident"

// ----------------------------------------------------------------------------
// Partial Evaluator (C4)

// penv maps already-uniquified names to their fully folded bound
// expressions, threaded bottom-up through the fold (spec.md §4.4).
type penv map[ident.Identifier]AstNode

// PartialEval folds constants over a uniquified AST. It is a bottom-up,
// environment-threaded pass: `Int`/`Var` fold trivially, `-`/`+` fold
// when their operands resolve to `Int` (directly or via the env), `read`
// never folds, and `Let` folds away entirely when its body turns out to
// be constant or a passthrough of one of its own bindings.
func PartialEval(n AstNode) AstNode {
	return foldExpr(n, penv{})
}

func foldExpr(n AstNode, env penv) AstNode {
	switch t := n.(type) {
	case Int:
		return t

	case Var:
		if v, ok := env[t.Name]; ok {
			if i, ok := v.(Int); ok {
				return i
			}
		}
		return t

	case Prim:
		switch t.Op {
		case "read":
			return t

		case "-":
			a := foldExpr(t.Args[0], env)
			if n, ok := asInt(a, env); ok {
				return Int{Value: -n}
			}
			return Prim{Op: "-", Args: []AstNode{a}}

		case "+":
			l := foldExpr(t.Args[0], env)
			r := foldExpr(t.Args[1], env)
			ln, lok := asInt(l, env)
			rn, rok := asInt(r, env)
			if lok && rok {
				return Int{Value: ln + rn}
			}
			return Prim{Op: "+", Args: []AstNode{l, r}}

		default:
			args := make([]AstNode, len(t.Args))
			for i, a := range t.Args {
				args[i] = foldExpr(a, env)
			}
			return Prim{Op: t.Op, Args: args}
		}

	case Let:
		newEnv := penv{}
		for k, v := range env {
			newEnv[k] = v
		}
		bindings := make([]Binding, len(t.Bindings))
		for i, b := range t.Bindings {
			folded := foldExpr(b.Expr, newEnv)
			bindings[i] = Binding{Name: b.Name, Expr: folded}
			newEnv[b.Name] = folded
		}

		body := foldExpr(t.Body, newEnv)

		if i, ok := body.(Int); ok {
			return i
		}
		if v, ok := body.(Var); ok {
			if bound, ok := newEnv[v.Name]; ok {
				return bound
			}
		}
		return Let{Bindings: bindings, Body: body}

	case Error:
		return t

	default:
		return t
	}
}

// asInt resolves n to an Int, either directly or — for a Var — through
// env, and reports whether resolution succeeded.
func asInt(n AstNode, env penv) (int64, bool) {
	switch t := n.(type) {
	case Int:
		return t.Value, true
	case Var:
		if v, ok := env[t.Name]; ok {
			if i, ok := v.(Int); ok {
				return i.Value, true
			}
		}
	}
	return 0, false
}
