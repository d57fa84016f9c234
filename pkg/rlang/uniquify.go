package rlang

import (
	"fmt"

	"rlang.dev/compiler/pkg/ident"
	"rlang.dev/compiler/pkg/utils"
)

// ----------------------------------------------------------------------------
// Uniquify (C3)

// frame maps a source-level name to the renamed identifier introduced
// for it by the Let at this depth.
type frame map[ident.Identifier]ident.Identifier

// Uniquifier renames every Let-bound name to a globally unique one, so
// that later passes never need to reason about shadowing (spec.md
// §4.3). It reuses the teacher's generic Stack (pkg/utils) to hold one
// frame per enclosing Let, innermost on top.
type Uniquifier struct {
	frames utils.Stack[frame]
	depth  int
}

// NewUniquifier returns an Uniquifier ready to process a single program.
func NewUniquifier() *Uniquifier {
	return &Uniquifier{}
}

// Uniquify renames every Let-bound name in n and returns the renamed
// tree. Top-level Lets (depth 0) get renames suffixed `.1`.
func Uniquify(n AstNode) AstNode {
	u := NewUniquifier()
	return u.uniquify(n)
}

func (u *Uniquifier) uniquify(n AstNode) AstNode {
	switch t := n.(type) {
	case Int:
		return t

	case Var:
		if renamed, ok := u.lookup(t.Name); ok {
			return Var{Name: renamed}
		}
		return t

	case Prim:
		args := make([]AstNode, len(t.Args))
		for i, a := range t.Args {
			args[i] = u.uniquify(a)
		}
		return Prim{Op: t.Op, Args: args}

	case Let:
		u.depth++
		suffix := fmt.Sprintf(".%d", u.depth)

		// Each binding's value is uniquified against the frames built so
		// far (the enclosing scope), *before* this Let's own frame is
		// installed — sibling bindings never see each other.
		newFrame := frame{}
		bindings := make([]Binding, len(t.Bindings))
		for i, b := range t.Bindings {
			bindings[i] = Binding{
				Name: ident.Intern(b.Name.String() + suffix),
				Expr: u.uniquify(b.Expr),
			}
			newFrame[b.Name] = bindings[i].Name
		}

		u.frames.Push(newFrame)
		body := u.uniquify(t.Body)
		u.frames.Pop()
		u.depth--

		return Let{Bindings: bindings, Body: body}

	case Error:
		return t

	default:
		return t
	}
}

// lookup scans frames from innermost out and returns the rename
// installed for name, if any. Unresolved names are left as-is; they
// will error at interpretation (spec.md §4.3).
func (u *Uniquifier) lookup(name ident.Identifier) (ident.Identifier, bool) {
	for _, f := range u.frames.Frames() {
		if renamed, ok := f[name]; ok {
			return renamed, true
		}
	}
	return ident.Identifier{}, false
}
