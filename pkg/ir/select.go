package ir

import (
	"fmt"
	"sort"

	"rlang.dev/compiler/pkg/ident"
	"rlang.dev/compiler/pkg/runtime"
	"rlang.dev/compiler/pkg/x64"
)

// ----------------------------------------------------------------------------
// Select Instructions (C9)
//
// Lowers this package's three-address IR into pkg/x64's pseudo-x86-64,
// one Tail at a time, emitting into a growing instruction vector for the
// block being built (spec.md §4.9). This mirrors the teacher's
// "lowering lives in the source package, producing the target package's
// types" shape (pkg/vm/lowering.go is package vm producing asm.Program).

type selector struct {
	external map[string]struct{}
	vars     map[ident.Identifier]struct{}
}

// Select lowers prog into an x64.Program with a single function named
// runtime.StartSymbol.
func Select(prog Program) x64.Program {
	s := &selector{external: map[string]struct{}{}, vars: map[ident.Identifier]struct{}{}}

	blocks := make([]x64.Block, 0, len(prog.Entry.Order))
	for _, label := range prog.Entry.Order {
		tail := prog.Entry.Labels[label]
		blocks = append(blocks, x64.Block{Label: label, Instr: s.selectTail(tail)})
	}

	homes := make([]x64.Home, 0, len(s.vars))
	for name := range s.vars {
		homes = append(homes, x64.Home{Name: name, Loc: x64.VarLoc{Kind: x64.Undefined}})
	}
	sort.Slice(homes, func(i, j int) bool { return ident.Less(homes[i].Name, homes[j].Name) })

	return x64.Program{
		External: s.external,
		Functions: map[string]x64.Function{
			runtime.StartSymbol: {Blocks: blocks, Vars: homes},
		},
	}
}

func (s *selector) selectTail(t Tail) []x64.Instr {
	switch n := t.(type) {
	case Return:
		return s.selectReturn(n.Value)

	case Seq:
		instrs := s.selectAssign(n.Stmt)
		return append(instrs, s.selectTail(n.Next)...)

	default:
		panic(fmt.Sprintf("select instructions: unreachable Tail %T", t))
	}
}

func (s *selector) selectAssign(stmt Stmt) []x64.Instr {
	asgn := s.varArg(stmt.Name)

	switch e := stmt.Value.(type) {
	case AtomExp:
		return []x64.Instr{x64.Mov64{Dst: asgn, Src: s.toArg(e.Atom)}}

	case Prim:
		switch e.Op {
		case "read":
			s.external[runtime.ReadIntSymbol] = struct{}{}
			return []x64.Instr{
				x64.Call{Name: runtime.ReadIntSymbol, Arity: 0},
				x64.Mov64{Dst: asgn, Src: x64.RegArg{Reg: x64.Rax}},
			}

		case "-":
			a := s.toArg(e.Args[0])
			return []x64.Instr{
				x64.Mov64{Dst: asgn, Src: a},
				x64.Neg64{Arg: asgn},
			}

		case "+":
			l := s.toArg(e.Args[0])
			r := s.toArg(e.Args[1])
			// The `+` peephole: only safe to emit the one-instruction
			// `Add64(asgn, r)` form when asgn already equals l — not
			// merely when l == r (spec.md §9's third open question; the
			// naive `l == r` version mis-optimizes `x.2 = (+ y.1 y.1)`
			// into a self-referential Add64 when asgn != l).
			if argEqual(asgn, l) {
				return []x64.Instr{x64.Add64{Dst: asgn, Src: r}}
			}
			return []x64.Instr{
				x64.Mov64{Dst: asgn, Src: l},
				x64.Add64{Dst: asgn, Src: r},
			}

		default:
			panic(fmt.Sprintf("select instructions: unreachable primitive op %q", e.Op))
		}

	default:
		panic(fmt.Sprintf("select instructions: unreachable Exp %T", stmt.Value))
	}
}

func (s *selector) selectReturn(e Exp) []x64.Instr {
	rax := x64.RegArg{Reg: x64.Rax}

	switch t := e.(type) {
	case AtomExp:
		return []x64.Instr{x64.Mov64{Dst: rax, Src: s.toArg(t.Atom)}}

	case Prim:
		switch t.Op {
		case "read":
			s.external[runtime.ReadIntSymbol] = struct{}{}
			return []x64.Instr{x64.Call{Name: runtime.ReadIntSymbol, Arity: 0}}

		case "-":
			a := s.toArg(t.Args[0])
			return []x64.Instr{
				x64.Mov64{Dst: rax, Src: a},
				x64.Neg64{Arg: rax},
			}

		case "+":
			l := s.toArg(t.Args[0])
			r := s.toArg(t.Args[1])
			return []x64.Instr{
				x64.Mov64{Dst: rax, Src: l},
				x64.Add64{Dst: rax, Src: r},
			}

		default:
			panic(fmt.Sprintf("select instructions: unreachable primitive op %q", t.Op))
		}

	default:
		panic(fmt.Sprintf("select instructions: unreachable Exp %T in return position", e))
	}
}

func (s *selector) varArg(name ident.Identifier) x64.Arg {
	s.vars[name] = struct{}{}
	return x64.VarArg{Name: name}
}

func (s *selector) toArg(a Atm) x64.Arg {
	switch t := a.(type) {
	case Int:
		return x64.Imm{Value: t.Value}
	case Var:
		return s.varArg(t.Name)
	default:
		panic(fmt.Sprintf("select instructions: unreachable Atm %T", a))
	}
}

func argEqual(a, b x64.Arg) bool {
	switch av := a.(type) {
	case x64.VarArg:
		bv, ok := b.(x64.VarArg)
		return ok && av.Name == bv.Name
	case x64.RegArg:
		bv, ok := b.(x64.RegArg)
		return ok && av.Reg == bv.Reg
	default:
		return false
	}
}
