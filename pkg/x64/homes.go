package x64

import "rlang.dev/compiler/pkg/ident"

// ----------------------------------------------------------------------------
// Assign Homes (C11)
//
// Natural-sorts fn's variables by name, then assigns each the next stack
// slot: rbp_offset starts at 0 and increments by 8 per variable. No
// register allocation is performed — spec.md's Non-goals exclude it, so
// every local lands on the stack (spec.md §4.11 [second numbering]).

// AssignHomes returns a copy of fn with every Home's VarLoc resolved and
// every VarArg operand in every block rewritten to its Deref.
// PrologueNecessary is set if any variable was assigned a home.
func AssignHomes(fn Function) Function {
	sorted := append([]Home(nil), fn.Vars...)
	sortHomesByName(sorted)

	offsets := make(map[ident.Identifier]int64, len(sorted))
	var offset int64
	for i := range sorted {
		offset += 8
		sorted[i].Loc = VarLoc{Kind: InRbp, Offset: offset}
		offsets[sorted[i].Name] = offset
	}

	blocks := make([]Block, len(fn.Blocks))
	for i, b := range fn.Blocks {
		blocks[i] = Block{Label: b.Label, Instr: rewriteBlockArgs(b.Instr, offsets)}
	}

	return Function{
		Blocks:            blocks,
		Vars:              sorted,
		PrologueNecessary: len(sorted) > 0,
		MPUsed:            fn.MPUsed,
	}
}

func sortHomesByName(homes []Home) {
	for i := 1; i < len(homes); i++ {
		for j := i; j > 0 && ident.Less(homes[j].Name, homes[j-1].Name); j-- {
			homes[j], homes[j-1] = homes[j-1], homes[j]
		}
	}
}

func rewriteBlockArgs(instrs []Instr, offsets map[ident.Identifier]int64) []Instr {
	out := make([]Instr, len(instrs))
	for i, instr := range instrs {
		out[i] = rewriteInstrArgs(instr, offsets)
	}
	return out
}

func homeArg(a Arg, offsets map[ident.Identifier]int64) Arg {
	v, ok := a.(VarArg)
	if !ok {
		return a
	}
	off, ok := offsets[v.Name]
	if !ok {
		panic("assign homes: variable " + v.Name.String() + " has no assigned home")
	}
	return Deref{Base: Rbp, Offset: off}
}

func rewriteInstrArgs(i Instr, offsets map[ident.Identifier]int64) Instr {
	switch t := i.(type) {
	case Mov64:
		return Mov64{Dst: homeArg(t.Dst, offsets), Src: homeArg(t.Src, offsets)}
	case Add64:
		return Add64{Dst: homeArg(t.Dst, offsets), Src: homeArg(t.Src, offsets)}
	case Sub64:
		return Sub64{Dst: homeArg(t.Dst, offsets), Src: homeArg(t.Src, offsets)}
	case Neg64:
		return Neg64{Arg: homeArg(t.Arg, offsets)}
	case Push:
		return Push{Arg: homeArg(t.Arg, offsets)}
	case Pop:
		return Pop{Arg: homeArg(t.Arg, offsets)}
	default:
		return i
	}
}
