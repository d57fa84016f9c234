package x64

import "rlang.dev/compiler/pkg/ident"

// ----------------------------------------------------------------------------
// Liveness Analysis (C10)
//
// Per-block backward dataflow, with a single non-fixpoint inter-block
// patch at the end (the IR is acyclic: the only jumps are
// prelude→.l1→…→conclusion in topological order; spec.md §4.11).

// Loc is a liveness location: either a register or a not-yet-homed
// variable. It is a plain comparable struct so LiveSet can be a map
// keyed directly on it.
type Loc struct {
	IsReg bool
	Reg   Reg
	Var   ident.Identifier
}

func regLoc(r Reg) Loc                { return Loc{IsReg: true, Reg: r} }
func varLoc(name ident.Identifier) Loc { return Loc{Var: name} }

// LiveSet is an unordered set of Locs.
type LiveSet map[Loc]struct{}

func newLiveSet(locs ...Loc) LiveSet {
	s := make(LiveSet, len(locs))
	for _, l := range locs {
		s[l] = struct{}{}
	}
	return s
}

func (s LiveSet) clone() LiveSet {
	out := make(LiveSet, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	return out
}

func argLoc(a Arg) (Loc, bool) {
	switch t := a.(type) {
	case RegArg:
		return regLoc(t.Reg), true
	case VarArg:
		return varLoc(t.Name), true
	default:
		return Loc{}, false
	}
}

// writtenBy returns W(k): the location Instr i writes, if any.
func writtenBy(i Instr) (Loc, bool) {
	switch t := i.(type) {
	case Mov64:
		return argLoc(t.Dst)
	case Add64:
		return argLoc(t.Dst)
	case Sub64:
		return argLoc(t.Dst)
	case Neg64:
		return argLoc(t.Arg)
	default:
		return Loc{}, false
	}
}

// readBy returns R(k): the locations Instr i reads.
func readBy(i Instr) []Loc {
	add := func(locs []Loc, a Arg) []Loc {
		if l, ok := argLoc(a); ok {
			locs = append(locs, l)
		}
		return locs
	}
	switch t := i.(type) {
	case Mov64:
		return add(nil, t.Src)
	case Add64:
		locs := add(nil, t.Dst)
		return add(locs, t.Src)
	case Sub64:
		locs := add(nil, t.Dst)
		return add(locs, t.Src)
	case Neg64:
		return add(nil, t.Arg)
	default:
		return nil
	}
}

// BlockLiveness computes ls[0..n] for a single block in isolation (the
// per-block backward pass; inter-block patching happens afterward in
// ProgramLiveness).
func BlockLiveness(block Block) []LiveSet {
	n := len(block.Instr)
	ls := make([]LiveSet, n)

	after := LiveSet{}
	for k := n - 1; k >= 0; k-- {
		before := after.clone()
		if w, ok := writtenBy(block.Instr[k]); ok {
			delete(before, w)
		}
		for _, r := range readBy(block.Instr[k]) {
			before[r] = struct{}{}
		}
		ls[k] = before
		after = before
	}
	return ls
}

// ProgramLiveness computes live sets for every block in fn, then patches
// every Jmp instruction's live set to the target block's ls[0] (spec.md
// §4.11's inter-block stitching). A single pass suffices because the
// control flow graph here is acyclic.
func ProgramLiveness(fn Function) map[string][]LiveSet {
	result := make(map[string][]LiveSet, len(fn.Blocks))
	for _, b := range fn.Blocks {
		result[b.Label] = BlockLiveness(b)
	}

	for _, b := range fn.Blocks {
		ls := result[b.Label]
		for k, instr := range b.Instr {
			jmp, ok := instr.(Jmp)
			if !ok {
				continue
			}
			target, ok := result[jmp.Label]
			if !ok || len(target) == 0 {
				continue
			}
			ls[k] = target[0]
		}
	}
	return result
}
