package x64

// ----------------------------------------------------------------------------
// Patch Instructions (C12)
//
// x86-64 disallows two memory operands. After Assign Homes, rewrite
// every Mov64(Deref, Deref) into Mov64(R15, src); Mov64(dst, R15).
// Nothing else is patched: the source this compiler is modeled on only
// ever creates a two-memory hazard in Mov64 (spec.md §4.12). Extending
// this to Add64/Sub64 would only matter once a register-allocation pass
// can also place a variable directly in memory as an Add64/Sub64
// operand — out of scope here (spec.md §9).

// PatchInstructions returns a copy of fn with every mem-to-mem Mov64
// legalized through R15. MPUsed is set if any rewrite occurred.
func PatchInstructions(fn Function) Function {
	mpUsed := false
	blocks := make([]Block, len(fn.Blocks))
	for i, b := range fn.Blocks {
		var out []Instr
		for _, instr := range b.Instr {
			mov, ok := instr.(Mov64)
			if !ok || !isMem(mov.Dst) || !isMem(mov.Src) {
				out = append(out, instr)
				continue
			}
			r15 := RegArg{Reg: R15}
			out = append(out, Mov64{Dst: r15, Src: mov.Src}, Mov64{Dst: mov.Dst, Src: r15})
			mpUsed = true
		}
		blocks[i] = Block{Label: b.Label, Instr: out}
	}

	return Function{
		Blocks:            blocks,
		Vars:              fn.Vars,
		PrologueNecessary: fn.PrologueNecessary,
		MPUsed:            mpUsed,
	}
}

func isMem(a Arg) bool {
	_, ok := a.(Deref)
	return ok
}
