package x64

import (
	"sort"

	"rlang.dev/compiler/pkg/ident"
)

// ----------------------------------------------------------------------------
// Frame Finalization (C13)
//
// Linearizes fn's blocks by natural label order, splices in a synthetic
// prelude and conclusion as real blocks with explicit Jmps (spec.md §9:
// "rather than patching in place... this keeps the liveness analysis
// uniform"), and — if the frame needs one — inserts the stack
// allocation/deallocation and the R15 save/restore.
//
// Per spec.md §9's first open question, the stack deallocation in
// conclusion uses Add64 (undoing prelude's Sub64), not the source's
// Sub64-again bug.
//
// Conclusion unwinds the prelude's pushes in strict LIFO order: R15 (if
// the frame needed it) comes off first, since it went on last, before
// Rsp/Rbp are restored.

const (
	preludeLabel    = "prelude"
	conclusionLabel = "conclusion"
)

// FinalizeFrame returns fn with prelude/conclusion spliced in.
func FinalizeFrame(fn Function) Function {
	blocks := append([]Block(nil), fn.Blocks...)
	sort.Slice(blocks, func(i, j int) bool { return ident.NaturalLess(blocks[i].Label, blocks[j].Label) })

	if len(blocks) > 0 {
		last := &blocks[len(blocks)-1]
		last.Instr = append(append([]Instr(nil), last.Instr...), Jmp{Label: conclusionLabel})
	}

	stackSize := int64(8 * len(fn.Vars))

	prelude := []Instr{
		Push{Arg: RegArg{Reg: Rbp}},
		Mov64{Dst: RegArg{Reg: Rbp}, Src: RegArg{Reg: Rsp}},
	}
	if fn.PrologueNecessary && stackSize > 0 {
		prelude = append(prelude, Sub64{Dst: RegArg{Reg: Rsp}, Src: Imm{Value: stackSize}})
	}
	if fn.MPUsed {
		prelude = append(prelude, Push{Arg: RegArg{Reg: R15}})
	}
	prelude = append(prelude, Jmp{Label: entryLabelOf(blocks)})

	conclusion := []Instr{}
	// R15 was pushed last in the prelude (after the locals' Sub64), so it
	// must come off first here — popping it after Rsp/Rbp are restored
	// would instead consume the return address off the stack.
	if fn.MPUsed {
		conclusion = append(conclusion, Pop{Arg: RegArg{Reg: R15}})
	}
	if fn.PrologueNecessary && stackSize > 0 {
		conclusion = append(conclusion, Add64{Dst: RegArg{Reg: Rsp}, Src: Imm{Value: stackSize}})
	}
	conclusion = append(conclusion,
		Mov64{Dst: RegArg{Reg: Rsp}, Src: RegArg{Reg: Rbp}},
		Pop{Arg: RegArg{Reg: Rbp}},
	)
	conclusion = append(conclusion, Ret{})

	final := make([]Block, 0, len(blocks)+2)
	final = append(final, Block{Label: preludeLabel, Instr: prelude})
	final = append(final, blocks...)
	final = append(final, Block{Label: conclusionLabel, Instr: conclusion})

	return Function{
		Blocks:            final,
		Vars:              fn.Vars,
		PrologueNecessary: fn.PrologueNecessary,
		MPUsed:            fn.MPUsed,
	}
}

func entryLabelOf(blocks []Block) string {
	if len(blocks) == 0 {
		return conclusionLabel
	}
	return blocks[0].Label
}
