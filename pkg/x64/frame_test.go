package x64

import "testing"

func TestFinalizeFrameNoVariablesOmitsStackAdjustAndPush(t *testing.T) {
	fn := Function{Blocks: []Block{{Label: ".l1", Instr: []Instr{
		Mov64{Dst: RegArg{Reg: Rax}, Src: Imm{Value: 2}},
	}}}}
	out := FinalizeFrame(fn)

	if len(out.Blocks) != 3 {
		t.Fatalf("got %d blocks, want prelude/.l1/conclusion", len(out.Blocks))
	}
	if out.Blocks[0].Label != preludeLabel || out.Blocks[1].Label != ".l1" || out.Blocks[2].Label != conclusionLabel {
		t.Fatalf("block order = %v", []string{out.Blocks[0].Label, out.Blocks[1].Label, out.Blocks[2].Label})
	}

	prelude := out.Blocks[0].Instr
	if len(prelude) != 3 {
		t.Fatalf("prelude = %+v, want Push(Rbp); Mov64(Rbp,Rsp); Jmp(.l1)", prelude)
	}
	if _, ok := prelude[0].(Push); !ok {
		t.Fatalf("prelude[0] = %+v, want Push", prelude[0])
	}
	if jmp, ok := prelude[2].(Jmp); !ok || jmp.Label != ".l1" {
		t.Fatalf("prelude[2] = %+v, want Jmp(.l1)", prelude[2])
	}

	l1 := out.Blocks[1].Instr
	if len(l1) != 2 {
		t.Fatalf(".l1 = %+v, want original instr plus Jmp(conclusion)", l1)
	}
	if jmp, ok := l1[1].(Jmp); !ok || jmp.Label != conclusionLabel {
		t.Fatalf(".l1[1] = %+v, want Jmp(conclusion)", l1[1])
	}

	conclusion := out.Blocks[2].Instr
	if len(conclusion) != 3 {
		t.Fatalf("conclusion = %+v, want Mov64(Rsp,Rbp); Pop(Rbp); Ret", conclusion)
	}
	if _, ok := conclusion[2].(Ret); !ok {
		t.Fatalf("conclusion[2] = %+v, want Ret", conclusion[2])
	}
}

func TestFinalizeFrameWithVariablesInsertsStackAdjust(t *testing.T) {
	fn := Function{
		PrologueNecessary: true,
		Vars:              []Home{{Loc: VarLoc{Kind: InRbp, Offset: 8}}},
		Blocks: []Block{{Label: ".l1", Instr: []Instr{
			Mov64{Dst: RegArg{Reg: Rax}, Src: Imm{Value: 2}},
		}}},
	}
	out := FinalizeFrame(fn)

	prelude := out.Blocks[0].Instr
	sub, ok := prelude[2].(Sub64)
	if !ok || sub.Src.(Imm).Value != 8 {
		t.Fatalf("prelude[2] = %+v, want Sub64(Rsp, 8)", prelude[2])
	}

	conclusion := out.Blocks[2].Instr
	add, ok := conclusion[0].(Add64)
	if !ok || add.Src.(Imm).Value != 8 {
		t.Fatalf("conclusion[0] = %+v, want Add64(Rsp, 8) — not the source's Sub64 bug (spec.md §9)", conclusion[0])
	}
}

func TestFinalizeFrameWithMPUsedBracketsR15(t *testing.T) {
	fn := Function{
		PrologueNecessary: true,
		MPUsed:            true,
		Vars:              []Home{{Loc: VarLoc{Kind: InRbp, Offset: 8}}, {Loc: VarLoc{Kind: InRbp, Offset: 16}}},
		Blocks: []Block{{Label: ".l1", Instr: []Instr{
			Mov64{Dst: RegArg{Reg: R15}, Src: Deref{Base: Rbp, Offset: 8}},
		}}},
	}
	out := FinalizeFrame(fn)

	prelude := out.Blocks[0].Instr
	push, ok := prelude[len(prelude)-2].(Push)
	if !ok || push.Arg.(RegArg).Reg != R15 {
		t.Fatalf("prelude = %+v, want Push(R15) just before the trailing Jmp", prelude)
	}

	// R15 must come off first in the conclusion — it was the last thing
	// pushed in the prelude, so restoring Rsp/Rbp before popping it would
	// pop the return address instead of R15's saved value.
	conclusion := out.Blocks[2].Instr
	pop, ok := conclusion[0].(Pop)
	if !ok || pop.Arg.(RegArg).Reg != R15 {
		t.Fatalf("conclusion = %+v, want Pop(R15) first, before Rsp/Rbp are restored", conclusion)
	}
}

func TestFinalizeFrameLinearizesBlocksByNaturalLabelOrder(t *testing.T) {
	fn := Function{Blocks: []Block{
		{Label: ".l10", Instr: []Instr{Ret{}}},
		{Label: ".l2", Instr: []Instr{Jmp{Label: ".l10"}}},
	}}
	out := FinalizeFrame(fn)
	// prelude, .l2, .l10, conclusion
	if out.Blocks[1].Label != ".l2" || out.Blocks[2].Label != ".l10" {
		t.Fatalf("order = %v, want [.l2 .l10] between prelude/conclusion", []string{out.Blocks[1].Label, out.Blocks[2].Label})
	}
}
