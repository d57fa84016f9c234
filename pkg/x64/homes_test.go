package x64

import (
	"testing"

	"rlang.dev/compiler/pkg/ident"
)

func TestAssignHomesNaturalSortsAndOffsetsByEight(t *testing.T) {
	t10 := ident.Intern("tmp.10")
	t2 := ident.Intern("tmp.2")
	fn := Function{
		Vars: []Home{
			{Name: t10, Loc: VarLoc{Kind: Undefined}},
			{Name: t2, Loc: VarLoc{Kind: Undefined}},
		},
	}
	out := AssignHomes(fn)
	if out.Vars[0].Name != t2 || out.Vars[1].Name != t10 {
		t.Fatalf("got %v, want natural order [tmp.2 tmp.10]", out.Vars)
	}
	if out.Vars[0].Loc.Kind != InRbp || out.Vars[0].Loc.Offset != 8 {
		t.Fatalf("tmp.2 loc = %+v, want Rbp(8)", out.Vars[0].Loc)
	}
	if out.Vars[1].Loc.Kind != InRbp || out.Vars[1].Loc.Offset != 16 {
		t.Fatalf("tmp.10 loc = %+v, want Rbp(16)", out.Vars[1].Loc)
	}
	if !out.PrologueNecessary {
		t.Fatalf("PrologueNecessary = false, want true")
	}
}

func TestAssignHomesRewritesVarArgsToDeref(t *testing.T) {
	x := ident.Intern("x")
	fn := Function{
		Vars: []Home{{Name: x, Loc: VarLoc{Kind: Undefined}}},
		Blocks: []Block{{Label: ".l1", Instr: []Instr{
			Mov64{Dst: VarArg{Name: x}, Src: Imm{Value: 1}},
		}}},
	}
	out := AssignHomes(fn)
	mov := out.Blocks[0].Instr[0].(Mov64)
	deref, ok := mov.Dst.(Deref)
	if !ok || deref.Base != Rbp || deref.Offset != 8 {
		t.Fatalf("dst = %+v, want Deref(Rbp, 8)", mov.Dst)
	}
}

func TestAssignHomesNoVariablesLeavesPrologueUnnecessary(t *testing.T) {
	fn := Function{Blocks: []Block{{Label: ".l1", Instr: []Instr{
		Mov64{Dst: RegArg{Reg: Rax}, Src: Imm{Value: 2}},
	}}}}
	out := AssignHomes(fn)
	if out.PrologueNecessary {
		t.Fatalf("PrologueNecessary = true, want false (no variables)")
	}
}
