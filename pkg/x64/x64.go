// Package x64 holds the pseudo-x86-64 data model that Select
// Instructions (pkg/ir) produces and that Liveness, Assign Homes, Patch
// Instructions, Frame Finalization and the ASM Printer (all in this
// package) consume in turn (spec.md §3).
package x64

import "rlang.dev/compiler/pkg/ident"

// Reg is one of the 16 general-purpose x86-64 registers.
type Reg int

const (
	Rax Reg = iota
	Rbx
	Rcx
	Rdx
	Rsi
	Rdi
	Rsp
	Rbp
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

func (r Reg) String() string {
	names := [...]string{"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rsp", "rbp", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"}
	return names[r]
}

// Arg is an instruction operand: an immediate, a register, an
// as-yet-unhomed variable, or a fully homed memory dereference.
type Arg interface{ arg() }

// Imm is a literal integer operand.
type Imm struct{ Value int64 }

func (Imm) arg() {}

// RegArg is a register operand (named RegArg to avoid clashing with the
// Reg type).
type RegArg struct{ Reg Reg }

func (RegArg) arg() {}

// VarArg is a not-yet-homed variable operand; Assign Homes replaces
// every VarArg with a Deref before Select Instructions' output reaches
// the printer.
type VarArg struct{ Name ident.Identifier }

func (VarArg) arg() {}

// Deref is a register-relative memory operand: `[Base - Offset]` in the
// printed form (spec.md §9: "Rbp(offset) as a positive number ... the
// printer emits [rbp-offset]").
type Deref struct {
	Base   Reg
	Offset int64
}

func (Deref) arg() {}

// Instr is a pseudo-x86-64 instruction.
type Instr interface{ instr() }

// Add64 computes Dst += Src.
type Add64 struct{ Dst, Src Arg }

func (Add64) instr() {}

// Sub64 computes Dst -= Src.
type Sub64 struct{ Dst, Src Arg }

func (Sub64) instr() {}

// Mov64 computes Dst = Src.
type Mov64 struct{ Dst, Src Arg }

func (Mov64) instr() {}

// Neg64 computes Arg = -Arg.
type Neg64 struct{ Arg Arg }

func (Neg64) instr() {}

// Call invokes the external symbol Name with Arity arguments (Arity is
// informational only — the toy calling convention passes nothing).
type Call struct {
	Name  string
	Arity int
}

func (Call) instr() {}

// Ret returns from the current function.
type Ret struct{}

func (Ret) instr() {}

// Push pushes Arg onto the stack.
type Push struct{ Arg Arg }

func (Push) instr() {}

// Pop pops the stack into Arg.
type Pop struct{ Arg Arg }

func (Pop) instr() {}

// Jmp unconditionally transfers control to Label.
type Jmp struct{ Label string }

func (Jmp) instr() {}

// VarLocKind distinguishes the three states a Home's location can be in.
type VarLocKind int

const (
	Undefined VarLocKind = iota
	InReg
	InRbp
)

// VarLoc is a variable's assigned storage location. Invariant: after
// Assign Homes runs, no Home in a function has Kind == Undefined.
type VarLoc struct {
	Kind   VarLocKind
	Reg    Reg   // valid when Kind == InReg
	Offset int64 // valid when Kind == InRbp; positive, meaning [rbp-Offset]
}

// Home binds a variable name to its assigned location.
type Home struct {
	Name ident.Identifier
	Loc  VarLoc
}

// Block is a single labelled sequence of instructions.
type Block struct {
	Label string
	Instr []Instr
}

// Function is one compiled function: its blocks in emission order, its
// variables' homes, and the flags Assign Homes / Patch Instructions set
// for Frame Finalization to act on.
type Function struct {
	Blocks            []Block
	Vars              []Home
	PrologueNecessary bool
	MPUsed            bool // true if Patch Instructions rewrote any Mov64(Var,Var)
}

// Program is the whole compiled translation unit: the set of external
// runtime symbols referenced, and the function(s) defined. spec.md's
// Non-goals exclude user-defined functions, so Functions holds exactly
// one entry in practice, keyed by its name.
type Program struct {
	External  map[string]struct{}
	Functions map[string]Function
}
