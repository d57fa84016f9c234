package x64

import (
	"fmt"
	"sort"
	"strings"

	"rlang.dev/compiler/pkg/runtime"
)

// ----------------------------------------------------------------------------
// ASM Printer (C14)
//
// Emits NASM-compatible text from a finalized Program. A single
// GenerateInstr method switches over the instruction variants, loosely
// following the teacher's CodeGenerator shape (pkg/asm/codegen.go,
// pkg/hack/codegen.go).

// Printer renders a finalized x64.Program as NASM/Intel text.
type Printer struct {
	prog Program
}

// NewPrinter returns a Printer for prog.
func NewPrinter(prog Program) *Printer {
	return &Printer{prog: prog}
}

// Print renders the whole program.
func (p *Printer) Print() string {
	var b strings.Builder

	externs := make([]string, 0, len(p.prog.External))
	for sym := range p.prog.External {
		externs = append(externs, sym)
	}
	sort.Strings(externs)
	for _, sym := range externs {
		fmt.Fprintf(&b, "extern %s\n\n", sym)
	}

	fmt.Fprintf(&b, "global %s\n\nsection .text\n\n", runtime.StartSymbol)

	fn, ok := p.prog.Functions[runtime.StartSymbol]
	if !ok {
		panic("printer: no " + runtime.StartSymbol + " function in program")
	}

	for i, block := range fn.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		p.printBlock(&b, block)
	}

	return b.String()
}

func (p *Printer) printBlock(b *strings.Builder, block Block) {
	fmt.Fprintf(b, "%s:\n", block.Label)
	for _, instr := range block.Instr {
		b.WriteString("    ")
		b.WriteString(p.GenerateInstr(instr))
		b.WriteByte('\n')
	}
}

// GenerateInstr renders a single instruction line (without indentation
// or trailing newline).
func (p *Printer) GenerateInstr(i Instr) string {
	switch t := i.(type) {
	case Add64:
		return p.binary("add", t.Dst, t.Src)
	case Sub64:
		return p.binary("sub", t.Dst, t.Src)
	case Mov64:
		return p.binary("mov", t.Dst, t.Src)
	case Neg64:
		return fmt.Sprintf("neg %s", p.arg(t.Arg))
	case Call:
		return fmt.Sprintf("call %s", t.Name)
	case Ret:
		return "ret"
	case Push:
		return fmt.Sprintf("push %s", p.arg(t.Arg))
	case Pop:
		return fmt.Sprintf("pop %s", p.arg(t.Arg))
	case Jmp:
		return fmt.Sprintf("jmp %s", t.Label)
	default:
		panic(fmt.Sprintf("printer: unreachable Instr %T", i))
	}
}

func (p *Printer) binary(mnemonic string, dst, src Arg) string {
	return fmt.Sprintf("%s %s, %s", mnemonic, p.arg(dst), p.arg(src))
}

func (p *Printer) arg(a Arg) string {
	switch t := a.(type) {
	case Imm:
		return fmt.Sprintf("%d", t.Value)
	case RegArg:
		return t.Reg.String()
	case Deref:
		return fmt.Sprintf("qword [%s-%d]", t.Base.String(), t.Offset)
	case VarArg:
		panic("printer: variable " + t.Name.String() + " was never homed")
	default:
		panic(fmt.Sprintf("printer: unreachable Arg %T", a))
	}
}
