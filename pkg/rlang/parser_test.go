package rlang

import "testing"

func parse(src string) Program {
	toks := NewLexer(src).Lex()
	return NewParser(toks).Parse()
}

func TestParseIntLiteral(t *testing.T) {
	prog := parse("(2)")
	if !ParseSuccess(prog) {
		t.Fatalf("expected successful parse of (2), got %+v", prog.Exp)
	}
	if i, ok := prog.Exp.(Int); !ok || i.Value != 2 {
		t.Fatalf("got %+v, want Int(2)", prog.Exp)
	}
}

func TestParseAddPrim(t *testing.T) {
	prog := parse("(+ 2 3)")
	if !ParseSuccess(prog) {
		t.Fatalf("expected successful parse, got %+v", prog.Exp)
	}
	p, ok := prog.Exp.(Prim)
	if !ok || p.Op != "+" || len(p.Args) != 2 {
		t.Fatalf("got %+v, want Prim{+, [2 args]}", prog.Exp)
	}
}

func TestParseNegatePrim(t *testing.T) {
	prog := parse("(- 5)")
	p, ok := prog.Exp.(Prim)
	if !ok || p.Op != "-" || len(p.Args) != 1 {
		t.Fatalf("got %+v, want Prim{-, [1 arg]}", prog.Exp)
	}
}

func TestParseReadPrim(t *testing.T) {
	prog := parse("(read)")
	p, ok := prog.Exp.(Prim)
	if !ok || p.Op != "read" || len(p.Args) != 0 {
		t.Fatalf("got %+v, want Prim{read, []}", prog.Exp)
	}
}

func TestParseLet(t *testing.T) {
	prog := parse("(let ([x 42]) x)")
	if !ParseSuccess(prog) {
		t.Fatalf("expected successful parse, got %+v", prog.Exp)
	}
	l, ok := prog.Exp.(Let)
	if !ok || len(l.Bindings) != 1 {
		t.Fatalf("got %+v, want Let with 1 binding", prog.Exp)
	}
	if l.Bindings[0].Name.String() != "x" {
		t.Fatalf("binding name = %q, want x", l.Bindings[0].Name.String())
	}
	if _, ok := l.Body.(Var); !ok {
		t.Fatalf("body = %+v, want Var", l.Body)
	}
}

func TestParseNestedLet(t *testing.T) {
	prog := parse("(let ([x 42]) (let ([y x]) y))")
	if !ParseSuccess(prog) {
		t.Fatalf("expected successful parse, got %+v", prog.Exp)
	}
	outer, ok := prog.Exp.(Let)
	if !ok {
		t.Fatalf("got %+v, want outer Let", prog.Exp)
	}
	if _, ok := outer.Body.(Let); !ok {
		t.Fatalf("outer body = %+v, want inner Let", outer.Body)
	}
}

func TestParseWrongArityProducesError(t *testing.T) {
	prog := parse("(+ 1)")
	if ParseSuccess(prog) {
		t.Fatalf("expected parse failure for (+ 1), got %+v", prog.Exp)
	}
}

func TestParseUnknownOperatorProducesError(t *testing.T) {
	prog := parse("(* 1 2)")
	if ParseSuccess(prog) {
		t.Fatalf("expected parse failure for (* 1 2), got %+v", prog.Exp)
	}
}

func TestParseMissingCloseParenProducesError(t *testing.T) {
	prog := parse("(+ 1 2")
	if ParseSuccess(prog) {
		t.Fatalf("expected parse failure for unterminated form, got %+v", prog.Exp)
	}
}

func TestParseEmptyLetBindingsProducesError(t *testing.T) {
	prog := parse("(let () 1)")
	if ParseSuccess(prog) {
		t.Fatalf("expected parse failure for empty let bindings, got %+v", prog.Exp)
	}
}
