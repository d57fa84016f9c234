package rlang

import "testing"

func TestLexPunctuationAndOperators(t *testing.T) {
	toks := NewLexer("([+-])").Lex()
	want := []TokenKind{Lparen, Lbracket, Add, Negate, Rbracket, Rparen}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexNumber(t *testing.T) {
	toks := NewLexer("42").Lex()
	if len(toks) != 1 || toks[0].Kind != Number || toks[0].Lexeme != "42" {
		t.Fatalf("got %+v, want single Number(42)", toks)
	}
}

func TestLexIdentifierWithHyphenAndDigits(t *testing.T) {
	toks := NewLexer("my-var2").Lex()
	if len(toks) != 1 || toks[0].Kind != Identifier || toks[0].Lexeme != "my-var2" {
		t.Fatalf("got %+v, want single Identifier(my-var2)", toks)
	}
}

func TestLexLetExpression(t *testing.T) {
	toks := NewLexer("(let ([x 42]) x)").Lex()
	wantKinds := []TokenKind{
		Lparen, Identifier, Lparen, Lbracket, Identifier, Number, Rbracket, Rparen, Identifier, Rparen,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexTracksLineAndColumnAcrossNewlines(t *testing.T) {
	toks := NewLexer("(+\n  2\n  3)").Lex()
	// '(' at line 1 col 1, '+' at line 1 col 2, '2' at line 2 col 3, '3' at line 3 col 3
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Fatalf("'(' position = (%d,%d), want (1,1)", toks[0].Line, toks[0].Col)
	}
	if toks[1].Line != 1 || toks[1].Col != 2 {
		t.Fatalf("'+' position = (%d,%d), want (1,2)", toks[1].Line, toks[1].Col)
	}
	if toks[2].Line != 2 || toks[2].Col != 3 {
		t.Fatalf("'2' position = (%d,%d), want (2,3)", toks[2].Line, toks[2].Col)
	}
	if toks[3].Line != 3 || toks[3].Col != 3 {
		t.Fatalf("'3' position = (%d,%d), want (3,3)", toks[3].Line, toks[3].Col)
	}
}

func TestLexUnknownCharacterProducesErrorToken(t *testing.T) {
	toks := NewLexer("(@ 1)").Lex()
	if len(toks) < 2 || toks[1].Kind != ErrorToken || toks[1].Lexeme != "@" {
		t.Fatalf("got %+v, want Error(@) as second token", toks)
	}
}

func TestLexEmptySourceProducesNoTokens(t *testing.T) {
	toks := NewLexer("   \n\t  ").Lex()
	if len(toks) != 0 {
		t.Fatalf("got %+v, want no tokens", toks)
	}
}
