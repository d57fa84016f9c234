package rlang

// ----------------------------------------------------------------------------
// Tokens

// This section contains the token data model produced by the Lexer and
// consumed by the Parser (spec.md §3, §4.1).
//
// A Token carries its source position so parse errors can point at the
// exact offending character, not just "somewhere in the input".

// TokenKind enumerates the lexical categories the Lexer recognizes.
type TokenKind int

const (
	Number TokenKind = iota
	Add
	Negate
	Lparen
	Rparen
	Lbracket
	Rbracket
	Identifier
	EndOfFile
	ErrorToken
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "Number"
	case Add:
		return "Add"
	case Negate:
		return "Negate"
	case Lparen:
		return "Lparen"
	case Rparen:
		return "Rparen"
	case Lbracket:
		return "Lbracket"
	case Rbracket:
		return "Rbracket"
	case Identifier:
		return "Identifier"
	case EndOfFile:
		return "EndOfFile"
	case ErrorToken:
		return "Error"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit: its kind, its literal source text, and
// the (line, col) it started at. Lines and columns are both 1-based; a
// tab counts as one column (spec.md §4.1).
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Col    int
}
