package rlang

import (
	"fmt"

	"rlang.dev/compiler/pkg/ident"
)

// ----------------------------------------------------------------------------
// Parser (C2)

// Parser is a recursive-descent parser over a flat token slice (spec.md
// §4.2). It never backtracks; on a malformed construct it produces an
// Error node and, where sensible, continues consuming tokens so that
// later errors in the same program also surface.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser returns a Parser over tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the parser's tokens and returns the resulting Program.
// program ::= '(' expr ')'
func (p *Parser) Parse() Program {
	return Program{Exp: p.parseExpr()}
}

// ParseSuccess reports whether the last Parse() call's result contains no
// Error node (spec.md §4.2's parse_success()).
func ParseSuccess(prog Program) bool {
	return !ContainsError(prog.Exp)
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func errNode(msg string, tok Token) AstNode {
	return Error{Msg: msg, Token: tok}
}

// parseExpr parses a single `expr` per the grammar in spec.md §4.2.
func (p *Parser) parseExpr() AstNode {
	tok, ok := p.peek()
	if !ok {
		return errNode("expected expression, found end of input", Token{Kind: EndOfFile})
	}

	switch tok.Kind {
	case Number:
		p.advance()
		return parseIntLiteral(tok)

	case Identifier:
		p.advance()
		return Var{Name: ident.Intern(tok.Lexeme)}

	case Lparen:
		p.advance()
		return p.parseParenForm()

	default:
		p.advance()
		return errNode(fmt.Sprintf("unexpected token %s(%q)", tok.Kind, tok.Lexeme), tok)
	}
}

func parseIntLiteral(tok Token) AstNode {
	var n int64
	for _, c := range tok.Lexeme {
		n = n*10 + int64(c-'0')
	}
	return Int{Value: n}
}

// parseParenForm parses the body of a form after the opening '(' has
// already been consumed. This is either a `let`, an operator
// application, or — since the grammar's `program ::= '(' expr ')'` rule
// allows a bare literal/identifier program to be wrapped in a single
// redundant pair of parens (spec.md §8 scenario 1: `(2)` → `2`) — a
// parenthesized bare expr.
func (p *Parser) parseParenForm() AstNode {
	tok, ok := p.peek()
	if !ok {
		return errNode("expected expression after '(', found end of input", Token{Kind: EndOfFile})
	}

	switch {
	case tok.Kind == Identifier && tok.Lexeme == "let":
		p.advance()
		return p.parseLet()

	case tok.Kind == Add || tok.Kind == Negate || (tok.Kind == Identifier && tok.Lexeme == "read"):
		return p.parsePrim(tok)

	default:
		inner := p.parseExpr()
		closeTok, ok := p.advance()
		if !ok || closeTok.Kind != Rparen {
			return errNode("expected ')' to close parenthesized expression", closeTok)
		}
		return inner
	}
}

// parsePrim parses `op expr+ ')'` where op has already been peeked (but
// not consumed) as opTok.
func (p *Parser) parsePrim(opTok Token) AstNode {
	var op string
	switch {
	case opTok.Kind == Add:
		op = "+"
	case opTok.Kind == Negate:
		op = "-"
	case opTok.Kind == Identifier && opTok.Lexeme == "read":
		op = "read"
	default:
		p.advance()
		return errNode(fmt.Sprintf("expected operator ('+', '-', 'read') or 'let', found %s(%q)", opTok.Kind, opTok.Lexeme), opTok)
	}
	p.advance()

	var args []AstNode
	for {
		tok, ok := p.peek()
		if !ok {
			return errNode("unterminated form, expected ')'", Token{Kind: EndOfFile})
		}
		if tok.Kind == Rparen {
			p.advance()
			break
		}
		args = append(args, p.parseExpr())
	}

	wantArity := map[string]int{"read": 0, "-": 1, "+": 2}[op]
	if len(args) != wantArity {
		return errNode(fmt.Sprintf("operator %q expects %d argument(s), got %d", op, wantArity, len(args)), opTok)
	}
	return Prim{Op: op, Args: args}
}

// parseLet parses `'(' (binding)+ ')' expr ')'`, the 'let' keyword
// itself already consumed.
func (p *Parser) parseLet() AstNode {
	open, ok := p.peek()
	if !ok || open.Kind != Lparen {
		tok, _ := p.advance()
		return errNode("expected '(' to open let-bindings list", tok)
	}
	p.advance()

	var bindings []Binding
	for {
		tok, ok := p.peek()
		if !ok {
			return errNode("unterminated let-bindings list, expected ']' or ')'", Token{Kind: EndOfFile})
		}
		if tok.Kind == Rparen {
			p.advance()
			break
		}
		bindings = append(bindings, p.parseBinding())
	}
	if len(bindings) == 0 {
		return errNode("let requires at least one binding", open)
	}

	body := p.parseExpr()

	closeTok, ok := p.advance()
	if !ok || closeTok.Kind != Rparen {
		return errNode("expected ')' to close let", closeTok)
	}

	return Let{Bindings: bindings, Body: body}
}

// parseBinding parses `'[' Identifier expr ']'`.
func (p *Parser) parseBinding() Binding {
	open, ok := p.advance()
	if !ok || open.Kind != Lbracket {
		return Binding{Name: ident.Intern(""), Expr: errNode("expected '[' to open binding", open)}
	}

	nameTok, ok := p.advance()
	if !ok || nameTok.Kind != Identifier {
		return Binding{Name: ident.Intern(""), Expr: errNode("expected identifier in binding", nameTok)}
	}

	expr := p.parseExpr()

	closeTok, ok := p.advance()
	if !ok || closeTok.Kind != Rbracket {
		return Binding{Name: ident.Intern(nameTok.Lexeme), Expr: errNode("expected ']' to close binding", closeTok)}
	}

	return Binding{Name: ident.Intern(nameTok.Lexeme), Expr: expr}
}
