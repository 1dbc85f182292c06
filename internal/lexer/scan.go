package lexer

import (
	"candidc/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* and checks LookupKeyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber scans a decimal literal or a 0x-prefixed hexadecimal one.
// Underscores may separate digits.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) {
			return lx.invalid(lx.cursor.SpanFrom(start), "expected hexadecimal digits after 0x")
		}
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	} else {
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.invalid(lx.cursor.SpanFrom(start), "invalid digit in number literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Nat, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	var kind token.Kind
	switch b := lx.cursor.Bump(); b {
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '=':
		kind = token.Assign
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '-':
		if !lx.cursor.Eat('>') {
			return lx.invalid(lx.cursor.SpanFrom(start), "unexpected character '-'")
		}
		kind = token.Arrow
	default:
		if b >= utf8RuneSelf {
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		return lx.invalid(sp, "unexpected character "+quoteChar(lx.file.Content[sp.Start:sp.End]))
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
