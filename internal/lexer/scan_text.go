package lexer

import (
	"strings"
	"unicode/utf8"

	"candidc/internal/token"
)

// scanText scans a "..." literal and decodes its escapes:
// \n \r \t \\ \" \' , \HH (one byte) and \u{H...} (a code point).
// The decoded value must be valid UTF-8.
func (lx *Lexer) scanText() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			value := sb.String()
			if !utf8.ValidString(value) {
				return lx.invalid(sp, "text literal is not valid UTF-8")
			}
			return token.Token{Kind: token.Text, Span: sp, Text: value}
		case '\n':
			return lx.invalid(lx.cursor.SpanFrom(start), "newline in text literal")
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if !lx.scanEscape(&sb) {
				lx.report(lx.cursor.SpanFrom(escStart), "invalid escape sequence")
				return lx.recoverText(start)
			}
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
	return lx.invalid(lx.cursor.SpanFrom(start), "unterminated text literal")
}

func (lx *Lexer) scanEscape(sb *strings.Builder) bool {
	switch b := lx.cursor.Bump(); b {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case '\\', '"', '\'':
		sb.WriteByte(b)
	case 'u':
		if !lx.cursor.Eat('{') {
			return false
		}
		var cp rune
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			c := lx.cursor.Bump()
			if c == '_' {
				continue
			}
			cp = cp<<4 | rune(hexVal(c))
			digits++
			if digits > 6 {
				return false
			}
		}
		if digits == 0 || !lx.cursor.Eat('}') || !utf8.ValidRune(cp) {
			return false
		}
		sb.WriteRune(cp)
	default:
		if !isHex(b) || !isHex(lx.cursor.Peek()) {
			return false
		}
		lo := lx.cursor.Bump()
		sb.WriteByte(hexVal(b)<<4 | hexVal(lo))
	}
	return true
}

// recoverText skips to the closing quote (or end of line) after a bad escape
// so the parser sees one invalid token.
func (lx *Lexer) recoverText(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '"' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
