package token

import (
	"candidc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	// Text is the source slice for identifiers and numbers and the decoded
	// value for text literals.
	Text string
}

// IsLiteral reports whether the token is a text or numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Text || t.Kind == Nat
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwType && t.Kind <= KwCompositeQuery
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	return t.Kind >= Semicolon && t.Kind <= RBrace
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
