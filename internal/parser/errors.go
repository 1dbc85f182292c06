package parser

import (
	"fmt"

	"candidc/internal/source"
)

type ErrorKind uint8

const (
	// InvalidToken is a lexical error.
	InvalidToken ErrorKind = iota
	// UnrecognizedEOF means the input ended while more was expected.
	UnrecognizedEOF
	// UnrecognizedToken means a token cannot continue the current construct.
	UnrecognizedToken
	// ExtraToken means input continues after a complete program.
	ExtraToken
	// User is a grammar-level check such as a duplicate field label.
	User
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	case UnrecognizedEOF:
		return "unexpected EOF"
	case UnrecognizedToken:
		return "unexpected token"
	case ExtraToken:
		return "extra token"
	case User:
		return "user error"
	}
	return "unknown"
}

// Error is a structured syntax error. Expected is filled for
// UnrecognizedEOF and UnrecognizedToken.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Expected []string
	Msg      string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Msg)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Span)
}

// Label is the text shown next to the failing span.
func (e *Error) Label() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}
