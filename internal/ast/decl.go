package ast

import "candidc/internal/source"

// Dec is a top-level declaration: *TypeDec or *ImportDec.
type Dec interface {
	Pos() source.Span
	decNode()
}

// TypeDec is `type name = T;`.
type TypeDec struct {
	Name Ident
	Type Type
	Span source.Span
}

// ImportDec is `import "path";`. Span covers the whole statement.
type ImportDec struct {
	Path     string
	PathSpan source.Span
	Span     source.Span
}

func (d *TypeDec) Pos() source.Span   { return d.Span }
func (d *ImportDec) Pos() source.Span { return d.Span }

func (*TypeDec) decNode()   {}
func (*ImportDec) decNode() {}
