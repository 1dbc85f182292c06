package ast

import "candidc/internal/source"

// Program is the syntax tree of one .did file: its declarations in source
// order and the optional top-level service (actor) type.
type Program struct {
	File  source.FileID
	Decs  []Dec
	Actor Type // nil when the file declares no service
	Span  source.Span
}

// Imports returns the import declarations in source order.
func (p *Program) Imports() []*ImportDec {
	var out []*ImportDec
	for _, d := range p.Decs {
		if imp, ok := d.(*ImportDec); ok {
			out = append(out, imp)
		}
	}
	return out
}

// TypeDecs returns the type declarations in source order.
func (p *Program) TypeDecs() []*TypeDec {
	var out []*TypeDec
	for _, d := range p.Decs {
		if td, ok := d.(*TypeDec); ok {
			out = append(out, td)
		}
	}
	return out
}

// Ident is a name together with the span it was written at.
type Ident struct {
	Name string
	Span source.Span
}
