package sema

import (
	"sort"

	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/source"
)

// Position is where a type name was first defined.
type Position struct {
	File source.FileID
	Span source.Span // the name in `type name = T`
}

// Positions maps every type name of the import closure to its definition.
type Positions map[string]Position

// Names returns the bound names in sorted order.
func (p Positions) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind records the position of every type declaration in programs and fails
// on the first name defined twice. Programs are visited from the last loaded
// to the first, so imported files bind before the files importing them and a
// redefinition is reported at the importer.
func Bind(programs []*ast.Program) (Positions, error) {
	pos := make(Positions)
	for i := len(programs) - 1; i >= 0; i-- {
		prog := programs[i]
		for _, td := range prog.TypeDecs() {
			name := td.Name.Name
			if prev, ok := pos[name]; ok {
				return nil, diag.NewError(diag.SemaDuplicateType, "duplicate name").
					WithPrimary(td.Name.Span, "").
					WithSecondary(prev.Span, "another definition was found here")
			}
			pos[name] = Position{File: prog.File, Span: td.Name.Span}
		}
	}
	return pos, nil
}
