// Package testkit holds checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"candidc/internal/ast"
	"candidc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed program:
//   - every declaration and type node has a non-empty span in sf;
//   - declarations appear in increasing, non-overlapping order inside
//     prog.Span, followed by the actor;
//   - a child type node lies within its parent's span.
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s span is empty: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to file %d, want %d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}
	within := func(what string, inner, outer source.Span) error {
		if inner.Start < outer.Start || inner.End > outer.End {
			return fmt.Errorf("%s span %v is outside %v", what, inner, outer)
		}
		return nil
	}

	if len(prog.Decs) == 0 && prog.Actor == nil {
		return nil
	}
	if err := inFile("program", prog.Span); err != nil {
		return err
	}

	var prevEnd uint32
	for i, d := range prog.Decs {
		sp := d.Pos()
		what := fmt.Sprintf("declaration %d", i)
		if err := inFile(what, sp); err != nil {
			return err
		}
		if err := within(what, sp, prog.Span); err != nil {
			return err
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps the previous one", what, sp)
		}
		prevEnd = sp.End
		if td, ok := d.(*ast.TypeDec); ok {
			if err := checkType(td.Type, sp, inFile, within); err != nil {
				return fmt.Errorf("type %s: %w", td.Name.Name, err)
			}
		}
	}
	if prog.Actor != nil {
		sp := prog.Actor.Pos()
		if sp.Start < prevEnd {
			return fmt.Errorf("actor span %v overlaps the declarations", sp)
		}
		if err := within("actor", sp, prog.Span); err != nil {
			return err
		}
		if err := checkType(prog.Actor, prog.Span, inFile, within); err != nil {
			return fmt.Errorf("actor: %w", err)
		}
	}
	return nil
}

func checkType(t ast.Type, parent source.Span,
	inFile func(string, source.Span) error,
	within func(string, source.Span, source.Span) error,
) error {
	if t == nil {
		return nil
	}
	sp := t.Pos()
	what := fmt.Sprintf("%T", t)
	if err := inFile(what, sp); err != nil {
		return err
	}
	if err := within(what, sp, parent); err != nil {
		return err
	}
	for _, c := range children(t) {
		if err := checkType(c, sp, inFile, within); err != nil {
			return err
		}
	}
	return nil
}

func children(t ast.Type) []ast.Type {
	var out []ast.Type
	switch n := t.(type) {
	case *ast.OptT:
		out = append(out, n.Elem)
	case *ast.VecT:
		out = append(out, n.Elem)
	case *ast.RecordT:
		for _, f := range n.Fields {
			out = append(out, f.Type)
		}
	case *ast.VariantT:
		for _, f := range n.Fields {
			out = append(out, f.Type)
		}
	case *ast.FuncT:
		for _, a := range n.Args {
			out = append(out, a.Type)
		}
		for _, r := range n.Rets {
			out = append(out, r.Type)
		}
	case *ast.ServT:
		for _, m := range n.Methods {
			out = append(out, m.Type)
		}
	case *ast.ClassT:
		for _, a := range n.Args {
			out = append(out, a.Type)
		}
		out = append(out, n.Service)
	}
	return out
}
