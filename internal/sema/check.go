package sema

import (
	"fmt"

	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/source"
	"candidc/internal/types"
)

// Result is the outcome of checking an import closure.
type Result struct {
	Env       *types.Env
	Positions Positions
	// Actors holds the checked top-level service of every program that has one.
	Actors map[source.FileID]types.Type
}

// pendingMethod is a method whose shape is validated once every binding of
// the closure is in the env.
type pendingMethod struct {
	name    ast.Ident
	typ     types.Type
	binding source.Span // name of the enclosing type declaration; empty for actors
}

// Checker lowers syntactic types into a shared env. It stops at the first
// error.
type Checker struct {
	env     *types.Env
	pos     Positions
	pending []pendingMethod
	// binding is the declaration currently being lowered
	binding source.Span
}

func NewChecker(pos Positions) *Checker {
	return &Checker{
		env: types.NewEnv(),
		pos: pos,
	}
}

func (c *Checker) Env() *types.Env { return c.env }

// Check binds and checks programs, given in load order.
func Check(programs []*ast.Program) (*Result, error) {
	pos, err := Bind(programs)
	if err != nil {
		return nil, err
	}
	c := NewChecker(pos)
	if err := c.CheckDecs(programs); err != nil {
		return nil, err
	}
	if err := c.CheckMethods(); err != nil {
		return nil, err
	}
	actors, err := c.CheckActors(programs)
	if err != nil {
		return nil, err
	}
	if err := c.CheckCycles(); err != nil {
		return nil, err
	}
	return &Result{Env: c.env, Positions: pos, Actors: actors}, nil
}

// CheckDecs lowers every type declaration, last loaded program first.
func (c *Checker) CheckDecs(programs []*ast.Program) error {
	for i := len(programs) - 1; i >= 0; i-- {
		for _, td := range programs[i].TypeDecs() {
			c.binding = td.Name.Span
			t, d := c.checkType(td.Type)
			if d != nil {
				return d.WithSecondary(td.Name.Span, "error originated from this binding")
			}
			c.env.Insert(td.Name.Name, t)
		}
	}
	c.binding = source.Span{}
	return nil
}

// CheckActors lowers the service of every program and requires it to be a
// service, possibly behind aliases or a constructor.
func (c *Checker) CheckActors(programs []*ast.Program) (map[source.FileID]types.Type, error) {
	actors := make(map[source.FileID]types.Type)
	for i := len(programs) - 1; i >= 0; i-- {
		prog := programs[i]
		if prog.Actor == nil {
			continue
		}
		t, d := c.checkActor(prog.Actor)
		if d != nil {
			return nil, d
		}
		actors[prog.File] = t
	}
	// methods introduced by inline actor services
	if err := c.CheckMethods(); err != nil {
		return nil, err
	}
	for i := len(programs) - 1; i >= 0; i-- {
		prog := programs[i]
		t, ok := actors[prog.File]
		if !ok {
			continue
		}
		if _, err := resolveAsService(c.env, c.pos, t); err != nil {
			if d, ok := diag.As(err); ok && len(d.Labels) == 0 {
				d.WithPrimary(prog.Actor.Pos(), "")
			}
			return nil, err
		}
	}
	return actors, nil
}

// CheckMethods validates that every pending service method is a function.
func (c *Checker) CheckMethods() error {
	pending := c.pending
	c.pending = nil
	for _, m := range pending {
		if _, err := resolveAsFunc(c.env, c.pos, m.typ); err != nil {
			d, ok := diag.As(err)
			if !ok {
				return err
			}
			if d.Code == diag.SemaNonFuncMethod {
				d = diag.NewError(diag.SemaNonFuncMethod,
					fmt.Sprintf("method %q has a non-function type", m.name.Name)).
					WithPrimary(m.name.Span, "").
					WithNote(d.Message)
			} else if len(d.Labels) == 0 {
				d.WithPrimary(m.name.Span, "")
			}
			if !m.binding.Empty() {
				d.WithSecondary(m.binding, "error originated from this binding")
			}
			return d
		}
	}
	return nil
}

// CheckCycles resolves every bound name to surface circular aliases that
// nothing else walked through. The failure points back at the binding the
// walk started from.
func (c *Checker) CheckCycles() error {
	for _, name := range c.pos.Names() {
		if _, err := ResolveVar(c.env, c.pos, &types.Var{Name: name}); err != nil {
			d, ok := diag.As(err)
			if !ok {
				return err
			}
			return d.WithSecondary(c.pos[name].Span, "error originated from this binding")
		}
	}
	return nil
}

func (c *Checker) checkActor(t ast.Type) (types.Type, *diag.Diagnostic) {
	class, ok := t.(*ast.ClassT)
	if !ok {
		return c.checkType(t)
	}
	args, d := c.checkArgs(class.Args)
	if d != nil {
		return nil, d
	}
	serv, d := c.checkType(class.Service)
	if d != nil {
		return nil, d
	}
	return &types.Class{Args: args, Service: serv}, nil
}

func (c *Checker) checkType(t ast.Type) (types.Type, *diag.Diagnostic) {
	switch t := t.(type) {
	case *ast.PrimT:
		k, ok := types.PrimByName(t.Name)
		if !ok {
			return nil, unbound(t.Name, t.Span)
		}
		return &types.Prim{K: k}, nil

	case *ast.PrincipalT:
		return &types.Prim{K: types.KindPrincipal}, nil

	case *ast.VarT:
		if _, ok := c.pos[t.Name]; !ok {
			return nil, unbound(t.Name, t.Span)
		}
		return &types.Var{Name: t.Name}, nil

	case *ast.OptT:
		elem, d := c.checkType(t.Elem)
		if d != nil {
			return nil, d
		}
		return &types.Opt{Elem: elem}, nil

	case *ast.VecT:
		elem, d := c.checkType(t.Elem)
		if d != nil {
			return nil, d
		}
		return &types.Vec{Elem: elem}, nil

	case *ast.RecordT:
		fields, d := c.checkFields(t.Fields)
		if d != nil {
			return nil, d
		}
		return types.NewRecord(fields), nil

	case *ast.VariantT:
		fields, d := c.checkFields(t.Fields)
		if d != nil {
			return nil, d
		}
		return types.NewVariant(fields), nil

	case *ast.FuncT:
		return c.checkFunc(t)

	case *ast.ServT:
		return c.checkService(t)

	case *ast.ClassT:
		return nil, diag.NewError(diag.SemaNestedClass, "service constructor not supported").
			WithPrimary(t.Span, "")
	}
	panic(fmt.Sprintf("sema: unexpected syntax node %T", t))
}

func (c *Checker) checkFields(fields []ast.Field) ([]types.Field, *diag.Diagnostic) {
	out := make([]types.Field, 0, len(fields))
	for _, f := range fields {
		t, d := c.checkType(f.Type)
		if d != nil {
			return nil, d
		}
		out = append(out, types.Field{Label: lowerLabel(f.Label), Type: t})
	}
	return out, nil
}

func (c *Checker) checkFunc(t *ast.FuncT) (types.Type, *diag.Diagnostic) {
	if len(t.Modes) > 1 {
		return nil, diag.NewError(diag.SemaTooManyModes, "cannot have more than one mode").
			WithPrimary(t.Span, "")
	}
	fn := &types.Func{}
	for _, m := range t.Modes {
		fn.Modes = append(fn.Modes, lowerMode(m.Kind))
	}
	if fn.IsOneway() && len(t.Rets) > 0 {
		return nil, diag.NewError(diag.SemaOnewayReturns, "oneway function has non-unit return type").
			WithPrimary(t.Span, "")
	}
	var d *diag.Diagnostic
	if fn.Args, d = c.checkArgs(t.Args); d != nil {
		return nil, d
	}
	if fn.Rets, d = c.checkArgs(t.Rets); d != nil {
		return nil, d
	}
	return fn, nil
}

func (c *Checker) checkArgs(args []ast.Arg) ([]types.Type, *diag.Diagnostic) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]types.Type, 0, len(args))
	for _, a := range args {
		t, d := c.checkType(a.Type)
		if d != nil {
			return nil, d
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Checker) checkService(t *ast.ServT) (types.Type, *diag.Diagnostic) {
	serv := &types.Service{}
	for _, m := range t.Methods {
		mt, d := c.checkType(m.Type)
		if d != nil {
			return nil, d
		}
		serv.Methods = append(serv.Methods, types.Method{Name: m.Name.Name, Type: mt})
		c.pending = append(c.pending, pendingMethod{name: m.Name, typ: mt, binding: c.binding})
	}
	return serv, nil
}

func unbound(name string, sp source.Span) *diag.Diagnostic {
	return diag.NewError(diag.SemaUnboundType, "unbound type identifier: "+name).
		WithPrimary(sp, "")
}

func lowerLabel(l ast.Label) types.Label {
	switch l.Kind {
	case ast.LabelNamed:
		return types.Label{Kind: types.LabelNamed, ID: l.ID, Name: l.Name}
	case ast.LabelID:
		return types.Label{Kind: types.LabelID, ID: l.ID}
	default:
		return types.Label{Kind: types.LabelUnnamed, ID: l.ID}
	}
}

func lowerMode(k ast.ModeKind) types.FuncMode {
	switch k {
	case ast.ModeOneway:
		return types.ModeOneway
	case ast.ModeQuery:
		return types.ModeQuery
	default:
		return types.ModeCompositeQuery
	}
}
