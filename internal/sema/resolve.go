package sema

import (
	"fmt"

	"candidc/internal/diag"
	"candidc/internal/types"
)

// ResolveVar follows t through Var aliases in env until it reaches a
// non-Var type. Visiting a name twice in one walk is a circular definition.
func ResolveVar(env *types.Env, pos Positions, t types.Type) (types.Type, error) {
	visited := make(map[string]struct{})
	for {
		v, ok := t.(*types.Var)
		if !ok {
			return t, nil
		}
		if _, seen := visited[v.Name]; seen {
			return nil, circularError(pos, v.Name)
		}
		visited[v.Name] = struct{}{}
		next, ok := env.Lookup(v.Name)
		if !ok {
			return nil, diag.NewError(diag.SemaUnboundType, "unbound type identifier: "+v.Name)
		}
		t = next
	}
}

func circularError(pos Positions, name string) *diag.Diagnostic {
	d := diag.NewError(diag.SemaCircularType, fmt.Sprintf("type %s has circular definition", name))
	if p, ok := pos[name]; ok {
		d.WithPrimary(p.Span, "circular type")
	}
	return d
}

func resolveAsFunc(env *types.Env, pos Positions, t types.Type) (*types.Func, error) {
	r, err := ResolveVar(env, pos, t)
	if err != nil {
		return nil, err
	}
	if fn, ok := r.(*types.Func); ok {
		return fn, nil
	}
	return nil, diag.NewError(diag.SemaNonFuncMethod, "not a function type: "+t.String())
}

// resolveAsService chases Var and Class indirections down to a Service.
func resolveAsService(env *types.Env, pos Positions, t types.Type) (*types.Service, error) {
	cur := t
	for {
		r, err := ResolveVar(env, pos, cur)
		if err != nil {
			return nil, err
		}
		switch r := r.(type) {
		case *types.Service:
			return r, nil
		case *types.Class:
			cur = r.Service
		default:
			return nil, diag.NewError(diag.SemaNotService, "not a service type: "+t.String())
		}
	}
}
