package types

import (
	"maps"
	"sort"
)

// Env maps type names to their definitions. A name may map to a *Var,
// forming an alias chain.
type Env struct {
	defs map[string]Type
}

func NewEnv() *Env {
	return &Env{defs: make(map[string]Type)}
}

// Insert binds name to t, replacing an earlier binding.
func (e *Env) Insert(name string, t Type) {
	e.defs[name] = t
}

func (e *Env) Lookup(name string) (Type, bool) {
	t, ok := e.defs[name]
	return t, ok
}

func (e *Env) Len() int {
	return len(e.defs)
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.defs))
	for name := range e.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the bindings. Types are shared.
func (e *Env) Clone() *Env {
	return &Env{defs: maps.Clone(e.defs)}
}
