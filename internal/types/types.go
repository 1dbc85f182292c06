package types

import (
	"slices"
)

// Type is a resolved Candid type. The implementations in this package form
// a closed set.
type Type interface {
	Kind() Kind
	String() string
}

// Prim is a primitive type, principal included.
type Prim struct {
	K Kind
}

type Opt struct {
	Elem Type
}

type Vec struct {
	Elem Type
}

// Field is a record or variant member.
type Field struct {
	Label Label
	Type  Type
}

// Record holds its fields sorted by label id.
type Record struct {
	Fields []Field
}

// Variant holds its fields sorted by label id.
type Variant struct {
	Fields []Field
}

type FuncMode uint8

const (
	ModeOneway FuncMode = iota + 1
	ModeQuery
	ModeCompositeQuery
)

func (m FuncMode) String() string {
	switch m {
	case ModeOneway:
		return "oneway"
	case ModeQuery:
		return "query"
	case ModeCompositeQuery:
		return "composite_query"
	}
	return "unknown"
}

// Func is a function reference type. A checked Func has at most one mode.
type Func struct {
	Modes []FuncMode
	Args  []Type
	Rets  []Type
}

// IsOneway reports whether the function is fire-and-forget.
func (f *Func) IsOneway() bool {
	return slices.Contains(f.Modes, ModeOneway)
}

type Method struct {
	Name string
	Type Type
}

// Service keeps methods in declaration order.
type Service struct {
	Methods []Method
}

// Method returns the type of the named method.
func (s *Service) Method(name string) (Type, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m.Type, true
		}
	}
	return nil, false
}

// Class is a service constructor: init arguments and the service it yields.
type Class struct {
	Args    []Type
	Service Type
}

// Var refers to a named type in an Env.
type Var struct {
	Name string
}

func (t *Prim) Kind() Kind  { return t.K }
func (*Opt) Kind() Kind     { return KindOpt }
func (*Vec) Kind() Kind     { return KindVec }
func (*Record) Kind() Kind  { return KindRecord }
func (*Variant) Kind() Kind { return KindVariant }
func (*Func) Kind() Kind    { return KindFunc }
func (*Service) Kind() Kind { return KindService }
func (*Class) Kind() Kind   { return KindClass }
func (*Var) Kind() Kind     { return KindVar }

// NewRecord returns a record with fields sorted by label id.
func NewRecord(fields []Field) *Record {
	return &Record{Fields: sortFields(fields)}
}

// NewVariant returns a variant with fields sorted by label id.
func NewVariant(fields []Field) *Variant {
	return &Variant{Fields: sortFields(fields)}
}

func sortFields(fields []Field) []Field {
	out := slices.Clone(fields)
	slices.SortStableFunc(out, func(a, b Field) int {
		switch {
		case a.Label.ID < b.Label.ID:
			return -1
		case a.Label.ID > b.Label.ID:
			return 1
		}
		return 0
	})
	return out
}
