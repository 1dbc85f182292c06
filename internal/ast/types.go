package ast

import "candidc/internal/source"

// Type is a syntactic type expression. The concrete node types are listed
// below; the set is closed.
type Type interface {
	Pos() source.Span
	typeNode()
}

// PrimT is a primitive type name such as nat, int32 or text.
type PrimT struct {
	Name string
	Span source.Span
}

// VarT is a reference to a named type.
type VarT struct {
	Name string
	Span source.Span
}

type OptT struct {
	Elem Type
	Span source.Span
}

// VecT is `vec T`; `blob` parses as vec nat8.
type VecT struct {
	Elem Type
	Span source.Span
}

type RecordT struct {
	Fields []Field
	Span   source.Span
}

type VariantT struct {
	Fields []Field
	Span   source.Span
}

// FuncT is `(args) -> (rets) modes`.
type FuncT struct {
	Args  []Arg
	Rets  []Arg
	Modes []Mode
	Span  source.Span
}

// ServT is `service { methods }`.
type ServT struct {
	Methods []Binding
	Span    source.Span
}

// ClassT is a service constructor `(args) -> service`.
type ClassT struct {
	Args    []Arg
	Service Type
	Span    source.Span
}

type PrincipalT struct {
	Span source.Span
}

func (t *PrimT) Pos() source.Span      { return t.Span }
func (t *VarT) Pos() source.Span       { return t.Span }
func (t *OptT) Pos() source.Span       { return t.Span }
func (t *VecT) Pos() source.Span       { return t.Span }
func (t *RecordT) Pos() source.Span    { return t.Span }
func (t *VariantT) Pos() source.Span   { return t.Span }
func (t *FuncT) Pos() source.Span      { return t.Span }
func (t *ServT) Pos() source.Span      { return t.Span }
func (t *ClassT) Pos() source.Span     { return t.Span }
func (t *PrincipalT) Pos() source.Span { return t.Span }

func (*PrimT) typeNode()      {}
func (*VarT) typeNode()       {}
func (*OptT) typeNode()       {}
func (*VecT) typeNode()       {}
func (*RecordT) typeNode()    {}
func (*VariantT) typeNode()   {}
func (*FuncT) typeNode()      {}
func (*ServT) typeNode()      {}
func (*ClassT) typeNode()     {}
func (*PrincipalT) typeNode() {}

// Arg is a function or constructor argument. Name is nil when unnamed.
type Arg struct {
	Name *Ident
	Type Type
}

type ModeKind uint8

const (
	ModeOneway ModeKind = iota
	ModeQuery
	ModeCompositeQuery
)

func (k ModeKind) String() string {
	switch k {
	case ModeOneway:
		return "oneway"
	case ModeQuery:
		return "query"
	case ModeCompositeQuery:
		return "composite_query"
	}
	return "unknown"
}

type Mode struct {
	Kind ModeKind
	Span source.Span
}

// Binding is a service method `name : T`.
type Binding struct {
	Name Ident
	Type Type
	Span source.Span
}
