package types

import "fmt"

// Node is a serializable view of a Type used by the env export.
type Node struct {
	Kind    string       `json:"kind" yaml:"kind" msgpack:"kind"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Elem    *Node        `json:"elem,omitempty" yaml:"elem,omitempty" msgpack:"elem,omitempty"`
	Fields  []FieldNode  `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Modes   []string     `json:"modes,omitempty" yaml:"modes,omitempty" msgpack:"modes,omitempty"`
	Args    []Node       `json:"args,omitempty" yaml:"args,omitempty" msgpack:"args,omitempty"`
	Rets    []Node       `json:"rets,omitempty" yaml:"rets,omitempty" msgpack:"rets,omitempty"`
	Methods []MethodNode `json:"methods,omitempty" yaml:"methods,omitempty" msgpack:"methods,omitempty"`
	Service *Node        `json:"service,omitempty" yaml:"service,omitempty" msgpack:"service,omitempty"`
}

type FieldNode struct {
	Label string `json:"label" yaml:"label" msgpack:"label"`
	ID    uint32 `json:"id" yaml:"id" msgpack:"id"`
	Type  Node   `json:"type" yaml:"type" msgpack:"type"`
}

type MethodNode struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Type Node   `json:"type" yaml:"type" msgpack:"type"`
}

// NamedNode is one Env binding.
type NamedNode struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Type Node   `json:"type" yaml:"type" msgpack:"type"`
}

// Describe converts t into a Node tree. Var references stay references.
func Describe(t Type) Node {
	switch t := t.(type) {
	case *Prim:
		return Node{Kind: t.K.String()}
	case *Var:
		return Node{Kind: KindVar.String(), Name: t.Name}
	case *Opt:
		elem := Describe(t.Elem)
		return Node{Kind: KindOpt.String(), Elem: &elem}
	case *Vec:
		elem := Describe(t.Elem)
		return Node{Kind: KindVec.String(), Elem: &elem}
	case *Record:
		return Node{Kind: KindRecord.String(), Fields: describeFields(t.Fields)}
	case *Variant:
		return Node{Kind: KindVariant.String(), Fields: describeFields(t.Fields)}
	case *Func:
		n := Node{Kind: KindFunc.String(), Args: describeAll(t.Args), Rets: describeAll(t.Rets)}
		for _, m := range t.Modes {
			n.Modes = append(n.Modes, m.String())
		}
		return n
	case *Service:
		n := Node{Kind: KindService.String()}
		for _, m := range t.Methods {
			n.Methods = append(n.Methods, MethodNode{Name: m.Name, Type: Describe(m.Type)})
		}
		return n
	case *Class:
		serv := Describe(t.Service)
		return Node{Kind: KindClass.String(), Args: describeAll(t.Args), Service: &serv}
	}
	panic(fmt.Sprintf("types: unexpected type %T", t))
}

// DescribeEnv describes every binding of env in name order.
func DescribeEnv(env *Env) []NamedNode {
	names := env.Names()
	out := make([]NamedNode, 0, len(names))
	for _, name := range names {
		t, _ := env.Lookup(name)
		out = append(out, NamedNode{Name: name, Type: Describe(t)})
	}
	return out
}

func describeFields(fields []Field) []FieldNode {
	out := make([]FieldNode, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldNode{Label: f.Label.String(), ID: f.Label.ID, Type: Describe(f.Type)})
	}
	return out
}

func describeAll(ts []Type) []Node {
	if len(ts) == 0 {
		return nil
	}
	out := make([]Node, len(ts))
	for i, t := range ts {
		out[i] = Describe(t)
	}
	return out
}
