package ast

// Inspect traverses t depth-first, calling f for each node. When f returns
// false the children of that node are skipped.
func Inspect(t Type, f func(Type) bool) {
	if t == nil || !f(t) {
		return
	}
	switch n := t.(type) {
	case *OptT:
		Inspect(n.Elem, f)
	case *VecT:
		Inspect(n.Elem, f)
	case *RecordT:
		for _, fld := range n.Fields {
			Inspect(fld.Type, f)
		}
	case *VariantT:
		for _, fld := range n.Fields {
			Inspect(fld.Type, f)
		}
	case *FuncT:
		for _, a := range n.Args {
			Inspect(a.Type, f)
		}
		for _, r := range n.Rets {
			Inspect(r.Type, f)
		}
	case *ServT:
		for _, m := range n.Methods {
			Inspect(m.Type, f)
		}
	case *ClassT:
		for _, a := range n.Args {
			Inspect(a.Type, f)
		}
		Inspect(n.Service, f)
	}
}

// References returns the named-type references inside t in traversal order.
func References(t Type) []*VarT {
	var out []*VarT
	Inspect(t, func(n Type) bool {
		if v, ok := n.(*VarT); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}
