package ast

import "testing"

func TestReferencesOrder(t *testing.T) {
	ty := &FuncT{
		Args: []Arg{{Type: &VarT{Name: "a"}}, {Type: &OptT{Elem: &VarT{Name: "b"}}}},
		Rets: []Arg{{Type: &RecordT{Fields: []Field{
			{Type: &VecT{Elem: &VarT{Name: "c"}}},
			{Type: &PrimT{Name: "nat"}},
		}}}},
	}
	refs := References(ty)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d", len(refs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if refs[i].Name != want {
			t.Fatalf("ref %d = %q, want %q", i, refs[i].Name, want)
		}
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	ty := &ClassT{
		Args:    []Arg{{Type: &VarT{Name: "init"}}},
		Service: &ServT{Methods: []Binding{{Type: &VarT{Name: "m"}}}},
	}
	var seen []string
	Inspect(ty, func(n Type) bool {
		if v, ok := n.(*VarT); ok {
			seen = append(seen, v.Name)
		}
		_, isServ := n.(*ServT)
		return !isServ
	})
	if len(seen) != 1 || seen[0] != "init" {
		t.Fatalf("unexpected visit order %v", seen)
	}
}

func TestHashName(t *testing.T) {
	cases := map[string]uint32{
		"":    0,
		"a":   97,
		"id":  23515,
		"foo": 5097222,
	}
	for name, want := range cases {
		if got := HashName(name); got != want {
			t.Errorf("HashName(%q) = %d, want %d", name, got, want)
		}
	}
}
