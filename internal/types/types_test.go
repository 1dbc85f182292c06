package types

import (
	"testing"
)

func named(name string, t Type) Field {
	return Field{Label: Label{Kind: LabelNamed, Name: name, ID: hash(name)}, Type: t}
}

func hash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}

func TestRecordFieldsSortedByID(t *testing.T) {
	rec := NewRecord([]Field{
		named("b", &Prim{K: KindText}),
		{Label: Label{Kind: LabelUnnamed, ID: 0}, Type: &Prim{K: KindNat}},
		named("a", &Prim{K: KindBool}),
	})
	var ids []uint32
	for _, f := range rec.Fields {
		ids = append(ids, f.Label.ID)
	}
	if ids[0] != 0 || ids[1] != hash("a") || ids[2] != hash("b") {
		t.Fatalf("fields not sorted: %v", ids)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		name string
		ty   Type
		want string
	}{
		{"prim", &Prim{K: KindNat64}, "nat64"},
		{"principal", &Prim{K: KindPrincipal}, "principal"},
		{"opt vec", &Opt{Elem: &Vec{Elem: &Var{Name: "t"}}}, "opt vec t"},
		{"empty record", NewRecord(nil), "record {}"},
		{"tuple", NewRecord([]Field{
			{Label: Label{Kind: LabelUnnamed, ID: 0}, Type: &Prim{K: KindNat}},
			{Label: Label{Kind: LabelUnnamed, ID: 1}, Type: &Prim{K: KindText}},
		}), "record { nat; text }"},
		{"variant", NewVariant([]Field{
			named("ok", &Prim{K: KindNull}),
			{Label: Label{Kind: LabelID, ID: 1}, Type: &Prim{K: KindText}},
		}), "variant { 1 : text; ok }"},
		{"func", &Func{
			Modes: []FuncMode{ModeQuery},
			Args:  []Type{&Prim{K: KindNat}},
			Rets:  nil,
		}, "func (nat) -> () query"},
		{"service", &Service{Methods: []Method{
			{Name: "get", Type: &Func{Rets: []Type{&Prim{K: KindText}}}},
			{Name: "my method", Type: &Var{Name: "cb"}},
		}}, `service { get : () -> (text); "my method" : cb }`},
		{"class", &Class{Args: []Type{&Prim{K: KindText}}, Service: &Var{Name: "s"}}, "(text) -> s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ty.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPrimByName(t *testing.T) {
	for name, want := range primByName {
		got, ok := PrimByName(name)
		if !ok || got != want || got.String() != name {
			t.Fatalf("PrimByName(%q) = %v, %v", name, got, ok)
		}
		if !got.IsPrimitive() {
			t.Fatalf("%v should be primitive", got)
		}
	}
	if _, ok := PrimByName("principal"); ok {
		t.Fatalf("principal is a keyword, not a primitive name")
	}
}

func TestEnv(t *testing.T) {
	env := NewEnv()
	env.Insert("b", &Prim{K: KindNat})
	env.Insert("a", &Var{Name: "b"})
	if env.Len() != 2 {
		t.Fatalf("unexpected len %d", env.Len())
	}
	names := env.Names()
	if names[0] != "a" || names[1] != "b" {
		t.Fatalf("names not sorted: %v", names)
	}
	clone := env.Clone()
	clone.Insert("c", &Prim{K: KindText})
	if _, ok := env.Lookup("c"); ok {
		t.Fatalf("clone must not share bindings")
	}
}

func TestDescribeCoversEveryKind(t *testing.T) {
	all := []Type{
		&Prim{K: KindInt}, &Var{Name: "x"}, &Opt{Elem: &Prim{K: KindNull}},
		&Vec{Elem: &Prim{K: KindNat8}}, NewRecord(nil), NewVariant(nil),
		&Func{Modes: []FuncMode{ModeOneway}}, &Service{}, &Class{Service: &Service{}},
	}
	for _, ty := range all {
		n := Describe(ty)
		if n.Kind != ty.Kind().String() {
			t.Fatalf("Describe(%s).Kind = %q", ty, n.Kind)
		}
	}
	fn := Describe(&Func{Modes: []FuncMode{ModeOneway}, Args: []Type{&Var{Name: "a"}}})
	if len(fn.Modes) != 1 || fn.Modes[0] != "oneway" || fn.Args[0].Name != "a" {
		t.Fatalf("unexpected func node %+v", fn)
	}
}
