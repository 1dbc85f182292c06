package parser

import (
	"strings"
	"testing"

	"candidc/internal/ast"
	"candidc/internal/source"
	"candidc/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.Program, *Error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.did", []byte(src))
	return Parse(fs.Get(id))
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func typeOf(t *testing.T, prog *ast.Program, name string) ast.Type {
	t.Helper()
	for _, td := range prog.TypeDecs() {
		if td.Name.Name == name {
			return td.Type
		}
	}
	t.Fatalf("type %q not declared", name)
	return nil
}

func TestParseProgram(t *testing.T) {
	src := `
import "common.did";
type id = nat;
type list = opt record { head : int; tail : list };
service : (init : text) -> {
  get : (id) -> (opt list) query;
  "put" : (list) -> ();
  ping : callback;
}
`
	prog := mustParse(t, src)
	if len(prog.Decs) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(prog.Decs))
	}
	imps := prog.Imports()
	if len(imps) != 1 || imps[0].Path != "common.did" {
		t.Fatalf("unexpected imports %+v", imps)
	}
	if got := src[imps[0].Span.Start:imps[0].Span.End]; got != `import "common.did"` {
		t.Fatalf("import span covers %q", got)
	}
	if _, ok := typeOf(t, prog, "id").(*ast.PrimT); !ok {
		t.Fatalf("id should be primitive")
	}
	opt, ok := typeOf(t, prog, "list").(*ast.OptT)
	if !ok {
		t.Fatalf("list should be opt")
	}
	rec, ok := opt.Elem.(*ast.RecordT)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("unexpected record %+v", opt.Elem)
	}
	if v, ok := rec.Fields[1].Type.(*ast.VarT); !ok || v.Name != "list" {
		t.Fatalf("tail should reference list")
	}

	class, ok := prog.Actor.(*ast.ClassT)
	if !ok {
		t.Fatalf("actor should be a class, got %T", prog.Actor)
	}
	if len(class.Args) != 1 || class.Args[0].Name == nil || class.Args[0].Name.Name != "init" {
		t.Fatalf("unexpected class args %+v", class.Args)
	}
	serv, ok := class.Service.(*ast.ServT)
	if !ok || len(serv.Methods) != 3 {
		t.Fatalf("unexpected service %+v", class.Service)
	}
	get, ok := serv.Methods[0].Type.(*ast.FuncT)
	if !ok || len(get.Modes) != 1 || get.Modes[0].Kind != ast.ModeQuery {
		t.Fatalf("get should be a query function")
	}
	if serv.Methods[1].Name.Name != "put" {
		t.Fatalf("quoted method name not decoded: %q", serv.Methods[1].Name.Name)
	}
	if _, ok := serv.Methods[2].Type.(*ast.VarT); !ok {
		t.Fatalf("ping should reference a named type")
	}
}

func TestParseActorForms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"named service", "service S : { f : () -> () }", "*ast.ServT"},
		{"reference", "type s = service {}; service : s;", "*ast.VarT"},
		{"class reference", "service : (nat) -> s", "*ast.ClassT"},
		{"no actor", "type a = nat;", "<nil>"},
		{"empty file", "", "<nil>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog := mustParse(t, tc.src)
			got := "<nil>"
			if prog.Actor != nil {
				got = typeName(prog.Actor)
			}
			if got != tc.want {
				t.Fatalf("actor is %s, want %s", got, tc.want)
			}
		})
	}
}

func typeName(ty ast.Type) string {
	switch ty.(type) {
	case *ast.ServT:
		return "*ast.ServT"
	case *ast.VarT:
		return "*ast.VarT"
	case *ast.ClassT:
		return "*ast.ClassT"
	}
	return "other"
}

func TestFieldLabels(t *testing.T) {
	prog := mustParse(t, `
type r = record { nat; 5 : text; bool; name : int; "quoted" : null };
type v = variant { a; "b"; 3; c : nat };
type b = blob;
`)
	rec := typeOf(t, prog, "r").(*ast.RecordT)
	wantIDs := []uint32{0, 5, 6, ast.HashName("name"), ast.HashName("quoted")}
	wantKinds := []ast.LabelKind{ast.LabelUnnamed, ast.LabelID, ast.LabelUnnamed, ast.LabelNamed, ast.LabelNamed}
	for i, f := range rec.Fields {
		if f.Label.ID != wantIDs[i] || f.Label.Kind != wantKinds[i] {
			t.Fatalf("field %d: label %+v, want id %d kind %d", i, f.Label, wantIDs[i], wantKinds[i])
		}
	}

	vr := typeOf(t, prog, "v").(*ast.VariantT)
	for i, f := range vr.Fields[:3] {
		prim, ok := f.Type.(*ast.PrimT)
		if !ok || prim.Name != "null" {
			t.Fatalf("variant field %d should default to null, got %+v", i, f.Type)
		}
	}
	if vr.Fields[2].Label.Kind != ast.LabelID || vr.Fields[2].Label.ID != 3 {
		t.Fatalf("unexpected numeric variant label %+v", vr.Fields[2].Label)
	}

	vec, ok := typeOf(t, prog, "b").(*ast.VecT)
	if !ok {
		t.Fatalf("blob should parse as vec")
	}
	if prim, ok := vec.Elem.(*ast.PrimT); !ok || prim.Name != "nat8" {
		t.Fatalf("blob element should be nat8")
	}
}

func TestFuncModes(t *testing.T) {
	prog := mustParse(t, "type f = func (nat, x : text) -> () oneway query;")
	fn := typeOf(t, prog, "f").(*ast.FuncT)
	if len(fn.Args) != 2 || fn.Args[0].Name != nil || fn.Args[1].Name.Name != "x" {
		t.Fatalf("unexpected args %+v", fn.Args)
	}
	if len(fn.Modes) != 2 {
		t.Fatalf("parser should keep every mode, got %d", len(fn.Modes))
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		kind     ErrorKind
		at       string // source text at the error span start
		expected []string
		msg      string
	}{
		{
			name:     "missing semicolon",
			src:      "type a = nat type b = int;",
			kind:     UnrecognizedToken,
			at:       "type b",
			expected: []string{`";"`, `"service"`},
		},
		{
			name: "eof in type",
			src:  "type a = ",
			kind: UnrecognizedEOF,
			expected: []string{
				`"blob"`, `"func"`, `"opt"`, `"principal"`, `"record"`,
				`"service"`, `"variant"`, `"vec"`, "id",
			},
		},
		{
			name: "extra token",
			src:  "service : {}; type a = nat;",
			kind: ExtraToken,
			at:   "type a",
		},
		{
			name: "invalid token",
			src:  "type a = nat #;",
			kind: InvalidToken,
			at:   "#;",
			msg:  "unexpected character '#'",
		},
		{
			name: "duplicate field",
			src:  "type r = record { a : nat; a : text };",
			kind: User,
			at:   "a : text",
			msg:  "duplicate field label 'a'",
		},
		{
			name: "duplicate positional",
			src:  "type r = record { 1 : nat; 0 : text; bool };",
			kind: User,
			at:   "bool",
			msg:  "duplicate field label '1'",
		},
		{
			name: "duplicate method",
			src:  "service : { f : () -> (); f : () -> () }",
			kind: User,
			at:   "f : () -> () }",
			msg:  "duplicate binding for f",
		},
		{
			name:     "record field without type",
			src:      `type r = record { "a" };`,
			kind:     UnrecognizedToken,
			at:       "}",
			expected: []string{`":"`},
		},
		{
			name:     "top level junk",
			src:      "nat;",
			kind:     UnrecognizedToken,
			at:       "nat",
			expected: []string{`"import"`, `"service"`, `"type"`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSource(t, tc.src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Kind != tc.kind {
				t.Fatalf("kind %v, want %v (%v)", err.Kind, tc.kind, err)
			}
			if tc.at != "" && !strings.HasPrefix(tc.src[err.Span.Start:], tc.at) {
				t.Fatalf("error at %q, want %q", tc.src[err.Span.Start:], tc.at)
			}
			if tc.kind == UnrecognizedEOF && int(err.Span.Start) != len(tc.src) {
				t.Fatalf("EOF error at %d, want %d", err.Span.Start, len(tc.src))
			}
			if tc.expected != nil && strings.Join(err.Expected, " ") != strings.Join(tc.expected, " ") {
				t.Fatalf("expected set %v, want %v", err.Expected, tc.expected)
			}
			if tc.msg != "" && err.Msg != tc.msg {
				t.Fatalf("message %q, want %q", err.Msg, tc.msg)
			}
		})
	}
}

func TestSpanInvariants(t *testing.T) {
	sources := map[string]string{
		"empty":   ``,
		"imports": `import "a.did"; import "b.did";`,
		"records": `type R = record { nat; x : opt vec text; 7 : record {} };`,
		"variant": `type V = variant { a; b : nat8; 3 : reserved };`,
		"funcs":   `type F = func (x : nat, text) -> (bool) query; type S = service { m : F; n : (nat) -> () oneway };`,
		"class":   "type T = nat;\nservice : (init : T) -> { get : () -> (T) query };",
		"actor":   `service : { ping : () -> () }`,
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual(name+".did", []byte(src))
			prog, perr := Parse(fs.Get(id))
			if perr != nil {
				t.Fatalf("parse: %v", perr)
			}
			if err := testkit.CheckSpanInvariants(prog, fs.Get(id)); err != nil {
				t.Fatal(err)
			}
		})
	}
}
