package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"candidc/internal/diag"
	"candidc/internal/source"
)

func fixture() (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	lib := fs.AddVirtual("lib.did", []byte("type T = text;\n"))
	main := fs.AddVirtual("main.did", []byte("import \"lib.did\";\ntype A = record { x : Missing };\n"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaUnboundType, "unbound type identifier: Missing").
		WithPrimary(source.Span{File: main, Start: 40, End: 47}, "").
		WithSecondary(source.Span{File: lib, Start: 5, End: 6}, "another definition was found here").
		WithNote("first note"))
	return fs, bag
}

func TestPrettyPlain(t *testing.T) {
	fs, bag := fixture()
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"error[SEM3002]: unbound type identifier: Missing",
		" --> main.did:2:23",
		"  |",
		"2 | type A = record { x : Missing };",
		"  |                       ^^^^^^^",
		" ::: lib.did:1:6",
		"  |",
		"1 | type T = text;",
		"  |      - another definition was found here",
		"  = note: first note",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWrapsMultiLineNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.did", []byte("type T = ;"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, "parser error").
		WithPrimary(source.Span{File: id, Start: 9, End: 10}, "unexpected token").
		WithNotes(diag.ExpectsNote([]string{"a", "b"})...).
		WithNote("line one\nline two"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"  |          ^ unexpected token\n",
		"  = note: Expects one of a, b\n",
		"  = note: line one\n          line two\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "note") {
		t.Fatalf("notes printed while disabled:\n%s", buf.String())
	}
}

func TestPrettyWideRunesAndTabs(t *testing.T) {
	fs := source.NewFileSet()
	content := "\t// 名前\ntype X = Y;"
	id := fs.AddVirtual("w.did", []byte(content))
	line, u := excerpt(fs.Get(id), source.Span{File: id, Start: 4, End: 10}, 2)
	if line != "  // 名前" {
		t.Fatalf("line = %q", line)
	}
	if u.pad != 5 || u.width != 4 {
		t.Fatalf("underline = %+v, want pad 5 width 4", u)
	}
}

func TestExcerptCRLFAndBOM(t *testing.T) {
	fs := source.NewFileSet()
	raw := []byte("\xEF\xBB\xBFtype A = nat;\r\ntype B = Missing;\r\n")
	id := fs.AddVirtual("crlf.did", raw)
	off := uint32(bytes.Index(raw, []byte("Missing")))
	line, u := excerpt(fs.Get(id), source.Span{File: id, Start: off, End: off + 7}, 4)
	if line != "type B = Missing;" {
		t.Fatalf("line = %q", line)
	}
	if u.pad != 9 || u.width != 7 {
		t.Fatalf("underline = %+v, want pad 9 width 7", u)
	}
	line, u = excerpt(fs.Get(id), source.Span{File: id, Start: 3, End: 7}, 4)
	if line != "type A = nat;" || u.pad != 0 || u.width != 4 {
		t.Fatalf("first line = %q %+v", line, u)
	}
}

func TestPrettyWithoutLabels(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, "cannot read file 'x.did': no such file or directory"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "IO4001") || strings.Contains(buf.String(), "-->") {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, bag := fixture()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3002" || d.Severity != "error" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location == nil || d.Location.File != "main.did" || d.Location.StartLine != 2 || d.Location.StartCol != 23 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Labels) != 2 || d.Labels[1].Primary || d.Labels[1].Location.File != "lib.did" {
		t.Fatalf("labels = %+v", d.Labels)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %v", d.Notes)
	}

	buf.Reset()
	if err := WriteJSON(&buf, DiagnosticsOutput{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("empty output = %s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	fs, bag := fixture()
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "candidc", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "main.did"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "candidc" || len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "SEM3002" {
		t.Fatalf("driver = %+v", run.Tool.Driver)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatal("run with an error reported as successful")
	}
	res := run.Results[0]
	if res.Level != "error" || len(res.Locations) != 1 || len(res.RelatedLocations) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if r := res.Locations[0].PhysicalLocation.Region; r.StartLine != 2 || r.StartColumn != 23 {
		t.Fatalf("region = %+v", r)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "absolute": PathModeAbsolute, "rel": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Fatal("expected error")
	}
}
