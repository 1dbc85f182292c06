package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"candidc/internal/diag"
)

func TestCheckFilesKeepsInputOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.did":     `type A = nat; service : { get : () -> (A) query }`,
		"broken.did": `type A = B;`,
		"other.did":  `type C = vec text;`,
	})

	var (
		mu     sync.Mutex
		stages = map[string][]Stage{}
	)
	sink := ProgressFunc(func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		stages[ev.Path] = append(stages[ev.Path], ev.Stage)
	})

	paths := []string{"ok.did", "broken.did", "other.did"}
	results, err := CheckFiles(context.Background(), paths, CheckOptions{Jobs: 2, WorkDir: dir, Progress: sink, Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is %s, want %s", i, r.Path, paths[i])
		}
		if r.Timing == nil {
			t.Errorf("%s: missing timings", r.Path)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
	d, ok := results[1].Diagnostic()
	if !ok || d.Code != diag.SemaUnboundType {
		t.Fatalf("broken.did: %v", results[1].Err)
	}
	if _, ok := results[0].Analyzer.ServiceFor("ok.did"); !ok {
		t.Fatal("ok.did service not recorded")
	}

	mu.Lock()
	defer mu.Unlock()
	if got := stages["ok.did"]; len(got) != 4 || got[3] != StageDone {
		t.Fatalf("ok.did stages = %v", got)
	}
	if got := stages["broken.did"]; got[len(got)-1] != StageError {
		t.Fatalf("broken.did stages = %v", got)
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CheckFiles(ctx, []string{"a.did"}, CheckOptions{WorkDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func exportFixture(t *testing.T) *Analyzer {
	t.Helper()
	dir := writeFiles(t, map[string]string{
		"main.did": `type Account = record { owner : principal; balance : nat };
service : { get : (principal) -> (opt Account) query }`,
	})
	a := NewAnalyzer(Options{WorkDir: dir})
	if err := a.Load("main.did"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.ConstructTypeEnv(); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestExportEnvFormats(t *testing.T) {
	a := exportFixture(t)
	env, _ := a.TypeEnv()
	actor, _ := a.ServiceFor("main.did")

	decoders := map[ExportFormat]func([]byte, *EnvExport) error{
		ExportJSON:    func(b []byte, v *EnvExport) error { return json.Unmarshal(b, v) },
		ExportYAML:    func(b []byte, v *EnvExport) error { return yaml.Unmarshal(b, v) },
		ExportMsgpack: func(b []byte, v *EnvExport) error { return msgpack.Unmarshal(b, v) },
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := ExportEnv(&buf, env, actor, format); err != nil {
				t.Fatal(err)
			}
			var got EnvExport
			if err := decode(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got.Types) != 1 || got.Types[0].Name != "Account" {
				t.Fatalf("types = %+v", got.Types)
			}
			if len(got.Types[0].Type.Fields) != 2 {
				t.Fatalf("Account fields = %+v", got.Types[0].Type.Fields)
			}
			if got.Service == nil || len(got.Service.Methods) != 1 || got.Service.Methods[0].Name != "get" {
				t.Fatalf("service = %+v", got.Service)
			}
		})
	}
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"json": ExportJSON, "YAML": ExportYAML, "yml": ExportYAML, "msgpack": ExportMsgpack} {
		got, err := ParseExportFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseExportFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseExportFormat("xml"); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected error for xml, got %v", err)
	}
}
