package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"candidc/internal/driver"
	"candidc/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkFlags() (*pflag.FlagSet, *pflag.FlagSet) {
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	flags.String("format", "pretty", "")
	flags.Bool("fullpath", false, "")
	flags.Bool("no-notes", false, "")
	flags.Int("jobs", 0, "")
	persistent := pflag.NewFlagSet("root", pflag.ContinueOnError)
	persistent.String("color", "auto", "")
	return flags, persistent
}

func TestResolveSettings(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeFile(t, dir, project.ManifestName, `
[check]
entries = ["service.did"]
jobs = 3

[output]
format = "short"
notes = false
`)
	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		format string
		notes  bool
		jobs   int
		path   string
	}{
		{"file wins over defaults", nil, "short", false, 3, "auto"},
		{"explicit flags win", []string{"--format=json", "--jobs=1", "--fullpath"}, "json", false, 1, "absolute"},
		{"no-notes=false turns notes back on", []string{"--no-notes=false"}, "short", true, 3, "auto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, persistent := checkFlags()
			if err := flags.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			s, err := resolveSettings(flags, persistent, manifest)
			if err != nil {
				t.Fatal(err)
			}
			if s.format != tt.format || s.notes != tt.notes || s.jobs != tt.jobs || s.pathMode != tt.path {
				t.Fatalf("settings = %+v", s)
			}
			if want := filepath.Join(dir, "service.did"); len(s.entries) != 1 || s.entries[0] != want {
				t.Fatalf("entries = %v, want [%s]", s.entries, want)
			}
		})
	}
}

func TestResolveSettingsRejectsBadValues(t *testing.T) {
	flags, persistent := checkFlags()
	if err := flags.Parse([]string{"--format=xml"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveSettings(flags, persistent, project.DefaultManifest()); err == nil {
		t.Fatal("expected error for --format=xml")
	}

	flags, persistent = checkFlags()
	if err := persistent.Parse([]string{"--color=sometimes"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveSettings(flags, persistent, project.DefaultManifest()); err == nil {
		t.Fatal("expected error for --color=sometimes")
	}
}

func checkedResults(t *testing.T) []driver.FileResult {
	t.Helper()
	dir := t.TempDir()
	good := writeFile(t, dir, "good.did", "type A = nat;\n")
	bad := writeFile(t, dir, "bad.did", "type A = record { x : Missing };\n")
	results, err := driver.CheckFiles(context.Background(), []string{good, bad}, driver.CheckOptions{Jobs: 1, WorkDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	return results
}

func TestReporterFormats(t *testing.T) {
	results := checkedResults(t)

	tests := []struct {
		format string
		want   []string
	}{
		{"pretty", []string{"ok ", "good.did", "error[SEM3002]", "^^^^^^^"}},
		{"short", []string{"ok ", "error SEM3002", "bad.did:1:23"}},
		{"sarif", []string{`"version": "2.1.0"`, `"ruleId": "SEM3002"`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			r := &reporter{out: &out, settings: settings{format: tt.format, color: "off", pathMode: "auto", notes: true}}
			failed, err := r.report(results)
			if err != nil {
				t.Fatal(err)
			}
			if !failed {
				t.Fatal("expected failure")
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestReporterJSON(t *testing.T) {
	var out bytes.Buffer
	r := &reporter{out: &out, settings: settings{format: "json", color: "off", pathMode: "basename"}}
	if _, err := r.report(checkedResults(t)); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	if doc.Count != 1 || doc.Diagnostics[0].Code != "SEM3002" {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestReporterQuietSuccess(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.did", "type A = nat;\n")
	results, err := driver.CheckFiles(context.Background(), []string{good}, driver.CheckOptions{WorkDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r := &reporter{out: &out, quiet: true, settings: settings{format: "pretty", color: "off", pathMode: "auto"}}
	failed, err := r.report(results)
	if err != nil || failed {
		t.Fatalf("report = %v, %v", failed, err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet output = %q", out.String())
	}
}

func TestResultBagWrapsPlainErrors(t *testing.T) {
	bag, ok := resultBag(driver.FileResult{Err: os.ErrNotExist})
	if !ok || bag.Len() != 1 || bag.Items()[0].Code.ID() != "IO4001" {
		t.Fatalf("bag = %+v", bag)
	}
	if _, ok := resultBag(driver.FileResult{}); ok {
		t.Fatal("success should have no bag")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error for maybe")
	}
	if !shouldUseTUI(uiModeOn, 1) || shouldUseTUI(uiModeOff, 5) {
		t.Error("explicit ui modes ignored")
	}
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	if err := renderVersionJSON(&out, versionOptions{full: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "candidc" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestExportToReportsClose(t *testing.T) {
	diskFull := errors.New("no space left on device")
	writeOK := func(w io.Writer) error {
		_, err := io.WriteString(w, "{}")
		return err
	}
	badFormat := errors.New("unsupported format")

	tests := []struct {
		name     string
		write    func(io.Writer) error
		closeErr error
		want     error
	}{
		{name: "ok", write: writeOK},
		{name: "close fails", write: writeOK, closeErr: diskFull, want: diskFull},
		{name: "write fails first", write: func(io.Writer) error { return badFormat }, closeErr: diskFull, want: badFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc := &closeRecorder{closeErr: tt.closeErr}
			err := exportTo(wc, tt.write)
			if !wc.closed {
				t.Fatal("export file left open")
			}
			if tt.want == nil && err != nil {
				t.Fatalf("err = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "env.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := exportTo(f, writeOK); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(path); string(got) != "{}" {
		t.Fatalf("file = %q", got)
	}
}
