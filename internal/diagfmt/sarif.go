package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"slices"

	"candidc/internal/diag"
	"candidc/internal/source"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// SarifLog accumulates results from several analyses into one run.
type SarifLog struct {
	meta    SarifRunMeta
	rules   map[diag.Code]struct{}
	results []sarifResult
	failed  bool
}

func NewSarifLog(meta SarifRunMeta) *SarifLog {
	return &SarifLog{meta: meta, rules: make(map[diag.Code]struct{})}
}

// Add converts every diagnostic of bag, resolving spans against fs.
func (l *SarifLog) Add(bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		l.rules[d.Code] = struct{}{}
		if d.Severity == diag.SevError {
			l.failed = true
		}
		r := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: messageWithNotes(d)},
		}
		for _, lb := range d.Labels {
			loc := sarifLocationFor(lb.Span, fs)
			if lb.Primary {
				r.Locations = append(r.Locations, loc)
				continue
			}
			loc.Message = &sarifMessage{Text: lb.Message}
			r.RelatedLocations = append(r.RelatedLocations, loc)
		}
		l.results = append(l.results, r)
	}
}

func (l *SarifLog) Write(w io.Writer) error {
	codes := make([]diag.Code, 0, len(l.rules))
	for c := range l.rules {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	rules := make([]sarifRule, 0, len(codes))
	for _, c := range codes {
		rules = append(rules, sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}})
	}

	results := l.results
	if results == nil {
		results = []sarifResult{}
	}
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    l.meta.ToolName,
			Version: l.meta.ToolVersion,
			Rules:   rules,
		}},
		Invocations: []sarifInvocation{{
			Arguments:           l.meta.InvocationArgs,
			ExecutionSuccessful: !l.failed,
		}},
		Results: results,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}})
}

// Sarif writes bag as a single-run SARIF 2.1.0 log.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	l := NewSarifLog(meta)
	l.Add(bag, fs)
	return l.Write(w)
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func messageWithNotes(d *diag.Diagnostic) string {
	msg := d.Message
	for _, n := range d.Notes {
		msg += "\n" + n
	}
	return msg
}

func sarifLocationFor(sp source.Span, fs *source.FileSet) sarifLocation {
	start, end := fs.Resolve(sp)
	return sarifLocation{PhysicalLocation: sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir()))},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
		},
	}}
}
