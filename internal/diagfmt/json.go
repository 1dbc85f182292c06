package diagfmt

import (
	"encoding/json"
	"io"

	"candidc/internal/diag"
	"candidc/internal/source"
)

// LocationJSON is a span with an optional line/column resolution.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type LabelJSON struct {
	Message  string       `json:"message,omitempty"`
	Primary  bool         `json:"primary"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Labels   []LabelJSON   `json:"labels,omitempty"`
	Notes    []string      `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts bag without serializing it, so callers can
// merge the outputs of several analyses.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: diag.SeverityLabel(d.Severity),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if sp, ok := d.Primary(); ok {
			loc := makeLocation(sp, fs, opts.PathMode, opts.IncludePositions)
			dj.Location = &loc
		}
		for _, l := range d.Labels {
			dj.Labels = append(dj.Labels, LabelJSON{
				Message:  l.Message,
				Primary:  l.Primary,
				Location: makeLocation(l.Span, fs, opts.PathMode, opts.IncludePositions),
			})
		}
		if opts.IncludeNotes {
			dj.Notes = append(dj.Notes, d.Notes...)
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// Merge appends other's diagnostics to o.
func (o *DiagnosticsOutput) Merge(other DiagnosticsOutput) {
	o.Diagnostics = append(o.Diagnostics, other.Diagnostics...)
	o.Count = len(o.Diagnostics)
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return WriteJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

func WriteJSON(w io.Writer, out DiagnosticsOutput) error {
	if out.Diagnostics == nil {
		out.Diagnostics = []DiagnosticJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
