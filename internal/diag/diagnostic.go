package diag

import (
	"candidc/internal/source"
)

// Label anchors part of a diagnostic to a span. Exactly one label is
// usually primary; import chains add secondary ones.
type Label struct {
	Span    source.Span
	Message string
	Primary bool
}

// Diagnostic is the single error value produced by every phase.
// It implements error so phases can return it through plain error results.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Labels   []Label
	Notes    []string
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil diagnostic>"
	}
	return d.Message
}

// Primary returns the span of the first primary label.
func (d *Diagnostic) Primary() (source.Span, bool) {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Span, true
		}
	}
	return source.Span{}, false
}

// Secondary returns the secondary labels in the order they were attached.
func (d *Diagnostic) Secondary() []Label {
	var out []Label
	for _, l := range d.Labels {
		if !l.Primary {
			out = append(out, l)
		}
	}
	return out
}
