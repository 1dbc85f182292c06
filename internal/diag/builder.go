package diag

import (
	"errors"

	"candidc/internal/source"
)

func New(sev Severity, code Code, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
	}
}

func NewError(code Code, msg string) *Diagnostic {
	return New(SevError, code, msg)
}

func (d *Diagnostic) WithLabel(l Label) *Diagnostic {
	d.Labels = append(d.Labels, l)
	return d
}

// WithPrimary attaches the primary location of the problem.
func (d *Diagnostic) WithPrimary(sp source.Span, msg string) *Diagnostic {
	return d.WithLabel(Label{Span: sp, Message: msg, Primary: true})
}

// WithSecondary attaches context such as an import statement or the binding
// the error originated from.
func (d *Diagnostic) WithSecondary(sp source.Span, msg string) *Diagnostic {
	return d.WithLabel(Label{Span: sp, Message: msg})
}

func (d *Diagnostic) WithNote(msg string) *Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}

func (d *Diagnostic) WithNotes(msgs ...string) *Diagnostic {
	d.Notes = append(d.Notes, msgs...)
	return d
}

// As extracts a *Diagnostic from err.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
