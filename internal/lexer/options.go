package lexer

import (
	"candidc/internal/source"
)

// Reporter receives lexical errors. The lexer keeps going after reporting;
// callers decide whether the first error is fatal.
type Reporter interface {
	Report(span source.Span, msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(span source.Span, msg string)

func (f ReporterFunc) Report(span source.Span, msg string) { f(span, msg) }

type Options struct {
	Reporter Reporter // may be nil, errors are then dropped
}

func (lx *Lexer) report(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(sp, msg)
	}
}
