package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"candidc/internal/diag"
	"candidc/internal/parser"
	"candidc/internal/source"
	"candidc/internal/trace"
)

// Load reads entry and, depth first, every file it imports. A file that
// was already loaded by an earlier branch or an earlier Load call is not
// read again. Loaded files stay registered when a later one fails.
func (a *Analyzer) Load(entry string) error {
	sp := trace.Begin(a.tracer, trace.ScopePass, "load", 0)
	idx := -1
	if a.timer != nil {
		idx = a.timer.Begin("load")
	}
	before := len(a.programs)

	err := a.loadEntry(entry, sp.ID())

	loaded := len(a.programs) - before
	detail := strconv.Itoa(loaded) + " files"
	if err != nil {
		detail = err.Error()
	}
	sp.With(trace.AttrFile, entry).Count(trace.AttrFiles, loaded).End(detail)
	if a.timer != nil {
		a.timer.End(idx, detail)
	}
	return err
}

func (a *Analyzer) loadEntry(entry string, parent uint64) error {
	path, err := resolvePath(a.workDir, entry)
	if err != nil {
		return ioError(entry, err)
	}
	return a.loadRecursive(path, make(map[string]struct{}), parent)
}

// loadRecursive loads path unless it is already loaded. stack holds the
// files whose imports are still being walked.
func (a *Analyzer) loadRecursive(path string, stack map[string]struct{}, parent uint64) error {
	display := a.displayPath(path)
	if _, open := stack[path]; open {
		return diag.NewError(diag.ProjImportCycle, fmt.Sprintf("recursive import of %q", display))
	}
	if _, done := a.loaded[path]; done {
		return nil
	}

	sp := trace.BeginFile(a.tracer, display, parent)
	defer sp.End("")

	id, err := a.fs.Load(path, display)
	if err != nil {
		return ioError(display, err)
	}
	sp.Count(trace.AttrBytes, len(a.fs.Get(id).Content))
	prog, perr := parser.Parse(a.fs.Get(id))
	if perr != nil {
		// not marked loaded, so a later Load reports the error again
		return syntaxError(perr)
	}
	a.loaded[path] = id
	a.programs = append(a.programs, prog)
	imports := prog.Imports()
	sp.Count(trace.AttrDecls, len(prog.Decs)).Count(trace.AttrImports, len(imports))

	stack[path] = struct{}{}
	base := filepath.Dir(path)
	for _, imp := range imports {
		target, err := resolvePath(base, imp.Path)
		if err != nil {
			err = ioError(imp.Path, err)
		} else {
			err = a.loadRecursive(target, stack, sp.ID())
		}
		if err != nil {
			return fromImport(err, imp.Span)
		}
		to := a.loaded[target]
		a.imports = append(a.imports, Import{From: id, To: to, Path: target, Span: imp.Span})
	}
	delete(stack, path)
	return nil
}

// resolvePath expands a leading ~ and joins relative paths onto base.
func resolvePath(base, p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p), nil
}

// displayPath is path relative to the work dir when it lies below it.
func (a *Analyzer) displayPath(path string) string {
	if a.workDir != "" {
		if rel, err := filepath.Rel(a.workDir, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return rel
		}
	}
	return path
}

func ioError(display string, err error) *diag.Diagnostic {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return diag.NewError(diag.IOLoadFileError, fmt.Sprintf("cannot read file '%s': %v", display, err))
}

func syntaxError(err *parser.Error) *diag.Diagnostic {
	code := diag.SynInvalid
	switch err.Kind {
	case parser.InvalidToken:
		code = diag.SynInvalidToken
	case parser.UnrecognizedEOF:
		code = diag.SynUnexpectedEOF
	case parser.UnrecognizedToken:
		code = diag.SynUnexpectedToken
	case parser.ExtraToken:
		code = diag.SynExtraToken
	}
	return diag.NewError(code, "parser error").
		WithPrimary(err.Span, err.Label()).
		WithNotes(diag.ExpectsNote(err.Expected)...)
}

// fromImport points a nested failure back at the import statement that led
// to it. Errors that are not diagnostics are wrapped first.
func fromImport(err error, at source.Span) error {
	d, ok := diag.As(err)
	if !ok {
		d = diag.NewError(diag.UnknownCode, err.Error())
	}
	return d.WithSecondary(at, "error originated from import")
}
