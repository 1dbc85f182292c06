package driver

import (
	"fmt"
	"os"

	"candidc/internal/ast"
	"candidc/internal/observ"
	"candidc/internal/sema"
	"candidc/internal/source"
	"candidc/internal/trace"
	"candidc/internal/types"
)

// Import is one followed import edge of the closure.
type Import struct {
	From source.FileID
	To   source.FileID
	Path string // resolved absolute path of the target
	Span source.Span
}

// Options configures an Analyzer. The zero value is usable.
type Options struct {
	// WorkDir is the base for entry paths and display names; defaults to
	// the process working directory.
	WorkDir string
	Tracer  trace.Tracer
	Timer   *observ.Timer
}

// Analyzer owns everything for one check request: the file set, the parsed
// programs of the import closure and, once built, the type env.
type Analyzer struct {
	fs       *source.FileSet
	workDir  string
	tracer   trace.Tracer
	timer    *observ.Timer
	programs []*ast.Program
	loaded   map[string]source.FileID
	imports  []Import
	result   *sema.Result
}

func NewAnalyzer(opts Options) *Analyzer {
	wd := opts.WorkDir
	if wd == "" {
		if cwd, err := os.Getwd(); err == nil {
			wd = cwd
		}
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Analyzer{
		fs:      source.NewFileSetWithBase(wd),
		workDir: wd,
		tracer:  tr,
		timer:   opts.Timer,
		loaded:  make(map[string]source.FileID),
	}
}

func (a *Analyzer) FileSet() *source.FileSet { return a.fs }

// Programs are in discovery order: a file precedes the files it imports.
func (a *Analyzer) Programs() []*ast.Program { return a.programs }

func (a *Analyzer) Imports() []Import { return a.imports }

// Files returns the ids of successfully parsed files in discovery order.
func (a *Analyzer) Files() []source.FileID {
	out := make([]source.FileID, 0, len(a.programs))
	for _, p := range a.programs {
		out = append(out, p.File)
	}
	return out
}

// Paths returns the absolute path of every file read so far, including
// files that failed to parse.
func (a *Analyzer) Paths() []string {
	out := make([]string, 0, a.fs.Len())
	for i := range a.fs.Len() {
		out = append(out, a.fs.Get(source.FileID(i)).Path)
	}
	return out
}

// ConstructTypeEnv binds and checks every loaded program and returns the
// resulting env. It rebuilds the env from scratch on each call and panics
// when nothing has been loaded.
func (a *Analyzer) ConstructTypeEnv() (*types.Env, error) {
	if len(a.programs) == 0 {
		panic("driver: ConstructTypeEnv called before any file was loaded")
	}
	a.result = nil

	var (
		pos    sema.Positions
		c      *sema.Checker
		actors map[source.FileID]types.Type
	)
	steps := []struct {
		name string
		run  func() error
	}{
		{"bind", func() (err error) {
			pos, err = sema.Bind(a.programs)
			return err
		}},
		{"check", func() error {
			c = sema.NewChecker(pos)
			if err := c.CheckDecs(a.programs); err != nil {
				return err
			}
			return c.CheckMethods()
		}},
		{"actors", func() (err error) {
			actors, err = c.CheckActors(a.programs)
			return err
		}},
		{"cycles", func() error { return c.CheckCycles() }},
	}
	for _, step := range steps {
		if err := a.phase(step.name, step.run); err != nil {
			return nil, err
		}
	}

	a.result = &sema.Result{Env: c.Env(), Positions: pos, Actors: actors}
	return a.result.Env, nil
}

func (a *Analyzer) phase(name string, run func() error) error {
	sp := trace.Begin(a.tracer, trace.ScopePass, name, 0)
	idx := -1
	if a.timer != nil {
		idx = a.timer.Begin(name)
	}
	err := run()
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	sp.End(detail)
	if a.timer != nil {
		a.timer.End(idx, detail)
	}
	return err
}

// TypeEnv returns the env of the last successful ConstructTypeEnv.
func (a *Analyzer) TypeEnv() (*types.Env, bool) {
	if a.result == nil {
		return nil, false
	}
	return a.result.Env, true
}

// Positions returns where each name of the env was declared.
func (a *Analyzer) Positions() sema.Positions {
	if a.result == nil {
		return nil
	}
	return a.result.Positions
}

// ServiceFor returns the checked top-level service of a loaded file. path is
// resolved the same way as an entry path.
func (a *Analyzer) ServiceFor(path string) (types.Type, bool) {
	if a.result == nil {
		return nil, false
	}
	abs, err := resolvePath(a.workDir, path)
	if err != nil {
		return nil, false
	}
	id, ok := a.loaded[abs]
	if !ok {
		return nil, false
	}
	t, ok := a.result.Actors[id]
	return t, ok && t != nil
}

// FileID returns the id a resolved path was registered under.
func (a *Analyzer) FileID(path string) (source.FileID, bool) {
	abs, err := resolvePath(a.workDir, path)
	if err != nil {
		return 0, false
	}
	id, ok := a.loaded[abs]
	return id, ok
}

func (a *Analyzer) String() string {
	return fmt.Sprintf("Analyzer{files: %d, programs: %d}", a.fs.Len(), len(a.programs))
}
