package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"candidc/internal/diag"
	"candidc/internal/observ"
	"candidc/internal/trace"
	"candidc/internal/types"
)

// Stage is where one entry file is in its check.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLoading
	StageChecking
	StageDone
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageLoading:
		return "loading"
	case StageChecking:
		return "checking"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	}
	return "unknown"
}

// ProgressEvent reports a stage change of the entry at Index.
type ProgressEvent struct {
	Index int
	Path  string
	Stage Stage
	Err   error
}

// ProgressSink receives events from CheckFiles workers. It must be safe for
// concurrent use.
type ProgressSink interface {
	OnProgress(ProgressEvent)
}

type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) OnProgress(ev ProgressEvent) { f(ev) }

// CheckOptions configures CheckFiles.
type CheckOptions struct {
	Jobs     int // <= 0 means GOMAXPROCS
	WorkDir  string
	Progress ProgressSink
	Timings  bool
}

// FileResult is the outcome for one entry file. Err is a *diag.Diagnostic for
// every analysis failure.
type FileResult struct {
	Path     string
	Analyzer *Analyzer
	Env      *types.Env
	Err      error
	Timing   *observ.Report
}

// Diagnostic returns Err as a diagnostic when it is one.
func (r FileResult) Diagnostic() (*diag.Diagnostic, bool) {
	if r.Err == nil {
		return nil, false
	}
	return diag.As(r.Err)
}

// CheckFiles checks every entry with its own Analyzer. Entries share
// nothing, so they run in parallel; results keep the input order. The
// returned error is only set when ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	sink := opts.Progress
	if sink == nil {
		sink = ProgressFunc(func(ProgressEvent) {})
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check", 0)
	defer root.Count(trace.AttrFiles, len(paths)).End("")

	for i, p := range paths {
		sink.OnProgress(ProgressEvent{Index: i, Path: p, Stage: StageQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkOne(i, p, opts, tracer, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkOne(i int, path string, opts CheckOptions, tracer trace.Tracer, sink ProgressSink) FileResult {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	a := NewAnalyzer(Options{WorkDir: opts.WorkDir, Tracer: tracer, Timer: timer})
	res := FileResult{Path: path, Analyzer: a}
	fail := func(err error) FileResult {
		res.Err = err
		sink.OnProgress(ProgressEvent{Index: i, Path: path, Stage: StageError, Err: err})
		if timer != nil {
			rep := timer.Report()
			res.Timing = &rep
		}
		return res
	}

	sink.OnProgress(ProgressEvent{Index: i, Path: path, Stage: StageLoading})
	if err := a.Load(path); err != nil {
		return fail(err)
	}
	sink.OnProgress(ProgressEvent{Index: i, Path: path, Stage: StageChecking})
	env, err := a.ConstructTypeEnv()
	if err != nil {
		return fail(err)
	}
	res.Env = env
	if timer != nil {
		rep := timer.Report()
		res.Timing = &rep
	}
	sink.OnProgress(ProgressEvent{Index: i, Path: path, Stage: StageDone})
	return res
}
