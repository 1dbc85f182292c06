// Package watch re-runs an analysis whenever one of the files it read
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc performs one full analysis and returns the paths it read. Every
// call must start from scratch; nothing is reused between runs.
type RunFunc func(ctx context.Context) []string

type Options struct {
	Debounce time.Duration // default 150ms
	// Ext limits which changes outside the read set trigger a run, e.g. ".did".
	Ext     string
	OnError func(error)
}

// Watcher follows the directories of the last run's read set.
type Watcher struct {
	run     RunFunc
	opts    Options
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
	entries []string
}

func New(entries []string, run RunFunc, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 150 * time.Millisecond
	}
	if opts.OnError == nil {
		opts.OnError = func(error) {}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	abs := make([]string, 0, len(entries))
	for _, e := range entries {
		p, err := filepath.Abs(e)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		abs = append(abs, p)
	}
	return &Watcher{
		run:     run,
		opts:    opts,
		fsw:     fsw,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		entries: abs,
	}, nil
}

// Run does an initial analysis and then one more after every batch of
// relevant changes, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.retarget(w.run(ctx))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerCh = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.OnError(err)
		case <-timerCh:
			timerCh = nil
			w.retarget(w.run(ctx))
		}
	}
}

// Dirs returns the directories currently watched, sorted.
func (w *Watcher) Dirs() []string {
	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if _, ok := w.files[name]; ok {
		return true
	}
	if slices.Contains(w.entries, name) {
		return true
	}
	// a missing import may appear later
	return w.opts.Ext != "" && filepath.Ext(name) == w.opts.Ext
}

// retarget replaces the watch set with the directories of read plus the
// entries' directories.
func (w *Watcher) retarget(read []string) {
	files := make(map[string]struct{}, len(read))
	want := make(map[string]struct{})
	for _, p := range read {
		p = filepath.Clean(p)
		files[p] = struct{}{}
		want[filepath.Dir(p)] = struct{}{}
	}
	for _, e := range w.entries {
		want[filepath.Dir(e)] = struct{}{}
	}
	for d := range w.dirs {
		if _, keep := want[d]; !keep {
			_ = w.fsw.Remove(d)
			delete(w.dirs, d)
		}
	}
	for d := range want {
		if _, have := w.dirs[d]; have {
			continue
		}
		if err := w.fsw.Add(d); err != nil {
			w.opts.OnError(fmt.Errorf("watch %s: %w", d, err))
			continue
		}
		w.dirs[d] = struct{}{}
	}
	w.files = files
}
