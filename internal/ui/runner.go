package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"candidc/internal/driver"
)

// ChannelSink forwards progress events to a channel.
type ChannelSink struct {
	Ch chan<- driver.ProgressEvent
}

func (s ChannelSink) OnProgress(ev driver.ProgressEvent) { s.Ch <- ev }

// checkFunc runs the checks and reports progress to sink.
type checkFunc func(ctx context.Context, sink driver.ProgressSink) ([]driver.FileResult, error)

// viewFunc renders events until they close or the user quits. quit is true
// when the user stopped the view before the checks finished.
type viewFunc func(ctx context.Context, events <-chan driver.ProgressEvent) (quit bool, err error)

// RunCheck runs driver.CheckFiles while a progress view renders to out.
// Quitting the view with ctrl+c cancels the remaining checks.
func RunCheck(ctx context.Context, title string, files []string, opts driver.CheckOptions, out io.Writer) ([]driver.FileResult, error) {
	check := func(ctx context.Context, sink driver.ProgressSink) ([]driver.FileResult, error) {
		opts.Progress = sink
		return driver.CheckFiles(ctx, files, opts)
	}
	view := func(ctx context.Context, events <-chan driver.ProgressEvent) (bool, error) {
		program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithContext(ctx))
		final, err := program.Run()
		pm, ok := final.(*progressModel)
		return ok && !pm.done, err
	}
	return runWithView(ctx, check, view)
}

func runWithView(ctx context.Context, check checkFunc, view viewFunc) ([]driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	type outcome struct {
		results []driver.FileResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		res, err := check(ctx, ChannelSink{Ch: events})
		close(events)
		outcomeCh <- outcome{results: res, err: err}
	}()

	quit, uiErr := view(ctx, events)
	if quit || uiErr != nil {
		cancel()
	}
	// nobody reads events once the view is gone; workers still in flight
	// must not block on a full channel
	for range events {
	}
	res := <-outcomeCh
	if uiErr != nil && res.err == nil {
		return res.results, uiErr
	}
	return res.results, res.err
}
