package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"candidc/internal/driver"
)

// flood reports n events, stopping early once ctx is cancelled.
func flood(n int) checkFunc {
	return func(ctx context.Context, sink driver.ProgressSink) ([]driver.FileResult, error) {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sink.OnProgress(driver.ProgressEvent{Index: i, Stage: driver.StageDone})
		}
		return []driver.FileResult{{Path: "main.did"}}, nil
	}
}

func runBounded(t *testing.T, check checkFunc, view viewFunc) ([]driver.FileResult, error) {
	t.Helper()
	type result struct {
		res []driver.FileResult
		err error
	}
	ch := make(chan result, 1)
	go func() {
		res, err := runWithView(context.Background(), check, view)
		ch <- result{res, err}
	}()
	select {
	case r := <-ch:
		return r.res, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("runWithView did not return; the checks are blocked on progress events")
		return nil, nil
	}
}

func TestRunWithViewQuitCancelsAndDrains(t *testing.T) {
	quitAtOnce := func(context.Context, <-chan driver.ProgressEvent) (bool, error) {
		return true, nil
	}
	_, err := runBounded(t, flood(10_000), quitAtOnce)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunWithViewFinishedRun(t *testing.T) {
	seen := 0
	readAll := func(_ context.Context, events <-chan driver.ProgressEvent) (bool, error) {
		for range events {
			seen++
		}
		return false, nil
	}
	res, err := runBounded(t, flood(1000), readAll)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(res) != 1 || seen != 1000 {
		t.Fatalf("results = %d, events seen = %d", len(res), seen)
	}
}

func TestRunWithViewReportsViewError(t *testing.T) {
	boom := errors.New("no tty")
	broken := func(context.Context, <-chan driver.ProgressEvent) (bool, error) {
		return false, boom
	}
	_, err := runBounded(t, flood(500), broken)
	// the view error wins unless the checks failed on their own
	if !errors.Is(err, boom) && !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestCtrlCLeavesModelUnfinished(t *testing.T) {
	events := make(chan driver.ProgressEvent)
	model := NewProgressModel("checking", []string{"a.did"}, events).(*progressModel)
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should return tea.Quit")
	}
	if model.done {
		t.Fatal("a quit before the events close is not a finished run")
	}
}
