package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"candidc/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.ProgressEvent, 4)
	model := NewProgressModel("checking", []string{"a.did", "b.did"}, events).(*progressModel)

	model.Update(eventMsg{Index: 0, Path: "a.did", Stage: driver.StageDone})
	model.Update(eventMsg{Index: 1, Path: "b.did", Stage: driver.StageChecking})
	model.Update(eventMsg{Index: 7, Stage: driver.StageError})

	if model.items[0].stage != driver.StageDone || model.items[1].stage != driver.StageChecking {
		t.Fatalf("items = %+v", model.items)
	}
	if got := model.percent(); math.Abs(got-0.85) > 1e-9 {
		t.Fatalf("percent = %v", got)
	}
	view := model.View()
	for _, want := range []string{"checking (1/2)", "done", "a.did", "b.did"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := model.Update(doneMsg{})
	if cmd == nil || !model.done {
		t.Fatal("doneMsg should quit")
	}
	if !strings.Contains(model.View(), "done: checking") {
		t.Fatalf("final view:\n%s", model.View())
	}
	if _, cmd := model.Update(spinner.TickMsg{}); cmd != nil {
		t.Fatal("spinner keeps ticking after done")
	}
}

func TestListenForEventClosesOnChannelClose(t *testing.T) {
	events := make(chan driver.ProgressEvent)
	close(events)
	model := NewProgressModel("x", nil, events).(*progressModel)
	if _, ok := model.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel should produce doneMsg")
	}
	if model.View() != "" {
		t.Fatal("empty model should render nothing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a-very-long-file-name.did", 10); got != "a-very-..." {
		t.Fatalf("truncate = %q", got)
	}
}
