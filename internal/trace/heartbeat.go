package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits a liveness event every interval naming the .did file
// opened last. A trace that keeps beating on the same file points at a
// stuck import walk.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	stop   chan struct{}
	once   sync.Once
	done   sync.WaitGroup
}

// StartHeartbeat returns nil when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: tracer, every: interval, stop: make(chan struct{})}
	h.done.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.done.Done()

	ticker := time.NewTicker(h.every)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-ticker.C:
			ev := &Event{
				Time:   time.Now(),
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d", beat),
			}
			if status := loadStatus(); status != nil {
				ev.Extra = status
			}
			h.tracer.Emit(ev)
		case <-h.stop:
			return
		}
	}
}

// loadStatus describes the files being loaded, or nil when none is open.
func loadStatus() map[string]string {
	open := filesOpen.Load()
	last := lastFile.Load()
	if open <= 0 || last == nil {
		return nil
	}
	return map[string]string{
		string(AttrFile): *last,
		"open":           fmt.Sprint(open),
	}
}

// Stop ends the loop and waits for it. Safe on nil and on repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
