package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64

	// .did files whose span is open, and the last one opened. Read by the
	// heartbeat.
	filesOpen atomic.Int64
	lastFile  atomic.Pointer[string]
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return globalSpans.Add(1)
}

// goroutineID reads the number out of the "goroutine N [running]:" header.
func goroutineID() uint64 {
	var buf [64]byte
	hdr := strings.TrimPrefix(string(buf[:runtime.Stack(buf[:], false)]), "goroutine ")
	num, _, ok := strings.Cut(hdr, " ")
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Attr names an attribute attached to a span end event.
type Attr string

const (
	AttrFile    Attr = "file"    // display path of the .did file
	AttrBytes   Attr = "bytes"   // size of the file as read
	AttrDecls   Attr = "decls"   // type and service declarations
	AttrImports Attr = "imports" // import statements
	AttrFiles   Attr = "files"   // files loaded by a pass
	AttrTypes   Attr = "types"   // entries in the type environment
)

// Span is an open begin event waiting for its end.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
	file     bool
}

// Begin emits a begin event and returns the span to close. Spans below the
// tracer's level are inert.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}

	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		gid:      goroutineID(),
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Seq:      NextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		GID:      s.gid,
		Name:     name,
	})
	return s
}

// BeginFile opens a module span for one .did file. While it is open the
// heartbeat reports path as the file being loaded.
func BeginFile(t Tracer, path string, parent uint64) *Span {
	s := Begin(t, ScopeModule, "file:"+path, parent)
	if s.id == 0 {
		return s
	}
	s.file = true
	filesOpen.Add(1)
	lastFile.Store(&path)
	return s.With(AttrFile, path)
}

// End emits the end event and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	if s.file {
		s.file = false
		filesOpen.Add(-1)
	}

	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// With attaches an attribute to the end event.
func (s *Span) With(key Attr, value string) *Span {
	return s.WithExtra(string(key), value)
}

// Count attaches a numeric attribute to the end event.
func (s *Span) Count(key Attr, n int) *Span {
	return s.WithExtra(string(key), strconv.Itoa(n))
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
