package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics from several analyses, e.g. one per entry file.
type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 {
		capacity = 8
	}
	return &Bag{
		items: make([]*Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add appends d unless the limit is reached.
// Returns false if the diagnostic was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether any diagnostic has error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the underlying slice. Callers must not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by primary file, start, end, severity (desc) and code.
// Diagnostics without a primary label go first.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		pi, oki := b.items[i].Primary()
		pj, okj := b.items[j].Primary()
		if oki != okj {
			return !oki
		}
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Start != pj.Start {
			return pi.Start < pj.Start
		}
		if pi.End != pj.End {
			return pi.End < pj.End
		}
		if b.items[i].Severity != b.items[j].Severity {
			return b.items[i].Severity > b.items[j].Severity
		}
		return b.items[i].Code < b.items[j].Code
	})
}

// Dedup drops diagnostics repeating code, primary span and message.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	items := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		sp, _ := d.Primary()
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), sp.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}
