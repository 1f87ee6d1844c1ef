package diag

import (
	"slices"
)

// Bag collects diagnostics up to a limit. A zero max means unlimited.
type Bag struct {
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends d, honouring the limit.
// Returns false when the diagnostic was dropped.
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

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether at least one diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics in emission order.
// Callers must not modify the returned slice.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool { return !keep(d) })
}

// Sort orders diagnostics by file, start, end, severity (desc), code (asc).
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(di, dj *Diagnostic) int {
		if di.Primary.File != dj.Primary.File {
			return cmpUint(di.Primary.File, dj.Primary.File)
		}
		if di.Primary.Start != dj.Primary.Start {
			return cmpUint(di.Primary.Start, dj.Primary.Start)
		}
		if di.Primary.End != dj.Primary.End {
			return cmpUint(di.Primary.End, dj.Primary.End)
		}
		if di.Severity != dj.Severity {
			return cmpUint(dj.Severity, di.Severity)
		}
		return cmpUint(di.Code, dj.Code)
	})
}

// Dedup drops diagnostics that repeat an earlier Code+Primary+Message.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool {
		key := keyOf(d)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		return false
	})
}

func cmpUint[T ~uint8 | ~uint16 | ~uint32](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
