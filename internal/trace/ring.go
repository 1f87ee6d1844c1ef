package trace

import (
	"io"
	"sync"
)

// Ring keeps the newest events in memory.
type Ring struct {
	mu     sync.Mutex
	events []Event
	total  int
	level  Level
}

// NewRing keeps up to size events; size <= 0 uses 4096.
func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = defaultRingSize
	}
	return &Ring{events: make([]Event, size), level: level}
}

func (r *Ring) Emit(ev *Event) {
	r.mu.Lock()
	r.events[r.total%len(r.events)] = *ev
	r.total++
	r.mu.Unlock()
}

// Snapshot returns the kept events, oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := min(r.total, len(r.events))
	out := make([]Event, 0, n)
	for i := r.total - n; i < r.total; i++ {
		out = append(out, r.events[i%len(r.events)])
	}
	return out
}

// Dump writes the kept events to w. FormatAuto writes text.
func (r *Ring) Dump(w io.Writer, format Format) error {
	enc := newEncoder(format)
	if err := enc.begin(w); err != nil {
		return err
	}
	for _, ev := range r.Snapshot() {
		if err := enc.encode(w, &ev); err != nil {
			return err
		}
	}
	return enc.finish(w)
}

func (r *Ring) Flush() error { return nil }
func (r *Ring) Close() error { return nil }
func (r *Ring) Level() Level { return r.level }
