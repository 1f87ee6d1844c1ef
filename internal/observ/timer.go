// Package observ records how long the checker spends in each phase.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step, e.g. "parse" of one file.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases. It is safe for concurrent use so that per-file
// workers can share one timer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase started by Begin.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Measure times fn as one phase.
func (t *Timer) Measure(name string, fn func() string) {
	idx := t.Begin(name)
	note := fn()
	t.End(idx, note)
}

// PhaseReport is the serialisable form of a phase, or of all phases sharing
// a name once aggregated.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	Count      int     `json:"count" msgpack:"count"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the timing summary. TotalMS is wall time from the first Begin
// to the last End; phases measured in parallel overlap.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report aggregates phases by name in first-seen order.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}

	var (
		report     Report
		index      = make(map[string]int)
		first, end time.Time
	)
	for _, p := range t.phases {
		if first.IsZero() || p.Start.Before(first) {
			first = p.Start
		}
		if stop := p.Start.Add(p.Dur); stop.After(end) {
			end = stop
		}
		i, ok := index[p.Name]
		if !ok {
			i = len(report.Phases)
			index[p.Name] = i
			report.Phases = append(report.Phases, PhaseReport{Name: p.Name})
		}
		r := &report.Phases[i]
		r.Count++
		r.DurationMS += durationToMillis(p.Dur)
		if r.Count == 1 {
			r.Note = p.Note
		} else {
			r.Note = ""
		}
	}
	report.TotalMS = durationToMillis(end.Sub(first))
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %5dx %9.2f ms", p.Name, p.Count, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %6s %9.2f ms\n", "wall", "", report.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
