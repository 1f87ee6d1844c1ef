package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestReportAggregatesByName(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("parse", func() string { return "" })
			tm.Measure("bind", func() string { return "" })
		}()
	}
	wg.Wait()
	tm.End(tm.Begin("format"), "3 diagnostics")

	r := tm.Report()
	if len(r.Phases) != 3 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	counts := map[string]int{}
	for _, p := range r.Phases {
		counts[p.Name] = p.Count
	}
	if counts["parse"] != 4 || counts["bind"] != 4 || counts["format"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	if last := r.Phases[2]; last.Name != "format" || last.Note != "3 diagnostics" {
		t.Fatalf("last phase = %+v", last)
	}
	if !strings.Contains(tm.Summary(), "wall") {
		t.Fatalf("summary misses wall time:\n%s", tm.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}
