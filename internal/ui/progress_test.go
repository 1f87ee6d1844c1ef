package ui

import (
	"fmt"
	"strings"
	"testing"

	"hlsltools/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.hlsl", "b.hlsl"}, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.hlsl", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].label(); got != "parsing" {
		t.Fatalf("label = %q", got)
	}
	if f := m.fraction(); f <= 0 || f >= 0.5 {
		t.Fatalf("fraction = %v", f)
	}

	m.applyEvent(driver.Event{File: "a.hlsl", Stage: driver.StageBind, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.hlsl", Stage: driver.StageBind, Status: driver.StatusError, Errors: 2})
	m.applyEvent(driver.Event{File: "unknown.hlsl", Stage: driver.StageBind, Status: driver.StatusDone})

	finished, failed := m.counts()
	if finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}
	if m.fraction() != 1 {
		t.Fatalf("fraction = %v", m.fraction())
	}
	if got := m.items[1].label(); got != "2 errors" {
		t.Fatalf("label = %q", got)
	}

	view := m.View()
	if !strings.Contains(view, "checking 2/2, 1 with errors") || !strings.Contains(view, "ok") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestLoadDoneIsNotFinished(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.hlsl"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.hlsl", Stage: driver.StageLoad, Status: driver.StatusDone})
	if m.items[0].finished {
		t.Fatalf("a loaded file is not finished")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("shaders/very/long/path.hlsl", 10); got != "shaders..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestVisibleRowsKeepActiveFiles(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("s%02d.hlsl", i)
	}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	for _, f := range files[:maxRows] {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageBind, Status: driver.StatusDone})
	}
	last := files[len(files)-1]
	m.applyEvent(driver.Event{File: last, Stage: driver.StageBind, Status: driver.StatusError, Errors: 1})
	m.applyEvent(driver.Event{File: files[maxRows], Stage: driver.StageParse, Status: driver.StatusWorking})

	rows := m.visibleRows()
	if len(rows) != maxRows {
		t.Fatalf("rows = %d", len(rows))
	}
	if m.items[rows[0]].path != files[maxRows] || m.items[rows[1]].path != last {
		t.Fatalf("active and failing files should lead: %q, %q", m.items[rows[0]].path, m.items[rows[1]].path)
	}
	if !strings.Contains(m.View(), "5 more") {
		t.Fatalf("hidden rows not summarised:\n%s", m.View())
	}
}
