package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func TestStreamNDJSONNestsThroughContext(t *testing.T) {
	var buf bufCloser
	tr := NewStream(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, check := Start(ctx, ScopeDriver, "check")
	fctx, file := Start(ctx, ScopeFile, "a.hlsl")
	_, bind := Start(fctx, ScopePass, "bind")
	bind.Point(ScopeNode, "bind:function", "filtered at detail")
	bind.Set("diagnostics", 0).End()
	file.End()
	check.End()
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !buf.closed {
		t.Fatalf("stream did not close its writer")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 events, got %d:\n%s", len(lines), buf.String())
	}
	var events []ndjsonEvent
	for _, line := range lines {
		var ev ndjsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad ndjson %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if events[1].Name != "a.hlsl" || events[1].ParentID != check.ID() || events[1].Lane != file.ID() {
		t.Fatalf("file span not nested under check: %+v", events[1])
	}
	if events[2].Name != "bind" || events[2].ParentID != file.ID() || events[2].Lane != file.ID() {
		t.Fatalf("bind span not nested under file: %+v", events[2])
	}
	end := events[3]
	if end.Kind != "end" || len(end.Attrs) != 1 || end.Attrs[0] != (Attr{Key: "diagnostics", Value: "0"}) {
		t.Fatalf("unexpected end event %+v", end)
	}
}

func TestFilteredSpansAreTransparent(t *testing.T) {
	ring := NewRing(16, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	ctx, check := Start(ctx, ScopeDriver, "check")
	fctx, file := Start(ctx, ScopeFile, "a.hlsl")
	if file != nil {
		t.Fatalf("file scope should be filtered at phase level")
	}
	file.Set("ignored", 1).End()
	_, parse := Start(fctx, ScopePass, "parse")
	parse.End()
	check.End()

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %+v", snap)
	}
	if snap[1].Name != "parse" || snap[1].ParentID != check.ID() {
		t.Fatalf("parse should attach to check: %+v", snap[1])
	}
}

func TestLevelAdmitsScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelDebug, 0, false},
	}
	for _, c := range cases {
		if got := c.level.Admits(c.scope); got != c.want {
			t.Errorf("%s.Admits(%s) = %v", c.level, c.scope, got)
		}
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected ParseLevel error")
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRing(2, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c"} {
		_, s := Start(ctx, ScopeNode, name)
		_ = s
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 || !strings.Contains(buf.String(), "node   begin     c") {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestChromeDumpIsValidJSON(t *testing.T) {
	ring := NewRing(8, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	_, s := Start(ctx, ScopeFile, "a.hlsl")
	s.Fail(errors.New("boom"))
	s.End()

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatChrome); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	var doc struct {
		TraceEvents []chromeEvent `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("bad chrome json: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 || doc.TraceEvents[0].Phase != "B" || doc.TraceEvents[1].Args["detail"] != "boom" {
		t.Fatalf("unexpected events %+v", doc.TraceEvents)
	}
	if doc.TraceEvents[0].TID != s.ID() {
		t.Fatalf("file span should own its lane")
	}
}

func TestContextDefaults(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop without a tracer")
	}
	ctx, s := Start(context.Background(), ScopeDriver, "check")
	if s != nil || SpanFromContext(ctx) != nil {
		t.Fatalf("Nop tracer should not open spans")
	}
	if s.End() != 0 || s.ID() != 0 {
		t.Fatalf("nil span should be inert")
	}
}

func TestNewBuildsTracers(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("LevelOff should give Nop: %v", err)
	}
	if RingOf(tr) != nil {
		t.Fatalf("Nop has no ring")
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, s := Start(WithTracer(context.Background(), tr), ScopePass, "parse")
	s.End()
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("stream half of both mode wrote nothing")
	}
	if ring := RingOf(tr); ring == nil || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring half of both mode missing events")
	}

	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected ParseMode error")
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected ParseFormat error")
	}
	if formatForPath("out.ndjson") != FormatNDJSON || formatForPath("out.json") != FormatChrome || formatForPath("-") != FormatText {
		t.Fatalf("formatForPath picked the wrong format")
	}
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRing(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	n := len(ring.Snapshot())
	if n == 0 || ring.Snapshot()[0].Kind != KindHeartbeat {
		t.Fatalf("no heartbeat recorded")
	}
	time.Sleep(5 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatalf("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("Nop tracer should not get a heartbeat")
	}
}

var _ io.WriteCloser = (*bufCloser)(nil)
