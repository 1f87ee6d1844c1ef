package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format selects how a stream renders events.
type Format uint8

const (
	// FormatAuto picks from the output file extension.
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
	// FormatChrome writes the chrome://tracing and Perfetto JSON layout.
	FormatChrome
)

// ParseFormat accepts auto, text, ndjson or chrome. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	case "chrome":
		return FormatChrome, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson|chrome)", s)
}

func formatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".ndjson"):
		return FormatNDJSON
	case filepath.Ext(path) == ".json":
		return FormatChrome
	}
	return FormatText
}

type encoder interface {
	begin(w io.Writer) error
	encode(w io.Writer, ev *Event) error
	finish(w io.Writer) error
}

func newEncoder(f Format) encoder {
	switch f {
	case FormatNDJSON:
		return ndjsonEncoder{}
	case FormatChrome:
		return &chromeEncoder{}
	}
	return textEncoder{}
}

type textEncoder struct{}

func (textEncoder) begin(io.Writer) error  { return nil }
func (textEncoder) finish(io.Writer) error { return nil }

// encode writes "[seq] scope kind name (detail) key=value".
func (textEncoder) encode(w io.Writer, ev *Event) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%6d] %-6s %-9s %s", ev.Seq, ev.Scope, ev.Kind, ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	for _, a := range ev.Attrs {
		fmt.Fprintf(&sb, " %s=%s", a.Key, a.Value)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

type ndjsonEvent struct {
	Time     string `json:"time"`
	Seq      uint64 `json:"seq"`
	Kind     string `json:"kind"`
	Scope    string `json:"scope"`
	SpanID   uint64 `json:"span_id,omitempty"`
	ParentID uint64 `json:"parent_id,omitempty"`
	Lane     uint64 `json:"lane,omitempty"`
	Name     string `json:"name"`
	Detail   string `json:"detail,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
}

type ndjsonEncoder struct{}

func (ndjsonEncoder) begin(io.Writer) error  { return nil }
func (ndjsonEncoder) finish(io.Writer) error { return nil }

func (ndjsonEncoder) encode(w io.Writer, ev *Event) error {
	return json.NewEncoder(w).Encode(ndjsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Lane:     ev.Lane,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Attrs:    ev.Attrs,
	})
}

type chromeEvent struct {
	Name  string            `json:"name"`
	Cat   string            `json:"cat"`
	Phase string            `json:"ph"`
	TS    int64             `json:"ts"`
	PID   int               `json:"pid"`
	TID   uint64            `json:"tid"`
	Args  map[string]string `json:"args,omitempty"`
}

type chromeEncoder struct {
	wrote bool
}

func (*chromeEncoder) begin(w io.Writer) error {
	_, err := io.WriteString(w, "{\"traceEvents\":[\n")
	return err
}

func (c *chromeEncoder) encode(w io.Writer, ev *Event) error {
	ce := chromeEvent{Name: ev.Name, Cat: ev.Scope.String(), Phase: "i", TS: ev.Time.UnixMicro(), PID: 1, TID: ev.Lane}
	switch ev.Kind {
	case KindBegin:
		ce.Phase = "B"
	case KindEnd:
		ce.Phase = "E"
	}
	if ev.Detail != "" || len(ev.Attrs) > 0 {
		ce.Args = make(map[string]string, len(ev.Attrs)+1)
		for _, a := range ev.Attrs {
			ce.Args[a.Key] = a.Value
		}
		if ev.Detail != "" {
			ce.Args["detail"] = ev.Detail
		}
	}
	data, err := json.Marshal(ce)
	if err != nil {
		return err
	}
	if c.wrote {
		data = append([]byte(",\n"), data...)
	}
	c.wrote = true
	_, err = w.Write(data)
	return err
}

func (*chromeEncoder) finish(w io.Writer) error {
	_, err := io.WriteString(w, "\n]}\n")
	return err
}
