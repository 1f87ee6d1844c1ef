package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"hlsltools/internal/diag"
	"hlsltools/internal/observ"
	"hlsltools/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("void main()\n{\n\tfloat x = y;\n}\n")
	fileID := fs.AddVirtual("test.hlsl", content)
	start := uint32(bytes.IndexByte(content, 'y'))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.SemaUndeclaredIdentifier,
		source.Span{File: fileID, Start: start, End: start + 1}, "undeclared identifier 'y'").
		WithNote(source.Span{File: fileID, Start: 0, End: 4}, "in this function")
	bag.Add(d)
	bag.Add(diag.New(diag.SevWarning, diag.SemaImplicitTruncation, source.Span{File: fileID, Start: 15, End: 20}, "implicit truncation of vector type"))
	return bag, fs
}

func TestJSONBasic(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "X3004" || d.Message != "undeclared identifier 'y'" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "test.hlsl" || d.Location.StartLine != 3 || d.Location.StartCol != 12 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 1 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
	if output.Timings != nil {
		t.Errorf("timings should be omitted")
	}
}

func TestJSONWithoutPositionsOrNotes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if output.Count != 1 || !output.Truncated {
		t.Fatalf("Max was ignored: %d", output.Count)
	}
	if output.Errors != 1 || output.Warnings != 1 {
		t.Fatalf("totals should cover hidden diagnostics: %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Location.StartLine != 0 || d.Notes != nil {
		t.Errorf("positions or notes leaked: %+v", d)
	}
	if d.Location.StartByte == 0 {
		t.Errorf("byte offsets should always be present")
	}
}

func TestMsgPackUsesJSONNames(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag.Items(), fs, JSONOpts{IncludePositions: true})
	timer := observ.NewTimer()
	timer.Measure("parse", func() string { return "" })
	report := timer.Report()
	out.Timings = &report

	var buf bytes.Buffer
	if err := EncodeMsgPack(&buf, out); err != nil {
		t.Fatalf("EncodeMsgPack: %v", err)
	}

	var decoded map[string]any
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"diagnostics", "count", "timings"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %v", key, decoded)
		}
	}
	diags, ok := decoded["diagnostics"].([]any)
	if !ok || len(diags) != 2 {
		t.Fatalf("unexpected diagnostics %#v", decoded["diagnostics"])
	}
	first, ok := diags[0].(map[string]any)
	if !ok || first["code"] != "X3004" {
		t.Fatalf("unexpected first diagnostic %#v", diags[0])
	}
}
