package diag

import (
	"testing"

	"hlsltools/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	id := fs.Add("/work/shaders/a.hlsl", []byte("float4 main() {\n  return x;\n}\n"), 0)

	diags := []*Diagnostic{
		NewError(SemaUndeclaredIdentifier, source.Span{File: id, Start: 25, End: 26}, "undeclared identifier 'x'").
			WithNote(source.Span{File: id, Start: 7, End: 11}, "in function\r\nmain"),
		New(SevWarning, SemaImplicitTruncation, source.Span{File: id, Start: 0, End: 6}, "implicit truncation"),
		NewError(SemaUndeclaredIdentifier, source.Span{File: 99}, "lost"),
	}

	got := FormatShortDiagnostics(diags, fs, true)
	want := "shaders/a.hlsl(1,1): warning X3206: implicit truncation\n" +
		"shaders/a.hlsl(2,10): error X3004: undeclared identifier 'x'\n" +
		"shaders/a.hlsl(1,8): note: in function main"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}

	withoutNotes := FormatShortDiagnostics(diags, fs, false)
	if withoutNotes != want[:len(want)-len("\nshaders/a.hlsl(1,8): note: in function main")] {
		t.Fatalf("notes not dropped:\n%s", withoutNotes)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if FormatShortDiagnostics(nil, source.NewFileSet(), false) != "" {
		t.Fatal("expected empty output")
	}
	if FormatShortDiagnostics([]*Diagnostic{NewError(SemaUndeclaredIdentifier, source.Span{}, "x")}, nil, false) != "" {
		t.Fatal("expected empty output without a file set")
	}
}
