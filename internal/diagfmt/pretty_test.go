package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("float f() { return missing; }\n")
	fileID := fs.AddVirtual("/home/user/project/shaders/test.hlsl", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaUndeclaredIdentifier,
		source.Span{File: fileID, Start: 19, End: 26}, "undeclared identifier 'missing'"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/shaders/test.hlsl:1:20"},
		{"relative", PathModeRelative, "shaders/test.hlsl:1:20"},
		{"basename", PathModeBasename, "test.hlsl:1:20"},
		{"auto", PathModeAuto, "\nshaders/test.hlsl:1:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := "\n" + buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR X3004: undeclared identifier 'missing'") {
				t.Errorf("missing header, got:\n%s", output)
			}
		})
	}
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("void f()\n{\n\tfloat2 v = float3(1, 2, 3);\n}\n")
	fileID := fs.AddVirtual("t.hlsl", content)
	start := uint32(bytes.Index(content, []byte("float3")))

	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.SemaImplicitTruncation,
		source.Span{File: fileID, Start: start, End: start + 6}, "implicit truncation of vector type"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"t.hlsl:3:13: WARNING X3206: implicit truncation of vector type",
		"  2 | {",
		"  3 |     float2 v = float3(1, 2, 3);",
		"    | " + strings.Repeat(" ", 15) + "^~~~~~",
		"",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), strings.Join(want, "\n"))
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.hlsl", []byte("int a;\nfloat a;\n"))

	d := diag.New(diag.SevError, diag.SemaRedefinition, source.Span{File: fileID, Start: 13, End: 14}, "redefinition of 'a'").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "previous declaration is here")
	bag := diag.NewBag(2)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "note: n.hlsl:1:5: previous declaration is here") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.hlsl", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "unexpected 'x'"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}

func TestSummary(t *testing.T) {
	items := []*diag.Diagnostic{
		diag.New(diag.SevError, diag.SemaNotAType, source.Span{}, "a"),
		diag.New(diag.SevWarning, diag.SemaImplicitTruncation, source.Span{}, "b"),
		diag.New(diag.SevWarning, diag.SemaImplicitTruncation, source.Span{}, "c"),
		diag.New(diag.SevInfo, diag.ObsInfo, source.Span{}, "d"),
	}
	if got := Summary(items); got != "1 error, 2 warnings" {
		t.Fatalf("Summary = %q", got)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Errorf("expected error")
	}
}
