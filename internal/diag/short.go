package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"hlsltools/internal/source"
)

// shortLine is one diagnostic resolved to a display position, with its
// notes already resolved.
type shortLine struct {
	path      string
	line, col uint32
	sev       Severity
	code      string
	msg       string
	notes     []string
}

// FormatShortDiagnostics renders diags in the layout fxc and dxc use:
//
//	shaders/a.hlsl(2,10): error X3004: undeclared identifier 'x'
//
// Paths are relative to the file set's base directory. Lines are ordered by
// position, so the output is stable across runs; notes follow their
// diagnostic as "path(l,c): note: msg". Diagnostics without a file are
// skipped.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		path, pos, ok := resolveShort(fs, d.Primary)
		if !ok {
			continue
		}
		sl := shortLine{path: path, line: pos.Line, col: pos.Col, sev: d.Severity, code: d.Code.ID(), msg: oneLine(d.Message)}
		if includeNotes {
			for _, n := range d.Notes {
				if npath, npos, ok := resolveShort(fs, n.Span); ok {
					sl.notes = append(sl.notes, fmt.Sprintf("%s(%d,%d): note: %s", npath, npos.Line, npos.Col, oneLine(n.Msg)))
				}
			}
		}
		lines = append(lines, sl)
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(b.sev, a.sev),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s(%d,%d): %s %s: %s", l.path, l.line, l.col, SeverityLabel(l.sev), l.code, l.msg)
		for _, n := range l.notes {
			sb.WriteByte('\n')
			sb.WriteString(n)
		}
	}
	return sb.String()
}

func resolveShort(fs *source.FileSet, sp source.Span) (string, source.LineCol, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", source.LineCol{}, false
	}
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	return strings.TrimPrefix(path, "./"), start, true
}

// SeverityLabel is the lower-case severity word used in textual output.
func SeverityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
