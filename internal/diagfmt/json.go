package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"hlsltools/internal/diag"
	"hlsltools/internal/observ"
	"hlsltools/internal/source"
)

// LocationJSON is a span resolved against its file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON and MsgPack. Errors and
// Warnings count every input diagnostic; Count counts the ones listed, which
// is fewer when Truncated is set.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   bool             `json:"truncated,omitempty"`
	Timings     *observ.Report   `json:"timings,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if f == nil {
		return loc
	}
	loc.File = displayPath(fs, f, pathMode)
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts items without encoding them.
func BuildDiagnosticsOutput(items []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	out.Truncated = n < len(items)
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
	}
	return out
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return EncodeJSON(w, BuildDiagnosticsOutput(bag.Items(), fs, opts))
}

// MsgPack writes bag as one MessagePack document with the JSON field names.
func MsgPack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return EncodeMsgPack(w, BuildDiagnosticsOutput(bag.Items(), fs, opts))
}

func EncodeJSON(w io.Writer, out DiagnosticsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func EncodeMsgPack(w io.Writer, out DiagnosticsOutput) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(out)
}
