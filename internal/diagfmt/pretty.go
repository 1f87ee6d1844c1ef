package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes bag's diagnostics (sorted beforehand by the caller) as
//
//	path:line:col: SEVERITY CODE: message
//	  12 | source line
//	     |     ^~~~
//
// followed by notes when opts.ShowNotes is set. Diagnostics without a
// location print the header only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file := fs.Get(d.Primary.File)
	sev := p.severity(d.Severity).Sprint(d.Severity.String())
	code := p.code.Sprint(d.Code.ID())
	if file == nil || d.Code == diag.IOLoadFileError {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", displayPath(fs, file, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
	excerpt(w, fs, file, d.Primary, opts, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), displayPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// excerpt prints the lines of sp's first line plus opts.Context lines above
// it, and underlines the span on its first line.
func excerpt(w io.Writer, fs *source.FileSet, file *source.File, sp source.Span, opts PrettyOpts, p palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	for line := first; line <= start.Line; line++ {
		text := expandTabs(file.GetLine(line), tab)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, line), text)
	}

	raw := file.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(raw))
	stop := len(raw)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(raw))
	}
	pad := runewidth.StringWidth(expandTabs(raw[:col], tab))
	n := max(runewidth.StringWidth(expandTabs(raw[col:stop], tab)), 1)
	marker := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width+2, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Short writes diagnostics in the fxc-style one-line format.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)+"\n")
	return err
}

// Summary renders "N errors, M warnings" for the given diagnostics.
func Summary(items []*diag.Diagnostic) string {
	var errs, warns int
	for _, d := range items {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		}
	}
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
