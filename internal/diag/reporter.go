package diag

import "hlsltools/internal/source"

// Reporter receives diagnostics as phases produce them. Implementations may
// keep d.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReportFunc adapts a function to Reporter.
type ReportFunc func(d *Diagnostic)

func (f ReportFunc) Report(d *Diagnostic) { f(d) }

// BagReporter adds to Bag; reports past the bag's limit are dropped.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// DedupReporter forwards each distinct diagnostic once. Two reports are the
// same when code, severity, primary span and message match; notes are not
// compared.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

func keyOf(d *Diagnostic) dedupKey {
	return dedupKey{code: d.Code, sev: d.Severity, primary: d.Primary, msg: d.Message}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d *Diagnostic) {
	key := keyOf(d)
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// ReportBuilder collects notes for one diagnostic before it is emitted. A
// nil builder is inert.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary},
	}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	}
	return b
}

// Emit reports the diagnostic. Later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		d := b.diag
		b.reporter.Report(&d)
	}
}

// Diagnostic returns what Emit would report.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
