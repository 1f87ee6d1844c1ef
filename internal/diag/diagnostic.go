package diag

import (
	"hlsltools/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with an extra note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Span: sp, Msg: msg})
	return &d
}

// Kind returns the stable identifier tooling keys squiggles on.
func (d *Diagnostic) Kind() string {
	return d.Code.ID()
}
