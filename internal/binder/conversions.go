package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/signatures"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
)

func (b *Binder) convertible(from, to symbols.SymbolID) bool {
	return signatures.Implicit(b.table(), from, to).Exists
}

func (b *Binder) checkConversion(e bound.Expression, to symbols.SymbolID, sp source.Span) {
	b.checkConversionType(e.Type(), to, sp)
}

// checkConversionType reports a missing implicit conversion, or warns when
// the conversion drops components.
func (b *Binder) checkConversionType(from, to symbols.SymbolID, sp source.Span) {
	c := signatures.Implicit(b.table(), from, to)
	switch {
	case !c.Exists:
		b.errorf(diag.SemaCannotConvert, sp, "cannot implicitly convert from '%s' to '%s'",
			b.table().TypeName(from), b.table().TypeName(to)).Emit()
	case c.Type.Has(signatures.DimensionTruncation):
		b.truncation(sp)
	}
}

func (b *Binder) truncation(sp source.Span) {
	b.warnf(diag.SemaImplicitTruncation, sp, "implicit truncation of vector type").Emit()
}
