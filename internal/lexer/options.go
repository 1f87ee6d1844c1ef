package lexer

import (
	"hlsltools/internal/diag"
	"hlsltools/internal/source"
)

type Options struct {
	// Reporter may be nil; errors are then dropped and lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
