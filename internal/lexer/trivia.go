package lexer

import (
	"hlsltools/internal/diag"
)

// skipTrivia consumes whitespace, comments and preprocessor lines. A '#'
// starts a directive only when it is the first non-blank byte of a line.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			lx.cursor.Bump()
			lx.lineStart = true
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			lx.cursor.Bump()
		case b == '#' && lx.lineStart:
			lx.skipDirective()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
		default:
			lx.lineStart = false
			return
		}
	}
}

func (lx *Lexer) skipDirective() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' && lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	lx.directives = append(lx.directives, lx.cursor.SpanFrom(start))
}

// Block comments do not nest.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		if lx.cursor.Bump() == '\n' {
			lx.lineStart = true
		}
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
