package lexer

import (
	"hlsltools/internal/token"
)

// scanNumber handles 0x1F, 017, 12u, 1.5, .5f, 1e-3h, 2.l. Suffixes stay in
// Token.Text; the kind only separates integers from floats.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.intSuffix()
		return lx.emitNumber(start, kind)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'h', 'H':
		kind = token.FloatLit
		lx.cursor.Bump()
	case 'l', 'L':
		lx.cursor.Bump()
	default:
		if kind == token.IntLit {
			lx.intSuffix()
		}
	}
	return lx.emitNumber(start, kind)
}

func (lx *Lexer) intSuffix() {
	for {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
