package lexer

import (
	"hlsltools/internal/diag"
	"hlsltools/internal/token"
)

// Longest match first: three-byte operators, then two, then one.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	}
	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Bump()
	if k, ok := oneByteOps[ch]; ok {
		return emit(k)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var twoByteOps = []struct {
	a, b byte
	kind token.Kind
}{
	{':', ':', token.ColonColon},
	{'-', '>', token.Arrow},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'<', '<', token.Shl},
	{'>', '>', token.Shr},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
	{'&', '=', token.AmpAssign},
	{'|', '=', token.PipeAssign},
	{'^', '=', token.CaretAssign},
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'~': token.Tilde,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'#': token.Hash,
}
