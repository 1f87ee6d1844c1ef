package token

import (
	"hlsltools/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is one of the recognised keywords.
func (t Token) IsKeyword() bool { return t.Kind >= KwTrue && t.Kind <= KwProtected }

// IsWord reports whether the token is an identifier or a keyword.
func (t Token) IsWord() bool { return t.IsIdent() || t.IsKeyword() }

// IsAssignOp reports whether the token is "=" or a compound assignment.
func (t Token) IsAssignOp() bool { return t.Kind >= Assign && t.Kind <= ShrAssign }
