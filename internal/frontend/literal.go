package frontend

import (
	"strings"

	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
	"hlsltools/internal/token"
)

// literalOf builds a literal node from a lexer token kind and its text.
func literalOf(k token.Kind, text string, sp source.Span) *syntax.Literal {
	lit := &syntax.Literal{Base: syntax.At(sp), Text: text}
	switch k {
	case token.KwTrue, token.KwFalse:
		lit.LitKind = syntax.LiteralBool
	case token.StringLit:
		lit.LitKind = syntax.LiteralString
	default:
		lit.LitKind = numberKind(text)
	}
	return lit
}

// numberKind classifies a numeric literal by its form and suffix: u is
// unsigned, h is half, l on a float is double.
func numberKind(text string) syntax.LiteralKind {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		if strings.HasSuffix(lower, "u") || strings.HasSuffix(lower, "ul") {
			return syntax.LiteralUint
		}
		return syntax.LiteralInt
	}
	isFloat := strings.ContainsAny(lower, ".e") || strings.HasSuffix(lower, "f") || strings.HasSuffix(lower, "h")
	switch {
	case !isFloat && (strings.HasSuffix(lower, "u") || strings.HasSuffix(lower, "ul") || strings.HasSuffix(lower, "lu")):
		return syntax.LiteralUint
	case !isFloat:
		return syntax.LiteralInt
	case strings.HasSuffix(lower, "h"):
		return syntax.LiteralHalf
	case strings.HasSuffix(lower, "l"):
		return syntax.LiteralDouble
	}
	return syntax.LiteralFloat
}
