package frontend

import (
	"fmt"
	"strings"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
	"hlsltools/internal/token"
)

// techniqueParser reads effect-framework technique blocks straight from the
// token stream; the C++ grammar has nothing resembling them.
//
//	technique11 T { pass P { SetVertexShader(CompileShader(vs_5_0, VS())); } }
//	technique T { pass P { VertexShader = compile vs_2_0 VS(); } }
type techniqueParser struct {
	toks []token.Token
	pos  int
	rep  diag.Reporter
}

func (p *techniqueParser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1]
}

func (p *techniqueParser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *techniqueParser) next() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *techniqueParser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return token.Token{}, false
}

func (p *techniqueParser) expect(k token.Kind) (token.Token, bool) {
	if t, ok := p.accept(k); ok {
		return t, true
	}
	t := p.peek()
	if t.Kind == token.EOF {
		p.report(diag.SynMissingToken, t.Span, fmt.Sprintf("expected '%s' before end of file", k))
	} else {
		p.report(diag.SynUnexpectedToken, t.Span, fmt.Sprintf("expected '%s', found '%s'", k, t.Text))
	}
	return t, false
}

func (p *techniqueParser) report(code diag.Code, sp source.Span, msg string) {
	if p.rep != nil {
		diag.ReportError(p.rep, code, sp, msg).Emit()
	}
}

// skipTo advances past the first token of kind k at nesting depth zero.
func (p *techniqueParser) skipTo(k token.Kind) token.Token {
	depth := 0
	for !p.at(token.EOF) {
		t := p.next()
		switch t.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			if depth == 0 && t.Kind == k {
				return t
			}
			depth--
			if depth < 0 {
				return t
			}
		default:
			if depth == 0 && t.Kind == k {
				return t
			}
		}
	}
	return p.peek()
}

func (p *techniqueParser) skipAnnotations() {
	if !p.at(token.Lt) {
		return
	}
	for !p.at(token.EOF) {
		if p.next().Kind == token.Gt {
			return
		}
	}
}

func (p *techniqueParser) declName() *syntax.IdentifierDeclarationName {
	t, ok := p.accept(token.Ident)
	if !ok {
		return nil
	}
	return &syntax.IdentifierDeclarationName{Base: syntax.At(t.Span), Name: t.Text}
}

func (p *techniqueParser) technique() *syntax.Technique {
	kw := p.next()
	tech := &syntax.Technique{Keyword: kw.Text, Name: p.declName()}
	p.skipAnnotations()
	end := kw.Span
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if !p.at(token.KwPass) {
				t := p.peek()
				p.report(diag.SynUnexpectedToken, t.Span, fmt.Sprintf("expected 'pass', found '%s'", t.Text))
				p.next()
				continue
			}
			tech.Passes = append(tech.Passes, p.pass())
		}
		t, _ := p.expect(token.RBrace)
		end = spanOrPrev(t, p)
	}
	tech.Base = syntax.At(cover(kw.Span, end))
	return tech
}

func spanOrPrev(t token.Token, p *techniqueParser) source.Span {
	if t.Kind == token.EOF && p.pos > 0 {
		return p.toks[p.pos-1].Span
	}
	return t.Span
}

func (p *techniqueParser) pass() *syntax.Pass {
	kw := p.next()
	pass := &syntax.Pass{Name: p.declName()}
	p.skipAnnotations()
	end := kw.Span
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if st := p.state(); st != nil {
				pass.Assignments = append(pass.Assignments, st)
			}
		}
		t, _ := p.expect(token.RBrace)
		end = spanOrPrev(t, p)
	}
	pass.Base = syntax.At(cover(kw.Span, end))
	return pass
}

// state parses one pass state. Values other than shader compilations are
// kept as text.
func (p *techniqueParser) state() *syntax.StateAssignment {
	name, ok := p.expect(token.Ident)
	if !ok {
		p.skipTo(token.Semicolon)
		return nil
	}
	st := &syntax.StateAssignment{Name: name.Text}

	switch {
	case p.at(token.LParen):
		// SetVertexShader(...)
		st.Name = strings.TrimPrefix(name.Text, "Set")
		p.next()
		if p.peek().Kind == token.Ident && p.peek().Text == "CompileShader" {
			st.Value = p.compileShader()
		} else {
			st.ValueText = p.textUntil(token.RParen)
		}
		p.expect(token.RParen)
	default:
		if p.at(token.LBracket) {
			p.next()
			p.skipTo(token.RBracket)
		}
		if _, ok := p.expect(token.Assign); !ok {
			p.skipTo(token.Semicolon)
			return nil
		}
		if p.at(token.KwCompile) {
			st.Value = p.compile()
		} else {
			st.ValueText = p.textUntil(token.Semicolon)
		}
	}
	end, _ := p.expect(token.Semicolon)
	st.Base = syntax.At(cover(name.Span, spanOrPrev(end, p)))
	return st
}

// textUntil joins the token texts up to, not including, the first k at
// nesting depth zero.
func (p *techniqueParser) textUntil(k token.Kind) string {
	var parts []string
	depth := 0
	for !p.at(token.EOF) {
		t := p.peek()
		if depth == 0 && t.Kind == k {
			break
		}
		switch t.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			if depth == 0 {
				return strings.Join(parts, " ")
			}
			depth--
		}
		parts = append(parts, p.next().Text)
	}
	return strings.Join(parts, " ")
}

// compile parses "compile vs_2_0 Entry(args)".
func (p *techniqueParser) compile() syntax.Expression {
	kw := p.next()
	profile, ok := p.expect(token.Ident)
	if !ok {
		return &syntax.Missing{Base: syntax.At(kw.Span)}
	}
	inv := p.invocation()
	if inv == nil {
		return &syntax.Missing{Base: syntax.At(cover(kw.Span, profile.Span))}
	}
	return &syntax.Compile{Base: syntax.At(cover(kw.Span, inv.Span())), Profile: profile.Text, Invocation: inv}
}

// compileShader parses "CompileShader(vs_5_0, Entry(args))".
func (p *techniqueParser) compileShader() syntax.Expression {
	kw := p.next()
	if _, ok := p.expect(token.LParen); !ok {
		return &syntax.Missing{Base: syntax.At(kw.Span)}
	}
	profile, ok := p.expect(token.Ident)
	if !ok {
		p.skipTo(token.RParen)
		return &syntax.Missing{Base: syntax.At(kw.Span)}
	}
	p.expect(token.Comma)
	inv := p.invocation()
	end, _ := p.expect(token.RParen)
	if inv == nil {
		return &syntax.Missing{Base: syntax.At(cover(kw.Span, profile.Span))}
	}
	return &syntax.Compile{Base: syntax.At(cover(kw.Span, spanOrPrev(end, p))), Profile: profile.Text, Invocation: inv}
}

func (p *techniqueParser) invocation() *syntax.Invocation {
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil
	}
	target := &syntax.IdentifierName{Base: syntax.At(name.Span), Name: name.Text}
	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	inv := &syntax.Invocation{Target: target}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		inv.Arguments = append(inv.Arguments, p.argument())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end, _ := p.expect(token.RParen)
	inv.Base = syntax.At(cover(name.Span, spanOrPrev(end, p)))
	return inv
}

// argument accepts names and literals, optionally negated; anything else is
// reported and replaced by a Missing node.
func (p *techniqueParser) argument() syntax.Expression {
	start := p.pos
	if e := p.simpleArgument(); e != nil && (p.at(token.Comma) || p.at(token.RParen)) {
		return e
	}
	p.pos = start
	first := p.peek().Span
	last := first
	depth := 0
	for !p.at(token.EOF) {
		c := p.peek()
		if depth == 0 && (c.Kind == token.Comma || c.Kind == token.RParen) {
			break
		}
		switch c.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		last = p.next().Span
	}
	sp := cover(first, last)
	p.report(diag.SynUnsupported, sp, "only names and literals are supported as compile arguments")
	return &syntax.Missing{Base: syntax.At(sp)}
}

func (p *techniqueParser) simpleArgument() syntax.Expression {
	t := p.peek()
	switch t.Kind {
	case token.Ident:
		p.next()
		return &syntax.IdentifierName{Base: syntax.At(t.Span), Name: t.Text}
	case token.IntLit, token.FloatLit, token.KwTrue, token.KwFalse:
		p.next()
		return literalOf(t.Kind, t.Text, t.Span)
	case token.Minus:
		if n := p.pos + 1; n < len(p.toks) && (p.toks[n].Kind == token.IntLit || p.toks[n].Kind == token.FloatLit) {
			p.next()
			lit := p.next()
			operand := literalOf(lit.Kind, lit.Text, lit.Span)
			return &syntax.PrefixUnary{Base: syntax.At(cover(t.Span, lit.Span)), Op: syntax.OpNeg, Operand: operand}
		}
	}
	return nil
}

func cover(a, b source.Span) source.Span { return a.Cover(b) }
