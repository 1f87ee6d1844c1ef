package frontend

import (
	"bytes"
	"slices"
	"strings"

	"hlsltools/internal/diag"
	"hlsltools/internal/lexer"
	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
	"hlsltools/internal/token"
)

// annotation is a masked ": NAME" semantic. Colon is the offset of the ':'.
type annotation struct {
	Colon uint32
	Name  string
	Span  source.Span
}

// word is a masked HLSL-only modifier such as "out" or "row_major".
type word struct {
	Text string
	Span source.Span
}

// bufferRegion is a masked cbuffer/tbuffer header and its braces; the
// fields in between stay visible and parse as globals.
type bufferRegion struct {
	Keyword  source.Span
	Name     string
	NameSpan source.Span
	Register string
	Open     source.Span
	Close    source.Span
	used     bool
}

// masked is the source rewritten so that a C++ grammar accepts it. Every
// byte keeps its offset: masked constructs are overwritten with blanks
// (newlines survive) and recorded here.
type masked struct {
	Text       []byte
	Semantics  []annotation
	Modifiers  []word
	Buffers    []*bufferRegion
	Techniques []*syntax.Technique
}

type frameKind uint8

const (
	frameBlock frameKind = iota
	frameBody
	frameBuffer
)

type frame struct {
	kind   frameKind
	region *bufferRegion
}

type masker struct {
	rep  diag.Reporter
	toks []token.Token
	out  *masked

	stack     []frame
	ternary   int
	caseLabel bool
	classHead bool
	prev      token.Token
	prevPrev  token.Token
}

func mask(file *source.File, rep diag.Reporter) *masked {
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	m := &masker{
		rep:  rep,
		toks: lx.All(),
		out:  &masked{Text: bytes.Clone(file.Content)},
	}
	for _, d := range lx.Directives() {
		m.blank(d.Start, d.End)
	}
	m.run()
	return m.out
}

// blank overwrites [start, end) with spaces, keeping line breaks.
func (m *masker) blank(start, end uint32) {
	for i := start; i < end && int(i) < len(m.out.Text); i++ {
		if c := m.out.Text[i]; c != '\n' && c != '\r' {
			m.out.Text[i] = ' '
		}
	}
}

func (m *masker) tok(i int) token.Token {
	if i < len(m.toks) {
		return m.toks[i]
	}
	return m.toks[len(m.toks)-1]
}

func (m *masker) shift(t token.Token) {
	m.prevPrev = m.prev
	m.prev = t
}

func (m *masker) run() {
	for i := 0; i < len(m.toks); i++ {
		t := m.toks[i]
		switch t.Kind {
		case token.EOF:
			return

		case token.KwTechnique:
			if len(m.stack) == 0 && m.atDeclStart() {
				i = m.technique(i)
				continue
			}

		case token.KwCBuffer, token.KwTBuffer:
			if j, ok := m.buffer(i); ok {
				i = j
				continue
			}

		case token.KwStruct, token.KwClass, token.KwInterface:
			m.classHead = true

		case token.KwCase, token.KwDefault:
			m.caseLabel = true

		case token.Question:
			m.ternary++

		case token.Semicolon:
			m.ternary, m.caseLabel, m.classHead = 0, false, false

		case token.LBrace:
			if m.prev.Kind == token.Ident && m.prevPrev.Kind == token.Ident && stateObject(m.prevPrev.Text) {
				i = m.blankGroup(i)
				continue
			}
			kind := frameBlock
			if m.classHead {
				kind = frameBody
			}
			m.stack = append(m.stack, frame{kind: kind})
			m.ternary, m.classHead = 0, false

		case token.RBrace:
			m.ternary = 0
			if n := len(m.stack); n > 0 {
				top := m.stack[n-1]
				m.stack = m.stack[:n-1]
				if top.kind == frameBuffer {
					top.region.Close = t.Span
					m.blank(t.Span.Start, t.Span.End)
					if next := m.tok(i + 1); next.Kind == token.Semicolon {
						m.blank(next.Span.Start, next.Span.End)
						i++
					}
					m.shift(token.Token{Kind: token.Semicolon, Span: t.Span})
					continue
				}
			}

		case token.Colon:
			if j, ok := m.colon(i); ok {
				i = j
				continue
			}

		case token.LBracket:
			if m.attributePosition() && m.tok(i+1).Kind == token.Ident {
				i = m.blankGroup(i)
				continue
			}

		case token.Ident:
			if t.Text == "sampler_state" && m.prev.Kind == token.Assign {
				start := m.prev.Span.Start
				j := m.matching(i + 1)
				m.blank(start, m.tok(j).Span.End)
				i = j
				continue
			}
			if token.IsModifier(t.Text) && m.tok(i+1).Kind == token.Ident {
				m.out.Modifiers = append(m.out.Modifiers, word{Text: t.Text, Span: t.Span})
				m.blank(t.Span.Start, t.Span.End)
				continue
			}
		}
		m.shift(t)
	}
}

func (m *masker) atDeclStart() bool {
	switch m.prev.Kind {
	case token.Invalid, token.Semicolon, token.RBrace, token.LBrace:
		return true
	}
	return false
}

func (m *masker) attributePosition() bool {
	switch m.prev.Kind {
	case token.Invalid, token.Semicolon, token.RBrace, token.LBrace, token.RBracket:
		return true
	}
	return false
}

// colon decides what a single ':' means. Semantics and register bindings
// are masked; ternaries, case labels, access specifiers and base lists are
// C++ and stay.
func (m *masker) colon(i int) (int, bool) {
	switch {
	case m.ternary > 0:
		m.ternary--
		return i, false
	case m.caseLabel:
		m.caseLabel = false
		return i, false
	case m.classHead:
		return i, false
	}
	switch m.prev.Kind {
	case token.KwPublic, token.KwPrivate, token.KwProtected:
		return i, false
	}

	colon := m.toks[i]
	next := m.tok(i + 1)
	switch {
	case next.Kind == token.KwRegister || next.Kind == token.KwPackOffset:
		end := i + 1
		if m.tok(i+2).Kind == token.LParen {
			end = m.matching(i + 2)
		}
		m.blank(colon.Span.Start, m.tok(end).Span.End)
		return end, true
	case next.IsWord():
		m.out.Semantics = append(m.out.Semantics, annotation{Colon: colon.Span.Start, Name: next.Text, Span: next.Span})
		m.blank(colon.Span.Start, next.Span.End)
		return i + 1, true
	}
	return i, false
}

// buffer masks "cbuffer Name [: register(b0)] {" and arranges for the
// matching '}' to be masked too.
func (m *masker) buffer(i int) (int, bool) {
	kw := m.toks[i]
	name := m.tok(i + 1)
	if name.Kind != token.Ident {
		return i, false
	}
	region := &bufferRegion{Keyword: kw.Span, Name: name.Text, NameSpan: name.Span}
	j := i + 2
	for ; ; j++ {
		t := m.tok(j)
		switch t.Kind {
		case token.LBrace:
			region.Open = t.Span
			m.blank(kw.Span.Start, t.Span.End)
			m.out.Buffers = append(m.out.Buffers, region)
			m.stack = append(m.stack, frame{kind: frameBuffer, region: region})
			m.shift(token.Token{Kind: token.LBrace, Span: t.Span})
			return j, true
		case token.Colon:
			if m.tok(j+1).Kind == token.KwRegister && m.tok(j+2).Kind == token.LParen {
				end := m.matching(j + 2)
				region.Register = registerText(m.toks[j+2 : end+1])
				j = end
			}
		case token.EOF, token.Semicolon, token.RBrace:
			return i, false
		}
	}
}

func registerText(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == token.LParen || t.Kind == token.RParen {
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// matching returns the index of the bracket closing the one at open, or the
// last token before EOF.
func (m *masker) matching(open int) int {
	depth := 0
	for j := open; j < len(m.toks); j++ {
		switch m.toks[j].Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
			if depth == 0 {
				return j
			}
		case token.EOF:
			return max(j-1, open)
		}
	}
	return len(m.toks) - 1
}

func (m *masker) blankGroup(open int) int {
	end := m.matching(open)
	m.blank(m.toks[open].Span.Start, m.tok(end).Span.End)
	return end
}

func (m *masker) technique(i int) int {
	p := &techniqueParser{toks: m.toks, pos: i, rep: m.rep}
	tech := p.technique()
	end := p.pos - 1
	if next := m.tok(p.pos); next.Kind == token.Semicolon {
		end = p.pos
	}
	end = max(end, i)
	m.blank(m.toks[i].Span.Start, m.tok(end).Span.End)
	m.out.Techniques = append(m.out.Techniques, tech)
	m.shift(token.Token{Kind: token.Semicolon, Span: m.tok(end).Span})
	return end
}

var stateObjects = []string{
	"SamplerState", "SamplerComparisonState", "sampler", "sampler1D", "sampler2D",
	"sampler3D", "samplerCUBE", "BlendState", "DepthStencilState", "RasterizerState",
}

func stateObject(name string) bool { return slices.Contains(stateObjects, name) }

// semanticAfter returns the annotation written right after off, with only
// blanks in between.
func (mk *masked) semanticAfter(off uint32) *syntax.Semantic {
	i, _ := slices.BinarySearchFunc(mk.Semantics, off, func(a annotation, off uint32) int {
		return cmpU32(a.Colon, off)
	})
	if i >= len(mk.Semantics) || !mk.blankBetween(off, mk.Semantics[i].Colon) {
		return nil
	}
	a := mk.Semantics[i]
	return &syntax.Semantic{Base: syntax.At(a.Span), Name: a.Name}
}

// modifiersBefore returns the masked modifiers that directly precede off,
// in source order.
func (mk *masked) modifiersBefore(off uint32) []string {
	i, _ := slices.BinarySearchFunc(mk.Modifiers, off, func(w word, off uint32) int {
		return cmpU32(w.Span.End, off)
	})
	var out []string
	for i--; i >= 0; i-- {
		w := mk.Modifiers[i]
		if !mk.blankBetween(w.Span.End, off) {
			break
		}
		out = append(out, w.Text)
		off = w.Span.Start
	}
	slices.Reverse(out)
	return out
}

// modifiersWithin returns masked modifiers that start inside [start, end).
func (mk *masked) modifiersWithin(start, end uint32) []string {
	var out []string
	for _, w := range mk.Modifiers {
		if w.Span.Start >= start && w.Span.Start < end {
			out = append(out, w.Text)
		}
	}
	return out
}

func (mk *masked) blankBetween(start, end uint32) bool {
	if start > end || int(end) > len(mk.Text) {
		return false
	}
	return len(bytes.TrimSpace(mk.Text[start:end])) == 0
}

func cmpU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
