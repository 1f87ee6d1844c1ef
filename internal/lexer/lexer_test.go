package lexer_test

import (
	"testing"

	"hlsltools/internal/diag"
	"hlsltools/internal/lexer"
	"hlsltools/internal/source"
	"hlsltools/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d *diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, *d)
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.hlsl", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics %v", input, rep.diagnostics)
	}
	return toks
}

func TestSemanticDeclaration(t *testing.T) {
	toks := expectKinds(t, "float4 pos : SV_Position;",
		token.Ident, token.Ident, token.Colon, token.Ident, token.Semicolon)
	if toks[3].Text != "SV_Position" {
		t.Fatalf("semantic text = %q", toks[3].Text)
	}
	if toks[3].Span.Start != 13 || toks[3].Span.End != 24 {
		t.Fatalf("semantic span = %v", toks[3].Span)
	}
}

func TestKeywordsAndScope(t *testing.T) {
	expectKinds(t, "cbuffer C : register(b0) { }",
		token.KwCBuffer, token.Ident, token.Colon, token.KwRegister,
		token.LParen, token.Ident, token.RParen, token.LBrace, token.RBrace)
	expectKinds(t, "technique11 T { pass P { } }",
		token.KwTechnique, token.Ident, token.LBrace, token.KwPass, token.Ident,
		token.LBrace, token.RBrace, token.RBrace)
	expectKinds(t, "N::f(a ? b : c)",
		token.Ident, token.ColonColon, token.Ident, token.LParen, token.Ident,
		token.Question, token.Ident, token.Colon, token.Ident, token.RParen)
}

func TestNumbers(t *testing.T) {
	cases := map[string]token.Kind{
		"0":      token.IntLit,
		"12u":    token.IntLit,
		"0x1Fu":  token.IntLit,
		"3L":     token.IntLit,
		"1.5":    token.FloatLit,
		".5f":    token.FloatLit,
		"2.":     token.FloatLit,
		"1e-3h":  token.FloatLit,
		"4.0e+2": token.FloatLit,
		"7f":     token.FloatLit,
	}
	for input, want := range cases {
		toks := expectKinds(t, input, want)
		if toks[0].Text != input {
			t.Fatalf("%q scanned as %q", input, toks[0].Text)
		}
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectKinds(t, "a <<= b >>= c += d++ -- e->f",
		token.Ident, token.ShlAssign, token.Ident, token.ShrAssign, token.Ident,
		token.PlusAssign, token.Ident, token.PlusPlus, token.MinusMinus, token.Ident,
		token.Arrow, token.Ident)
	expectKinds(t, "x<=y&&!z||~w",
		token.Ident, token.LtEq, token.Ident, token.AndAnd, token.Bang, token.Ident,
		token.OrOr, token.Tilde, token.Ident)
}

func TestTriviaAndDirectives(t *testing.T) {
	input := "#define A \\\n  1\n// line\nfloat /* block\n */ x; # not a directive"
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Ident, token.Semicolon, token.Hash, token.Ident, token.Ident, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	dirs := lx.Directives()
	if len(dirs) != 1 || dirs[0].Start != 0 || dirs[0].End != 15 {
		t.Fatalf("directives = %v", dirs)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", rep.diagnostics)
	}
}

func TestErrors(t *testing.T) {
	cases := map[string]diag.Code{
		`"abc`:     diag.LexUnterminatedString,
		"\"a\nb\"": diag.LexUnterminatedString,
		"/* open":  diag.LexUnterminatedBlockComment,
		"a $ b":    diag.LexUnknownChar,
	}
	for input, code := range cases {
		lx, rep := makeTestLexer(input)
		lx.All()
		if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != code {
			t.Fatalf("%q: diagnostics %v, want %v", input, rep.diagnostics, code)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("after end got %v", n.Kind)
		}
	}
}
