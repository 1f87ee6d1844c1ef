package fuzztests

import (
	"testing"

	"hlsltools/internal/diag"
	"hlsltools/internal/lexer"
	"hlsltools/internal/source"
	"hlsltools/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hlsl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		prev := uint32(0)
		for i := 0; i <= len(input)+1; i++ {
			tok := lx.Next()
			if tok.Span.Start < prev {
				t.Fatalf("token %v starts before previous token end", tok.Kind)
			}
			prev = tok.Span.End
			if tok.Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer produced more tokens than input bytes")
	})
}
