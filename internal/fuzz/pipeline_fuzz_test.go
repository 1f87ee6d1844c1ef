package fuzztests

import (
	"context"
	"testing"
	"time"

	"hlsltools/internal/compilation"
	"hlsltools/internal/diag"
	"hlsltools/internal/frontend"
	"hlsltools/internal/source"
)

// pipelineTimeout bounds a single parse and bind. Longer runs point at a loop
// in error recovery or in scope lookup.
const pipelineTimeout = 5 * time.Second

func FuzzParseAndBind(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("float f() { { { { { } } } } }"))
	f.Add([]byte("struct S { S s; };"))
	f.Add([]byte("float f() { return f(f(f())); }"))
	f.Add([]byte("cbuffer { float a }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		type outcome struct {
			items []*diag.Diagnostic
			err   error
		}
		done := make(chan outcome, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.hlsl", input))
			bag := diag.NewBag(128)
			tree, err := frontend.Parse(ctx, file, diag.BagReporter{Bag: bag})
			if err != nil {
				done <- outcome{err: err}
				return
			}
			model := compilation.New(tree, compilation.Options{MaxDiagnostics: 128}).SemanticModel(ctx)
			done <- outcome{items: append(bag.Items(), model.GetDiagnostics()...)}
		}()

		select {
		case res := <-done:
			if res.err != nil {
				return
			}
			for _, d := range res.items {
				if d.Primary.Start > d.Primary.End {
					t.Fatalf("%s: inverted span %v", d.Code.ID(), d.Primary)
				}
			}
		case <-ctx.Done():
			t.Fatalf("parse and bind exceeded %v on %d bytes", pipelineTimeout, len(input))
		}
	})
}
