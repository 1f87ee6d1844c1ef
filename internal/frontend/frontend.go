// Package frontend parses HLSL source into the syntax tree consumed by the
// binder.
//
// HLSL is close enough to C++ that the tree-sitter C++ grammar parses it
// once the HLSL-only constructs are out of the way. A token pass over the
// original text masks those constructs (semantics, register bindings,
// parameter modifiers, attributes, buffer headers, state blocks and
// techniques) by overwriting them with blanks, recording what it removed.
// Because masking never moves a byte, spans in the C++ tree are spans in
// the original file, and lowering stitches the recorded pieces back onto
// the nodes next to them.
package frontend

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

// Parse builds the syntax tree of file. Syntax problems are reported to
// reporter (which may be nil) and never fail the parse; the error result is
// for cancellation and oversized input.
func Parse(ctx context.Context, file *source.File, reporter diag.Reporter) (*syntax.Tree, error) {
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", file.Path, err)
	}

	m := mask(file, reporter)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, m.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	defer tree.Close()

	l := &lowerer{file: file, src: m.Text, m: m, rep: reporter}
	root := tree.RootNode()
	l.reportErrors(root)

	decls := l.declarations(root)
	for _, t := range m.Techniques {
		decls = append(decls, t)
	}
	decls = l.buffers(decls, func(source.Span) bool { return true })

	unit := &syntax.CompilationUnit{
		Base:         syntax.At(source.Span{File: file.ID, Start: 0, End: size}),
		Declarations: decls,
	}
	return syntax.NewTree(file.ID, unit), nil
}

// ParseString parses text as a virtual file named path in fs.
func ParseString(ctx context.Context, fs *source.FileSet, path, text string, reporter diag.Reporter) (*syntax.Tree, error) {
	file := fs.Get(fs.AddVirtual(path, []byte(text)))
	return Parse(ctx, file, reporter)
}
