// Package compilation binds one syntax tree and answers semantic queries
// about it.
//
// A Compilation binds lazily and at most once; the SemanticModel it hands
// out is read-only and safe to share between goroutines. Independent
// compilations share nothing but the frozen intrinsic table.
package compilation

import (
	"context"
	"sync"

	"hlsltools/internal/binder"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// Options tune a compilation. The zero value is usable.
type Options struct {
	// MaxDiagnostics caps the diagnostics bag; 0 means unbounded.
	MaxDiagnostics int
	Hints          symbols.Hints
}

type Compilation struct {
	Tree *syntax.Tree
	opts Options

	once  sync.Once
	model *SemanticModel
}

func New(tree *syntax.Tree, opts Options) *Compilation {
	if tree == nil {
		tree = syntax.NewTree(0, nil)
	}
	return &Compilation{Tree: tree, opts: opts}
}

// SemanticModel binds the tree on first call and returns the model. Later
// calls return the same model; their ctx is ignored.
func (c *Compilation) SemanticModel(ctx context.Context) *SemanticModel {
	c.once.Do(func() {
		table := symbols.NewTable(c.opts.Hints)
		bag := diag.NewBag(c.opts.MaxDiagnostics)
		root, shared := binder.Bind(ctx, c.Tree.Root, table, bag)
		c.model = &SemanticModel{
			compilation:     c,
			table:           table,
			root:            root,
			boundFromSyntax: shared.BoundFromSyntax,
			scopeFromBound:  shared.ScopeFromBound,
			diagnostics:     append([]*diag.Diagnostic(nil), bag.Items()...),
		}
	})
	return c.model
}
