package compilation_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/compilation"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
	"hlsltools/internal/testkit"
)

func model(t *testing.T, tree *syntax.Tree) *compilation.SemanticModel {
	t.Helper()
	m := compilation.New(tree, compilation.Options{}).SemanticModel(context.Background())
	require.NotNil(t, m)
	return m
}

func names(m *compilation.SemanticModel, ids []symbols.SymbolID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.Table().Symbol(id).Name)
	}
	return out
}

func count(list []string, name string) int {
	n := 0
	for _, s := range list {
		if s == name {
			n++
		}
	}
	return n
}

// float f(float a) { float y = a; float z = 1; return y + z; }
type sample struct {
	tree  *syntax.Tree
	fn    *syntax.FunctionDefinition
	param *syntax.Parameter
	y     *syntax.VariableDeclaration
	useA  *syntax.IdentifierName
	sum   *syntax.Binary
	useY  *syntax.IdentifierName
}

func newSample(kb *testkit.Builder) sample {
	var s sample
	s.param = kb.Param(syntax.ModifierNone, kb.Type("float"), "a")
	s.useA = kb.Ident("a")
	s.y = kb.Var(kb.Type("float"), "y", s.useA)
	z := kb.Var(kb.Type("float"), "z", kb.Int("1"))
	s.useY = kb.Ident("y")
	s.sum = kb.Binary(syntax.OpAdd, s.useY, kb.Ident("z"))
	s.fn = kb.Func(kb.Type("float"), kb.Ident("f"), []*syntax.Parameter{s.param},
		kb.Block(s.y, z, kb.Return(s.sum)))
	s.tree = kb.Unit(s.fn)
	return s
}

func TestDeclaredSymbolsAndReferences(t *testing.T) {
	s := newSample(testkit.NewBuilder())
	m := model(t, s.tree)
	require.Empty(t, m.GetDiagnostics())

	fn := m.GetDeclaredSymbol(s.fn)
	require.True(t, fn.IsValid())
	assert.Equal(t, "f", m.Table().Symbol(fn).Name)
	assert.Equal(t, fn, m.GetSymbol(s.fn.Name))

	a := m.GetDeclaredSymbol(s.param)
	require.True(t, a.IsValid())
	assert.Equal(t, a, m.GetSymbol(s.useA))
	assert.Equal(t, a, m.GetSymbol(s.param.Declarator.Name))

	y := m.GetDeclaredSymbol(s.y.Declarators[0])
	require.True(t, y.IsValid())
	assert.Equal(t, y, m.GetSymbol(s.useY))
	assert.Equal(t, y, m.GetSymbol(s.y.Declarators[0].Name))

	float := m.Table().Builtins().Scalar(symbols.ScalarFloat)
	assert.Equal(t, float, m.GetExpressionType(s.sum))
	assert.Equal(t, float, m.GetSymbol(s.fn.ReturnType))

	assert.False(t, m.GetDeclaredSymbol(s.sum).IsValid())
	assert.False(t, m.GetSymbol(s.fn.Body).IsValid())
	assert.False(t, m.GetExpressionType(s.y).IsValid())
}

func TestLookupSymbolsRespectsDeclarationOrder(t *testing.T) {
	s := newSample(testkit.NewBuilder())
	m := model(t, s.tree)

	early := names(m, m.LookupSymbols(s.useA.Span().Start))
	assert.Contains(t, early, "a")
	assert.Contains(t, early, "f")
	assert.NotContains(t, early, "z")
	assert.Contains(t, early, "dot")

	late := names(m, m.LookupSymbols(s.useY.Span().Start))
	assert.Contains(t, late, "y")
	assert.Contains(t, late, "z")
	assert.Less(t, indexOf(late, "a"), indexOf(late, "dot"))
}

func indexOf(list []string, name string) int {
	for i, s := range list {
		if s == name {
			return i
		}
	}
	return -1
}

func TestLookupSymbolsShadowsIntrinsics(t *testing.T) {
	kb := testkit.NewBuilder()
	// float abs(float v) { return v; } float abs(int v) { return v; } void main() { }
	absF := kb.Func(kb.Type("float"), kb.Ident("abs"),
		[]*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float"), "v")},
		kb.Block(kb.Return(kb.Ident("v"))))
	absI := kb.Func(kb.Type("float"), kb.Ident("abs"),
		[]*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("int"), "v")},
		kb.Block(kb.Return(kb.Ident("v"))))
	decl := kb.Var(kb.Type("float"), "x", kb.Float("1.0"))
	inner := kb.Ident("x")
	main := kb.Func(kb.Type("void"), kb.Ident("main"), nil, kb.Block(decl, kb.Expr(inner)))
	m := model(t, kb.Unit(absF, absI, main))
	require.Empty(t, m.GetDiagnostics())

	visible := m.LookupSymbols(inner.Span().Start)
	var abs []symbols.SymbolID
	for _, id := range visible {
		if m.Table().Symbol(id).Name == "abs" {
			abs = append(abs, id)
		}
	}
	require.Len(t, abs, 2)
	for _, id := range abs {
		assert.False(t, m.Table().IsIntrinsic(id))
	}
	assert.Equal(t, 1, count(names(m, visible), "x"))
	assert.Equal(t, 1, count(names(m, visible), "main"))
}

func TestDiagnosticsAreACopy(t *testing.T) {
	kb := testkit.NewBuilder()
	tree := kb.Unit(kb.Func(kb.Type("float"), kb.Ident("f"), nil, kb.Block(kb.Return(kb.Ident("missing")))))
	m := model(t, tree)

	got := m.GetDiagnostics()
	require.Len(t, got, 1)
	assert.Equal(t, diag.SemaUndeclaredIdentifier, got[0].Code)
	got[0] = nil
	assert.NotNil(t, m.GetDiagnostics()[0])
}

func TestSemanticModelIsBuiltOnce(t *testing.T) {
	s := newSample(testkit.NewBuilder())
	c := compilation.New(s.tree, compilation.Options{})

	const n = 8
	models := make([]*compilation.SemanticModel, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			models[i] = c.SemanticModel(context.Background())
		}()
	}
	wg.Wait()
	for _, m := range models {
		assert.Same(t, models[0], m)
	}
	assert.Same(t, c, models[0].Compilation())
}

func TestEmptyCompilation(t *testing.T) {
	m := compilation.New(nil, compilation.Options{}).SemanticModel(context.Background())
	assert.Empty(t, m.GetDiagnostics())
	assert.Empty(t, m.Root().Declarations)
	assert.Contains(t, names(m, m.LookupSymbols(0)), "float4")
}
