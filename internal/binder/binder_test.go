package binder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/binder"
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
	"hlsltools/internal/testkit"
)

func bind(t *testing.T, tree *syntax.Tree) (*bound.CompilationUnit, *binder.SharedState) {
	t.Helper()
	table := symbols.NewTable(symbols.Hints{})
	unit, shared := binder.Bind(context.Background(), tree.Root, table, nil)
	require.NoError(t, testkit.CheckBoundInvariants(unit, shared.BoundFromSyntax, table))
	return unit, shared
}

func codes(shared *binder.SharedState) []diag.Code {
	out := make([]diag.Code, 0, shared.Diagnostics.Len())
	for _, d := range shared.Diagnostics.Items() {
		out = append(out, d.Code)
	}
	return out
}

func boundOf[B bound.Node](t *testing.T, shared *binder.SharedState, syn syntax.Node) B {
	t.Helper()
	n, ok := shared.BoundFromSyntax[syn]
	require.True(t, ok, "no bound node for %s", syn.Kind())
	out, ok := n.(B)
	require.True(t, ok, "bound node for %s is %s", syn.Kind(), n.Kind())
	return out
}

func voidMain(kb *testkit.Builder, stmts ...syntax.Statement) *syntax.FunctionDefinition {
	return kb.Func(kb.Type("void"), kb.Ident("main"), nil, kb.Block(stmts...))
}

// void main() { [int i = 0;] for (int i = 0; i < 4; i++) {} }
func forLoop(kb *testkit.Builder, outer bool) (*syntax.Tree, *syntax.VariableDeclaration, *syntax.IdentifierName, *syntax.FunctionDefinition) {
	var stmts []syntax.Statement
	if outer {
		stmts = append(stmts, kb.Var(kb.Type("int"), "i", kb.Int("0")))
	}
	decl := kb.Var(kb.Type("int"), "i", kb.Int("0"))
	use := kb.Ident("i")
	loop := kb.For(decl,
		kb.Binary(syntax.OpLess, use, kb.Int("4")),
		[]syntax.Expression{kb.Postfix(syntax.OpInc, kb.Ident("i"))},
		kb.Block())
	fn := voidMain(kb, append(stmts, loop)...)
	return kb.Unit(fn), decl, use, fn
}

func TestForLoopRedeclarationRetiresOuterVariable(t *testing.T) {
	kb := testkit.NewBuilder()
	tree, decl, use, fn := forLoop(kb, true)
	_, shared := bind(t, tree)

	require.Equal(t, []diag.Code{diag.SemaLoopVariableConflict}, codes(shared))
	warn := shared.Diagnostics.Items()[0]
	assert.Equal(t, diag.SevWarning, warn.Severity)
	assert.Len(t, warn.Notes, 1)

	loopVar := boundOf[*bound.VariableDeclaration](t, shared, decl.Declarators[0]).Symbol
	def := boundOf[*bound.FunctionDefinition](t, shared, fn)
	scope := shared.ScopeFromBound[def]
	assert.Equal(t, []symbols.SymbolID{loopVar}, shared.Table.LookupLocal(scope, "i"))

	ref := boundOf[*bound.VariableExpression](t, shared, use)
	assert.Equal(t, loopVar, ref.Symbol)
}

func TestForLoopWithoutOuterVariable(t *testing.T) {
	kb := testkit.NewBuilder()
	tree, decl, _, _ := forLoop(kb, false)
	_, shared := bind(t, tree)

	assert.Empty(t, codes(shared))
	loopVar := boundOf[*bound.VariableDeclaration](t, shared, decl.Declarators[0]).Symbol
	sym := shared.Table.Symbol(loopVar)
	require.NotNil(t, sym)
	assert.Equal(t, "i", sym.Name)
	assert.Equal(t, shared.Table.Builtins().Scalar(symbols.ScalarInt), sym.Type)
}

func TestUndeclaredIdentifier(t *testing.T) {
	kb := testkit.NewBuilder()
	x := kb.Ident("x")
	tree := kb.Unit(kb.Func(kb.Type("float"), kb.Ident("f"), nil, kb.Block(kb.Return(x))))
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaUndeclaredIdentifier}, codes(shared))
	name := boundOf[*bound.Name](t, shared, x)
	assert.Equal(t, shared.Table.Builtins().Error, name.Type())
	assert.False(t, name.Symbol.IsValid())
}

func TestOverloadPicksExactMatch(t *testing.T) {
	kb := testkit.NewBuilder()
	gf := kb.Func(kb.Type("void"), kb.Ident("g"), []*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float"), "a")}, kb.Block())
	gi := kb.Func(kb.Type("void"), kb.Ident("g"), []*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("int"), "a")}, kb.Block())
	callInt := kb.Call(kb.Ident("g"), kb.Int("1"))
	callFloat := kb.Call(kb.Ident("g"), kb.Float("1.0"))
	tree := kb.Unit(gf, gi, voidMain(kb, kb.Expr(callInt), kb.Expr(callFloat)))
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	floatFn := boundOf[*bound.FunctionDefinition](t, shared, gf).Function
	intFn := boundOf[*bound.FunctionDefinition](t, shared, gi).Function
	assert.NotEqual(t, floatFn, intFn)
	assert.Equal(t, intFn, boundOf[*bound.FunctionInvocation](t, shared, callInt).Function)
	assert.Equal(t, floatFn, boundOf[*bound.FunctionInvocation](t, shared, callFloat).Function)
}

func TestAmbiguousCallReportsCandidates(t *testing.T) {
	kb := testkit.NewBuilder()
	h1 := kb.Func(kb.Type("void"), kb.Ident("h"), []*syntax.Parameter{
		kb.Param(syntax.ModifierNone, kb.Type("int"), "a"),
		kb.Param(syntax.ModifierNone, kb.Type("float"), "b"),
	}, kb.Block())
	h2 := kb.Func(kb.Type("void"), kb.Ident("h"), []*syntax.Parameter{
		kb.Param(syntax.ModifierNone, kb.Type("float"), "a"),
		kb.Param(syntax.ModifierNone, kb.Type("int"), "b"),
	}, kb.Block())
	call := kb.Call(kb.Ident("h"), kb.Int("1"), kb.Int("2"))
	tree := kb.Unit(h1, h2, voidMain(kb, kb.Expr(call)))
	_, shared := bind(t, tree)

	require.Equal(t, []diag.Code{diag.SemaAmbiguousCall}, codes(shared))
	assert.Len(t, shared.Diagnostics.Items()[0].Notes, 2)
	assert.Equal(t, boundOf[*bound.FunctionDefinition](t, shared, h1).Function,
		boundOf[*bound.FunctionInvocation](t, shared, call).Function)
}

func TestOutArgumentNeedsLValue(t *testing.T) {
	kb := testkit.NewBuilder()
	o := kb.Func(kb.Type("void"), kb.Ident("o"), []*syntax.Parameter{kb.Param(syntax.ModifierOut, kb.Type("float"), "x")}, kb.Block())
	tree := kb.Unit(o, voidMain(kb,
		kb.Var(kb.Type("float"), "v", nil),
		kb.Expr(kb.Call(kb.Ident("o"), kb.Ident("v"))),
		kb.Expr(kb.Call(kb.Ident("o"), kb.Float("1.0"))),
		kb.Expr(kb.Call(kb.Ident("o"), kb.Float("1.0"), kb.Float("2.0"))),
	))
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaOutArgNotLValue, diag.SemaNoMatchingOverload}, codes(shared))
}

func TestIntrinsicCall(t *testing.T) {
	kb := testkit.NewBuilder()
	call := kb.Call(kb.Ident("dot"), kb.Ident("a"), kb.Ident("a"))
	tree := kb.Unit(kb.Func(kb.Type("float"), kb.Ident("f"),
		[]*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float3"), "a")},
		kb.Block(kb.Return(call))))
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	inv := boundOf[*bound.FunctionInvocation](t, shared, call)
	assert.True(t, shared.Table.IsIntrinsic(inv.Function))
	assert.Equal(t, shared.Table.Builtins().Scalar(symbols.ScalarFloat), inv.Type())
}

func TestPrototypeAndDefinitionShareSymbol(t *testing.T) {
	kb := testkit.NewBuilder()
	proto := kb.Proto(kb.Type("float"), kb.Ident("p"), kb.Param(syntax.ModifierNone, kb.Type("float"), "a"))
	call := kb.Call(kb.Ident("p"), kb.Float("2.0"))
	user := kb.Func(kb.Type("float"), kb.Ident("q"), nil, kb.Block(kb.Return(call)))
	def := kb.Func(kb.Type("float"), kb.Ident("p"),
		[]*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float"), "a")},
		kb.Block(kb.Return(kb.Ident("a"))))
	tree := kb.Unit(proto, user, def)
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	fn := boundOf[*bound.FunctionDeclaration](t, shared, proto).Function
	assert.Equal(t, fn, boundOf[*bound.FunctionDefinition](t, shared, def).Function)
	assert.Equal(t, fn, boundOf[*bound.FunctionInvocation](t, shared, call).Function)
	assert.NotZero(t, shared.Table.Symbol(fn).Flags&symbols.SymbolFlagDefined)
}

func TestPrototypeMismatchAndRedefinition(t *testing.T) {
	kb := testkit.NewBuilder()
	param := func() []*syntax.Parameter {
		return []*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float"), "a")}
	}
	tree := kb.Unit(
		kb.Proto(kb.Type("int"), kb.Ident("p"), param()...),
		kb.Func(kb.Type("float"), kb.Ident("p"), param(), kb.Block(kb.Return(kb.Ident("a")))),
		kb.Func(kb.Type("float"), kb.Ident("p"), param(), kb.Block(kb.Return(kb.Ident("a")))),
	)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{
		diag.SemaPrototypeMismatch,
		diag.SemaPrototypeMismatch,
		diag.SemaRedefinition,
	}, codes(shared))
}

func TestClassMethodsSeeEachOther(t *testing.T) {
	kb := testkit.NewBuilder()
	call := kb.Call(kb.Ident("b"), kb.Float("1.0"))
	a := kb.Func(kb.Type("float"), kb.Ident("a"), nil, kb.Block(kb.Return(call)))
	b := kb.Func(kb.Type("float"), kb.Ident("b"),
		[]*syntax.Parameter{kb.Param(syntax.ModifierNone, kb.Type("float"), "x")},
		kb.Block(kb.Return(kb.Ident("x"))))
	class := kb.Class("C", nil, a, b)
	tree := kb.Unit(class)
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	bDef := boundOf[*bound.FunctionDefinition](t, shared, b)
	assert.Equal(t, bDef.Function, boundOf[*bound.FunctionInvocation](t, shared, call).Function)

	sym := shared.Table.Symbol(bDef.Function)
	assert.Equal(t, symbols.SymbolMethod, sym.Kind)
	assert.Equal(t, boundOf[*bound.ClassType](t, shared, class).Symbol, sym.Parent)
	require.Len(t, sym.Invocable.Parameters(), 1)
	assert.Equal(t, bDef.Parameters[0].Symbol, sym.Invocable.Parameters()[0])
}

func TestStructFieldsAndSwizzles(t *testing.T) {
	kb := testkit.NewBuilder()
	swz := kb.Field(kb.Field(kb.Ident("s"), "v"), "xy")
	bad := kb.Field(kb.Ident("s"), "q")
	tree := kb.Unit(
		kb.Struct("S", kb.Var(kb.Type("float4"), "v", nil)),
		kb.Func(kb.Type("float2"), kb.Ident("f"), nil, kb.Block(
			kb.Var(kb.Ident("S"), "s", nil),
			kb.Expr(bad),
			kb.Return(swz),
		)),
	)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaInvalidMember}, codes(shared))
	sw := boundOf[*bound.SwizzleExpression](t, shared, swz)
	assert.Equal(t, shared.Table.Builtins().Vector(symbols.ScalarFloat, 2), sw.Type())
	field := boundOf[*bound.FieldExpression](t, shared, swz.Target)
	assert.Equal(t, "v", shared.Table.Symbol(field.Field).Name)
}

func TestNumericConstructorComponentCount(t *testing.T) {
	kb := testkit.NewBuilder()
	good := kb.Construct(kb.Type("float4"), kb.Construct(kb.Type("float2"), kb.Float("1.0"), kb.Float("2.0")), kb.Float("3.0"), kb.Float("4.0"))
	tree := kb.Unit(
		kb.Var(kb.Type("float4"), "a", good),
		kb.Var(kb.Type("float4"), "b", kb.Construct(kb.Type("float4"), kb.Float("1.0"), kb.Float("2.0"))),
	)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaConstructorArgCount}, codes(shared))
	assert.Equal(t, shared.Table.Builtins().Vector(symbols.ScalarFloat, 4),
		boundOf[*bound.NumericConstructorInvocation](t, shared, good).Type())
}

func TestImplicitTruncationWarns(t *testing.T) {
	kb := testkit.NewBuilder()
	tree := kb.Unit(voidMain(kb,
		kb.Var(kb.Type("float4"), "a", nil),
		kb.Var(kb.Type("float2"), "b", kb.Ident("a")),
		kb.Var(kb.Type("float4"), "c", kb.Ident("b")),
	))
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaImplicitTruncation, diag.SemaCannotConvert}, codes(shared))
}

func TestSwitchSectionsShareScope(t *testing.T) {
	kb := testkit.NewBuilder()
	sw := kb.Switch(kb.Int("1"),
		kb.Case(kb.Int("0"), kb.Var(kb.Type("int"), "k", nil), kb.Break()),
		kb.Case(nil, kb.Var(kb.Type("int"), "k", nil)),
	)
	tree := kb.Unit(voidMain(kb, sw))
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaRedefinition}, codes(shared))
	bsw := boundOf[*bound.Switch](t, shared, sw)
	scope := shared.ScopeFromBound[bsw]
	require.True(t, scope.IsValid())
	assert.Equal(t, symbols.ScopeSwitch, shared.Table.Scope(scope).Kind)
}

func TestNamespaceMembersAndQualifiedCall(t *testing.T) {
	kb := testkit.NewBuilder()
	inner := kb.Func(kb.Type("float"), kb.Ident("one"), nil, kb.Block(kb.Return(kb.Float("1.0"))))
	call := kb.Call(kb.Qualified("N", "one"))
	tree := kb.Unit(
		kb.Namespace("N", inner),
		kb.Func(kb.Type("float"), kb.Ident("f"), nil, kb.Block(kb.Return(call))),
		kb.Func(kb.Type("float"), kb.Ident("g"), nil, kb.Block(kb.Return(kb.Call(kb.Ident("one"))))),
	)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaUndeclaredIdentifier}, codes(shared))
	fn := boundOf[*bound.FunctionDefinition](t, shared, inner).Function
	assert.Equal(t, fn, boundOf[*bound.FunctionInvocation](t, shared, call).Function)
	assert.Equal(t, "N::one", shared.Table.QualifiedName(fn))
}

func TestConstantBufferFieldsAreGlobals(t *testing.T) {
	kb := testkit.NewBuilder()
	use := kb.Ident("scale")
	tree := kb.Unit(
		kb.CBuffer("Params", kb.Var(kb.Type("float"), "scale", nil)),
		kb.Func(kb.Type("float"), kb.Ident("f"), nil, kb.Block(kb.Return(use))),
	)
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	ref := boundOf[*bound.VariableExpression](t, shared, use)
	field := shared.Table.Symbol(ref.Symbol)
	assert.Equal(t, symbols.SymbolConstantBuffer, shared.Table.Symbol(field.Parent).Kind)
}

func TestTechniqueCompilesEntryPoint(t *testing.T) {
	kb := testkit.NewBuilder()
	ps := kb.Func(kb.Type("float4"), kb.Ident("PS"), []*syntax.Parameter{
		kb.Param(syntax.ModifierUniform, kb.Type("float"), "k"),
		kb.Param(syntax.ModifierNone, kb.Type("float2"), "uv"),
	}, kb.Block(kb.Return(kb.Construct(kb.Type("float4"), kb.Ident("uv"), kb.Ident("k"), kb.Ident("k")))))
	compile := kb.Compile("ps_4_0", kb.Call(kb.Ident("PS"), kb.Float("1.0")))
	bogus := kb.Compile("zz_9_9", kb.Call(kb.Ident("PS"), kb.Float("1.0")))
	tech := kb.Technique("T", kb.Pass("P0",
		kb.State("PixelShader", compile),
		kb.State("VertexShader", bogus),
		kb.State("CullMode", nil),
	))
	tree := kb.Unit(ps, tech)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaUnknownCompileTarget}, codes(shared))
	c := boundOf[*bound.Compile](t, shared, compile)
	assert.Equal(t, boundOf[*bound.FunctionDefinition](t, shared, ps).Function, c.Invocation.Function)

	bt := boundOf[*bound.Technique](t, shared, tech)
	require.Len(t, bt.Passes, 1)
	assert.Nil(t, bt.Passes[0].Assignments[2].Value)
	assert.Equal(t, symbols.SymbolPass, shared.Table.Symbol(bt.Passes[0].Symbol).Kind)
}

func TestReturnChecks(t *testing.T) {
	kb := testkit.NewBuilder()
	tree := kb.Unit(
		kb.Func(kb.Type("float"), kb.Ident("f"), nil, kb.Block(kb.Return(nil))),
		kb.Func(kb.Type("void"), kb.Ident("g"), nil, kb.Block(kb.Return(kb.Int("1")))),
		kb.Func(kb.Type("float"), kb.Ident("h"), nil, kb.Block(kb.Return(kb.Int("1")))),
	)
	_, shared := bind(t, tree)

	assert.Equal(t, []diag.Code{diag.SemaReturnTypeMismatch, diag.SemaReturnTypeMismatch}, codes(shared))
}

func TestSemanticsResolve(t *testing.T) {
	kb := testkit.NewBuilder()
	known := kb.WithSemantic(kb.Declarator("pos", nil), "sv_position")
	custom1 := kb.WithSemantic(kb.Declarator("a", nil), "MYDATA")
	custom2 := kb.WithSemantic(kb.Declarator("b", nil), "mydata")
	tree := kb.Unit(kb.Struct("VSOut",
		kb.Vars(nil, kb.Type("float4"), known),
		kb.Vars(nil, kb.Type("float"), custom1, custom2),
	))
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	k := boundOf[*bound.Semantic](t, shared, known.Semantic)
	assert.True(t, shared.Table.IsIntrinsic(k.Symbol))
	c1 := boundOf[*bound.Semantic](t, shared, custom1.Semantic)
	c2 := boundOf[*bound.Semantic](t, shared, custom2.Semantic)
	assert.False(t, shared.Table.IsIntrinsic(c1.Symbol))
	assert.Equal(t, c1.Symbol, c2.Symbol)
}

func TestVoidVariableIsIllegal(t *testing.T) {
	kb := testkit.NewBuilder()
	tree := kb.Unit(kb.Var(kb.Type("void"), "v", nil))
	_, shared := bind(t, tree)
	assert.Equal(t, []diag.Code{diag.SemaVoidVariable}, codes(shared))
}

// foreignStmt satisfies syntax.Statement without being one of its known
// node types.
type foreignStmt struct{ *syntax.Break }

func TestUnknownStatementPanics(t *testing.T) {
	kb := testkit.NewBuilder()
	tree := kb.Unit(voidMain(kb, foreignStmt{kb.Break()}))
	table := symbols.NewTable(symbols.Hints{})
	assert.PanicsWithValue(t, "binder: unsupported statement kind Break", func() {
		binder.Bind(context.Background(), tree.Root, table, nil)
	})
}

func TestIntegerLiteralPrefersUnsignedOverload(t *testing.T) {
	kb := testkit.NewBuilder()
	// uint f() { return max(1u, 2); }
	call := kb.Call(kb.Ident("max"), kb.Lit(syntax.LiteralUint, "1u"), kb.Int("2"))
	tree := kb.Unit(kb.Func(kb.Type("uint"), kb.Ident("f"), nil, kb.Block(kb.Return(call))))
	_, shared := bind(t, tree)

	require.Empty(t, codes(shared))
	inv := boundOf[*bound.FunctionInvocation](t, shared, call)
	assert.Equal(t, shared.Table.Builtins().Scalar(symbols.ScalarUint), inv.Type())
}
