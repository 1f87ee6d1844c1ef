package signatures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/symbols"
)

func TestFunctionSignatureOverLazyParameters(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()

	resolved := 0
	fn := table.NewSymbol(&symbols.Symbol{Kind: symbols.SymbolFunction, Name: "f", Type: b.Void})
	table.Symbol(fn).Invocable = symbols.Lazy(func() []symbols.SymbolID {
		resolved++
		p := table.NewSymbol(&symbols.Symbol{
			Kind:      symbols.SymbolParameter,
			Name:      "x",
			Parent:    fn,
			Type:      b.Scalar(symbols.ScalarInt),
			Direction: symbols.DirInOut,
		})
		return []symbols.SymbolID{p}
	}, false)

	sig := NewFunctionSignature(table, fn)
	require.Equal(t, 1, sig.ParameterCount())
	assert.Equal(t, b.Scalar(symbols.ScalarInt), sig.ParameterType(0))
	assert.Equal(t, symbols.DirInOut, sig.ParameterDirection(0))
	assert.False(t, sig.HasVariadicParameter())
	assert.Equal(t, b.Void, sig.ReturnType)

	again := NewFunctionSignature(table, fn)
	assert.True(t, SameParameters(sig, again))
	assert.Equal(t, 1, resolved)
}

func TestSignaturesSkipsNonInvocables(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	v := table.NewSymbol(&symbols.Symbol{Kind: symbols.SymbolVariable, Name: "v"})
	sin := table.Lookup(table.Root, "sin")
	sigs := Signatures(table, append([]symbols.SymbolID{v}, sin...))
	assert.Len(t, sigs, len(sin))
}
