package bound

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hlsltools/internal/symbols"
)

var (
	_ Statement  = (*Block)(nil)
	_ Statement  = (*For)(nil)
	_ Statement  = (*VariableDeclaration)(nil)
	_ Statement  = (*MultipleVariableDeclarations)(nil)
	_ Expression = (*Literal)(nil)
	_ Expression = (*Name)(nil)
	_ Expression = (*Compile)(nil)
	_ Expression = (*StructTypeReference)(nil)
	_ Expression = (*Error)(nil)
	_ Node       = (*FunctionDefinition)(nil)
	_ Node       = (*SwitchLabel)(nil)
)

func TestWalkSkipsAbsentChildren(t *testing.T) {
	lit := &Literal{ExprBase: Typed(nil, symbols.SymbolID(3)), Text: "1"}
	ret := &Return{Expression: lit}
	body := &Block{Statements: []Statement{ret, &Return{}}}
	fn := &FunctionDefinition{Body: body}

	var kinds []Kind
	Walk(fn, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []Kind{KindFunctionDefinition, KindBlock, KindReturn, KindLiteral, KindReturn}, kinds)
	assert.Equal(t, symbols.SymbolID(3), lit.Type())
	assert.True(t, IsNil((*Block)(nil)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SwizzleExpression", KindSwizzleExpression.String())
	assert.Equal(t, "Kind(?)", Kind(250).String())
}
