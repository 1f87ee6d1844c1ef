package testkit

import (
	"fmt"

	"hlsltools/internal/bound"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// CheckBoundInvariants runs structural checks over a bound tree:
// 1) every node with a syntax origin is what boundFromSyntax records for it
// 2) every expression has a type
// 3) symbol parent chains terminate
func CheckBoundInvariants(root bound.Node, boundFromSyntax map[syntax.Node]bound.Node, table *symbols.Table) error {
	var err error
	bound.Walk(root, func(n bound.Node) bool {
		if err != nil {
			return false
		}
		if syn := n.Syntax(); !syntax.IsNil(syn) {
			if got := boundFromSyntax[syn]; got != n {
				err = fmt.Errorf("%s at %v: ledger holds %v", n.Kind(), syn.Span(), describe(got))
				return false
			}
		}
		if e, ok := n.(bound.Expression); ok && !e.Type().IsValid() {
			err = fmt.Errorf("%s at %v has no type", n.Kind(), spanOf(n))
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return CheckParentChains(table)
}

// CheckParentChains reports a symbol whose Parent links loop.
func CheckParentChains(table *symbols.Table) error {
	limit := int(table.Symbols.Len()) + 1
	for i := uint32(1); i <= table.Symbols.Len(); i++ {
		sym := table.Symbols.Get(i)
		if sym == nil {
			continue
		}
		steps := 0
		for cur := sym.Parent; cur.IsValid(); steps++ {
			if steps > limit {
				return fmt.Errorf("symbol %q: parent chain does not terminate", sym.Name)
			}
			p := table.Symbol(cur)
			if p == nil {
				break
			}
			cur = p.Parent
		}
	}
	return nil
}

func describe(n bound.Node) string {
	if bound.IsNil(n) {
		return "nothing"
	}
	return n.Kind().String()
}

func spanOf(n bound.Node) string {
	if syn := n.Syntax(); !syntax.IsNil(syn) {
		return syn.Span().String()
	}
	return "<synthesised>"
}
