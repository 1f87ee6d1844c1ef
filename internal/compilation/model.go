package compilation

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// SemanticModel answers questions about a bound tree. All queries are map
// reads; none of them bind anything.
type SemanticModel struct {
	compilation     *Compilation
	table           *symbols.Table
	root            *bound.CompilationUnit
	boundFromSyntax map[syntax.Node]bound.Node
	scopeFromBound  map[bound.Node]symbols.ScopeID
	diagnostics     []*diag.Diagnostic
}

func (m *SemanticModel) Compilation() *Compilation { return m.compilation }

// Table gives read access to the symbols of this compilation.
func (m *SemanticModel) Table() *symbols.Table { return m.table }

func (m *SemanticModel) Root() *bound.CompilationUnit { return m.root }

// BoundNode returns the node bound from syn, if syn was visited.
func (m *SemanticModel) BoundNode(syn syntax.Node) (bound.Node, bool) {
	if syntax.IsNil(syn) {
		return nil, false
	}
	n, ok := m.boundFromSyntax[syn]
	return n, ok
}

// GetDiagnostics returns the binder's diagnostics in emission order.
func (m *SemanticModel) GetDiagnostics() []*diag.Diagnostic {
	return append([]*diag.Diagnostic(nil), m.diagnostics...)
}

// GetDeclaredSymbol returns the symbol a declaration introduces, or
// NoSymbolID when the declaration was never bound.
func (m *SemanticModel) GetDeclaredSymbol(decl syntax.Node) symbols.SymbolID {
	n, ok := m.BoundNode(decl)
	if !ok {
		return symbols.NoSymbolID
	}
	switch b := n.(type) {
	case *bound.Parameter:
		return b.Symbol
	case *bound.VariableDeclaration:
		return b.Symbol
	case *bound.FunctionDeclaration:
		return b.Function
	case *bound.FunctionDefinition:
		return b.Function
	case *bound.StructType:
		return b.Symbol
	case *bound.ClassType:
		return b.Symbol
	case *bound.Namespace:
		return b.Symbol
	case *bound.ConstantBuffer:
		return b.Symbol
	case *bound.Technique:
		return b.Symbol
	case *bound.Pass:
		return b.Symbol
	}
	return symbols.NoSymbolID
}

// GetSymbol returns the symbol a name or expression refers to. Declaration
// names resolve to the declared symbol; member names resolve through the
// access they belong to.
func (m *SemanticModel) GetSymbol(node syntax.Node) symbols.SymbolID {
	switch n := node.(type) {
	case nil:
		return symbols.NoSymbolID
	case *syntax.IdentifierDeclarationName:
		return m.declaredByName(n)
	case *syntax.Semantic:
		if s, ok := m.boundFromSyntax[n].(*bound.Semantic); ok {
			return s.Symbol
		}
		return symbols.NoSymbolID
	case *syntax.IdentifierName:
		switch p := n.Parent().(type) {
		case *syntax.MethodInvocation:
			if p.Name == n {
				return m.GetSymbol(p)
			}
		case *syntax.FieldAccess:
			if p.Name == n {
				return m.GetSymbol(p)
			}
		case *syntax.QualifiedName:
			if p.Right == n {
				return m.GetSymbol(p)
			}
		case *syntax.FunctionDeclaration:
			if p.Name == syntax.Expression(n) {
				return m.GetDeclaredSymbol(p)
			}
		case *syntax.FunctionDefinition:
			if p.Name == syntax.Expression(n) {
				return m.GetDeclaredSymbol(p)
			}
		}
	}

	if _, ok := m.boundFromSyntax[node]; !ok {
		// "N::f" as a function name is never bound itself.
		if q, isQualified := node.(*syntax.QualifiedName); isQualified {
			if fn, isFn := q.Parent().(*syntax.FunctionDefinition); isFn && fn.Name == q {
				return m.GetDeclaredSymbol(fn)
			}
			if fn, isFn := q.Parent().(*syntax.FunctionDeclaration); isFn && fn.Name == q {
				return m.GetDeclaredSymbol(fn)
			}
		}
		return symbols.NoSymbolID
	}
	return m.symbolOf(m.boundFromSyntax[node])
}

func (m *SemanticModel) declaredByName(n *syntax.IdentifierDeclarationName) symbols.SymbolID {
	p := n.Parent()
	if d, ok := p.(*syntax.VariableDeclarator); ok {
		// Parameter declarators are bound through their parameter.
		if param, isParam := d.Parent().(*syntax.Parameter); isParam {
			return m.GetDeclaredSymbol(param)
		}
	}
	return m.GetDeclaredSymbol(p)
}

func (m *SemanticModel) symbolOf(n bound.Node) symbols.SymbolID {
	switch b := n.(type) {
	case *bound.VariableExpression:
		return b.Symbol
	case *bound.Name:
		return b.Symbol
	case *bound.FunctionInvocation:
		return b.Function
	case *bound.MethodInvocation:
		return b.Method
	case *bound.FieldExpression:
		return b.Field
	case *bound.Compile:
		if b.Invocation != nil {
			return b.Invocation.Function
		}
	case *bound.IntrinsicScalarType, *bound.IntrinsicVectorType, *bound.IntrinsicMatrixType,
		*bound.IntrinsicObjectType, *bound.IntrinsicGenericVectorType, *bound.IntrinsicGenericMatrixType,
		*bound.IntrinsicKeywordType, *bound.StructTypeReference:
		return b.(bound.Expression).Type()
	case *bound.Semantic:
		return b.Symbol
	}
	return symbols.NoSymbolID
}

// GetExpressionType returns the type of an expression node, or NoSymbolID
// for anything that is not a bound expression.
func (m *SemanticModel) GetExpressionType(node syntax.Node) symbols.SymbolID {
	if e, ok := m.boundFromSyntax[node].(bound.Expression); ok {
		return e.Type()
	}
	return symbols.NoSymbolID
}

// LookupSymbols returns every symbol visible at offset in the tree's file.
// Inner scopes hide outer symbols of the same name; several symbols of one
// name declared in the same scope (overloads) are all returned. Locals
// declared after offset are not yet visible. The intrinsic scope comes last.
func (m *SemanticModel) LookupSymbols(offset uint32) []symbols.SymbolID {
	scope := m.scopeAt(offset)
	hidden := make(map[string]struct{})
	var out []symbols.SymbolID
	for id := scope; id.IsValid(); {
		sc := m.table.Scope(id)
		if sc == nil {
			break
		}
		local := isLocalScope(sc.Kind)
		names := make(map[string]struct{})
		for _, sid := range sc.Symbols {
			sym := m.table.Symbol(sid)
			if sym == nil {
				continue
			}
			if _, ok := hidden[sym.Name]; ok {
				continue
			}
			if local && sym.Span.Start > offset {
				continue
			}
			names[sym.Name] = struct{}{}
			out = append(out, sid)
		}
		for name := range names {
			hidden[name] = struct{}{}
		}
		id = sc.Parent
	}
	return out
}

func isLocalScope(k symbols.ScopeKind) bool {
	switch k {
	case symbols.ScopeFunction, symbols.ScopeBlock, symbols.ScopeFor, symbols.ScopeSwitch:
		return true
	}
	return false
}

// scopeAt finds the innermost scope-introducing node around offset.
func (m *SemanticModel) scopeAt(offset uint32) symbols.ScopeID {
	tree := m.compilation.Tree
	for n := tree.FindNode(offset); !syntax.IsNil(n); n = n.Parent() {
		if b, ok := m.boundFromSyntax[n]; ok {
			if scope, ok := m.scopeFromBound[b]; ok {
				return scope
			}
		}
	}
	return m.table.Root
}
