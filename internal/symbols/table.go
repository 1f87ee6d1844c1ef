package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Lookup resolves symbol IDs. Table implements it; signatures and overload
// resolution only need this much.
type Lookup interface {
	Symbol(id SymbolID) *Symbol
}

// Table holds the symbols and scopes of one compilation. It is layered over
// the shared intrinsic table: IDs up to the watermark resolve there and are
// read-only, local IDs continue after it.
type Table struct {
	base      *Table
	symBase   SymbolID
	scopeBase ScopeID
	frozen    bool

	Symbols *Symbols
	Scopes  *Scopes

	// Root is the intrinsic scope for the shared table and the global
	// scope for compilation tables.
	Root ScopeID

	builtins *Builtins
	arrays   map[arrayKey]SymbolID
}

type arrayKey struct {
	elem SymbolID
	n    uint32
}

func newTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		arrays:  make(map[arrayKey]SymbolID),
	}
}

// NewTable builds a compilation table over the intrinsic table. Its Root is
// a fresh global scope whose parent is the intrinsic scope.
func NewTable(h Hints) *Table {
	base := Intrinsics()
	t := newTable(h)
	t.base = base
	t.symBase = SymbolID(base.Symbols.Len())
	t.scopeBase = ScopeID(base.Scopes.Len())
	t.builtins = base.builtins
	t.Root = t.NewScope(ScopeGlobal, base.Root, NoSymbolID, nil, source.Span{})
	return t
}

// Builtins exposes the intrinsic type singletons.
func (t *Table) Builtins() *Builtins { return t.builtins }

// IntrinsicScope is the root of every lookup chain.
func (t *Table) IntrinsicScope() ScopeID {
	if t.base != nil {
		return t.base.Root
	}
	return t.Root
}

// SemanticScope holds the intrinsic semantic catalog.
func (t *Table) SemanticScope() ScopeID { return t.builtins.semantics }

// IsIntrinsic reports whether id lives in the shared intrinsic table.
func (t *Table) IsIntrinsic(id SymbolID) bool {
	if t.base == nil {
		return id.IsValid()
	}
	return id.IsValid() && id <= t.symBase
}

// Symbol returns the symbol for id or nil.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() {
		return nil
	}
	if t.base != nil && id <= t.symBase {
		return t.base.Symbol(id)
	}
	return t.Symbols.Get(uint32(id - t.symBase))
}

// Scope returns the scope for id or nil.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() {
		return nil
	}
	if t.base != nil && id <= t.scopeBase {
		return t.base.Scope(id)
	}
	return t.Scopes.Get(uint32(id - t.scopeBase))
}

func (t *Table) writable(id ScopeID) *Scope {
	if t.frozen || (t.base != nil && id <= t.scopeBase) {
		panic(fmt.Sprintf("symbols: scope %d belongs to the frozen intrinsic table", id))
	}
	sc := t.Scope(id)
	if sc == nil {
		panic(fmt.Sprintf("symbols: unknown scope %d", id))
	}
	return sc
}

// NewSymbol stores sym and returns its ID. The returned ID is stable; any
// *Symbol obtained earlier may be invalidated.
func (t *Table) NewSymbol(sym *Symbol) SymbolID {
	if t.frozen {
		panic("symbols: NewSymbol on frozen table")
	}
	return t.symBase + SymbolID(t.Symbols.New(sym))
}

// NewScope allocates a child scope of parent. Parents in the intrinsic
// table do not record the child.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner SymbolID, node syntax.Node, span source.Span) ScopeID {
	if t.frozen {
		panic("symbols: NewScope on frozen table")
	}
	id := t.scopeBase + ScopeID(t.Scopes.New(Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		Node:   node,
		Span:   span,
	}))
	if parent.IsValid() && (t.base == nil || parent > t.scopeBase) {
		if ps := t.Scope(parent); ps != nil {
			ps.Children = append(ps.Children, id)
		}
	}
	return id
}

// Declare adds id to scope under its own name.
func (t *Table) Declare(scope ScopeID, id SymbolID) {
	sym := t.Symbol(id)
	if sym == nil {
		panic(fmt.Sprintf("symbols: declare of unknown symbol %d", id))
	}
	t.writable(scope).add(sym.Name, id)
}

// DeclareAlias makes id reachable under an alternative name. Aliases are
// found by lookup but not listed again in the scope's symbol list.
func (t *Table) DeclareAlias(scope ScopeID, name string, id SymbolID) {
	t.writable(scope).alias(name, id)
}

// Remove takes id out of the active set of scope. The symbol itself stays
// allocated and reachable by ID.
func (t *Table) Remove(scope ScopeID, id SymbolID) bool {
	sym := t.Symbol(id)
	if sym == nil {
		return false
	}
	return t.writable(scope).remove(sym.Name, id)
}

// LookupLocal returns the symbols named name in scope itself.
func (t *Table) LookupLocal(scope ScopeID, name string) []SymbolID {
	sc := t.Scope(scope)
	if sc == nil {
		return nil
	}
	return sc.NameIndex[name]
}

// Lookup walks from scope to the root and returns the symbols of the first
// scope that declares name.
func (t *Table) Lookup(scope ScopeID, name string) []SymbolID {
	for id := scope; id.IsValid(); {
		sc := t.Scope(id)
		if sc == nil {
			return nil
		}
		if ids := sc.NameIndex[name]; len(ids) > 0 {
			return ids
		}
		id = sc.Parent
	}
	return nil
}

// ArrayType returns the array type of n elements of elem, creating it on
// first use.
func (t *Table) ArrayType(elem SymbolID, n uint32) SymbolID {
	key := arrayKey{elem: elem, n: n}
	if id, ok := t.arrays[key]; ok {
		return id
	}
	name := t.TypeName(elem) + "[]"
	if n > 0 {
		name = fmt.Sprintf("%s[%d]", t.TypeName(elem), n)
	}
	id := t.NewSymbol(&Symbol{
		Kind:     SymbolType,
		Name:     name,
		TypeInfo: &TypeInfo{Kind: TypeArray, Element: elem, Length: n},
	})
	t.arrays[key] = id
	return id
}

// TypeInfo returns the type description of a type symbol, or nil.
func (t *Table) TypeInfo(id SymbolID) *TypeInfo {
	if sym := t.Symbol(id); sym != nil {
		return sym.TypeInfo
	}
	return nil
}

// TypeName renders a type for diagnostics.
func (t *Table) TypeName(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return "<unknown>"
	}
	return sym.Name
}

// QualifiedName joins the names of the symbol's parents with "::".
func (t *Table) QualifiedName(id SymbolID) string {
	parts := make([]string, 0, 4)
	seen := 0
	for cur := id; cur.IsValid() && seen < 64; seen++ {
		sym := t.Symbol(cur)
		if sym == nil {
			break
		}
		parts = append(parts, sym.Name)
		cur = sym.Parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "::")
}
