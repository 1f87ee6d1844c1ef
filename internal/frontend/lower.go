package frontend

import (
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// lowerer turns the C++ concrete tree of the masked text into HLSL syntax.
// Offsets are shared between the masked and the original text, so spans
// taken from tree-sitter nodes point into the original file.
type lowerer struct {
	file *source.File
	src  []byte
	m    *masked
	rep  diag.Reporter
}

func (l *lowerer) span(n *sitter.Node) source.Span {
	return source.Span{File: l.file.ID, Start: n.StartByte(), End: n.EndByte()}
}

func (l *lowerer) text(n *sitter.Node) string { return n.Content(l.src) }

func (l *lowerer) report(code diag.Code, sp source.Span, msg string) {
	if l.rep != nil {
		diag.ReportError(l.rep, code, sp, msg).Emit()
	}
}

func (l *lowerer) unsupported(n *sitter.Node, what string) {
	l.report(diag.SynUnsupported, l.span(n), fmt.Sprintf("%s are not supported", what))
}

// reportErrors reports every ERROR and MISSING node once. Lowering later
// skips or replaces them without reporting again.
func (l *lowerer) reportErrors(n *sitter.Node) {
	switch {
	case n.IsMissing():
		l.report(diag.SynMissingToken, l.span(n), fmt.Sprintf("missing '%s'", n.Type()))
		return
	case n.Type() == "ERROR":
		l.report(diag.SynUnexpectedToken, l.span(n), fmt.Sprintf("unexpected '%s'", excerpt(l.text(n))))
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		l.reportErrors(n.Child(i))
	}
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	return s
}

// named returns the named children of n, without comments.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// fields returns every child of n stored under the field name.
func fields(n *sitter.Node, name string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == name {
			out = append(out, n.Child(i))
		}
	}
	return out
}

// specifiers collects the C++ storage classes and qualifiers written on a
// declaration (static, const, extern, ...).
func (l *lowerer) specifiers(n *sitter.Node) []string {
	var out []string
	for _, c := range named(n) {
		switch c.Type() {
		case "storage_class_specifier", "type_qualifier":
			out = append(out, l.text(c))
		}
	}
	return out
}

var intrinsicTypes = symbols.Intrinsics()

// isIntrinsicType reports whether name is a built-in type such as float4 or
// Texture2D.
func isIntrinsicType(name string) bool {
	for _, id := range intrinsicTypes.LookupLocal(intrinsicTypes.IntrinsicScope(), name) {
		if sym := intrinsicTypes.Symbol(id); sym != nil && sym.Kind == symbols.SymbolType {
			return true
		}
	}
	return false
}

func sortDeclarations(decls []syntax.Declaration) {
	slices.SortStableFunc(decls, func(a, b syntax.Declaration) int {
		return cmpU32(a.Span().Start, b.Span().Start)
	})
}

// buffers moves the globals written inside a masked cbuffer/tbuffer region
// into a ConstantBuffer node. Namespaces are handled first so that their
// regions stay inside them.
func (l *lowerer) buffers(decls []syntax.Declaration, within func(source.Span) bool) []syntax.Declaration {
	for _, d := range decls {
		if ns, ok := d.(*syntax.Namespace); ok {
			nsSpan := ns.Span()
			ns.Declarations = l.buffers(ns.Declarations, func(sp source.Span) bool {
				return nsSpan.Contains(sp.Start)
			})
		}
	}
	out := make([]syntax.Declaration, 0, len(decls))
	made := make(map[*bufferRegion]*syntax.ConstantBuffer)
	for _, d := range decls {
		if v, ok := d.(*syntax.VariableDeclaration); ok {
			if r := l.regionOf(v.Span().Start); r != nil {
				cb := made[r]
				if cb == nil {
					cb = l.constantBuffer(r)
					made[r] = cb
					out = append(out, cb)
				}
				cb.Fields = append(cb.Fields, v)
				continue
			}
		}
		out = append(out, d)
	}
	for _, r := range l.m.Buffers {
		if !r.used && within(r.Keyword) {
			out = append(out, l.constantBuffer(r))
		}
	}
	sortDeclarations(out)
	return out
}

func (l *lowerer) regionOf(off uint32) *bufferRegion {
	for _, r := range l.m.Buffers {
		if off >= r.Open.End && off < r.Close.Start {
			return r
		}
	}
	return nil
}

func (l *lowerer) constantBuffer(r *bufferRegion) *syntax.ConstantBuffer {
	r.used = true
	end := r.Close
	if end.End == 0 {
		end = r.Open
	}
	return &syntax.ConstantBuffer{
		Base:     syntax.At(r.Keyword.Cover(end)),
		Name:     &syntax.IdentifierDeclarationName{Base: syntax.At(r.NameSpan), Name: r.Name},
		Register: r.Register,
	}
}
