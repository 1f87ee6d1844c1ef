package driver

import (
	"errors"
	"fmt"
	"strings"

	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
)

// SymbolInfo describes a symbol visible at a position.
type SymbolInfo struct {
	Name      string   `json:"name" msgpack:"name"`
	Qualified string   `json:"qualified" msgpack:"qualified"`
	Kind      string   `json:"kind" msgpack:"kind"`
	Type      string   `json:"type,omitempty" msgpack:"type,omitempty"`
	Flags     []string `json:"flags,omitempty" msgpack:"flags,omitempty"`
	// Line is 0 for intrinsics.
	Line uint32 `json:"line,omitempty" msgpack:"line,omitempty"`
}

var errNoModel = errors.New("file was not bound")

// SymbolsAt lists the symbols in scope at pos of fr, innermost first.
// Intrinsic symbols are included only when withIntrinsics is set.
func SymbolsAt(fs *source.FileSet, fr *FileResult, pos source.LineCol, withIntrinsics bool) ([]SymbolInfo, error) {
	if fr == nil || fr.Model == nil {
		return nil, errNoModel
	}
	file := fs.Get(fr.FileID)
	if file == nil {
		return nil, fmt.Errorf("unknown file %s", fr.Path)
	}
	table := fr.Model.Table()
	var out []SymbolInfo
	for _, id := range fr.Model.LookupSymbols(file.Offset(pos)) {
		sym := table.Symbol(id)
		if sym == nil {
			continue
		}
		intrinsic := sym.Flags&symbols.SymbolFlagIntrinsic != 0
		if intrinsic && !withIntrinsics {
			continue
		}
		info := SymbolInfo{
			Name:      sym.Name,
			Qualified: table.QualifiedName(id),
			Kind:      sym.Kind.String(),
			Flags:     sym.Flags.Strings(),
		}
		if sym.Type.IsValid() {
			info.Type = table.TypeName(sym.Type)
		}
		if !intrinsic && sym.Span.File == fr.FileID {
			start, _ := fs.Resolve(sym.Span)
			info.Line = start.Line
		}
		out = append(out, info)
	}
	return out, nil
}

// FormatSymbols renders infos one per line as "kind name: type".
func FormatSymbols(infos []SymbolInfo) string {
	var b strings.Builder
	for _, s := range infos {
		fmt.Fprintf(&b, "%-10s %s", s.Kind, s.Qualified)
		if s.Type != "" {
			b.WriteString(": " + s.Type)
		}
		if s.Line > 0 {
			fmt.Fprintf(&b, "  (line %d)", s.Line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
