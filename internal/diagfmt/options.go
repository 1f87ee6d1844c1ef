// Package diagfmt renders diagnostics for people (pretty, short) and for
// tools (JSON, MessagePack).
package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"

	"hlsltools/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses a path relative to the file set's base directory
	// when the file lies below it, and the stored path otherwise.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the primary line.
	Context   int8
	PathMode  PathMode
	ShowNotes bool
	// TabWidth expands tabs in source excerpts; 0 means 4.
	TabWidth int
}

// JSONOpts configures JSON and MessagePack output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the bag; 0 means everything.
	Max          int
	IncludeNotes bool
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	if filepath.IsAbs(f.Path) {
		rel := f.FormatPath("relative", fs.BaseDir())
		if !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel) {
			return rel
		}
	}
	return filepath.ToSlash(f.Path)
}
