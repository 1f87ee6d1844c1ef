package source

import (
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, uint32(i)+1)
		}
	}
	return starts
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return n
}

// LineCount counts the text after a trailing newline as a line.
func (f *File) LineCount() int { return len(f.lineStarts) }

// Position converts a byte offset to a line and column.
func (f *File) Position(off uint32) LineCol {
	i, found := slices.BinarySearch(f.lineStarts, off)
	if !found {
		i--
	}
	return LineCol{Line: uint32(i) + 1, Col: off - f.lineStarts[i] + 1}
}

// lineBounds returns the offsets of the first byte of line and of its
// newline, or of the end of the file on the last line.
func (f *File) lineBounds(line uint32) (start, end uint32, ok bool) {
	if line == 0 || int(line) > len(f.lineStarts) {
		return 0, 0, false
	}
	start = f.lineStarts[line-1]
	end = f.size()
	if int(line) < len(f.lineStarts) {
		end = f.lineStarts[line] - 1
	}
	return start, end, true
}

// Offset converts a position back to a byte offset. Columns past the end of
// the line clamp to the line end; lines past the end clamp to the file end.
func (f *File) Offset(pos LineCol) uint32 {
	if pos.Line == 0 {
		return 0
	}
	start, end, ok := f.lineBounds(pos.Line)
	if !ok {
		return f.size()
	}
	col := max(pos.Col, 1)
	return min(start+col-1, end)
}

// GetLine returns a 1-based line without its newline.
func (f *File) GetLine(line uint32) string {
	start, end, ok := f.lineBounds(line)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path in mode "absolute", "relative" or
// "basename"; other modes return the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			break
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}
