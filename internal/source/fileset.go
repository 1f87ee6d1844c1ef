package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the files of one run. Adding a path again creates a new
// version; older FileIDs stay valid. A FileSet is not safe for concurrent
// mutation.
type FileSet struct {
	files   []*File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase returns a FileSet whose relative paths are computed
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir falls back to the working directory when none was given.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores content as given under path and returns its new id.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	path = cleanPath(path)
	f := &File{
		ID:         FileID(n),
		Path:       path,
		Content:    content,
		Flags:      flags,
		lineStarts: lineStarts(content),
	}
	fs.files = append(fs.files, f)
	fs.latest[path] = f.ID
	return f.ID
}

// Load reads path and normalizes it: UTF-8 and UTF-16 byte order marks are
// removed, UTF-16 is converted to UTF-8, CRLF becomes LF and text is put in
// NFC form.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := normalize(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory text such as test input or an editor buffer.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// GetLatest returns the newest version added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[cleanPath(path)]
	return id, ok
}

// Len counts every version.
func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve converts a span into line and column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
