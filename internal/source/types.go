package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records what loading did to a file's bytes.
	FileFlags uint8
)

const (
	// FileVirtual marks text added from memory rather than read from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileDecodedUTF16 marks a UTF-16 file converted to UTF-8.
	FileDecodedUTF16
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one loaded shader. Content is UTF-8 with \n line endings.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	// lineStarts[i] is the offset of the first byte of line i+1.
	lineStarts []uint32
}

// LineCol is a 1-based position. Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
