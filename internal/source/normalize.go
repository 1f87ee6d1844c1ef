package source

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// normalize turns raw file bytes into the form the lexer expects.
func normalize(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	content := raw
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		flags |= FileHadBOM
		content = raw[len(bomUTF8):]
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		flags |= FileHadBOM | FileDecodedUTF16
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return nil, 0, err
		}
		content = decoded
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileNormalizedCRLF
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	}
	if !norm.NFC.IsNormal(content) {
		flags |= FileNormalizedNFC
		content = norm.NFC.Bytes(content)
	}
	return content, flags, nil
}
