package meeting

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var textExtensions = map[string]bool{".txt": true, ".md": true, ".vtt": true, ".srt": true}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// IsTranscriptFile reports whether a file name is read as a transcript
func IsTranscriptFile(name string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(name))]
}

// DecodeTranscript turns an uploaded transcript into NFC-normalized UTF-8.
// BOM-marked UTF-8/UTF-16 is honoured; bytes that are not valid UTF-8 are read as Windows-1252.
func DecodeTranscript(data []byte) (string, error) {
	var (
		decoded []byte
		err     error
	)
	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		decoded, _, err = transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	case utf8.Valid(data):
		decoded = data
	default:
		decoded, err = charmap.Windows1252.NewDecoder().Bytes(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode transcript file: %w", err)
	}
	return strings.TrimSpace(norm.NFC.String(string(decoded))), nil
}

// sanitizeFilename keeps the base name and replaces characters unsafe in object keys
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "upload"
	}
	return name
}
