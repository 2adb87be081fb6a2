package fsutil

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifiers reported by Decode. They are IANA names.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingLatin   = "windows-1252"
)

//nolint:gochecknoglobals // Read-only byte order marks.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file content to a Go string and names the encoding it
// was read as. A byte order mark selects UTF-8 or UTF-16 and is stripped.
// Without one, valid UTF-8 is taken as is and anything else is read as
// windows-1252, which maps every byte.
func Decode(content []byte) (string, string, error) {
	var (
		dec  *encoding.Decoder
		name string
	)
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return string(content[len(bomUTF8):]), EncodingUTF8, nil
	case bytes.HasPrefix(content, bomUTF16LE):
		dec, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), EncodingUTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		dec, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), EncodingUTF16BE
	case utf8.Valid(content):
		return string(content), EncodingUTF8, nil
	default:
		dec, name = charmap.Windows1252.NewDecoder(), EncodingLatin
	}

	out, err := dec.Bytes(content)
	if err != nil {
		return "", name, fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), name, nil
}
