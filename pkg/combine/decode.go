// File: pkg/combine/decode.go
package combine

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the text encoding a file was decoded with.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin-1"
)

// Decoded is file content converted to text.
type Decoded struct {
	Text     string
	Encoding Encoding
}

// DecodeText decodes b as UTF-8 when it is valid UTF-8 and as ISO-8859-1
// otherwise. Every byte maps to a rune in ISO-8859-1, so this never fails.
func DecodeText(b []byte) Decoded {
	if utf8.Valid(b) {
		return Decoded{Text: string(b), Encoding: UTF8}
	}
	return Decoded{Text: decodeLatin1(b), Encoding: Latin1}
}

func decodeLatin1(b []byte) string {
	// ISO-8859-1 maps every byte to a code point; the decoder has no error path.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}
