// Package textenc classifies raw file bytes into an encoding tag and converts
// between bytes and text for the tags the editor supports.
package textenc

import (
	"bytes"

	"scribe/pkg/types"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Detect returns the encoding of b. It never fails: a byte order mark wins,
// then well-formed UTF-8, and anything else is read as UTF-8 too. Legacy 8-bit
// text is therefore misread as UTF-8; no codepage guessing is attempted.
func Detect(b []byte) types.Encoding {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return types.EncodingUTF8
	case bytes.HasPrefix(b, bomUTF16BE):
		return types.EncodingUTF16BE
	case bytes.HasPrefix(b, bomUTF16LE):
		return types.EncodingUTF16LE
	}

	if ValidUTF8(b) {
		return types.EncodingUTF8
	}
	return types.DefaultEncoding
}

// ValidUTF8 reports whether b is structurally valid UTF-8. Only the leading
// byte class and continuation bytes are checked, so overlong forms and
// surrogate code points pass. Use utf8.Valid for strict validation.
func ValidUTF8(b []byte) bool {
	i := 0
	for i < len(b) {
		c := b[i]
		var n int
		switch {
		case c < 0x80:
			i++
			continue
		case c&0xE0 == 0xC0:
			n = 1
		case c&0xF0 == 0xE0:
			n = 2
		case c&0xF8 == 0xF0:
			n = 3
		default:
			return false
		}

		// a truncated sequence at the end of the buffer is malformed
		if i+n >= len(b) {
			return false
		}
		for k := 1; k <= n; k++ {
			if b[i+k]&0xC0 != 0x80 {
				return false
			}
		}
		i += n + 1
	}
	return true
}

// HasBOM reports whether b starts with a byte order mark for enc.
func HasBOM(b []byte, enc types.Encoding) bool {
	switch enc {
	case types.EncodingUTF8:
		return bytes.HasPrefix(b, bomUTF8)
	case types.EncodingUTF16BE:
		return bytes.HasPrefix(b, bomUTF16BE)
	case types.EncodingUTF16LE:
		return bytes.HasPrefix(b, bomUTF16LE)
	}
	return false
}
