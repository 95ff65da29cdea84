package types

import "strings"

// Encoding names a character encoding the editor can read and write.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

// DefaultEncoding is used for new buffers and as the detector fallback.
const DefaultEncoding = EncodingUTF8

// Label is the status-bar form of the tag, e.g. "UTF-16LE".
func (e Encoding) Label() string {
	return strings.ToUpper(string(e))
}

func (e Encoding) String() string {
	return string(e)
}
