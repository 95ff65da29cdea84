package textenc

import (
	"sort"
	"strings"
	"sync"

	"scribe/internal/errors"
	"scribe/pkg/types"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Codec pairs the decoder and encoder used for one tag. They are separate
// encodings because decoding strips a byte order mark and encoding never
// writes one.
type Codec struct {
	Decode encoding.Encoding
	Encode encoding.Encoding
}

var (
	registryMu sync.RWMutex
	registry   = map[types.Encoding]Codec{
		types.EncodingUTF8: {
			Decode: unicode.UTF8BOM,
			Encode: unicode.UTF8,
		},
		types.EncodingUTF16LE: {
			Decode: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
			Encode: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		},
		types.EncodingUTF16BE: {
			Decode: unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
			Encode: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		},
	}

	aliases = map[string]types.Encoding{
		"utf8":     types.EncodingUTF8,
		"utf-16le": types.EncodingUTF16LE,
		"utf16le":  types.EncodingUTF16LE,
		"utf-16be": types.EncodingUTF16BE,
		"utf16be":  types.EncodingUTF16BE,
	}
)

// Register adds or replaces the codec for tag.
func Register(tag types.Encoding, c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[tag] = c
}

// Supported lists the registered tags in name order.
func Supported() []types.Encoding {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]types.Encoding, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Lookup normalizes a user or wire supplied encoding name.
func Lookup(name string) (types.Encoding, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if tag, ok := aliases[n]; ok {
		n = string(tag)
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	if _, ok := registry[types.Encoding(n)]; ok {
		return types.Encoding(n), true
	}
	return "", false
}

func codecFor(enc types.Encoding) (Codec, error) {
	tag, ok := Lookup(string(enc))
	if !ok {
		return Codec{}, errors.NewEncodingError("unsupported encoding", string(enc), errors.UnsupportedEncoding, nil)
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[tag], nil
}

// Decode converts b to text using enc. A leading byte order mark is dropped.
// Malformed input is replaced with U+FFFD rather than rejected.
func Decode(b []byte, enc types.Encoding) (string, error) {
	c, err := codecFor(enc)
	if err != nil {
		return "", err
	}
	out, err := c.Decode.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.NewEncodingError("decode failed", string(enc), errors.DecodeFailed, err)
	}
	return string(out), nil
}

// Encode converts s to bytes using enc, without a byte order mark.
func Encode(s string, enc types.Encoding) ([]byte, error) {
	c, err := codecFor(enc)
	if err != nil {
		return nil, err
	}
	out, err := c.Encode.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.NewEncodingError("encode failed", string(enc), errors.EncodeFailed, err)
	}
	return out, nil
}
