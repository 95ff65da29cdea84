package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The text area rewrites a tab as spaces, turns "\r\n" into two line
// breaks and drops other control runes and U+FFFD. editBuffer holds the
// form of the file text that survives it and maps edits back.

// Stand-ins shown in the text area.
const (
	tabGlyph = '⇥'
	crGlyph  = '␍'
)

type lineEnding int

const (
	lineLF lineEnding = iota
	lineCRLF
)

func (e lineEnding) String() string {
	if e == lineCRLF {
		return "CRLF"
	}
	return "LF"
}

type editBuffer struct {
	shown  string
	ending lineEnding
	// readOnly is set when the text area cannot hold the text unchanged.
	readOnly bool
}

// newEditBuffer maps text for the text area. When every line ends in
// "\r\n" the buffer is edited with plain line breaks and saved with CRLF;
// otherwise each carriage return is kept as crGlyph.
func newEditBuffer(text string) editBuffer {
	b := editBuffer{ending: endingOf(text)}
	shown := text
	if b.ending == lineCRLF {
		shown = strings.ReplaceAll(shown, "\r\n", "\n")
	}
	b.shown = strings.NewReplacer("\t", string(tabGlyph), "\r", string(crGlyph)).Replace(shown)
	b.readOnly = !editable(text)
	return b
}

func endingOf(text string) lineEnding {
	lines := strings.Count(text, "\n")
	if lines > 0 && strings.Count(text, "\r\n") == lines {
		return lineCRLF
	}
	return lineLF
}

// editable reports whether text holds nothing the text area drops and
// none of the stand-in runes.
func editable(text string) bool {
	for _, r := range text {
		switch {
		case r == tabGlyph, r == crGlyph, r == utf8.RuneError:
			return false
		case r == '\n', r == '\r', r == '\t':
		case unicode.IsControl(r):
			return false
		}
	}
	return true
}

// fileText turns the text area value back into file text.
func (b editBuffer) fileText(value string) string {
	text := value
	if b.ending == lineCRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return strings.NewReplacer(string(tabGlyph), "\t", string(crGlyph), "\r").Replace(text)
}
