package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditBuffer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		shown    string
		ending   lineEnding
		readOnly bool
	}{
		{"plain", "a\nb\n", "a\nb\n", lineLF, false},
		{"crlf", "a\r\nb\r\n", "a\nb\n", lineCRLF, false},
		{"mixed", "a\r\nb\n", "a␍\nb\n", lineLF, false},
		{"lone cr", "a\rb", "a␍b", lineLF, false},
		{"tabs", "\tx\t", "⇥x⇥", lineLF, false},
		{"form feed", "a\fb", "a\fb", lineLF, true},
		{"replacement rune", "a�b", "a�b", lineLF, true},
		{"tab glyph in file", "a⇥b", "a⇥b", lineLF, true},
		{"empty", "", "", lineLF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newEditBuffer(tt.text)
			assert.Equal(t, tt.shown, b.shown)
			assert.Equal(t, tt.ending, b.ending)
			assert.Equal(t, tt.readOnly, b.readOnly)
			if !tt.readOnly {
				assert.Equal(t, tt.text, b.fileText(b.shown))
			}
		})
	}
}
