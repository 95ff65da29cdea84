//go:build !nogui

package gui

import (
	"sync"

	"scribe/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Editor adapts a multi-line entry to view.Editor.
type Editor struct {
	entry *widget.Entry

	mu   sync.Mutex
	lang types.Language
}

func newEditor(wordWrap bool) *Editor {
	entry := widget.NewMultiLineEntry()
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	entry.SetPlaceHolder("Start typing or open a file")
	e := &Editor{entry: entry, lang: types.LanguagePlainText}
	e.SetWordWrap(wordWrap)
	return e
}

func (e *Editor) Text() string {
	return e.entry.Text
}

func (e *Editor) SetText(text string) {
	e.entry.SetText(text)
}

// SetLanguage records the language of the buffer. The entry has no syntax
// highlighting, so nothing else changes.
func (e *Editor) SetLanguage(lang types.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lang = lang
}

// Language is the tag last set by the controller.
func (e *Editor) Language() types.Language {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lang
}

// SetWordWrap toggles wrapping of long lines.
func (e *Editor) SetWordWrap(on bool) {
	if on {
		e.entry.Wrapping = fyne.TextWrapWord
	} else {
		e.entry.Wrapping = fyne.TextWrapOff
	}
	e.entry.Refresh()
}

// WordWrap reports whether long lines wrap.
func (e *Editor) WordWrap() bool {
	return e.entry.Wrapping == fyne.TextWrapWord
}

// OnChanged and OnCursorChanged route entry callbacks to the controller.
func (e *Editor) OnChanged(fn func()) {
	e.entry.OnChanged = func(string) { fn() }
}

func (e *Editor) OnCursorChanged(fn func(line, col int)) {
	e.entry.OnCursorChanged = func() {
		fn(e.entry.CursorRow+1, e.entry.CursorColumn+1)
	}
}

// Widget is the canvas object placed in the window.
func (e *Editor) Widget() fyne.CanvasObject {
	return e.entry
}
