//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the status line below the editor and sets the window
// title.
type StatusBar struct {
	window   fyne.Window
	status   *widget.Label
	position *widget.Label
	encoding *widget.Label
	language *widget.Label
}

func newStatusBar(w fyne.Window) *StatusBar {
	return &StatusBar{
		window:   w,
		status:   widget.NewLabel("Ready"),
		position: widget.NewLabel("Ln 1, Col 1"),
		encoding: widget.NewLabel("UTF-8"),
		language: widget.NewLabel("Plain Text"),
	}
}

func (s *StatusBar) SetTitle(title string)   { s.window.SetTitle(title) }
func (s *StatusBar) SetStatus(text string)   { s.status.SetText(text) }
func (s *StatusBar) SetPosition(text string) { s.position.SetText(text) }
func (s *StatusBar) SetEncoding(text string) { s.encoding.SetText(text) }
func (s *StatusBar) SetLanguage(text string) { s.language.SetText(text) }

// Widget lays the fields out: status on the left, the rest on the right.
func (s *StatusBar) Widget() fyne.CanvasObject {
	return container.NewHBox(
		s.status,
		layout.NewSpacer(),
		s.position,
		widget.NewSeparator(),
		s.encoding,
		widget.NewSeparator(),
		s.language,
	)
}
