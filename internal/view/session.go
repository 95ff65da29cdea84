package view

import (
	"path/filepath"

	"scribe/pkg/types"
)

// AppName is shown in the window title.
const AppName = "Scribe"

// Session is the state of the document being edited. It lives only as long
// as the view.
type Session struct {
	FilePath string
	Encoding types.Encoding
	Language types.Language
	Dirty    bool
}

// NewSession returns the state of an empty, unsaved buffer.
func NewSession() Session {
	return Session{
		Encoding: types.DefaultEncoding,
		Language: types.LanguagePlainText,
	}
}

// Name is the base name of the file, or "Untitled".
func (s Session) Name() string {
	if s.FilePath == "" {
		return "Untitled"
	}
	return filepath.Base(s.FilePath)
}

// Title is the window title, e.g. "* notes.txt - Scribe".
func (s Session) Title() string {
	prefix := ""
	if s.Dirty {
		prefix = "* "
	}
	return prefix + s.Name() + " - " + AppName
}

// SuggestedName is offered to the save dialog.
func (s Session) SuggestedName() string {
	if s.FilePath == "" {
		return "untitled.txt"
	}
	return filepath.Base(s.FilePath)
}
