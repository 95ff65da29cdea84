package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileRecord is a decoded file plus the metadata the view needs to show it.
// The host produces it on open and reload; it is never persisted as a unit.
type FileRecord struct {
	Path     string   `json:"filePath"`
	Content  string   `json:"content"`
	Encoding Encoding `json:"encoding"`
	Language Language `json:"language"`
	Size     int64    `json:"size"`
}

// Name returns the base name of the file
func (f *FileRecord) Name() string {
	return filepath.Base(f.Path)
}

// String returns a human-readable representation
func (f *FileRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", f.Path))
	sb.WriteString(fmt.Sprintf("Encoding: %s\n", f.Encoding))
	sb.WriteString(fmt.Sprintf("Language: %s\n", f.Language))
	sb.WriteString(fmt.Sprintf("Size: %d bytes\n", f.Size))
	return sb.String()
}
