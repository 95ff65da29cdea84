package components

import (
	"strings"

	"scribe/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the bottom line: the status message on the left, cursor
// position, encoding and language on the right.
type StatusBar struct {
	theme    styles.Theme
	text     string
	err      string
	position string
	encoding string
	language string
	flags    []string
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.err = ""
}

// SetError shows text in the error style until the next SetText.
func (s *StatusBar) SetError(text string) {
	s.err = text
}

func (s *StatusBar) SetFields(position, encoding, language string) {
	s.position = position
	s.encoding = encoding
	s.language = language
}

// SetFlags sets markers about the buffer, such as its line ending, shown
// before the fields.
func (s *StatusBar) SetFlags(flags ...string) {
	s.flags = flags
}

func (s *StatusBar) Text() string {
	if s.err != "" {
		return s.err
	}
	return s.text
}

func (s *StatusBar) View(width int) string {
	var fields []string
	for _, f := range s.flags {
		fields = append(fields, s.theme.Muted.Render(f))
	}
	for _, f := range []string{s.position, s.encoding, s.language} {
		if f != "" {
			fields = append(fields, s.theme.StatusField.Render(f))
		}
	}
	right := strings.Join(fields, " ")

	left := s.theme.Status.Render(s.text)
	if s.err != "" {
		left = s.theme.Error.Render(s.err)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
