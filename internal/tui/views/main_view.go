package views

import (
	"fmt"
	"strings"

	"scribe/internal/tui/common"
	"scribe/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ModelReader is the part of the model the views render.
type ModelReader interface {
	Mode() common.Mode
	Title() string
	EditorView() string
	StatusView() string
	PromptView() string
	ConfirmName() string
	RecentFiles() []string
	HelpView() string
	Theme() styles.Theme
}

// RenderMainView lays out the title line, the editor and the status bar,
// followed by the line the current mode needs.
func RenderMainView(m ModelReader) string {
	t := m.Theme()
	parts := []string{
		t.Title.Render(m.Title()),
		m.EditorView(),
		m.StatusView(),
	}

	switch m.Mode() {
	case common.Prompting:
		parts = append(parts, m.PromptView())
	case common.Confirming:
		parts = append(parts, RenderConfirm(t, m.ConfirmName()))
	case common.PickingRecent:
		parts = append(parts, RenderRecent(t, m.RecentFiles()))
	default:
		parts = append(parts, m.HelpView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderConfirm asks whether to save name before its changes are dropped.
func RenderConfirm(t styles.Theme, name string) string {
	return t.Prompt.Render(fmt.Sprintf("Save changes to %s? ", name)) +
		t.Muted.Render("[y] Save  [n] Discard")
}

// RenderRecent numbers the recent files for the picker.
func RenderRecent(t styles.Theme, paths []string) string {
	var sb strings.Builder
	sb.WriteString(t.Prompt.Render("Open Recent"))
	sb.WriteString("\n")
	if len(paths) == 0 {
		sb.WriteString(t.Muted.Render("  No recent files"))
		sb.WriteString("\n")
	}
	for i, p := range paths {
		if i >= 9 {
			break
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", t.Selected.Render(fmt.Sprintf("[%d]", i+1)), p))
	}
	sb.WriteString(t.Muted.Render("[1-9] Open  [c] Clear  [Esc] Back"))
	return sb.String()
}
