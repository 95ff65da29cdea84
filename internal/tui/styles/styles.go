package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the terminal styles for one color scheme.
type Theme struct {
	Title       lipgloss.Style
	Status      lipgloss.Style
	StatusField lipgloss.Style
	Error       lipgloss.Style
	Prompt      lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
}

// Dark is the default scheme.
func Dark() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		StatusField: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			Background(lipgloss.Color("#3C3C3C")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B61FF")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}

// Light suits terminals with a light background.
func Light() Theme {
	t := Dark()
	t.Title = t.Title.Background(lipgloss.Color("#7B61FF"))
	t.Status = t.Status.Foreground(lipgloss.Color("#555555"))
	t.StatusField = t.StatusField.
		Foreground(lipgloss.Color("#222222")).
		Background(lipgloss.Color("#DADADA"))
	t.Error = t.Error.Foreground(lipgloss.Color("#C00000"))
	t.Selected = t.Selected.Foreground(lipgloss.Color("#1B7F3B"))
	t.Muted = t.Muted.Foreground(lipgloss.Color("#888888"))
	return t
}

// ForName returns the scheme called name, Dark for anything unknown.
func ForName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}
