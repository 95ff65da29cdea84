package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New    key.Binding
	Open   key.Binding
	Save   key.Binding
	SaveAs key.Binding
	Reload key.Binding
	Recent key.Binding
	Quit   key.Binding
}

// The text area binds ctrl+a, ctrl+e and ctrl+n itself; these are matched
// before it sees the key.
func defaultKeyMap() keyMap {
	return keyMap{
		New:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^N", "new")),
		Open:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^O", "open")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "save")),
		SaveAs: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("^A", "save as")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "reload")),
		Recent: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^L", "recent")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("^Q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Save, k.SaveAs, k.Reload, k.Recent, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
