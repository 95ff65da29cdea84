//go:build !nogui

package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Menu is the window's main menu. It implements host.Menu so the Open
// Recent submenu follows the recent-files list.
type Menu struct {
	main   *fyne.MainMenu
	recent *fyne.MenuItem
	wrap   *fyne.MenuItem
	open   func(path string)
	clear  func()

	mu    sync.Mutex
	paths []string
}

func shortcut(key fyne.KeyName, mod fyne.KeyModifier) *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault | mod}
}

// buildMenu creates the File, Edit and View menus and registers their
// keyboard shortcuts on the window canvas.
func (a *App) buildMenu() *Menu {
	m := &Menu{
		recent: fyne.NewMenuItem("Open Recent", nil),
		open:   a.openRecent,
		clear:  a.clearRecent,
	}
	m.recent.ChildMenu = fyne.NewMenu("")

	item := func(label string, sc *desktop.CustomShortcut, action func()) *fyne.MenuItem {
		mi := fyne.NewMenuItem(label, action)
		if sc != nil {
			mi.Shortcut = sc
			a.window.Canvas().AddShortcut(sc, func(fyne.Shortcut) { action() })
		}
		return mi
	}

	quit := fyne.NewMenuItem("Quit", a.requestClose)
	quit.IsQuit = true

	file := fyne.NewMenu("File",
		item("New", shortcut(fyne.KeyN, 0), a.menuNew),
		item("Open...", shortcut(fyne.KeyO, 0), a.showOpen),
		m.recent,
		item("Reload", shortcut(fyne.KeyR, 0), a.menuReload),
		fyne.NewMenuItemSeparator(),
		item("Save", shortcut(fyne.KeyS, 0), a.menuSave),
		item("Save As...", shortcut(fyne.KeyS, fyne.KeyModifierShift), a.menuSaveAs),
		fyne.NewMenuItemSeparator(),
		item("Preferences...", shortcut(fyne.KeyComma, 0), a.showSettings),
		fyne.NewMenuItemSeparator(),
		quit,
	)

	edit := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Cut", func() { a.typeShortcut(&fyne.ShortcutCut{Clipboard: a.window.Clipboard()}) }),
		fyne.NewMenuItem("Copy", func() { a.typeShortcut(&fyne.ShortcutCopy{Clipboard: a.window.Clipboard()}) }),
		fyne.NewMenuItem("Paste", func() { a.typeShortcut(&fyne.ShortcutPaste{Clipboard: a.window.Clipboard()}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select All", func() { a.typeShortcut(&fyne.ShortcutSelectAll{}) }),
	)

	m.wrap = fyne.NewMenuItem("Word Wrap", nil)
	m.wrap.Checked = a.editor.WordWrap()
	m.wrap.Action = func() {
		a.setWordWrap(!a.editor.WordWrap())
	}

	viewMenu := fyne.NewMenu("View",
		m.wrap,
		fyne.NewMenuItemSeparator(),
		item("Zoom In", shortcut(fyne.KeyEqual, 0), func() { a.zoom(fontSizeStep) }),
		item("Zoom Out", shortcut(fyne.KeyMinus, 0), func() { a.zoom(-fontSizeStep) }),
		item("Reset Zoom", shortcut(fyne.Key0, 0), func() { a.zoom(0) }),
	)

	m.main = fyne.NewMainMenu(file, edit, viewMenu)
	m.rebuild()
	return m
}

// SetRecentFiles replaces the Open Recent entries.
func (m *Menu) SetRecentFiles(paths []string) {
	m.mu.Lock()
	m.paths = append([]string(nil), paths...)
	m.mu.Unlock()
	m.rebuild()
	m.main.Refresh()
}

// RecentFiles returns the paths currently listed.
func (m *Menu) RecentFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func (m *Menu) rebuild() {
	paths := m.RecentFiles()

	items := make([]*fyne.MenuItem, 0, len(paths)+2)
	for _, p := range paths {
		path := p
		items = append(items, fyne.NewMenuItem(path, func() { m.open(path) }))
	}
	if len(items) == 0 {
		empty := fyne.NewMenuItem("No recent files", nil)
		empty.Disabled = true
		items = append(items, empty)
	}
	clearItem := fyne.NewMenuItem("Clear Recent", m.clear)
	clearItem.Disabled = len(paths) == 0
	items = append(items, fyne.NewMenuItemSeparator(), clearItem)

	m.recent.ChildMenu.Items = items
}

func (m *Menu) setWordWrap(on bool) {
	m.wrap.Checked = on
	m.main.Refresh()
}
