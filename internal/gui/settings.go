//go:build !nogui

package gui

import (
	"io"
	"strings"

	"scribe/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettings opens the Preferences window: editor settings and the
// pattern to language overrides.
func (a *App) showSettings() {
	w := a.fyneApp.NewWindow("Preferences")

	// --- Editor Settings ---
	wrapCheck := widget.NewCheck("Wrap long lines", func(on bool) {
		a.setWordWrap(on)
	})
	wrapCheck.SetChecked(a.editor.WordWrap())

	themeSelect := widget.NewSelect([]string{"dark", "light"}, func(name string) {
		a.setTheme(name)
	})
	themeSelect.SetSelected(a.themeName())

	editorCard := widget.NewCard("Editor", "", container.NewVBox(
		wrapCheck,
		container.NewHBox(widget.NewLabel("Theme:"), themeSelect),
	))

	// --- Format Mappings ---
	mappings, err := a.shell.View.FormatMappings(a.ctx)
	if err != nil {
		a.ShowError("Cannot load format mappings", err)
		mappings = map[string]string{}
	}
	rows := mappingRows(mappings)
	selected := -1

	list := widget.NewList(
		func() int { return len(rows) },
		func() fyne.CanvasObject { return widget.NewLabel("Template") },
		func(i widget.ListItemID, o fyne.CanvasObject) { o.(*widget.Label).SetText(rows[i]) },
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }
	list.OnUnselected = func(widget.ListItemID) { selected = -1 }

	apply := func(next map[string]string) {
		if err := a.shell.View.SetFormatMappings(a.ctx, next); err != nil {
			a.ShowError("Cannot save format mappings", err)
			return
		}
		mappings = next
		rows = mappingRows(mappings)
		selected = -1
		list.UnselectAll()
		list.Refresh()
	}

	patternEntry := widget.NewEntry()
	patternEntry.SetPlaceHolder("*.conf or .tmpl")
	langSelect := widget.NewSelect(languageOptions(), nil)
	langSelect.PlaceHolder = "Language"

	addButton := widget.NewButton("Add", func() {
		pattern := strings.TrimSpace(patternEntry.Text)
		if pattern == "" || langSelect.Selected == "" {
			a.ShowInfo("Enter a pattern and choose a language.")
			return
		}
		next := copyMappings(mappings)
		next[pattern] = langSelect.Selected
		apply(next)
		patternEntry.SetText("")
	})

	removeButton := widget.NewButton("Remove Selected", func() {
		patterns := sortedPatterns(mappings)
		if selected < 0 || selected >= len(patterns) {
			a.ShowInfo("Please select a mapping to remove.")
			return
		}
		next := copyMappings(mappings)
		delete(next, patterns[selected])
		apply(next)
	})

	importButton := widget.NewButton("Import...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()

			data, err := io.ReadAll(reader)
			if err != nil {
				a.ShowError("Import Failed", err)
				return
			}
			imported, err := parseMappings(reader.URI().Name(), data)
			if err != nil {
				a.ShowError("Import Failed", err)
				return
			}
			apply(imported)
			log.LogWithFields(log.F("count", len(imported))).Info("Imported format mappings")
		}, w)
	})

	exportButton := widget.NewButton("Export...", func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()

			format := "yaml"
			if writer.URI().Extension() == ".json" {
				format = "json"
			}
			data, err := exportMappings(mappings, format)
			if err == nil {
				_, err = writer.Write(data)
			}
			if err != nil {
				a.ShowError("Export Failed", err)
			}
		}, w)
	})

	mappingsCard := widget.NewCard("Format Mappings", "Files matching a pattern open in the chosen language", container.NewBorder(
		container.NewBorder(nil, nil, nil, container.NewHBox(langSelect, addButton), patternEntry),
		container.NewHBox(removeButton, importButton, exportButton),
		nil, nil,
		container.NewScroll(list),
	))

	w.SetContent(container.NewBorder(editorCard, nil, nil, nil, mappingsCard))
	w.Resize(fyne.NewSize(520, 460))
	w.Show()
}

func copyMappings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
