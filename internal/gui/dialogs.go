//go:build !nogui

package gui

import (
	"context"
	"fmt"

	"scribe/internal/host"
	"scribe/internal/language"
	"scribe/internal/view"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Dialogs shows fyne file and confirm dialogs over the main window. Each
// call blocks until the user answers or ctx is done.
type Dialogs struct {
	window fyne.Window
}

type dialogResult struct {
	path string
	err  error
}

func (d *Dialogs) OpenFile(ctx context.Context, filters []language.Filter) (string, error) {
	result := make(chan dialogResult, 1)
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			result <- dialogResult{err: err}
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		result <- dialogResult{path: path}
	}, d.window)
	if exts := filterExtensions(filters); len(exts) > 0 {
		fd.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	fd.Show()
	return wait(ctx, result, fd.Hide)
}

func (d *Dialogs) SaveFile(ctx context.Context, suggested string) (string, error) {
	result := make(chan dialogResult, 1)
	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			result <- dialogResult{err: err}
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		result <- dialogResult{path: path}
	}, d.window)
	fd.SetFileName(suggested)
	fd.Show()
	return wait(ctx, result, fd.Hide)
}

func wait(ctx context.Context, result <-chan dialogResult, hide func()) (string, error) {
	select {
	case r := <-result:
		if r.err != nil {
			return "", r.err
		}
		if r.path == "" {
			return "", host.ErrCanceled
		}
		return r.path, nil
	case <-ctx.Done():
		hide()
		return "", ctx.Err()
	}
}

// ConfirmDiscard asks whether to save the named file before its changes
// are dropped.
func (d *Dialogs) ConfirmDiscard(ctx context.Context, name string) view.Decision {
	answer := make(chan bool, 1)
	msg := widget.NewLabel(fmt.Sprintf("Do you want to save the changes you made to %s?", name))
	cd := dialog.NewCustomConfirm("Unsaved changes", "Save", "Discard", msg, func(save bool) {
		answer <- save
	}, d.window)
	cd.Show()

	select {
	case save := <-answer:
		if save {
			return view.SaveFirst
		}
		return view.Discard
	case <-ctx.Done():
		cd.Hide()
		return view.Discard
	}
}

// filterExtensions flattens the filter groups into one extension list for
// fyne's single filter. A leading "*" group means no filtering.
func filterExtensions(filters []language.Filter) []string {
	if len(filters) == 0 {
		return nil
	}
	var exts []string
	for i, f := range filters {
		for _, ext := range f.Extensions {
			if ext == "*" {
				if i == 0 {
					return nil
				}
				continue
			}
			exts = append(exts, "."+ext)
		}
	}
	return exts
}
