//go:build !nogui

// Package gui is the desktop front-end: a fyne window with a native main
// menu, file dialogs and a multi-line entry as the editing widget.
package gui

import (
	"context"
	"image/color"
	"sync"

	"scribe/internal/config"
	"scribe/internal/log"
	"scribe/internal/shell"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// Preference keys written by the GUI.
const (
	PrefWordWrap = "wordWrap"
	PrefFontSize = "fontSize"
	PrefTheme    = "theme"
)

// App is the GUI application
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     *config.Config

	editor  *Editor
	status  *StatusBar
	dialogs *Dialogs
	menu    *Menu

	ctx   context.Context
	shell *shell.Shell

	mu       sync.Mutex
	theme    string
	fontSize float32
}

// NewApp builds the main window on fyneApp.
func NewApp(fyneApp fyne.App, cfg *config.Config) *App {
	a := &App{
		fyneApp:  fyneApp,
		cfg:      cfg,
		window:   fyneApp.NewWindow("Untitled - Scribe"),
		theme:    cfg.Editor.Theme,
		fontSize: float32(cfg.Editor.FontSize),
		ctx:      context.Background(),
	}
	a.editor = newEditor(cfg.Editor.WordWrap)
	a.status = newStatusBar(a.window)
	a.dialogs = &Dialogs{window: a.window}
	a.menu = a.buildMenu()
	a.window.SetMainMenu(a.menu.main)

	// fyne has no minimum window size; a transparent rectangle behind the
	// content keeps the layout from shrinking below it.
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(float32(cfg.Window.MinWidth), float32(cfg.Window.MinHeight)))
	content := container.NewBorder(nil, a.status.Widget(), nil, nil, a.editor.Widget())
	a.window.SetContent(container.NewStack(minSize, content))
	a.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	a.applyTheme()
	return a
}

// Start connects the window to a host and view and restores the saved
// preferences.
func (a *App) Start(ctx context.Context, stores shell.Stores) error {
	s, err := shell.Start(ctx, a.cfg, stores, shell.Frontend{
		Dialogs: a.dialogs,
		Menu:    a.menu,
		Editor:  a.editor,
		Status:  a.status,
		Confirm: a.dialogs,
		Quit:    a.fyneApp.Quit,
	})
	if err != nil {
		return err
	}
	a.ctx = ctx
	a.shell = s

	a.editor.OnChanged(s.View.MarkDirty)
	a.editor.OnCursorChanged(s.View.CursorMoved)
	a.window.SetCloseIntercept(a.requestClose)
	a.restorePreferences()
	return nil
}

// Close stops the host and view.
func (a *App) Close() {
	if a.shell != nil {
		a.shell.Close()
	}
}

// Window returns the main window.
func (a *App) Window() fyne.Window {
	return a.window
}

// Shell returns the running host/view pair, nil before Start.
func (a *App) Shell() *shell.Shell {
	return a.shell
}

// Run shows the editor window and blocks until it is closed.
func Run(ctx context.Context, opts Options) error {
	a := NewApp(app.NewWithID("io.github.scribe"), opts.Config)
	if err := a.Start(ctx, opts.Stores); err != nil {
		return err
	}
	defer a.Close()

	a.shell.Host.SetLaunchFile(ctx, opts.Launch)
	if opts.Instance != nil {
		go func() {
			if err := opts.Instance.Serve(ctx, a.openForwarded); err != nil {
				log.LogWithError(err).Warn("Single-instance listener stopped")
			}
		}()
	}

	a.window.ShowAndRun()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

func (a *App) openForwarded(ctx context.Context, path string) {
	a.shell.Host.SetLaunchFile(ctx, path)
	a.window.RequestFocus()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Warn(title)
	dialog.ShowError(err, a.window)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.window)
}

// Menu actions. Anything that may open a dialog runs off the UI goroutine,
// because the dialog's answer arrives on it.

func (a *App) menuNew()    { a.emit(a.shell.Host.MenuNew) }
func (a *App) menuSave()   { a.emit(a.shell.Host.MenuSave) }
func (a *App) menuSaveAs() { a.emit(a.shell.Host.MenuSaveAs) }
func (a *App) menuReload() { a.emit(a.shell.Host.MenuReload) }

func (a *App) emit(fn func(context.Context) error) {
	if a.shell == nil {
		return
	}
	if err := fn(a.ctx); err != nil {
		log.LogWithError(err).Warn("Cannot reach the editor view")
	}
}

func (a *App) showOpen() {
	if a.shell == nil {
		return
	}
	go func() {
		if err := a.shell.Host.ShowOpenDialog(a.ctx); err != nil {
			a.ShowError("Cannot open file", err)
		}
	}()
}

func (a *App) openRecent(path string) {
	if a.shell == nil {
		return
	}
	go func() {
		if err := a.shell.Host.OpenRecent(a.ctx, path); err != nil {
			a.ShowError("Cannot open file", err)
		}
	}()
}

func (a *App) clearRecent() {
	if a.shell == nil {
		return
	}
	if err := a.shell.Host.ClearRecent(); err != nil {
		a.ShowError("Cannot clear recent files", err)
	}
}

func (a *App) requestClose() {
	if a.shell == nil {
		a.fyneApp.Quit()
		return
	}
	go a.shell.Host.RequestClose(a.ctx)
}

func (a *App) typeShortcut(s fyne.Shortcut) {
	if target, ok := a.window.Canvas().Focused().(fyne.Shortcutable); ok {
		target.TypedShortcut(s)
	}
}

func (a *App) setWordWrap(on bool) {
	a.editor.SetWordWrap(on)
	a.menu.setWordWrap(on)
	a.savePreference(PrefWordWrap, on)
}

// zoom changes the text size by delta points; zero resets it to the
// configured size.
func (a *App) zoom(delta float32) {
	a.mu.Lock()
	if delta == 0 {
		a.fontSize = float32(a.cfg.Editor.FontSize)
	} else {
		a.fontSize = clampFontSize(a.fontSize + delta)
	}
	size := a.fontSize
	a.mu.Unlock()

	a.applyTheme()
	a.savePreference(PrefFontSize, size)
}

func (a *App) setTheme(name string) {
	a.mu.Lock()
	a.theme = name
	a.mu.Unlock()
	a.applyTheme()
	a.savePreference(PrefTheme, name)
}

func (a *App) themeName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

func (a *App) fontSizeNow() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fontSize
}

func (a *App) applyTheme() {
	a.mu.Lock()
	t := newEditorTheme(a.theme, a.fontSize)
	a.mu.Unlock()
	a.fyneApp.Settings().SetTheme(t)
}

func (a *App) savePreference(key string, value interface{}) {
	if a.shell == nil {
		return
	}
	if err := a.shell.View.SetPreference(a.ctx, key, value); err != nil {
		log.LogWithError(err).Warn("Cannot save preference")
	}
}

// restorePreferences applies the saved word wrap, zoom and theme over the
// configured defaults.
func (a *App) restorePreferences() {
	prefs, err := a.shell.View.Preferences(a.ctx)
	if err != nil {
		log.LogWithError(err).Warn("Cannot load preferences")
		return
	}
	if on, ok := prefs[PrefWordWrap].(bool); ok {
		a.editor.SetWordWrap(on)
		a.menu.setWordWrap(on)
	}

	a.mu.Lock()
	if size, ok := prefs[PrefFontSize].(float64); ok {
		a.fontSize = clampFontSize(float32(size))
	}
	if name, ok := prefs[PrefTheme].(string); ok && (name == "dark" || name == "light") {
		a.theme = name
	}
	a.mu.Unlock()
	a.applyTheme()
}
