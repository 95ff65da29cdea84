//go:build !nogui

package gui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/host"
	"scribe/internal/language"
	"scribe/internal/shell"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.Storage.Dir = t.TempDir()
	cfg.Watch.Enabled = false
	return cfg
}

func startApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a := NewApp(test.NewApp(), cfg)
	require.NoError(t, a.Start(context.Background(), shell.OpenStores(cfg)))
	t.Cleanup(a.Close)
	return a
}

func menuLabels(items []*fyne.MenuItem) []string {
	var labels []string
	for _, it := range items {
		if it.IsSeparator {
			continue
		}
		labels = append(labels, it.Label)
	}
	return labels
}

func TestWindowLayout(t *testing.T) {
	cfg := testConfig(t)
	a := NewApp(test.NewApp(), cfg)

	root, ok := a.Window().Content().(*fyne.Container)
	require.True(t, ok, "window content should be a container")
	require.Len(t, root.Objects, 2)

	minSize := root.MinSize()
	assert.GreaterOrEqual(t, minSize.Width, float32(600))
	assert.GreaterOrEqual(t, minSize.Height, float32(400))

	main := a.Window().MainMenu()
	require.NotNil(t, main)
	var names []string
	for _, m := range main.Items {
		names = append(names, m.Label)
	}
	assert.Equal(t, []string{"File", "Edit", "View"}, names)
	assert.Equal(t,
		[]string{"New", "Open...", "Open Recent", "Reload", "Save", "Save As...", "Preferences...", "Quit"},
		menuLabels(main.Items[0].Items))
}

func TestStatusBar(t *testing.T) {
	test.NewApp()
	w := test.NewTempWindow(t, widget.NewLabel(""))
	s := newStatusBar(w)

	s.SetTitle("* a.txt - Scribe")
	s.SetStatus("File saved")
	s.SetPosition("Ln 2, Col 5")
	s.SetEncoding("UTF-16LE")
	s.SetLanguage("Python")

	assert.Equal(t, "* a.txt - Scribe", w.Title())
	assert.Equal(t, "File saved", s.status.Text)
	assert.Equal(t, "Ln 2, Col 5", s.position.Text)
	assert.Equal(t, "UTF-16LE", s.encoding.Text)
	assert.Equal(t, "Python", s.language.Text)
}

func TestEditor(t *testing.T) {
	test.NewApp()
	e := newEditor(false)

	e.SetText("hello")
	assert.Equal(t, "hello", e.Text())
	assert.False(t, e.WordWrap())

	e.SetWordWrap(true)
	assert.True(t, e.WordWrap())

	e.SetLanguage("python")
	assert.Equal(t, "python", string(e.Language()))
}

func TestRecentMenu(t *testing.T) {
	a := NewApp(test.NewApp(), testConfig(t))
	recentItems := func() []*fyne.MenuItem { return a.menu.recent.ChildMenu.Items }

	items := recentItems()
	assert.Equal(t, []string{"No recent files", "Clear Recent"}, menuLabels(items))
	assert.True(t, items[0].Disabled)
	assert.True(t, items[len(items)-1].Disabled)

	a.menu.SetRecentFiles([]string{"/a/one.txt", "/b/two.md"})
	items = recentItems()
	assert.Equal(t, []string{"/a/one.txt", "/b/two.md", "Clear Recent"}, menuLabels(items))
	assert.False(t, items[len(items)-1].Disabled)
	assert.Equal(t, []string{"/a/one.txt", "/b/two.md"}, a.menu.RecentFiles())
}

func TestStartRestoresPreferences(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.PreferencesPath(), []byte(`{"wordWrap": true, "fontSize": 20, "theme": "light"}`), 0644))

	a := startApp(t, cfg)
	assert.True(t, a.editor.WordWrap())
	assert.True(t, a.menu.wrap.Checked)
	assert.Equal(t, float32(20), a.fontSizeNow())
	assert.Equal(t, "light", a.themeName())
}

func TestPreferencesArePersisted(t *testing.T) {
	cfg := testConfig(t)
	a := startApp(t, cfg)
	stores := shell.OpenStores(cfg)

	a.setWordWrap(true)
	a.zoom(fontSizeStep)
	a.setTheme("light")

	stores.Preferences.Reload()
	prefs := stores.Preferences.All()
	assert.Equal(t, true, prefs[PrefWordWrap])
	assert.Equal(t, float64(cfg.Editor.FontSize+fontSizeStep), prefs[PrefFontSize])
	assert.Equal(t, "light", prefs[PrefTheme])

	a.zoom(0)
	assert.Equal(t, float32(cfg.Editor.FontSize), a.fontSizeNow())
}

func TestRecentFilesFollowHost(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0644))

	a := startApp(t, cfg)
	a.Shell().Host.SetLaunchFile(context.Background(), path)

	require.Eventually(t, func() bool { return a.editor.Text() == "hi" }, 3*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(a.menu.RecentFiles()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "notes.txt - Scribe", a.Window().Title())

	a.clearRecent()
	assert.Empty(t, a.menu.RecentFiles())
}

func TestFilterExtensions(t *testing.T) {
	assert.Nil(t, filterExtensions(nil))
	assert.Nil(t, filterExtensions(language.Filters()), "All Files first disables filtering")
	assert.Equal(t, []string{".txt", ".html", ".htm"}, filterExtensions([]language.Filter{
		{Name: "Text Files", Extensions: []string{"txt"}},
		{Name: "HTML Files", Extensions: []string{"html", "htm"}},
		{Name: "All Files", Extensions: []string{"*"}},
	}))
}

func TestWaitForDialog(t *testing.T) {
	ch := make(chan dialogResult, 1)
	ch <- dialogResult{path: "/x/y.txt"}
	path, err := wait(context.Background(), ch, func() {})
	require.NoError(t, err)
	assert.Equal(t, "/x/y.txt", path)

	ch <- dialogResult{}
	_, err = wait(context.Background(), ch, func() {})
	assert.ErrorIs(t, err, host.ErrCanceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hidden := false
	_, err = wait(ctx, ch, func() { hidden = true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, hidden)
}
