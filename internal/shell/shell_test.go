package shell

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/view"
	"scribe/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dialogs struct{ open, save string }

func (d dialogs) OpenFile(context.Context, []language.Filter) (string, error) { return d.open, nil }
func (d dialogs) SaveFile(context.Context, string) (string, error)            { return d.save, nil }

type menu struct {
	mu    sync.Mutex
	paths []string
}

func (m *menu) SetRecentFiles(paths []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = paths
}

func (m *menu) get() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paths
}

type editor struct {
	mu   sync.Mutex
	text string
}

func (e *editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *editor) SetText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = s
}

func (e *editor) SetLanguage(types.Language) {}

type status struct {
	mu    sync.Mutex
	title string
}

func (s *status) SetTitle(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = t
}

func (s *status) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *status) SetStatus(string)   {}
func (s *status) SetPosition(string) {}
func (s *status) SetEncoding(string) {}
func (s *status) SetLanguage(string) {}

type confirmer struct{}

func (confirmer) ConfirmDiscard(context.Context, string) view.Decision { return view.Discard }

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.Storage.Dir = t.TempDir()
	cfg.Watch.Enabled = false
	return cfg
}

func TestOpenStores(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.PreferencesPath(), []byte(`{"theme":"light"}`), 0644))

	stores := OpenStores(cfg)
	assert.Empty(t, stores.Recent.List())
	assert.Equal(t, map[string]interface{}{"theme": "light"}, stores.Preferences.All())
	assert.Empty(t, stores.Mappings.All())
}

func TestEditSaveAndClose(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# title\n"), 0644))

	ed := &editor{}
	st := &status{}
	mn := &menu{}
	quit := make(chan struct{})

	s, err := Start(context.Background(), cfg, OpenStores(cfg), Frontend{
		Dialogs: dialogs{save: filepath.Join(dir, "copy.md")},
		Menu:    mn,
		Editor:  ed,
		Status:  st,
		Confirm: confirmer{},
		Quit:    func() { close(quit) },
	})
	require.NoError(t, err)
	defer s.Close()

	s.Host.SetLaunchFile(context.Background(), path)
	require.Eventually(t, func() bool { return ed.Text() == "# title\n" }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "notes.md - Scribe", st.get())
	require.Eventually(t, func() bool { return len(mn.get()) == 1 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{path}, mn.get())

	ed.SetText("# title\nbody\n")
	s.View.MarkDirty()
	require.NoError(t, s.View.Save(context.Background()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# title\nbody\n", string(data))

	require.NoError(t, s.View.SaveAs(context.Background()))
	assert.Equal(t, filepath.Join(dir, "copy.md"), s.View.Session().FilePath)
	assert.Equal(t, []string{filepath.Join(dir, "copy.md"), path}, mn.get())

	s.Host.RequestClose(context.Background())
	select {
	case <-quit:
	case <-time.After(3 * time.Second):
		t.Fatal("host did not quit after the view confirmed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	s, err := Start(context.Background(), cfg, OpenStores(cfg), Frontend{
		Dialogs: dialogs{},
		Editor:  &editor{},
		Status:  &status{},
	})
	require.NoError(t, err)
	s.Close()
	s.Close()
}
