package tui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/errors"
	"scribe/internal/tui/common"
	"scribe/internal/tui/messages"
	"scribe/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActions struct {
	mu      sync.Mutex
	calls   []string
	opened  []string
	dirty   int
	cursors [][2]int
}

func (f *fakeActions) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeActions) New(context.Context) error    { f.record("new"); return nil }
func (f *fakeActions) Open(context.Context) error   { f.record("open"); return nil }
func (f *fakeActions) Save(context.Context) error   { f.record("save"); return nil }
func (f *fakeActions) SaveAs(context.Context) error { f.record("save-as"); return nil }
func (f *fakeActions) Reload(context.Context) error { f.record("reload"); return nil }
func (f *fakeActions) ClearRecent() error           { f.record("clear-recent"); return nil }
func (f *fakeActions) Close(context.Context)        { f.record("close") }

func (f *fakeActions) OpenRecent(_ context.Context, path string) error {
	f.mu.Lock()
	f.opened = append(f.opened, path)
	f.mu.Unlock()
	return nil
}

func (f *fakeActions) MarkDirty() {
	f.mu.Lock()
	f.dirty++
	f.mu.Unlock()
}

func (f *fakeActions) CursorMoved(line, col int) {
	f.mu.Lock()
	f.cursors = append(f.cursors, [2]int{line, col})
	f.mu.Unlock()
}

func (f *fakeActions) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestModel(t *testing.T) (*Model, *Bridge, *fakeActions) {
	t.Helper()
	b := NewBridge()
	fa := &fakeActions{}
	m := NewModel(context.Background(), config.New(), b, fa)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, b, fa
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

// refreshUntil applies bridge changes until cond holds.
func refreshUntil(t *testing.T, m *Model, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		m.Update(messages.RefreshMsg{})
		return cond()
	}, 3*time.Second, 5*time.Millisecond)
}

func TestNewModel(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, common.Editing, m.Mode())
	assert.Equal(t, "Untitled - Scribe", m.Title())
	assert.Equal(t, 4, m.tabSize)
	assert.Contains(t, m.View(), "^N new")
}

func TestTypingMarksDirtyAndMovesCursor(t *testing.T) {
	m, b, fa := newTestModel(t)

	typeText(m, "hi")

	assert.Equal(t, "hi", m.Text())
	assert.Equal(t, "hi", b.Text())
	assert.Equal(t, 2, fa.dirty)
	assert.Equal(t, [][2]int{{1, 2}, {1, 3}}, fa.cursors)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, [2]int{2, 1}, fa.cursors[len(fa.cursors)-1])
}

func TestTabInsertsSpaces(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "    ", m.Text())
}

func TestCommandKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyCtrlN, "new"},
		{tea.KeyCtrlO, "open"},
		{tea.KeyCtrlS, "save"},
		{tea.KeyCtrlA, "save-as"},
		{tea.KeyCtrlR, "reload"},
		{tea.KeyCtrlQ, "close"},
		{tea.KeyCtrlC, "close"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, _, fa := newTestModel(t)
			_, cmd := m.Update(tea.KeyMsg{Type: tt.key})
			require.NotNil(t, cmd)
			assert.Nil(t, cmd())
			assert.Equal(t, []string{tt.want}, fa.Calls())
			assert.Empty(t, m.Text(), "command keys never reach the text area")
		})
	}
}

func TestLoadReplacesText(t *testing.T) {
	m, b, fa := newTestModel(t)
	typeText(m, "old")
	dirty := fa.dirty

	b.SetText("one\ntwo\nthree")
	b.SetTitle("notes.txt - Scribe")
	b.SetPosition("Ln 1, Col 1")
	b.SetEncoding("UTF-8")
	b.SetStatusLanguage("Plain Text")
	m.Update(messages.RefreshMsg{})

	assert.Equal(t, "one\ntwo\nthree", m.Text())
	assert.Equal(t, 0, m.editor.Line())
	assert.Equal(t, dirty, fa.dirty, "loading is not an edit")
	assert.Equal(t, "notes.txt - Scribe", m.Title())

	out := m.View()
	assert.Contains(t, out, "notes.txt - Scribe")
	assert.Contains(t, out, "Ln 1, Col 1")
	assert.Contains(t, out, "UTF-8")
	assert.Contains(t, out, "Plain Text")

	// A second refresh keeps edits made since.
	typeText(m, "x")
	m.Update(messages.RefreshMsg{})
	assert.Equal(t, "xone\ntwo\nthree", m.Text())
}

func TestOpenPrompt(t *testing.T) {
	m, b, _ := newTestModel(t)

	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		p, err := b.OpenFile(context.Background(), nil)
		done <- result{p, err}
	}()

	refreshUntil(t, m, func() bool { return m.Mode() == common.Prompting })
	assert.Contains(t, m.View(), "Open file")

	typeText(m, "notes.txt")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, common.Editing, m.Mode())
	assert.Empty(t, m.Text(), "prompt keys never reach the text area")

	r := <-done
	require.NoError(t, r.err)
	want, _ := filepath.Abs("notes.txt")
	assert.Equal(t, want, r.path)
}

func TestSavePromptSuggestsName(t *testing.T) {
	m, b, _ := newTestModel(t)

	done := make(chan error, 1)
	go func() {
		_, err := b.SaveFile(context.Background(), "draft.md")
		done <- err
	}()

	refreshUntil(t, m, func() bool { return m.Mode() == common.Prompting })
	assert.Equal(t, "draft.md", m.input.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, errors.IsCanceled(<-done))
	assert.Equal(t, common.Editing, m.Mode())
}

func TestPromptCanceledByContext(t *testing.T) {
	m, b, _ := newTestModel(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := b.OpenFile(ctx, nil)
		done <- err
	}()
	refreshUntil(t, m, func() bool { return m.Mode() == common.Prompting })

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	refreshUntil(t, m, func() bool { return m.Mode() == common.Editing })
}

func TestConfirmDiscard(t *testing.T) {
	tests := []struct {
		key  string
		want view.Decision
	}{
		{"y", view.SaveFirst},
		{"n", view.Discard},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, b, _ := newTestModel(t)

			done := make(chan view.Decision, 1)
			go func() { done <- b.ConfirmDiscard(context.Background(), "notes.txt") }()

			refreshUntil(t, m, func() bool { return m.Mode() == common.Confirming })
			assert.Contains(t, m.View(), "Save changes to notes.txt?")

			m.Update(keyRunes("x"))
			assert.Equal(t, common.Confirming, m.Mode(), "other keys are ignored")

			m.Update(keyRunes(tt.key))
			assert.Equal(t, tt.want, <-done)
			assert.Equal(t, common.Editing, m.Mode())
		})
	}
}

func TestRecentPicker(t *testing.T) {
	m, b, fa := newTestModel(t)
	b.SetRecentFiles([]string{"/a/one.txt", "/b/two.md"})
	m.Update(messages.RefreshMsg{})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, common.PickingRecent, m.Mode())
	out := m.View()
	assert.Contains(t, out, "/a/one.txt")
	assert.Contains(t, out, "/b/two.md")

	_, cmd := m.Update(keyRunes("7"))
	assert.Nil(t, cmd)
	assert.Equal(t, common.PickingRecent, m.Mode())

	_, cmd = m.Update(keyRunes("2"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"/b/two.md"}, fa.opened)
	assert.Equal(t, common.Editing, m.Mode())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m.Update(keyRunes("c"))
	assert.Equal(t, []string{"clear-recent"}, fa.Calls())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, common.Editing, m.Mode())
}

func TestErrorMsg(t *testing.T) {
	m, b, _ := newTestModel(t)
	m.Update(messages.ErrorMsg{Err: errors.New("disk full")})
	assert.Equal(t, "disk full", m.status.Text())

	b.SetStatus("File saved")
	m.Update(messages.RefreshMsg{})
	assert.Equal(t, "File saved", m.status.Text())
}

func TestQuit(t *testing.T) {
	m, b, _ := newTestModel(t)
	b.Quit()
	_, cmd := m.Update(messages.RefreshMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBridgeNotifies(t *testing.T) {
	b := NewBridge()
	var n int
	b.SetNotify(func() { n++ })

	b.SetText("a")
	b.SetTitle("t")
	b.SetRecentFiles([]string{"/x"})
	assert.Equal(t, 3, n)

	s := b.snapshot()
	assert.True(t, s.textPending)
	assert.False(t, b.snapshot().textPending, "pending text is taken once")
	assert.Equal(t, []string{"/x"}, b.RecentFiles())
}

func TestEditKeepsTabsAndLineEndings(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys []tea.KeyMsg
		want string
	}{
		{
			name: "mixed endings and a tab",
			text: "all:\n\tgo build\r\nend",
			keys: []tea.KeyMsg{keyRunes("x")},
			want: "xall:\n\tgo build\r\nend",
		},
		{
			name: "tab line then crlf",
			text: "a\n\tb\r\nc",
			keys: []tea.KeyMsg{keyRunes("x")},
			want: "xa\n\tb\r\nc",
		},
		{
			name: "new lines follow crlf",
			text: "one\r\ntwo\r\n",
			keys: []tea.KeyMsg{keyRunes("x"), {Type: tea.KeyEnter}},
			want: "x\r\none\r\ntwo\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b, fa := newTestModel(t)
			b.SetText(tt.text)
			m.Update(messages.RefreshMsg{})
			for _, k := range tt.keys {
				m.Update(k)
			}
			assert.Equal(t, tt.want, b.Text())
			assert.Positive(t, fa.dirty)
		})
	}
}

func TestCRLFShownInStatusBar(t *testing.T) {
	m, b, _ := newTestModel(t)
	b.SetText("a\r\nb")
	m.Update(messages.RefreshMsg{})
	assert.Contains(t, m.View(), "CRLF")

	b.SetText("a\nb")
	m.Update(messages.RefreshMsg{})
	assert.NotContains(t, m.View(), "CRLF")
}

func TestControlCharactersMakeBufferReadOnly(t *testing.T) {
	m, b, fa := newTestModel(t)
	b.SetText("page one\fpage two")
	m.Update(messages.RefreshMsg{})
	assert.Contains(t, m.status.Text(), "Read-only")

	typeText(m, "x")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "page one\fpage two", b.Text())
	assert.Zero(t, fa.dirty)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, [][2]int{{1, 2}}, fa.cursors, "the cursor still moves")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"save"}, fa.Calls())
}

func TestTabInsertsTabWhenConfigured(t *testing.T) {
	cfg := config.New()
	cfg.Editor.InsertSpaces = false
	b := NewBridge()
	m := NewModel(context.Background(), cfg, b, &fakeActions{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "x")
	assert.Equal(t, "\tx", b.Text())
}
