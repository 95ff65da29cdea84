// Package tui is the terminal front-end: a bubbletea program with a text
// area, a status line and a prompt line standing in for the file dialogs.
package tui

import (
	"context"
	"strings"

	"scribe/internal/config"
	"scribe/internal/errors"
	"scribe/internal/tui/common"
	"scribe/internal/tui/components"
	"scribe/internal/tui/messages"
	"scribe/internal/tui/styles"
	"scribe/internal/tui/views"
	"scribe/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Actions are the menu commands and editor notifications the model sends
// to the host and view.
type Actions interface {
	New(ctx context.Context) error
	Open(ctx context.Context) error
	Save(ctx context.Context) error
	SaveAs(ctx context.Context) error
	Reload(ctx context.Context) error
	OpenRecent(ctx context.Context, path string) error
	ClearRecent() error
	Close(ctx context.Context)
	MarkDirty()
	CursorMoved(line, col int)
}

// Lines taken by the title, status and footer around the text area.
const chromeHeight = 4

type Model struct {
	ctx     context.Context
	bridge  *Bridge
	actions Actions
	theme   styles.Theme
	tabSize int

	// insertTabs makes the Tab key insert a tab instead of spaces
	insertTabs bool
	readOnly   bool

	keys   keyMap
	help   help.Model
	editor textarea.Model
	input  textinput.Model
	status *components.StatusBar

	mode    common.Mode
	prompt  *promptRequest
	confirm *confirmRequest
	recent  []string
	title   string

	width, height     int
	lastLine, lastCol int
}

// NewModel builds the model over bridge. Key commands go to actions.
func NewModel(ctx context.Context, cfg *config.Config, bridge *Bridge, actions Actions) *Model {
	theme := styles.ForName(cfg.Editor.Theme)

	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Placeholder = ""
	ta.Focus()

	in := textinput.New()

	tabSize := cfg.Editor.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}

	return &Model{
		ctx:        ctx,
		bridge:     bridge,
		actions:    actions,
		theme:      theme,
		tabSize:    tabSize,
		insertTabs: !cfg.Editor.InsertSpaces,
		keys:       defaultKeyMap(),
		help:       help.New(),
		editor:     ta,
		input:      in,
		status:     components.NewStatusBar(theme),
		title:      "Untitled - Scribe",
		lastLine:   1,
		lastCol:    1,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, func() tea.Msg { return messages.RefreshMsg{} })
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case messages.RefreshMsg:
		return m, m.refresh()
	case messages.ErrorMsg:
		m.status.SetError(msg.Err.Error())
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	if m.mode == common.Prompting {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.editor.SetWidth(width)
	if h := height - chromeHeight; h > 0 {
		m.editor.SetHeight(h)
	}
	m.input.Width = width - len(m.input.Prompt) - 1
	m.help.Width = width
}

// refresh applies the bridge state changed by the host or view.
func (m *Model) refresh() tea.Cmd {
	s := m.bridge.snapshot()
	if s.quit {
		return tea.Quit
	}

	if s.textPending {
		m.editor.SetValue(s.buf.shown)
		for m.editor.Line() > 0 {
			m.editor.CursorUp()
		}
		m.editor.CursorStart()
		m.lastLine, m.lastCol = 1, 1
		m.readOnly = s.buf.readOnly
		m.status.SetFlags(bufferFlags(s.buf)...)
	}
	if s.title != "" {
		m.title = s.title
	}
	m.status.SetText(s.status)
	m.status.SetFields(s.position, s.encoding, s.language)
	if s.textPending && m.readOnly {
		m.status.SetError("Read-only: the file has control characters this editor cannot keep")
	}
	m.recent = s.recent

	switch {
	case s.confirm != nil && m.confirm != s.confirm:
		m.confirm = s.confirm
		m.setMode(common.Confirming)
	case s.confirm == nil && m.mode == common.Confirming:
		m.confirm = nil
		m.setMode(common.Editing)
	}

	switch {
	case s.prompt != nil && m.prompt != s.prompt && m.mode != common.Confirming:
		m.prompt = s.prompt
		m.input.Prompt = s.prompt.label + ": "
		m.input.SetValue(s.prompt.value)
		m.input.CursorEnd()
		m.setMode(common.Prompting)
	case s.prompt == nil && m.mode == common.Prompting:
		m.prompt = nil
		m.setMode(common.Editing)
	}
	return nil
}

func (m *Model) setMode(mode common.Mode) {
	m.mode = mode
	if mode == common.Prompting {
		m.editor.Blur()
		m.input.Focus()
		return
	}
	m.input.Blur()
	if mode == common.Editing {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case common.Prompting:
		return m.handlePromptKeys(msg)
	case common.Confirming:
		return m.handleConfirmKeys(msg)
	case common.PickingRecent:
		return m.handleRecentKeys(msg)
	default:
		return m.handleEditingKeys(msg)
	}
}

func (m *Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		return m, m.run(m.actions.New)
	case key.Matches(msg, m.keys.Open):
		return m, m.run(m.actions.Open)
	case key.Matches(msg, m.keys.Save):
		return m, m.run(m.actions.Save)
	case key.Matches(msg, m.keys.SaveAs):
		return m, m.run(m.actions.SaveAs)
	case key.Matches(msg, m.keys.Reload):
		return m, m.run(m.actions.Reload)
	case key.Matches(msg, m.keys.Recent):
		m.setMode(common.PickingRecent)
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg {
			m.actions.Close(m.ctx)
			return nil
		}
	}

	if m.readOnly && !m.isNavigation(msg) {
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	switch {
	case msg.Type == tea.KeyTab && m.insertTabs:
		m.editor.InsertRune(tabGlyph)
	case msg.Type == tea.KeyTab:
		m.editor.InsertString(strings.Repeat(" ", m.tabSize))
	default:
		m.editor, cmd = m.editor.Update(msg)
	}

	if after := m.editor.Value(); after != before {
		m.bridge.typed(after)
		m.actions.MarkDirty()
	}
	m.trackCursor()
	return m, cmd
}

// isNavigation reports whether msg only moves the cursor.
func (m *Model) isNavigation(msg tea.KeyMsg) bool {
	km := m.editor.KeyMap
	return key.Matches(msg,
		km.CharacterForward, km.CharacterBackward,
		km.WordForward, km.WordBackward,
		km.LineNext, km.LinePrevious,
		km.LineStart, km.LineEnd,
		km.InputBegin, km.InputEnd)
}

func bufferFlags(b editBuffer) []string {
	var flags []string
	if b.ending == lineCRLF {
		flags = append(flags, b.ending.String())
	}
	if b.readOnly {
		flags = append(flags, "Read-only")
	}
	return flags
}

// trackCursor reports the 1-based cursor position when it moves.
func (m *Model) trackCursor() {
	info := m.editor.LineInfo()
	line := m.editor.Line() + 1
	col := info.StartColumn + info.ColumnOffset + 1
	if line == m.lastLine && col == m.lastCol {
		return
	}
	m.lastLine, m.lastCol = line, col
	m.actions.CursorMoved(line, col)
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.answerPrompt(strings.TrimSpace(m.input.Value()), true)
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.answerPrompt("", false)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) answerPrompt(value string, ok bool) {
	req := m.prompt
	m.prompt = nil
	m.input.Reset()
	m.setMode(common.Editing)
	if req != nil {
		m.bridge.answerPrompt(req, value, ok)
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var d view.Decision
	switch msg.String() {
	case "y", "Y":
		d = view.SaveFirst
	case "n", "N":
		d = view.Discard
	default:
		return m, nil
	}
	req := m.confirm
	m.confirm = nil
	m.setMode(common.Editing)
	if req != nil {
		m.bridge.answerConfirm(req, d)
	}
	// A prompt may have been waiting behind the question.
	return m, m.refresh()
}

func (m *Model) handleRecentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch {
	case msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Recent):
		m.setMode(common.Editing)
		return m, nil
	case s == "c":
		m.setMode(common.Editing)
		if err := m.actions.ClearRecent(); err != nil {
			m.status.SetError(err.Error())
		}
		return m, nil
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		i := int(s[0] - '1')
		if i >= len(m.recent) {
			return m, nil
		}
		path := m.recent[i]
		m.setMode(common.Editing)
		return m, m.run(func(ctx context.Context) error {
			return m.actions.OpenRecent(ctx, path)
		})
	}
	return m, nil
}

// run performs fn off the update loop. A dialog it opens is answered by a
// later Update, so it must not block here.
func (m *Model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil && !errors.IsCanceled(err) {
			return messages.ErrorMsg{Err: err}
		}
		return nil
	}
}

// views.ModelReader

func (m *Model) Mode() common.Mode     { return m.mode }
func (m *Model) Title() string         { return m.title }
func (m *Model) EditorView() string    { return m.editor.View() }
func (m *Model) StatusView() string    { return m.status.View(m.width) }
func (m *Model) PromptView() string    { return m.input.View() }
func (m *Model) RecentFiles() []string { return m.recent }
func (m *Model) HelpView() string      { return m.help.ShortHelpView(m.keys.ShortHelp()) }
func (m *Model) Theme() styles.Theme   { return m.theme }

func (m *Model) ConfirmName() string {
	if m.confirm == nil {
		return ""
	}
	return m.confirm.name
}

// Text returns the text area contents.
func (m *Model) Text() string {
	return m.editor.Value()
}
