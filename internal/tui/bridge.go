package tui

import (
	"context"
	"path/filepath"
	"sync"

	"scribe/internal/host"
	"scribe/internal/language"
	"scribe/internal/view"
	"scribe/pkg/types"
)

// Bridge is the front-end the host and view talk to. They call it from
// their own goroutines, while a bubbletea model may only change inside
// Update, so the bridge keeps the state under a lock and calls notify;
// the model pulls a snapshot when the refresh arrives.
type Bridge struct {
	mu sync.Mutex

	text        string
	buf         editBuffer
	textPending bool
	lang        types.Language

	title    string
	status   string
	position string
	encoding string
	language string
	recent   []string

	prompt  *promptRequest
	confirm *confirmRequest
	quit    bool

	notify func()
}

type promptRequest struct {
	label string
	value string
	reply chan promptReply
}

type promptReply struct {
	value string
	ok    bool
}

type confirmRequest struct {
	name  string
	reply chan view.Decision
}

// snapshot is a copy of the bridge state for one Update.
type snapshot struct {
	buf         editBuffer
	textPending bool
	title       string
	status      string
	position    string
	encoding    string
	language    string
	recent      []string
	prompt      *promptRequest
	confirm     *confirmRequest
	quit        bool
}

func NewBridge() *Bridge {
	return &Bridge{notify: func() {}}
}

// SetNotify sets the function called after every change. It must not block.
func (b *Bridge) SetNotify(fn func()) {
	b.mu.Lock()
	b.notify = fn
	b.mu.Unlock()
}

func (b *Bridge) changed(fn func()) {
	b.mu.Lock()
	fn()
	notify := b.notify
	b.mu.Unlock()
	notify()
}

func (b *Bridge) snapshot() snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := snapshot{
		buf:         b.buf,
		textPending: b.textPending,
		title:       b.title,
		status:      b.status,
		position:    b.position,
		encoding:    b.encoding,
		language:    b.language,
		recent:      append([]string(nil), b.recent...),
		prompt:      b.prompt,
		confirm:     b.confirm,
		quit:        b.quit,
	}
	b.textPending = false
	return s
}

// Editor

// Text returns the file text, with the tabs and line endings it was
// loaded with.
func (b *Bridge) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Bridge) SetText(text string) {
	b.changed(func() {
		b.text = text
		b.buf = newEditBuffer(text)
		b.textPending = true
	})
}

// typed records an edit made in the text area.
func (b *Bridge) typed(value string) {
	b.mu.Lock()
	if !b.buf.readOnly {
		b.text = b.buf.fileText(value)
	}
	b.mu.Unlock()
}

func (b *Bridge) SetLanguage(lang types.Language) {
	b.mu.Lock()
	b.lang = lang
	b.mu.Unlock()
}

func (b *Bridge) Language() types.Language {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lang
}

// Status bar

func (b *Bridge) SetTitle(title string)   { b.changed(func() { b.title = title }) }
func (b *Bridge) SetStatus(text string)   { b.changed(func() { b.status = text }) }
func (b *Bridge) SetPosition(text string) { b.changed(func() { b.position = text }) }
func (b *Bridge) SetEncoding(text string) { b.changed(func() { b.encoding = text }) }

// SetStatusLanguage is the status bar's language field. The view sets it
// through statusAdapter, since Editor also has a SetLanguage.
func (b *Bridge) SetStatusLanguage(text string) { b.changed(func() { b.language = text }) }

// Menu

func (b *Bridge) SetRecentFiles(paths []string) {
	b.changed(func() { b.recent = append([]string(nil), paths...) })
}

func (b *Bridge) RecentFiles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.recent...)
}

// Quit asks the program to exit.
func (b *Bridge) Quit() {
	b.changed(func() { b.quit = true })
}

// Dialogs

// OpenFile reads a path from the prompt line. The filters only name the
// prompt; any path is accepted.
func (b *Bridge) OpenFile(ctx context.Context, filters []language.Filter) (string, error) {
	label := "Open file"
	if len(filters) > 0 && filters[0].Name != "" {
		label += " (" + filters[0].Name + ")"
	}
	return b.ask(ctx, label, "")
}

func (b *Bridge) SaveFile(ctx context.Context, suggested string) (string, error) {
	return b.ask(ctx, "Save as", suggested)
}

func (b *Bridge) ask(ctx context.Context, label, value string) (string, error) {
	req := &promptRequest{label: label, value: value, reply: make(chan promptReply, 1)}
	b.changed(func() { b.prompt = req })

	select {
	case r := <-req.reply:
		if !r.ok || r.value == "" {
			return "", host.ErrCanceled
		}
		path, err := filepath.Abs(r.value)
		if err != nil {
			return "", err
		}
		return path, nil
	case <-ctx.Done():
		b.changed(func() {
			if b.prompt == req {
				b.prompt = nil
			}
		})
		return "", ctx.Err()
	}
}

// answerPrompt delivers the prompt line to the waiting dialog call.
func (b *Bridge) answerPrompt(req *promptRequest, value string, ok bool) {
	b.mu.Lock()
	if b.prompt == req {
		b.prompt = nil
	}
	b.mu.Unlock()
	req.reply <- promptReply{value: value, ok: ok}
}

// ConfirmDiscard asks on the bottom line whether to save name first.
func (b *Bridge) ConfirmDiscard(ctx context.Context, name string) view.Decision {
	req := &confirmRequest{name: name, reply: make(chan view.Decision, 1)}
	b.changed(func() { b.confirm = req })

	select {
	case d := <-req.reply:
		return d
	case <-ctx.Done():
		b.changed(func() {
			if b.confirm == req {
				b.confirm = nil
			}
		})
		return view.Discard
	}
}

func (b *Bridge) answerConfirm(req *confirmRequest, d view.Decision) {
	b.mu.Lock()
	if b.confirm == req {
		b.confirm = nil
	}
	b.mu.Unlock()
	req.reply <- d
}

// statusAdapter exposes the bridge as a view.StatusBar.
type statusAdapter struct{ *Bridge }

func (s statusAdapter) SetLanguage(text string) { s.SetStatusLanguage(text) }

var (
	_ view.Editor    = (*Bridge)(nil)
	_ view.Confirmer = (*Bridge)(nil)
	_ host.Dialogs   = (*Bridge)(nil)
	_ host.Menu      = (*Bridge)(nil)
	_ view.StatusBar = statusAdapter{}
)
