// Package view holds the editor side: the session state and the actions
// behind the keyboard shortcuts and menu events. The editing widget and the
// status bar are supplied by the front-end.
package view

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"scribe/internal/errors"
	"scribe/internal/ipc"
	"scribe/internal/language"
	"scribe/internal/log"
	"scribe/pkg/types"

	"github.com/dustin/go-humanize"
)

// Editor is the text widget.
type Editor interface {
	Text() string
	SetText(text string)
	SetLanguage(lang types.Language)
}

// StatusBar shows the window title and the status line fields.
type StatusBar interface {
	SetTitle(title string)
	SetStatus(text string)
	SetPosition(text string)
	SetEncoding(text string)
	SetLanguage(text string)
}

// Decision is the answer to "save changes to this file?".
type Decision int

const (
	Discard Decision = iota
	SaveFirst
)

// Confirmer asks the user what to do with unsaved changes.
type Confirmer interface {
	ConfirmDiscard(ctx context.Context, name string) Decision
}

// Peer is the part of ipc.Peer the controller talks to.
type Peer interface {
	Invoke(ctx context.Context, channel string, req, resp interface{}) error
	Emit(ctx context.Context, channel string, payload interface{}) error
	On(channel string, fn ipc.EventFunc)
}

// Controller applies user actions and host events to the session and the
// widgets. Widgets are never called with the session lock held, so a widget
// may call back into the controller (for example MarkDirty from a change
// callback).
type Controller struct {
	editor  Editor
	status  StatusBar
	confirm Confirmer

	mu      sync.Mutex
	session Session
	peer    Peer

	// counts SetText calls in flight so their change callbacks are not
	// mistaken for edits
	loading atomic.Int32
}

// NewController creates a controller with an empty session. confirm may be
// nil, in which case unsaved changes are discarded without asking.
func NewController(editor Editor, status StatusBar, confirm Confirmer) *Controller {
	return &Controller{
		editor:  editor,
		status:  status,
		confirm: confirm,
		session: NewSession(),
	}
}

// Bind subscribes to the host's events and announces that the view is ready.
func (c *Controller) Bind(ctx context.Context, peer Peer) error {
	c.mu.Lock()
	c.peer = peer
	c.mu.Unlock()

	peer.On(ipc.FileOpened, func(ctx context.Context, ev *ipc.Message) {
		var rec types.FileRecord
		if err := ev.Decode(&rec); err != nil {
			log.LogWithError(err).Warn("Ignoring malformed file-opened event")
			return
		}
		c.Load(ctx, &rec)
	})
	peer.On(ipc.MenuNew, func(ctx context.Context, _ *ipc.Message) { c.NewFile(ctx) })
	peer.On(ipc.MenuSave, func(ctx context.Context, _ *ipc.Message) { _ = c.Save(ctx) })
	peer.On(ipc.MenuSaveAs, func(ctx context.Context, _ *ipc.Message) { _ = c.SaveAs(ctx) })
	peer.On(ipc.MenuReload, func(ctx context.Context, _ *ipc.Message) { _ = c.Reload(ctx) })
	peer.On(ipc.FileChanged, func(ctx context.Context, ev *ipc.Message) {
		var in ipc.PathRequest
		if err := ev.Decode(&in); err == nil {
			c.HandleFileChanged(ctx, in.Path)
		}
	})
	peer.On(ipc.AppClosing, func(ctx context.Context, _ *ipc.Message) { c.HandleClosing(ctx) })

	return peer.Emit(ctx, ipc.ViewReady, nil)
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) getPeer() (Peer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.peer == nil {
		return nil, errors.NewProtocolError("view is not bound to a host", "", errors.TransportClosed, nil)
	}
	return c.peer, nil
}

// NewFile clears the editor. Unsaved changes are offered for saving first.
func (c *Controller) NewFile(ctx context.Context) {
	if !c.resolveUnsaved(ctx) {
		return
	}

	c.mu.Lock()
	c.session = NewSession()
	c.mu.Unlock()

	c.setText("")
	c.editor.SetLanguage(types.LanguagePlainText)
	c.refreshTitle()
	c.status.SetStatus("New file created")
	c.status.SetEncoding(types.DefaultEncoding.Label())
	c.status.SetLanguage(language.DisplayName(types.LanguagePlainText))
}

// Open asks the host to show the open dialog. The file arrives as a
// file-opened event.
func (c *Controller) Open(ctx context.Context) error {
	peer, err := c.getPeer()
	if err != nil {
		return err
	}
	if err := peer.Invoke(ctx, ipc.OpenFileDialog, nil, nil); err != nil {
		c.status.SetStatus("Error: " + err.Error())
		return err
	}
	return nil
}

// OpenAndLoad shows the open dialog and loads the reply directly instead of
// waiting for a file-opened event.
func (c *Controller) OpenAndLoad(ctx context.Context) error {
	peer, err := c.getPeer()
	if err != nil {
		return err
	}
	var rec *types.FileRecord
	if err := peer.Invoke(ctx, ipc.ReloadFileDialog, nil, &rec); err != nil {
		c.status.SetStatus("Error: " + err.Error())
		return err
	}
	if rec != nil && c.resolveUnsaved(ctx) {
		c.apply(rec, "Opened: ")
	}
	return nil
}

// Load shows rec in the editor and records it as recently used. Unsaved
// changes are offered for saving first; when that save fails the buffer
// is kept and rec is dropped.
func (c *Controller) Load(ctx context.Context, rec *types.FileRecord) {
	if !c.resolveUnsaved(ctx) {
		c.status.SetStatus("Kept unsaved changes, " + filepath.Base(rec.Path) + " not opened")
		return
	}
	c.apply(rec, "Opened: ")

	peer, err := c.getPeer()
	if err != nil {
		return
	}
	if err := peer.Emit(ctx, ipc.AddRecentFile, ipc.PathRequest{Path: rec.Path}); err != nil {
		log.LogWithError(err).Debug("Cannot record recent file")
	}
}

func (c *Controller) apply(rec *types.FileRecord, verb string) {
	enc := rec.Encoding
	if enc == "" {
		enc = types.DefaultEncoding
	}
	lang := rec.Language
	if lang == "" {
		lang = types.LanguagePlainText
	}

	c.mu.Lock()
	c.session = Session{FilePath: rec.Path, Encoding: enc, Language: lang}
	c.mu.Unlock()

	c.setText(rec.Content)
	c.editor.SetLanguage(lang)
	c.refreshTitle()
	c.status.SetStatus(fmt.Sprintf("%s%s (%s)", verb, filepath.Base(rec.Path), humanize.Bytes(uint64(rec.Size))))
	c.status.SetEncoding(enc.Label())
	c.status.SetLanguage(language.DisplayName(lang))
}

// Save writes the editor content to the session's file in the session's
// encoding. Without a file it behaves like SaveAs.
func (c *Controller) Save(ctx context.Context) error {
	s := c.Session()
	if s.FilePath == "" {
		return c.SaveAs(ctx)
	}
	peer, err := c.getPeer()
	if err != nil {
		return err
	}

	req := ipc.SaveFileRequest{Path: s.FilePath, Content: c.editor.Text(), Encoding: s.Encoding}
	var res types.SaveResult
	if err := peer.Invoke(ctx, ipc.SaveFile, req, &res); err != nil {
		c.status.SetStatus("Error: " + err.Error())
		return err
	}
	if !res.Success {
		c.status.SetStatus("Error: " + res.Error)
		return errors.NewFileError(res.Error, s.FilePath, errors.FileWriteFailed, nil)
	}

	c.mu.Lock()
	if c.session.FilePath == s.FilePath {
		c.session.Dirty = false
	}
	c.mu.Unlock()
	c.refreshTitle()
	c.status.SetStatus("File saved")
	return nil
}

// SaveAs asks the host for a new location and writes there. A canceled
// dialog changes nothing and returns errors.ErrDialogCanceled.
func (c *Controller) SaveAs(ctx context.Context) error {
	peer, err := c.getPeer()
	if err != nil {
		return err
	}
	s := c.Session()

	req := ipc.SaveFileDialogRequest{Content: c.editor.Text(), Encoding: s.Encoding, SuggestedName: s.SuggestedName()}
	var res types.SaveAsResult
	if err := peer.Invoke(ctx, ipc.SaveFileDialog, req, &res); err != nil {
		c.status.SetStatus("Error: " + err.Error())
		return err
	}
	switch {
	case res.Success:
	case res.Canceled:
		return errors.ErrDialogCanceled
	default:
		c.status.SetStatus("Error: " + res.Error)
		return errors.NewFileError(res.Error, "", errors.FileWriteFailed, nil)
	}

	c.mu.Lock()
	c.session.FilePath = res.FilePath
	c.session.Dirty = false
	c.mu.Unlock()
	c.refreshTitle()
	c.status.SetStatus("File saved")
	return nil
}

// Reload re-reads the session's file from disk, discarding edits.
func (c *Controller) Reload(ctx context.Context) error {
	s := c.Session()
	if s.FilePath == "" {
		c.status.SetStatus("No file to reload")
		return nil
	}
	peer, err := c.getPeer()
	if err != nil {
		return err
	}

	var rec *types.FileRecord
	if err := peer.Invoke(ctx, ipc.ReloadFile, ipc.PathRequest{Path: s.FilePath}, &rec); err != nil {
		c.status.SetStatus("Error: " + err.Error())
		return err
	}
	if rec == nil {
		c.status.SetStatus("File no longer available")
		return nil
	}
	c.apply(rec, "Reloaded: ")
	return nil
}

// MarkDirty records an edit.
func (c *Controller) MarkDirty() {
	if c.loading.Load() > 0 {
		return
	}
	c.mu.Lock()
	if c.session.Dirty {
		c.mu.Unlock()
		return
	}
	c.session.Dirty = true
	c.mu.Unlock()
	c.refreshTitle()
}

// CursorMoved updates the position field; line and col are 1-based.
func (c *Controller) CursorMoved(line, col int) {
	c.status.SetPosition(fmt.Sprintf("Ln %d, Col %d", line, col))
}

// HandleFileChanged reacts to the open file changing on disk. A clean
// buffer is reloaded; a dirty one is left alone and the user is told.
func (c *Controller) HandleFileChanged(ctx context.Context, path string) {
	s := c.Session()
	if s.FilePath == "" || s.FilePath != path {
		return
	}
	if s.Dirty {
		c.status.SetStatus("File changed on disk")
		return
	}
	if err := c.Reload(ctx); err != nil {
		log.LogWithError(err).Debug("Reload after external change failed")
	}
}

// HandleClosing runs when the host wants to close. Unsaved changes are
// offered for saving; the close is then confirmed whatever the outcome.
func (c *Controller) HandleClosing(ctx context.Context) {
	c.resolveUnsaved(ctx)

	peer, err := c.getPeer()
	if err != nil {
		return
	}
	if err := peer.Emit(ctx, ipc.ConfirmClose, nil); err != nil {
		log.LogWithError(err).Warn("Cannot confirm close")
	}
}

// resolveUnsaved asks about unsaved changes and saves when asked to. It
// reports whether the caller may go on to drop the buffer.
func (c *Controller) resolveUnsaved(ctx context.Context) bool {
	s := c.Session()
	if !s.Dirty || c.confirm == nil {
		return true
	}
	if c.confirm.ConfirmDiscard(ctx, s.Name()) != SaveFirst {
		return true
	}
	if err := c.Save(ctx); err != nil {
		if !errors.IsCanceled(err) {
			log.LogWithError(err).Warn("Save before discarding failed")
		}
		return false
	}
	return true
}

// Preferences loads the persisted preferences.
func (c *Controller) Preferences(ctx context.Context) (map[string]interface{}, error) {
	peer, err := c.getPeer()
	if err != nil {
		return nil, err
	}
	prefs := map[string]interface{}{}
	if err := peer.Invoke(ctx, ipc.LoadPreferences, nil, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SetPreference persists one preference.
func (c *Controller) SetPreference(ctx context.Context, key string, value interface{}) error {
	peer, err := c.getPeer()
	if err != nil {
		return err
	}
	return peer.Invoke(ctx, ipc.SavePreference, ipc.SavePreferenceRequest{Key: key, Value: value}, nil)
}

// FormatMappings loads the user's pattern to language overrides.
func (c *Controller) FormatMappings(ctx context.Context) (map[string]string, error) {
	peer, err := c.getPeer()
	if err != nil {
		return nil, err
	}
	mappings := map[string]string{}
	if err := peer.Invoke(ctx, ipc.LoadFormatMappings, nil, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

// SetFormatMappings replaces the pattern to language overrides.
func (c *Controller) SetFormatMappings(ctx context.Context, mappings map[string]string) error {
	peer, err := c.getPeer()
	if err != nil {
		return err
	}
	var res types.MutationResult
	if err := peer.Invoke(ctx, ipc.SaveFormatMappings, mappings, &res); err != nil {
		return err
	}
	if !res.Success {
		return errors.NewStoreError(res.Error, "format-mappings.json", errors.StoreWriteFailed, nil)
	}
	return nil
}

func (c *Controller) setText(text string) {
	c.loading.Add(1)
	defer c.loading.Add(-1)
	c.editor.SetText(text)
}

func (c *Controller) refreshTitle() {
	c.status.SetTitle(c.Session().Title())
}
