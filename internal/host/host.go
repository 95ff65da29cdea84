// Package host is the process side that owns the window lifecycle, native
// dialogs and persisted state. It answers the view's requests over an
// ipc.Peer and pushes file and menu events back to it.
package host

import (
	"context"
	"os"
	"sync"
	"time"

	"scribe/internal/errors"
	"scribe/internal/fileio"
	"scribe/internal/ipc"
	"scribe/internal/language"
	"scribe/internal/log"
	"scribe/internal/recent"
	"scribe/internal/store"
	"scribe/internal/watch"
)

// DefaultSaveName is offered by the save dialog when the view suggests none.
const DefaultSaveName = "untitled.txt"

// ErrCanceled is returned by Dialogs when the user dismisses a dialog.
var ErrCanceled = errors.ErrDialogCanceled

// Dialogs shows the native file dialogs.
type Dialogs interface {
	OpenFile(ctx context.Context, filters []language.Filter) (string, error)
	SaveFile(ctx context.Context, suggested string) (string, error)
}

// Menu is the presentation of the recent-files list.
type Menu interface {
	SetRecentFiles(paths []string)
}

// Options holds the host's collaborators. Dialogs, Recent, Preferences and
// Mappings are required.
type Options struct {
	Dialogs     Dialogs
	Menu        Menu
	Recent      *recent.Manager
	Preferences *store.Preferences
	Mappings    *store.FormatMappings
	// Watcher follows the open file; nil disables change notifications.
	Watcher *watch.Watcher
	// Quit is called once the view has confirmed the close.
	Quit func()
}

// Host serves the view.
type Host struct {
	peer   *ipc.Peer
	opts   Options
	bridge *fileio.Bridge

	mu      sync.Mutex
	ready   bool
	launch  string
	closing bool
	current string

	quitOnce    sync.Once
	unsubscribe func()
}

// New registers the host's handlers on peer. The peer must be served by
// the caller.
func New(peer *ipc.Peer, opts Options) *Host {
	h := &Host{
		peer:   peer,
		opts:   opts,
		bridge: fileio.NewBridge(language.NewResolver(opts.Mappings.All())),
	}
	if h.opts.Quit == nil {
		h.opts.Quit = func() {}
	}

	if opts.Menu != nil {
		opts.Menu.SetRecentFiles(opts.Recent.List())
		h.unsubscribe = opts.Recent.Subscribe(opts.Menu.SetRecentFiles)
	}

	peer.Handle(ipc.OpenFileDialog, h.handleOpenFileDialog)
	peer.Handle(ipc.SaveFile, h.handleSaveFile)
	peer.Handle(ipc.SaveFileDialog, h.handleSaveFileDialog)
	peer.Handle(ipc.ReloadFile, h.handleReloadFile)
	peer.Handle(ipc.ReloadFileDialog, h.handleReloadFileDialog)
	peer.Handle(ipc.LoadFormatMappings, h.handleLoadFormatMappings)
	peer.Handle(ipc.SaveFormatMappings, h.handleSaveFormatMappings)
	peer.Handle(ipc.LoadPreferences, h.handleLoadPreferences)
	peer.Handle(ipc.SavePreference, h.handleSavePreference)

	peer.On(ipc.AddRecentFile, h.onAddRecentFile)
	peer.On(ipc.ConfirmClose, h.onConfirmClose)
	peer.On(ipc.ViewReady, h.onViewReady)

	return h
}

// Start begins forwarding changes of the open file to the view.
func (h *Host) Start(ctx context.Context) error {
	if h.opts.Watcher == nil {
		return nil
	}
	if err := h.opts.Watcher.Start(); err != nil {
		return err
	}
	go h.forwardChanges(ctx)
	return nil
}

// Close stops the watcher and detaches the menu.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	if h.opts.Watcher != nil {
		h.opts.Watcher.Stop()
	}
}

// Bridge returns the file bridge the host reads and writes with.
func (h *Host) Bridge() *fileio.Bridge {
	return h.bridge
}

// CurrentFile returns the file last opened, reloaded or saved.
func (h *Host) CurrentFile() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// SetLaunchFile records a file to open once the view is ready. If the view
// is already up the file opens at once.
func (h *Host) SetLaunchFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	h.mu.Lock()
	if !h.ready {
		h.launch = path
		h.mu.Unlock()
		log.LogWithFields(log.F("path", path)).Debug("Deferring launch file until the view is ready")
		return
	}
	h.mu.Unlock()

	if err := h.OpenPath(ctx, path); err != nil {
		log.LogWithError(err).Warn("Cannot open forwarded file")
	}
}

// OpenPath reads path and sends it to the view. A missing file is pruned
// from the recent list.
func (h *Host) OpenPath(ctx context.Context, path string) error {
	rec, err := h.bridge.Read(path)
	if err != nil {
		if errors.IsFileNotFound(err) {
			h.prune(path)
		}
		return err
	}
	h.track(rec.Path)
	return h.peer.Emit(ctx, ipc.FileOpened, rec)
}

// OpenRecent opens an entry of the recent list. A file that no longer
// exists is pruned without telling the user.
func (h *Host) OpenRecent(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.prune(path)
		return nil
	}
	return h.OpenPath(ctx, path)
}

// ShowOpenDialog runs the open dialog and opens the chosen file.
func (h *Host) ShowOpenDialog(ctx context.Context) error {
	path, err := h.opts.Dialogs.OpenFile(ctx, language.Filters())
	if err != nil {
		if errors.IsCanceled(err) {
			return nil
		}
		return err
	}
	return h.OpenPath(ctx, path)
}

// ClearRecent empties the recent list.
func (h *Host) ClearRecent() error {
	return h.opts.Recent.Clear()
}

// Menu actions forwarded to the view.

func (h *Host) MenuNew(ctx context.Context) error    { return h.peer.Emit(ctx, ipc.MenuNew, nil) }
func (h *Host) MenuSave(ctx context.Context) error   { return h.peer.Emit(ctx, ipc.MenuSave, nil) }
func (h *Host) MenuSaveAs(ctx context.Context) error { return h.peer.Emit(ctx, ipc.MenuSaveAs, nil) }
func (h *Host) MenuReload(ctx context.Context) error { return h.peer.Emit(ctx, ipc.MenuReload, nil) }

// RequestClose asks the view to wrap up. The host quits when the view
// answers with confirm-close. If the view cannot be reached the host quits
// at once.
func (h *Host) RequestClose(ctx context.Context) {
	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		return
	}
	h.closing = true
	h.mu.Unlock()

	if err := h.peer.Emit(ctx, ipc.AppClosing, nil); err != nil {
		log.LogWithError(err).Warn("View unreachable, closing without confirmation")
		h.quit()
	}
}

// Closing reports whether a close is in progress.
func (h *Host) Closing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closing
}

func (h *Host) quit() {
	h.quitOnce.Do(func() {
		log.Info("Closing")
		h.opts.Quit()
	})
}

func (h *Host) prune(path string) {
	if err := h.opts.Recent.Prune(path); err != nil {
		log.LogWithError(err).Warn("Cannot persist recent files")
	}
}

func (h *Host) addRecent(path string) {
	if err := h.opts.Recent.Add(path); err != nil {
		log.LogWithError(err).Warn("Cannot persist recent files")
	}
}

// track makes path the file followed by the watcher.
func (h *Host) track(path string) {
	h.mu.Lock()
	h.current = path
	h.mu.Unlock()

	if h.opts.Watcher == nil {
		return
	}
	if err := h.opts.Watcher.Watch(path); err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("Cannot watch file")
	}
}

func (h *Host) forwardChanges(ctx context.Context) {
	changes := h.opts.Watcher.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			log.LogWithFields(log.F("path", c.Path), log.F("removed", c.Removed)).Debug("Open file changed on disk")
			if err := h.peer.Emit(ctx, ipc.FileChanged, ipc.PathRequest{Path: c.Path}); err != nil {
				log.LogWithError(err).Debug("Cannot notify view of change")
			}
		}
	}
}

// ownSaveWindow covers the events caused by the host's own writes.
const ownSaveWindow = time.Second

func (h *Host) suppressOwnWrite(path string) {
	if h.opts.Watcher != nil && h.opts.Watcher.Current() == path {
		h.opts.Watcher.Suppress(ownSaveWindow)
	}
}
