package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"scribe/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a burst of events on the watched file must be
// quiet before a Change is delivered.
const DefaultSettle = 150 * time.Millisecond

// Change reports that the watched file was modified, replaced or removed.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Removed   bool
	Timestamp time.Time
}

// Watcher follows the single file open in the editor. It watches the
// file's directory so that editors which save by renaming a temp file over
// the original are still noticed.
type Watcher struct {
	changes chan Change
	done    chan struct{}
	fs      *fsnotify.Watcher

	// guards everything below
	mu      sync.Mutex
	settle  time.Duration
	running bool
	stopped bool
	target  string
	dir     string
	quiet   time.Time
	timer   *time.Timer
	lastOp  fsnotify.Op
}

// New returns a stopped Watcher following no file.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		changes: make(chan Change, 10),
		done:    make(chan struct{}),
		fs:      fs,
		settle:  DefaultSettle,
	}, nil
}

// SetSettle changes the debounce interval. It must be called before Start.
func (w *Watcher) SetSettle(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settle = d
}

// Watch makes path the watched file, replacing the previous one. An empty
// path stops watching without stopping the watcher.
func (w *Watcher) Watch(path string) error {
	if path == "" {
		w.Unwatch()
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", abs)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != dir {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.fs.Remove(w.dir)
		}
		w.dir = dir
	}
	w.target = abs
	w.cancelPendingLocked()

	log.LogWithFields(log.F("file", abs)).Debug("Watching file")
	return nil
}

// Unwatch stops following the current file.
func (w *Watcher) Unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
	}
	w.dir = ""
	w.target = ""
	w.cancelPendingLocked()
}

// Current returns the watched file, or "" if none.
func (w *Watcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Suppress ignores events on the watched file for d. The host calls it
// around its own saves.
func (w *Watcher) Suppress(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quiet = time.Now().Add(d)
	w.cancelPendingLocked()
}

// Changes delivers at most one Change per settled burst. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start runs the event loop in a goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher already started")
	}
	if w.stopped {
		return fmt.Errorf("watcher stopped")
	}
	w.running = true
	go w.loop()
	log.Debug("Watcher started")
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.observe(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Warn("File watcher error")
		}
	}
}

func (w *Watcher) observe(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.target == "" || filepath.Clean(event.Name) != w.target {
		return
	}
	if time.Now().Before(w.quiet) {
		return
	}

	w.lastOp = event.Op
	if w.timer != nil {
		w.timer.Stop()
	}
	target := w.target
	w.timer = time.AfterFunc(w.settle, func() { w.fire(target) })
}

func (w *Watcher) fire(target string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running || w.target != target {
		return
	}
	w.timer = nil

	change := Change{Path: target, Op: w.lastOp, Timestamp: time.Now()}
	if _, err := os.Stat(target); os.IsNotExist(err) {
		change.Removed = true
	}

	select {
	case w.changes <- change:
	default:
		log.LogWithFields(log.F("file", target)).Warn("Change channel is full, dropped event")
	}
}

func (w *Watcher) cancelPendingLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop ends the event loop, releases the fsnotify handle and closes
// Changes, whether or not Start was called. Later calls do nothing.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	w.running = false
	close(w.done)
	w.cancelPendingLocked()
	if err := w.fs.Close(); err != nil {
		log.LogWithError(err).Warn("Cannot close file watcher")
	}

	// fire checks running under the same lock, so nothing sends after this
	close(w.changes)

	log.Debug("Watcher stopped")
}

func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
