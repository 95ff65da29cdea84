// Package recent keeps the most-recently-used file list.
package recent

import (
	"path/filepath"
	"sync"

	"scribe/internal/log"
	"scribe/internal/store"
)

// MaxEntries caps the list length.
const MaxEntries = 10

// Listener is told the new list after every change.
type Listener func(paths []string)

// Manager is an ordered, deduplicated, capped list of paths, most recent
// first, backed by a JSON array on disk.
type Manager struct {
	mu        sync.Mutex
	path      string
	entries   []string
	listeners map[int]Listener
	nextID    int
}

// Open loads the list stored at path. A missing or corrupt file gives an
// empty list.
func Open(path string) *Manager {
	m := &Manager{path: path, listeners: map[int]Listener{}}
	m.entries = load(path)
	return m
}

func load(path string) []string {
	var entries []string
	if !store.LoadOrEmpty(path, &entries) {
		return []string{}
	}
	// Hand-edited files may break the invariants; repair them on load.
	out := make([]string, 0, len(entries))
	for _, p := range entries {
		if p == "" || contains(out, p) {
			continue
		}
		out = append(out, p)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// List returns a copy of the current entries.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.entries)
}

// Add moves path to the front, dropping any older occurrence and anything
// past MaxEntries, then persists and notifies listeners.
func (m *Manager) Add(path string) error {
	if path == "" {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	m.mu.Lock()
	next := make([]string, 0, MaxEntries)
	next = append(next, path)
	for _, p := range m.entries {
		if p != path && len(next) < MaxEntries {
			next = append(next, p)
		}
	}
	m.entries = next
	err := m.persistLocked()
	snapshot, listeners := clone(m.entries), m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, snapshot)
	return err
}

// Prune removes path, typically because the file no longer exists. It is a
// no-op when path is not listed.
func (m *Manager) Prune(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	m.mu.Lock()
	idx := index(m.entries, path)
	if idx < 0 {
		m.mu.Unlock()
		return nil
	}
	m.entries = append(m.entries[:idx:idx], m.entries[idx+1:]...)
	err := m.persistLocked()
	snapshot, listeners := clone(m.entries), m.listenersLocked()
	m.mu.Unlock()

	log.LogWithFields(log.F("path", path)).Info("Pruned missing file from recent list")
	notify(listeners, snapshot)
	return err
}

// Clear empties the list.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.entries = []string{}
	err := m.persistLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, []string{})
	return err
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) persistLocked() error {
	if err := store.Save(m.path, m.entries); err != nil {
		log.LogWithError(err).Error("Failed to persist recent files")
		return err
	}
	return nil
}

func (m *Manager) listenersLocked() []Listener {
	out := make([]Listener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, paths []string) {
	for _, fn := range listeners {
		fn(clone(paths))
	}
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func index(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	return index(list, s) >= 0
}
