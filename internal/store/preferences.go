package store

import (
	"sync"
)

// Preferences is a flat key/value document. Values are any JSON value.
type Preferences struct {
	mu     sync.Mutex
	path   string
	values map[string]interface{}
}

// OpenPreferences loads the document at path. An absent or corrupt file
// gives an empty document.
func OpenPreferences(path string) *Preferences {
	p := &Preferences{path: path}
	p.Reload()
	return p
}

// Reload re-reads the backing file.
func (p *Preferences) Reload() {
	values := map[string]interface{}{}
	if !LoadOrEmpty(p.path, &values) || values == nil {
		values = map[string]interface{}{}
	}
	p.mu.Lock()
	p.values = values
	p.mu.Unlock()
}

// Path returns the backing file path.
func (p *Preferences) Path() string {
	return p.path
}

// All returns a copy of every preference.
func (p *Preferences) All() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]interface{}, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Get returns the value stored under key.
func (p *Preferences) Get(key string) (interface{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok
}

// Set upserts key and persists the whole document. On a write failure the
// in-memory value is kept so the session still sees it.
func (p *Preferences) Set(key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return Save(p.path, p.values)
}

// Delete removes key and persists the document.
func (p *Preferences) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.values[key]; !ok {
		return nil
	}
	delete(p.values, key)
	return Save(p.path, p.values)
}
