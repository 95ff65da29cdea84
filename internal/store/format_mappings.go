package store

import (
	"sync"
)

// FormatMappings maps file patterns to language tags. It is only ever
// replaced as a whole.
type FormatMappings struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFormatMappings loads the document at path. An absent or corrupt file
// gives an empty document.
func OpenFormatMappings(path string) *FormatMappings {
	m := &FormatMappings{path: path}
	values := map[string]string{}
	if !LoadOrEmpty(path, &values) || values == nil {
		values = map[string]string{}
	}
	m.values = values
	return m
}

// Path returns the backing file path.
func (m *FormatMappings) Path() string {
	return m.path
}

// All returns a copy of the mappings.
func (m *FormatMappings) All() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyStrings(m.values)
}

// Replace swaps in values and persists them. The in-memory document is only
// changed when the write succeeds.
func (m *FormatMappings) Replace(values map[string]string) error {
	next := copyStrings(values)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := Save(m.path, next); err != nil {
		return err
	}
	m.values = next
	return nil
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
