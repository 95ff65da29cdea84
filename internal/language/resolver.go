package language

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"scribe/internal/log"
	"scribe/pkg/types"

	"github.com/gobwas/glob"
)

type mapping struct {
	pattern string
	matcher glob.Glob
	lang    types.Language
}

// Resolver classifies paths using user format mappings before falling back
// to the extension table. A mapping key is either an extension (".conf") or
// a glob matched against the base name ("Dockerfile*", "*.{tmpl,tpl}").
type Resolver struct {
	mu       sync.RWMutex
	mappings []mapping
}

// NewResolver creates a resolver with the given mappings.
func NewResolver(mappings map[string]string) *Resolver {
	r := &Resolver{}
	r.SetMappings(mappings)
	return r
}

// SetMappings replaces every mapping. Patterns that fail to compile are
// skipped with a warning.
func (r *Resolver) SetMappings(mappings map[string]string) {
	compiled := make([]mapping, 0, len(mappings))
	for pattern, lang := range mappings {
		key := strings.TrimSpace(pattern)
		if key == "" || strings.TrimSpace(lang) == "" {
			continue
		}
		if strings.HasPrefix(key, ".") && !strings.ContainsAny(key, "*?[{") {
			key = "*" + key
		}
		g, err := glob.Compile(strings.ToLower(key))
		if err != nil {
			log.LogWithFields(log.F("pattern", pattern), log.F("error", err)).Warn("Skipping invalid format mapping")
			continue
		}
		compiled = append(compiled, mapping{pattern: pattern, matcher: g, lang: types.Language(strings.TrimSpace(lang))})
	}

	// Longer patterns are more specific; ties break on the pattern text so
	// the order is stable across loads.
	sort.Slice(compiled, func(i, j int) bool {
		if len(compiled[i].pattern) != len(compiled[j].pattern) {
			return len(compiled[i].pattern) > len(compiled[j].pattern)
		}
		return compiled[i].pattern < compiled[j].pattern
	})

	r.mu.Lock()
	r.mappings = compiled
	r.mu.Unlock()
}

// Resolve returns the language for path.
func (r *Resolver) Resolve(path string) types.Language {
	base := strings.ToLower(filepath.Base(path))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.mappings {
		if m.matcher.Match(base) {
			return m.lang
		}
	}
	return FromPath(path)
}
