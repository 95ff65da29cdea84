package gui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"scribe/internal/errors"
	"scribe/internal/language"
	"scribe/pkg/types"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// parseMappings reads an imported format-mappings file. The format follows
// the file extension: .json, .yaml or .yml.
func parseMappings(name string, data []byte) (map[string]string, error) {
	mappings := map[string]string{}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &mappings); err != nil {
			return nil, errors.Wrap(err, "error parsing JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &mappings); err != nil {
			return nil, errors.Wrap(err, "error parsing YAML")
		}
	default:
		return nil, errors.Newf("unsupported file format: %s", filepath.Ext(name))
	}

	for pattern, lang := range mappings {
		if strings.TrimSpace(pattern) == "" {
			return nil, errors.New("empty pattern in format mappings")
		}
		if !language.Known(types.Language(lang)) {
			return nil, errors.Newf("unknown language %q for %s", lang, pattern)
		}
	}
	return mappings, nil
}

// exportMappings encodes mappings as "json" or "yaml".
func exportMappings(mappings map[string]string, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(mappings, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "error encoding to JSON")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(mappings)
		if err != nil {
			return nil, errors.Wrap(err, "error encoding to YAML")
		}
		return data, nil
	default:
		return nil, errors.Newf("unsupported export format: %s", format)
	}
}

// mappingRows returns the mappings as "pattern → language" rows sorted by
// pattern, the order the settings list shows them in.
func mappingRows(mappings map[string]string) []string {
	patterns := sortedPatterns(mappings)
	rows := make([]string, len(patterns))
	for i, p := range patterns {
		rows[i] = fmt.Sprintf("%s → %s", p, language.DisplayName(types.Language(mappings[p])))
	}
	return rows
}

// sortedPatterns lists the mapping keys in display order.
func sortedPatterns(mappings map[string]string) []string {
	patterns := make([]string, 0, len(mappings))
	for p := range mappings {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// languageOptions lists the built-in languages for the mapping selector.
func languageOptions() []string {
	tags := language.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return names
}

// clampFontSize keeps the zoom level readable.
func clampFontSize(size float32) float32 {
	switch {
	case size < minFontSize:
		return minFontSize
	case size > maxFontSize:
		return maxFontSize
	}
	return size
}

const (
	minFontSize  = 8
	maxFontSize  = 48
	fontSizeStep = 2
)
