// Package language maps file names to the language tags the editor uses for
// highlighting and the status bar.
package language

import (
	"path/filepath"
	"sort"
	"strings"

	"scribe/pkg/types"
)

var byExtension = map[string]types.Language{
	".html": types.LanguageHTML,
	".htm":  types.LanguageHTML,
	".xml":  types.LanguageXML,
	".xaml": types.LanguageXML,
	".json": types.LanguageJSON,
	".js":   types.LanguageJavaScript,
	".jsx":  types.LanguageJavaScript,
	".mjs":  types.LanguageJavaScript,
	".ts":   types.LanguageTypeScript,
	".tsx":  types.LanguageTypeScript,
	".cs":   types.LanguageCSharp,
	".css":  types.LanguageCSS,
	".scss": types.LanguageSCSS,
	".less": types.LanguageLess,
	".java": types.LanguageJava,
	".sql":  types.LanguageSQL,
	".c":    types.LanguageC,
	".h":    types.LanguageC,
	".cpp":  types.LanguageCPP,
	".hpp":  types.LanguageCPP,
	".py":   types.LanguagePython,
	".md":   types.LanguageMarkdown,
	".yaml": types.LanguageYAML,
	".yml":  types.LanguageYAML,
	".txt":  types.LanguagePlainText,
}

// Every tag reachable from byExtension must have an entry here.
var displayNames = map[types.Language]string{
	types.LanguagePlainText:  "Plain Text",
	types.LanguageHTML:       "HTML",
	types.LanguageXML:        "XML",
	types.LanguageJSON:       "JSON",
	types.LanguageJavaScript: "JavaScript",
	types.LanguageTypeScript: "TypeScript",
	types.LanguageCSharp:     "C#",
	types.LanguageCSS:        "CSS",
	types.LanguageSCSS:       "SCSS",
	types.LanguageLess:       "Less",
	types.LanguageJava:       "Java",
	types.LanguageSQL:        "SQL",
	types.LanguageC:          "C",
	types.LanguageCPP:        "C++",
	types.LanguagePython:     "Python",
	types.LanguageMarkdown:   "Markdown",
	types.LanguageYAML:       "YAML",
}

// FromExtension classifies an extension such as ".TS". Matching ignores case;
// unknown extensions are plain text.
func FromExtension(ext string) types.Language {
	if lang, ok := byExtension[strings.ToLower(ext)]; ok {
		return lang
	}
	return types.LanguagePlainText
}

// FromPath classifies a path by its extension.
func FromPath(path string) types.Language {
	return FromExtension(filepath.Ext(path))
}

// DisplayName returns the human label for lang, or lang itself if it has none.
func DisplayName(lang types.Language) string {
	if name, ok := displayNames[lang]; ok {
		return name
	}
	return string(lang)
}

// Known reports whether lang is one of the built-in tags.
func Known(lang types.Language) bool {
	_, ok := displayNames[lang]
	return ok
}

// Tags lists the built-in tags in name order.
func Tags() []types.Language {
	tags := make([]types.Language, 0, len(displayNames))
	for tag := range displayNames {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Filter is a named group of extensions offered by the open dialog.
// Extensions are given without the leading dot; "*" matches everything.
type Filter struct {
	Name       string
	Extensions []string
}

// Filters returns the open-dialog filter groups, "All Files" first.
func Filters() []Filter {
	return []Filter{
		{Name: "All Files", Extensions: []string{"*"}},
		{Name: "Text Files", Extensions: []string{"txt"}},
		{Name: "HTML Files", Extensions: []string{"html", "htm"}},
		{Name: "XML Files", Extensions: []string{"xml", "xaml"}},
		{Name: "JSON Files", Extensions: []string{"json"}},
		{Name: "JavaScript Files", Extensions: []string{"js", "jsx", "mjs"}},
		{Name: "TypeScript Files", Extensions: []string{"ts", "tsx"}},
		{Name: "C# Files", Extensions: []string{"cs"}},
		{Name: "CSS Files", Extensions: []string{"css", "scss", "less"}},
		{Name: "Java Files", Extensions: []string{"java"}},
		{Name: "SQL Files", Extensions: []string{"sql"}},
		{Name: "C/C++ Files", Extensions: []string{"c", "cpp", "h", "hpp"}},
		{Name: "Python Files", Extensions: []string{"py"}},
	}
}

// SaveFilters returns the save-dialog filter groups.
func SaveFilters() []Filter {
	return Filters()[:2]
}
