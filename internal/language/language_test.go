package language

import (
	"testing"

	"scribe/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want types.Language
	}{
		{".html", types.LanguageHTML},
		{".HTM", types.LanguageHTML},
		{".xaml", types.LanguageXML},
		{".json", types.LanguageJSON},
		{".mjs", types.LanguageJavaScript},
		{".TS", types.LanguageTypeScript},
		{".tsx", types.LanguageTypeScript},
		{".cs", types.LanguageCSharp},
		{".scss", types.LanguageSCSS},
		{".less", types.LanguageLess},
		{".h", types.LanguageC},
		{".hpp", types.LanguageCPP},
		{".py", types.LanguagePython},
		{".md", types.LanguageMarkdown},
		{".yml", types.LanguageYAML},
		{".txt", types.LanguagePlainText},
		{".go", types.LanguagePlainText},
		{"", types.LanguagePlainText},
		{"ts", types.LanguagePlainText}, // the separator is part of the key
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, FromExtension(tt.ext))
		})
	}
}

func TestMixedCaseTypeScript(t *testing.T) {
	lang := FromExtension(".TS")
	assert.Equal(t, types.LanguageTypeScript, lang)
	assert.Equal(t, "TypeScript", DisplayName(lang))
}

func TestFromPath(t *testing.T) {
	assert.Equal(t, types.LanguageCPP, FromPath("/src/engine/Main.CPP"))
	assert.Equal(t, types.LanguagePlainText, FromPath("/etc/hosts"))
	assert.Equal(t, types.LanguageYAML, FromPath("config.d/app.yaml"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "C#", DisplayName(types.LanguageCSharp))
	assert.Equal(t, "C++", DisplayName(types.LanguageCPP))
	assert.Equal(t, "Plain Text", DisplayName(types.LanguagePlainText))
	assert.Equal(t, "rust", DisplayName("rust"))
}

func TestTablesStayInSync(t *testing.T) {
	for ext, lang := range byExtension {
		assert.True(t, Known(lang), "extension %s maps to %s which has no display name", ext, lang)
	}
	assert.Len(t, Tags(), len(displayNames))
}

func TestFilters(t *testing.T) {
	filters := Filters()
	assert.Equal(t, "All Files", filters[0].Name)
	assert.Equal(t, []string{"*"}, filters[0].Extensions)

	for _, f := range filters[1:] {
		for _, ext := range f.Extensions {
			_, ok := byExtension["."+ext]
			assert.True(t, ok, "filter %s offers .%s which is not classified", f.Name, ext)
		}
	}

	assert.Equal(t, []Filter{filters[0], filters[1]}, SaveFilters())
}
