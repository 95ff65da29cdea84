package types

// Language is the tag used to select highlighting and the status-bar label.
type Language string

const (
	LanguagePlainText  Language = "plaintext"
	LanguageHTML       Language = "html"
	LanguageXML        Language = "xml"
	LanguageJSON       Language = "json"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageCSharp     Language = "csharp"
	LanguageCSS        Language = "css"
	LanguageSCSS       Language = "scss"
	LanguageLess       Language = "less"
	LanguageJava       Language = "java"
	LanguageSQL        Language = "sql"
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguagePython     Language = "python"
	LanguageMarkdown   Language = "markdown"
	LanguageYAML       Language = "yaml"
)

func (l Language) String() string {
	return string(l)
}
