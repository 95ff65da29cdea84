//go:build !nogui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// editorTheme pins the light or dark variant and scales the text size for
// the View menu zoom.
type editorTheme struct {
	base     fyne.Theme
	variant  fyne.ThemeVariant
	textSize float32
}

func newEditorTheme(name string, textSize float32) *editorTheme {
	variant := theme.VariantDark
	if name == "light" {
		variant = theme.VariantLight
	}
	return &editorTheme{
		base:     theme.DefaultTheme(),
		variant:  variant,
		textSize: clampFontSize(textSize),
	}
}

func (t *editorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

func (t *editorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *editorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *editorTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return t.textSize
	}
	return t.base.Size(name)
}
