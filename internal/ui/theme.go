package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TrayTheme wraps the default Fyne theme with compact sizing and a fixed
// light or dark variant.
type TrayTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool // use the variant requested by the system
}

// NewTrayTheme returns the theme for a configured name: "light", "dark" or
// anything else for the system default.
func NewTrayTheme(name string) *TrayTheme {
	t := &TrayTheme{base: theme.DefaultTheme()}
	switch name {
	case "light":
		t.variant = theme.VariantLight
	case "dark":
		t.variant = theme.VariantDark
	default:
		t.follow = true
	}
	return t
}

func (t *TrayTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.follow {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *TrayTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *TrayTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *TrayTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
