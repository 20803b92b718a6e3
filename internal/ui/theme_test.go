package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestTrayTheme_FixedVariant(t *testing.T) {
	test.NewTempApp(t)

	dark := NewTrayTheme("dark")
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	light := NewTrayTheme("light")
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))
}

func TestTrayTheme_FollowsSystem(t *testing.T) {
	test.NewTempApp(t)

	sys := NewTrayTheme("system")
	for _, variant := range []fyne.ThemeVariant{theme.VariantLight, theme.VariantDark} {
		assert.Equal(t,
			theme.DefaultTheme().Color(theme.ColorNameBackground, variant),
			sys.Color(theme.ColorNameBackground, variant))
	}
}

func TestTrayTheme_CompactText(t *testing.T) {
	assert.Equal(t, float32(12), NewTrayTheme("").Size(theme.SizeNameText))
}
