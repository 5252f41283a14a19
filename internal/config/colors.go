package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultSchemeName names the color scheme every document defines.
const DefaultSchemeName = "default"

// ColorNames lists the eight indexed colors of a palette row in order.
var ColorNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Palette is a terminal color scheme.
type Palette struct {
	DefaultForeground   colorful.Color
	DefaultBackground   colorful.Color
	CursorDefault       colorful.Color
	CursorText          colorful.Color
	SelectionForeground colorful.Color
	SelectionBackground colorful.Color

	Normal [8]colorful.Color
	Bright [8]colorful.Color
	Dim    [8]colorful.Color
}

// DefaultPalette returns the built-in color scheme.
func DefaultPalette() Palette {
	return Palette{
		DefaultForeground:   mustHex("#d0d0d0"),
		DefaultBackground:   mustHex("#1a1716"),
		CursorDefault:       mustHex("#bbbbbb"),
		CursorText:          mustHex("#1a1716"),
		SelectionForeground: mustHex("#c0c0c0"),
		SelectionBackground: mustHex("#404040"),
		Normal: hexRow("#000000", "#c63939", "#00a000", "#c4a000",
			"#4d79ff", "#b60ead", "#00a0a0", "#c0c0c0"),
		Bright: hexRow("#707070", "#ff0000", "#00ff00", "#ffff00",
			"#0000ff", "#ff00ff", "#00ffff", "#ffffff"),
		Dim: hexRow("#000000", "#b85450", "#009000", "#b09000",
			"#0000b0", "#b000b0", "#00b0b0", "#b0b0b0"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("config: invalid built-in color %q: %v", s, err))
	}
	return c
}

func hexRow(colors ...string) [8]colorful.Color {
	var row [8]colorful.Color
	for i, s := range colors {
		row[i] = mustHex(s)
	}
	return row
}

// ColorPreference is the light or dark appearance requested by the
// windowing system.
type ColorPreference uint8

// Color preferences.
const (
	PreferDark ColorPreference = iota
	PreferLight
)

// SchemeRef names a color scheme and carries its resolved palette.
type SchemeRef struct {
	Name    string
	Palette Palette
}

// ColorConfig is the color configuration of a profile. It is either a
// SimpleColorConfig or a DualColorConfig.
type ColorConfig interface {
	// For returns the scheme to use under the given preference.
	For(pref ColorPreference) SchemeRef

	isColorConfig()
}

// SimpleColorConfig uses one scheme regardless of preference.
type SimpleColorConfig struct {
	Scheme SchemeRef
}

// For implements ColorConfig.
func (c SimpleColorConfig) For(ColorPreference) SchemeRef { return c.Scheme }

func (SimpleColorConfig) isColorConfig() {}

// DualColorConfig uses separate schemes for light and dark appearance.
type DualColorConfig struct {
	Light SchemeRef
	Dark  SchemeRef
}

// For implements ColorConfig.
func (c DualColorConfig) For(pref ColorPreference) SchemeRef {
	if pref == PreferLight {
		return c.Light
	}
	return c.Dark
}

func (DualColorConfig) isColorConfig() {}
