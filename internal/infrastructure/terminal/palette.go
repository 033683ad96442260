// Package terminal draws browsing state and notifications on a text terminal.
package terminal

import (
	"os"

	"github.com/fatih/color"
)

// Palette holds the attributes used for one theme.
type Palette struct {
	Title    *color.Color
	Dim      *color.Color
	Level    *color.Color
	Accent   *color.Color
	Info     *color.Color
	Success  *color.Color
	Warning  *color.Color
	Error    *color.Color
	disabled bool
}

// LightPalette suits terminals with a light background.
func LightPalette() Palette {
	return Palette{
		Title:   color.New(color.FgBlack, color.Bold),
		Dim:     color.New(color.FgHiBlack),
		Level:   color.New(color.FgBlue),
		Accent:  color.New(color.FgMagenta),
		Info:    color.New(color.FgBlue),
		Success: color.New(color.FgGreen),
		Warning: color.New(color.FgYellow),
		Error:   color.New(color.FgRed),
	}
}

// DarkPalette suits terminals with a dark background.
func DarkPalette() Palette {
	return Palette{
		Title:   color.New(color.FgHiWhite, color.Bold),
		Dim:     color.New(color.Faint),
		Level:   color.New(color.FgHiCyan),
		Accent:  color.New(color.FgHiMagenta),
		Info:    color.New(color.FgCyan),
		Success: color.New(color.FgHiGreen),
		Warning: color.New(color.FgHiYellow),
		Error:   color.New(color.FgHiRed),
	}
}

// PlainPalette never emits escape sequences.
func PlainPalette() Palette {
	return Palette{disabled: true}
}

func (p Palette) paint(c *color.Color, text string) string {
	if p.disabled || c == nil || text == "" {
		return text
	}
	return c.Sprint(text)
}

// UseColors decides whether escape sequences should be written at all.
func UseColors(configured bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configured
}

// PaletteFor picks the palette for the given preference.
func PaletteFor(useColors, dark bool) Palette {
	switch {
	case !useColors:
		return PlainPalette()
	case dark:
		return DarkPalette()
	default:
		return LightPalette()
	}
}
