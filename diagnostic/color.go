// Copyright © 2026 The rexpr authors

package diagnostic

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps the values accepted by the --color flag.  Unknown
// values select ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// palette holds the styles of diagnostic output.
type palette struct {
	bold     *color.Color
	yellow   *color.Color
	boldRed  *color.Color
	boldBlue *color.Color
	boldCyan *color.Color
}

func newPalette(enabled bool) palette {
	style := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		bold:     style(color.Bold),
		yellow:   style(color.FgYellow),
		boldRed:  style(color.Bold, color.FgRed),
		boldBlue: style(color.Bold, color.FgBlue),
		boldCyan: style(color.Bold, color.FgCyan),
	}
}

// choosePalette selects the appropriate color palette based on the mode
// and the output file descriptor.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return newPalette(true)
	case ColorNever:
		return newPalette(false)
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return newPalette(false)
		}
		return newPalette(isTerminal(w))
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
