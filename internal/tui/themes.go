package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Theme represents the colour theme for the TUI.
type Theme string

const (
	// ThemeAuto automatically detects the terminal background colour.
	ThemeAuto Theme = "auto"
	// ThemeDark uses the amber colour palette designed for dark backgrounds.
	ThemeDark Theme = "dark"
	// ThemeLight uses darker colours designed for light backgrounds.
	ThemeLight Theme = "light"
)

// DetectTheme queries the terminal behind w for its background colour.
// Falls back to ThemeDark if detection fails.
func DetectTheme(w io.Writer) Theme {
	if termenv.NewOutput(w).HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ResolveTheme converts ThemeAuto to the theme detected on w.
// Any other valid theme is returned unchanged; invalid names become ThemeDark.
func ResolveTheme(configured Theme, w io.Writer) Theme {
	switch configured {
	case ThemeAuto:
		return DetectTheme(w)
	case ThemeDark, ThemeLight:
		return configured
	default:
		return ThemeDark
	}
}

// ValidTheme checks if the given string is a valid theme name.
func ValidTheme(s string) bool {
	switch Theme(s) {
	case ThemeAuto, ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}
