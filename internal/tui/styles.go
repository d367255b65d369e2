// Package tui provides the interactive split-pane host for splitter using bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

// Dark theme colour palette (for dark terminal backgrounds).
const (
	ColourAmber      = lipgloss.Color("214") // #FFB000 - Headers, selected divider
	ColourAmberDim   = lipgloss.Color("136") // #996600 - Dividers, separators
	ColourAmberLight = lipgloss.Color("222") // #FFD966 - Body text, values
	ColourAmberFaded = lipgloss.Color("178") // #B38F00 - Labels, secondary text
	ColourBackground = lipgloss.Color("0")   // #000000 - Terminal background
	ColourSuccess    = lipgloss.Color("82")  // #00FF00 - Expanded notices
	ColourWarning    = lipgloss.Color("208") // #FFAA00 - Diagnostics
	ColourError      = lipgloss.Color("196") // #FF3300 - Errors
)

// Light theme colour palette (for light terminal backgrounds).
const (
	ColourAmberDark       = lipgloss.Color("94")  // #8B6914 - Headers, selected divider
	ColourAmberDarkDim    = lipgloss.Color("58")  // #5C4A0A - Dividers, separators
	ColourAmberDarkMid    = lipgloss.Color("94")  // #6B5A1E - Body text, values
	ColourAmberDarkFaded  = lipgloss.Color("101") // #7A6A30 - Labels, secondary text
	ColourBackgroundLight = lipgloss.Color("231") // #FFFFFF - Light background reference
	ColourSuccessDark     = lipgloss.Color("22")  // #008000 - Expanded notices
	ColourWarningDark     = lipgloss.Color("166") // #CC5500 - Diagnostics
	ColourErrorDark       = lipgloss.Color("160") // #CC0000 - Errors
)

// Divider glyphs.
const (
	DividerVertical       = "│"
	DividerHorizontal     = "─"
	DividerVerticalBold   = "┃"
	DividerHorizontalBold = "━"
)

// Status indicator icons
const (
	IconCollapsed = "▸"
	IconExpanded  = "▾"
	IconWarning   = "⚠"
	IconError     = "✗"
	IconBrand     = "◆"
)

// Styles contains all lipgloss styles for the UI.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style

	// Dividers: idle, keyboard-selected, and while a drag holds the guard.
	Divider         lipgloss.Style
	DividerSelected lipgloss.Style
	DividerActive   lipgloss.Style

	PanelTitle     lipgloss.Style
	PanelCollapsed lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	TooSmallMessage lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	Brand lipgloss.Style
}

// DarkStyles returns the amber theme optimised for dark terminal backgrounds.
func DarkStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(ColourAmberFaded),
		Value:  lipgloss.NewStyle().Foreground(ColourAmberLight),

		Divider:         lipgloss.NewStyle().Foreground(ColourAmberDim),
		DividerSelected: lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),
		DividerActive:   lipgloss.NewStyle().Foreground(ColourBackground).Background(ColourAmber),

		PanelTitle:     lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),
		PanelCollapsed: lipgloss.NewStyle().Foreground(ColourAmberDim),

		Success: lipgloss.NewStyle().Foreground(ColourSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColourWarning),
		Error:   lipgloss.NewStyle().Foreground(ColourError),

		TooSmallMessage: lipgloss.NewStyle().Foreground(ColourWarning).Bold(true),

		HelpBar: lipgloss.NewStyle().Foreground(ColourAmberDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourAmberFaded),

		Brand: lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),
	}
}

// LightStyles returns the amber theme optimised for light terminal backgrounds.
func LightStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),
		Value:  lipgloss.NewStyle().Foreground(ColourAmberDarkMid),

		Divider:         lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		DividerSelected: lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),
		DividerActive:   lipgloss.NewStyle().Foreground(ColourBackgroundLight).Background(ColourAmberDark),

		PanelTitle:     lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),
		PanelCollapsed: lipgloss.NewStyle().Foreground(ColourAmberDarkDim),

		Success: lipgloss.NewStyle().Foreground(ColourSuccessDark),
		Warning: lipgloss.NewStyle().Foreground(ColourWarningDark),
		Error:   lipgloss.NewStyle().Foreground(ColourErrorDark),

		TooSmallMessage: lipgloss.NewStyle().Foreground(ColourWarningDark).Bold(true),

		HelpBar: lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),

		Brand: lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),
	}
}

// GetStyles returns the Styles for the given theme.
// Falls back to dark theme for unknown theme values.
func GetStyles(theme Theme) Styles {
	switch theme {
	case ThemeLight:
		return LightStyles()
	default:
		return DarkStyles()
	}
}
