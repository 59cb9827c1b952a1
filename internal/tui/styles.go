package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors - warm terminal palette for the Catnip chat client.
var (
	colorBrand  = lipgloss.Color("#FF9D00") // amber brand accent
	colorAccent = lipgloss.Color("#00CCFF") // cyan highlights

	colorError   = lipgloss.Color("#FF3366")
	colorSuccess = lipgloss.Color("#00FF66")
	colorMuted   = lipgloss.Color("#5555AA")

	colorBorder   = lipgloss.Color("#2A2A55")
	colorBorderHi = lipgloss.Color("#4040AA")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	sidebarFocusedStyle = sidebarStyle.
				BorderForeground(colorBorderHi)

	sidebarItemStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Padding(0, 1)

	sidebarSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#08080F")).
				Background(colorBrand).
				Bold(true).
				Padding(0, 1)

	chatPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	chatPanelFocusedStyle = chatPanelStyle.
				BorderForeground(colorBorderHi)

	cursorLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2A2A55"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(colorBrand).
				Bold(true)

	listOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorBrand).
				Padding(1, 2)

	listItemStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#08080F")).
				Background(colorAccent).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorBrand).
			Padding(1, 2).
			Margin(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	dimmedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorBrand)
)

// truncateToWidth truncates a string to fit within maxWidth display columns.
// Rune-aware to avoid cutting multi-byte characters.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	currentWidth := 0
	for i, r := range s {
		charWidth := lipgloss.Width(string(r))
		if currentWidth+charWidth > maxWidth {
			return s[:i]
		}
		currentWidth += charWidth
	}
	return s
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return truncateToWidth(s, maxWidth)
	}
	return truncateToWidth(s, maxWidth-3) + "..."
}

// padToWidth right-pads a string with spaces to exactly width columns.
func padToWidth(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
