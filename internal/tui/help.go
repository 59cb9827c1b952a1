package tui

import (
	"strings"
)

type helpItem struct {
	key  string
	desc string
}

var helpItems = []helpItem{
	{"q / Ctrl+C", "Quit"},
	{"i", "Compose a message"},
	{"n", "New conversation"},
	{"r", "Rename conversation"},
	{"d", "Delete conversation"},
	{"m", "Select model"},
	{"s", "Toggle sidebar"},
	{"Tab", "Switch focus"},
	{"j / k, ↓ / ↑", "Move cursor"},
	{"Ctrl+D / Ctrl+U", "Half page down / up"},
	{"PgDn / PgUp", "Page down / up"},
	{"g / G", "Jump to top / bottom"},
	{"e", "Expand / collapse message"},
	{"c C x X", "Copy Nth code block at cursor"},
	{"Esc", "Cancel / clear error"},
	{"?", "Toggle help"},
}

// RenderHelp renders the help overlay.
func RenderHelp(width, height int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("⌨ Keyboard Shortcuts"))
	lines = append(lines, "")

	maxKeyLen := 0
	for _, item := range helpItems {
		if len(item.key) > maxKeyLen {
			maxKeyLen = len(item.key)
		}
	}

	for _, item := range helpItems {
		key := helpKeyStyle.Render(padRight(item.key, maxKeyLen))
		desc := helpDescStyle.Render(item.desc)
		lines = append(lines, key+"  "+desc)
	}

	box := helpStyle.Render(strings.Join(lines, "\n"))
	return centerBox(box, width, height)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
