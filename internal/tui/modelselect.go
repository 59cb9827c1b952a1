package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xonecas/catnip/internal/provider"
)

// renderModelSelect renders the centered model picker overlay.
func renderModelSelect(refs []provider.ModelRef, selected, width, height int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Select model"))
	lines = append(lines, "")

	if len(refs) == 0 {
		lines = append(lines, dimmedStyle.Render("no providers configured"))
	}

	for i, ref := range refs {
		label := ref.String()
		if i == selected {
			lines = append(lines, listSelectedStyle.Render(" "+label+" "))
		} else {
			lines = append(lines, listItemStyle.Render(" "+label+" "))
		}
	}

	lines = append(lines, "")
	lines = append(lines, helpDescStyle.Render("enter: choose  esc: cancel"))

	box := listOverlayStyle.Render(strings.Join(lines, "\n"))
	return centerBox(box, width, height)
}

// centerBox positions a rendered box in the middle of the screen.
func centerBox(box string, width, height int) string {
	boxWidth := lipgloss.Width(box)
	boxHeight := lipgloss.Height(box)

	padLeft := (width - boxWidth) / 2
	padTop := (height - boxHeight) / 2
	if padLeft < 0 {
		padLeft = 0
	}
	if padTop < 0 {
		padTop = 0
	}

	leftPad := strings.Repeat(" ", padLeft)
	boxLines := strings.Split(box, "\n")
	for i, line := range boxLines {
		boxLines[i] = leftPad + line
	}

	return strings.Repeat("\n", padTop) + strings.Join(boxLines, "\n")
}
