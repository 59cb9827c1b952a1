package tui

import (
	"strings"

	"github.com/xonecas/catnip/internal/chat"
)

// renderSidebar renders the conversation list column. The selected row is
// highlighted; conversations with an active stream get a dot marker.
func renderSidebar(conversations *chat.List, selected int, active func(id string) bool, width, height int, focused bool) string {
	innerWidth := width - 2 // border

	var rows []string
	rows = append(rows, titleStyle.Render(truncateToWidth(" Chats", innerWidth)))

	if conversations.Len() == 0 {
		rows = append(rows, dimmedStyle.Render(" (none)"))
	}

	for i, conv := range conversations.All() {
		marker := "  "
		if active(conv.ID) {
			marker = "● "
		}
		label := truncateWithEllipsis(marker+conv.Title, innerWidth-2)

		if i == selected {
			rows = append(rows, sidebarSelectedStyle.Render(padToWidth(label, innerWidth-2)))
		} else {
			rows = append(rows, sidebarItemStyle.Render(label))
		}
	}

	// Pad to full height so the border is stable.
	for len(rows) < height-2 {
		rows = append(rows, "")
	}
	if len(rows) > height-2 && height > 2 {
		rows = rows[:height-2]
	}

	style := sidebarStyle
	if focused {
		style = sidebarFocusedStyle
	}
	return style.Width(innerWidth).Height(height - 2).Render(strings.Join(rows, "\n"))
}
