package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xonecas/catnip/internal/document"
)

// renderChatView renders the document window with a cursor highlight and a
// scrollbar. The cursor line is rendered from its raw text so the highlight
// background is not broken up by embedded color sequences.
func renderChatView(cache *document.Cache, vp *document.Viewport, width, height int, focused bool) string {
	innerWidth := width - 4     // border + padding
	textWidth := innerWidth - 2 // scrollbar column and gap
	contentHeight := height - 2

	if innerWidth < 4 || contentHeight < 1 {
		return ""
	}

	total := cache.Total()
	lines := cache.Lines()
	start, end := vp.Window(total)

	var rows []string
	for i := start; i < end; i++ {
		var row string
		if i == vp.Cursor() && focused {
			row = cursorLineStyle.Render(padToWidth(truncateToWidth(lines[i].Raw, textWidth), textWidth))
		} else {
			row = lines[i].Styled
		}
		rows = append(rows, padToWidth(row, textWidth))
	}
	if total == 0 {
		rows = append(rows, dimmedStyle.Render("Press i to type a message, ? for help."))
	}
	for len(rows) < contentHeight {
		rows = append(rows, strings.Repeat(" ", textWidth))
	}
	if len(rows) > contentHeight {
		rows = rows[:contentHeight]
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		strings.Join(rows, "\n"),
		" ",
		renderScrollbar(contentHeight, total, vp.Scroll()),
	)

	style := chatPanelStyle
	if focused {
		style = chatPanelFocusedStyle
	}
	return style.Width(innerWidth + 2).Height(contentHeight).Render(body)
}
