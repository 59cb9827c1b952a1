package document

import "github.com/charmbracelet/lipgloss"

// Role and chrome colors for document lines. The surrounding panel chrome
// lives in the tui package; these cover only what the cache itself styles.
var (
	colorUser      = lipgloss.Color("#FFCC00") // warm yellow for user messages
	colorAssistant = lipgloss.Color("#00FF66") // green for assistant messages
	colorCodeEdge  = lipgloss.Color("#66FF99") // code block borders
	colorEllipsis  = lipgloss.Color("#5555AA") // collapsed-message marker

	userStyle = lipgloss.NewStyle().
			Foreground(colorUser)

	assistantStyle = lipgloss.NewStyle().
			Foreground(colorAssistant)

	codeEdgeStyle = lipgloss.NewStyle().
			Foreground(colorCodeEdge)

	ellipsisStyle = lipgloss.NewStyle().
			Foreground(colorEllipsis)
)

// roleStyle returns the display style for a message role.
func roleStyle(role string) lipgloss.Style {
	if role == "user" {
		return userStyle
	}
	return assistantStyle
}
