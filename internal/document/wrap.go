package document

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// wrapText wraps text to fit within maxWidth display columns, preserving
// words. Uses lipgloss.Width for proper Unicode width calculation. Long
// words that exceed maxWidth are hard-wrapped to prevent overflow.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}

		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		currentLine := ""
		for _, word := range words {
			wordWidth := lipgloss.Width(word)

			// Hard-wrap words wider than the viewport.
			if wordWidth > maxWidth {
				if currentLine != "" {
					lines = append(lines, currentLine)
					currentLine = ""
				}
				for len(word) > 0 {
					chunk := truncateToWidth(word, maxWidth)
					if chunk == "" {
						break
					}
					lines = append(lines, chunk)
					word = word[len(chunk):]
				}
				continue
			}

			if currentLine == "" {
				currentLine = word
				continue
			}
			if lipgloss.Width(currentLine)+1+wordWidth <= maxWidth {
				currentLine += " " + word
			} else {
				lines = append(lines, currentLine)
				currentLine = word
			}
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
	}

	return lines
}

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
