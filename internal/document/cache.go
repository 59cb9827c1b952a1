// Package document derives the wrapped, styled, line-addressable view of a
// conversation from its message buffers, and tracks cursor and scroll state
// against it. Rebuilds are whole-conversation: fence boundaries can shift
// retroactively as streamed text arrives, so partial patching is never safe.
package document

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xonecas/catnip/internal/chat"
	"github.com/xonecas/catnip/internal/constants"
)

// Ref maps a flattened line back to its owning message.
type Ref struct {
	MessageIndex int
	Ellipsis     bool // line is the collapsed-message marker
}

// Line is one display line. Raw carries the unstyled text so a cursor
// highlight can be applied without fighting embedded ANSI sequences.
type Line struct {
	Raw    string
	Styled string
}

// Entry is the cached render of a single message.
type Entry struct {
	Lines     []Line
	Truncated bool
}

// Cache holds the rendered lines of one conversation at a known wrap width.
// Valid only for that width; any width change forces a full rebuild.
type Cache struct {
	shortcuts []string
	maxPlain  int

	width   int
	dirty   bool
	entries []Entry
	lines   []Line
	refs    []Ref
}

// NewCache creates an empty, dirty cache. shortcuts is the ordered
// copy-shortcut list for code block hints; maxPlainLines is the visible cap
// for collapsed messages.
func NewCache(shortcuts []string, maxPlainLines int) *Cache {
	if maxPlainLines <= 0 {
		maxPlainLines = constants.MaxVisibleLinesPerMessage
	}
	return &Cache{
		shortcuts: shortcuts,
		maxPlain:  maxPlainLines,
		width:     -1,
		dirty:     true,
	}
}

// MarkDirty flags the cache for rebuild on the next Sync.
func (c *Cache) MarkDirty() {
	c.dirty = true
}

// Sync rebuilds the cache if it is dirty or was built at a different width.
// Rebuilding fully replaces all entries; it is idempotent for unchanged
// content. Returns true if a rebuild happened.
func (c *Cache) Sync(conv *chat.Conversation, collapsed map[int]bool, width int) bool {
	if width != c.width {
		c.width = width
		c.dirty = true
	}
	if !c.dirty {
		return false
	}

	c.entries = nil
	c.lines = nil
	c.refs = nil
	c.dirty = false

	// Degenerate dimensions show nothing but must not panic; the next
	// valid width rebuilds.
	if width <= 0 || conv == nil {
		return true
	}

	for idx := range conv.Messages {
		entry := c.renderMessage(conv, idx, collapsed)
		c.entries = append(c.entries, entry)

		for _, ln := range entry.Lines {
			c.lines = append(c.lines, ln)
			c.refs = append(c.refs, Ref{MessageIndex: idx})
		}
		if entry.Truncated {
			c.lines = append(c.lines, Line{Raw: "...", Styled: ellipsisStyle.Render("...")})
			c.refs = append(c.refs, Ref{MessageIndex: idx, Ellipsis: true})
		}
		// Separator after every message.
		c.lines = append(c.lines, Line{})
		c.refs = append(c.refs, Ref{MessageIndex: idx})
	}

	return true
}

// Lines returns the flattened styled line sequence.
func (c *Cache) Lines() []Line {
	return c.lines
}

// Total returns the flattened line count.
func (c *Cache) Total() int {
	return len(c.lines)
}

// Ref resolves a flattened line index to its owning message. O(1).
func (c *Cache) Ref(line int) (Ref, bool) {
	if line < 0 || line >= len(c.refs) {
		return Ref{}, false
	}
	return c.refs[line], true
}

// Truncated reports whether the cached entry for a message is collapsed.
func (c *Cache) Truncated(msgIdx int) bool {
	if msgIdx < 0 || msgIdx >= len(c.entries) {
		return false
	}
	return c.entries[msgIdx].Truncated
}

// renderMessage builds the cache entry for one message: text segments are
// word-wrapped and styled by role, code segments become bordered blocks.
func (c *Cache) renderMessage(conv *chat.Conversation, idx int, collapsed map[int]bool) Entry {
	msg := conv.Messages[idx]
	style := roleStyle(string(msg.Role))

	// Actively streaming content is never hidden: the trailing assistant
	// message of a streaming conversation is exempt from truncation.
	streamingLast := conv.Streaming && idx == len(conv.Messages)-1 && msg.Role == chat.RoleAssistant
	collapsible := collapsed[idx] && !streamingLast

	var entry Entry
	blockOrdinal := 0
	plainShown := 0

	for _, seg := range chat.SplitSegments(msg.Content) {
		switch seg.Kind {
		case chat.SegmentText:
			for _, raw := range wrapText(seg.Content, c.width) {
				if collapsible && plainShown >= c.maxPlain {
					entry.Truncated = true
					continue
				}
				entry.Lines = append(entry.Lines, Line{Raw: raw, Styled: style.Render(raw)})
				plainShown++
			}

		case chat.SegmentCode:
			entry.Lines = append(entry.Lines, c.renderCodeBlock(seg, blockOrdinal)...)
			blockOrdinal++
		}
	}

	return entry
}

// renderCodeBlock renders a code segment as a bordered block: a top border
// carrying the language tag, one highlighted line per source line, and a
// bottom border carrying the ordinal copy-shortcut hint.
func (c *Cache) renderCodeBlock(seg chat.Segment, ordinal int) []Line {
	lang := seg.Language
	if lang == "" {
		lang = constants.DefaultCodeBlockLanguage
	}

	var lines []Line

	label := " " + lang + " "
	fill := c.width - lipgloss.Width(label) - 3
	if fill < 0 {
		fill = 0
	}
	top := "┌─" + label + strings.Repeat("─", fill) + "┐"
	lines = append(lines, Line{Raw: top, Styled: codeEdgeStyle.Render(top)})

	highlighted := highlightCode(seg.Content, seg.Language)
	for i, src := range strings.Split(seg.Content, "\n") {
		styledCode := src
		if i < len(highlighted) {
			styledCode = highlighted[i]
		}
		lines = append(lines, Line{
			Raw:    "│ " + src,
			Styled: codeEdgeStyle.Render("│ ") + styledCode,
		})
	}

	hint := ""
	if ordinal < len(c.shortcuts) {
		hint = fmt.Sprintf(" Copy [%s] ", c.shortcuts[ordinal])
	}
	fill = c.width - lipgloss.Width(hint) - 2
	if fill < 0 {
		fill = 0
	}
	bottom := "└" + strings.Repeat("─", fill) + hint + "┘"
	lines = append(lines, Line{Raw: bottom, Styled: codeEdgeStyle.Render(bottom)})

	return lines
}
