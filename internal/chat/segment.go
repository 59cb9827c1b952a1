package chat

import "strings"

// SegmentKind distinguishes plain prose from fenced code.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentCode
)

// Segment is a run of message text between fence boundaries. The document
// renderer and the block extractor both consume segments, so they can never
// disagree about where a fence starts or ends.
type Segment struct {
	Kind      SegmentKind
	Language  string // code segments only
	Content   string
	StartLine int // first content line within the message, 0-based
	EndLine   int // last content line, inclusive
}

// fenceOpen reports whether a line opens a code fence and returns the trimmed
// language tag. Grammar: three backticks, optional tag, optional trailing
// whitespace.
func fenceOpen(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "```")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// fenceClose reports whether a line is a bare closing fence.
func fenceClose(line string) bool {
	return strings.TrimSpace(line) == "```"
}

// SplitSegments splits message text into alternating text and code segments.
// An unterminated code fence runs to end-of-text; content is never dropped.
func SplitSegments(text string) []Segment {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var segments []Segment
	var textLines []string
	textStart := 0

	flushText := func(end int) {
		if len(textLines) == 0 {
			return
		}
		segments = append(segments, Segment{
			Kind:      SegmentText,
			Content:   strings.Join(textLines, "\n"),
			StartLine: textStart,
			EndLine:   end,
		})
		textLines = nil
	}

	i := 0
	for i < len(lines) {
		lang, open := fenceOpen(lines[i])
		if !open {
			if len(textLines) == 0 {
				textStart = i
			}
			textLines = append(textLines, lines[i])
			i++
			continue
		}

		flushText(i - 1)

		bodyStart := i + 1
		var body []string
		i++
		for i < len(lines) && !fenceClose(lines[i]) {
			body = append(body, lines[i])
			i++
		}
		bodyEnd := i - 1
		if bodyEnd < bodyStart {
			bodyEnd = bodyStart
		}
		segments = append(segments, Segment{
			Kind:      SegmentCode,
			Language:  lang,
			Content:   strings.Join(body, "\n"),
			StartLine: bodyStart,
			EndLine:   bodyEnd,
		})
		if i < len(lines) {
			i++ // skip the closing fence
		}
	}

	flushText(len(lines) - 1)
	return segments
}

// ExtractBlocks returns the ordered fenced code blocks in a message. It is a
// full re-scan; callers replace any previously extracted blocks with the
// result.
func ExtractBlocks(text string) []CodeBlock {
	var blocks []CodeBlock
	for _, seg := range SplitSegments(text) {
		if seg.Kind != SegmentCode {
			continue
		}
		blocks = append(blocks, CodeBlock{
			Language:  seg.Language,
			Content:   seg.Content,
			StartLine: seg.StartLine,
			EndLine:   seg.EndLine,
		})
	}
	return blocks
}
