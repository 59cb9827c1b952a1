package document

// Viewport tracks the cursor and scroll offset over a flattened line
// sequence. Follow mode pins the scroll to the bottom as content grows; any
// explicit scroll away from the bottom releases it.
type Viewport struct {
	height int
	cursor int
	scroll int
	follow bool
}

// NewViewport creates a viewport in follow mode, matching a fresh
// conversation view that tracks incoming content.
func NewViewport() *Viewport {
	return &Viewport{follow: true}
}

// SetHeight updates the visible line count. Zero or negative heights are
// tolerated; they just render no lines until a resize fixes them.
func (v *Viewport) SetHeight(h int) {
	v.height = h
}

// Height returns the visible line count.
func (v *Viewport) Height() int {
	return v.height
}

// Cursor returns the absolute cursor line.
func (v *Viewport) Cursor() int {
	return v.cursor
}

// Scroll returns the first visible line.
func (v *Viewport) Scroll() int {
	return v.scroll
}

// Following reports whether the view is pinned to the bottom.
func (v *Viewport) Following() bool {
	return v.follow
}

// Reset returns the viewport to its initial follow-bottom state, used on
// conversation switch.
func (v *Viewport) Reset() {
	v.cursor = 0
	v.scroll = 0
	v.follow = true
}

// CursorDown moves the cursor down by n lines (clamped by the next Clamp).
func (v *Viewport) CursorDown(n int) {
	v.cursor += n
}

// CursorUp moves the cursor up by n lines. Any upward move releases follow
// mode; the view stops tracking the bottom until JumpBottom.
func (v *Viewport) CursorUp(n int) {
	v.cursor -= n
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.follow = false
}

// JumpTop moves the cursor and scroll to the start of the document.
func (v *Viewport) JumpTop() {
	v.cursor = 0
	v.scroll = 0
	v.follow = false
}

// JumpBottom moves the cursor to the last line and pins the view to the
// bottom until the next explicit scroll.
func (v *Viewport) JumpBottom(total int) {
	if total > 0 {
		v.cursor = total - 1
	} else {
		v.cursor = 0
	}
	v.follow = true
}

// Clamp re-establishes the invariants after any content mutation or cursor
// move: cursor < total, scroll <= max(0, total-height), cursor visible. In
// follow mode both the cursor and the scroll are pinned to the bottom so the
// view keeps tracking incoming content.
func (v *Viewport) Clamp(total int) {
	if total <= 0 {
		v.cursor = 0
		v.scroll = 0
		return
	}

	if v.follow {
		v.cursor = total - 1
	}
	if v.cursor >= total {
		v.cursor = total - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}

	maxScroll := total - v.height
	if maxScroll < 0 {
		maxScroll = 0
	}

	if v.follow {
		v.scroll = maxScroll
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	if v.scroll < 0 {
		v.scroll = 0
	}

	// Keep the cursor inside the window.
	if v.height > 0 {
		if v.cursor < v.scroll {
			v.scroll = v.cursor
		} else if v.cursor >= v.scroll+v.height {
			v.scroll = v.cursor + 1 - v.height
		}
	}
}

// Window returns the half-open visible line range [start, end) for a
// document of the given total length.
func (v *Viewport) Window(total int) (int, int) {
	if v.height <= 0 || total <= 0 {
		return 0, 0
	}
	start := v.scroll
	if start > total {
		start = total
	}
	end := start + v.height
	if end > total {
		end = total
	}
	return start, end
}
