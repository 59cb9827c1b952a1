package constants

import "time"

// MaxVisibleLinesPerMessage caps the wrapped plain-text lines shown for a
// collapsed message before the ellipsis marker.
const MaxVisibleLinesPerMessage = 10

// DrainInterval is how often the render loop polls registered streams for
// buffered fragments. Short enough that streamed text appears live.
const DrainInterval = 50 * time.Millisecond

// StreamBufferSize is the per-stream fragment channel capacity. Producers
// block once the consumer falls this far behind, which bounds memory without
// dropping fragments.
const StreamBufferSize = 100

// DefaultCodeBlockLanguage labels code fences that carry no language tag.
const DefaultCodeBlockLanguage = "code"

// SidebarWidth is the fixed column width of the conversation sidebar.
const SidebarWidth = 24

// TitleMaxChars limits conversation titles derived from the first message.
const TitleMaxChars = 32

// InputCharLimit caps a single typed message.
const InputCharLimit = 4000

// LLMRequestTimeout caps a single streaming response.
const LLMRequestTimeout = 5 * time.Minute

// DefaultCopyShortcuts are the per-ordinal copy keys for code blocks within a
// message. A block past the end of the list gets no hint and no binding.
var DefaultCopyShortcuts = []string{"c", "C", "x", "X"}
