package document

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// Shared highlighter state, loaded once on first use and read-only after.
var (
	highlightOnce     sync.Once
	highlightStyle    *chroma.Style
	highlightFmt      chroma.Formatter
	highlightFallback chroma.Lexer
)

func initHighlighter() {
	highlightStyle = chromaStyles.Get("monokai")
	if highlightStyle == nil {
		highlightStyle = chromaStyles.Fallback
	}
	highlightFmt = formatters.Get("terminal256")
	if highlightFmt == nil {
		highlightFmt = formatters.Fallback
	}
	highlightFallback = lexers.Fallback
}

// highlightCode returns the code split into ANSI-colored lines. Unknown or
// absent language tags fall back to the plain-text lexer; any tokenizer or
// formatter failure falls back to the raw lines, never an error.
func highlightCode(code, language string) []string {
	highlightOnce.Do(initHighlighter)

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = highlightFallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return strings.Split(code, "\n")
	}

	var buf strings.Builder
	if err := highlightFmt.Format(&buf, highlightStyle, iterator); err != nil {
		return strings.Split(code, "\n")
	}

	// The formatter preserves line structure, so output lines map 1:1 to
	// source lines (modulo a trailing newline).
	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	src := strings.Split(code, "\n")
	if len(out) != len(src) {
		return src
	}
	return out
}
