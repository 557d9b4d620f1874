package pipeline

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ChromaHighlighter colors fenced code with chroma. Output uses CSS classes,
// so CSS must be injected alongside the rendered document.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter

	mu     sync.RWMutex
	lexers map[string]chroma.Lexer
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		lexers: make(map[string]chroma.Lexer),
	}
}

// Highlight returns highlighted markup for code. ok is false when the
// language is unknown or tokenizing fails; the caller then escapes the code.
func (h *ChromaHighlighter) Highlight(code, language string) (string, bool) {
	lexer := h.lexer(language)
	if lexer == nil {
		return "", false
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// CSS returns the stylesheet for the token classes Highlight emits.
func (h *ChromaHighlighter) CSS() string {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return ""
	}
	return buf.String()
}

func (h *ChromaHighlighter) lexer(language string) chroma.Lexer {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return nil
	}

	h.mu.RLock()
	lexer, cached := h.lexers[language]
	h.mu.RUnlock()
	if cached {
		return lexer
	}

	lexer = lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match("file." + language)
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}

	h.mu.Lock()
	h.lexers[language] = lexer
	h.mu.Unlock()
	return lexer
}
