package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-reportdoc/internal/render"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// documentTemplate wraps a body fragment in a complete HTML5 document.
// Arguments: lang, dir, title, body.
const documentTemplate = `<!DOCTYPE html>
<html lang="%s" dir="%s">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<main class="report">
%s
</main>
</body>
</html>`

const defaultTitle = "Report"

// DocumentMeta describes the document wrapped around converted content.
type DocumentMeta struct {
	Lang  string // BCP 47 tag, "en" when empty
	Title string
}

// Dir returns the text direction for the document language.
func (m DocumentMeta) Dir() string {
	if IsRTL(m.Lang) {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang string) bool {
	base, _, _ := strings.Cut(strings.ToLower(lang), "-")
	switch base {
	case "ar", "fa", "he", "ur":
		return true
	}
	return false
}

func wrapDocument(body string, meta DocumentMeta) string {
	lang := meta.Lang
	if lang == "" {
		lang = "en"
	}
	title := meta.Title
	if title == "" {
		title = defaultTitle
	}
	return fmt.Sprintf(documentTemplate,
		html.EscapeString(lang), meta.Dir(), html.EscapeString(title), body)
}

// HTMLConverter turns preprocessed text into a standalone HTML document.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, meta DocumentMeta) (string, error)
}

// ReportConverter renders generated report text with the report renderer.
type ReportConverter struct {
	renderer *render.Renderer
}

// NewReportConverter creates a ReportConverter. Page-break markers become
// PageBreakDiv elements; highlighter may be nil.
func NewReportConverter(highlighter render.CodeHighlighter) *ReportConverter {
	opts := []render.Option{render.WithPageBreakMarkup(PageBreakDiv)}
	if highlighter != nil {
		opts = append(opts, render.WithHighlighter(highlighter))
	}
	return &ReportConverter{renderer: render.New(opts...)}
}

// ToHTML renders content into a full document. Rendering cannot fail, but a
// canceled context still wins over a finished result.
func (c *ReportConverter) ToHTML(ctx context.Context, content string, meta DocumentMeta) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		return wrapDocument(c.renderer.Render(content), meta), nil
	})
}

// GoldmarkConverter converts CommonMark with GFM extensions.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with chroma highlighting
// that emits CSS classes rather than inline styles.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, meta DocumentMeta) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return wrapDocument(ConvertPlaceholders(buf.String()), meta), nil
	})
}

// runWithContext runs fn in a goroutine so that callers blocked on a large
// document can still be released by ctx.
func runWithContext(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		h, err := fn()
		done <- result{html: h, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
