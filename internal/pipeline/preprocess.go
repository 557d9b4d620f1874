package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-reportdoc/internal/render"
)

// Private Use Area placeholders survive Goldmark untouched, so raw HTML is
// never needed: they become markup after conversion.
const (
	MarkStartPlaceholder = "\uE000" // U+E000
	MarkEndPlaceholder   = "\uE001" // U+E001
	PageBreakPlaceholder = "\uE002" // U+E002
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

const byteOrderMark = "\uFEFF"

// Preprocessor prepares source text before HTML conversion.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// ReportPreprocessor normalizes generated report text. Blank lines are kept
// as they are: the report renderer turns each one into a line break.
type ReportPreprocessor struct{}

// Preprocess normalizes line endings and drops a leading byte order mark.
func (p *ReportPreprocessor) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// MarkdownPreprocessor prepares CommonMark input for Goldmark.
type MarkdownPreprocessor struct{}

// Preprocess normalizes line endings, turns ==text== and page-break markers
// into placeholders, and caps runs of blank lines.
func (p *MarkdownPreprocessor) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	content = convertHighlights(content)
	content = isolatePageBreaks(content)
	return compressBlankLines(content)
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// isolatePageBreaks puts each page-break placeholder in its own paragraph so
// it never glues onto a heading or list line.
func isolatePageBreaks(content string) string {
	return strings.ReplaceAll(content, render.PageBreakMarker, "\n\n"+PageBreakPlaceholder+"\n\n")
}

// pageBreakParagraph is how Goldmark emits an isolated placeholder.
const pageBreakParagraph = "<p>" + PageBreakPlaceholder + "</p>"

// PageBreakDiv is the print-only element standing in for a page break.
const PageBreakDiv = `<div class="page-break"></div>`

// ConvertPlaceholders turns highlight and page-break placeholders into markup.
func ConvertPlaceholders(content string) string {
	content = strings.ReplaceAll(content, pageBreakParagraph, PageBreakDiv)
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
		PageBreakPlaceholder, PageBreakDiv,
	).Replace(content)
}

// StripPageBreaks removes page-break elements, for screen-only output.
func StripPageBreaks(content string) string {
	return strings.ReplaceAll(content, PageBreakDiv, "")
}
