// Package render turns generated report text into an HTML fragment.
//
// The input is loosely structured text that follows a handful of
// markdown-like conventions: headings, emphasis, bullet lines, code fences,
// a fixed horizontal-rule token, a <page-break> marker and informal tables
// whose cells are separated by runs of spaces, tabs or pipes. Rendering is a
// single forward pass over the lines, driven by a three-state machine
// (normal, in table, in fence). It never fails: malformed input degrades to
// plain text.
package render

import "strings"

// PageBreakMarker is the inline token that requests a print page break.
const PageBreakMarker = "<page-break>"

// RuleToken is the horizontal-rule line emitted between report sections.
var RuleToken = strings.Repeat("-", 37)

const ruleHTML = `<hr class="report-rule" />`

// CodeHighlighter renders the body of a fenced block with syntax colouring.
// It returns ok == false when the language is unknown, in which case the
// block is escaped and emitted as plain preformatted text.
type CodeHighlighter interface {
	Highlight(code, language string) (html string, ok bool)
}

// Renderer converts report text to HTML. The zero value is ready to use and
// strips page-break markers. A Renderer holds no per-call state, so one
// instance may be shared by concurrent callers.
type Renderer struct {
	highlighter CodeHighlighter
	pageBreak   string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlighter enables syntax highlighting for fences that name a language.
func WithHighlighter(h CodeHighlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// WithPageBreakMarkup replaces each page-break marker with the given markup
// instead of stripping it.
func WithPageBreakMarkup(markup string) Option {
	return func(r *Renderer) {
		r.pageBreak = markup
	}
}

// New creates a Renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = &Renderer{}

// Render converts text with the default renderer.
func Render(text string) string {
	return defaultRenderer.Render(text)
}

// Render converts text to an HTML fragment. Empty input yields "".
func (r *Renderer) Render(text string) string {
	if text == "" {
		return ""
	}

	m := &machine{r: r}
	for _, line := range strings.Split(text, "\n") {
		m.step(line)
	}
	m.finish()

	return joinBlocks(m.blocks)
}

type state int

const (
	stateNormal state = iota
	stateInTable
	stateInFence
)

type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockItem
	blockRule
	blockTable
	blockCode
	blockBreak
)

type block struct {
	kind blockKind
	html string
}

// machine is the per-call accumulator. It is never shared.
type machine struct {
	r      *Renderer
	state  state
	blocks []block
	table  tableBuilder
	fence  fenceBuffer
}

func (m *machine) emit(kind blockKind, html string) {
	m.blocks = append(m.blocks, block{kind: kind, html: html})
}

// step feeds one input line through the state machine.
func (m *machine) step(raw string) {
	line := strings.TrimSuffix(raw, "\r")

	if m.state == stateInFence {
		m.stepFence(line)
		return
	}

	if isFenceDelimiter(line) {
		m.closeTable()
		m.openFence(line)
		return
	}

	line, markerOnly := m.takePageBreaks(line)
	if markerOnly {
		return
	}

	if before, after, ok := cutRule(line); ok {
		if before = strings.TrimSpace(before); before != "" {
			m.stepText(before)
		}
		m.closeTable()
		m.emit(blockRule, ruleHTML)
		if after = strings.TrimSpace(after); after != "" {
			m.stepText(after)
		}
		return
	}
	m.stepText(line)
}

// stepText handles a fence-free line in the normal or table state.
func (m *machine) stepText(line string) {
	if m.state == stateInTable {
		if m.continueTable(line) {
			return
		}
		m.closeTable()
	}

	m.classify(line)
}

// finish flushes whatever block is still open at end of input.
func (m *machine) finish() {
	switch m.state {
	case stateInTable:
		m.closeTable()
	case stateInFence:
		// An unterminated fence keeps everything up to end of input.
		m.closeFence()
	}
}

// takePageBreaks strips page-break markers from line. With break markup
// configured, one break block is emitted per marker and markerOnly reports
// whether nothing but markers (and whitespace) was on the line.
func (m *machine) takePageBreaks(line string) (rest string, markerOnly bool) {
	n := strings.Count(line, PageBreakMarker)
	if n == 0 {
		return line, false
	}

	rest = strings.ReplaceAll(line, PageBreakMarker, "")
	if m.r.pageBreak == "" {
		return rest, false
	}

	m.closeTable()
	for range n {
		m.emit(blockBreak, m.r.pageBreak)
	}
	return rest, strings.TrimSpace(rest) == ""
}

// classify handles a line in the normal state. Rule and separator checks come
// before the table test so that a dash-only line is never read as a row.
func (m *machine) classify(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case isRule(trimmed):
		m.emit(blockRule, ruleHTML)
	case isSeparatorLine(trimmed):
		// Markdown header separators carry no content.
	case LooksLikeTableRow(line, false):
		m.table.open(SplitCells(line))
		m.state = stateInTable
	default:
		if level, text, ok := parseHeading(line); ok {
			m.emit(blockHeading, renderHeading(level, text))
			return
		}
		if text, ok := parseListItem(line); ok {
			m.emit(blockItem, renderListItem(text))
			return
		}
		m.emit(blockText, formatInline(line))
	}
}

// continueTable reports whether line was consumed by the open table.
// Separator rows are swallowed without ending table mode.
func (m *machine) continueTable(line string) bool {
	trimmed := strings.TrimSpace(line)
	if isRule(trimmed) {
		return false
	}
	if isSeparatorLine(trimmed) {
		return true
	}
	if !LooksLikeTableRow(line, true) {
		return false
	}
	m.table.addRow(SplitCells(line))
	return true
}

func (m *machine) closeTable() {
	if m.state != stateInTable {
		return
	}
	m.emit(blockTable, m.table.close())
	m.state = stateNormal
}

// joinBlocks concatenates blocks with line breaks, leaving out the break on
// either side of a list item.
func joinBlocks(blocks []block) string {
	var buf strings.Builder
	for i, b := range blocks {
		if i > 0 && b.kind != blockItem && blocks[i-1].kind != blockItem {
			buf.WriteString("<br />")
		}
		buf.WriteString(b.html)
	}
	return buf.String()
}

// isRule reports whether a trimmed line is the horizontal-rule token. Longer
// dash runs count too; generated text is not always exact about the length.
func isRule(trimmed string) bool {
	if len(trimmed) < len(RuleToken) {
		return false
	}
	return strings.Trim(trimmed, "-") == ""
}

// cutRule splits a line around an embedded rule token. Dash-only lines and
// table separator rows are left to classify.
func cutRule(line string) (before, after string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if isRule(trimmed) || isSeparatorLine(trimmed) {
		return "", "", false
	}
	i := strings.Index(line, RuleToken)
	if i == -1 {
		return "", "", false
	}
	j := i + len(RuleToken)
	for j < len(line) && line[j] == '-' {
		j++
	}
	return line[:i], line[j:], true
}

// isSeparatorLine reports whether a trimmed, non-empty line is made only of
// dashes, pipes, colons and whitespace.
func isSeparatorLine(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '-', '|', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
