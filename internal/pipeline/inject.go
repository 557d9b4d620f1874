package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
)

// ErrCoverRender indicates the cover template failed to execute.
var ErrCoverRender = errors.New("cover template rendering failed")

// CSSInjector adds a stylesheet to a document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CoverInjector adds a cover page to a document.
type CoverInjector interface {
	InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error)
}

// TOCInjector adds a table of contents to a document.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// Compile-time interface checks.
var (
	_ CSSInjector   = (*CSSInjection)(nil)
	_ CoverInjector = (*CoverInjection)(nil)
	_ TOCInjector   = (*TOCInjection)(nil)
)

// insertAfterBodyOpen places fragment right after the <body ...> tag, or in
// front of the document when there is none.
func insertAfterBodyOpen(doc, fragment string) string {
	if idx := strings.Index(strings.ToLower(doc), "<body"); idx != -1 {
		if end := strings.IndexByte(doc[idx:], '>'); end != -1 {
			pos := idx + end + 1
			return doc[:pos] + fragment + doc[pos:]
		}
	}
	return fragment + doc
}

// CSSInjection adds CSS as a <style> element.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else after <body>, else
// in front of the document. Empty CSS leaves the document unchanged.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(cssContent) + "</style>"
	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	return insertAfterBodyOpen(htmlContent, block)
}

// sanitizeCSS keeps stylesheet text from closing its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// CoverData is the content of a report cover page.
type CoverData struct {
	Title        string
	Subtitle     string
	Organization string
	Sector       string
	Location     string
	PreparedBy   string
	Audience     string
	Date         string
	Version      string
	DocumentID   string
	Logo         template.URL // trusted: callers resolve it to an http(s) or file URL
	Dir          string       // "rtl" for right-to-left documents
}

// CoverInjection renders a cover template and places it first in the body.
type CoverInjection struct {
	tmpl *template.Template
}

// NewCoverInjection parses the cover template source.
func NewCoverInjection(tmplContent string) (*CoverInjection, error) {
	tmpl, err := template.New("cover").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing cover template: %w", err)
	}
	return &CoverInjection{tmpl: tmpl}, nil
}

// InjectCover renders the cover and inserts it after <body>. A nil data
// leaves the document unchanged.
func (c *CoverInjection) InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}
	return insertAfterBodyOpen(htmlContent, buf.String()), nil
}

// TOCData configures table of contents generation.
type TOCData struct {
	Title    string
	MinDepth int // shallowest heading level listed
	MaxDepth int // deepest heading level listed
}

type tocEntry struct {
	level int
	id    string
	text  string
}

// collectHeadings tokenizes the document and returns headings with an id
// whose level lies in [minDepth, maxDepth].
func collectHeadings(htmlContent string, minDepth, maxDepth int) []tocEntry {
	var (
		entries []tocEntry
		current *tocEntry
		text    strings.Builder
	)

	z := xhtml.NewTokenizer(strings.NewReader(htmlContent))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return entries
		case xhtml.StartTagToken:
			tok := z.Token()
			level := headingLevel(tok.Data)
			if level == 0 || current != nil {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "id" && a.Val != "" {
					current = &tocEntry{level: level, id: a.Val}
					text.Reset()
				}
			}
		case xhtml.TextToken:
			if current != nil {
				text.Write(z.Text())
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if current == nil || headingLevel(string(name)) != current.level {
				continue
			}
			current.text = strings.Join(strings.Fields(text.String()), " ")
			if current.level >= minDepth && current.level <= maxDepth && current.text != "" {
				entries = append(entries, *current)
			}
			current = nil
		}
	}
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// numberingState produces hierarchical numbers ("1.", "1.2.") for TOC
// entries. The shallowest first heading becomes depth 1 and skipped levels
// collapse to a direct child.
type numberingState struct {
	counters  [6]int
	baseLevel int
	lastDepth int
}

func (n *numberingState) next(level int) (number string, depth int) {
	if n.baseLevel == 0 {
		n.baseLevel = level
	}
	depth = max(level-n.baseLevel+1, 1)
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	n.counters[depth-1]++
	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.lastDepth = depth

	parts := make([]string, depth)
	for i := range parts {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// buildTOC renders entries as a numbered <nav>. Items are divs so list
// styling from the report stylesheet does not leak in.
func buildTOC(entries []tocEntry, title string) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<nav class="toc">`)
	if title != "" {
		sb.WriteString(`<h2 class="toc-title">` + html.EscapeString(title) + `</h2>`)
	}
	sb.WriteString(`<div class="toc-list">`)

	var numbering numberingState
	for _, e := range entries {
		number, depth := numbering.next(e.level)
		sb.WriteString(`<div class="toc-item toc-depth-` + strconv.Itoa(depth) + `">`)
		sb.WriteString(`<a href="#` + html.EscapeString(e.id) + `">`)
		sb.WriteString(`<span class="toc-number">` + number + `</span> `)
		sb.WriteString(html.EscapeString(e.text))
		sb.WriteString(`</a></div>`)
	}

	sb.WriteString(`</div></nav>`)
	return sb.String()
}

// coverEndMarker matches the element closing every cover template. A span
// is used because html/template strips comments.
var coverEndMarker = regexp.MustCompile(`(?i)<span[^>]*data-cover-end[^>]*>\s*</span>`)

// TOCInjection builds a numbered table of contents from heading ids.
type TOCInjection struct{}

// InjectTOC inserts the table of contents after the cover when there is
// one, else after <body>. Documents without eligible headings are returned
// unchanged, as is everything when data is nil.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	toc := buildTOC(collectHeadings(htmlContent, data.MinDepth, data.MaxDepth), data.Title)
	if toc == "" {
		return htmlContent, nil
	}

	if loc := coverEndMarker.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[1]] + toc + htmlContent[loc[1]:], nil
	}
	return insertAfterBodyOpen(htmlContent, toc), nil
}
