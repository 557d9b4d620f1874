package render

import "strings"

const fenceDelimiter = "```"

// fenceBuffer collects the raw lines of an open code fence.
type fenceBuffer struct {
	language string
	lines    []string
}

func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter)
}

// openFence starts a fence from its opening line. Text after the backticks
// is the language hint, unless the same line also closes the fence.
func (m *machine) openFence(line string) {
	rest := strings.TrimSpace(line)[len(fenceDelimiter):]

	if end := strings.Index(rest, fenceDelimiter); end != -1 {
		m.fence = fenceBuffer{lines: []string{rest[:end]}}
		m.closeFence()
		m.stepTrailing(rest[end+len(fenceDelimiter):])
		return
	}

	language := ""
	if fields := strings.Fields(rest); len(fields) > 0 {
		language = fields[0]
	}
	m.fence = fenceBuffer{language: language}
	m.state = stateInFence
}

// stepFence appends a line to the open fence or closes it. Fence content is
// taken verbatim: no marker, heading, list or table rule applies inside.
func (m *machine) stepFence(line string) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fenceDelimiter) {
		m.fence.lines = append(m.fence.lines, line)
		return
	}

	m.closeFence()
	m.stepTrailing(trimmed[len(fenceDelimiter):])
}

// stepTrailing processes text left after a closing delimiter as its own line.
func (m *machine) stepTrailing(rest string) {
	if strings.TrimSpace(rest) != "" {
		m.step(strings.TrimSpace(rest))
	}
}

func (m *machine) closeFence() {
	code := trimBlankLines(m.fence.lines)
	m.emit(blockCode, m.r.renderCode(code, m.fence.language))
	m.fence = fenceBuffer{}
	m.state = stateNormal
}

func (r *Renderer) renderCode(code, language string) string {
	if language == "" {
		return `<pre class="report-code"><code>` + escapeHTML(code) + `</code></pre>`
	}

	lang := escapeHTML(language)
	body := ""
	if r.highlighter != nil {
		if highlighted, ok := r.highlighter.Highlight(code, language); ok {
			body = highlighted
		}
	}
	if body == "" {
		body = escapeHTML(code)
	}
	return `<pre class="report-code" data-lang="` + lang + `"><code class="language-` + lang + `">` + body + `</code></pre>`
}

// trimBlankLines joins lines after dropping blank lines at both ends.
// Indentation of the remaining lines is kept.
func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
