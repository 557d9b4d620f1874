package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// Emphasis must hug its text so "2 * 3 * 4" stays arithmetic.
	emphasisPattern = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)

	listItemPattern = regexp.MustCompile(`^\s*[-*][ \t]+(.*)$`)
)

// escapeHTML escapes text for element content and quoted attribute values.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// formatInline escapes s and applies bold, then emphasis.
func formatInline(s string) string {
	s = escapeHTML(s)
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = emphasisPattern.ReplaceAllString(s, "<em>$1</em>")
	return s
}

// parseHeading recognizes "# ", "## " and "### " at the start of line.
func parseHeading(line string) (level int, text string, ok bool) {
	for level = 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return level, strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return 0, "", false
}

func renderHeading(level int, text string) string {
	n := strconv.Itoa(level)
	return "<h" + n + ` class="report-h` + n + `">` + formatInline(text) + "</h" + n + ">"
}

// parseListItem recognizes bullet lines, allowing leading indentation.
func parseListItem(line string) (string, bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func renderListItem(text string) string {
	return `<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span>` +
		formatInline(text) + "</span></li>"
}
