package render

import (
	"regexp"
	"strings"
)

// cellSeparator splits loose rows on runs of two or more whitespace
// characters, a tab, or a pipe.
var cellSeparator = regexp.MustCompile(`\s{2,}|\t|\|`)

// LooksLikeTableRow reports whether line reads as a table row.
//
// A row needs at least two non-empty cells and must not start with a heading
// or bullet marker. Separator-only lines never qualify; callers drop them.
// While a table is already open, a pipe-delimited row with a single filled
// cell still continues it, so sparse rows do not split a table in two.
func LooksLikeTableRow(line string, inTable bool) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isSeparatorLine(trimmed) {
		return false
	}
	if strings.HasPrefix(trimmed, "#") || startsWithBullet(trimmed) {
		return false
	}

	filled := 0
	for _, c := range SplitCells(line) {
		if c != "" {
			filled++
		}
	}

	if filled >= 2 {
		return true
	}
	return inTable && filled == 1 && strings.HasPrefix(trimmed, "|")
}

// SplitCells splits a row into trimmed cells.
//
// A row that starts with a pipe is split on pipes only and keeps empty cells
// in position, so "| a |  | c |" yields three cells. Any other row is split
// on the loose separator and empty fragments are discarded.
func SplitCells(line string) []string {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "|") {
		inner := strings.TrimPrefix(trimmed, "|")
		inner = strings.TrimSuffix(inner, "|")
		parts := strings.Split(inner, "|")
		cells := make([]string, len(parts))
		for i, p := range parts {
			cells[i] = strings.TrimSpace(p)
		}
		return cells
	}

	var cells []string
	for _, p := range cellSeparator.Split(trimmed, -1) {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

func startsWithBullet(trimmed string) bool {
	if len(trimmed) < 2 {
		return false
	}
	return (trimmed[0] == '-' || trimmed[0] == '*') && (trimmed[1] == ' ' || trimmed[1] == '\t')
}

// tableBuilder accumulates one table. The header row fixes the column count.
type tableBuilder struct {
	columns int
	buf     strings.Builder
}

func (t *tableBuilder) open(header []string) {
	t.columns = len(header)
	t.buf.Reset()
	t.buf.WriteString(`<div class="report-table"><table><thead><tr>`)
	for _, cell := range header {
		t.buf.WriteString("<th>")
		t.buf.WriteString(formatInline(cell))
		t.buf.WriteString("</th>")
	}
	t.buf.WriteString("</tr></thead><tbody>")
}

// addRow writes a data row aligned to the header: short rows are padded with
// empty cells and cells past the last column are dropped.
func (t *tableBuilder) addRow(cells []string) {
	t.buf.WriteString("<tr>")
	for i := range t.columns {
		t.buf.WriteString("<td>")
		if i < len(cells) {
			t.buf.WriteString(formatInline(cells[i]))
		}
		t.buf.WriteString("</td>")
	}
	t.buf.WriteString("</tr>")
}

func (t *tableBuilder) close() string {
	t.buf.WriteString("</tbody></table></div>")
	html := t.buf.String()
	t.buf.Reset()
	t.columns = 0
	return html
}
