package reportdoc

import (
	"fmt"
	"strings"
)

// defaultFontFamily is the font stack for PDF footers and the watermark.
const defaultFontFamily = "sans-serif"

// watermarkFontSize is the font size for watermark text overlay.
const watermarkFontSize = "8rem"

// buildWatermarkCSS generates CSS for a diagonal background watermark.
// position:fixed repeats it on every printed page.
func buildWatermarkCSS(w *Watermark) string {
	if w == nil || w.Text == "" {
		return ""
	}

	color := w.Color
	if color == "" {
		color = DefaultWatermarkColor
	}
	opacity := w.Opacity
	if opacity == 0 {
		opacity = DefaultWatermarkOpacity
	}

	return fmt.Sprintf(`
/* Watermark */
body::before {
  content: "%s";
  position: fixed;
  top: 50%%;
  left: 50%%;
  transform: translate(-50%%, -50%%) rotate(%.1fdeg);
  font-size: %s;
  font-weight: bold;
  color: %s;
  opacity: %.2f;
  z-index: -1;
  pointer-events: none;
  white-space: nowrap;
  font-family: %s;
}
`, escapeCSSString(breakURLPattern(w.Text)), w.Angle, watermarkFontSize, color, opacity, defaultFontFamily)
}

// escapeCSSString escapes a string for a CSS content property.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// breakURLPattern replaces dots with ONE DOT LEADER (U+2024) so PDF viewers
// do not turn watermark text such as "acme.com" into a link.
func breakURLPattern(text string) string {
	return strings.ReplaceAll(text, ".", "\u2024")
}

// pageBreakCSS styles the elements that stand in for <page-break> markers:
// a forced break in print, nothing on screen.
const pageBreakCSS = `
/* Page breaks: explicit markers */
.page-break {
  break-after: page;
  page-break-after: always;
  height: 0;
}
`

// buildPageBreaksCSS generates CSS for page break control. Heading
// protection and marker breaks are always on; breaks before h1-h3 and
// orphan/widow counts are configurable.
func buildPageBreaksCSS(pb *PageBreaks) string {
	var buf strings.Builder

	buf.WriteString(`
/* Page breaks: always active - prevent heading alone at page bottom */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
table, pre {
  break-inside: avoid;
  page-break-inside: avoid;
}
`)
	buf.WriteString(pageBreakCSS)

	orphans := DefaultOrphans
	widows := DefaultWidows
	if pb != nil {
		if pb.Orphans > 0 {
			orphans = pb.Orphans
		}
		if pb.Widows > 0 {
			widows = pb.Widows
		}
	}

	fmt.Fprintf(&buf, `
/* Page breaks: orphan/widow control */
p, li, dd, dt, blockquote {
  orphans: %d;
  widows: %d;
}
`, orphans, widows)

	if pb != nil && pb.BeforeH1 {
		buf.WriteString(`
/* Page breaks: before H1 */
h1 {
  break-before: page;
  page-break-before: always;
}
/* No break before the first heading of the report */
main.report > h1:first-child {
  break-before: auto;
  page-break-before: auto;
}
`)
	}

	if pb != nil && pb.BeforeH2 {
		buf.WriteString(`
/* Page breaks: before H2 */
h2 {
  break-before: page;
  page-break-before: always;
}
`)
	}

	if pb != nil && pb.BeforeH3 {
		buf.WriteString(`
/* Page breaks: before H3 */
h3 {
  break-before: page;
  page-break-before: always;
}
`)
	}

	return buf.String()
}
