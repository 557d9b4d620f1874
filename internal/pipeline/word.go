package pipeline

import (
	"fmt"
	"html"
	"strings"
)

// wordTemplate is the HTML flavor Word opens as a document. The conditional
// comment switches Word to print layout. Arguments: lang, dir, title, CSS,
// lang, dir, body.
const wordTemplate = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40" lang="%s" dir="%s">
<head>
<meta charset="utf-8">
<meta name="ProgId" content="Word.Document">
<title>%s</title>
<!--[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>100</w:Zoom><w:DoNotOptimizeForBrowser/></w:WordDocument></xml><![endif]-->
<style>%s</style>
</head>
<body lang="%s" dir="%s">
%s
</body>
</html>`

// wordPageBreak is the break Word honors; it ignores CSS on empty divs.
const wordPageBreak = `<br clear="all" style="page-break-before:always" />`

// WordMIMEType is the content type of documents built by WordEnvelope.
const WordMIMEType = "application/msword"

// WordEnvelope wraps a rendered body fragment and its CSS in a document
// Word opens natively. Page-break elements become Word page breaks.
func WordEnvelope(body, css string, meta DocumentMeta) string {
	lang := meta.Lang
	if lang == "" {
		lang = "en"
	}
	title := meta.Title
	if title == "" {
		title = defaultTitle
	}
	lang = html.EscapeString(lang)
	body = strings.ReplaceAll(body, PageBreakDiv, wordPageBreak)
	return fmt.Sprintf(wordTemplate,
		lang, meta.Dir(), html.EscapeString(title), sanitizeCSS(css),
		lang, meta.Dir(), body)
}

// BodyContent returns what lies between <body ...> and </body>, or the whole
// input when it has no body element.
func BodyContent(doc string) string {
	lower := strings.ToLower(doc)
	start := strings.Index(lower, "<body")
	if start == -1 {
		return doc
	}
	open := strings.IndexByte(doc[start:], '>')
	if open == -1 {
		return doc
	}
	start += open + 1
	end := strings.LastIndex(lower, "</body>")
	if end < start {
		end = len(doc)
	}
	return strings.TrimSpace(doc[start:end])
}
