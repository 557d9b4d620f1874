package pipeline

import (
	"strings"
	"testing"
)

func TestWordEnvelope(t *testing.T) {
	t.Parallel()

	body := `<h1 class="report-h1">Plan</h1>` + PageBreakDiv + `<p>next</p>`
	got := WordEnvelope(body, "h1{color:navy}</style>", DocumentMeta{Lang: "ar", Title: "Acme & Co"})

	for _, want := range []string{
		`xmlns:w="urn:schemas-microsoft-com:office:word"`,
		`<meta name="ProgId" content="Word.Document">`,
		"<w:View>Print</w:View>",
		`<title>Acme &amp; Co</title>`,
		`<style>h1{color:navy}<\/style></style>`,
		`<body lang="ar" dir="rtl">`,
		`<h1 class="report-h1">Plan</h1>` + wordPageBreak + `<p>next</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WordEnvelope() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, PageBreakDiv) {
		t.Error("WordEnvelope() kept a CSS page-break div")
	}
}

func TestWordEnvelope_Defaults(t *testing.T) {
	t.Parallel()

	got := WordEnvelope("", "", DocumentMeta{})
	for _, want := range []string{`lang="en" dir="ltr"`, "<title>Report</title>"} {
		if !strings.Contains(got, want) {
			t.Errorf("WordEnvelope() missing %q in:\n%s", want, got)
		}
	}
}

func TestBodyContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"document", "<html><head><style>x</style></head><body class=\"a\">\n<p>x</p>\n</body></html>", "<p>x</p>"},
		{"upper case", "<HTML><BODY><p>x</p></BODY></HTML>", "<p>x</p>"},
		{"fragment", "<p>x</p>", "<p>x</p>"},
		{"unclosed body", "<body><p>x</p>", "<p>x</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BodyContent(tt.input); got != tt.want {
				t.Errorf("BodyContent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
