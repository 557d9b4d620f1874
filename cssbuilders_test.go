package reportdoc

import (
	"strings"
	"testing"
)

func TestBuildWatermarkCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		watermark *Watermark
		want      []string
		notWant   []string
	}{
		{
			name:      "nil",
			watermark: nil,
		},
		{
			name:      "empty text",
			watermark: &Watermark{Color: "#ff0000"},
		},
		{
			name:      "defaults applied",
			watermark: &Watermark{Text: "DRAFT", Angle: DefaultWatermarkAngle},
			want:      []string{`content: "DRAFT";`, "color: #888888;", "opacity: 0.10;", "rotate(-45.0deg)"},
		},
		{
			name:      "explicit values",
			watermark: &Watermark{Text: "CONFIDENTIAL", Color: "#c00", Opacity: 0.25, Angle: 30},
			want:      []string{"color: #c00;", "opacity: 0.25;", "rotate(30.0deg)"},
		},
		{
			name:      "escaped and unlinked",
			watermark: &Watermark{Text: "acme.com \"v2\"\nx"},
			want:      []string{`content: "acme․com \"v2\"\A x";`},
			notWant:   []string{"acme.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildWatermarkCSS(tt.watermark)
			if len(tt.want) == 0 && got != "" {
				t.Fatalf("buildWatermarkCSS() = %q, want empty", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("buildWatermarkCSS() missing %q in:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("buildWatermarkCSS() unexpectedly contains %q", w)
				}
			}
		})
	}
}

func TestEscapeCSSString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`"quoted"`, `\"quoted\"`},
		{"line\r\nbreak", `line\A break`},
		{"100%", "100%"},
	}

	for _, tt := range tests {
		if got := escapeCSSString(tt.input); got != tt.want {
			t.Errorf("escapeCSSString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildPageBreaksCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pageBreaks *PageBreaks
		want       []string
		notWant    []string
	}{
		{
			name:    "nil uses defaults",
			want:    []string{"break-after: avoid;", ".page-break {", "orphans: 2;", "widows: 2;"},
			notWant: []string{"Page breaks: before H1", "Page breaks: before H2", "Page breaks: before H3"},
		},
		{
			name:       "custom orphans and widows",
			pageBreaks: &PageBreaks{Orphans: 4, Widows: 3},
			want:       []string{"orphans: 4;", "widows: 3;"},
		},
		{
			name:       "before every section",
			pageBreaks: &PageBreaks{BeforeH1: true, BeforeH2: true},
			want:       []string{"Page breaks: before H1", "main.report > h1:first-child", "Page breaks: before H2"},
			notWant:    []string{"Page breaks: before H3"},
		},
		{
			name:       "before h3",
			pageBreaks: &PageBreaks{BeforeH3: true},
			want:       []string{"Page breaks: before H3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPageBreaksCSS(tt.pageBreaks)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("buildPageBreaksCSS() missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("buildPageBreaksCSS() unexpectedly contains %q", w)
				}
			}
		})
	}
}
