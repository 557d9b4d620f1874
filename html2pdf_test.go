package reportdoc

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// fakeRenderer stands in for headless Chrome.
type fakeRenderer struct {
	gotPath    string
	gotContent string
	gotOpts    *pdfOptions
	output     []byte
	err        error
	closed     bool
}

func (f *fakeRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	f.gotPath = filePath
	f.gotOpts = opts
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.gotContent = string(content)
	return f.output, f.err
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	renderer := &fakeRenderer{output: []byte("%PDF")}
	conv := &rodConverter{renderer: renderer}
	opts := &pdfOptions{Page: DefaultPageSettings()}

	got, err := conv.ToPDF(context.Background(), "<html>report</html>", opts)
	if err != nil {
		t.Fatalf("ToPDF() unexpected error: %v", err)
	}
	if string(got) != "%PDF" {
		t.Errorf("ToPDF() = %q, want %%PDF", got)
	}
	if renderer.gotContent != "<html>report</html>" {
		t.Errorf("renderer read %q, want the HTML document", renderer.gotContent)
	}
	if !strings.HasSuffix(renderer.gotPath, ".html") {
		t.Errorf("temp file %q lacks .html extension", renderer.gotPath)
	}
	if renderer.gotOpts != opts {
		t.Error("options not passed through to the renderer")
	}
	if _, err := os.Stat(renderer.gotPath); !os.IsNotExist(err) {
		t.Errorf("temp file %q not removed", renderer.gotPath)
	}

	if err := conv.Close(); err != nil || !renderer.closed {
		t.Errorf("Close() = %v, closed = %v", err, renderer.closed)
	}
}

func TestRodConverter_ToPDF_Error(t *testing.T) {
	t.Parallel()

	conv := &rodConverter{renderer: &fakeRenderer{err: ErrPageLoad}}
	if _, err := conv.ToPDF(context.Background(), "<html></html>", nil); !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout)
	if _, err := r.RenderFromFile(ctx, "/tmp/x.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without browser = %v, want nil", err)
	}
}

func TestPaperDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		page          *PageSettings
		width, height float64
	}{
		{"a4 portrait", &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait}, 8.27, 11.69},
		{"letter landscape", &PageSettings{Size: "LETTER", Orientation: "Landscape"}, 11, 8.5},
		{"legal", &PageSettings{Size: PageSizeLegal}, 8.5, 14},
		{"unknown falls back to a4", &PageSettings{Size: "tabloid"}, 8.27, 11.69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := paperDimensions(tt.page)
			if w != tt.width || h != tt.height {
				t.Errorf("paperDimensions() = (%v, %v), want (%v, %v)", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil uses defaults", func(t *testing.T) {
		t.Parallel()

		got := buildPDFOptions(nil)
		if *got.PaperWidth != 8.27 || *got.MarginTop != DefaultMargin || *got.MarginBottom != DefaultMargin {
			t.Errorf("buildPDFOptions(nil) = width %v, margins %v/%v", *got.PaperWidth, *got.MarginTop, *got.MarginBottom)
		}
		if got.DisplayHeaderFooter {
			t.Error("footer displayed without footer options")
		}
		if !got.PrintBackground {
			t.Error("PrintBackground = false, want true")
		}
	})

	t.Run("footer adds bottom margin", func(t *testing.T) {
		t.Parallel()

		got := buildPDFOptions(&pdfOptions{
			Page:   &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait, Margin: 1},
			Footer: &Footer{ShowPageNumber: true},
		})
		if *got.MarginTop != 1 || *got.MarginBottom != 1+footerMarginExtra {
			t.Errorf("margins = %v/%v, want 1/%v", *got.MarginTop, *got.MarginBottom, 1+footerMarginExtra)
		}
		if !got.DisplayHeaderFooter || !strings.Contains(got.FooterTemplate, "pageNumber") {
			t.Errorf("footer template = %q", got.FooterTemplate)
		}
	})
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		footer  *Footer
		want    []string
		notWant []string
	}{
		{"nil", nil, []string{"<span></span>"}, nil},
		{"no content", &Footer{Position: "left"}, []string{"<span></span>"}, []string{"text-align"}},
		{
			name:   "all parts right aligned",
			footer: &Footer{ShowPageNumber: true, Date: "2026-03-07", Status: "Final", Text: "Acme", DocumentID: "RPT-7"},
			want: []string{
				`<span class="pageNumber"></span>/<span class="totalPages"></span> - 2026-03-07 - Final - Acme - RPT-7`,
				"text-align: right;",
			},
		},
		{"center", &Footer{Position: "center", Text: "x"}, []string{"text-align: center;"}, nil},
		{"escaped", &Footer{Text: "<b>R&D</b>"}, []string{"&lt;b&gt;R&amp;D&lt;/b&gt;"}, []string{"<b>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildFooterTemplate(tt.footer, DefaultMargin)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("buildFooterTemplate() = %q, want it to contain %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("buildFooterTemplate() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}
