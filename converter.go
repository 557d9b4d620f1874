package reportdoc

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc/internal/assets"
	"github.com/alnah/go-reportdoc/internal/dateutil"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor  = (*pipeline.ReportPreprocessor)(nil)
	_ pipeline.Preprocessor  = (*pipeline.MarkdownPreprocessor)(nil)
	_ pipeline.HTMLConverter = (*pipeline.ReportConverter)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter orchestrates the report-to-document pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
type Converter struct {
	cfg         converterConfig
	logger      *zap.Logger
	now         func() time.Time
	assetLoader assets.AssetLoader
	highlighter *pipeline.ChromaHighlighter

	reportPreprocessor   pipeline.Preprocessor
	markdownPreprocessor pipeline.Preprocessor
	reportConverter      pipeline.HTMLConverter
	markdownConverter    pipeline.HTMLConverter
	cssInjector          pipeline.CSSInjector
	coverInjector        pipeline.CoverInjector
	tocInjector          pipeline.TOCInjector
	pdfConverter         pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns an error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:                  converterConfig{timeout: defaultTimeout},
		logger:               zap.NewNop(),
		now:                  time.Now,
		assetLoader:          assets.NewEmbeddedLoader(),
		reportPreprocessor:   &pipeline.ReportPreprocessor{},
		markdownPreprocessor: &pipeline.MarkdownPreprocessor{},
		markdownConverter:    pipeline.NewGoldmarkConverter(),
		cssInjector:          &pipeline.CSSInjection{},
		tocInjector:          &pipeline.TOCInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	c.highlighter = pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
	c.reportConverter = pipeline.NewReportConverter(c.highlighter)

	coverTemplate, err := c.assetLoader.LoadTemplate(assets.CoverTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading cover template: %w", err)
	}
	c.coverInjector, err = pipeline.NewCoverInjection(coverTemplate)
	if err != nil {
		return nil, fmt.Errorf("initializing cover injector: %w", err)
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline. HTML is always returned; PDF unless
// input.HTMLOnly is set; Word when input.Word is set.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	meta := pipeline.DocumentMeta{Lang: input.Lang, Title: documentTitle(input)}
	preprocessor, htmlConverter := c.reportPreprocessor, c.reportConverter
	if input.Format == FormatMarkdown {
		preprocessor, htmlConverter = c.markdownPreprocessor, c.markdownConverter
	}

	text := preprocessor.Preprocess(ctx, input.Text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlContent, err := htmlConverter.ToHTML(ctx, text, meta)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	c.logger.Debug("rendered HTML",
		zap.String("format", formatOrDefault(input.Format)),
		zap.Int("bytes", len(htmlContent)))

	if input.PageBreaks != nil && input.PageBreaks.IgnoreMarkers {
		htmlContent = pipeline.StripPageBreaks(htmlContent)
	}

	htmlContent, err = pipeline.RewriteDocument(htmlContent, pipeline.DOMOptions{
		HeadingIDs: true,
		SourceDir:  input.SourceDir,
	})
	if err != nil {
		return nil, fmt.Errorf("rewriting document: %w", err)
	}

	cssContent := c.buildCSS(input)
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coverData, err := c.toCoverData(input.Cover, input.Lang)
	if err != nil {
		return nil, err
	}
	htmlContent, err = c.coverInjector.InjectCover(ctx, htmlContent, coverData)
	if err != nil {
		return nil, fmt.Errorf("injecting cover: %w", err)
	}

	// Must run after the cover so the TOC lands behind it.
	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, toTOCData(input.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	res := &ConvertResult{HTML: []byte(htmlContent)}

	if input.Word {
		res.Word = []byte(pipeline.WordEnvelope(pipeline.BodyContent(htmlContent), c.wordCSS(), meta))
	}

	if input.HTMLOnly {
		return res, nil
	}

	footer, err := c.resolveFooter(input.Footer, input.Lang)
	if err != nil {
		return nil, err
	}
	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}

	start := c.now()
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Footer: footer, Page: page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.logger.Debug("rendered PDF",
		zap.Int("bytes", len(pdfBytes)),
		zap.Duration("elapsed", c.now().Sub(start)))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. No style input means the default embedded style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if strings.Contains(input, "{") {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// buildCSS combines, in order: page-break rules, watermark, the converter
// style, code highlighting, then the caller's CSS so it can override.
func (c *Converter) buildCSS(input Input) string {
	var b strings.Builder
	b.WriteString(buildPageBreaksCSS(input.PageBreaks))
	b.WriteString(buildWatermarkCSS(input.Watermark))
	b.WriteString(c.cfg.resolvedStyle)
	b.WriteString("\n")
	b.WriteString(c.highlighter.CSS())
	if input.CSS != "" {
		b.WriteString("\n")
		b.WriteString(input.CSS)
	}
	return b.String()
}

// wordCSS is the stylesheet embedded in Word documents. Print pagination
// rules are left out: Word handles page breaks itself.
func (c *Converter) wordCSS() string {
	return c.cfg.resolvedStyle + "\n" + c.highlighter.CSS()
}

// toCoverData converts the public Cover type to pipeline.CoverData,
// resolving "auto" dates and local logo paths.
func (c *Converter) toCoverData(cv *Cover, lang string) (*pipeline.CoverData, error) {
	if cv == nil {
		return nil, nil
	}

	date, err := dateutil.ResolveDate(cv.Date, c.now(), lang)
	if err != nil {
		return nil, fmt.Errorf("cover date: %w", err)
	}

	logo, err := logoURL(cv.Logo)
	if err != nil {
		return nil, err
	}

	data := &pipeline.CoverData{
		Title:        cv.Title,
		Subtitle:     cv.Subtitle,
		Organization: cv.Organization,
		Sector:       cv.Sector,
		Location:     cv.Location,
		PreparedBy:   cv.PreparedBy,
		Audience:     cv.Audience,
		Date:         date,
		Version:      cv.Version,
		DocumentID:   cv.DocumentID,
		Logo:         logo,
	}
	if pipeline.IsRTL(lang) {
		data.Dir = "rtl"
	}
	return data, nil
}

// logoURL returns http(s) logos unchanged and local paths as file:// URLs.
func logoURL(logo string) (template.URL, error) {
	if logo == "" || fileutil.IsURL(logo) {
		return template.URL(logo), nil // #nosec G203 -- scheme checked by IsURL
	}
	abs, err := filepath.Abs(logo)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCoverLogoNotFound, logo)
	}
	return template.URL("file://" + filepath.ToSlash(abs)), nil // #nosec G203 -- local file checked by Cover.Validate
}

// resolveFooter returns a copy of f with an "auto" date expanded.
func (c *Converter) resolveFooter(f *Footer, lang string) (*Footer, error) {
	if f == nil {
		return nil, nil
	}
	resolved := *f
	date, err := dateutil.ResolveDate(f.Date, c.now(), lang)
	if err != nil {
		return nil, fmt.Errorf("footer date: %w", err)
	}
	resolved.Date = date
	return &resolved, nil
}

// toTOCData converts the public TOC type to pipeline.TOCData.
func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
}

// documentTitle picks the <title>: explicit title, then cover title.
func documentTitle(input Input) string {
	if input.Title != "" {
		return input.Title
	}
	if input.Cover != nil {
		return input.Cover.Title
	}
	return ""
}

func formatOrDefault(format string) string {
	if format == "" {
		return FormatReport
	}
	return format
}
