package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/fileutil"
)

// ErrReadCSS is returned when the --css file cannot be read.
var ErrReadCSS = errors.New("failed to read CSS file")

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	format     string // explicit --format; empty = by extension
	lang       string
	title      string
	css        string
	footer     *reportdoc.Footer
	page       *reportdoc.PageSettings
	watermark  *reportdoc.Watermark
	toc        *reportdoc.TOC
	pageBreaks *reportdoc.PageBreaks
	cfg        *config.Config
	htmlOnly   bool // Output HTML only, skip PDF
	htmlOutput bool // Output HTML alongside PDF
	wordOutput bool // Output a Word document alongside PDF
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Setting any field of an optional feature enables it; --no-X disables it.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	// Document
	setIf(&cfg.Document.Lang, flags.document.lang)
	setIf(&cfg.Document.Style, flags.style.style)
	setIf(&cfg.Document.HighlightStyle, flags.style.highlightStyle)
	setIf(&cfg.Assets.BasePath, flags.style.assetPath)

	// Page
	setIf(&cfg.Page.Size, flags.page.size)
	setIf(&cfg.Page.Orientation, flags.page.orientation)
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Footer
	f := flags.footer
	if f.position != "" || f.text != "" || f.status != "" || f.date != "" || f.pageNumber || f.documentID != "" {
		cfg.Footer.Enabled = true
	}
	setIf(&cfg.Footer.Position, f.position)
	setIf(&cfg.Footer.Text, f.text)
	setIf(&cfg.Footer.Status, f.status)
	setIf(&cfg.Footer.Date, f.date)
	setIf(&cfg.Footer.DocumentID, f.documentID)
	if f.pageNumber {
		cfg.Footer.ShowPageNumber = true
	}

	// Cover
	c := flags.cover
	if c.enabled || c.title != "" || c.subtitle != "" || c.logo != "" || c.organization != "" ||
		c.preparedBy != "" || c.date != "" || c.version != "" || c.documentID != "" {
		cfg.Cover.Enabled = true
	}
	setIf(&cfg.Cover.Title, c.title)
	setIf(&cfg.Cover.Subtitle, c.subtitle)
	setIf(&cfg.Cover.Logo, c.logo)
	setIf(&cfg.Cover.Organization, c.organization)
	setIf(&cfg.Cover.PreparedBy, c.preparedBy)
	setIf(&cfg.Cover.Date, c.date)
	setIf(&cfg.Cover.Version, c.version)
	setIf(&cfg.Cover.DocumentID, c.documentID)

	// TOC
	t := flags.toc
	if t.enabled || t.title != "" || t.minDepth > 0 || t.maxDepth > 0 {
		cfg.TOC.Enabled = true
	}
	setIf(&cfg.TOC.Title, t.title)
	if t.minDepth > 0 {
		cfg.TOC.MinDepth = t.minDepth
	}
	if t.maxDepth > 0 {
		cfg.TOC.MaxDepth = t.maxDepth
	}

	// Watermark
	w := flags.watermark
	configEnabled := cfg.Watermark.Enabled
	if w.text != "" {
		cfg.Watermark.Text = w.text
		cfg.Watermark.Enabled = true
	}
	setIf(&cfg.Watermark.Color, w.color)
	if w.opacity != 0 {
		cfg.Watermark.Opacity = w.opacity
	}
	if w.angle != watermarkAngleSentinel {
		cfg.Watermark.Angle = w.angle
	} else if !configEnabled {
		// A config-enabled watermark keeps its angle, 0 included.
		cfg.Watermark.Angle = reportdoc.DefaultWatermarkAngle
	}

	// Page breaks
	pb := flags.pageBreaks
	if pb.breakBefore != "" {
		cfg.PageBreaks.BeforeH1, cfg.PageBreaks.BeforeH2, cfg.PageBreaks.BeforeH3 = parseBreakBefore(pb.breakBefore)
	}
	if pb.orphans > 0 {
		cfg.PageBreaks.Orphans = pb.orphans
	}
	if pb.widows > 0 {
		cfg.PageBreaks.Widows = pb.widows
	}
	if pb.ignoreMarkers {
		cfg.PageBreaks.IgnoreMarkers = true
	}

	// Output formats
	if flags.outputMode.html {
		cfg.Output.HTML = true
	}
	if flags.outputMode.word {
		cfg.Output.Word = true
	}

	// Disable flags
	if f.disabled {
		cfg.Footer.Enabled = false
	}
	if c.disabled {
		cfg.Cover.Enabled = false
	}
	if t.disabled {
		cfg.TOC.Enabled = false
	}
	if w.disabled {
		cfg.Watermark.Enabled = false
	}
}

// buildConversionParams builds the per-batch parameters from the merged
// config.
func buildConversionParams(flags *convertFlags, cfg *config.Config) (*conversionParams, error) {
	css, err := readCSS(flags.style.css)
	if err != nil {
		return nil, err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	watermark, err := buildWatermarkData(cfg)
	if err != nil {
		return nil, err
	}

	toc, err := buildTOCData(cfg)
	if err != nil {
		return nil, err
	}

	pageBreaks, err := buildPageBreaksData(cfg)
	if err != nil {
		return nil, err
	}

	footer, err := buildFooterData(cfg)
	if err != nil {
		return nil, err
	}

	return &conversionParams{
		format:     flags.document.format,
		lang:       cfg.Document.Lang,
		title:      flags.document.title,
		css:        css,
		footer:     footer,
		page:       page,
		watermark:  watermark,
		toc:        toc,
		pageBreaks: pageBreaks,
		cfg:        cfg,
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: cfg.Output.HTML,
		wordOutput: cfg.Output.Word,
	}, nil
}

// converterOptions maps the merged config to library options.
func converterOptions(cfg *config.Config, timeout time.Duration, logger *zap.Logger) []reportdoc.Option {
	opts := []reportdoc.Option{reportdoc.WithLogger(logger)}
	if timeout > 0 {
		opts = append(opts, reportdoc.WithTimeout(timeout))
	}
	if cfg.Document.Style != "" {
		opts = append(opts, reportdoc.WithStyle(cfg.Document.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, reportdoc.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Document.HighlightStyle != "" {
		opts = append(opts, reportdoc.WithHighlightStyle(cfg.Document.HighlightStyle))
	}
	return opts
}

// readCSS reads the extra stylesheet, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildFooterData creates reportdoc.Footer from config. Dates are resolved
// by the converter.
func buildFooterData(cfg *config.Config) (*reportdoc.Footer, error) {
	if !cfg.Footer.Enabled {
		return nil, nil
	}
	f := &reportdoc.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Date:           cfg.Footer.Date,
		Status:         cfg.Footer.Status,
		Text:           cfg.Footer.Text,
		DocumentID:     cfg.Footer.DocumentID,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// buildWatermarkData creates reportdoc.Watermark from config.
// Flags are merged into config by mergeFlags before this is called.
func buildWatermarkData(cfg *config.Config) (*reportdoc.Watermark, error) {
	if !cfg.Watermark.Enabled {
		return nil, nil
	}

	w := &reportdoc.Watermark{
		Text:    cfg.Watermark.Text,
		Color:   cfg.Watermark.Color,
		Opacity: cfg.Watermark.Opacity,
		Angle:   cfg.Watermark.Angle,
	}

	if w.Color == "" {
		w.Color = reportdoc.DefaultWatermarkColor
	}
	if w.Opacity == 0 {
		w.Opacity = reportdoc.DefaultWatermarkOpacity
	}

	if strings.TrimSpace(w.Text) == "" {
		return nil, fmt.Errorf("%w: watermark text is required when watermark is enabled", ErrUsage)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// buildPageSettings creates reportdoc.PageSettings from config. Nil means
// the library defaults (A4 portrait).
func buildPageSettings(cfg *config.Config) (*reportdoc.PageSettings, error) {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil, nil
	}

	ps := reportdoc.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// buildTOCData creates reportdoc.TOC from config.
func buildTOCData(cfg *config.Config) (*reportdoc.TOC, error) {
	if !cfg.TOC.Enabled {
		return nil, nil
	}
	t := &reportdoc.TOC{
		Title:    cfg.TOC.Title,
		MinDepth: cfg.TOC.MinDepth,
		MaxDepth: cfg.TOC.MaxDepth,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseBreakBefore parses "--break-before=h1,h2,h3" into individual bools.
func parseBreakBefore(value string) (h1, h2, h3 bool) {
	for _, p := range strings.Split(strings.ToLower(value), ",") {
		switch strings.TrimSpace(p) {
		case "h1":
			h1 = true
		case "h2":
			h2 = true
		case "h3":
			h3 = true
		}
	}
	return h1, h2, h3
}

// buildPageBreaksData creates reportdoc.PageBreaks from config. Page breaks
// are always on; unset orphans and widows take library defaults.
func buildPageBreaksData(cfg *config.Config) (*reportdoc.PageBreaks, error) {
	pb := &reportdoc.PageBreaks{
		BeforeH1:      cfg.PageBreaks.BeforeH1,
		BeforeH2:      cfg.PageBreaks.BeforeH2,
		BeforeH3:      cfg.PageBreaks.BeforeH3,
		Orphans:       cfg.PageBreaks.Orphans,
		Widows:        cfg.PageBreaks.Widows,
		IgnoreMarkers: cfg.PageBreaks.IgnoreMarkers,
	}
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return pb, nil
}

// firstHeadingPattern matches the first level-1 heading of report or
// markdown text.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractFirstHeading extracts the first # heading, without emphasis marks.
func extractFirstHeading(text string) string {
	matches := firstHeadingPattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(matches[1], "*", ""))
}

// buildCoverData creates reportdoc.Cover from config and source text.
// Title: cover title, then --title, then first heading, then filename.
func buildCoverData(cfg *config.Config, title, text, filename string) (*reportdoc.Cover, error) {
	if !cfg.Cover.Enabled {
		return nil, nil
	}

	c := &reportdoc.Cover{
		Title:        cfg.Cover.Title,
		Subtitle:     cfg.Cover.Subtitle,
		Logo:         cfg.Cover.Logo,
		Organization: cfg.Cover.Organization,
		PreparedBy:   cfg.Cover.PreparedBy,
		Date:         cfg.Cover.Date,
		Version:      cfg.Cover.Version,
		DocumentID:   cfg.Cover.DocumentID,
	}
	if c.Title == "" {
		c.Title = title
	}
	if c.Title == "" {
		c.Title = extractFirstHeading(text)
	}
	if c.Title == "" {
		c.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// formatFor picks the input format of a file: --format, then markdown by
// extension, then the configured format.
func formatFor(path, explicit string, cfg *config.Config) string {
	if explicit != "" {
		return explicit
	}
	if fileutil.IsMarkdown(path) {
		return reportdoc.FormatMarkdown
	}
	if cfg.Document.Format != "" {
		return cfg.Document.Format
	}
	return reportdoc.FormatReport
}
