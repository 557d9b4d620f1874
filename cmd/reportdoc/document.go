package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/hints"
	"github.com/alnah/go-reportdoc/internal/store"
)

// documentTitles names generated documents on covers, per language.
var documentTitles = map[string]map[string]string{
	generate.LangEnglish: {
		store.KindReport:                         "Business Consulting Report",
		store.KindBenchmarks:                     "KPI Benchmarks",
		store.KindManual:                         "Operations Manual",
		string(generate.ManualFinancialPolicies): "Financial Policies Manual",
		string(generate.ManualFinancialSOPs):     "Financial Procedures Manual",
		string(generate.ManualAdminSOPs):         "Administrative Procedures Manual",
		"toc":                                    "Contents",
	},
	generate.LangArabic: {
		store.KindReport:                         "تقرير استشاري للأعمال",
		store.KindBenchmarks:                     "مقارنة مؤشرات الأداء الرئيسية",
		store.KindManual:                         "دليل العمليات",
		string(generate.ManualFinancialPolicies): "دليل السياسات المالية",
		string(generate.ManualFinancialSOPs):     "دليل الإجراءات المالية",
		string(generate.ManualAdminSOPs):         "دليل الإجراءات الإدارية",
		"toc":                                    "المحتويات",
	},
}

// documentTitle returns the localized title for a document kind, falling
// back to English.
func documentTitle(lang, kind string) string {
	if t, ok := documentTitles[lang][kind]; ok {
		return t
	}
	return documentTitles[generate.LangEnglish][kind]
}

// renderOptions describes one generated document to render.
type renderOptions struct {
	text     string
	lang     string
	kind     string // store kind or manual type, selects the cover title
	data     *generate.BusinessData
	docID    string
	pdfPath  string
	html     bool
	word     bool
	style    string
	noCover  bool
	noTOC    bool
	timeout  time.Duration
	quiet    bool
	cfg      *config.Config
}

// renderDocument converts generated report text to PDF (plus optional HTML
// and Word) with a single converter.
func renderDocument(ctx context.Context, opts renderOptions, env *Environment, logger *zap.Logger) error {
	cfg := opts.cfg
	if opts.style != "" {
		cfg.Document.Style = opts.style
	}

	var cover *reportdoc.Cover
	if !opts.noCover {
		cover = reportCover(cfg, opts.data, documentTitle(opts.lang, opts.kind), opts.docID)
	}
	var toc *reportdoc.TOC
	if !opts.noTOC {
		toc = &reportdoc.TOC{Title: documentTitle(opts.lang, "toc"), MaxDepth: 2}
	}
	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}
	footer, err := buildFooterData(cfg)
	if err != nil {
		return err
	}
	watermark, err := buildWatermarkData(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.pdfPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	pool := env.NewPool(1, converterOptions(cfg, opts.timeout, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, reportdoc.Input{
		Text:      opts.text,
		Format:    reportdoc.FormatReport,
		Lang:      opts.lang,
		Cover:     cover,
		TOC:       toc,
		Page:      page,
		Footer:    footer,
		Watermark: watermark,
		PageBreaks: &reportdoc.PageBreaks{
			IgnoreMarkers: cfg.PageBreaks.IgnoreMarkers,
		},
		Word: opts.word,
	})
	if err != nil {
		return err
	}
	if err := writeOutputs(opts.pdfPath, res, opts.html); err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", opts.pdfPath)
	}
	return nil
}

// reportCover builds a cover from business data. Config cover fields win
// over the business data.
func reportCover(cfg *config.Config, data *generate.BusinessData, title, docID string) *reportdoc.Cover {
	c := &reportdoc.Cover{
		Title:        title,
		Subtitle:     cfg.Cover.Subtitle,
		Logo:         cfg.Cover.Logo,
		Organization: cfg.Cover.Organization,
		PreparedBy:   cfg.Cover.PreparedBy,
		Date:         cfg.Cover.Date,
		Version:      cfg.Cover.Version,
		DocumentID:   cfg.Cover.DocumentID,
	}
	if cfg.Cover.Title != "" {
		c.Title = cfg.Cover.Title
	}
	if data != nil {
		if c.Organization == "" {
			c.Organization = data.OrganizationName
		}
		c.Sector = data.Sector
		c.Location = data.CompanyLocation
		c.Audience = data.TargetAudience
		if c.Subtitle == "" {
			c.Subtitle = data.LegalForm
		}
	}
	if c.Date == "" {
		c.Date = "auto"
	}
	if c.DocumentID == "" {
		c.DocumentID = docID
	}
	return c
}

var nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// slug turns an organization name into a file name stem.
func slug(s string) string {
	s = strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "report"
	}
	return s
}

// storePath picks the report database: --db, then config or REPORTDOC_DB,
// then the user config directory.
func storePath(flagDB string, cfg *config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return config.DefaultStorePath()
}

// openStore opens the report database, adding a hint on failure.
func openStore(path string) (*store.Store, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForStore(path))
	}
	return s, nil
}
