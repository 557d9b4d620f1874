package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks flag and argument errors.
var ErrUsage = errors.New("usage error")

// watermarkAngleSentinel detects if --wm-angle was explicitly set.
// Since 0 is a valid angle (horizontal), we use an out-of-range sentinel.
const watermarkAngleSentinel = -999.0

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds source interpretation flags.
type documentFlags struct {
	format string
	lang   string
	title  string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	status     string
	date       string
	pageNumber bool
	documentID string
	disabled   bool
}

// coverFlags holds cover page flags.
type coverFlags struct {
	enabled      bool
	title        string
	subtitle     string
	logo         string
	organization string
	preparedBy   string
	date         string
	version      string
	documentID   string
	disabled     bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
	disabled bool
}

// watermarkFlags holds watermark-related flags.
type watermarkFlags struct {
	text     string
	color    string
	opacity  float64
	angle    float64
	disabled bool
}

// pageBreakFlags holds page break flags.
type pageBreakFlags struct {
	breakBefore   string
	orphans       int
	widows        int
	ignoreMarkers bool
}

// styleFlags holds stylesheet and asset flags.
type styleFlags struct {
	style          string // name, path, or raw CSS
	css            string // extra CSS file appended to the style
	assetPath      string
	highlightStyle string
}

// outputFlags holds the extra output formats.
type outputFlags struct {
	html     bool // HTML alongside PDF
	htmlOnly bool // HTML only, skip PDF
	word     bool // Word document alongside PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	watch      bool
	document   documentFlags
	page       pageFlags
	footer     footerFlags
	cover      coverFlags
	toc        tocFlags
	watermark  watermarkFlags
	pageBreaks pageBreakFlags
	style      styleFlags
	outputMode outputFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.format, "format", "", "input format: report, markdown (default: by extension)")
	fs.StringVar(&f.lang, "lang", "", "document language: en, ar")
	fs.StringVar(&f.title, "title", "", "document title")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.StringVar(&f.status, "footer-status", "", "footer status, e.g. DRAFT")
	fs.StringVar(&f.date, "footer-date", "", "footer date (\"auto\" = today)")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.StringVar(&f.documentID, "footer-doc-id", "", "document ID in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.BoolVar(&f.enabled, "cover", false, "add a cover page")
	fs.StringVar(&f.title, "cover-title", "", "cover title")
	fs.StringVar(&f.subtitle, "cover-subtitle", "", "cover subtitle")
	fs.StringVar(&f.logo, "cover-logo", "", "cover logo path or URL")
	fs.StringVar(&f.organization, "cover-org", "", "organization on the cover")
	fs.StringVar(&f.preparedBy, "prepared-by", "", "author or firm on the cover")
	fs.StringVar(&f.date, "cover-date", "", "cover date: \"auto\", \"auto:LAYOUT\", or literal")
	fs.StringVar(&f.version, "doc-version", "", "document version")
	fs.StringVar(&f.documentID, "doc-id", "", "document ID/reference")
	fs.BoolVar(&f.disabled, "no-cover", false, "disable cover page")
}

func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "add a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 1)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "wm-text", "", "watermark text")
	fs.StringVar(&f.color, "wm-color", "", "watermark color (hex)")
	fs.Float64Var(&f.opacity, "wm-opacity", 0, "watermark opacity (0.0-1.0)")
	fs.Float64Var(&f.angle, "wm-angle", watermarkAngleSentinel, "watermark angle in degrees")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable watermark")
}

func addPageBreakFlags(fs *flag.FlagSet, f *pageBreakFlags) {
	fs.StringVar(&f.breakBefore, "break-before", "", "page breaks before headings: h1,h2,h3")
	fs.IntVar(&f.orphans, "orphans", 0, "min lines at page bottom (1-5)")
	fs.IntVar(&f.widows, "widows", 0, "min lines at page top (1-5)")
	fs.BoolVar(&f.ignoreMarkers, "ignore-page-breaks", false, "drop <page-break> markers")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name (report, dark, minimal) or CSS file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended to the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles and templates")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.word, "word", false, "write a Word document (.doc) alongside PDF")
}

// newFlagSet creates a FlagSet that reports errors through the returned
// error instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlagSet parses args, mapping flag errors to ErrUsage. Help requests
// print usage and return flag.ErrHelp.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", printConvertUsage, stderr)
	registerConvertFlags(fs, f)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// registerConvertFlags registers every convert flag on fs. Completion
// scripts are generated from the same registration.
func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.watch, "watch", false, "re-convert when sources change")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addCoverFlags(fs, &f.cover)
	addTOCFlags(fs, &f.toc)
	addWatermarkFlags(fs, &f.watermark)
	addPageBreakFlags(fs, &f.pageBreaks)
	addStyleFlags(fs, &f.style)
	addOutputFlags(fs, &f.outputMode)
}
