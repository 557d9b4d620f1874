package reportdoc

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alnah/go-reportdoc/internal/fileutil"
)

// Input formats.
const (
	FormatReport   = "report"   // generated report conventions, rendered by internal/render
	FormatMarkdown = "markdown" // CommonMark with GFM extensions
)

// Supported document languages.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.6
)

// Defaults for TOC depth and orphan/widow control.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 3
	DefaultOrphans     = 2
	DefaultWidows      = 2
	MaxOrphansWidows   = 5
)

// Watermark defaults.
const (
	DefaultWatermarkColor   = "#888888"
	DefaultWatermarkOpacity = 0.1
	DefaultWatermarkAngle   = -45
)

// Input contains conversion parameters.
type Input struct {
	Text       string        // report text (required)
	Format     string        // FormatReport (default) or FormatMarkdown
	Lang       string        // LangEnglish (default) or LangArabic
	Title      string        // document <title>
	SourceDir  string        // resolves relative images and links
	CSS        string        // appended after the converter style
	Page       *PageSettings // nil = defaults
	Footer     *Footer       // nil = no footer
	Cover      *Cover        // nil = no cover
	TOC        *TOC          // nil = no table of contents
	Watermark  *Watermark    // nil = no watermark
	PageBreaks *PageBreaks   // nil = defaults
	HTMLOnly   bool          // skip PDF rendering
	Word       bool          // also produce a Word document
}

// ConvertResult holds the documents produced by Convert.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil when Input.HTMLOnly is set
	Word []byte // nil unless Input.Word is set
}

// Validate checks the format, the language and every option struct.
func (in *Input) Validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return ErrEmptyText
	}
	switch in.Format {
	case "", FormatReport, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidFormat, in.Format, FormatReport, FormatMarkdown)
	}
	switch in.Lang {
	case "", LangEnglish, LangArabic:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidLang, in.Lang, LangEnglish, LangArabic)
	}
	if err := in.Page.Validate(); err != nil {
		return err
	}
	if err := in.Footer.Validate(); err != nil {
		return err
	}
	if err := in.Watermark.Validate(); err != nil {
		return err
	}
	if err := in.Cover.Validate(); err != nil {
		return err
	}
	if err := in.TOC.Validate(); err != nil {
		return err
	}
	return in.PageBreaks.Validate()
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait with the default margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string
	Status         string
	Text           string
	DocumentID     string
}

// Validate checks the footer position.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Watermark configures diagonal background text.
type Watermark struct {
	Text    string
	Color   string  // hex, "#rgb" or "#rrggbb"; empty = DefaultWatermarkColor
	Opacity float64 // 0 to 1
	Angle   float64 // degrees, -90 to 90
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks color, opacity and angle.
// Returns nil if w is nil (nil means no watermark).
func (w *Watermark) Validate() error {
	if w == nil {
		return nil
	}
	if w.Color != "" && !hexColorPattern.MatchString(w.Color) {
		return fmt.Errorf("%w: %q (must be #rgb or #rrggbb)", ErrInvalidWatermarkColor, w.Color)
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		return fmt.Errorf("%w: %.2f (must be between 0 and 1)", ErrInvalidWatermarkOpacity, w.Opacity)
	}
	if w.Angle < -90 || w.Angle > 90 {
		return fmt.Errorf("%w: %.1f (must be between -90 and 90)", ErrInvalidWatermarkAngle, w.Angle)
	}
	return nil
}

// Cover configures the report cover page.
type Cover struct {
	Title        string
	Subtitle     string
	Logo         string // file path or http(s) URL
	Organization string
	Sector       string
	Location     string
	PreparedBy   string
	Audience     string
	Date         string // literal, "auto" or "auto:LAYOUT"
	Version      string
	DocumentID   string
}

// Validate checks that a local logo file exists.
// Returns nil if c is nil (nil means no cover).
func (c *Cover) Validate() error {
	if c == nil || c.Logo == "" || fileutil.IsURL(c.Logo) {
		return nil
	}
	if _, err := os.Stat(c.Logo); err != nil {
		return fmt.Errorf("%w: %s", ErrCoverLogoNotFound, c.Logo)
	}
	return nil
}

// TOC configures the table of contents.
type TOC struct {
	Title    string
	MinDepth int // 0 = DefaultTOCMinDepth
	MaxDepth int // 0 = DefaultTOCMaxDepth
}

// Validate checks depth bounds.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MinDepth < 0 || t.MinDepth > 6 {
		return fmt.Errorf("%w: minDepth %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MinDepth)
	}
	if t.MaxDepth < 0 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: maxDepth %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	minDepth, maxDepth := t.depths()
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d exceeds maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

// depths applies defaults to unset bounds.
func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// PageBreaks configures print pagination.
type PageBreaks struct {
	BeforeH1 bool
	BeforeH2 bool
	BeforeH3 bool
	Orphans  int // 0 = DefaultOrphans
	Widows   int // 0 = DefaultWidows
	// IgnoreMarkers drops <page-break> markers instead of breaking the page.
	IgnoreMarkers bool
}

// Validate checks orphans and widows bounds.
// Returns nil if pb is nil (nil means defaults).
func (pb *PageBreaks) Validate() error {
	if pb == nil {
		return nil
	}
	if pb.Orphans < 0 || pb.Orphans > MaxOrphansWidows {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidOrphans, pb.Orphans, MaxOrphansWidows)
	}
	if pb.Widows < 0 || pb.Widows > MaxOrphansWidows {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWidows, pb.Widows, MaxOrphansWidows)
	}
	return nil
}
