// Package config loads the YAML configuration shared by the convert and
// generate commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name used under the user config directory.
const AppDir = "go-reportdoc"

// Field length limits.
const (
	MaxNameLength           = 100
	MaxURLLength            = 2048
	MaxPathLength           = 4096
	MaxStatusLength         = 50
	MaxDateLength           = 30
	MaxTextLength           = 500
	MaxPageSizeLength       = 10
	MaxOrientationLength    = 10
	MaxWatermarkTextLength  = 50
	MaxWatermarkColorLength = 20
	MaxTitleLength          = 200
	MaxOrganizationLength   = 100
	MaxVersionLength        = 50
	MaxDocumentIDLength     = 50
	MaxModelLength          = 100
)

// Config holds every configurable setting.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Document   DocumentConfig   `yaml:"document"`
	Footer     FooterConfig     `yaml:"footer"`
	Assets     AssetsConfig     `yaml:"assets"`
	Page       PageConfig       `yaml:"page"`
	Watermark  WatermarkConfig  `yaml:"watermark"`
	Cover      CoverConfig      `yaml:"cover"`
	TOC        TOCConfig        `yaml:"toc"`
	PageBreaks PageBreaksConfig `yaml:"pageBreaks"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
}

// InputConfig defines where sources are read from.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"`
}

// OutputConfig defines where documents are written and which extra formats
// accompany the PDF.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	HTML       bool   `yaml:"html"`
	Word       bool   `yaml:"word"`
}

// DocumentConfig defines how source text is read and styled.
type DocumentConfig struct {
	Format         string `yaml:"format"` // "report" (default) or "markdown"
	Lang           string `yaml:"lang"`   // "en" (default) or "ar"
	Style          string `yaml:"style"`  // style name or CSS path
	HighlightStyle string `yaml:"highlightStyle"`
}

// FooterConfig defines the PDF page footer.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right"
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Date           string `yaml:"date"`
	Status         string `yaml:"status"`
	Text           string `yaml:"text"`
	DocumentID     string `yaml:"documentId"`
}

// AssetsConfig points at a directory overriding embedded styles and templates.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// PageConfig defines PDF page geometry.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4" (default), "letter", "legal"
	Orientation string  `yaml:"orientation"` // "portrait" (default), "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// WatermarkConfig defines the diagonal background text.
type WatermarkConfig struct {
	Enabled bool    `yaml:"enabled"`
	Text    string  `yaml:"text"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
	Angle   float64 `yaml:"angle"`
}

// CoverConfig defines the cover page. Empty fields fall back to the
// business data of a generated report.
type CoverConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Logo         string `yaml:"logo"`
	Organization string `yaml:"organization"`
	PreparedBy   string `yaml:"preparedBy"`
	Date         string `yaml:"date"` // literal, "auto" or "auto:LAYOUT"
	Version      string `yaml:"version"`
	DocumentID   string `yaml:"documentId"`
}

// TOCConfig defines the table of contents.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"`
	MaxDepth int    `yaml:"maxDepth"`
}

// PageBreaksConfig defines print pagination rules.
type PageBreaksConfig struct {
	BeforeH1      bool `yaml:"beforeH1"`
	BeforeH2      bool `yaml:"beforeH2"`
	BeforeH3      bool `yaml:"beforeH3"`
	Orphans       int  `yaml:"orphans"`
	Widows        int  `yaml:"widows"`
	IgnoreMarkers bool `yaml:"ignoreMarkers"` // drop <page-break> markers
}

// GenerationConfig configures report generation through the LLM.
type GenerationConfig struct {
	Model       string  `yaml:"model"`
	Lang        string  `yaml:"lang"`
	DetailLevel string  `yaml:"detailLevel"`
	Temperature float64 `yaml:"temperature"` // 0 = model default
	APIKey      string  `yaml:"apiKey"`
	Timeout     string  `yaml:"timeout"` // Go duration, e.g. "3m"
}

// TimeoutDuration parses Timeout. Empty yields zero.
func (g GenerationConfig) TimeoutDuration() (time.Duration, error) {
	if g.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: generation.timeout %q must be a positive duration", ErrInvalidValue, g.Timeout)
	}
	return d, nil
}

// StoreConfig locates the saved-report database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

type lengthRule struct {
	field string
	value string
	max   int
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	rules := []lengthRule{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.style", c.Document.Style, MaxPathLength},
		{"document.highlightStyle", c.Document.HighlightStyle, MaxNameLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"footer.status", c.Footer.Status, MaxStatusLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"footer.documentId", c.Footer.DocumentID, MaxDocumentIDLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"watermark.text", c.Watermark.Text, MaxWatermarkTextLength},
		{"watermark.color", c.Watermark.Color, MaxWatermarkColorLength},
		{"cover.title", c.Cover.Title, MaxTitleLength},
		{"cover.subtitle", c.Cover.Subtitle, MaxTitleLength},
		{"cover.logo", c.Cover.Logo, MaxURLLength},
		{"cover.organization", c.Cover.Organization, MaxOrganizationLength},
		{"cover.preparedBy", c.Cover.PreparedBy, MaxNameLength},
		{"cover.date", c.Cover.Date, MaxDateLength},
		{"cover.version", c.Cover.Version, MaxVersionLength},
		{"cover.documentId", c.Cover.DocumentID, MaxDocumentIDLength},
		{"toc.title", c.TOC.Title, MaxTitleLength},
		{"generation.model", c.Generation.Model, MaxModelLength},
		{"store.path", c.Store.Path, MaxPathLength},
	}
	for _, r := range rules {
		if err := validateFieldLength(r.field, r.value, r.max); err != nil {
			return err
		}
	}

	if err := oneOf("document.format", c.Document.Format, "report", "markdown"); err != nil {
		return err
	}
	if err := oneOf("document.lang", c.Document.Lang, "en", "ar"); err != nil {
		return err
	}
	if err := oneOf("footer.position", strings.ToLower(c.Footer.Position), "left", "center", "right"); err != nil {
		return err
	}
	if err := oneOf("generation.lang", c.Generation.Lang, "en", "ar"); err != nil {
		return err
	}
	if err := oneOf("generation.detailLevel", c.Generation.DetailLevel, "summary", "detailed", "comprehensive"); err != nil {
		return err
	}
	if t := c.Generation.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("%w: generation.temperature must be between 0 and 2, got %.2f", ErrInvalidValue, t)
	}
	if _, err := c.Generation.TimeoutDuration(); err != nil {
		return err
	}

	if c.Watermark.Enabled {
		if c.Watermark.Text == "" {
			return fmt.Errorf("%w: watermark.text is required when watermark is enabled", ErrInvalidValue)
		}
		if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 1 {
			return fmt.Errorf("%w: watermark.opacity must be between 0 and 1, got %.2f", ErrInvalidValue, c.Watermark.Opacity)
		}
		if c.Watermark.Angle < -90 || c.Watermark.Angle > 90 {
			return fmt.Errorf("%w: watermark.angle must be between -90 and 90, got %.2f", ErrInvalidValue, c.Watermark.Angle)
		}
	}

	if c.PageBreaks.Orphans < 0 || c.PageBreaks.Orphans > 5 {
		return fmt.Errorf("%w: pageBreaks.orphans must be between 0 and 5, got %d", ErrInvalidValue, c.PageBreaks.Orphans)
	}
	if c.PageBreaks.Widows < 0 || c.PageBreaks.Widows > 5 {
		return fmt.Errorf("%w: pageBreaks.widows must be between 0 and 5, got %d", ErrInvalidValue, c.PageBreaks.Widows)
	}

	if c.TOC.Enabled {
		if err := depthInRange("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := depthInRange("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	return nil
}

func validateFieldLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), maxLength)
	}
	return nil
}

// oneOf accepts an empty value or one of allowed.
func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be %s)", ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

func depthInRange(field string, depth int) error {
	if depth != 0 && (depth < 1 || depth > 6) {
		return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidValue, field, depth)
	}
	return nil
}

// DefaultConfig returns a configuration with every optional feature off.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{Format: "report", Lang: "en"},
	}
}

// Load reads configuration from a path, or by name from the current
// directory then the user config directory. A missing file is an error.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files tried for a config name, in order.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// DefaultStorePath is the saved-report database used when store.path is
// unset: reports.db in the user config directory.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "reports.db"
	}
	return filepath.Join(dir, AppDir, "reports.db")
}
