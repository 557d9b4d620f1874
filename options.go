package reportdoc

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string // name, file path, or raw CSS from WithStyle
	resolvedStyle  string // CSS content after resolution
	assetPath      string
	highlightStyle string
}

// defaultTimeout bounds page loading in the browser when ctx has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("reportdoc: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the document stylesheet: a built-in style name ("report",
// "dark", "minimal"), a path to a CSS file, or raw CSS.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHighlightStyle selects the chroma style for code fences.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithLogger sets the logger for pipeline diagnostics. A nil logger is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withPDFConverter replaces the browser backend.
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

// withClock fixes the time used to resolve "auto" dates.
func withClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}
