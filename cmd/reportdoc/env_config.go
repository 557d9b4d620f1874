package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/hints"
)

// envPrefix namespaces the CLI environment variables.
const envPrefix = "REPORTDOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Essential
	ConfigPath string        // REPORTDOC_CONFIG: config file name or path
	Style      string        // REPORTDOC_STYLE: style name or CSS path
	Timeout    time.Duration // REPORTDOC_TIMEOUT: PDF generation timeout
	Workers    int           // REPORTDOC_WORKERS: parallel workers

	// I/O
	InputDir  string // REPORTDOC_INPUT_DIR
	OutputDir string // REPORTDOC_OUTPUT_DIR
	DBPath    string // REPORTDOC_DB: saved-report database

	// Document
	Lang          string // REPORTDOC_LANG: en, ar
	PageSize      string // REPORTDOC_PAGE_SIZE: a4, letter, legal
	WatermarkText string // REPORTDOC_WATERMARK_TEXT
	CoverLogo     string // REPORTDOC_COVER_LOGO
	PreparedBy    string // REPORTDOC_PREPARED_BY

	// Generation
	Model string // REPORTDOC_MODEL
}

// knownEnvVars lists valid REPORTDOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"REPORTDOC_CONFIG":         true,
	"REPORTDOC_STYLE":          true,
	"REPORTDOC_TIMEOUT":        true,
	"REPORTDOC_WORKERS":        true,
	"REPORTDOC_INPUT_DIR":      true,
	"REPORTDOC_OUTPUT_DIR":     true,
	"REPORTDOC_DB":             true,
	"REPORTDOC_LANG":           true,
	"REPORTDOC_PAGE_SIZE":      true,
	"REPORTDOC_WATERMARK_TEXT": true,
	"REPORTDOC_COVER_LOGO":     true,
	"REPORTDOC_PREPARED_BY":    true,
	"REPORTDOC_MODEL":          true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("REPORTDOC_CONFIG"),
		Style:         os.Getenv("REPORTDOC_STYLE"),
		InputDir:      os.Getenv("REPORTDOC_INPUT_DIR"),
		OutputDir:     os.Getenv("REPORTDOC_OUTPUT_DIR"),
		DBPath:        os.Getenv("REPORTDOC_DB"),
		Lang:          os.Getenv("REPORTDOC_LANG"),
		PageSize:      os.Getenv("REPORTDOC_PAGE_SIZE"),
		WatermarkText: os.Getenv("REPORTDOC_WATERMARK_TEXT"),
		CoverLogo:     os.Getenv("REPORTDOC_COVER_LOGO"),
		PreparedBy:    os.Getenv("REPORTDOC_PREPARED_BY"),
		Model:         os.Getenv("REPORTDOC_MODEL"),
	}

	if timeout := os.Getenv("REPORTDOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("REPORTDOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized REPORTDOC_*
// variable, to catch typos like REPORTDOC_STYEL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values to cfg where the config file
// left them empty, giving: flags > env > config file > defaults.
// Flags are merged afterwards by each command.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}

	setIfEmpty(&cfg.Document.Style, env.Style)
	setIfEmpty(&cfg.Document.Lang, env.Lang)
	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Store.Path, env.DBPath)
	setIfEmpty(&cfg.Page.Size, env.PageSize)
	setIfEmpty(&cfg.Generation.Model, env.Model)
	setIfEmpty(&cfg.Cover.PreparedBy, env.PreparedBy)

	// Watermark and cover logo auto-enable their feature.
	if env.WatermarkText != "" && cfg.Watermark.Text == "" {
		cfg.Watermark.Text = env.WatermarkText
		if !cfg.Watermark.Enabled {
			cfg.Watermark.Enabled = true
			cfg.Watermark.Angle = reportdoc.DefaultWatermarkAngle
		}
	}
	if env.CoverLogo != "" && cfg.Cover.Logo == "" {
		cfg.Cover.Logo = env.CoverLogo
		cfg.Cover.Enabled = true
	}
}

// loadConfig loads the config named by the flag or REPORTDOC_CONFIG, then
// layers the environment on top. Without either, defaults are used.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.Load(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}

// resolveTimeout picks the PDF timeout: flag > env. Zero means the
// library default.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	return env.Timeout, nil
}
