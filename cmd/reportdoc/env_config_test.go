package main

// Notes:
// - Tests use t.Setenv(), which rules out t.Parallel() at the parent level.
// - Malformed REPORTDOC_TIMEOUT and REPORTDOC_WORKERS are ignored, not
//   errors; --timeout is validated by resolveTimeout instead.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("REPORTDOC_CONFIG", "/etc/reportdoc.yaml")
	t.Setenv("REPORTDOC_STYLE", "dark")
	t.Setenv("REPORTDOC_TIMEOUT", "2m")
	t.Setenv("REPORTDOC_WORKERS", "3")
	t.Setenv("REPORTDOC_INPUT_DIR", "/in")
	t.Setenv("REPORTDOC_OUTPUT_DIR", "/out")
	t.Setenv("REPORTDOC_DB", "/data/reports.db")
	t.Setenv("REPORTDOC_LANG", "ar")
	t.Setenv("REPORTDOC_PAGE_SIZE", "letter")
	t.Setenv("REPORTDOC_WATERMARK_TEXT", "DRAFT")
	t.Setenv("REPORTDOC_COVER_LOGO", "/logo.png")
	t.Setenv("REPORTDOC_PREPARED_BY", "Advisory Team")
	t.Setenv("REPORTDOC_MODEL", "gemini-2.5-pro")

	want := &envConfig{
		ConfigPath:    "/etc/reportdoc.yaml",
		Style:         "dark",
		Timeout:       2 * time.Minute,
		Workers:       3,
		InputDir:      "/in",
		OutputDir:     "/out",
		DBPath:        "/data/reports.db",
		Lang:          "ar",
		PageSize:      "letter",
		WatermarkText: "DRAFT",
		CoverLogo:     "/logo.png",
		PreparedBy:    "Advisory Team",
		Model:         "gemini-2.5-pro",
	}
	if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name, timeout, workers string
	}{
		{"garbage", "soon", "many"},
		{"negative", "-5s", "-2"},
		{"zero", "0s", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REPORTDOC_TIMEOUT", tt.timeout)
			t.Setenv("REPORTDOC_WORKERS", tt.workers)

			cfg := loadEnvConfig()
			if cfg.Timeout != 0 || cfg.Workers != 0 {
				t.Errorf("Timeout = %v, Workers = %d; want zero values", cfg.Timeout, cfg.Workers)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("REPORTDOC_STYEL", "dark")
	t.Setenv("REPORTDOC_STYLE", "dark")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "REPORTDOC_STYEL") {
		t.Errorf("missing warning for typo: %q", out)
	}
	if strings.Contains(out, "REPORTDOC_STYLE ") {
		t.Errorf("known variable should not warn: %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields only", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Document: config.DocumentConfig{Style: "minimal"}}
		applyEnvConfig(&envConfig{Style: "dark", Lang: "ar", DBPath: "r.db", Model: "m"}, cfg)

		if cfg.Document.Style != "minimal" {
			t.Errorf("Style = %q, config value should win", cfg.Document.Style)
		}
		if cfg.Document.Lang != "ar" || cfg.Store.Path != "r.db" || cfg.Generation.Model != "m" {
			t.Errorf("env values not applied: %+v", cfg)
		}
	})

	t.Run("watermark text enables watermark", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		applyEnvConfig(&envConfig{WatermarkText: "DRAFT"}, cfg)

		want := config.WatermarkConfig{Enabled: true, Text: "DRAFT", Angle: reportdoc.DefaultWatermarkAngle}
		if diff := cmp.Diff(want, cfg.Watermark); diff != "" {
			t.Errorf("Watermark mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cover logo enables cover", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		applyEnvConfig(&envConfig{CoverLogo: "logo.png"}, cfg)
		if !cfg.Cover.Enabled || cfg.Cover.Logo != "logo.png" {
			t.Errorf("Cover = %+v", cfg.Cover)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "team.yaml")
	if err := os.WriteFile(path, []byte("document:\n  style: dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("defaults without a name", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", &envConfig{Lang: "ar"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		// The default config sets a language, so the env value does not apply.
		if cfg.Document.Lang != "en" {
			t.Errorf("Lang = %q, want en", cfg.Document.Lang)
		}
	})

	t.Run("flag path", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig(path, &envConfig{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Document.Style != "dark" {
			t.Errorf("Style = %q, want dark", cfg.Document.Style)
		}
	})

	t.Run("env path", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Document.Style != "dark" {
			t.Errorf("Style = %q, want dark", cfg.Document.Style)
		}
	})

	t.Run("missing name carries hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("no-such-config-name", &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error = %q, want a hint", err)
		}
	})
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	env := &envConfig{Timeout: time.Minute}

	tests := []struct {
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{"", time.Minute, false},
		{"90s", 90 * time.Second, false},
		{"soon", 0, true},
		{"-1s", 0, true},
		{"0s", 0, true},
	}
	for _, tt := range tests {
		got, err := resolveTimeout(tt.flag, env)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveTimeout(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUsage) {
			t.Errorf("resolveTimeout(%q) error = %v, want ErrUsage", tt.flag, err)
		}
		if got != tt.want {
			t.Errorf("resolveTimeout(%q) = %v, want %v", tt.flag, got, tt.want)
		}
	}
}
