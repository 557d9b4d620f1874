package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// manualTemperature keeps manuals close to the requested structure.
const manualTemperature float32 = 0.2

// Analyst turns business data into reports, manuals and KPI benchmarks.
type Analyst struct {
	gen         Generator
	lang        string
	temperature *float32
	logger      *zap.Logger
}

// AnalystOption configures an Analyst.
type AnalystOption func(*Analyst)

// WithLang sets the output language ("en" or "ar").
func WithLang(lang string) AnalystOption {
	return func(a *Analyst) { a.lang = lang }
}

// WithTemperature sets the sampling temperature of report requests. Zero
// keeps the model default.
func WithTemperature(t float64) AnalystOption {
	return func(a *Analyst) {
		if t > 0 {
			v := float32(t)
			a.temperature = &v
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *zap.Logger) AnalystOption {
	return func(a *Analyst) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyst creates an Analyst backed by gen.
func NewAnalyst(gen Generator, opts ...AnalystOption) (*Analyst, error) {
	a := &Analyst{gen: gen, lang: LangEnglish, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	lang, err := normalizeLang(a.lang)
	if err != nil {
		return nil, err
	}
	a.lang = lang
	return a, nil
}

// Lang returns the output language.
func (a *Analyst) Lang() string { return a.lang }

// Report generates the consulting report for data.
func (a *Analyst) Report(ctx context.Context, data *BusinessData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	prompt, err := ReportPrompt(data, a.lang)
	if err != nil {
		return "", err
	}
	return a.generate(ctx, "report", Request{Prompt: prompt, Temperature: a.temperature})
}

// Manual generates one operations manual. analysis, when non-empty, is the
// report the manual builds on.
func (a *Analyst) Manual(ctx context.Context, data *BusinessData, kind ManualType, analysis string) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	prompt, err := ManualPrompt(data, kind, analysis, a.lang)
	if err != nil {
		return "", err
	}
	t := manualTemperature
	return a.generate(ctx, "manual:"+string(kind), Request{Prompt: prompt, Temperature: &t})
}

// Benchmarks estimates KPIs for data against industry averages.
func (a *Analyst) Benchmarks(ctx context.Context, data *BusinessData) ([]KPIBenchmark, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	prompt, err := BenchmarkPrompt(data, a.lang)
	if err != nil {
		return nil, err
	}
	text, err := a.generate(ctx, "benchmarks", Request{Prompt: prompt, JSON: true})
	if err != nil {
		return nil, err
	}
	return ParseBenchmarks(text)
}

func (a *Analyst) generate(ctx context.Context, kind string, req Request) (string, error) {
	start := time.Now()
	a.logger.Debug("generation started", zap.String("kind", kind), zap.String("lang", a.lang))

	text, err := a.gen.Generate(ctx, req)
	if err != nil {
		a.logger.Debug("generation failed", zap.String("kind", kind), zap.Error(err))
		return "", err
	}

	a.logger.Debug("generation finished",
		zap.String("kind", kind),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

// ParseBenchmarks decodes a benchmark response. A surrounding ``` or
// ```json fence is tolerated.
func ParseBenchmarks(text string) ([]KPIBenchmark, error) {
	var out []KPIBenchmark
	if err := json.Unmarshal([]byte(stripFence(text)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBenchmarkJSON, err)
	}
	return out, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
