package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/store"
)

// Generation kinds accepted by --kind.
const (
	kindReport     = store.KindReport
	kindManual     = store.KindManual
	kindBenchmarks = store.KindBenchmarks
)

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	business   string
	template   string
	org        string
	legalForm  string
	lang       string
	detail     string
	kind       string
	manual     string
	from       string
	model      string
	timeout    string
	output     string
	save       bool
	db         string
	convert    bool
	outputMode outputFlags
	style      string
	noCover    bool
	noTOC      bool
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newFlagSet("generate", printGenerateUsage, stderr)
	registerGenerateFlags(fs, f)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func registerGenerateFlags(fs *flag.FlagSet, f *generateFlags) {
	fs.StringVarP(&f.business, "business", "b", "", "business data YAML file")
	fs.StringVar(&f.template, "template", "", "built-in business template")
	fs.StringVar(&f.org, "org", "", "organization name")
	fs.StringVar(&f.legalForm, "legal-form", "", "legal form")
	fs.StringVar(&f.lang, "lang", "", "output language: en, ar")
	fs.StringVar(&f.detail, "detail", "", "detail level: summary, detailed, comprehensive")
	fs.StringVar(&f.kind, "kind", kindReport, "report, manual, benchmarks")
	fs.StringVar(&f.manual, "manual", "", "manual type: financial_policies, financial_sops, admin_sops")
	fs.StringVar(&f.from, "from", "", "saved report id used as manual context")
	fs.StringVar(&f.model, "model", "", "Gemini model")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout (e.g., 3m)")
	fs.StringVarP(&f.output, "output", "o", "", "write text to this file")
	fs.BoolVar(&f.save, "save", false, "save the result in the report store")
	fs.StringVar(&f.db, "db", "", "report store path")
	fs.BoolVar(&f.convert, "convert", false, "also render a PDF")
	fs.BoolVar(&f.outputMode.html, "html", false, "write HTML alongside the PDF")
	fs.BoolVar(&f.outputMode.word, "word", false, "write a Word document alongside the PDF")
	fs.StringVar(&f.style, "style", "", "style name or CSS file")
	fs.BoolVar(&f.noCover, "no-cover", false, "skip the cover page")
	fs.BoolVar(&f.noTOC, "no-toc", false, "skip the table of contents")
	addCommonFlags(fs, &f.common)
}

// runGenerateCmd parses generate flags and runs the generation.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	return runGenerate(ctx, flags, env)
}

// runGenerate loads business data, calls the model, then writes, saves and
// renders the result as requested.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	logger := env.logger(flags.common)

	data, err := loadGenerateData(flags)
	if err != nil {
		return err
	}
	if flags.detail == "" && data.DetailLevel == "" && cfg.Generation.DetailLevel != "" {
		data.DetailLevel = generate.DetailLevel(cfg.Generation.DetailLevel)
	}
	if err := data.Validate(); err != nil {
		return err
	}

	lang := firstNonEmpty(flags.lang, cfg.Generation.Lang, cfg.Document.Lang, generate.LangEnglish)

	kind, manual, err := resolveKind(flags)
	if err != nil {
		return err
	}

	var analysis string
	if flags.from != "" {
		if kind != kindManual {
			return fmt.Errorf("%w: --from only applies to --kind manual", ErrUsage)
		}
		analysis, err = loadAnalysis(ctx, storePath(flags.db, cfg), flags.from)
		if err != nil {
			return err
		}
	}

	timeout, err := generationTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}
	// The deadline covers the model call only, not PDF rendering.
	genCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	apiKey, err := generate.ResolveAPIKey(cfg.Generation.APIKey)
	if err != nil {
		return err
	}
	model := firstNonEmpty(flags.model, cfg.Generation.Model, generate.DefaultModel)
	gen, err := env.NewGenerator(genCtx, apiKey, model)
	if err != nil {
		return err
	}

	analyst, err := generate.NewAnalyst(gen,
		generate.WithLang(lang),
		generate.WithTemperature(cfg.Generation.Temperature),
		generate.WithLogger(logger))
	if err != nil {
		return err
	}

	start := env.Now()
	logger.Debug("generating",
		zap.String("kind", kind),
		zap.String("model", model),
		zap.String("organization", data.OrganizationName))

	text, err := runAnalyst(genCtx, analyst, data, kind, manual, analysis)
	if err != nil {
		return err
	}
	logger.Debug("generated", zap.Int("chars", len(text)), zap.Duration("elapsed", env.Now().Sub(start)))

	// Status lines go to stderr when the document itself goes to stdout.
	notices := env.Stdout
	outPath := flags.output
	if outPath == "" && flags.convert {
		outPath = filepath.Join(cfg.Output.DefaultDir, slug(data.OrganizationName)+"-"+kind+".txt")
	}
	if outPath == "" {
		notices = env.Stderr
		fmt.Fprintln(env.Stdout, text)
	} else {
		if err := writeText(outPath, text); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(notices, "Created %s\n", outPath)
		}
	}

	var docID string
	if flags.save {
		saved, err := saveGenerated(ctx, storePath(flags.db, cfg), store.Report{
			Kind:         kind,
			Lang:         lang,
			Content:      text,
			BusinessData: *data,
		})
		if err != nil {
			return err
		}
		docID = shortID(saved.ID)
		if !flags.common.quiet {
			fmt.Fprintf(notices, "Saved %s %s\n", kind, saved.ID)
		}
	}

	if !flags.convert {
		return nil
	}
	titleKind := kind
	if kind == kindManual {
		titleKind = string(manual)
	}
	return renderDocument(ctx, renderOptions{
		text:    text,
		lang:    lang,
		kind:    titleKind,
		data:    data,
		docID:   docID,
		pdfPath: fileutil.OutputPath(outPath, "", ".pdf"),
		html:    flags.outputMode.html || cfg.Output.HTML,
		word:    flags.outputMode.word || cfg.Output.Word,
		style:   flags.style,
		noCover: flags.noCover,
		noTOC:   flags.noTOC,
		timeout: envCfg.Timeout,
		quiet:   flags.common.quiet,
		cfg:     cfg,
	}, env, logger)
}

// loadGenerateData builds business data from --business, then --template
// for empty fields, then the field flags on top.
func loadGenerateData(flags *generateFlags) (*generate.BusinessData, error) {
	if flags.business == "" && flags.template == "" {
		return nil, fmt.Errorf("%w: generate needs --business or --template", ErrUsage)
	}

	data := &generate.BusinessData{}
	if flags.business != "" {
		loaded, err := generate.LoadBusinessData(flags.business)
		if err != nil {
			return nil, err
		}
		data = loaded
	}
	if flags.template != "" {
		if err := generate.ApplyTemplate(data, flags.template); err != nil {
			return nil, err
		}
	}

	if flags.org != "" {
		data.OrganizationName = flags.org
	}
	if flags.legalForm != "" {
		data.LegalForm = flags.legalForm
	}
	if flags.detail != "" {
		data.DetailLevel = generate.DetailLevel(flags.detail)
	}
	return data, nil
}

// resolveKind validates --kind and --manual.
func resolveKind(flags *generateFlags) (string, generate.ManualType, error) {
	switch flags.kind {
	case kindReport, kindBenchmarks:
		if flags.manual != "" {
			return "", "", fmt.Errorf("%w: --manual requires --kind manual", ErrUsage)
		}
		return flags.kind, "", nil
	case kindManual:
		if flags.manual == "" {
			return "", "", fmt.Errorf("%w: --kind manual requires --manual", ErrUsage)
		}
		m, err := generate.ParseManualType(flags.manual)
		if err != nil {
			return "", "", err
		}
		return kindManual, m, nil
	default:
		return "", "", fmt.Errorf("%w: --kind %q (must be report, manual or benchmarks)", ErrUsage, flags.kind)
	}
}

// runAnalyst dispatches to the analyst call for kind. Benchmarks are
// returned as report text.
func runAnalyst(ctx context.Context, a *generate.Analyst, data *generate.BusinessData,
	kind string, manual generate.ManualType, analysis string,
) (string, error) {
	switch kind {
	case kindManual:
		return a.Manual(ctx, data, manual, analysis)
	case kindBenchmarks:
		b, err := a.Benchmarks(ctx, data)
		if err != nil {
			return "", err
		}
		return generate.FormatBenchmarks(b, a.Lang()), nil
	default:
		return a.Report(ctx, data)
	}
}

// generationTimeout picks --timeout over generation.timeout.
func generationTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: invalid --timeout %q", ErrUsage, flagValue)
		}
		return d, nil
	}
	return cfg.Generation.TimeoutDuration()
}

// loadAnalysis reads a saved report to use as manual context.
func loadAnalysis(ctx context.Context, dbPath, id string) (string, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return "", err
	}
	defer s.Close()

	r, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return r.Content, nil
}

// saveGenerated stores a generated document.
func saveGenerated(ctx context.Context, dbPath string, r store.Report) (*store.Report, error) {
	s, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Save(ctx, r)
}

// writeText writes generated text, creating parent directories.
func writeText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// shortID is the 8-character prefix used in listings and document IDs.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
