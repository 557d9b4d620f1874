package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/store"
)

// reportsFlags holds flags for every reports subcommand. Each subcommand
// registers only the flags it uses.
type reportsFlags struct {
	common     commonFlags
	db         string
	org        string
	limit      int
	json       bool
	comment    string
	output     string
	outputMode outputFlags
	style      string
	noCover    bool
	noTOC      bool
}

// reportsCommands maps subcommands to their positional argument count.
var reportsCommands = map[string]int{
	"list":   0,
	"show":   1,
	"delete": 1,
	"rate":   2,
	"export": 1,
}

// parseReportsFlags parses the flags of one reports subcommand.
func parseReportsFlags(sub string, args []string, stderr io.Writer) (*reportsFlags, []string, error) {
	f := &reportsFlags{}
	fs := newFlagSet("reports "+sub, printReportsUsage, stderr)
	registerReportsFlags(fs, sub, f)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// registerReportsFlags registers the flags of subcommand sub on fs.
func registerReportsFlags(fs *flag.FlagSet, sub string, f *reportsFlags) {
	fs.StringVar(&f.db, "db", "", "report store path")
	addCommonFlags(fs, &f.common)

	switch sub {
	case "list":
		fs.StringVar(&f.org, "org", "", "filter by organization name")
		fs.IntVar(&f.limit, "limit", 0, "show at most n reports")
		fs.BoolVar(&f.json, "json", false, "print JSON")
	case "rate":
		fs.StringVar(&f.comment, "comment", "", "feedback comment")
	case "export":
		addExportFlags(fs, f)
	}
}

func addExportFlags(fs *flag.FlagSet, f *reportsFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.BoolVar(&f.outputMode.html, "html", false, "write HTML alongside the PDF")
	fs.BoolVar(&f.outputMode.word, "word", false, "write a Word document alongside the PDF")
	fs.StringVar(&f.style, "style", "", "style name or CSS file")
	fs.BoolVar(&f.noCover, "no-cover", false, "skip the cover page")
	fs.BoolVar(&f.noTOC, "no-toc", false, "skip the table of contents")
}

// runReportsCmd dispatches a reports subcommand.
func runReportsCmd(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printReportsUsage(env.Stderr)
		return fmt.Errorf("%w: reports needs a subcommand", ErrUsage)
	}
	sub := args[0]
	want, ok := reportsCommands[sub]
	if !ok {
		printReportsUsage(env.Stderr)
		return fmt.Errorf("%w: unknown reports subcommand %q", ErrUsage, sub)
	}

	flags, positional, err := parseReportsFlags(sub, args[1:], env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != want {
		return fmt.Errorf("%w: reports %s takes %d argument(s), got %d", ErrUsage, sub, want, len(positional))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	s, err := openStore(storePath(flags.db, cfg))
	if err != nil {
		return err
	}
	defer s.Close()

	switch sub {
	case "list":
		return listReports(ctx, s, flags, env)
	case "show":
		return showReport(ctx, s, positional[0], env)
	case "delete":
		return deleteReport(ctx, s, positional[0], flags, env)
	case "rate":
		return rateReport(ctx, s, positional[0], positional[1], flags, env)
	default:
		return exportReport(ctx, s, positional[0], flags, cfg, envCfg, env)
	}
}

// reportSummary is the JSON form of a listed report. Content and business
// data are left out; use 'reports show'.
type reportSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Organization string    `json:"organization"`
	Kind         string    `json:"kind"`
	Lang         string    `json:"lang"`
	Rating       int       `json:"rating,omitempty"`
	Comment      string    `json:"comment,omitempty"`
}

func listReports(ctx context.Context, s *store.Store, flags *reportsFlags, env *Environment) error {
	if flags.limit < 0 {
		return fmt.Errorf("%w: --limit must be >= 0, got %d", ErrUsage, flags.limit)
	}
	reports, err := s.List(ctx, store.ListOptions{Organization: flags.org, Limit: flags.limit})
	if err != nil {
		return err
	}

	if flags.json {
		out := make([]reportSummary, 0, len(reports))
		for _, r := range reports {
			out = append(out, reportSummary{
				ID:           r.ID,
				CreatedAt:    r.CreatedAt,
				Organization: r.OrganizationName,
				Kind:         r.Kind,
				Lang:         r.Lang,
				Rating:       r.Rating,
				Comment:      r.Comment,
			})
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(reports) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "No saved reports.")
		}
		return nil
	}

	fmt.Fprintf(env.Stdout, "%-8s  %-16s  %-10s  %-4s  %-6s  %s\n", "ID", "CREATED", "KIND", "LANG", "RATING", "ORGANIZATION")
	for _, r := range reports {
		rating := "-"
		if r.Rating > 0 {
			rating = strconv.Itoa(r.Rating) + "/5"
		}
		fmt.Fprintf(env.Stdout, "%-8s  %-16s  %-10s  %-4s  %-6s  %s\n",
			shortID(r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Kind,
			r.Lang,
			rating,
			r.OrganizationName)
	}
	return nil
}

func showReport(ctx context.Context, s *store.Store, id string, env *Environment) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, strings.TrimRight(r.Content, "\n"))
	return nil
}

func deleteReport(ctx context.Context, s *store.Store, id string, flags *reportsFlags, env *Environment) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Delete(ctx, r.ID); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Deleted %s\n", r.ID)
	}
	return nil
}

func rateReport(ctx context.Context, s *store.Store, id, rating string, flags *reportsFlags, env *Environment) error {
	n, err := strconv.Atoi(rating)
	if err != nil {
		return fmt.Errorf("%w: rating %q is not a number", ErrUsage, rating)
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.SubmitFeedback(ctx, r.ID, n, flags.comment); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Rated %s: %d/5\n", shortID(r.ID), n)
	}
	return nil
}

func exportReport(ctx context.Context, s *store.Store, id string, flags *reportsFlags,
	cfg *config.Config, envCfg *envConfig, env *Environment,
) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pdfPath := flags.output
	if pdfPath == "" {
		pdfPath = filepath.Join(cfg.Output.DefaultDir, slug(r.OrganizationName)+"-"+shortID(r.ID)+".pdf")
	}

	return renderDocument(ctx, renderOptions{
		text:    r.Content,
		lang:    r.Lang,
		kind:    r.Kind,
		data:    &r.BusinessData,
		docID:   shortID(r.ID),
		pdfPath: pdfPath,
		html:    flags.outputMode.html || cfg.Output.HTML,
		word:    flags.outputMode.word || cfg.Output.Word,
		style:   flags.style,
		noCover: flags.noCover,
		noTOC:   flags.noTOC,
		timeout: envCfg.Timeout,
		quiet:   flags.common.quiet,
		cfg:     cfg,
	}, env, env.logger(flags.common))
}
