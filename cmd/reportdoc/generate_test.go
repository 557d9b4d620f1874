package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/store"
)

// writeGenerateConfig writes a config carrying an API key, so tests do not
// depend on GEMINI_API_KEY.
func writeGenerateConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "reportdoc.yaml")
	content := "generation:\n  apiKey: test-key\n  model: gemini-test\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// acmeArgs selects a template and fills the fields templates leave out.
func acmeArgs(cfgPath string, extra ...string) []string {
	args := []string{"--template", "service_business", "--org", "Acme Advisory", "--legal-form", "LLC", "-c", cfgPath}
	return append(args, extra...)
}

func TestRunGenerateCmd_Stdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	te := newTestEnv(t)

	err := runGenerateCmd(context.Background(), acmeArgs(writeGenerateConfig(t, dir)), te.Environment)
	if err != nil {
		t.Fatalf("runGenerateCmd() error = %v", err)
	}

	if !strings.Contains(te.stdout.String(), "Generated body.") {
		t.Errorf("stdout = %q, want generated text", te.stdout.String())
	}
	if len(te.gen.requests) != 1 {
		t.Fatalf("Generate called %d times, want 1", len(te.gen.requests))
	}
	if !strings.Contains(te.gen.requests[0].User, "Acme Advisory") {
		t.Error("prompt does not mention the organization")
	}
	if len(te.conv.calls()) != 0 {
		t.Error("nothing should be rendered without --convert")
	}
}

func TestRunGenerateCmd_SaveAndConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	te := newTestEnv(t)
	db := filepath.Join(dir, "reports.db")
	out := filepath.Join(dir, "out", "acme.txt")

	args := acmeArgs(writeGenerateConfig(t, dir), "--save", "--db", db, "--convert", "-o", out, "--html")
	if err := runGenerateCmd(context.Background(), args, te.Environment); err != nil {
		t.Fatalf("runGenerateCmd() error = %v", err)
	}

	if got := readFile(t, out); !strings.Contains(got, "Generated body.") {
		t.Errorf("text file = %q", got)
	}
	pdf := filepath.Join(dir, "out", "acme.pdf")
	for _, p := range []string{pdf, filepath.Join(dir, "out", "acme.html")} {
		if !fileExists(p) {
			t.Errorf("missing %s", p)
		}
	}
	stdout := te.stdout.String()
	for _, want := range []string{"Created " + out, "Saved report ", "Created " + pdf} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	calls := te.conv.calls()
	if len(calls) != 1 {
		t.Fatalf("Convert called %d times, want 1", len(calls))
	}
	c := calls[0].Cover
	if c == nil || c.Title != "Business Consulting Report" || c.Organization != "Acme Advisory" || c.Date != "auto" {
		t.Errorf("Cover = %+v", c)
	}
	if c != nil && len(c.DocumentID) != 8 {
		t.Errorf("DocumentID = %q, want the short saved id", c.DocumentID)
	}
	if calls[0].TOC == nil {
		t.Error("TOC should be on by default")
	}

	s, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	reports, err := s.List(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].OrganizationName != "Acme Advisory" || reports[0].Kind != store.KindReport {
		t.Errorf("saved reports = %+v", reports)
	}
}

func TestRunGenerateCmd_Benchmarks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	te := newTestEnv(t)
	te.gen.text = "```json\n[{\"kpi\":\"Gross margin\",\"companyValue\":42,\"industryAverage\":38.5,\"unit\":\"%\",\"explanation\":\"Above peers.\"}]\n```"

	args := acmeArgs(writeGenerateConfig(t, dir), "--kind", "benchmarks")
	if err := runGenerateCmd(context.Background(), args, te.Environment); err != nil {
		t.Fatalf("runGenerateCmd() error = %v", err)
	}

	out := te.stdout.String()
	for _, want := range []string{"# KPI Benchmarks", "Gross margin | 42 | 38.5 | %", "- **Gross margin**: Above peers."} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if !te.gen.requests[0].JSON {
		t.Error("benchmark request should ask for JSON")
	}
}

func TestRunGenerateCmd_ManualFromSavedReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "reports.db")

	s, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := s.Save(context.Background(), store.Report{
		Content:      "# Diagnostic\n\nCash collection is slow.",
		BusinessData: generate.BusinessData{OrganizationName: "Acme Advisory"},
	})
	s.Close()
	if err != nil {
		t.Fatal(err)
	}

	te := newTestEnv(t)
	args := acmeArgs(writeGenerateConfig(t, dir), "--kind", "manual", "--manual", "financial_sops", "--db", db, "--from", shortID(saved.ID))
	if err := runGenerateCmd(context.Background(), args, te.Environment); err != nil {
		t.Fatalf("runGenerateCmd() error = %v", err)
	}

	if !strings.Contains(te.gen.requests[0].User, "Cash collection is slow.") {
		t.Error("manual prompt does not quote the saved report")
	}
}

func TestRunGenerateCmd_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeGenerateConfig(t, dir)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no business data", []string{"-c", cfgPath}, ErrUsage},
		{"positional argument", []string{"extra"}, ErrUsage},
		{"unknown template", []string{"--template", "bakery", "-c", cfgPath}, generate.ErrTemplateNotFound},
		{"missing fields", []string{"--template", "service_business", "-c", cfgPath}, generate.ErrMissingField},
		{"bad detail", acmeArgs(cfgPath, "--detail", "brief"), generate.ErrInvalidDetailLevel},
		{"bad kind", acmeArgs(cfgPath, "--kind", "memo"), ErrUsage},
		{"manual without type", acmeArgs(cfgPath, "--kind", "manual"), ErrUsage},
		{"manual type without kind", acmeArgs(cfgPath, "--manual", "admin_sops"), ErrUsage},
		{"bad manual type", acmeArgs(cfgPath, "--kind", "manual", "--manual", "hr"), generate.ErrInvalidManualType},
		{"from without manual", acmeArgs(cfgPath, "--from", "abcdef12"), ErrUsage},
		{"bad timeout", acmeArgs(cfgPath, "-t", "later"), ErrUsage},
		{"bad lang", acmeArgs(cfgPath, "--lang", "fr"), generate.ErrInvalidLang},
		{"missing business file", []string{"-b", filepath.Join(dir, "missing.yaml"), "-c", cfgPath}, generate.ErrLoadBusinessData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			err := runGenerateCmd(context.Background(), tt.args, te.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(te.gen.requests) != 0 {
				t.Error("model should not be called")
			}
		})
	}
}

func TestRunGenerateCmd_GenerationError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	te := newTestEnv(t)
	te.gen.err = generate.ErrEmptyResponse

	err := runGenerateCmd(context.Background(), acmeArgs(writeGenerateConfig(t, dir)), te.Environment)
	if !errors.Is(err, generate.ErrEmptyResponse) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
	if exitCodeFor(err) != ExitGeneration {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitGeneration)
	}
}

func TestRunGenerateCmd_MissingAPIKey(t *testing.T) {
	for _, name := range generate.APIKeyEnvVars {
		t.Setenv(name, "")
	}
	te := newTestEnv(t)

	args := []string{"--template", "service_business", "--org", "Acme", "--legal-form", "LLC"}
	err := runGenerateCmd(context.Background(), args, te.Environment)
	if !errors.Is(err, generate.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if !strings.Contains(hintFor(err), "GEMINI_API_KEY") {
		t.Errorf("hint = %q, want API key advice", hintFor(err))
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Acme Advisory LLC": "acme-advisory-llc",
		"  --Déjà Vu!! ":    "déjà-vu",
		"شركة النور":        "شركة-النور",
		"***":               "report",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	if got := documentTitle("ar", store.KindReport); got != "تقرير استشاري للأعمال" {
		t.Errorf("Arabic report title = %q", got)
	}
	if got := documentTitle("fr", string(generate.ManualAdminSOPs)); got != "Administrative Procedures Manual" {
		t.Errorf("fallback title = %q", got)
	}
}
