package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-reportdoc"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		outDir  string
		baseDir string
		want    string
	}{
		{"next to input", filepath.Join("docs", "q1.txt"), "", "", filepath.Join("docs", "q1.pdf")},
		{"explicit pdf", "q1.txt", filepath.Join("out", "final.PDF"), "", filepath.Join("out", "final.PDF")},
		{"into directory", filepath.Join("docs", "q1.md"), "out", "", filepath.Join("out", "q1.pdf")},
		{
			"mirrors tree",
			filepath.Join("docs", "2026", "q1.report"),
			"out",
			"docs",
			filepath.Join("out", "2026", "q1.pdf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, t.TempDir(), map[string]string{
		"a.txt":            "a",
		"b.markdown":       "b",
		"sub/c.report":     "c",
		"sub/d.docx":       "d",
		".git/e.txt":       "e",
		"sub/.cache/f.txt": "f",
	})

	files, err := discoverFiles(dir, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.InputPath)
		got = append(got, filepath.ToSlash(rel))
		if want := sidecarPath(f.InputPath, ".pdf"); f.OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", f.OutputPath, want)
		}
	}
	sort.Strings(got)

	want := []string{"a.txt", "b.markdown", "sub/c.report"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, t.TempDir(), map[string]string{"notes.pdf": "x"})

	if _, err := discoverFiles(filepath.Join(dir, "missing.txt"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "notes.pdf"), ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("pdf input error = %v, want ErrInvalidExtension", err)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{reportdoc.MaxPoolSize, false},
		{reportdoc.MaxPoolSize + 1, true},
	}
	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}

func TestSidecarPath(t *testing.T) {
	t.Parallel()

	if got := sidecarPath(filepath.Join("out", "r.pdf"), ".html"); got != filepath.Join("out", "r.html") {
		t.Errorf("sidecarPath() = %q", got)
	}
	if got := sidecarPath("report", ".doc"); got != "report.doc" {
		t.Errorf("sidecarPath() = %q, want report.doc", got)
	}
}
