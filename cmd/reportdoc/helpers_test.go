package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/generate"
)

// fakePDF is the content every fake conversion writes.
const fakePDF = "%PDF-1.4 fake"

// fakeConverter records inputs and returns fixed documents.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []reportdoc.Input
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, in reportdoc.Input) (*reportdoc.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	res := &reportdoc.ConvertResult{HTML: []byte("<html>" + in.Text + "</html>")}
	if !in.HTMLOnly {
		res.PDF = []byte(fakePDF)
	}
	if in.Word {
		res.Word = []byte("<html>word</html>")
	}
	return res, nil
}

func (f *fakeConverter) calls() []reportdoc.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reportdoc.Input(nil), f.inputs...)
}

// fakePool hands out a single shared fakeConverter.
type fakePool struct {
	conv   *fakeConverter
	size   int
	opts   []reportdoc.Option
	closed bool
}

func (p *fakePool) Acquire(ctx context.Context) (Converter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.conv, nil
}

func (p *fakePool) Release(Converter) {}
func (p *fakePool) Size() int         { return p.size }
func (p *fakePool) Close() error      { p.closed = true; return nil }

// fakeGenerator returns canned text and records prompts.
type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []generate.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req generate.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.text, g.err
}

// testEnv bundles an Environment with its captured output and fakes.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *fakeConverter
	gen    *fakeGenerator
	pools  []*fakePool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{},
		gen:    &fakeGenerator{text: "# Analysis\n\nGenerated body."},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Logger: zap.NewNop(),
		NewPool: func(size int, opts ...reportdoc.Option) Pool {
			p := &fakePool{conv: te.conv, size: size, opts: opts}
			te.pools = append(te.pools, p)
			return p
		},
		NewGenerator: func(_ context.Context, apiKey, _ string) (generate.Generator, error) {
			if apiKey == "" {
				return nil, errors.New("empty key")
			}
			return te.gen, nil
		},
	}
	return te
}

// writeFiles creates files under dir and returns dir.
func writeFiles(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
