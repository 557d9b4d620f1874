package pipeline

import (
	"strings"
	"sync"
	"testing"
)

func TestChromaHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("")

	tests := []struct {
		name     string
		code     string
		language string
		wantOK   bool
		contains string
	}{
		{"go keyword", "package main", "go", true, `<span class="kn">package</span>`},
		{"language is case insensitive", "package main", "Go", true, `class="kn"`},
		{"extension fallback", "x = 1", "py", true, `<span class="n">x</span>`},
		{"unknown language", "whatever", "no-such-language", false, ""},
		{"no language", "whatever", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := h.Highlight(tt.code, tt.language)
			if ok != tt.wantOK {
				t.Fatalf("Highlight(%q, %q) ok = %v, want %v", tt.code, tt.language, ok, tt.wantOK)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Highlight(%q, %q) = %q, want it to contain %q", tt.code, tt.language, got, tt.contains)
			}
			if strings.Contains(got, "<pre") {
				t.Errorf("Highlight() = %q, want no surrounding <pre>", got)
			}
		})
	}
}

func TestChromaHighlighter_EscapesMarkup(t *testing.T) {
	t.Parallel()

	got, ok := NewChromaHighlighter("monokai").Highlight(`x := "<script>"`, "go")
	if !ok {
		t.Fatal("Highlight() ok = false, want true")
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("Highlight() = %q, want markup escaped", got)
	}
}

func TestChromaHighlighter_CSS(t *testing.T) {
	t.Parallel()

	css := NewChromaHighlighter("github").CSS()
	if !strings.Contains(css, ".chroma") {
		t.Errorf("CSS() = %q, want .chroma rules", css)
	}
}

func TestChromaHighlighter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("github")
	want, _ := h.Highlight("package main", "go")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := h.Highlight("package main", "go"); got != want {
				t.Errorf("concurrent Highlight() = %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}
