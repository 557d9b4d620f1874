package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	tableOpen  = `<div class="report-table"><table><thead><tr>`
	tableClose = `</tbody></table></div>`
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "single line of prose",
			input: "Quarterly results were stable.",
			want:  "Quarterly results were stable.",
		},
		{
			name:  "newlines become line breaks",
			input: "First line\nSecond line\n\nAfter blank",
			want:  "First line<br />Second line<br /><br />After blank",
		},
		{
			name:  "whitespace-delimited table",
			input: "Name  Score\nAlice  90\nBob  85",
			want: tableOpen + "<th>Name</th><th>Score</th></tr></thead><tbody>" +
				"<tr><td>Alice</td><td>90</td></tr>" +
				"<tr><td>Bob</td><td>85</td></tr>" + tableClose,
		},
		{
			name:  "short row is padded",
			input: "A  B  C\n1  2",
			want: tableOpen + "<th>A</th><th>B</th><th>C</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td><td></td></tr>" + tableClose,
		},
		{
			name:  "extra cells are dropped",
			input: "A  B\n1  2  3",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose,
		},
		{
			name:  "separator row is dropped and keeps the table open",
			input: "| Name | Score |\n|---|---|\n| Alice | 90 |",
			want: tableOpen + "<th>Name</th><th>Score</th></tr></thead><tbody>" +
				"<tr><td>Alice</td><td>90</td></tr>" + tableClose,
		},
		{
			name:  "aligned separator row",
			input: "| Metric | Value |\n| :--- | ---: |\n| Margin | 12% |",
			want: tableOpen + "<th>Metric</th><th>Value</th></tr></thead><tbody>" +
				"<tr><td>Margin</td><td>12%</td></tr>" + tableClose,
		},
		{
			name:  "tab-delimited table",
			input: "KPI\tTarget\nChurn\t5%",
			want: tableOpen + "<th>KPI</th><th>Target</th></tr></thead><tbody>" +
				"<tr><td>Churn</td><td>5%</td></tr>" + tableClose,
		},
		{
			name:  "non-row line closes the table and is rendered after it",
			input: "A  B\n1  2\nClosing remark",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose + "<br />Closing remark",
		},
		{
			name:  "blank line closes the table",
			input: "A  B\n\n1  2",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" + tableClose +
				"<br /><br />" +
				tableOpen + "<th>1</th><th>2</th></tr></thead><tbody>" + tableClose,
		},
		{
			name:  "pipe row keeps empty cells in position",
			input: "| Phase | Owner | Due |\n| Launch |  | Q3 |",
			want: tableOpen + "<th>Phase</th><th>Owner</th><th>Due</th></tr></thead><tbody>" +
				"<tr><td>Launch</td><td></td><td>Q3</td></tr>" + tableClose,
		},
		{
			name:  "inline formatting inside cells",
			input: "Item  Status\n**Audit**  *pending*",
			want: tableOpen + "<th>Item</th><th>Status</th></tr></thead><tbody>" +
				"<tr><td><strong>Audit</strong></td><td><em>pending</em></td></tr>" + tableClose,
		},
		{
			name:  "fence content is verbatim",
			input: "```\n# not a heading\nName  Score\n- not an item\n```",
			want:  "<pre class=\"report-code\"><code># not a heading\nName  Score\n- not an item</code></pre>",
		},
		{
			name:  "fence trims surrounding blank lines but keeps indentation",
			input: "```\n\n    indented\n\n```",
			want:  "<pre class=\"report-code\"><code>    indented</code></pre>",
		},
		{
			name:  "fence content is escaped",
			input: "```\n<b>&</b>\n```",
			want:  "<pre class=\"report-code\"><code>&lt;b&gt;&amp;&lt;/b&gt;</code></pre>",
		},
		{
			name:  "fence with language",
			input: "```sql\nSELECT 1;\n```",
			want:  "<pre class=\"report-code\" data-lang=\"sql\"><code class=\"language-sql\">SELECT 1;</code></pre>",
		},
		{
			name:  "quoted fence language stays inside its attributes",
			input: "```x\" onmouseover=\"alert(1)\ncode\n```",
			want:  `<pre class="report-code" data-lang="x&#34;"><code class="language-x&#34;">code</code></pre>`,
		},
		{
			name:  "single-line fence",
			input: "```total = 42```",
			want:  "<pre class=\"report-code\"><code>total = 42</code></pre>",
		},
		{
			name:  "fence closes an open table",
			input: "A  B\n1  2\n```\nx\n```",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose +
				"<br /><pre class=\"report-code\"><code>x</code></pre>",
		},
		{
			name:  "text after closing fence is rendered",
			input: "```\nx\n``` ## Next",
			want:  "<pre class=\"report-code\"><code>x</code></pre><br /><h2 class=\"report-h2\">Next</h2>",
		},
		{
			name:  "unterminated fence runs to end of input",
			input: "Intro\n```go\nx := 1\n# still code",
			want:  "Intro<br /><pre class=\"report-code\" data-lang=\"go\"><code class=\"language-go\">x := 1\n# still code</code></pre>",
		},
		{
			name:  "heading levels",
			input: "# A\n## B\n### C",
			want:  `<h1 class="report-h1">A</h1><br /><h2 class="report-h2">B</h2><br /><h3 class="report-h3">C</h3>`,
		},
		{
			name:  "bold applies inside headings",
			input: "## **Key** findings",
			want:  `<h2 class="report-h2"><strong>Key</strong> findings</h2>`,
		},
		{
			name:  "four hashes are not a heading",
			input: "#### Deep",
			want:  "#### Deep",
		},
		{
			name:  "heading with double spaces is not a table",
			input: "## Revenue  Growth",
			want:  `<h2 class="report-h2">Revenue  Growth</h2>`,
		},
		{
			name:  "bold then emphasis",
			input: "A **strong** and *soft* point",
			want:  "A <strong>strong</strong> and <em>soft</em> point",
		},
		{
			name:  "loose asterisks are left alone",
			input: "2 * 3 * 4",
			want:  "2 * 3 * 4",
		},
		{
			name:  "quotes in prose are escaped",
			input: `It's "fine"`,
			want:  "It&#39;s &#34;fine&#34;",
		},
		{
			name:  "html in prose is escaped",
			input: "Margin < 5% & falling",
			want:  "Margin &lt; 5% &amp; falling",
		},
		{
			name:  "page-break marker is stripped",
			input: "Before<page-break>After",
			want:  "BeforeAfter",
		},
		{
			name:  "marker-only line leaves an empty line",
			input: "A\n<page-break>\nB",
			want:  "A<br /><br />B",
		},
		{
			name:  "rule token",
			input: "Section one\n" + RuleToken + "\nSection two",
			want:  `Section one<br /><hr class="report-rule" /><br />Section two`,
		},
		{
			name:  "rule token inside a line",
			input: "Intro  " + RuleToken + "  tail",
			want:  `Intro<br /><hr class="report-rule" /><br />tail`,
		},
		{
			name:  "rule token ending a table row",
			input: "A  B\n1  2  " + RuleToken,
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose + `<br /><hr class="report-rule" />`,
		},
		{
			name:  "long separator row stays a separator",
			input: "| A | B |\n|" + RuleToken + "|---|\n| 1 | 2 |",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose,
		},
		{
			name:  "short dash run is a separator, not a rule",
			input: "Above\n---\nBelow",
			want:  "Above<br />Below",
		},
		{
			name:  "rule closes a table",
			input: "A  B\n1  2\n" + RuleToken,
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose + `<br /><hr class="report-rule" />`,
		},
		{
			name:  "consecutive list items have no breaks between them",
			input: "- one\n- two",
			want: `<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span>one</span></li>` +
				`<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span>two</span></li>`,
		},
		{
			name:  "no breaks around a list",
			input: "Intro\n* item\nOutro",
			want: "Intro" +
				`<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span>item</span></li>` +
				"Outro",
		},
		{
			name:  "indented bullet with bold",
			input: "  - **Cash** first",
			want:  `<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span><strong>Cash</strong> first</span></li>`,
		},
		{
			name:  "bullet with double spaces is an item, not a row",
			input: "- Strength  one",
			want:  `<li class="report-item"><span class="report-bullet" aria-hidden="true">&#8226;</span><span>Strength  one</span></li>`,
		},
		{
			name:  "carriage returns are dropped",
			input: "# Title\r\nBody\r\n",
			want:  `<h1 class="report-h1">Title</h1><br />Body<br />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Render(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRender_PlainProseOnlyGainsBreaks(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"The company operates in retail.",
		"Line one\nLine two",
		"Paragraph.\n\nAnother paragraph.\n",
		"Numbers like 3.5 and 10% stay as they are",
	}

	for _, in := range inputs {
		want := strings.ReplaceAll(in, "\n", "<br />")
		if got := Render(in); got != want {
			t.Errorf("Render(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender_TableStructure(t *testing.T) {
	t.Parallel()

	got := Render("Name  Score\nAlice  90\nBob  85")

	if n := strings.Count(got, "<table>"); n != 1 {
		t.Fatalf("expected 1 table, got %d in %q", n, got)
	}
	if n := strings.Count(got, "<th>"); n != 2 {
		t.Errorf("expected 2 header cells, got %d", n)
	}
	if n := strings.Count(got, "<tr>"); n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
	if strings.Index(got, "Alice") > strings.Index(got, "Bob") {
		t.Error("rows out of order")
	}
}

func TestRender_PageBreakAndRule(t *testing.T) {
	t.Parallel()

	input := "## Summary\nText<page-break>\n" + RuleToken + "\n<page-break>## Next"
	got := Render(input)

	if strings.Contains(got, "page-break") {
		t.Errorf("marker leaked into output: %q", got)
	}
	if n := strings.Count(got, "<hr"); n != 1 {
		t.Errorf("expected exactly one <hr>, got %d in %q", n, got)
	}
}

func TestRenderer_PageBreakMarkup(t *testing.T) {
	t.Parallel()

	r := New(WithPageBreakMarkup(`<div class="page-break"></div>`))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "marker on its own line",
			input: "A\n<page-break>\nB",
			want:  `A<br /><div class="page-break"></div><br />B`,
		},
		{
			name:  "marker before a heading",
			input: "<page-break>## Two",
			want:  `<div class="page-break"></div><br /><h2 class="report-h2">Two</h2>`,
		},
		{
			name:  "marker closes an open table",
			input: "A  B\n1  2\n<page-break>",
			want: tableOpen + "<th>A</th><th>B</th></tr></thead><tbody>" +
				"<tr><td>1</td><td>2</td></tr>" + tableClose + `<br /><div class="page-break"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, r.Render(tt.input)); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

type stubHighlighter struct {
	languages map[string]bool
}

func (s stubHighlighter) Highlight(code, language string) (string, bool) {
	if !s.languages[language] {
		return "", false
	}
	return `<span class="hl">` + code + `</span>`, true
}

func TestRenderer_Highlighter(t *testing.T) {
	t.Parallel()

	r := New(WithHighlighter(stubHighlighter{languages: map[string]bool{"go": true}}))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "known language is highlighted",
			input: "```go\nx := 1\n```",
			want:  `<pre class="report-code" data-lang="go"><code class="language-go"><span class="hl">x := 1</span></code></pre>`,
		},
		{
			name:  "unknown language falls back to escaping",
			input: "```cobol\nA < B\n```",
			want:  `<pre class="report-code" data-lang="cobol"><code class="language-cobol">A &lt; B</code></pre>`,
		},
		{
			name:  "no language is never highlighted",
			input: "```\nx := 1\n```",
			want:  `<pre class="report-code"><code>x := 1</code></pre>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, r.Render(tt.input)); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRender_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()

	input := "# Report\nName  Score\nAlice  90\n- item\n```\ncode\n```"
	want := Render(input)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Render(input); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Render = %q, want %q", got, want)
	}
}

func FuzzRender(f *testing.F) {
	f.Add("Name  Score\nAlice  90")
	f.Add("```\nunterminated")
	f.Add("| a |\n|---|\n| b | c | d |")
	f.Add("<page-break>***x***")

	f.Fuzz(func(t *testing.T, input string) {
		_ = Render(input)
		_ = New(WithPageBreakMarkup("<hr>")).Render(input)
	})
}
