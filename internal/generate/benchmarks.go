package generate

import (
	"strconv"
	"strings"

	"github.com/alnah/go-reportdoc/internal/render"
)

type benchmarkLabels struct {
	title, kpi, company, industry, unit, notes string
}

var benchmarkText = map[string]benchmarkLabels{
	LangEnglish: {"KPI Benchmarks", "KPI", "Company", "Industry average", "Unit", "Notes"},
	LangArabic:  {"مقارنة مؤشرات الأداء الرئيسية", "المؤشر", "المنشأة", "متوسط القطاع", "الوحدة", "ملاحظات"},
}

// FormatBenchmarks renders benchmarks as report text: a heading, one table
// row per KPI, then the explanations as a bullet list.
func FormatBenchmarks(benchmarks []KPIBenchmark, lang string) string {
	l, ok := benchmarkText[lang]
	if !ok {
		l = benchmarkText[LangEnglish]
	}

	var b strings.Builder
	b.WriteString("# " + l.title + "\n\n")
	if len(benchmarks) == 0 {
		return b.String()
	}

	b.WriteString(row(l.kpi, l.company, l.industry, l.unit))
	for _, k := range benchmarks {
		b.WriteString(row(
			cell(k.KPI),
			formatNumber(k.CompanyValue),
			formatNumber(k.IndustryAverage),
			cell(k.Unit),
		))
	}

	var notes []KPIBenchmark
	for _, k := range benchmarks {
		if strings.TrimSpace(k.Explanation) != "" {
			notes = append(notes, k)
		}
	}
	if len(notes) == 0 {
		return b.String()
	}

	b.WriteString("\n" + render.RuleToken + "\n")
	b.WriteString("## " + l.notes + "\n")
	for _, k := range notes {
		b.WriteString("- **" + oneLine(k.KPI) + "**: " + oneLine(k.Explanation) + "\n")
	}
	return b.String()
}

// row writes a pipe-delimited table line. The leading pipe keeps cells that
// start with "#" or "- " from being read as headings or bullets.
func row(cells ...string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// cell keeps a table cell on one line and out of the column separators.
// Empty cells become "-" so rows keep their column count.
func cell(s string) string {
	s = strings.ReplaceAll(oneLine(s), "|", "/")
	if s == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
