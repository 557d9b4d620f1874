// Package reportdoc turns generated business reports into styled HTML, PDF
// and Word documents.
//
// # Quick Start
//
// Create a converter, convert report text, and close when done:
//
//	conv, err := reportdoc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, reportdoc.Input{
//	    Text: "# Executive Summary\n\nRevenue grew **18%** year over year.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0o644)
//
// The result always carries the HTML document (result.HTML). Input.HTMLOnly
// skips PDF rendering and Input.Word adds a Word-compatible .doc
// (result.Word).
//
// # Input Formats
//
// The default format, FormatReport, reads the conventions of generated
// reports: "#" headings, "**bold**", "-" bullets, column-aligned or
// pipe-delimited tables, fenced code, a 37-dash section rule and
// <page-break> markers. FormatMarkdown reads CommonMark with GFM extensions
// through Goldmark.
//
// # Conversion Pipeline
//
//  1. Preprocessing (line endings, byte order mark)
//  2. HTML conversion (report renderer or Goldmark, chroma highlighting)
//  3. DOM rewrites (heading ids, relative asset paths)
//  4. Injection (CSS, cover page, table of contents)
//  5. PDF rendering via headless Chrome (go-rod)
//
// # Configuration
//
// Converter-wide options:
//
//	conv, err := reportdoc.NewConverter(
//	    reportdoc.WithTimeout(2 * time.Minute),
//	    reportdoc.WithStyle("minimal"),
//	    reportdoc.WithAssetPath("/path/to/custom/assets"),
//	    reportdoc.WithLogger(logger),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, reportdoc.Input{
//	    Text:      report,
//	    Lang:      reportdoc.LangArabic, // right-to-left layout
//	    Page:      &reportdoc.PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.75},
//	    Footer:    &reportdoc.Footer{ShowPageNumber: true, Date: "auto"},
//	    Cover:     &reportdoc.Cover{Title: "Strategic Plan", Organization: "Acme"},
//	    TOC:       &reportdoc.TOC{Title: "Contents", MaxDepth: 2},
//	    Watermark: &reportdoc.Watermark{Text: "DRAFT"},
//	})
//
// # Parallel Processing
//
// For batch conversion, ConverterPool manages several browser instances:
//
//	pool := reportdoc.NewConverterPool(reportdoc.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use
// an installed binary; the sandbox is disabled when it is set or CI=true.
package reportdoc
