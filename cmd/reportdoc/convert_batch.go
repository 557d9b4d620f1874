package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/hints"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently, at most pool.Size() at a time.
// Results keep the order of files. Per-file failures never cancel the rest
// of the batch; only ctx does.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(max(pool.Size(), 1))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}

			conv, err := pool.Acquire(ctx)
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(ctx, conv, f, params)
			return nil
		})
	}

	_ = g.Wait() // workers record errors in results
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadSource, err))
	}
	text := string(content)

	cover, err := buildCoverData(params.cfg, params.title, text, f.InputPath)
	if err != nil {
		return fail(fmt.Errorf("building cover data: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	res, err := conv.Convert(ctx, reportdoc.Input{
		Text:       text,
		Format:     formatFor(f.InputPath, params.format, params.cfg),
		Lang:       params.lang,
		Title:      params.title,
		SourceDir:  filepath.Dir(f.InputPath),
		CSS:        params.css,
		Page:       params.page,
		Footer:     params.footer,
		Cover:      cover,
		TOC:        params.toc,
		Watermark:  params.watermark,
		PageBreaks: params.pageBreaks,
		HTMLOnly:   params.htmlOnly,
		Word:       params.wordOutput,
	})
	if err != nil {
		return fail(err)
	}

	if err := writeOutputs(f.OutputPath, res, params.htmlOnly || params.htmlOutput); err != nil {
		return fail(err)
	}
	if params.htmlOnly {
		result.OutputPath = sidecarPath(f.OutputPath, ".html")
	}

	result.Duration = time.Since(start)
	return result
}

// writeOutputs writes the PDF and whichever sidecar documents res holds.
// Files are written atomically so a watcher never reads a partial PDF.
func writeOutputs(pdfPath string, res *reportdoc.ConvertResult, writeHTML bool) error {
	if writeHTML {
		if err := fileutil.WriteFileAtomic(sidecarPath(pdfPath, ".html"), res.HTML, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if res.Word != nil {
		if err := fileutil.WriteFileAtomic(sidecarPath(pdfPath, ".doc"), res.Word, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if res.PDF != nil {
		if err := fileutil.WriteFileAtomic(pdfPath, res.PDF, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// batchError returns nil when every file converted, otherwise an error
// wrapping the first failure so the exit code reflects its cause.
func batchError(results []ConversionResult) error {
	summary := countResults(results)
	if summary.Failed == 0 {
		return nil
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, r.Err)
		}
	}
	return nil
}
