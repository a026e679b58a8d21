package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/tool"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteDOCX        = errors.New("failed to write DOCX file")
	ErrConversionFailed = errors.New("conversion failed")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*md2docx.Converter)(nil)
	_ Converter = (*md2docx.ConverterPool)(nil)
)

// conversionParams holds the styling shared by every file of a batch.
type conversionParams struct {
	profile    string
	overrides  md2docx.Overrides
	page       *md2docx.PageOverride
	htmlOutput bool
	summary    bool
	logger     *zap.Logger
}

// input builds the library input for one markdown source.
func (p *conversionParams) input(markdown, outputPath, sourceDir string) md2docx.Input {
	return md2docx.Input{
		Markdown:  markdown,
		Filename:  filepath.Base(outputPath),
		Profile:   p.profile,
		SourceDir: sourceDir,
		Overrides: p.overrides,
		Page:      p.page,
	}
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Warning    string        // set when the document was written with degraded styling
	Summary    *tool.Summary // set when summaries were requested
	Duration   time.Duration
}

// convertBatch processes files with up to concurrency workers. conv must be
// safe for concurrent use; a *md2docx.ConverterPool bounds the real work.
func convertBatch(ctx context.Context, conv Converter, concurrency int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
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
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	in := params.input(string(content), f.OutputPath, sourceDir)
	res, err := conv.Convert(ctx, in)
	if err != nil {
		return fail(err)
	}
	result.Warning = styleWarning(res)
	if params.summary {
		result.Summary = tool.SummaryFor(in, res)
	}

	if err := writeOutputs(f.OutputPath, res, params.htmlOutput); err != nil {
		return fail(err)
	}

	result.Duration = time.Since(start)
	if params.logger != nil {
		params.logger.Debug("file converted",
			zap.String("input", f.InputPath),
			zap.String("output", f.OutputPath),
			zap.Int("bytes", len(res.DOCX)),
			zap.Duration("elapsed", result.Duration),
		)
	}
	return result
}

// writeOutputs writes the document, and the intermediate HTML when asked.
func writeOutputs(docPath string, res *md2docx.ConvertResult, withHTML bool) error {
	if err := os.MkdirAll(filepath.Dir(docPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w", ErrWriteDOCX, err)
	}

	if err := fileutil.WriteFileAtomic(docPath, res.DOCX, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteDOCX, err)
	}

	if withHTML {
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlOutputPath(docPath), []byte(res.HTML), filePermissions); err != nil {
			return fmt.Errorf("failed to write HTML file: %w", err)
		}
	}
	return nil
}

// styleWarning describes degraded styling, or returns "".
func styleWarning(res *md2docx.ConvertResult) string {
	switch {
	case !res.Styled:
		return fmt.Sprintf("styling failed, document is unstyled: %v", res.StyleErr)
	case res.Fallback:
		return "style registry unavailable, built-in defaults applied"
	case !res.TemplateFound:
		return "style profile not found, built-in defaults applied"
	}
	return ""
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

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if r.Warning != "" {
			fmt.Fprintf(env.Stderr, "WARNING %s: %s\n", r.InputPath, r.Warning)
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.Summary != nil {
			_ = printSummary(env.Stdout, r.Summary)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// printSummary writes s as one line of JSON.
func printSummary(w io.Writer, s *tool.Summary) error {
	if err := json.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
