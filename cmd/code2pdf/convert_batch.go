package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/textenc"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadSource       = errors.New("failed to read source file")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrWritePDF         = errors.New("failed to write PDF file")
	ErrWriteHTML        = errors.New("failed to write HTML file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrFileTooLarge     = errors.New("file too large")
	ErrConversionFailed = errors.New("conversion failed")
)

// Skip reasons reported for files that are not converted.
const (
	reasonBinary  = "binary file"
	reasonNotText = "not a text file"
	reasonEmpty   = "empty file"
	reasonNoLexer = "could not determine a lexer"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Language   string
	Detection  string
	Bytes      int
	Lines      int
	Pages      int
	Skipped    bool
	Reason     string // why the file was skipped
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	css            string
	page           *code2pdf.PageSettings
	footer         *code2pdf.Footer
	header         bool
	language       string
	highlightLines []code2pdf.LineRange
	renderMarkdown bool
	encoding       string
	sourceRoot     string // input directory, bounds Markdown links
	maxFileSize    int64
	htmlOutput     bool
	htmlOnly       bool
}

// convertBatch converts files one after another through a single converter.
// Once ctx is done, the remaining files fail with the context error.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err})
			continue
		}
		results = append(results, convertFile(ctx, conv, f, params))
	}
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func() ConversionResult {
		result.Duration = time.Since(start)
		return result
	}
	skip := func(reason string) ConversionResult {
		result.Skipped = true
		result.Reason = reason
		return done()
	}

	if params.maxFileSize > 0 {
		info, err := os.Stat(f.InputPath)
		if err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
			return done()
		}
		if info.Size() > params.maxFileSize {
			return skip(fmt.Sprintf("%v (%d bytes, limit %d)", ErrFileTooLarge, info.Size(), params.maxFileSize))
		}
	}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return done()
	}
	result.Bytes = len(data)

	source, err := textenc.Decode(data, params.encoding)
	switch {
	case errors.Is(err, textenc.ErrBinary):
		return skip(reasonBinary)
	case errors.Is(err, textenc.ErrNotText):
		return skip(reasonNotText)
	case err != nil:
		result.Err = err
		return done()
	}

	input := code2pdf.Input{
		Source:         source,
		Filename:       filepath.ToSlash(f.InputPath),
		Language:       params.language,
		SourceDir:      filepath.Dir(f.InputPath),
		SourceRoot:     params.sourceRoot,
		CSS:            params.css,
		Page:           params.page,
		Footer:         params.footer,
		HighlightLines: params.highlightLines,
		RenderMarkdown: params.renderMarkdown,
		HTMLOnly:       params.htmlOnly,
	}
	if params.header {
		input.Header = &code2pdf.Header{}
	}

	convResult, err := conv.Convert(ctx, input)
	switch {
	case errors.Is(err, code2pdf.ErrEmptySource):
		return skip(reasonEmpty)
	case errors.Is(err, code2pdf.ErrNoLexer):
		return skip(reasonNoLexer)
	case err != nil:
		result.Err = err
		return done()
	}
	result.Language = convResult.Language
	result.Detection = convResult.Detection
	result.Lines = convResult.Lines
	result.Pages = convResult.Pages

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
		return done()
	}

	if params.htmlOnly || params.htmlOutput {
		htmlPath := htmlOutputPath(f.OutputPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, convResult.HTML, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
			return done()
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
			return done()
		}
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(f.OutputPath, convResult.PDF, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePDF, err)
		return done()
	}

	return done()
}

// ResultSummary holds the count of converted, skipped and failed files.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// countResults tallies conversion outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// producedPDFs returns the PDFs written by the batch, in batch order.
func producedPDFs(results []ConversionResult) []string {
	var paths []string
	for _, r := range results {
		if r.Err == nil && !r.Skipped {
			paths = append(paths, r.OutputPath)
		}
	}
	return paths
}

// printResults outputs conversion results and returns the summary.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, errorWithHint(r.Err))
			continue
		}

		if quiet {
			continue
		}

		switch {
		case r.Skipped:
			fmt.Fprintf(env.Stdout, "Skipped %s: %s\n", r.InputPath, r.Reason)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s by %s, %d bytes, %d lines, %s, %v)\n",
				r.InputPath, r.OutputPath, r.Language, r.Detection, r.Bytes, r.Lines,
				pagesLabel(r.Pages), r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d skipped, %d failed\n", summary.Succeeded, summary.Skipped, summary.Failed)
	}

	return summary
}

func pagesLabel(n int) string {
	switch n {
	case 0:
		return "no PDF"
	case 1:
		return "1 page"
	default:
		return fmt.Sprintf("%d pages", n)
	}
}
