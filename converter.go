package code2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-code2pdf/internal/assets"
	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.SourcePreprocessor = (*pipeline.ListingPreprocessor)(nil)
	_ pipeline.HTMLConverter      = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector        = (*pipeline.CSSInjection)(nil)
	_ pipeline.HeaderInjector     = (*pipeline.HeaderInjection)(nil)
	_ pdfConverter                = (*rodConverter)(nil)
	_ pdfRenderer                 = (*rodRenderer)(nil)
)

// Converter turns source files into highlighted PDFs.
// Create with NewConverter, call Convert per file, and Close when done.
// A Converter keeps one browser and is not safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	themeCSS          string
	preprocessor      pipeline.SourcePreprocessor
	markdown          pipeline.HTMLConverter
	cssInjector       pipeline.CSSInjector
	headerInjector    pipeline.HeaderInjector
	pdfConverter      pdfConverter
	pageCounter       func(pdf []byte) (int, error)
}

// NewConverter creates a Converter. The theme and style are resolved here so
// that configuration mistakes surface before the first file.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConverterConfig(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.ListingPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		pageCounter:  PageCount,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.tabWidth < 1 || c.cfg.tabWidth > MaxTabWidth {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidTabWidth, c.cfg.tabWidth, MaxTabWidth)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &internalLoader{pub: c.publicAssetLoader}
	}

	h, err := highlight.New(highlight.Options{Theme: c.cfg.theme})
	if err != nil {
		return nil, err
	}
	if c.themeCSS, err = h.CSS(); err != nil {
		return nil, err
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.markdown == nil {
		c.markdown = pipeline.NewGoldmarkConverter(h.Theme(), c.cfg.tabWidth)
	}

	if c.headerInjector == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.HeaderTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading header template: %w", convertAssetError(err))
		}
		if c.headerInjector, err = pipeline.NewHeaderInjection(tmpl); err != nil {
			return nil, fmt.Errorf("initializing header injector: %w", err)
		}
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline for one file and returns HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Internal panics are recovered and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	source := c.preprocessor.NormalizeSource(ctx, input.Source)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if source == "" {
		return nil, ErrEmptySource
	}

	det, err := highlight.Detect(input.Filename, source, input.Language, c.cfg.fallback)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{
		Language:  det.Name(),
		Detection: string(det.Method),
		Lines:     pipeline.CountLines(source),
	}

	var body, class string
	if input.RenderMarkdown && det.IsMarkdown() {
		body, err = c.renderMarkdown(ctx, source, input.SourceDir, input.SourceRoot)
		class = pipeline.MarkdownClass
		res.Detection = DetectedAsMarkdown
	} else {
		body, err = c.renderListing(ctx, det, source, input.HighlightLines)
		class = pipeline.ListingClass
	}
	if err != nil {
		return nil, err
	}

	htmlContent := pipeline.BuildDocument(documentTitle(input), class, body)

	// Page style first, theme colors over it, caller CSS last.
	css := pipeline.JoinCSS(c.cfg.resolvedStyle, c.themeCSS, input.CSS)
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err = c.headerInjector.InjectHeader(ctx, htmlContent, toHeaderData(input, res))
	if err != nil {
		return nil, fmt.Errorf("injecting header: %w", err)
	}

	res.HTML = []byte(htmlContent)
	if input.HTMLOnly {
		return res, nil
	}

	pdfOpts := &pdfOptions{
		Footer: toFooterData(input),
		Page:   input.Page,
	}
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	if len(pdfBytes) == 0 {
		return nil, ErrEmptyPDF
	}
	pages, err := c.pageCounter(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	if pages == 0 {
		return nil, ErrEmptyPDF
	}

	res.PDF = pdfBytes
	res.Pages = pages
	return res, nil
}

// renderListing highlights source into a <pre> block.
func (c *Converter) renderListing(ctx context.Context, det *highlight.Detection, source string, ranges []LineRange) (string, error) {
	h, err := highlight.New(highlight.Options{
		Theme:          c.cfg.theme,
		LineNumbers:    c.cfg.lineNumbers,
		TabWidth:       c.cfg.tabWidth,
		WrapLongLines:  c.cfg.wrapLongLines,
		HighlightLines: toHighlightRanges(ranges),
	})
	if err != nil {
		return "", err
	}
	return h.Fragment(ctx, det.Lexer, source)
}

// renderMarkdown renders a Markdown source as a document.
func (c *Converter) renderMarkdown(ctx context.Context, source, sourceDir, sourceRoot string) (string, error) {
	body, err := c.markdown.ToHTML(ctx, source)
	if err != nil {
		return "", fmt.Errorf("converting Markdown: %w", err)
	}
	if sourceDir != "" {
		body, err = pipeline.RewriteRelativePaths(body, sourceDir, sourceRoot)
		if err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
	}
	return body, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks fields a library caller may have set incorrectly.
// CLI input is also validated earlier by config.Validate and flag parsing.
func validateInput(input Input) error {
	if pipeline.IsBlank(input.Source) {
		return ErrEmptySource
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	for _, r := range input.HighlightLines {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// documentTitle picks the HTML title: explicit, then file name, then a placeholder.
func documentTitle(input Input) string {
	switch {
	case input.Title != "":
		return input.Title
	case input.Filename != "":
		return filepath.Base(input.Filename)
	default:
		return "Untitled"
	}
}

// toHeaderData fills the banner from the input and the conversion result.
func toHeaderData(input Input, res *ConvertResult) *pipeline.HeaderData {
	if input.Header == nil {
		return nil
	}
	data := &pipeline.HeaderData{
		Path:     input.Header.Path,
		Language: input.Header.Language,
		Lines:    input.Header.Lines,
	}
	if data.Path == "" {
		data.Path = filepath.ToSlash(input.Filename)
	}
	if data.Language == "" {
		data.Language = res.Language
	}
	if data.Lines == 0 {
		data.Lines = res.Lines
	}
	return data
}

// toFooterData converts the public Footer type to the renderer's footer data.
func toFooterData(input Input) *footerData {
	f := input.Footer
	if f == nil {
		return nil
	}
	data := &footerData{
		Position:       f.Position,
		ShowPageNumber: f.ShowPageNumber,
		Text:           f.Text,
	}
	if f.ShowFilename {
		data.Filename = f.Filename
		if data.Filename == "" {
			data.Filename = filepath.ToSlash(input.Filename)
		}
	}
	return data
}

// toHighlightRanges converts line ranges to chroma's [start, end] pairs.
func toHighlightRanges(ranges []LineRange) [][2]int {
	if len(ranges) == 0 {
		return nil
	}
	out := make([][2]int, len(ranges))
	for i, r := range ranges {
		out[i] = [2]int{r.Start, r.End}
	}
	return out
}
