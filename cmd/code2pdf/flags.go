package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
)

// ErrInvalidLineSpec is returned for a malformed --highlight-lines value.
var ErrInvalidLineSpec = errors.New("invalid line list")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags selects which files a batch picks up and how they are read.
type inputFlags struct {
	recursive   bool
	hidden      bool
	extensions  []string
	exclude     []string
	encoding    string
	maxFileSize int64
}

// highlightFlags holds lexer and formatter flags.
type highlightFlags struct {
	theme          string
	language       string
	noLineNumbers  bool
	tabWidth       int
	wrap           bool
	noFallback     bool
	renderMarkdown bool
	lines          string // e.g. "3-5,10"
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// headerFlags holds the file banner flags.
type headerFlags struct {
	disabled bool
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	pageNumber bool
	filename   bool
	disabled   bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style     string // name, CSS file path, or raw CSS
	css       string // extra CSS file appended after the theme
	assetPath string
	noStyle   bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool
	htmlOnly bool
	merge    string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	timeout    string
	input      inputFlags
	highlight  highlightFlags
	page       pageFlags
	header     headerFlags
	footer     footerFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show lexer, page count and timing per file")
}

// addInputFlags adds file selection flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	fs.BoolVar(&f.hidden, "hidden", false, "include dotfiles and dot directories")
	fs.StringSliceVarP(&f.extensions, "ext", "e", nil, "only convert these extensions (e.g. go,py)")
	fs.StringArrayVarP(&f.exclude, "exclude", "x", nil, "skip files matching a glob (repeatable)")
	fs.StringVar(&f.encoding, "encoding", "", "source encoding: auto or a label like latin1")
	fs.Int64Var(&f.maxFileSize, "max-size", 0, "skip files larger than this many bytes (default 5 MiB)")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.theme, "theme", "", "highlighting theme (see 'code2pdf themes')")
	fs.StringVarP(&f.language, "language", "l", "", "force a lexer for every file")
	fs.BoolVar(&f.noLineNumbers, "no-line-numbers", false, "hide line numbers")
	fs.IntVar(&f.tabWidth, "tab-width", 0, "columns per tab (1-16, default 4)")
	fs.BoolVar(&f.wrap, "wrap", false, "wrap long lines")
	fs.BoolVar(&f.noFallback, "no-fallback", false, "skip files no lexer recognizes instead of rendering plain text")
	fs.BoolVar(&f.renderMarkdown, "render-markdown", false, "render Markdown files as documents")
	fs.StringVar(&f.lines, "highlight-lines", "", "emphasize lines, e.g. 3-5,10")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addHeaderFlags adds file banner flags to a FlagSet.
func addHeaderFlags(fs *flag.FlagSet, f *headerFlags) {
	fs.BoolVar(&f.disabled, "no-header", false, "omit the file banner")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.filename, "footer-filename", false, "show the file path in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "page style name, CSS file path, or raw CSS")
	fs.StringVar(&f.css, "css", "", "extra CSS file applied after the theme")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the page style")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside each PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.StringVarP(&f.merge, "merge", "m", "", "also merge all PDFs into this file")
}

// addConvertFlags registers every convert flag group on fs.
func addConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory, or PDF path for a single file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file render timeout (e.g. 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addHighlightFlags(fs, &f.highlight)
	addPageFlags(fs, &f.page)
	addHeaderFlags(fs, &f.header)
	addFooterFlags(fs, &f.footer)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)
}

// mergeFlags merges CLI flags into config. Only flags set on the command line
// override the config, so a flag's zero value never masks a config entry.
func mergeFlags(fs *flag.FlagSet, f *convertFlags, cfg *config.Config) {
	set := fs.Changed

	// Input
	if set("recursive") {
		cfg.Input.Recursive = f.input.recursive
	}
	if set("hidden") {
		cfg.Input.Hidden = f.input.hidden
	}
	if set("ext") {
		cfg.Input.Extensions = f.input.extensions
	}
	if set("exclude") {
		cfg.Input.Exclude = append(cfg.Input.Exclude, f.input.exclude...)
	}
	if set("encoding") {
		cfg.Input.Encoding = f.input.encoding
	}
	if set("max-size") {
		cfg.Input.MaxFileSize = f.input.maxFileSize
	}

	// Highlight
	if set("theme") {
		cfg.Highlight.Theme = f.highlight.theme
	}
	if set("language") {
		cfg.Highlight.Language = f.highlight.language
	}
	if set("no-line-numbers") {
		cfg.Highlight.LineNumbers = !f.highlight.noLineNumbers
	}
	if set("tab-width") {
		cfg.Highlight.TabWidth = f.highlight.tabWidth
	}
	if set("wrap") {
		cfg.Highlight.Wrap = f.highlight.wrap
	}
	if set("no-fallback") {
		cfg.Highlight.Fallback = !f.highlight.noFallback
	}
	if set("render-markdown") {
		cfg.Highlight.RenderMarkdown = f.highlight.renderMarkdown
	}

	// Page
	if set("page-size") {
		cfg.Page.Size = f.page.size
	}
	if set("orientation") {
		cfg.Page.Orientation = f.page.orientation
	}
	if set("margin") {
		cfg.Page.Margin = f.page.margin
	}

	// Footer: any footer content flag turns the footer on.
	if set("footer-position") {
		cfg.Footer.Position = f.footer.position
	}
	if set("footer-text") {
		cfg.Footer.Text = f.footer.text
		cfg.Footer.Enabled = true
	}
	if set("footer-page-number") {
		cfg.Footer.ShowPageNumber = f.footer.pageNumber
		cfg.Footer.Enabled = true
	}
	if set("footer-filename") {
		cfg.Footer.ShowFilename = f.footer.filename
		cfg.Footer.Enabled = true
	}

	// Assets
	if set("style") {
		cfg.Style = f.assets.style
	}
	if set("asset-path") {
		cfg.Assets.BasePath = f.assets.assetPath
	}

	// Output
	if set("output") && !strings.HasSuffix(strings.ToLower(f.output), ".pdf") {
		cfg.Output.DefaultDir = f.output
	}
	if set("merge") {
		cfg.Output.Merge = f.outputMode.merge
	}
	if set("html") {
		cfg.Output.HTML = f.outputMode.html
	}
	if set("timeout") {
		cfg.Timeout = f.timeout
	}

	// Disable flags win over everything above.
	if f.header.disabled {
		cfg.Header.Enabled = false
	}
	if f.footer.disabled {
		cfg.Footer.Enabled = false
	}
	if f.assets.noStyle {
		cfg.Style = ""
	}
}

// parseLineRanges parses "3-5,10" into line ranges.
func parseLineRanges(spec string) ([]code2pdf.LineRange, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var ranges []code2pdf.LineRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		startStr, endStr, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(startStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLineSpec, part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(endStr)); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidLineSpec, part)
			}
		}
		r := code2pdf.LineRange{Start: start, End: end}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLineSpec, part)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
