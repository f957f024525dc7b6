// Package code2pdf converts source code files to syntax-highlighted PDFs
// using chroma for highlighting and headless Chrome for rendering.
//
// # Quick Start
//
//	conv, err := code2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	src, _ := os.ReadFile("main.go")
//	result, err := conv.Convert(ctx, code2pdf.Input{
//	    Source:   string(src),
//	    Filename: "main.go",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("main.pdf", result.PDF, 0644)
//
// The result carries the PDF, the intermediate HTML, the lexer that was
// used and the page count. Use Input.HTMLOnly to skip PDF generation.
//
// # Conversion Pipeline
//
//  1. Source normalization (line endings, leading blank lines, trailing whitespace)
//  2. Lexer selection: Input.Language, then file name, then content, then plain
//     text unless WithFallbackLexer(false) is set
//  3. Highlighting to class-based HTML (or Goldmark rendering for Markdown
//     files when Input.RenderMarkdown is set)
//  4. HTML assembly: page style, theme CSS, caller CSS, file header banner
//  5. PDF rendering via headless Chrome (go-rod), then a page-count check
//
// # Configuration
//
//	conv, err := code2pdf.NewConverter(
//	    code2pdf.WithTheme("monokai"),
//	    code2pdf.WithStyle("compact"),
//	    code2pdf.WithTabWidth(8),
//	    code2pdf.WithFallbackLexer(false),
//	    code2pdf.WithTimeout(2 * time.Minute),
//	)
//
// Per-file options are passed via Input:
//
//	result, err := conv.Convert(ctx, code2pdf.Input{
//	    Source:         src,
//	    Filename:       "cmd/tool/main.go",
//	    Page:           &code2pdf.PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5},
//	    Footer:         &code2pdf.Footer{ShowPageNumber: true, ShowFilename: true},
//	    Header:         &code2pdf.Header{},
//	    HighlightLines: []code2pdf.LineRange{{Start: 10, End: 14}},
//	})
//
// A Converter owns one browser and converts files one at a time.
// MergeFiles joins the resulting PDFs with pdfcpu.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/) if none is found.
//
// In containers and CI, set ROD_NO_SANDBOX=1 to disable the Chrome sandbox.
// Use ROD_BROWSER_BIN to point at an installed Chrome binary.
package code2pdf
