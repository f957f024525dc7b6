// Package pipeline implements the source-to-HTML stages of a conversion.
//
// The stages are:
//   - source normalization (line endings, leading blank lines, trailing whitespace)
//   - HTML document assembly around a highlighted listing
//   - Markdown rendering via Goldmark for documents converted as prose
//   - CSS injection into HTML documents
//   - file header banner injection
//   - relative path rewriting for Markdown documents
//
// Lexer selection and highlighting live in internal/highlight. PDF generation
// is handled by the root code2pdf package using headless Chrome (go-rod).
package pipeline
