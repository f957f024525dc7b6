package code2pdf

import (
	"errors"

	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource    = errors.New("source content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrEmptyPDF       = errors.New("generated PDF has no pages")
	ErrMerge          = errors.New("merging PDFs failed")
	ErrHeaderRender   = pipeline.ErrHeaderRender
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Lexer and theme errors, shared with the highlighter.
	ErrNoLexer         = highlight.ErrNoLexer
	ErrUnknownLanguage = highlight.ErrUnknownLanguage
	ErrUnknownTheme    = highlight.ErrUnknownTheme
	ErrHighlight       = highlight.ErrHighlight

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Listing validation errors.
	ErrInvalidLineRange = errors.New("invalid line range")
	ErrInvalidTabWidth  = errors.New("invalid tab width")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
