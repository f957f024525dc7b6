package main

import (
	"context"
	"errors"
	"os"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
	"github.com/alnah/go-code2pdf/internal/hints"
	"github.com/alnah/go-code2pdf/internal/textenc"
)

// Exit codes for code2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All files converted or skipped
	ExitGeneral = 1 // General/unexpected error, or some conversions failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, code2pdf.ErrBrowserConnect) ||
		errors.Is(err, code2pdf.ErrPageCreate) ||
		errors.Is(err, code2pdf.ErrPageLoad) ||
		errors.Is(err, code2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, code2pdf.ErrMerge) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, textenc.ErrUnknownEncoding) ||
		errors.Is(err, code2pdf.ErrUnknownTheme) ||
		errors.Is(err, code2pdf.ErrUnknownLanguage) ||
		errors.Is(err, code2pdf.ErrInvalidPageSize) ||
		errors.Is(err, code2pdf.ErrInvalidOrientation) ||
		errors.Is(err, code2pdf.ErrInvalidMargin) ||
		errors.Is(err, code2pdf.ErrInvalidFooterPosition) ||
		errors.Is(err, code2pdf.ErrInvalidLineRange) ||
		errors.Is(err, code2pdf.ErrInvalidTabWidth) ||
		errors.Is(err, code2pdf.ErrStyleNotFound) ||
		errors.Is(err, code2pdf.ErrTemplateNotFound) ||
		errors.Is(err, code2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidLineSpec) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, code2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("code2pdf"))
	case errors.Is(err, code2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(code2pdf.Styles())
	case errors.Is(err, code2pdf.ErrUnknownTheme):
		return hints.ForUnknownTheme(code2pdf.Themes())
	case errors.Is(err, code2pdf.ErrUnknownLanguage):
		return hints.ForUnknownLanguage()
	case errors.Is(err, code2pdf.ErrNoLexer):
		return hints.ForNoLexer()
	case errors.Is(err, textenc.ErrNotText):
		return hints.ForNotText()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// errorWithHint formats err followed by its hint, if any.
func errorWithHint(err error) string {
	return err.Error() + hintFor(err)
}
