package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Blank lines at the start of the file, kept up to the first non-blank line
	leadingBlankLines = regexp.MustCompile(`\A(?:[ \t\f\v]*\n)+`)
)

// SourcePreprocessor defines the contract for source normalization.
type SourcePreprocessor interface {
	NormalizeSource(ctx context.Context, content string) string
}

// ListingPreprocessor prepares decoded source text for highlighting.
type ListingPreprocessor struct{}

// NormalizeSource converts line endings to LF, drops leading blank lines and
// trailing whitespace, and ends the text with exactly one newline.
// Indentation of the first code line is preserved.
func (p *ListingPreprocessor) NormalizeSource(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = leadingBlankLines.ReplaceAllString(content, "")
	content = strings.TrimRight(content, " \t\n\f\v")
	if content == "" {
		return ""
	}
	return content + "\n"
}

// IsBlank reports whether content has no printable characters.
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// CountLines returns the number of lines in normalized content.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
