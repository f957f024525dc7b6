package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Sentinel errors for lexer selection.
var (
	ErrNoLexer         = errors.New("could not determine a lexer")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Method records how a lexer was chosen.
type Method string

const (
	ByLanguage Method = "language"
	ByFilename Method = "filename"
	ByContent  Method = "content"
	ByFallback Method = "fallback"
)

// Detection is the outcome of lexer selection.
type Detection struct {
	Lexer  chroma.Lexer
	Method Method
}

// Name returns the lexer's display name.
func (d *Detection) Name() string {
	if d == nil || d.Lexer == nil {
		return ""
	}
	return d.Lexer.Config().Name
}

// Detect selects a lexer for source. A non-empty language must name a known
// lexer (name or alias, case-insensitive). Without a match and without
// fallback, Detect returns ErrNoLexer.
func Detect(filename, source, language string, fallback bool) (*Detection, error) {
	if language = strings.TrimSpace(language); language != "" {
		l := lexers.Get(language)
		if l == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
		}
		return &Detection{Lexer: l, Method: ByLanguage}, nil
	}

	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			return &Detection{Lexer: l, Method: ByFilename}, nil
		}
	}

	if strings.TrimSpace(source) != "" {
		if l := lexers.Analyse(source); l != nil {
			return &Detection{Lexer: l, Method: ByContent}, nil
		}
	}

	if fallback {
		return &Detection{Lexer: lexers.Fallback, Method: ByFallback}, nil
	}

	if filename != "" {
		return nil, fmt.Errorf("%w for %s", ErrNoLexer, filename)
	}
	return nil, ErrNoLexer
}

// Languages returns the names of all registered lexers, sorted.
func Languages() []string {
	return lexers.Names(false)
}

// IsMarkdown reports whether the detection picked a Markdown lexer.
func (d *Detection) IsMarkdown() bool {
	return strings.EqualFold(d.Name(), "markdown")
}
