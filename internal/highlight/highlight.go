package highlight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for formatting.
var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrHighlight    = errors.New("highlighting failed")
)

// Defaults mirror Pygments' HtmlFormatter as used for printable listings.
const (
	DefaultTheme    = "pygments"
	DefaultTabWidth = 4
)

// Options configures a Highlighter.
type Options struct {
	Theme          string
	LineNumbers    bool
	TabWidth       int
	WrapLongLines  bool
	HighlightLines [][2]int
	BaseLine       int
}

// Highlighter renders source to class-based HTML with one chroma theme.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New builds a Highlighter. An empty theme selects DefaultTheme.
func New(opts Options) (*Highlighter, error) {
	name := opts.Theme
	if name == "" {
		name = DefaultTheme
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	tab := opts.TabWidth
	if tab <= 0 {
		tab = DefaultTabWidth
	}
	base := opts.BaseLine
	if base <= 0 {
		base = 1
	}

	formatOpts := []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(opts.LineNumbers),
		chromahtml.LineNumbersInTable(false),
		chromahtml.TabWidth(tab),
		chromahtml.WrapLongLines(opts.WrapLongLines),
		chromahtml.BaseLineNumber(base),
	}
	if len(opts.HighlightLines) > 0 {
		formatOpts = append(formatOpts, chromahtml.HighlightLines(opts.HighlightLines))
	}

	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(formatOpts...),
	}, nil
}

// Theme returns the name of the active chroma style.
func (h *Highlighter) Theme() string {
	return h.style.Name
}

// Fragment tokenizes source with lexer and returns the highlighted <pre> block.
// Chroma has no context support, so the work runs in a goroutine and the
// caller stops waiting on cancellation.
func (h *Highlighter) Fragment(ctx context.Context, lexer chroma.Lexer, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if lexer == nil {
		return "", fmt.Errorf("%w: nil lexer", ErrHighlight)
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHighlight, err)}
			return
		}
		var buf bytes.Buffer
		if err := h.formatter.Format(&buf, h.style, it); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHighlight, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// CSS returns the stylesheet for the active theme.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: writing theme CSS: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}

// Themes returns the names of all registered chroma styles, sorted.
func Themes() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
