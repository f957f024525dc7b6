package code2pdf

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings shared by every conversion of a Converter.
type converterConfig struct {
	timeout       time.Duration
	theme         string
	styleInput    string // style name, CSS file path, or raw CSS
	resolvedStyle string // CSS content after resolution
	assetPath     string
	lineNumbers   bool
	tabWidth      int
	wrapLongLines bool
	fallback      bool
}

// Defaults applied by NewConverter.
const (
	defaultTimeout = 30 * time.Second
	DefaultTheme   = "pygments"
	DefaultStyle   = "default"
)

func defaultConverterConfig() converterConfig {
	return converterConfig{
		timeout:     defaultTimeout,
		theme:       DefaultTheme,
		styleInput:  DefaultStyle,
		lineNumbers: true,
		tabWidth:    DefaultTabWidth,
		fallback:    true,
	}
}

// WithTimeout sets the per-file render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("code2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme selects the chroma style used for highlighting.
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithStyle sets the page stylesheet: a built-in or asset style name,
// a path to a CSS file, or raw CSS. An empty value disables the page style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from a directory, falling back to
// the embedded assets for anything it does not provide.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader replaces the asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithLineNumbers toggles line numbers in listings (default on).
func WithLineNumbers(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.lineNumbers = enabled
	}
}

// WithTabWidth sets how many columns a tab expands to (1 to MaxTabWidth).
func WithTabWidth(width int) Option {
	return func(c *Converter) {
		c.cfg.tabWidth = width
	}
}

// WithWrapLongLines wraps lines wider than the page instead of clipping them.
func WithWrapLongLines(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.wrapLongLines = enabled
	}
}

// WithFallbackLexer controls files no lexer recognizes: rendered as plain
// text when enabled (the default), rejected with ErrNoLexer otherwise.
func WithFallbackLexer(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.fallback = enabled
	}
}
