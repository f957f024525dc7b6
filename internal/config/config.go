// Package config defines the YAML configuration file for code2pdf: its model,
// defaults, validation and lookup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/textenc"
	"github.com/alnah/go-code2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config dir.
const AppDir = "go-code2pdf"

// Defaults shared with the CLI flags.
const (
	DefaultTheme       = "pygments"
	DefaultStyle       = "default"
	DefaultTabWidth    = 4
	DefaultMaxFileSize = 5 << 20
	MaxTabWidth        = 16
)

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxNameLength        = 100  // theme, language, style names
	MaxTextLength        = 500  // footer free-form text
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxPatternLength     = 256  // exclude globs
	MaxExtensionLength   = 32
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Highlight HighlightConfig `yaml:"highlight"`
	Style     string          `yaml:"style"` // built-in style name, CSS file path, or empty for none
	Page      PageConfig      `yaml:"page"`
	Header    HeaderConfig    `yaml:"header"`
	Footer    FooterConfig    `yaml:"footer"`
	Assets    AssetsConfig    `yaml:"assets"`
	Timeout   string          `yaml:"timeout"` // Go duration, e.g. "45s" (empty = library default)
}

// InputConfig defines which files are picked up.
type InputConfig struct {
	DefaultDir  string   `yaml:"defaultDir"` // empty = current directory
	Recursive   bool     `yaml:"recursive"`
	Hidden      bool     `yaml:"hidden"`      // include dotfiles
	Extensions  []string `yaml:"extensions"`  // e.g. [go, py]; empty = all
	Exclude     []string `yaml:"exclude"`     // globs on base name or relative path
	Encoding    string   `yaml:"encoding"`    // "auto" or a WHATWG label
	MaxFileSize int64    `yaml:"maxFileSize"` // bytes; larger files are skipped
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to each source
	Merge      string `yaml:"merge"`      // merged PDF path (empty = no merge)
	HTML       bool   `yaml:"html"`       // also write the intermediate HTML
}

// HighlightConfig defines lexer and formatter options.
type HighlightConfig struct {
	Theme          string `yaml:"theme"`
	Language       string `yaml:"language"` // force one lexer for every file
	LineNumbers    bool   `yaml:"lineNumbers"`
	TabWidth       int    `yaml:"tabWidth"`
	Wrap           bool   `yaml:"wrap"`
	Fallback       bool   `yaml:"fallback"` // plain text when no lexer matches (default true)
	RenderMarkdown bool   `yaml:"renderMarkdown"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// HeaderConfig toggles the file banner above each listing.
type HeaderConfig struct {
	Enabled bool `yaml:"enabled"`
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	ShowFilename   bool   `yaml:"showFilename"`
	Text           string `yaml:"text"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Encoding:    textenc.Auto,
			MaxFileSize: DefaultMaxFileSize,
		},
		Highlight: HighlightConfig{
			Theme:       DefaultTheme,
			LineNumbers: true,
			TabWidth:    DefaultTabWidth,
			Fallback:    true,
		},
		Style:  DefaultStyle,
		Header: HeaderConfig{Enabled: true},
	}
}

// Validate checks field lengths and value ranges.
// Called by LoadConfig; also usable on a Config built in code.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"input.encoding", c.Input.Encoding, MaxNameLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.merge", c.Output.Merge, MaxPathLength},
		{"highlight.theme", c.Highlight.Theme, MaxNameLength},
		{"highlight.language", c.Highlight.Language, MaxNameLength},
		{"style", c.Style, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}

	for i, ext := range c.Input.Extensions {
		field := fmt.Sprintf("input.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%w: %s: %q contains a path separator", ErrInvalidValue, field, ext)
		}
	}
	for i, pattern := range c.Input.Exclude {
		field := fmt.Sprintf("input.exclude[%d]", i)
		if err := validateFieldLength(field, pattern, MaxPatternLength); err != nil {
			return err
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s: %q: %v", ErrInvalidValue, field, pattern, err)
		}
	}

	if c.Input.MaxFileSize < 0 {
		return fmt.Errorf("%w: input.maxFileSize: must not be negative, got %d", ErrInvalidValue, c.Input.MaxFileSize)
	}
	if c.Input.Encoding != "" && !textenc.IsAuto(c.Input.Encoding) {
		if _, err := textenc.Lookup(c.Input.Encoding); err != nil {
			return fmt.Errorf("%w: input.encoding: %v", ErrInvalidValue, err)
		}
	}

	if c.Highlight.TabWidth < 0 || c.Highlight.TabWidth > MaxTabWidth {
		return fmt.Errorf("%w: highlight.tabWidth: must be between 1 and %d, got %d",
			ErrInvalidValue, MaxTabWidth, c.Highlight.TabWidth)
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position: %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	if c.Timeout != "" {
		if _, err := c.TimeoutDuration(); err != nil {
			return err
		}
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// searched by name in standard locations. Keys absent from the file keep
// their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing entry of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Encode(c)
}
