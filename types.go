package code2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Tab width bounds.
const (
	DefaultTabWidth = 4
	MaxTabWidth     = 16
)

// Detection methods reported in ConvertResult.Detection.
const (
	DetectedByLanguage = "language"
	DetectedByFilename = "filename"
	DetectedByContent  = "content"
	DetectedByFallback = "fallback"
	DetectedAsMarkdown = "markdown"
)

// pageDimensions maps page sizes to portrait width and height in inches.
var pageDimensions = map[string]struct{ width, height float64 }{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate; comparisons are case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// dimensions returns paper width and height in inches, swapped for landscape.
// A nil receiver yields the default letter portrait page.
func (p *PageSettings) dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	d := pageDimensions[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return d.height, d.width
	}
	return d.width, d.height
}

// margin returns the page margin, defaulting for a nil receiver.
func (p *PageSettings) margin() float64 {
	if p == nil {
		return DefaultMargin
	}
	return p.Margin
}

// Input contains the parameters of one file conversion.
type Input struct {
	Source         string        // decoded source text (required)
	Filename       string        // used for lexer detection and as default title
	Language       string        // explicit lexer name or alias (overrides detection)
	Title          string        // document title (default: Filename)
	SourceDir      string        // base for relative paths in Markdown mode
	SourceRoot     string        // outermost directory those paths may reach (default: SourceDir)
	CSS            string        // extra CSS, applied last
	Page           *PageSettings // nil = defaults
	Footer         *Footer       // nil = no footer
	Header         *Header       // nil = no header banner
	HighlightLines []LineRange   // lines to emphasize
	RenderMarkdown bool          // render Markdown sources as documents
	HTMLOnly       bool          // skip PDF rendering
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	ShowFilename   bool
	Filename       string // printed when ShowFilename is set (default: Input.Filename)
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Header configures the banner printed above the listing.
// Empty fields are filled from the conversion: Path from Input.Filename,
// Language from the detected lexer, Lines from the normalized source.
type Header struct {
	Path     string
	Language string
	Lines    int
}

// LineRange is a 1-based inclusive range of source lines.
type LineRange struct {
	Start int
	End   int
}

// Validate checks that the range is well formed.
func (r LineRange) Validate() error {
	if r.Start < 1 || r.End < r.Start {
		return fmt.Errorf("%w: %d-%d", ErrInvalidLineRange, r.Start, r.End)
	}
	return nil
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML      []byte // intermediate HTML document
	PDF       []byte // nil when Input.HTMLOnly is set
	Language  string // lexer name, or "Markdown" in Markdown mode
	Detection string // how the lexer was chosen (DetectedBy* constants)
	Pages     int    // PDF page count (0 when HTMLOnly)
	Lines     int    // lines in the normalized source
}
