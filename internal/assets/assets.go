package assets

// Built-in asset names.
const (
	DefaultStyleName   = "default"
	HeaderTemplateName = "header"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name (without .css extension).
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name (without .html extension).
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// StyleNames returns the names of the built-in styles, sorted.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
