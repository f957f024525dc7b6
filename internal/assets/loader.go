package assets

import (
	"fmt"
	"strings"
)

// AssetLoader defines the contract for loading page styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// assetKind locates one kind of listing asset and names its miss error.
type assetKind struct {
	noun     string
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{noun: "style", dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{noun: "template", dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name below the kind's directory.
func (k assetKind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// checkName accepts bare names such as "compact" or "header". Separators and
// dots are refused: "compact.css" would otherwise load compact.css.css and
// "../x" would leave the kind's directory.
func (k assetKind) checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidAssetName, k.noun)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %s name %q must not contain dots or separators", ErrInvalidAssetName, k.noun, name)
	}
	return nil
}
