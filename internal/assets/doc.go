// Package assets provides page stylesheets and HTML templates for listings.
// Assets can be loaded from embedded files or custom filesystem paths.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in page styles (default, compact, print)
// and the file header template.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a directory may override a single file.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page style (e.g., compact.css)
//	└── templates/
//	    └── {name}.html          # HTML template (e.g., header.html)
//
// # Security
//
// Style and template names must be bare words (no dots or separators).
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
