package code2pdf

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-code2pdf/internal/assets"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultStyle, err)
	}
	if css == "" {
		t.Error("LoadStyle returned empty CSS for default style")
	}

	tmpl, err := loader.LoadTemplate("header")
	if err != nil {
		t.Fatalf("LoadTemplate(header) error = %v", err)
	}
	if !strings.Contains(tmpl, "{{.Path}}") {
		t.Errorf("header template should reference .Path, got %q", tmpl)
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/path/to/assets")
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_Overrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	for dir, files := range map[string]map[string]string{
		"styles":    {"default.css": "body { --override: 1; }"},
		"templates": {"header.html": "<header>{{.Path}}</header>"},
	} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(tmpDir, dir, name), []byte(content), 0644); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}
	}

	loader, err := NewAssetLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil || !strings.Contains(css, "--override") {
		t.Errorf("LoadStyle() = %q, %v; want override", css, err)
	}
	tmpl, err := loader.LoadTemplate("header")
	if err != nil || tmpl != "<header>{{.Path}}</header>" {
		t.Errorf("LoadTemplate() = %q, %v; want override", tmpl, err)
	}

	// Styles the directory lacks fall back to the embedded set.
	if _, err := loader.LoadStyle("print"); err != nil {
		t.Errorf("LoadStyle(print) fallback error = %v", err)
	}
}

func TestAssetLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("../etc/passwd"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	for _, want := range []string{"compact", "default", "print"} {
		if !slices.Contains(names, want) {
			t.Errorf("Styles() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Styles() not sorted: %v", names)
	}
}

// ---------------------------------------------------------------------------
// TestConvertAssetError - Internal to public error mapping
// ---------------------------------------------------------------------------

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"style not found", assets.ErrStyleNotFound, ErrStyleNotFound},
		{"invalid name", assets.ErrInvalidAssetName, ErrStyleNotFound},
		{"template not found", assets.ErrTemplateNotFound, ErrTemplateNotFound},
		{"invalid base path", assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{"path traversal", assets.ErrPathTraversal, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertAssetError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertAssetError(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Error() != tt.in.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), tt.in.Error())
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}
	other := errors.New("disk on fire")
	if convertAssetError(other) != other {
		t.Error("unknown errors should pass through unchanged")
	}
}
