package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLoadStyle - Built-in page styles
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"default", "compact", "print"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error: %v", name, err)
			}
			for _, selector := range []string{".file-header", ".chroma .ln", ".chroma .hl"} {
				if !strings.Contains(css, selector) {
					t.Errorf("style %q should style %q", name, selector)
				}
			}
		})
	}
}

func TestLoadStyle_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadStyle("nonexistent")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
}

func TestLoadTemplate_Header(t *testing.T) {
	t.Parallel()

	content, err := LoadTemplate(HeaderTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(header) error: %v", err)
	}
	for _, part := range []string{"file-header", "{{.Path}}", "{{.Lines}}"} {
		if !strings.Contains(content, part) {
			t.Errorf("header template should contain %q", part)
		}
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	want := []string{"compact", "default", "print"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("StyleNames() = %v, want %v", got, want)
	}
}
