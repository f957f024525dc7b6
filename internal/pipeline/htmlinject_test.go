package pipeline

// Notes:
// - The header template used here is a minimal stand-in; the embedded
//   template is covered through the assets package and the root converter.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInjectCSS - Placement rules
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><style>p{}</style></head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
		{
			name: "after body when no head",
			html: `<body class="x"><p>hi</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>hi</p></body>`,
		},
		{
			name: "prepend fragment",
			html: "<p>hi</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>hi</p>",
		},
		{
			name: "empty css unchanged",
			html: "<p>hi</p>",
			css:  "",
			want: "<p>hi</p>",
		},
		{
			name: "sanitized",
			html: "<p>hi</p>",
			css:  "</style><script>",
			want: `<style><\/style><script></style><p>hi</p>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	injector := &CSSInjection{}
	if got := injector.InjectCSS(ctx, "<p></p>", "p{}"); got != "<p></p>" {
		t.Errorf("cancelled context should return HTML unchanged, got %q", got)
	}
}

func TestJoinCSS(t *testing.T) {
	t.Parallel()

	got := JoinCSS("  a{}  ", "", "\n", "b{}")
	if got != "a{}\nb{}" {
		t.Errorf("JoinCSS() = %q, want %q", got, "a{}\nb{}")
	}
	if JoinCSS() != "" {
		t.Error("JoinCSS() with no parts should be empty")
	}
}

// ---------------------------------------------------------------------------
// TestInjectHeader - Banner rendering
// ---------------------------------------------------------------------------

const testHeaderTemplate = `<header class="file-header">{{.Path}} {{.Language}} {{.Lines}}</header>`

func TestInjectHeader(t *testing.T) {
	t.Parallel()

	h, err := NewHeaderInjection(testHeaderTemplate)
	if err != nil {
		t.Fatalf("NewHeaderInjection: %v", err)
	}

	t.Run("after body", func(t *testing.T) {
		t.Parallel()

		got, err := h.InjectHeader(context.Background(), "<body><main></main></body>",
			&HeaderData{Path: "cmd/main.go", Language: "Go", Lines: 12})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `<body><header class="file-header">cmd/main.go Go 12</header><main></main></body>`
		if got != want {
			t.Errorf("InjectHeader() = %q, want %q", got, want)
		}
	})

	t.Run("escapes path", func(t *testing.T) {
		t.Parallel()

		got, err := h.InjectHeader(context.Background(), "<body></body>",
			&HeaderData{Path: "<b>.go"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, "<b>.go") {
			t.Errorf("path must be escaped, got %q", got)
		}
	})

	t.Run("nil data unchanged", func(t *testing.T) {
		t.Parallel()

		got, err := h.InjectHeader(context.Background(), "<body></body>", nil)
		if err != nil || got != "<body></body>" {
			t.Errorf("InjectHeader(nil) = %q, %v", got, err)
		}
	})

	t.Run("no body prepends", func(t *testing.T) {
		t.Parallel()

		got, err := h.InjectHeader(context.Background(), "<p></p>", &HeaderData{Path: "a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "<header") {
			t.Errorf("expected header prepended, got %q", got)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := h.InjectHeader(ctx, "<body></body>", &HeaderData{}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestNewHeaderInjection_InvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewHeaderInjection("{{.Path"); err == nil {
		t.Error("expected parse error")
	}
}

func TestInjectHeader_ExecuteError(t *testing.T) {
	t.Parallel()

	h, err := NewHeaderInjection("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewHeaderInjection: %v", err)
	}
	_, err = h.InjectHeader(context.Background(), "<body></body>", &HeaderData{})
	if !errors.Is(err, ErrHeaderRender) {
		t.Errorf("expected ErrHeaderRender, got %v", err)
	}
}
