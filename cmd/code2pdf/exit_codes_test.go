package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
	"github.com/alnah/go-code2pdf/internal/textenc"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"conversion failed", ErrConversionFailed, ExitGeneral},

		{"browser connect", code2pdf.ErrBrowserConnect, ExitBrowser},
		{"page load wrapped", fmt.Errorf("render: %w", code2pdf.ErrPageLoad), ExitBrowser},
		{"pdf generation", code2pdf.ErrPDFGeneration, ExitBrowser},

		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", fmt.Errorf("open: %w", os.ErrPermission), ExitIO},
		{"no input", fmt.Errorf("%w: %w", ErrNoInput, os.ErrNotExist), ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"merge", code2pdf.ErrMerge, ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"encoding", textenc.ErrUnknownEncoding, ExitUsage},
		{"theme", code2pdf.ErrUnknownTheme, ExitUsage},
		{"language", code2pdf.ErrUnknownLanguage, ExitUsage},
		{"page size", code2pdf.ErrInvalidPageSize, ExitUsage},
		{"line spec", ErrInvalidLineSpec, ExitUsage},
		{"style", code2pdf.ErrStyleNotFound, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"timeout", fmt.Errorf("render: %w", context.DeadlineExceeded), true},
		{"unknown theme", code2pdf.ErrUnknownTheme, true},
		{"unknown style", code2pdf.ErrStyleNotFound, true},
		{"unknown language", code2pdf.ErrUnknownLanguage, true},
		{"output dir", ErrCreateOutputDir, true},
		{"not text", textenc.ErrNotText, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := hintFor(tt.err)
			if (hint != "") != tt.wantHint {
				t.Errorf("hintFor(%v) = %q, want hint %v", tt.err, hint, tt.wantHint)
			}

			msg := errorWithHint(tt.err)
			if !strings.HasPrefix(msg, tt.err.Error()) || !strings.HasSuffix(msg, hint) {
				t.Errorf("errorWithHint() = %q", msg)
			}
		})
	}
}
