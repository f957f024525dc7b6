package main

// Notes:
// - Test infrastructure shared by the CLI tests: a recording mock converter
//   and an Environment writing to buffers.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	code2pdf "github.com/alnah/go-code2pdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and fails for configured base names.
type mockConverter struct {
	mu      sync.Mutex
	inputs  []code2pdf.Input
	errs    map[string]error // keyed by base file name
	opts    int
	closed  bool
	onStart func()
}

func (m *mockConverter) Convert(_ context.Context, input code2pdf.Input) (*code2pdf.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.onStart != nil {
		m.onStart()
	}
	if err, ok := m.errs[filepath.Base(input.Filename)]; ok {
		return nil, err
	}
	if strings.TrimSpace(input.Source) == "" {
		return nil, code2pdf.ErrEmptySource
	}

	res := &code2pdf.ConvertResult{
		HTML:      []byte("<html>" + input.Filename + "</html>"),
		Language:  "Go",
		Detection: code2pdf.DetectedByFilename,
		Lines:     strings.Count(input.Source, "\n"),
	}
	if !input.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 mock " + input.Filename)
		res.Pages = 1
	}
	return res, nil
}

func (m *mockConverter) Close() error {
	m.closed = true
	return nil
}

// filenames returns the converted file names in call order.
func (m *mockConverter) filenames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = filepath.Base(in.Filename)
	}
	return names
}

// testEnv holds an Environment wired to buffers and mocks.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	conv     *mockConverter
	merged   []string
	mergeTo  string
	mergeErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &mockConverter{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewConverter: func(opts ...code2pdf.Option) (CLIConverter, error) {
			te.conv.opts = len(opts)
			return te.conv, nil
		},
		MergePDFs: func(in []string, out string) error {
			te.merged = append([]string(nil), in...)
			te.mergeTo = out
			return te.mergeErr
		},
	}
	return te
}

// writeFiles creates files under dir from a map of relative path to content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

// relPaths returns the paths of files relative to dir, slash-separated.
func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatalf("Rel(%q, %q): %v", dir, p, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}
