package main

// Notes:
// - These tests drive the full command tree through runMain with the mock
//   converter factory, so flag parsing, config layering, discovery, the batch
//   loop and exit codes are exercised together.
// - CODE2PDF_* variables set in the developer's shell leak into these tests;
//   env_config_test.go covers the variables themselves.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	code2pdf "github.com/alnah/go-code2pdf"
)

// ---------------------------------------------------------------------------
// TestRunConvert - Directory and file conversion
// ---------------------------------------------------------------------------

func TestRunConvert_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	writeFiles(t, src, map[string]string{
		"main.go":     "package main\n",
		"util.py":     "print(1)\n",
		"pkg/lib.go":  "package pkg\n",
		"blob.bin":    "\x00\x01\x02",
		"empty.txt":   "",
		".hidden.go":  "package hidden\n",
		"already.pdf": "%PDF",
	})

	env := newTestEnv(t)
	code := runMain([]string{src, "-r", "-o", out}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want 0; stderr:\n%s", code, env.stderr.String())
	}
	for _, rel := range []string{"main.pdf", "util.pdf", "pkg/lib.pdf"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s not written: %v", rel, err)
		}
	}
	stdout := env.stdout.String()
	for _, want := range []string{"Skipped", "binary file", "empty file", "3 succeeded, 2 skipped, 0 failed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if !env.conv.closed {
		t.Error("converter not closed")
	}
}

func TestRunConvert_SingleFileOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.go": "package main\n"})
	out := filepath.Join(dir, "docs", "listing.pdf")

	env := newTestEnv(t)
	code := runMain([]string{filepath.Join(dir, "main.go"), "-o", out, "-q"}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("listing.pdf not written: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", env.stdout.String())
	}
}

func TestRunConvert_PDFOutputWithManyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n", "b.go": "package b\n"})

	env := newTestEnv(t)
	code := runMain([]string{dir, "-o", filepath.Join(dir, "all.pdf")}, env.Environment)

	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if len(env.conv.inputs) != 0 {
		t.Error("files converted despite usage error")
	}
}

func TestRunConvert_NoFiles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	code := runMain([]string{t.TempDir()}, env.Environment)

	if code != ExitSuccess {
		t.Errorf("exit = %d, want 0", code)
	}
	if !strings.Contains(env.stdout.String(), "No files to process") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRunConvert_MissingInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	code := runMain([]string{filepath.Join(t.TempDir(), "missing")}, env.Environment)

	if code != ExitIO {
		t.Errorf("exit = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(env.stderr.String(), "error: "+ErrNoInput.Error()) {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRunConvert_PartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n", "b.go": "package b\n"})

	env := newTestEnv(t)
	env.conv.errs = map[string]error{"b.go": code2pdf.ErrPDFGeneration}
	code := runMain([]string{dir}, env.Environment)

	if code != ExitGeneral {
		t.Errorf("exit = %d, want %d", code, ExitGeneral)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.pdf")); err != nil {
		t.Errorf("a.pdf not written after b.go failed: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "FAILED "+filepath.Join(dir, "b.go")) {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRunConvert_ConverterFactoryError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	env := newTestEnv(t)
	env.NewConverter = func(...code2pdf.Option) (CLIConverter, error) {
		return nil, code2pdf.ErrStyleNotFound
	}

	if code := runMain([]string{dir}, env.Environment); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Merge - Combined PDF
// ---------------------------------------------------------------------------

func TestRunConvert_Merge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n", "b.go": "package b\n", "c.bin": "\x00"})
	merged := filepath.Join(dir, "book", "all.pdf")

	env := newTestEnv(t)
	code := runMain([]string{dir, "--merge", merged}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	want := []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")}
	if strings.Join(env.merged, ",") != strings.Join(want, ",") {
		t.Errorf("merged = %v, want %v", env.merged, want)
	}
	if env.mergeTo != merged {
		t.Errorf("merge target = %s, want %s", env.mergeTo, merged)
	}
	if !strings.Contains(env.stdout.String(), "Merged 2 file(s) into "+merged) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRunConvert_MergeError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	env := newTestEnv(t)
	env.mergeErr = code2pdf.ErrMerge
	code := runMain([]string{dir, "-m", filepath.Join(dir, "all.pdf")}, env.Environment)

	if code != ExitIO {
		t.Errorf("exit = %d, want %d", code, ExitIO)
	}
}

func TestRunConvert_MergeSkippedForHTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	env := newTestEnv(t)
	code := runMain([]string{dir, "--html-only", "-m", filepath.Join(dir, "all.pdf")}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	if env.merged != nil {
		t.Errorf("merged %v in html-only mode", env.merged)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.html")); err != nil {
		t.Errorf("a.html not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Flags - Flag plumbing into the converter
// ---------------------------------------------------------------------------

func TestRunConvert_FlagsReachInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n", "extra.css": "pre { font-size: 8pt; }"})

	env := newTestEnv(t)
	code := runMain([]string{
		filepath.Join(dir, "a.go"),
		"--language", "c",
		"--highlight-lines", "1",
		"--css", filepath.Join(dir, "extra.css"),
		"--footer-page-number",
		"--no-header",
		"--page-size", "a4",
		"--orientation", "landscape",
	}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	in := env.conv.inputs[0]
	if in.Language != "c" {
		t.Errorf("Language = %q, want c", in.Language)
	}
	if len(in.HighlightLines) != 1 || in.HighlightLines[0] != (code2pdf.LineRange{Start: 1, End: 1}) {
		t.Errorf("HighlightLines = %v", in.HighlightLines)
	}
	if !strings.Contains(in.CSS, "8pt") {
		t.Errorf("CSS = %q", in.CSS)
	}
	if in.Footer == nil || !in.Footer.ShowPageNumber {
		t.Errorf("Footer = %+v, want page numbers", in.Footer)
	}
	if in.Header != nil {
		t.Error("Header set despite --no-header")
	}
	if in.Page == nil || in.Page.Size != "a4" || in.Page.Orientation != "landscape" {
		t.Errorf("Page = %+v", in.Page)
	}
}

func TestRunConvert_UsageErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad line spec", []string{dir, "--highlight-lines", "5-2"}, ErrInvalidLineSpec},
		{"bad page size", []string{dir, "--page-size", "tabloid"}, nil},
		{"bad tab width", []string{dir, "--tab-width", "40"}, nil},
		{"unknown encoding", []string{dir, "--encoding", "klingon"}, nil},
		{"missing css", []string{dir, "--css", filepath.Join(dir, "nope.css")}, ErrReadCSS},
		{"missing config", []string{dir, "-c", filepath.Join(dir, "nope.yaml")}, nil},
		{"unknown flag", []string{dir, "--frobnicate"}, ErrUsage},
		{"two arguments", []string{dir, dir}, ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			code := runMain(tt.args, env.Environment)

			want := ExitUsage
			if errors.Is(tt.wantErr, ErrReadCSS) {
				want = ExitIO
			}
			if code != want {
				t.Errorf("exit = %d, want %d; stderr:\n%s", code, want, env.stderr.String())
			}
			if tt.wantErr != nil && !strings.Contains(env.stderr.String(), tt.wantErr.Error()) {
				t.Errorf("stderr = %q, want %q", env.stderr.String(), tt.wantErr)
			}
			if len(env.conv.inputs) != 0 {
				t.Error("converter called despite error")
			}
		})
	}
}

func TestRunConvert_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.go":     "package a\n",
		"src/b.py":     "print(1)\n",
		"code2pdf.yml": "input:\n  extensions: [py]\nhighlight:\n  language: python\n",
	})

	env := newTestEnv(t)
	code := runMain([]string{filepath.Join(dir, "src"), "-c", filepath.Join(dir, "code2pdf.yml")}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	if got := strings.Join(env.conv.filenames(), ","); got != "b.py" {
		t.Errorf("converted %s, want b.py", got)
	}
	if env.conv.inputs[0].Language != "python" {
		t.Errorf("Language = %q, want python", env.conv.inputs[0].Language)
	}
}

// ---------------------------------------------------------------------------
// TestSubcommands - Listing and info commands
// ---------------------------------------------------------------------------

func TestSubcommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, "code2pdf dev"},
		{[]string{"languages"}, "Go\n"},
		{[]string{"themes"}, "monokai\n"},
		{[]string{"styles"}, "default\n"},
		{[]string{"config", "--theme", "monokai", "--no-footer"}, "theme: monokai"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if code := runMain(tt.args, env.Environment); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, env.stdout.String())
			}
		})
	}
}

func TestSubcommands_RejectArgs(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if code := runMain([]string{"themes", "extra"}, env.Environment); code == ExitSuccess {
		t.Error("themes accepted a positional argument")
	}
}

func TestMaxprocsLogger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	maxprocsLogger([]string{"dir"}, env.Environment)("quiet %d", 1)
	if env.stderr.Len() != 0 {
		t.Errorf("non-verbose logger wrote %q", env.stderr.String())
	}

	maxprocsLogger([]string{"dir", "--", "-v"}, env.Environment)("after dashdash")
	if env.stderr.Len() != 0 {
		t.Error("-v after -- enabled logging")
	}

	maxprocsLogger([]string{"-v", "dir"}, env.Environment)("procs %d", 4)
	if env.stderr.String() != "procs 4\n" {
		t.Errorf("verbose logger wrote %q", env.stderr.String())
	}
}
