// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-code2pdf/internal/fileutil"
)

// maxListed caps how many names a hint enumerates.
const maxListed = 8

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'code2pdf doctor' for diagnostics")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the render timeout.
func ForTimeout() string {
	return format("long files take longer to lay out; raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound suggests --config and a location to create the file in.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepath2slash(p), "go-code2pdf/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists page styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available styles: " + strings.Join(available, ", "))
}

// ForUnknownTheme lists a few highlighting themes and points at the full list.
func ForUnknownTheme(available []string) string {
	return format("try one of " + sample(available) + " (see 'code2pdf themes')")
}

// ForUnknownLanguage points at the lexer list.
func ForUnknownLanguage() string {
	return format("run 'code2pdf languages' for accepted names and aliases")
}

// ForNoLexer explains how to convert files no lexer recognized.
func ForNoLexer() string {
	return format("force one with --language, or drop --no-fallback to render it as plain text")
}

// ForNotText suggests an explicit source encoding.
func ForNotText() string {
	return format("if the file is text in a legacy encoding, pass --encoding (e.g. latin1)")
}

func sample(names []string) string {
	if len(names) > maxListed {
		names = names[:maxListed]
	}
	return strings.Join(names, ", ")
}

func filepath2slash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
