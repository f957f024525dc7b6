package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	code2pdf "github.com/alnah/go-code2pdf"
)

// TestOutputPathProperties checks output naming over generated file sets.
func TestOutputPathProperties(t *testing.T) {
	t.Parallel()

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	// Stems may carry embedded extensions (a.go + .c) so that renaming one
	// input to its full name can land on another input's default output.
	stem := gen.RegexMatch(`^[a-c]{1,2}(\.(go|c|py))?$`)
	ext := gen.OneConstOf("", ".go", ".c", ".h", ".py", ".GO")
	sub := gen.OneConstOf("", "pkg", "pkg/inner", "cmd")

	file := gopter.CombineGens(sub, stem, ext).Map(func(v []any) string {
		return filepath.Join(filepath.FromSlash("/src"), filepath.FromSlash(v[0].(string)), v[1].(string)+v[2].(string))
	})

	properties.Property("distinct inputs get distinct outputs", prop.ForAll(
		func(inputs []string) bool {
			inputs = dedupe(inputs)
			seen := make(map[string]bool, len(inputs))
			for _, f := range assignOutputPaths(inputs, filepath.FromSlash("/src"), filepath.FromSlash("/out")) {
				if seen[f.OutputPath] {
					return false
				}
				seen[f.OutputPath] = true
			}
			return true
		},
		gen.SliceOf(file),
	))

	properties.Property("outputs mirror the tree under the output dir", prop.ForAll(
		func(input string) bool {
			out := resolveOutputPath(input, filepath.FromSlash("/out"), filepath.FromSlash("/src"), false)
			rel, err := filepath.Rel(filepath.FromSlash("/src"), filepath.Dir(input))
			if err != nil {
				return false
			}
			return strings.HasSuffix(out, ".pdf") && filepath.Dir(out) == filepath.Join(filepath.FromSlash("/out"), rel)
		},
		file,
	))

	properties.Property("keeping the extension only lengthens the name", prop.ForAll(
		func(input string) bool {
			short := filepath.Base(resolveOutputPath(input, "", "", false))
			long := filepath.Base(resolveOutputPath(input, "", "", true))
			return long == filepath.Base(input)+".pdf" && len(long) >= len(short)
		},
		file,
	))

	properties.TestingRun(t)
}

// TestLineRangeProperties checks that formatted ranges parse back unchanged.
func TestLineRangeProperties(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(nil)

	lineRange := gopter.CombineGens(gen.IntRange(1, 5000), gen.IntRange(0, 200)).Map(func(v []any) code2pdf.LineRange {
		start := v[0].(int)
		return code2pdf.LineRange{Start: start, End: start + v[1].(int)}
	})

	properties.Property("format then parse round-trips", prop.ForAll(
		func(ranges []code2pdf.LineRange) bool {
			parts := make([]string, len(ranges))
			for i, r := range ranges {
				if r.Start == r.End {
					parts[i] = fmt.Sprint(r.Start)
				} else {
					parts[i] = fmt.Sprintf("%d-%d", r.Start, r.End)
				}
			}

			got, err := parseLineRanges(strings.Join(parts, ","))
			if err != nil || len(got) != len(ranges) {
				return false
			}
			for i := range got {
				if got[i] != ranges[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(lineRange),
	))

	properties.Property("reversed ranges are rejected", prop.ForAll(
		func(start, back int) bool {
			_, err := parseLineRanges(fmt.Sprintf("%d-%d", start, start-back))
			return err != nil
		},
		gen.IntRange(2, 5000),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
