package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-code2pdf/internal/fileutil"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoveryOptions controls which directory entries become jobs.
type discoveryOptions struct {
	recursive  bool
	hidden     bool
	extensions []string // without dots, case-insensitive; empty = all
	exclude    []string // globs on base name or slash-separated relative path
	executable string   // running binary, never converted
	outputFile string   // explicit PDF path, single-file input only
}

// discoverFiles finds the files to convert under inputPath.
// A file path is converted regardless of its extension. Directory results are
// sorted, and inputs that would share an output path keep their extension.
func discoverFiles(inputPath, outputDir string, opts discoveryOptions) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		outPath := opts.outputFile
		if outPath == "" {
			outPath = resolveOutputPath(inputPath, outputDir, "", false)
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var inputs []string
	err = filepath.WalkDir(inputPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if p == inputPath {
			return nil
		}

		rel, _ := filepath.Rel(inputPath, p)
		if d.IsDir() {
			if !opts.recursive || (!opts.hidden && fileutil.IsHidden(d.Name())) || opts.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.accept(p, rel, d) {
			inputs = append(inputs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(inputs)
	return assignOutputPaths(inputs, inputPath, outputDir), nil
}

// sourceRoot is the directory Markdown links may reach: the input directory
// itself, or the one holding a single input file.
func sourceRoot(inputPath string) string {
	if info, err := os.Stat(inputPath); err == nil && info.IsDir() {
		return inputPath
	}
	return filepath.Dir(inputPath)
}

// accept reports whether a non-directory entry should be converted.
func (o discoveryOptions) accept(p, rel string, d fs.DirEntry) bool {
	name := d.Name()
	if !o.hidden && fileutil.IsHidden(name) {
		return false
	}
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return false
	}
	if !isRegular(p, d) {
		return false
	}
	if len(o.extensions) > 0 && !hasExtension(name, o.extensions) {
		return false
	}
	if o.excluded(rel) {
		return false
	}
	if o.executable != "" && fileutil.SameFile(p, o.executable) {
		return false
	}
	return true
}

// excluded reports whether rel matches an exclude glob, by base name or path.
func (o discoveryOptions) excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	base := path.Base(slashed)
	for _, pattern := range o.exclude {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		if ok, _ := path.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// isRegular follows symlinks so linked files are converted like plain ones.
func isRegular(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// hasExtension matches name against extensions given with or without a dot.
func hasExtension(name string, extensions []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, want := range extensions {
		if strings.EqualFold(ext, strings.TrimPrefix(strings.TrimSpace(want), ".")) {
			return true
		}
	}
	return false
}

// assignOutputPaths resolves output paths. Every input whose output would
// collide with another's keeps its full file name, repeated until no two
// inputs share an output: renaming main.go to main.go.pdf can itself clash
// with the default output of main.go.c.
func assignOutputPaths(inputs []string, baseDir, outputDir string) []FileToConvert {
	keepExt := make([]bool, len(inputs))
	outputs := make([]string, len(inputs))

	for changed := true; changed; {
		changed = false
		counts := make(map[string]int, len(inputs))
		for i, in := range inputs {
			outputs[i] = resolveOutputPath(in, outputDir, baseDir, keepExt[i])
			counts[outputs[i]]++
		}
		for i := range inputs {
			if !keepExt[i] && counts[outputs[i]] > 1 {
				keepExt[i] = true
				changed = true
			}
		}
	}

	files := make([]FileToConvert, len(inputs))
	for i, in := range inputs {
		files[i] = FileToConvert{InputPath: in, OutputPath: outputs[i]}
	}
	return files
}

// resolveOutputPath determines the PDF output path for a source file.
// With keepExt the source extension stays in the name (main.go.pdf).
// Without an output directory the PDF lands next to its source; otherwise the
// source's directory relative to baseInputDir is recreated under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, keepExt bool) string {
	base := fileutil.TrimExt(inputPath)
	if keepExt {
		base = filepath.Base(inputPath)
	}
	name := base + ".pdf"

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil && !strings.HasPrefix(relPath, "..") {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}
