package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, fs *flag.FlagSet, flags *convertFlags, env *Environment) error {
	cfg, err := effectiveConfig(fs, flags, env)
	if err != nil {
		return err
	}

	inputPath := resolveInputPath(args, cfg)
	outputFile := ""
	if strings.HasSuffix(strings.ToLower(flags.output), ".pdf") {
		outputFile = flags.output
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir, discoveryOptions{
		recursive:  cfg.Input.Recursive,
		hidden:     cfg.Input.Hidden,
		extensions: cfg.Input.Extensions,
		exclude:    cfg.Input.Exclude,
		executable: env.Executable,
		outputFile: outputFile,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoInput, err)
	}
	if outputFile != "" && len(files) > 1 {
		return fmt.Errorf("%w: --output %s names a single PDF but %s holds %d files", ErrUsage, outputFile, inputPath, len(files))
	}

	if len(files) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "No files to process")
		}
		return nil
	}

	params, err := buildConversionParams(cfg, flags)
	if err != nil {
		return err
	}
	params.sourceRoot = sourceRoot(inputPath)

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil && flags.common.verbose {
			fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", err)
		}
	}()

	results := convertBatch(ctx, conv, files, params)
	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if cfg.Output.Merge != "" && !params.htmlOnly {
		if err := mergeResults(results, cfg.Output.Merge, flags.common.quiet, env); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, summary.Failed, len(results))
	}
	return nil
}

// effectiveConfig layers defaults, the config file, environment and flags,
// then validates the result.
func effectiveConfig(fs *flag.FlagSet, flags *convertFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		if cfg, err = config.LoadConfig(configName); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(fs, flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveInputPath determines the input path from args, then config, then
// the current directory.
func resolveInputPath(args []string, cfg *config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir
	}
	return "."
}

// buildConversionParams derives per-file conversion settings from config.
func buildConversionParams(cfg *config.Config, flags *convertFlags) (*conversionParams, error) {
	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return nil, err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	ranges, err := parseLineRanges(flags.highlight.lines)
	if err != nil {
		return nil, err
	}

	return &conversionParams{
		css:            css,
		page:           page,
		footer:         buildFooter(cfg),
		header:         cfg.Header.Enabled,
		language:       cfg.Highlight.Language,
		highlightLines: ranges,
		renderMarkdown: cfg.Highlight.RenderMarkdown,
		encoding:       cfg.Input.Encoding,
		maxFileSize:    cfg.Input.MaxFileSize,
		htmlOutput:     cfg.Output.HTML,
		htmlOnly:       flags.outputMode.htmlOnly,
	}, nil
}

// converterOptions maps config to converter options.
func converterOptions(cfg *config.Config) ([]code2pdf.Option, error) {
	opts := []code2pdf.Option{
		code2pdf.WithTheme(cfg.Highlight.Theme),
		code2pdf.WithStyle(cfg.Style),
		code2pdf.WithLineNumbers(cfg.Highlight.LineNumbers),
		code2pdf.WithWrapLongLines(cfg.Highlight.Wrap),
		code2pdf.WithFallbackLexer(cfg.Highlight.Fallback),
	}
	if cfg.Highlight.TabWidth > 0 {
		opts = append(opts, code2pdf.WithTabWidth(cfg.Highlight.TabWidth))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, code2pdf.WithAssetPath(cfg.Assets.BasePath))
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, code2pdf.WithTimeout(timeout))
	}
	return opts, nil
}

// readExtraCSS reads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildPageSettings fills unset page fields with defaults and validates them.
func buildPageSettings(cfg *config.Config) (*code2pdf.PageSettings, error) {
	page := code2pdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// buildFooter returns nil when the footer is disabled.
func buildFooter(cfg *config.Config) *code2pdf.Footer {
	if !cfg.Footer.Enabled {
		return nil
	}
	return &code2pdf.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		ShowFilename:   cfg.Footer.ShowFilename,
		Text:           cfg.Footer.Text,
	}
}

// mergeResults concatenates the batch's PDFs into outFile.
func mergeResults(results []ConversionResult, outFile string, quiet bool, env *Environment) error {
	pdfs := producedPDFs(results)
	if len(pdfs) == 0 {
		if !quiet {
			fmt.Fprintf(env.Stdout, "Nothing to merge into %s\n", outFile)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outFile), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	if err := env.MergePDFs(pdfs, outFile); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Merged %d file(s) into %s\n", len(pdfs), outFile)
	}
	return nil
}
