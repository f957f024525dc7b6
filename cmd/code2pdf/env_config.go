package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alnah/go-code2pdf/internal/config"
)

// envPrefix namespaces the environment overrides: CODE2PDF_STYLE, ...
const envPrefix = "CODE2PDF"

// envKeys are the recognized keys below envPrefix.
var envKeys = []string{
	"config",
	"style",
	"theme",
	"timeout",
	"input_dir",
	"output_dir",
	"page_size",
	"language",
	"encoding",
	"asset_path",
}

// otherEnvVars are recognized CODE2PDF_* variables read outside envConfig.
var otherEnvVars = []string{
	"CODE2PDF_CONTAINER", // doctor: force container detection
}

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CODE2PDF_CONFIG
	Style      string        // CODE2PDF_STYLE
	Theme      string        // CODE2PDF_THEME
	Timeout    time.Duration // CODE2PDF_TIMEOUT
	InputDir   string        // CODE2PDF_INPUT_DIR
	OutputDir  string        // CODE2PDF_OUTPUT_DIR
	PageSize   string        // CODE2PDF_PAGE_SIZE
	Language   string        // CODE2PDF_LANGUAGE
	Encoding   string        // CODE2PDF_ENCODING
	AssetPath  string        // CODE2PDF_ASSET_PATH
}

// newEnvViper returns a viper instance bound to the CODE2PDF_* variables.
func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		_ = v.BindEnv(key) // only fails for an empty key
	}
	return v
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	v := newEnvViper()
	cfg := &envConfig{
		ConfigPath: v.GetString("config"),
		Style:      v.GetString("style"),
		Theme:      v.GetString("theme"),
		InputDir:   v.GetString("input_dir"),
		OutputDir:  v.GetString("output_dir"),
		PageSize:   v.GetString("page_size"),
		Language:   v.GetString("language"),
		Encoding:   v.GetString("encoding"),
		AssetPath:  v.GetString("asset_path"),
	}

	if timeout := v.GetString("timeout"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CODE2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	known := make(map[string]bool, len(envKeys)+len(otherEnvVars))
	for _, key := range envKeys {
		known[envPrefix+"_"+strings.ToUpper(key)] = true
	}
	for _, name := range otherEnvVars {
		known[name] = true
	}

	var unknown []string
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix+"_") && !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment values on top of the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Theme != "" {
		cfg.Highlight.Theme = env.Theme
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Language != "" {
		cfg.Highlight.Language = env.Language
	}
	if env.Encoding != "" {
		cfg.Input.Encoding = env.Encoding
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
