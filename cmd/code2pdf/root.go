package main

import (
	"fmt"

	"github.com/spf13/cobra"

	code2pdf "github.com/alnah/go-code2pdf"
)

// newRootCmd builds the command tree. The root command converts files;
// subcommands inspect the environment and the available lexers, themes and styles.
func newRootCmd(env *Environment) *cobra.Command {
	flags := &convertFlags{}

	root := &cobra.Command{
		Use:   "code2pdf [flags] [file or directory]",
		Short: "Convert source files to syntax-highlighted PDFs",
		Long: `code2pdf renders source files as syntax-highlighted PDFs with headless Chrome.

Given a directory, every regular file in it is converted, one PDF per source,
next to its source or under --output. Files that are binary, empty, or too
large are skipped and reported. Files no lexer recognizes render as plain text,
or are skipped with --no-fallback.

Examples:
  code2pdf                          convert the current directory
  code2pdf main.go -o listing.pdf   convert one file
  code2pdf src -r -e go -o out      convert Go files under src into out/
  code2pdf . --merge all.pdf        also merge every PDF into one

Environment:
  CODE2PDF_CONFIG, CODE2PDF_STYLE, CODE2PDF_THEME, CODE2PDF_TIMEOUT,
  CODE2PDF_INPUT_DIR, CODE2PDF_OUTPUT_DIR, CODE2PDF_PAGE_SIZE,
  CODE2PDF_LANGUAGE, CODE2PDF_ENCODING, CODE2PDF_ASSET_PATH
  ROD_BROWSER_BIN, ROD_NO_SANDBOX (browser selection and sandbox)`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: expected at most one file or directory, got %d", ErrUsage, len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args, cmd.Flags(), flags, env)
		},
	}
	addConvertFlags(root.Flags(), flags)
	root.Flags().SortFlags = false

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(
		newDoctorCmd(env),
		newLanguagesCmd(env),
		newThemesCmd(env),
		newStylesCmd(env),
		newConfigCmd(env),
		newVersionCmd(env),
	)
	return root
}

// newLanguagesCmd lists lexer names accepted by --language.
func newLanguagesCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printLines(env, code2pdf.Languages())
		},
	}
}

// newThemesCmd lists highlighting themes accepted by --theme.
func newThemesCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List highlighting themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printLines(env, code2pdf.Themes())
		},
	}
}

// newStylesCmd lists built-in page styles accepted by --style.
func newStylesCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List built-in page styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printLines(env, code2pdf.Styles())
		},
	}
}

// newConfigCmd prints the configuration a conversion with the same flags would use.
func newConfigCmd(env *Environment) *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "config [flags]",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration that results from defaults, the config file,
CODE2PDF_* environment variables and the given flags, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig(cmd.Flags(), flags, env)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = env.Stdout.Write(out)
			return err
		},
	}
	addConvertFlags(cmd.Flags(), flags)
	return cmd
}

// newVersionCmd prints the build version.
func newVersionCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(env.Stdout, "code2pdf %s\n", Version)
		},
	}
}

func printLines(env *Environment, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(env.Stdout, line)
	}
}
