package main

import (
	"context"
	"io"
	"os"
	"time"

	code2pdf "github.com/alnah/go-code2pdf"
)

// CLIConverter is the part of code2pdf.Converter the batch loop uses.
type CLIConverter interface {
	Convert(ctx context.Context, input code2pdf.Input) (*code2pdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ CLIConverter = (*code2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the converter factory and the PDF merger.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...code2pdf.Option) (CLIConverter, error)
	MergePDFs    func(inFiles []string, outFile string) error
	Executable   string // path of the running binary, never converted
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	exe, _ := os.Executable()
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...code2pdf.Option) (CLIConverter, error) {
			return code2pdf.NewConverter(opts...)
		},
		MergePDFs:  code2pdf.MergeFiles,
		Executable: exe,
	}
}
