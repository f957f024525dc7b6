package code2pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// pdfcpuConfig returns a relaxed configuration. Chrome output is valid PDF,
// but relaxed mode also tolerates files merged from other producers.
// pdfcpu's on-disk config directory is never created.
func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount parses a PDF and returns its number of pages.
func PageCount(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, ErrEmptyPDF
	}
	n, err := api.PageCount(bytes.NewReader(pdf), pdfcpuConfig())
	if err != nil {
		return 0, fmt.Errorf("reading PDF: %w", err)
	}
	return n, nil
}

// MergeFiles concatenates PDF files, in order, into outFile.
func MergeFiles(inFiles []string, outFile string) error {
	if len(inFiles) == 0 {
		return fmt.Errorf("%w: no input files", ErrMerge)
	}
	if err := api.MergeCreateFile(inFiles, outFile, false, pdfcpuConfig()); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return nil
}
