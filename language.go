package code2pdf

import "github.com/alnah/go-code2pdf/internal/highlight"

// Languages returns the names of all supported lexers, sorted.
func Languages() []string {
	return highlight.Languages()
}

// Themes returns the names of all highlighting themes, sorted.
func Themes() []string {
	return highlight.Themes()
}

// DetectLanguage reports which lexer Convert would pick for a file and how it
// was chosen, without rendering anything.
func DetectLanguage(filename, source, language string, fallback bool) (name, method string, err error) {
	det, err := highlight.Detect(filename, source, language, fallback)
	if err != nil {
		return "", "", err
	}
	return det.Name(), string(det.Method), nil
}
