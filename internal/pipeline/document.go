package pipeline

import (
	"fmt"
	"html"
)

// Body classes select the stylesheet rules for each kind of document.
const (
	ListingClass  = "listing"
	MarkdownClass = "markdown-body"
)

// documentTemplate wraps a rendered fragment in a complete HTML5 document.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<main class="%s">
%s
</main>
</body>
</html>`

// BuildDocument returns a standalone HTML document. The title is escaped;
// body is trusted HTML produced by the highlighter or Goldmark.
func BuildDocument(title, class, body string) string {
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), html.EscapeString(class), body)
}
