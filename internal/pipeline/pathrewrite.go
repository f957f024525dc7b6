package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths points relative img[src] and a[href] values of a
// rendered Markdown fragment at file:// URLs, so a README's screenshots embed
// in the PDF and its links to neighbouring sources keep working.
//
// References resolve against sourceDir, the Markdown file's directory, and may
// climb to sibling packages (../cmd/main.go) while they stay inside rootDir,
// the tree being converted. An empty rootDir means sourceDir. Anchors, URLs
// with a scheme, absolute paths and references leaving rootDir are kept as
// written. Queries and fragments (main.go#L12) survive the rewrite.
func RewriteRelativePaths(fragment, sourceDir, rootDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}
	if rootDir == "" {
		rootDir = sourceDir
	}
	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		rewriteRefs(n, dir, root)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// refAttrs names the attribute carrying a file reference, per element.
var refAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

func rewriteRefs(n *html.Node, dir, root string) {
	if key, ok := refAttrs[n.DataAtom]; ok && n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if attr.Key != key || attr.Namespace != "" {
				continue
			}
			if resolved, ok := resolveRef(attr.Val, dir, root); ok {
				n.Attr[i].Val = resolved
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteRefs(c, dir, root)
	}
}

// resolveRef turns a relative reference into a file:// URL. It reports false
// for references that must stay as written.
func resolveRef(ref, dir, root string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	// Drive letters parse as one-letter schemes and are absolute anyway.
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	rel := filepath.FromSlash(u.Path)
	if strings.HasPrefix(u.Path, "/") || filepath.IsAbs(rel) {
		return "", false
	}

	target := filepath.Join(dir, rel)
	if !insideRoot(target, root) {
		return "", false
	}

	p := filepath.ToSlash(target)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	out := url.URL{Scheme: "file", Path: p, RawQuery: u.RawQuery, Fragment: u.Fragment}
	return out.String(), true
}

// insideRoot reports whether target is root or below it.
func insideRoot(target, root string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
