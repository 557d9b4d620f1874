package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrDOMRewrite indicates the converted document could not be parsed or
// serialized for post-processing.
var ErrDOMRewrite = errors.New("HTML post-processing failed")

// DOMOptions selects the tree rewrites applied by RewriteDocument.
type DOMOptions struct {
	// HeadingIDs adds unique slug ids to headings that lack one.
	HeadingIDs bool
	// SourceDir, when set, turns relative img and link targets into
	// file:// URLs under that directory.
	SourceDir string
}

// RewriteDocument parses htmlContent once, applies the selected rewrites
// and renders it back. With no rewrite selected the input is returned as is.
func RewriteDocument(htmlContent string, opts DOMOptions) (string, error) {
	if !opts.HeadingIDs && opts.SourceDir == "" {
		return htmlContent, nil
	}

	var baseDir string
	if opts.SourceDir != "" {
		abs, err := filepath.Abs(opts.SourceDir)
		if err != nil {
			return "", fmt.Errorf("%w: resolving source directory: %v", ErrDOMRewrite, err)
		}
		baseDir = abs
	}

	doc, fragment, err := parseDocument(htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDOMRewrite, err)
	}

	if opts.HeadingIDs {
		assignHeadingIDs(doc)
	}
	if baseDir != "" {
		walk(doc, func(n *html.Node) {
			switch n.DataAtom {
			case atom.Img:
				rebaseAttr(n, "src", baseDir)
			case atom.A:
				rebaseAttr(n, "href", baseDir)
			}
		})
	}

	out, err := renderDocument(doc, fragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDOMRewrite, err)
	}
	return out, nil
}

// AssignHeadingIDs adds unique slug ids to h1-h6 elements lacking one.
func AssignHeadingIDs(htmlContent string) (string, error) {
	return RewriteDocument(htmlContent, DOMOptions{HeadingIDs: true})
}

// parseDocument parses a full document, or a body fragment under a
// synthetic root. fragment reports which one was parsed.
func parseDocument(content string) (doc *html.Node, fragment bool, err error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err = html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderDocument(doc *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		err := html.Render(&buf, doc)
		return buf.String(), err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// assignHeadingIDs reserves every existing id first so generated ids never
// collide with authored ones.
func assignHeadingIDs(doc *html.Node) {
	used := make(map[string]bool)
	var pending []*html.Node
	walk(doc, func(n *html.Node) {
		if id, ok := attrValue(n, "id"); ok && id != "" {
			used[id] = true
			return
		}
		if isHeading(n) {
			pending = append(pending, n)
		}
	})

	for _, n := range pending {
		base := Slugify(textContent(n))
		id := base
		for i := 1; used[id]; i++ {
			id = base + "-" + strconv.Itoa(i)
		}
		used[id] = true
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

// Slugify lowercases s, keeps letters and digits of any script, and joins
// words with single hyphens. An empty result becomes "section".
func Slugify(s string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			hyphen = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			hyphen = true
		}
	}
	if sb.Len() == 0 {
		return "section"
	}
	return sb.String()
}

// rebaseAttr rewrites a relative path attribute to a file:// URL. Targets
// escaping baseDir are left untouched.
func rebaseAttr(n *html.Node, key, baseDir string) {
	for i, a := range n.Attr {
		if a.Key != key || !isLocalRelative(a.Val) {
			continue
		}
		target := filepath.Join(baseDir, a.Val)
		if !withinDir(target, baseDir) {
			continue
		}
		n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String()
	}
}

func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return !filepath.IsAbs(ref)
}

func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
