// Package anchors checks that in-guide links point at pages and heading
// anchors that exist in the rendered output.
package anchors

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Link is an in-guide hyperlink found in a rendered page.
type Link struct {
	Href     string // As written in the document
	Page     string // Target page, empty for same-page fragments
	Fragment string
	Text     string
}

// Document is the anchor inventory of one rendered page.
type Document struct {
	Name  string
	IDs   map[string]struct{}
	Links []Link
}

// HasID reports whether the document defines id.
func (d *Document) HasID(id string) bool {
	_, ok := d.IDs[id]
	return ok
}

// Broken describes a link whose target page or anchor does not exist.
type Broken struct {
	Page   string
	Href   string
	Reason string
}

// Parse reads an HTML page and collects element ids and links to other
// pages or fragments of the guide. External links are ignored.
func Parse(name string, r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "failed to parse HTML").
			WithSeverity(ferrors.SeverityError).
			WithContext("page", name).
			Build()
	}

	doc := &Document{Name: name, IDs: make(map[string]struct{})}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			collect(doc, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

func collect(doc *Document, n *html.Node) {
	if id := getAttr(n, "id"); id != "" {
		doc.IDs[id] = struct{}{}
	}
	if n.Data != "a" {
		return
	}
	if name := getAttr(n, "name"); name != "" {
		doc.IDs[name] = struct{}{}
	}
	href := getAttr(n, "href")
	if href == "" {
		return
	}
	if link, ok := internalLink(href); ok {
		link.Text = extractText(n)
		doc.Links = append(doc.Links, link)
	}
}

// internalLink accepts "#frag", "page.html" and "page.html#frag" style
// references. Anything with a scheme, host or directory is not a guide page.
func internalLink(href string) (Link, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Link{}, false
	}
	if u.Path == "" {
		if u.Fragment == "" {
			return Link{}, false
		}
		return Link{Href: href, Fragment: u.Fragment}, true
	}
	if strings.Contains(u.Path, "/") || !strings.HasSuffix(u.Path, ".html") {
		return Link{}, false
	}
	return Link{Href: href, Page: u.Path, Fragment: u.Fragment}, true
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

// Check resolves every link of every document against the set.
func Check(docs map[string]*Document) []Broken {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var broken []Broken
	for _, name := range names {
		doc := docs[name]
		for _, link := range doc.Links {
			target := doc
			if link.Page != "" && link.Page != name {
				t, ok := docs[link.Page]
				if !ok {
					broken = append(broken, Broken{Page: name, Href: link.Href, Reason: "missing page"})
					continue
				}
				target = t
			}
			if link.Fragment != "" && !target.HasID(link.Fragment) {
				broken = append(broken, Broken{Page: name, Href: link.Href, Reason: "missing anchor"})
			}
		}
	}
	return broken
}

// Verify parses the named pages under dir and reports broken links.
func Verify(dir string, pageNames []string) ([]Broken, error) {
	docs := make(map[string]*Document, len(pageNames))
	for _, name := range pageNames {
		doc, err := parseFile(filepath.Join(dir, name), name)
		if err != nil {
			return nil, err
		}
		docs[name] = doc
	}
	return Check(docs), nil
}

func parseFile(path, name string) (*Document, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to open HTML file").
			WithSeverity(ferrors.SeverityError).
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(name, file)
}
