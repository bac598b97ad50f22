// Package pages folds the block hierarchy into output pages: one markdown
// document plus ordered navigation records per output file.
package pages

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
)

// IndexFile is the reserved identifier of the aliased landing page.
const IndexFile = "index.html"

// Page is one output file's accumulated markdown and block metadata.
type Page struct {
	markdown strings.Builder
	Blocks   []docblock.Meta
}

// Markdown returns the concatenated markdown of every block on the page.
func (p *Page) Markdown() string {
	return p.markdown.String()
}

// Title is the category of the first block, or "" for pages without blocks.
func (p *Page) Title() string {
	if len(p.Blocks) == 0 {
		return ""
	}
	return p.Blocks[0].Category
}

func (p *Page) append(b *docblock.Block) {
	p.Blocks = append(p.Blocks, b.Meta())
	p.markdown.WriteString(b.Markdown)
}

// Set maps output file names to pages.
type Set struct {
	pages map[string]*Page
}

// NewSet creates an empty page set.
func NewSet() *Set {
	return &Set{pages: make(map[string]*Page)}
}

// Fold walks blocks in ascending name order, appending each to the page of
// its own output file or, for children, the inherited file of the nearest
// root ancestor. Children are folded recursively right after their parent.
func (s *Set) Fold(blocks map[string]*docblock.Block, inherited string) {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := blocks[name]
		target := b.OutputFile
		if target == "" {
			target = inherited
		}
		s.page(target).append(b)
		if len(b.Children) > 0 {
			s.Fold(b.Children, target)
		}
	}
}

// AddMarkdownPage registers a standalone markdown document as a page with no
// blocks, replacing any page of the same name.
func (s *Set) AddMarkdownPage(fileName, markdown string) {
	p := &Page{}
	p.markdown.WriteString(markdown)
	s.pages[fileName] = p
}

// AliasIndex points IndexFile at the page generated for category. The
// category is tried verbatim first ("base_css" → base_css.html) and then
// through the category file-name derivation ("Base CSS" → base_css.html).
// It reports false when neither page exists.
func (s *Set) AliasIndex(category string) bool {
	for _, candidate := range []string{category + ".html", docblock.OutputFileName(category)} {
		if p, ok := s.pages[candidate]; ok {
			s.pages[IndexFile] = p
			return true
		}
	}
	return false
}

// Get returns the page for fileName.
func (s *Set) Get(fileName string) (*Page, bool) {
	p, ok := s.pages[fileName]
	return p, ok
}

// Names returns the page identifiers in ascending order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of pages, aliases included.
func (s *Set) Len() int {
	return len(s.pages)
}

func (s *Set) page(fileName string) *Page {
	p, ok := s.pages[fileName]
	if !ok {
		p = &Page{}
		s.pages[fileName] = p
	}
	return p
}
