// Package hierarchy links parsed documentation blocks into a parent/child
// tree keyed by block name, tolerating children that are seen before their
// parents.
package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Default heading tags used when configuration leaves them empty.
const (
	DefaultParentTag = "h1"
	DefaultChildTag  = "h2"
)

// Headings configures the tags wrapping generated block anchors.
type Headings struct {
	Parent string
	Child  string
}

func (h Headings) parentTag() string {
	if h.Parent == "" {
		return DefaultParentTag
	}
	return h.Parent
}

func (h Headings) childTag() string {
	if h.Child == "" {
		return DefaultChildTag
	}
	return h.Child
}

// Collection is the top-level name → block index for one build.
type Collection struct {
	headings Headings
	blocks   map[string]*docblock.Block
	// Child block name → the name of the block it was attached to.
	childOf  map[string]string
}

// Orphan describes a child whose declared parent is not a top-level block.
// NestedUnder is set when the parent exists but is itself a child of that
// block; it is empty when the parent was never defined.
type Orphan struct {
	Block       docblock.Meta
	Source      string
	NestedUnder string
}

// New creates an empty collection.
func New(headings Headings) *Collection {
	return &Collection{
		headings: headings,
		blocks:   make(map[string]*docblock.Block),
		childOf:  make(map[string]string),
	}
}

// Insert adds a parsed block to the tree. Invalid blocks are ignored.
//
// Root blocks resolve their output file from their category; a root without
// a category is a fatal validation error. A root replaces any entry of the
// same name but keeps the children already attached to it.
//
// Children attach to their parent's entry. If the parent is unknown a
// placeholder entry is created under the parent name to host them until the
// real parent arrives.
func (c *Collection) Insert(b *docblock.Block) error {
	if !b.Valid() {
		return nil
	}
	if b.IsRoot() {
		return c.insertRoot(b)
	}
	c.insertChild(b)
	return nil
}

func (c *Collection) insertRoot(b *docblock.Block) error {
	if b.Category == "" {
		return ferrors.ValidationError("No output file specified. Missing category?").
			WithContext("block", describe(b)).
			WithContext("source", b.Source).
			Build()
	}
	b.OutputFile = docblock.OutputFileName(b.Category)

	if existing, ok := c.blocks[b.Name]; ok {
		merge(b, existing)
	}
	c.blocks[b.Name] = b
	b.Markdown = withAnchor(c.headings.parentTag(), b.Name, b.Title, b.Markdown)
	return nil
}

func (c *Collection) insertChild(b *docblock.Block) {
	parent, ok := c.blocks[b.Parent]
	if !ok {
		parent = docblock.NewPlaceholder()
		c.blocks[b.Parent] = parent
	}
	if b.Title != "" {
		b.Markdown = withAnchor(c.headings.childTag(), b.Name, b.Title, b.Markdown)
	}
	parent.Children[b.Name] = b
	c.childOf[b.Name] = b.Parent
}

// merge moves children from a shadowed entry into its replacement. Children
// declared on the replacement itself win on name collisions.
func merge(into, from *docblock.Block) {
	if into.Children == nil {
		into.Children = make(map[string]*docblock.Block, len(from.Children))
	}
	for name, child := range from.Children {
		if _, exists := into.Children[name]; !exists {
			into.Children[name] = child
		}
	}
}

// Roots returns the resolved top-level blocks. Placeholders are excluded so
// their children never surface in output.
func (c *Collection) Roots() map[string]*docblock.Block {
	roots := make(map[string]*docblock.Block, len(c.blocks))
	for name, b := range c.blocks {
		if b.IsPlaceholder() {
			continue
		}
		roots[name] = b
	}
	return roots
}

// Lookup returns the top-level entry for name, placeholder or not.
func (c *Collection) Lookup(name string) (*docblock.Block, bool) {
	b, ok := c.blocks[name]
	return b, ok
}

// Len returns the number of top-level entries including placeholders.
func (c *Collection) Len() int {
	return len(c.blocks)
}

// Unresolved lists the children still hosted by placeholders, keyed by the
// missing parent name. Both the parents and their children are sorted.
func (c *Collection) Unresolved() map[string][]Orphan {
	out := make(map[string][]Orphan)
	for parentName, b := range c.blocks {
		if !b.IsPlaceholder() {
			continue
		}
		names := make([]string, 0, len(b.Children))
		for name := range b.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		orphans := make([]Orphan, 0, len(names))
		for _, name := range names {
			child := b.Children[name]
			orphans = append(orphans, Orphan{Block: child.Meta(), Source: child.Source, NestedUnder: c.childOf[parentName]})
		}
		out[parentName] = orphans
	}
	return out
}

// withAnchor prepends the heading anchor to body. A blank line always
// separates the two, otherwise markdown renderers treat the body as part of
// the raw HTML block opened by the heading.
func withAnchor(tag, name, title, body string) string {
	heading := fmt.Sprintf("\n\n<%s id=\"%s\">%s</%s>\n", tag, name, title, tag)
	if body != "" && !strings.HasPrefix(body, "\n") {
		heading += "\n"
	}
	return heading + body
}

func describe(b *docblock.Block) string {
	return fmt.Sprintf("name: %s\nparent: %s\ncategory: %s\ntitle: %s\nmarkdown:\n%s",
		b.Name, b.Parent, b.Category, b.Title, b.Markdown)
}
