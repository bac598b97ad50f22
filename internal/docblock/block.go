// Package docblock models documentation comments embedded in stylesheet and
// script sources: locating them in file text, parsing their YAML header, and
// the resulting Block value that the hierarchy and page builder consume.
package docblock

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Block is a single documentation unit extracted from one comment.
type Block struct {
	Name     string
	Parent   string
	Category string
	Title    string
	Markdown string

	// OutputFile is only resolved for root blocks; children inherit the
	// file of their nearest root ancestor when pages are folded.
	OutputFile string

	// Source is the file the comment was read from, kept for diagnostics.
	Source string

	// Children are keyed by block name. Ordering is imposed at fold time.
	Children map[string]*Block

	placeholder bool
}

// Meta is the lightweight navigation record handed to header/footer templates.
type Meta struct {
	Name     string `json:"name" yaml:"name"`
	Parent   string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// New returns a block with an initialized children map.
func New(name, markdown string) *Block {
	return &Block{
		Name:     name,
		Markdown: markdown,
		Children: make(map[string]*Block),
	}
}

// NewPlaceholder returns an empty, invalid block that only exists to host the
// children of a parent that has not been seen yet.
func NewPlaceholder() *Block {
	return &Block{
		Children:    make(map[string]*Block),
		placeholder: true,
	}
}

// Valid reports whether the block carries a name and a parsed body.
// An empty body is still a body; placeholders have none.
func (b *Block) Valid() bool {
	return b != nil && !b.placeholder && b.Name != ""
}

// IsPlaceholder reports whether the block was created to host orphans.
func (b *Block) IsPlaceholder() bool {
	return b != nil && b.placeholder
}

// IsRoot reports whether the block declares no parent.
func (b *Block) IsRoot() bool {
	return b.Parent == ""
}

// Meta returns the navigation record for the block.
func (b *Block) Meta() Meta {
	return Meta{
		Name:     b.Name,
		Parent:   b.Parent,
		Category: b.Category,
		Title:    b.Title,
	}
}

var lower = cases.Lower(language.Und)

// OutputFileName derives the page file name for a category:
// spaces become underscores, the result is lower-cased and ".html" appended.
func OutputFileName(category string) string {
	return lower.String(strings.ReplaceAll(category, " ", "_")) + ".html"
}
