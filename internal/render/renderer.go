// Package render turns folded pages into HTML files: markdown rendering,
// header/footer templates, and parallel page writes.
package render

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Renderer converts a page's markdown into an HTML fragment.
type Renderer interface {
	Render(markdown []byte) ([]byte, error)
}

// Goldmark renders GitHub flavored markdown. Raw HTML passes through so
// heading anchors injected during assembly survive.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a goldmark renderer with GFM extensions and unsafe
// HTML enabled. Extra renderer options are appended.
func NewGoldmark(opts ...renderer.Option) *Goldmark {
	rendererOpts := append([]renderer.Option{html.WithUnsafe()}, opts...)
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

func (g *Goldmark) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(markdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var registry = map[string]func() Renderer{
	"goldmark":       func() Renderer { return NewGoldmark() },
	"goldmark-xhtml": func() Renderer { return NewGoldmark(html.WithXHTML()) },
}

// Names lists the registered renderer keys.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a new renderer registered under name.
func Lookup(name string) (Renderer, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, ferrors.ConfigError("Unknown markdown renderer").
			WithContext("renderer", name).
			WithContext("available", strings.Join(Names(), ", ")).
			Build()
	}
	return factory(), nil
}
