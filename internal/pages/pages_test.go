package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	"git.home.luguber.info/inful/styleguide/internal/hierarchy"
)

func insertAll(t *testing.T, blocks ...*docblock.Block) *hierarchy.Collection {
	t.Helper()
	c := hierarchy.New(hierarchy.Headings{})
	for _, b := range blocks {
		require.NoError(t, c.Insert(b))
	}
	return c
}

func block(name, parent, category, title, body string) *docblock.Block {
	b := docblock.New(name, body)
	b.Parent = parent
	b.Category = category
	b.Title = title
	return b
}

func TestFold_RoundTrip(t *testing.T) {
	raw := "\n---\nname: a\ntitle: Foo\ncategory: Widgets\n---\nHello\n"
	b, err := docblock.Parse(raw, "w.css")
	require.NoError(t, err)

	set := NewSet()
	set.Fold(insertAll(t, b).Roots(), "")

	page, ok := set.Get("widgets.html")
	require.True(t, ok)
	md := page.Markdown()
	anchor := `<h1 id="a">Foo</h1>`
	require.Contains(t, md, anchor)
	require.Greater(t, strings.Index(md, "Hello"), strings.Index(md, anchor))
	require.Equal(t, "Widgets", page.Title())
}

func TestFold_SortedTraversalAndInheritance(t *testing.T) {
	c := insertAll(t,
		block("zeta", "", "Base", "Zeta", "[zeta]"),
		block("alpha", "", "Base", "Alpha", "[alpha]"),
		block("beta-child", "alpha", "", "", "[beta]"),
		block("aaa-child", "alpha", "", "", "[aaa]"),
		block("other", "", "Forms", "", "O"),
		block("form-child", "other", "Ignored", "", "F"),
	)

	set := NewSet()
	set.Fold(c.Roots(), "")

	base, ok := set.Get("base.html")
	require.True(t, ok)
	names := make([]string, 0, len(base.Blocks))
	for _, m := range base.Blocks {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"alpha", "aaa-child", "beta-child", "zeta"}, names)

	md := base.Markdown()
	require.Less(t, strings.Index(md, "[alpha]"), strings.Index(md, "[aaa]"))
	require.Less(t, strings.Index(md, "[aaa]"), strings.Index(md, "[beta]"))
	require.Less(t, strings.Index(md, "[beta]"), strings.Index(md, "[zeta]"))

	forms, ok := set.Get("forms.html")
	require.True(t, ok)
	require.Len(t, forms.Blocks, 2)
	require.Equal(t, "form-child", forms.Blocks[1].Name)
	require.Equal(t, "Forms", forms.Title())

	_, ok = set.Get("ignored.html")
	require.False(t, ok)
}

func TestFold_SharedCategoryOrdering(t *testing.T) {
	c := insertAll(t,
		block("second", "", "Widgets", "Second", "two"),
		block("first", "", "Widgets", "First", "one"),
	)
	set := NewSet()
	set.Fold(c.Roots(), "")

	require.Equal(t, []string{"widgets.html"}, set.Names())
	page, _ := set.Get("widgets.html")
	md := page.Markdown()
	first := strings.Index(md, `<h1 id="first">First</h1>`)
	second := strings.Index(md, `<h1 id="second">Second</h1>`)
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestFold_IsIdempotent(t *testing.T) {
	c := insertAll(t,
		block("b", "", "Base", "B", "bb"),
		block("a", "", "Base", "A", "aa"),
		block("c", "a", "", "C", "cc"),
	)

	first := NewSet()
	first.Fold(c.Roots(), "")
	second := NewSet()
	second.Fold(c.Roots(), "")

	require.Equal(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		p1, _ := first.Get(name)
		p2, _ := second.Get(name)
		require.Equal(t, p1.Markdown(), p2.Markdown())
		require.Equal(t, p1.Blocks, p2.Blocks)
	}
}

func TestFold_OrphanContributesNothing(t *testing.T) {
	c := insertAll(t,
		block("root", "", "Base", "", "R"),
		block("orphan", "never-defined", "", "Orphan", "ORPHAN-CONTENT"),
	)
	set := NewSet()
	set.Fold(c.Roots(), "")

	for _, name := range set.Names() {
		p, _ := set.Get(name)
		require.NotContains(t, p.Markdown(), "ORPHAN-CONTENT")
		for _, m := range p.Blocks {
			require.NotEqual(t, "orphan", m.Name)
		}
	}
}

func TestPage_EmptyTitle(t *testing.T) {
	set := NewSet()
	set.AddMarkdownPage("readme.html", "# Readme\n")
	p, ok := set.Get("readme.html")
	require.True(t, ok)
	require.Equal(t, "", p.Title())
	require.Empty(t, p.Blocks)
	require.Equal(t, "# Readme\n", p.Markdown())
}

func TestAddMarkdownPage_BlocksAppendAfterDocument(t *testing.T) {
	set := NewSet()
	set.AddMarkdownPage("base.html", "INTRO")
	c := insertAll(t, block("a", "", "Base", "", "BODY"))
	set.Fold(c.Roots(), "")

	p, _ := set.Get("base.html")
	require.True(t, strings.HasPrefix(p.Markdown(), "INTRO"))
	require.Contains(t, p.Markdown(), "BODY")
	require.Equal(t, "Base", p.Title())
}

func TestAliasIndex(t *testing.T) {
	c := insertAll(t, block("a", "", "Base CSS", "", "x"))
	set := NewSet()
	set.Fold(c.Roots(), "")

	require.False(t, set.AliasIndex("missing"))
	_, ok := set.Get(IndexFile)
	require.False(t, ok)

	require.True(t, set.AliasIndex("base_css"))
	idx, _ := set.Get(IndexFile)
	base, _ := set.Get("base_css.html")
	require.Same(t, base, idx)

	other := NewSet()
	other.Fold(c.Roots(), "")
	require.True(t, other.AliasIndex("Base CSS"))
	require.Equal(t, 2, other.Len())
}
