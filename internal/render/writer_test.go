package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/pages"
)

type wrapRenderer struct{}

func (wrapRenderer) Render(md []byte) ([]byte, error) {
	return append([]byte("<body>"), append(md, []byte("</body>")...)...), nil
}

type failingRenderer struct{}

func (failingRenderer) Render([]byte) ([]byte, error) { return nil, errors.New("boom") }

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func samplePages() *pages.Set {
	button := docblock.New("button", "[button]")
	button.Category = "Base CSS"
	button.Title = "Buttons"
	button.OutputFile = "base_css.html"
	set := pages.NewSet()
	set.Fold(map[string]*docblock.Block{"button": button}, "")
	set.AddMarkdownPage("intro.html", "[intro]")
	return set
}

func TestLoadTemplates_PrefersUnderscoreNames(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "_header.html", "H1")
	writeAsset(t, dir, "header.html", "H2")
	writeAsset(t, dir, "footer.html", "F2")

	tpl, warnings, err := LoadTemplates(dir)
	require.NoError(t, err)
	require.Empty(t, warnings)

	h, err := tpl.Header(PageData{})
	require.NoError(t, err)
	require.Equal(t, "H1", string(h))
	f, err := tpl.Footer(PageData{})
	require.NoError(t, err)
	require.Equal(t, "F2", string(f))
}

func TestLoadTemplates_MissingAreWarnings(t *testing.T) {
	tpl, warnings, err := LoadTemplates(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, []error{ErrNoHeader, ErrNoFooter}, warnings)

	h, err := tpl.Header(PageData{Title: "x"})
	require.NoError(t, err)
	require.Empty(t, h)
}

func TestLoadTemplates_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "_header.html", "{{ .Title ")
	_, _, err := LoadTemplates(dir)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
	require.True(t, ferrors.IsFatal(err))
}

func TestWritePages_ComposesHeaderBodyFooter(t *testing.T) {
	assets := t.TempDir()
	writeAsset(t, assets, "_header.html", "<title>{{ .Title }}|{{ .FileName }}</title>")
	writeAsset(t, assets, "_footer.html", "{{ range .Blocks }}<{{ .Name }}:{{ .Category }}>{{ end }}")
	tpl, _, err := LoadTemplates(assets)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out")
	w := &Writer{Renderer: wrapRenderer{}, Templates: tpl, Destination: dest, Concurrency: 2}

	written, err := w.WritePages(context.Background(), samplePages())
	require.NoError(t, err)
	require.Equal(t, []string{"base_css.html", "intro.html"}, written)

	got, err := os.ReadFile(filepath.Join(dest, "base_css.html"))
	require.NoError(t, err)
	require.Equal(t, "<title>Base CSS|base_css.html</title><body>[button]</body><button:Base CSS>", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "intro.html"))
	require.NoError(t, err)
	require.Equal(t, "<title>|intro.html</title><body>[intro]</body>", string(got))
}

func TestWritePages_NoTemplates(t *testing.T) {
	dest := t.TempDir()
	w := &Writer{Renderer: wrapRenderer{}, Destination: dest}

	_, err := w.WritePages(context.Background(), samplePages())
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "intro.html"))
	require.NoError(t, err)
	require.Equal(t, "<body>[intro]</body>", string(got))
}

func TestWritePages_RenderFailure(t *testing.T) {
	w := &Writer{Renderer: failingRenderer{}, Destination: t.TempDir(), Concurrency: 1}
	_, err := w.WritePages(context.Background(), samplePages())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
}
