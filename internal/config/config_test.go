package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsAndResolution(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "source: ./src\n"+
		"destination: out\n"+
		"documentation_assets: /abs/assets\n"+
		"dependencies:\n"+
		"  - ./build\n"+
		"index: basics\n"+
		"manifest: manifest.json\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, absDir, cfg.BaseDir())
	require.Equal(t, filepath.Join(absDir, "src"), cfg.Source)
	require.Equal(t, filepath.Join(absDir, "out"), cfg.Destination)
	require.Equal(t, "/abs/assets", cfg.DocumentationAssets)
	require.Equal(t, []string{filepath.Join(absDir, "build")}, cfg.Dependencies)
	require.Equal(t, filepath.Join(absDir, "out", "manifest.json"), cfg.ManifestPath())
	require.Equal(t, "basics", cfg.Index)

	require.Equal(t, "h1", cfg.ParentHeadingTag)
	require.Equal(t, "h2", cfg.ChildHeadingTag)
	require.Equal(t, "goldmark", cfg.MarkdownRenderer)
	require.Equal(t, 4, cfg.RenderConcurrency)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.DebounceDuration())
	require.Zero(t, cfg.Watch.RebuildEvery())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("STYLEGUIDE_TEST_OUT", "public")
	dir := t.TempDir()
	path := writeConfig(t, dir, "source: src\n"+
		"destination: ${STYLEGUIDE_TEST_OUT}\n"+
		"documentation_assets: assets\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "public", filepath.Base(cfg.Destination))
	require.Contains(t, string(cfg.Raw()), "destination: public")
	require.NotContains(t, string(cfg.Raw()), "${STYLEGUIDE_TEST_OUT}")
}

func TestLoad_EnvFileNextToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STYLEGUIDE_TEST_SRC=from-env\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("STYLEGUIDE_TEST_SRC") })
	path := writeConfig(t, dir, "source: ${STYLEGUIDE_TEST_SRC}\n"+
		"destination: out\n"+
		"documentation_assets: assets\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", filepath.Base(cfg.Source))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.True(t, ferrors.IsFatal(err))
}

func TestParse_RequiredKeys(t *testing.T) {
	cases := map[string]string{
		"source":               "destination: out\ndocumentation_assets: a\n",
		"destination":          "source: src\ndocumentation_assets: a\n",
		"documentation_assets": "source: src\ndestination: out\n",
	}
	for key, content := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := Parse([]byte(content))
			require.Error(t, err)
			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, ferrors.CategoryConfig, ce.Category())
			got, _ := ce.Context().GetString("key")
			require.Equal(t, key, got)
		})
	}
}

func TestParse_InvalidValues(t *testing.T) {
	base := "source: s\ndestination: d\ndocumentation_assets: a\n"
	cases := map[string]string{
		"bad heading":  base + "parent_heading_tag: \"<h1>\"\n",
		"bad debounce": base + "watch:\n  debounce: soon\n",
		"bad interval": base + "watch:\n  rebuild_interval: -1m\n",
		"not yaml":     "source: [unclosed\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestParse_CustomValues(t *testing.T) {
	cfg, err := Parse([]byte("source: s\ndestination: d\ndocumentation_assets: a\n" +
		"parent_heading_tag: h3\nchild_heading_tag: h4\nrender_concurrency: 9\n" +
		"watch:\n  debounce: 1s\n  rebuild_interval: 5m\n"))
	require.NoError(t, err)
	require.Equal(t, "h3", cfg.ParentHeadingTag)
	require.Equal(t, "h4", cfg.ChildHeadingTag)
	require.Equal(t, 9, cfg.RenderConcurrency)
	require.Equal(t, time.Second, cfg.Watch.DebounceDuration())
	require.Equal(t, 5*time.Minute, cfg.Watch.RebuildEvery())
	require.Empty(t, cfg.ManifestPath())
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	created, err := Init(dir, false)
	require.NoError(t, err)
	require.Contains(t, created, "styleguide.yml")
	require.Contains(t, created, "doc_assets/_header.html")
	require.Contains(t, created, "doc_assets/_footer.html")

	cfg, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	require.Equal(t, "basics", cfg.Index)

	_, err = Init(dir, false)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Init(dir, true)
	require.NoError(t, err)
}
